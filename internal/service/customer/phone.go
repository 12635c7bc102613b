package customer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/iseungsang01/tarot-manager-app/internal/domain"
)

var phonePattern = regexp.MustCompile(`^\d{3}-\d{4}-\d{4}$`)

// CanonicalPhone normalizes a phone number to the NNN-NNNN-NNNN form.
// Digits-only input is reformatted; anything that does not resolve to
// eleven digits is rejected.
func CanonicalPhone(raw string) (string, error) {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()
	if len(d) != 11 {
		return "", fmt.Errorf("%w: phone number must have 11 digits (010-0000-0000)", domain.ErrInvalidInput)
	}
	formatted := d[:3] + "-" + d[3:7] + "-" + d[7:]
	if !phonePattern.MatchString(formatted) {
		return "", fmt.Errorf("%w: malformed phone number", domain.ErrInvalidInput)
	}
	return formatted, nil
}
