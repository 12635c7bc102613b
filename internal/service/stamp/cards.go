package stamp

import "github.com/iseungsang01/tarot-manager-app/internal/domain"

// tarotCards names the ten card slots on a stamp card, in fill order.
var tarotCards = [domain.MaxStamps]string{
	"The Fool",
	"The Magician",
	"The Empress",
	"The Emperor",
	"Justice",
	"The Moon",
	"The Sun",
	"The Star",
	"The Lovers",
	"The Devil",
}

// Card is one filled slot, reported back for display.
type Card struct {
	Position int    `json:"position"`
	Name     string `json:"name"`
}

// cardsFilled returns the slots filled by moving from `from` to `to` stamps.
func cardsFilled(from, to int) []Card {
	var out []Card
	for i := from; i < to && i < domain.MaxStamps; i++ {
		out = append(out, Card{Position: i + 1, Name: tarotCards[i]})
	}
	return out
}
