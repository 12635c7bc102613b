package suggestion

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/iseungsang01/tarot-manager-app/internal/domain"
	suggestionrepo "github.com/iseungsang01/tarot-manager-app/internal/repository/suggestion"
)

type memoryRepo struct {
	byID   map[string]domain.Suggestion
	nextID int
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{byID: make(map[string]domain.Suggestion)}
}

func (r *memoryRepo) Create(_ context.Context, in suggestionrepo.CreateInput) (*domain.Suggestion, error) {
	r.nextID++
	s := domain.Suggestion{
		ID:          "sug-" + strconv.Itoa(r.nextID),
		Content:     in.Content,
		PhoneNumber: in.PhoneNumber,
		Nickname:    in.Nickname,
		Status:      domain.SuggestionOpen,
		CreatedAt:   time.Now(),
	}
	r.byID[s.ID] = s
	clone := s
	return &clone, nil
}

func (r *memoryRepo) List(_ context.Context) ([]domain.Suggestion, error) {
	out := make([]domain.Suggestion, 0, len(r.byID))
	for _, s := range r.byID {
		out = append(out, s)
	}
	return out, nil
}

func (r *memoryRepo) Respond(_ context.Context, id, response string) (*domain.Suggestion, error) {
	s, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	s.AdminResponse = response
	s.RespondedAt = &now
	s.Status = domain.SuggestionAnswered
	r.byID[id] = s
	clone := s
	return &clone, nil
}

func (r *memoryRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func TestSubmit_NormalizesOptionalPhone(t *testing.T) {
	svc := New(newMemoryRepo())
	ctx := context.Background()

	s, err := svc.Submit(ctx, SubmitInput{Content: "  더 긴 영업시간을 원해요  ", PhoneNumber: "01012345678"})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if s.Content != "더 긴 영업시간을 원해요" {
		t.Fatalf("content not trimmed: %q", s.Content)
	}
	if s.PhoneNumber != "010-1234-5678" {
		t.Fatalf("phone not canonicalized: %q", s.PhoneNumber)
	}
	if s.Status != domain.SuggestionOpen {
		t.Fatalf("status = %q, want open", s.Status)
	}

	anon, err := svc.Submit(ctx, SubmitInput{Content: "anonymous note"})
	if err != nil {
		t.Fatalf("anonymous submit: %v", err)
	}
	if anon.PhoneNumber != "" {
		t.Fatalf("anonymous submit should keep phone empty")
	}
}

func TestSubmit_Rejections(t *testing.T) {
	svc := New(newMemoryRepo())
	ctx := context.Background()

	if _, err := svc.Submit(ctx, SubmitInput{Content: "   "}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("blank content: expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Submit(ctx, SubmitInput{Content: "ok", PhoneNumber: "123"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("bad phone: expected ErrInvalidInput, got %v", err)
	}
}

func TestRespond_MarksAnswered(t *testing.T) {
	repo := newMemoryRepo()
	svc := New(repo)
	ctx := context.Background()

	s, err := svc.Submit(ctx, SubmitInput{Content: "request"})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if _, err := svc.Respond(ctx, s.ID, "  "); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("blank response: expected ErrInvalidInput, got %v", err)
	}

	answered, err := svc.Respond(ctx, s.ID, "반영하겠습니다")
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}
	if answered.Status != domain.SuggestionAnswered || answered.AdminResponse != "반영하겠습니다" {
		t.Fatalf("unexpected record %+v", answered)
	}
	if answered.RespondedAt == nil {
		t.Fatalf("responded timestamp missing")
	}
}
