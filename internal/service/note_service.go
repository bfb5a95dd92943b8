package service

import (
	"context"
	"errors"
	"strings"

	"github.com/damoang/angple-notes/internal/common"
	"github.com/damoang/angple-notes/internal/domain"
	"github.com/damoang/angple-notes/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var storeOperations = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "notes_store_operations_total",
		Help: "Note datastore operations by outcome",
	},
	[]string{"op", "result"},
)

// NoteService handles note validation and data access.
// Every call goes straight to the repository; nothing is cached between requests.
type NoteService struct {
	repo     repository.NoteRepository
	validate *validator.Validate
}

// NewNoteService creates a new NoteService
func NewNoteService(repo repository.NoteRepository) *NoteService {
	return &NoteService{
		repo:     repo,
		validate: validator.New(),
	}
}

// ListNotes returns every note, newest first
func (s *NoteService) ListNotes(ctx context.Context) ([]*domain.Note, error) {
	notes, err := s.repo.FindAll(ctx)
	record("list", err)
	return notes, err
}

// GetNote returns a single note by key
func (s *NoteService) GetNote(ctx context.Context, id int64) (*domain.Note, error) {
	if id <= 0 {
		return nil, common.ErrNotFound
	}

	note, err := s.repo.FindByID(ctx, id)
	record("get", err)
	if err != nil {
		return nil, err
	}
	return note, nil
}

// SearchNotes returns notes whose title or text contains query, case-insensitively
func (s *NoteService) SearchNotes(ctx context.Context, query string) ([]*domain.Note, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, common.ErrSearchQueryRequired
	}

	notes, err := s.repo.Search(ctx, query)
	record("search", err)
	return notes, err
}

// CreateNote validates req and persists a new note
func (s *NoteService) CreateNote(ctx context.Context, req *domain.NoteRequest) (*domain.Note, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	note := &domain.Note{
		NoteTitle: req.NoteTitle,
		NoteText:  req.NoteText,
	}
	err := s.repo.Create(ctx, note)
	record("create", err)
	if err != nil {
		return nil, err
	}
	return note, nil
}

// UpdateNote validates req and rewrites title and text of an existing note
func (s *NoteService) UpdateNote(ctx context.Context, id int64, req *domain.NoteRequest) (*domain.Note, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}
	if id <= 0 {
		return nil, common.ErrNotFound
	}

	note, err := s.repo.Update(ctx, id, req.NoteTitle, req.NoteText)
	record("update", err)
	if err != nil {
		return nil, err
	}
	return note, nil
}

// DeleteNote removes a note permanently
func (s *NoteService) DeleteNote(ctx context.Context, id int64) error {
	if id <= 0 {
		return common.ErrNotFound
	}

	err := s.repo.Delete(ctx, id)
	record("delete", err)
	return err
}

// validateRequest trims req in place and reports the first missing field
func (s *NoteService) validateRequest(req *domain.NoteRequest) error {
	if req == nil {
		return common.ErrNoteTitleRequired
	}
	req.Normalize()

	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		switch verrs[0].Field() {
		case "NoteTitle":
			return common.ErrNoteTitleRequired
		case "NoteText":
			return common.ErrNoteTextRequired
		}
	}
	return common.ErrInvalidInput
}

func record(op string, err error) {
	result := "ok"
	switch {
	case err == nil:
	case common.IsNotFound(err):
		result = "not_found"
	default:
		result = "error"
	}
	storeOperations.WithLabelValues(op, result).Inc()
}
