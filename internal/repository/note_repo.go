package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/damoang/angple-notes/internal/common"
	"github.com/damoang/angple-notes/internal/domain"
	"gorm.io/gorm"
)

// likeEscape is the ESCAPE character used for substring patterns.
// '!' is used instead of '\' because the two dialects disagree on backslash literals.
const likeEscape = "!"

var likeEscaper = strings.NewReplacer(likeEscape, likeEscape+likeEscape, "%", likeEscape+"%", "_", likeEscape+"_")

// NoteRepository note data access
type NoteRepository interface {
	FindAll(ctx context.Context) ([]*domain.Note, error)
	FindByID(ctx context.Context, id int64) (*domain.Note, error)
	Search(ctx context.Context, query string) ([]*domain.Note, error)
	Create(ctx context.Context, note *domain.Note) error
	Update(ctx context.Context, id int64, title, text string) (*domain.Note, error)
	Delete(ctx context.Context, id int64) error
}

type noteRepository struct {
	db *gorm.DB
}

// NewNoteRepository creates a new NoteRepository
func NewNoteRepository(db *gorm.DB) NoteRepository {
	return &noteRepository{db: db}
}

func (r *noteRepository) newest(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC")
}

func (r *noteRepository) FindAll(ctx context.Context) ([]*domain.Note, error) {
	notes := []*domain.Note{}
	if err := r.newest(ctx).Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *noteRepository) FindByID(ctx context.Context, id int64) (*domain.Note, error) {
	var note domain.Note
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&note).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return &note, nil
}

// Search matches query as a case-insensitive substring of title or text.
// Both sides go through the datastore's LOWER so they fold identically.
func (r *noteRepository) Search(ctx context.Context, query string) ([]*domain.Note, error) {
	pattern := "%" + likeEscaper.Replace(query) + "%"

	notes := []*domain.Note{}
	err := r.newest(ctx).
		Where("LOWER(note_title) LIKE LOWER(?) ESCAPE '"+likeEscape+"' OR LOWER(note_text) LIKE LOWER(?) ESCAPE '"+likeEscape+"'", pattern, pattern).
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *noteRepository) Create(ctx context.Context, note *domain.Note) error {
	return r.db.WithContext(ctx).Create(note).Error
}

// Update rewrites title and text. Zero affected rows is reported as common.ErrNotFound.
func (r *noteRepository) Update(ctx context.Context, id int64, title, text string) (*domain.Note, error) {
	result := r.db.WithContext(ctx).Model(&domain.Note{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"note_title": title,
			"note_text":  text,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, common.ErrNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *noteRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Note{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrNotFound
	}
	return nil
}
