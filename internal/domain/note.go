package domain

import (
	"strings"
	"time"
)

// Note is a persisted title/text record. ID and CreatedAt are assigned by the datastore.
type Note struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
	NoteTitle string    `gorm:"column:note_title;type:text;not null" json:"note_title"`
	NoteText  string    `gorm:"column:note_text;type:text;not null" json:"note_text"`
}

// TableName returns the table name
func (Note) TableName() string {
	return "notes"
}

// NoteRequest is the create/update body
type NoteRequest struct {
	NoteTitle string `json:"note_title" validate:"required"`
	NoteText  string `json:"note_text" validate:"required"`
}

// Normalize trims surrounding whitespace from both fields
func (r *NoteRequest) Normalize() {
	r.NoteTitle = strings.TrimSpace(r.NoteTitle)
	r.NoteText = strings.TrimSpace(r.NoteText)
}
