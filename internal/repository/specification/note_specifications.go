package specification

import (
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SearchTitleOrContent matches case-insensitive substrings against the
// note title OR content.
type SearchTitleOrContent struct {
	Query string
}

func (s SearchTitleOrContent) Apply(db *gorm.DB) *gorm.DB {
	pattern := "%" + s.Query + "%"
	return db.Where("title ILIKE ? OR content ILIKE ?", pattern, pattern)
}

// HasTag matches notes whose jsonb tags array contains the exact tag.
type HasTag struct {
	Tag string
}

func (s HasTag) Apply(db *gorm.DB) *gorm.DB {
	needle, _ := json.Marshal([]string{s.Tag})
	return db.Where("tags @> ?", string(needle))
}

// FavoritesOnly keeps only favorited notes.
type FavoritesOnly struct{}

func (s FavoritesOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_favorite = ?", true)
}

// Archived filters on the archive flag. The default listing passes
// Archived{false} so archived notes stay out of sight until asked for.
type Archived struct {
	Value bool
}

func (s Archived) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_archived = ?", s.Value)
}

// ByNoteID filters child rows (versions, chat messages) by their note.
type ByNoteID struct {
	NoteID uuid.UUID
}

func (s ByNoteID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("note_id = ?", s.NoteID)
}

// ByEmail filters users by email.
type ByEmail struct {
	Email string
}

func (s ByEmail) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("email = ?", s.Email)
}
