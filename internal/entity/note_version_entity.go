package entity

import (
	"time"

	"github.com/google/uuid"
)

// NoteVersion is an immutable snapshot of a note's title/content taken
// right before an update overwrites them.
type NoteVersion struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	NoteId    uuid.UUID `gorm:"type:uuid;index"`
	Title     string
	Content   string
	CreatedAt time.Time
}
