package entity

import (
	"time"

	"github.com/google/uuid"
)

type Note struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId     uuid.UUID `gorm:"type:uuid;index"`
	Title      string
	Content    string
	Tags       []string
	IsFavorite bool
	IsArchived bool
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}
