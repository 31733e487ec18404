package entity

import (
	"time"

	"github.com/google/uuid"
)

type ChatMessage struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId    uuid.UUID `gorm:"type:uuid;index"`
	Role      string
	Content   string
	NoteId    *uuid.UUID `gorm:"type:uuid"`
	CreatedAt time.Time
}
