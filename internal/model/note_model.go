package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Note rows are hard-deleted: the product contract is permanent removal,
// so there is no gorm.DeletedAt here.
type Note struct {
	Id         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId     uuid.UUID      `gorm:"type:uuid;not null;index"`
	Title      string         `gorm:"type:varchar(255);not null"`
	Content    string         `gorm:"type:text"`
	Tags       datatypes.JSON `gorm:"type:jsonb;default:'[]'"`
	IsFavorite bool           `gorm:"not null;default:false"`
	IsArchived bool           `gorm:"not null;default:false"`
	CreatedAt  time.Time      `gorm:"autoCreateTime"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime;index"`
}

func (Note) TableName() string {
	return "notes"
}
