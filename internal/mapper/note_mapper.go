package mapper

import (
	"encoding/json"
	"time"

	"notesai-be/internal/entity"
	"notesai-be/internal/model"

	"gorm.io/datatypes"
)

type NoteMapper struct{}

func NewNoteMapper() *NoteMapper {
	return &NoteMapper{}
}

func (m *NoteMapper) ToEntity(n *model.Note) *entity.Note {
	if n == nil {
		return nil
	}

	var updatedAt *time.Time
	if !n.UpdatedAt.IsZero() {
		t := n.UpdatedAt
		updatedAt = &t
	}

	// Tags live as a jsonb array; a corrupt column degrades to no tags
	// rather than failing the read.
	tags := []string{}
	if len(n.Tags) > 0 {
		_ = json.Unmarshal(n.Tags, &tags)
	}

	return &entity.Note{
		Id:         n.Id,
		UserId:     n.UserId,
		Title:      n.Title,
		Content:    n.Content,
		Tags:       tags,
		IsFavorite: n.IsFavorite,
		IsArchived: n.IsArchived,
		CreatedAt:  n.CreatedAt,
		UpdatedAt:  updatedAt,
	}
}

func (m *NoteMapper) ToModel(n *entity.Note) *model.Note {
	if n == nil {
		return nil
	}

	tags := n.Tags
	if tags == nil {
		tags = []string{}
	}
	tagsJson, _ := json.Marshal(tags)

	var updatedAt time.Time
	if n.UpdatedAt != nil {
		updatedAt = *n.UpdatedAt
	}

	return &model.Note{
		Id:         n.Id,
		UserId:     n.UserId,
		Title:      n.Title,
		Content:    n.Content,
		Tags:       datatypes.JSON(tagsJson),
		IsFavorite: n.IsFavorite,
		IsArchived: n.IsArchived,
		CreatedAt:  n.CreatedAt,
		UpdatedAt:  updatedAt,
	}
}

func (m *NoteMapper) ToEntities(notes []*model.Note) []*entity.Note {
	entities := make([]*entity.Note, len(notes))
	for i, n := range notes {
		entities[i] = m.ToEntity(n)
	}
	return entities
}
