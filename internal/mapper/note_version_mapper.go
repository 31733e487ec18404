package mapper

import (
	"notesai-be/internal/entity"
	"notesai-be/internal/model"
)

type NoteVersionMapper struct{}

func NewNoteVersionMapper() *NoteVersionMapper {
	return &NoteVersionMapper{}
}

func (m *NoteVersionMapper) ToEntity(v *model.NoteVersion) *entity.NoteVersion {
	if v == nil {
		return nil
	}
	return &entity.NoteVersion{
		Id:        v.Id,
		NoteId:    v.NoteId,
		Title:     v.Title,
		Content:   v.Content,
		CreatedAt: v.CreatedAt,
	}
}

func (m *NoteVersionMapper) ToModel(v *entity.NoteVersion) *model.NoteVersion {
	if v == nil {
		return nil
	}
	return &model.NoteVersion{
		Id:        v.Id,
		NoteId:    v.NoteId,
		Title:     v.Title,
		Content:   v.Content,
		CreatedAt: v.CreatedAt,
	}
}

func (m *NoteVersionMapper) ToEntities(versions []*model.NoteVersion) []*entity.NoteVersion {
	entities := make([]*entity.NoteVersion, len(versions))
	for i, v := range versions {
		entities[i] = m.ToEntity(v)
	}
	return entities
}
