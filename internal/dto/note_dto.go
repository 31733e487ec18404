package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateNoteRequest struct {
	Title   string   `json:"title" validate:"required"`
	Content string   `json:"content" validate:"required"`
	Tags    []string `json:"tags"`
}

type UpdateNoteRequest struct {
	Id      uuid.UUID `json:"-"`
	Title   string    `json:"title" validate:"required"`
	Content string    `json:"content" validate:"required"`
	// Tags nil means "leave tags alone"; an empty array clears them.
	Tags *[]string `json:"tags"`
}

type NoteResponse struct {
	Id         uuid.UUID  `json:"id"`
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	Tags       []string   `json:"tags"`
	IsFavorite bool       `json:"isFavorite"`
	IsArchived bool       `json:"isArchived"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  *time.Time `json:"updatedAt"`
}

type NoteVersionResponse struct {
	Id        uuid.UUID `json:"id"`
	NoteId    uuid.UUID `json:"noteId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

type NoteWithVersionsResponse struct {
	NoteResponse
	Versions []NoteVersionResponse `json:"versions"`
}

type ListNotesFilter struct {
	Search        string
	Tag           string
	OnlyFavorites bool
	OnlyArchived  bool
}

type DeleteNoteResponse struct {
	Message string `json:"message"`
}
