package contract

import (
	"context"

	"notesai-be/internal/entity"
	"notesai-be/internal/repository/specification"

	"github.com/google/uuid"
)

type NoteVersionRepository interface {
	Create(ctx context.Context, version *entity.NoteVersion) error
	DeleteByNoteId(ctx context.Context, noteId uuid.UUID) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.NoteVersion, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
