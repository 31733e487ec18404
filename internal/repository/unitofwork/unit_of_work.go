package unitofwork

import (
	"context"

	"notesai-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	NoteRepository() contract.NoteRepository
	NoteVersionRepository() contract.NoteVersionRepository
	ChatMessageRepository() contract.ChatMessageRepository
}
