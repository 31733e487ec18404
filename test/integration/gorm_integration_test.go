package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"notesai-be/internal/entity"
	"notesai-be/internal/repository/specification"
	"notesai-be/internal/repository/unitofwork"
	"notesai-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.UserRepository())
	assert.NotNil(t, uow.NoteRepository())
	assert.NotNil(t, uow.NoteVersionRepository())
	assert.NotNil(t, uow.ChatMessageRepository())

	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)

	t.Run("Note roundtrip with jsonb tags", func(t *testing.T) {
		ctx := context.Background()
		userId := uuid.New()

		user := &entity.User{
			Id:           userId,
			Email:        "test-integration-" + uuid.NewString() + "@example.com",
			FullName:     "Integration Test User",
			PasswordHash: "x",
			CreatedAt:    time.Now(),
		}
		require.NoError(t, uow.UserRepository().Create(ctx, user))

		note := &entity.Note{
			Id:        uuid.New(),
			UserId:    userId,
			Title:     "Integration note",
			Content:   "body",
			Tags:      []string{"integration", "test"},
			CreatedAt: time.Now(),
		}
		require.NoError(t, uow.NoteRepository().Create(ctx, note))
		defer uow.NoteRepository().Delete(ctx, note.Id)

		found, err := uow.NoteRepository().FindOne(ctx,
			specification.ByID{ID: note.Id},
			specification.OwnedBy{UserID: userId},
		)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, []string{"integration", "test"}, found.Tags)

		tagged, err := uow.NoteRepository().FindAll(ctx,
			specification.OwnedBy{UserID: userId},
			specification.HasTag{Tag: "integration"},
		)
		require.NoError(t, err)
		assert.Len(t, tagged, 1)
	})

	t.Run("Transactional version snapshot", func(t *testing.T) {
		ctx := context.Background()
		userId := uuid.New()

		user := &entity.User{
			Id:           userId,
			Email:        "test-integration-" + uuid.NewString() + "@example.com",
			FullName:     "Integration Test User",
			PasswordHash: "x",
			CreatedAt:    time.Now(),
		}
		require.NoError(t, uow.UserRepository().Create(ctx, user))

		note := &entity.Note{
			Id:        uuid.New(),
			UserId:    userId,
			Title:     "Versioned",
			Content:   "v1",
			Tags:      []string{},
			CreatedAt: time.Now(),
		}
		require.NoError(t, uow.NoteRepository().Create(ctx, note))

		txUow := uowFactory.NewUnitOfWork(ctx)
		require.NoError(t, txUow.Begin(ctx))
		version := &entity.NoteVersion{
			Id:        uuid.New(),
			NoteId:    note.Id,
			Title:     note.Title,
			Content:   note.Content,
			CreatedAt: time.Now(),
		}
		require.NoError(t, txUow.NoteVersionRepository().Create(ctx, version))
		note.Content = "v2"
		require.NoError(t, txUow.NoteRepository().Update(ctx, note))
		require.NoError(t, txUow.Commit())

		versions, err := uow.NoteVersionRepository().FindAll(ctx,
			specification.ByNoteID{NoteID: note.Id},
			specification.OrderBy{Field: "created_at", Desc: true},
		)
		require.NoError(t, err)
		require.Len(t, versions, 1)
		assert.Equal(t, "v1", versions[0].Content)

		require.NoError(t, uow.NoteVersionRepository().DeleteByNoteId(ctx, note.Id))
		require.NoError(t, uow.NoteRepository().Delete(ctx, note.Id))
	})
}
