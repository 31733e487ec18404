package service

import (
	"context"
	"time"

	"notesai-be/internal/dto"
	"notesai-be/internal/entity"
	"notesai-be/internal/pkg/apperrors"
	"notesai-be/internal/pkg/logger"
	"notesai-be/internal/repository/specification"
	"notesai-be/internal/repository/unitofwork"
	"notesai-be/pkg/events"

	"github.com/google/uuid"
)

// How many historical versions a single note read returns.
const maxVersionsPerNote = 10

type INoteService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNoteRequest) (*dto.NoteResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.NoteWithVersionsResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
	List(ctx context.Context, userId uuid.UUID, filter *dto.ListNotesFilter) ([]*dto.NoteResponse, error)
	ToggleFavorite(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.NoteResponse, error)
	ToggleArchive(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.NoteResponse, error)
}

type noteService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	logger           logger.ILogger
}

func NewNoteService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	log logger.ILogger,
) INoteService {
	return &noteService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		logger:           log,
	}
}

func (s *noteService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNoteRequest) (*dto.NoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}

	note := entity.Note{
		Id:         uuid.New(),
		UserId:     userId,
		Title:      req.Title,
		Content:    req.Content,
		Tags:       tags,
		IsFavorite: false,
		IsArchived: false,
		CreatedAt:  time.Now(),
	}

	if err := uow.NoteRepository().Create(ctx, &note); err != nil {
		return nil, err
	}

	s.publishNoteEvent(ctx, events.NoteCreated, &note)

	return toNoteResponse(&note), nil
}

func (s *noteService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.NoteWithVersionsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	note, err := s.findOwnedNote(ctx, uow, userId, id)
	if err != nil {
		return nil, err
	}

	versions, err := uow.NoteVersionRepository().FindAll(ctx,
		specification.ByNoteID{NoteID: id},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: maxVersionsPerNote},
	)
	if err != nil {
		return nil, err
	}

	res := dto.NoteWithVersionsResponse{
		NoteResponse: *toNoteResponse(note),
		Versions:     make([]dto.NoteVersionResponse, 0, len(versions)),
	}
	for _, v := range versions {
		res.Versions = append(res.Versions, dto.NoteVersionResponse{
			Id:        v.Id,
			NoteId:    v.NoteId,
			Title:     v.Title,
			Content:   v.Content,
			CreatedAt: v.CreatedAt,
		})
	}

	return &res, nil
}

func (s *noteService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	note, err := s.findOwnedNote(ctx, uow, userId, req.Id)
	if err != nil {
		return nil, err
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	// Snapshot the live state before overwriting it. This happens on every
	// update, even one that changes nothing: the product treats "user hit
	// save" as a version boundary.
	version := entity.NoteVersion{
		Id:        uuid.New(),
		NoteId:    note.Id,
		Title:     note.Title,
		Content:   note.Content,
		CreatedAt: time.Now(),
	}
	if err := uow.NoteVersionRepository().Create(ctx, &version); err != nil {
		return nil, err
	}

	now := time.Now()
	note.Title = req.Title
	note.Content = req.Content
	if req.Tags != nil {
		note.Tags = *req.Tags
	}
	note.UpdatedAt = &now

	if err := uow.NoteRepository().Update(ctx, note); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.publishNoteEvent(ctx, events.NoteUpdated, note)

	return toNoteResponse(note), nil
}

func (s *noteService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	note, err := s.findOwnedNote(ctx, uow, userId, id)
	if err != nil {
		return err
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.NoteRepository().Delete(ctx, id); err != nil {
		return err
	}

	if err := uow.NoteVersionRepository().DeleteByNoteId(ctx, id); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	s.publishNoteEvent(ctx, events.NoteDeleted, note)

	return nil
}

func (s *noteService) List(ctx context.Context, userId uuid.UUID, filter *dto.ListNotesFilter) ([]*dto.NoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.OwnedBy{UserID: userId},
		// Archived notes only show up when explicitly requested.
		specification.Archived{Value: filter.OnlyArchived},
	}
	if filter.OnlyFavorites {
		specs = append(specs, specification.FavoritesOnly{})
	}
	if filter.Search != "" {
		specs = append(specs, specification.SearchTitleOrContent{Query: filter.Search})
	}
	if filter.Tag != "" {
		specs = append(specs, specification.HasTag{Tag: filter.Tag})
	}
	specs = append(specs, specification.OrderBy{Field: "updated_at", Desc: true})

	notes, err := uow.NoteRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.NoteResponse, 0, len(notes))
	for _, note := range notes {
		res = append(res, toNoteResponse(note))
	}
	return res, nil
}

func (s *noteService) ToggleFavorite(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.NoteResponse, error) {
	return s.toggleFlag(ctx, userId, id, func(n *entity.Note) {
		n.IsFavorite = !n.IsFavorite
	})
}

func (s *noteService) ToggleArchive(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.NoteResponse, error) {
	return s.toggleFlag(ctx, userId, id, func(n *entity.Note) {
		n.IsArchived = !n.IsArchived
	})
}

// toggleFlag flips a boolean on an owned note. Flag flips do not create
// versions: only title/content edits are version boundaries.
func (s *noteService) toggleFlag(ctx context.Context, userId uuid.UUID, id uuid.UUID, mutate func(*entity.Note)) (*dto.NoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	note, err := s.findOwnedNote(ctx, uow, userId, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	mutate(note)
	note.UpdatedAt = &now

	if err := uow.NoteRepository().Update(ctx, note); err != nil {
		return nil, err
	}

	s.publishNoteEvent(ctx, events.NoteUpdated, note)

	return toNoteResponse(note), nil
}

// findOwnedNote resolves a note id under the ownership scope. A missing
// note and someone else's note are the same NotFound: existence must not
// leak across users.
func (s *noteService) findOwnedNote(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, id uuid.UUID) (*entity.Note, error) {
	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, apperrors.NotFound("Note not found")
	}
	return note, nil
}

func (s *noteService) publishNoteEvent(ctx context.Context, eventType string, note *entity.Note) {
	if s.publisherService == nil {
		return
	}
	evt := events.BaseEvent{
		Type: eventType,
		Data: map[string]interface{}{
			"note_id": note.Id.String(),
			"user_id": note.UserId.String(),
			"title":   note.Title,
		},
		OccurredAt: time.Now(),
	}
	// Events are auxiliary; a publish failure never fails the request.
	if err := s.publisherService.Publish(ctx, evt); err != nil {
		s.logger.Warn("NoteService", "Failed to publish note event", map[string]interface{}{
			"type":  eventType,
			"error": err.Error(),
		})
	}
}

func toNoteResponse(note *entity.Note) *dto.NoteResponse {
	tags := note.Tags
	if tags == nil {
		tags = []string{}
	}
	return &dto.NoteResponse{
		Id:         note.Id,
		Title:      note.Title,
		Content:    note.Content,
		Tags:       tags,
		IsFavorite: note.IsFavorite,
		IsArchived: note.IsArchived,
		CreatedAt:  note.CreatedAt,
		UpdatedAt:  note.UpdatedAt,
	}
}
