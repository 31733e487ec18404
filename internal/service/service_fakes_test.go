package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"notesai-be/internal/entity"
	"notesai-be/internal/pkg/logger"
	"notesai-be/internal/repository/contract"
	"notesai-be/internal/repository/specification"
	"notesai-be/internal/repository/unitofwork"
	"notesai-be/pkg/events"
	"notesai-be/pkg/llm"

	"github.com/google/uuid"
)

// In-memory stand-ins for the GORM repositories. They interpret the same
// specification values the real implementations translate to SQL.

type fakeStore struct {
	users    []*entity.User
	notes    []*entity.Note
	versions []*entity.NoteVersion
	chats    []*entity.ChatMessage
}

type fakeUowFactory struct {
	store *fakeStore
}

func newFakeUowFactory() *fakeUowFactory {
	return &fakeUowFactory{store: &fakeStore{}}
}

func (f *fakeUowFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUow{store: f.store}
}

type fakeUow struct {
	store *fakeStore
}

func (u *fakeUow) Begin(ctx context.Context) error { return nil }
func (u *fakeUow) Commit() error                   { return nil }
func (u *fakeUow) Rollback() error                 { return nil }

func (u *fakeUow) UserRepository() contract.UserRepository {
	return &fakeUserRepo{store: u.store}
}

func (u *fakeUow) NoteRepository() contract.NoteRepository {
	return &fakeNoteRepo{store: u.store}
}

func (u *fakeUow) NoteVersionRepository() contract.NoteVersionRepository {
	return &fakeNoteVersionRepo{store: u.store}
}

func (u *fakeUow) ChatMessageRepository() contract.ChatMessageRepository {
	return &fakeChatMessageRepo{store: u.store}
}

// querySpecs is the subset of specifications that shape result sets rather
// than filter rows.
type querySpecs struct {
	orderField string
	orderDesc  bool
	limit      int
	offset     int
}

func splitSpecs(specs []specification.Specification) (filters []specification.Specification, q querySpecs) {
	for _, s := range specs {
		switch v := s.(type) {
		case specification.OrderBy:
			q.orderField = v.Field
			q.orderDesc = v.Desc
		case specification.Pagination:
			q.limit = v.Limit
			q.offset = v.Offset
		default:
			filters = append(filters, s)
		}
	}
	return filters, q
}

func noteMatches(n *entity.Note, spec specification.Specification) bool {
	switch s := spec.(type) {
	case specification.ByID:
		return n.Id == s.ID
	case specification.OwnedBy:
		return n.UserId == s.UserID
	case specification.Archived:
		return n.IsArchived == s.Value
	case specification.FavoritesOnly:
		return n.IsFavorite
	case specification.SearchTitleOrContent:
		q := strings.ToLower(s.Query)
		return strings.Contains(strings.ToLower(n.Title), q) ||
			strings.Contains(strings.ToLower(n.Content), q)
	case specification.HasTag:
		for _, tag := range n.Tags {
			if tag == s.Tag {
				return true
			}
		}
		return false
	default:
		return true
	}
}

func noteSortTime(n *entity.Note) time.Time {
	if n.UpdatedAt != nil {
		return *n.UpdatedAt
	}
	return n.CreatedAt
}

type fakeNoteRepo struct {
	store *fakeStore
}

func (r *fakeNoteRepo) Create(ctx context.Context, note *entity.Note) error {
	cp := *note
	r.store.notes = append(r.store.notes, &cp)
	return nil
}

func (r *fakeNoteRepo) Update(ctx context.Context, note *entity.Note) error {
	for i, n := range r.store.notes {
		if n.Id == note.Id {
			cp := *note
			r.store.notes[i] = &cp
			return nil
		}
	}
	cp := *note
	r.store.notes = append(r.store.notes, &cp)
	return nil
}

func (r *fakeNoteRepo) Delete(ctx context.Context, id uuid.UUID) error {
	kept := r.store.notes[:0]
	for _, n := range r.store.notes {
		if n.Id != id {
			kept = append(kept, n)
		}
	}
	r.store.notes = kept
	return nil
}

func (r *fakeNoteRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Note, error) {
	notes, err := r.FindAll(ctx, specs...)
	if err != nil || len(notes) == 0 {
		return nil, err
	}
	return notes[0], nil
}

func (r *fakeNoteRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Note, error) {
	filters, q := splitSpecs(specs)

	var out []*entity.Note
	for _, n := range r.store.notes {
		ok := true
		for _, f := range filters {
			if !noteMatches(n, f) {
				ok = false
				break
			}
		}
		if ok {
			cp := *n
			out = append(out, &cp)
		}
	}

	if q.orderField != "" {
		sort.SliceStable(out, func(i, j int) bool {
			ti, tj := noteSortTime(out[i]), noteSortTime(out[j])
			if q.orderDesc {
				return ti.After(tj)
			}
			return ti.Before(tj)
		})
	}
	return applyPagination(out, q), nil
}

func (r *fakeNoteRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	notes, err := r.FindAll(ctx, specs...)
	return int64(len(notes)), err
}

type fakeNoteVersionRepo struct {
	store *fakeStore
}

func (r *fakeNoteVersionRepo) Create(ctx context.Context, version *entity.NoteVersion) error {
	cp := *version
	r.store.versions = append(r.store.versions, &cp)
	return nil
}

func (r *fakeNoteVersionRepo) DeleteByNoteId(ctx context.Context, noteId uuid.UUID) error {
	kept := r.store.versions[:0]
	for _, v := range r.store.versions {
		if v.NoteId != noteId {
			kept = append(kept, v)
		}
	}
	r.store.versions = kept
	return nil
}

func (r *fakeNoteVersionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.NoteVersion, error) {
	filters, q := splitSpecs(specs)

	var out []*entity.NoteVersion
	for _, v := range r.store.versions {
		ok := true
		for _, f := range filters {
			if byNote, is := f.(specification.ByNoteID); is && v.NoteId != byNote.NoteID {
				ok = false
				break
			}
		}
		if ok {
			cp := *v
			out = append(out, &cp)
		}
	}

	if q.orderField != "" {
		sort.SliceStable(out, func(i, j int) bool {
			if q.orderDesc {
				return out[i].CreatedAt.After(out[j].CreatedAt)
			}
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		})
	}
	return applyPagination(out, q), nil
}

func (r *fakeNoteVersionRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	versions, err := r.FindAll(ctx, specs...)
	return int64(len(versions)), err
}

type fakeChatMessageRepo struct {
	store *fakeStore
}

func (r *fakeChatMessageRepo) Create(ctx context.Context, message *entity.ChatMessage) error {
	cp := *message
	r.store.chats = append(r.store.chats, &cp)
	return nil
}

func (r *fakeChatMessageRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error) {
	filters, q := splitSpecs(specs)

	var out []*entity.ChatMessage
	for _, m := range r.store.chats {
		ok := true
		for _, f := range filters {
			switch s := f.(type) {
			case specification.OwnedBy:
				if m.UserId != s.UserID {
					ok = false
				}
			case specification.ByNoteID:
				if m.NoteId == nil || *m.NoteId != s.NoteID {
					ok = false
				}
			}
			if !ok {
				break
			}
		}
		if ok {
			cp := *m
			out = append(out, &cp)
		}
	}

	if q.orderField != "" {
		sort.SliceStable(out, func(i, j int) bool {
			if q.orderDesc {
				return out[i].CreatedAt.After(out[j].CreatedAt)
			}
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		})
	}
	return applyPagination(out, q), nil
}

type fakeUserRepo struct {
	store *fakeStore
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	cp := *user
	r.store.users = append(r.store.users, &cp)
	return nil
}

func (r *fakeUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	for _, u := range r.store.users {
		ok := true
		for _, f := range specs {
			switch s := f.(type) {
			case specification.ByEmail:
				if u.Email != s.Email {
					ok = false
				}
			case specification.ByID:
				if u.Id != s.ID {
					ok = false
				}
			}
			if !ok {
				break
			}
		}
		if ok {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func applyPagination[T any](items []*T, q querySpecs) []*T {
	if q.offset > 0 {
		if q.offset >= len(items) {
			return nil
		}
		items = items[q.offset:]
	}
	if q.limit > 0 && q.limit < len(items) {
		items = items[:q.limit]
	}
	return items
}

// fakePublisher records published events.
type fakePublisher struct {
	published []events.BaseEvent
}

func (p *fakePublisher) Publish(ctx context.Context, event events.BaseEvent) error {
	p.published = append(p.published, event)
	return nil
}

// fakeProvider is a scripted LLM backend.
type fakeProvider struct {
	reply string
	err   error

	calls       int
	lastHistory []llm.Message
	lastOpts    llm.Options
}

func (p *fakeProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	p.calls++
	p.lastHistory = history
	p.lastOpts = llm.Options{}
	for _, opt := range options {
		opt(&p.lastOpts)
	}
	return p.reply, p.err
}

func (p *fakeProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, options...)
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

var _ logger.ILogger = nopLogger{}
