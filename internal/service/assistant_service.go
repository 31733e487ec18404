package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"notesai-be/internal/config"
	"notesai-be/internal/constant"
	"notesai-be/internal/dto"
	"notesai-be/internal/entity"
	"notesai-be/internal/pkg/apperrors"
	"notesai-be/internal/pkg/logger"
	"notesai-be/internal/repository/memory"
	"notesai-be/internal/repository/specification"
	"notesai-be/internal/repository/unitofwork"
	"notesai-be/pkg/llm"

	"github.com/google/uuid"
)

const (
	defaultChatHistoryLimit = 50

	// How many recent notes feed the chat context digest.
	recentNotesForContext = 5
)

type IAssistantService interface {
	Summarize(ctx context.Context, userId uuid.UUID, req *dto.SummarizeRequest) (*dto.SummarizeResponse, error)
	GenerateTags(ctx context.Context, userId uuid.UUID, req *dto.GenerateTagsRequest) (*dto.GenerateTagsResponse, error)
	WritingAssist(ctx context.Context, userId uuid.UUID, req *dto.WritingAssistRequest) (*dto.WritingAssistResponse, error)
	Translate(ctx context.Context, userId uuid.UUID, req *dto.TranslateRequest) (*dto.TranslateResponse, error)
	CheckGrammar(ctx context.Context, userId uuid.UUID, req *dto.GrammarRequest) (*dto.GrammarResponse, error)
	AnalyzeSentiment(ctx context.Context, userId uuid.UUID, req *dto.SentimentRequest) (*dto.SentimentResponse, error)
	Chat(ctx context.Context, userId uuid.UUID, req *dto.ChatRequest) (*dto.ChatResponse, error)
	GetChatHistory(ctx context.Context, userId uuid.UUID, noteId *uuid.UUID, limit int) (*dto.ChatHistoryResponse, error)
}

type assistantService struct {
	uowFactory   unitofwork.RepositoryFactory
	provider     llm.Provider
	contextCache *memory.ContextCache
	cfg          *config.Config
	logger       logger.ILogger
}

func NewAssistantService(
	uowFactory unitofwork.RepositoryFactory,
	provider llm.Provider,
	contextCache *memory.ContextCache,
	cfg *config.Config,
	log logger.ILogger,
) IAssistantService {
	return &assistantService{
		uowFactory:   uowFactory,
		provider:     provider,
		contextCache: contextCache,
		cfg:          cfg,
		logger:       log,
	}
}

// ensureConfigured fails fast before any model call when the OpenAI
// provider is selected without a key. Validation errors still take
// precedence; callers check inputs first.
func (s *assistantService) ensureConfigured() error {
	if s.cfg.Ai.Provider == "openai" && s.cfg.Ai.OpenAIAPIKey == "" {
		return apperrors.Configuration("OpenAI API key not configured")
	}
	return nil
}

func (s *assistantService) Summarize(ctx context.Context, userId uuid.UUID, req *dto.SummarizeRequest) (*dto.SummarizeResponse, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, apperrors.Validation("Content is required")
	}
	if err := s.ensureConfigured(); err != nil {
		return nil, err
	}

	lengthPrompt, ok := constant.SummaryLengthPrompts[req.Length]
	if !ok {
		lengthPrompt = constant.SummaryLengthPrompts["medium"]
	}

	history := []llm.Message{
		{Role: llm.RoleSystem, Content: constant.SummarizeSystemPrompt},
		{Role: llm.RoleUser, Content: fmt.Sprintf("Summarize the following text %s:\n\n%s", lengthPrompt, req.Content)},
	}

	reply, err := s.provider.Chat(ctx, history, llm.WithTemperature(0.7), llm.WithMaxTokens(500))
	if err != nil {
		return nil, apperrors.Gateway(err, "Failed to generate summary")
	}

	return &dto.SummarizeResponse{Summary: strings.TrimSpace(reply)}, nil
}

func (s *assistantService) GenerateTags(ctx context.Context, userId uuid.UUID, req *dto.GenerateTagsRequest) (*dto.GenerateTagsResponse, error) {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Content) == "" {
		return nil, apperrors.Validation("Title and content are required")
	}
	if err := s.ensureConfigured(); err != nil {
		return nil, err
	}

	history := []llm.Message{
		{Role: llm.RoleSystem, Content: constant.TagsSystemPrompt},
		{Role: llm.RoleUser, Content: fmt.Sprintf("Generate relevant tags for this note:\n\nTitle: %s\n\nContent: %s", req.Title, req.Content)},
	}

	reply, err := s.provider.Chat(ctx, history, llm.WithTemperature(0.5), llm.WithMaxTokens(100))
	if err != nil {
		return nil, apperrors.Gateway(err, "Failed to generate tags")
	}

	return &dto.GenerateTagsResponse{Tags: parseTagList(reply)}, nil
}

func (s *assistantService) WritingAssist(ctx context.Context, userId uuid.UUID, req *dto.WritingAssistRequest) (*dto.WritingAssistResponse, error) {
	if strings.TrimSpace(req.Content) == "" || strings.TrimSpace(req.Action) == "" {
		return nil, apperrors.Validation("Content and action are required")
	}
	actionPrompt, ok := constant.WritingActionPrompts[req.Action]
	if !ok {
		return nil, apperrors.Validation("Invalid action")
	}
	if err := s.ensureConfigured(); err != nil {
		return nil, err
	}

	history := []llm.Message{
		{Role: llm.RoleSystem, Content: constant.WritingAssistSystemPrompt},
		{Role: llm.RoleUser, Content: fmt.Sprintf("%s\n\n%s", actionPrompt, req.Content)},
	}

	reply, err := s.provider.Chat(ctx, history, llm.WithTemperature(0.7), llm.WithMaxTokens(1000))
	if err != nil {
		return nil, apperrors.Gateway(err, "Failed to process text")
	}

	return &dto.WritingAssistResponse{Result: strings.TrimSpace(reply)}, nil
}

func (s *assistantService) Translate(ctx context.Context, userId uuid.UUID, req *dto.TranslateRequest) (*dto.TranslateResponse, error) {
	if strings.TrimSpace(req.Content) == "" || strings.TrimSpace(req.TargetLanguage) == "" {
		return nil, apperrors.Validation("Content and target language are required")
	}
	if err := s.ensureConfigured(); err != nil {
		return nil, err
	}

	history := []llm.Message{
		{Role: llm.RoleSystem, Content: fmt.Sprintf(constant.TranslateSystemPromptFmt, req.TargetLanguage)},
		{Role: llm.RoleUser, Content: req.Content},
	}

	reply, err := s.provider.Chat(ctx, history, llm.WithTemperature(0.3), llm.WithMaxTokens(2000))
	if err != nil {
		return nil, apperrors.Gateway(err, "Failed to translate text")
	}

	return &dto.TranslateResponse{Translation: strings.TrimSpace(reply)}, nil
}

func (s *assistantService) CheckGrammar(ctx context.Context, userId uuid.UUID, req *dto.GrammarRequest) (*dto.GrammarResponse, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, apperrors.Validation("Content is required")
	}
	if err := s.ensureConfigured(); err != nil {
		return nil, err
	}

	history := []llm.Message{
		{Role: llm.RoleSystem, Content: constant.GrammarSystemPrompt},
		{Role: llm.RoleUser, Content: fmt.Sprintf("Check grammar and spelling in this text:\n\n%s", req.Content)},
	}

	reply, err := s.provider.Chat(ctx, history, llm.WithTemperature(0.3), llm.WithMaxTokens(2000), llm.WithJSONObject())
	if err != nil {
		return nil, apperrors.Gateway(err, "Failed to check grammar")
	}

	var res dto.GrammarResponse
	if err := decodeModelJSON(reply, &res); err != nil {
		// A malformed model reply degrades to an empty report rather
		// than failing the request.
		s.logger.Warn("AssistantService", "Grammar reply was not valid JSON", map[string]interface{}{"error": err.Error()})
		return &dto.GrammarResponse{Errors: []dto.GrammarIssue{}}, nil
	}
	if res.Errors == nil {
		res.Errors = []dto.GrammarIssue{}
	}
	return &res, nil
}

func (s *assistantService) AnalyzeSentiment(ctx context.Context, userId uuid.UUID, req *dto.SentimentRequest) (*dto.SentimentResponse, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, apperrors.Validation("Content is required")
	}
	if err := s.ensureConfigured(); err != nil {
		return nil, err
	}

	history := []llm.Message{
		{Role: llm.RoleSystem, Content: constant.SentimentSystemPrompt},
		{Role: llm.RoleUser, Content: fmt.Sprintf("Analyze the sentiment of this text:\n\n%s", req.Content)},
	}

	reply, err := s.provider.Chat(ctx, history, llm.WithTemperature(0.3), llm.WithMaxTokens(300), llm.WithJSONObject())
	if err != nil {
		return nil, apperrors.Gateway(err, "Failed to analyze sentiment")
	}

	var res dto.SentimentResponse
	if err := decodeModelJSON(reply, &res); err != nil {
		s.logger.Warn("AssistantService", "Sentiment reply was not valid JSON", map[string]interface{}{"error": err.Error()})
		return &dto.SentimentResponse{Emotions: []string{}}, nil
	}
	if res.Emotions == nil {
		res.Emotions = []string{}
	}
	return &res, nil
}

func (s *assistantService) Chat(ctx context.Context, userId uuid.UUID, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, apperrors.Validation("Message is required")
	}
	if err := s.ensureConfigured(); err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	systemPrompt := constant.ChatSystemPromptBase

	if req.NoteId != nil {
		// Attach the referenced note when it belongs to the caller; an
		// unknown or foreign id just means no note context.
		note, err := uow.NoteRepository().FindOne(ctx,
			specification.ByID{ID: *req.NoteId},
			specification.OwnedBy{UserID: userId},
		)
		if err != nil {
			return nil, err
		}
		if note != nil {
			systemPrompt += fmt.Sprintf("\n\nNote Context:\nTitle: %s\nContent: %s", note.Title, note.Content)
		}
	}

	digest, err := s.recentNotesDigest(ctx, uow, userId)
	if err != nil {
		return nil, err
	}
	if digest != "" {
		systemPrompt += "\n\nYour recent notes: " + digest
	}

	history := make([]llm.Message, 0, len(req.ConversationHistory)+2)
	history = append(history, llm.Message{Role: llm.RoleSystem, Content: systemPrompt})
	for _, turn := range req.ConversationHistory {
		history = append(history, llm.Message{Role: turn.Role, Content: turn.Content})
	}
	history = append(history, llm.Message{Role: llm.RoleUser, Content: req.Message})

	reply, err := s.provider.Chat(ctx, history, llm.WithTemperature(0.7), llm.WithMaxTokens(1000))
	if err != nil {
		return nil, apperrors.Gateway(err, "Failed to process chat message")
	}

	s.persistChatTurn(ctx, uow, userId, req, reply)

	return &dto.ChatResponse{Reply: reply}, nil
}

func (s *assistantService) GetChatHistory(ctx context.Context, userId uuid.UUID, noteId *uuid.UUID, limit int) (*dto.ChatHistoryResponse, error) {
	if limit <= 0 {
		limit = defaultChatHistoryLimit
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.OwnedBy{UserID: userId},
	}
	if noteId != nil {
		specs = append(specs, specification.ByNoteID{NoteID: *noteId})
	}
	specs = append(specs,
		specification.OrderBy{Field: "created_at", Desc: false},
		specification.Pagination{Limit: limit},
	)

	messages, err := uow.ChatMessageRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	res := dto.ChatHistoryResponse{Messages: make([]dto.ChatMessageResponse, 0, len(messages))}
	for _, m := range messages {
		res.Messages = append(res.Messages, dto.ChatMessageResponse{
			Id:        m.Id,
			Role:      m.Role,
			Content:   m.Content,
			NoteId:    m.NoteId,
			CreatedAt: m.CreatedAt,
		})
	}
	return &res, nil
}

// recentNotesDigest returns a titles-and-tags listing of the user's latest
// non-archived notes for prompt context. The digest is cached per user and
// evicted by the event consumer when the user's notes change.
func (s *assistantService) recentNotesDigest(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) (string, error) {
	if cached, found := s.contextCache.GetDigest(userId); found {
		return cached, nil
	}

	notes, err := uow.NoteRepository().FindAll(ctx,
		specification.OwnedBy{UserID: userId},
		specification.Archived{Value: false},
		specification.OrderBy{Field: "updated_at", Desc: true},
		specification.Pagination{Limit: recentNotesForContext},
	)
	if err != nil {
		return "", err
	}

	parts := make([]string, 0, len(notes))
	for _, note := range notes {
		parts = append(parts, fmt.Sprintf("%q (tags: %s)", note.Title, strings.Join(note.Tags, ", ")))
	}

	digest := strings.Join(parts, ", ")
	s.contextCache.SaveDigest(userId, digest)
	return digest, nil
}

// persistChatTurn stores the user message and assistant reply. The reply is
// already in hand, so persistence failures log instead of failing the call.
func (s *assistantService) persistChatTurn(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, req *dto.ChatRequest, reply string) {
	now := time.Now()
	rows := []entity.ChatMessage{
		{
			Id:        uuid.New(),
			UserId:    userId,
			Role:      constant.ChatMessageRoleUser,
			Content:   req.Message,
			NoteId:    req.NoteId,
			CreatedAt: now,
		},
		{
			Id:        uuid.New(),
			UserId:    userId,
			Role:      constant.ChatMessageRoleAssistant,
			Content:   reply,
			NoteId:    req.NoteId,
			CreatedAt: now.Add(time.Millisecond),
		},
	}
	for i := range rows {
		if err := uow.ChatMessageRepository().Create(ctx, &rows[i]); err != nil {
			s.logger.Warn("AssistantService", "Failed to persist chat message", map[string]interface{}{
				"role":  rows[i].Role,
				"error": err.Error(),
			})
			return
		}
	}
}

// parseTagList turns a comma-separated model reply into clean tags.
func parseTagList(reply string) []string {
	parts := strings.Split(reply, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if tag := strings.TrimSpace(p); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// decodeModelJSON unmarshals a model reply that should be a JSON object,
// tolerating markdown code fences some models wrap around it.
func decodeModelJSON(reply string, v interface{}) error {
	cleaned := strings.TrimSpace(reply)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)
	return json.Unmarshal([]byte(cleaned), v)
}
