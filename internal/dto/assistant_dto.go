package dto

import (
	"time"

	"github.com/google/uuid"
)

type SummarizeRequest struct {
	Content string `json:"content"`
	Length  string `json:"length"`
}

type SummarizeResponse struct {
	Summary string `json:"summary"`
}

type GenerateTagsRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type GenerateTagsResponse struct {
	Tags []string `json:"tags"`
}

type WritingAssistRequest struct {
	Content string `json:"content"`
	Action  string `json:"action"`
}

type WritingAssistResponse struct {
	Result string `json:"result"`
}

type TranslateRequest struct {
	Content        string `json:"content"`
	TargetLanguage string `json:"targetLanguage"`
}

type TranslateResponse struct {
	Translation string `json:"translation"`
}

type GrammarRequest struct {
	Content string `json:"content"`
}

type GrammarIssue struct {
	Type        string `json:"type"`
	Original    string `json:"original"`
	Correction  string `json:"correction"`
	Explanation string `json:"explanation"`
}

type GrammarResponse struct {
	CorrectedText string         `json:"correctedText"`
	Errors        []GrammarIssue `json:"errors"`
	ErrorCount    int            `json:"errorCount"`
}

type SentimentRequest struct {
	Content string `json:"content"`
}

type SentimentResponse struct {
	Sentiment  string   `json:"sentiment"`
	Confidence float64  `json:"confidence"`
	Emotions   []string `json:"emotions"`
	Summary    string   `json:"summary"`
}

type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Message string `json:"message"`
	NoteId  *uuid.UUID `json:"noteId"`
	// ConversationHistory is replayed to the model verbatim; the server
	// does not validate or rewrite prior turns.
	ConversationHistory []ChatTurn `json:"conversationHistory"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}

type ChatMessageResponse struct {
	Id        uuid.UUID  `json:"id"`
	Role      string     `json:"role"`
	Content   string     `json:"content"`
	NoteId    *uuid.UUID `json:"noteId"`
	CreatedAt time.Time  `json:"createdAt"`
}

type ChatHistoryResponse struct {
	Messages []ChatMessageResponse `json:"messages"`
}
