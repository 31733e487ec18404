package controller

import (
	"notesai-be/internal/dto"
	"notesai-be/internal/pkg/serverutils"
	"notesai-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAssistantController interface {
	RegisterRoutes(r fiber.Router)
	Chat(ctx *fiber.Ctx) error
	ChatHistory(ctx *fiber.Ctx) error
	Summarize(ctx *fiber.Ctx) error
	GenerateTags(ctx *fiber.Ctx) error
	WritingAssist(ctx *fiber.Ctx) error
	Translate(ctx *fiber.Ctx) error
	CheckGrammar(ctx *fiber.Ctx) error
	AnalyzeSentiment(ctx *fiber.Ctx) error
}

type assistantController struct {
	assistantService service.IAssistantService
}

func NewAssistantController(assistantService service.IAssistantService) IAssistantController {
	return &assistantController{
		assistantService: assistantService,
	}
}

func (c *assistantController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/ai")
	h.Use(serverutils.JwtMiddleware)
	h.Post("chat", c.Chat)
	h.Get("chat", c.ChatHistory)
	h.Post("summarize", c.Summarize)
	h.Post("tags", c.GenerateTags)
	h.Post("writing-assist", c.WritingAssist)
	h.Post("translate", c.Translate)
	h.Post("grammar", c.CheckGrammar)
	h.Post("sentiment", c.AnalyzeSentiment)
}

func (c *assistantController) Chat(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	res, err := c.assistantService.Chat(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *assistantController) ChatHistory(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	var noteId *uuid.UUID
	if raw := ctx.Query("noteId"); raw != "" {
		if parsed, err := uuid.Parse(raw); err == nil {
			noteId = &parsed
		}
	}
	limit := ctx.QueryInt("limit")

	res, err := c.assistantService.GetChatHistory(ctx.Context(), userId, noteId, limit)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *assistantController) Summarize(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	var req dto.SummarizeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	res, err := c.assistantService.Summarize(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *assistantController) GenerateTags(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	var req dto.GenerateTagsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	res, err := c.assistantService.GenerateTags(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *assistantController) WritingAssist(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	var req dto.WritingAssistRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	res, err := c.assistantService.WritingAssist(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *assistantController) Translate(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	var req dto.TranslateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	res, err := c.assistantService.Translate(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *assistantController) CheckGrammar(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	var req dto.GrammarRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	res, err := c.assistantService.CheckGrammar(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *assistantController) AnalyzeSentiment(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	var req dto.SentimentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	res, err := c.assistantService.AnalyzeSentiment(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}
