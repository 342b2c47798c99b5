package controller

import (
	"building-chat-be/internal/dto"
	"building-chat-be/internal/pkg/serverutils"
	"building-chat-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	SendMessage(ctx *fiber.Ctx) error
	DailyCosts(ctx *fiber.Ctx) error
	MonthlyCosts(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
	costService service.ICostService
}

func NewChatController(chatService service.IChatService, costService service.ICostService) IChatController {
	return &chatController{
		chatService: chatService,
		costService: costService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("message", c.SendMessage)
	h.Get("costs/daily", c.DailyCosts)
	h.Get("costs/monthly", c.MonthlyCosts)
}

func (c *chatController) SendMessage(ctx *fiber.Ctx) error {
	userEmail, _ := ctx.Locals("user_email").(string)

	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	err := serverutils.ValidateRequest(req)
	if err != nil {
		return err
	}

	res, err := c.chatService.Send(ctx.Context(), userEmail, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success process chat message", res))
}

func (c *chatController) DailyCosts(ctx *fiber.Ctx) error {
	date := ctx.Query("date", "")

	res, err := c.costService.DailyCosts(ctx.Context(), date)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success fetch daily costs", res))
}

func (c *chatController) MonthlyCosts(ctx *fiber.Ctx) error {
	month := ctx.Query("month", "")

	res, err := c.costService.MonthlyCosts(ctx.Context(), month)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success fetch monthly costs", res))
}
