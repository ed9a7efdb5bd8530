package handlers

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"github.com/Prabhugems/AMASI-management-sub013/internal/domain/vo"
	"github.com/Prabhugems/AMASI-management-sub013/internal/services"
)

type AbstractService interface {
	Submit(ctx context.Context, eventCode string, input services.SubmitAbstractInput) (vo.AbstractSubmission, error)
	ListByEvent(ctx context.Context, eventCode string) ([]vo.AbstractSubmission, error)
}

type AbstractHandler struct {
	service AbstractService
	logger  *slog.Logger
}

type submitAbstractRequest struct {
	Title          string `json:"title"`
	Category       string `json:"category"`
	PresenterName  string `json:"presenter_name"`
	PresenterEmail string `json:"presenter_email"`
}

func NewAbstractHandler(service AbstractService, logger *slog.Logger) *AbstractHandler {
	return &AbstractHandler{service: service, logger: logger}
}

func (h *AbstractHandler) Register(router fiber.Router) {
	router.Post("/events/:event_code/abstracts", h.Submit)
	router.Get("/events/:event_code/abstracts", h.List)
}

func (h *AbstractHandler) Submit(c fiber.Ctx) error {
	eventCode := c.Params("event_code")

	var requestBody submitAbstractRequest
	if err := c.Bind().JSON(&requestBody); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	result, err := h.service.Submit(c.Context(), eventCode, services.SubmitAbstractInput{
		Title:          requestBody.Title,
		Category:       requestBody.Category,
		PresenterName:  requestBody.PresenterName,
		PresenterEmail: requestBody.PresenterEmail,
	})
	if err != nil {
		switch {
		case errors.Is(err, vo.ErrEventCodeRequired):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "event code is required"})
		case errors.Is(err, vo.ErrInvalidSubmission):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, vo.ErrAbstractNumberExhausted):
			// Allocation retries ran out; the client can simply retry.
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "could not allocate a unique abstract number, try again"})
		default:
			h.logger.Error("failed to submit abstract", "event_code", eventCode, "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}

func (h *AbstractHandler) List(c fiber.Ctx) error {
	eventCode := c.Params("event_code")

	abstracts, err := h.service.ListByEvent(c.Context(), eventCode)
	if err != nil {
		if errors.Is(err, vo.ErrEventCodeRequired) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "event code is required"})
		}

		h.logger.Error("failed to list abstracts", "event_code", eventCode, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"abstracts": abstracts})
}
