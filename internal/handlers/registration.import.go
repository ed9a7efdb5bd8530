package handlers

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"github.com/Prabhugems/AMASI-management-sub013/internal/domain/vo"
)

type RegistrationImportService interface {
	Import(ctx context.Context, eventCode string, csvData io.Reader) (vo.ImportSummary, error)
}

type RegistrationImportHandler struct {
	service RegistrationImportService
	logger  *slog.Logger
}

func NewRegistrationImportHandler(service RegistrationImportService, logger *slog.Logger) *RegistrationImportHandler {
	return &RegistrationImportHandler{service: service, logger: logger}
}

func (h *RegistrationImportHandler) Register(router fiber.Router) {
	router.Post("/events/:event_code/registrations/import", h.Handle)
}

// Handle accepts the CSV as the raw request body (text/csv). The response
// reports per-row outcomes; rows that failed are listed with the
// registration number they consumed.
func (h *RegistrationImportHandler) Handle(c fiber.Ctx) error {
	eventCode := c.Params("event_code")

	body := c.BodyRaw()
	if len(body) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "request body must contain CSV data"})
	}

	summary, err := h.service.Import(c.Context(), eventCode, bytes.NewReader(body))
	if err != nil {
		switch {
		case errors.Is(err, vo.ErrEventCodeRequired):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "event code is required"})
		case errors.Is(err, vo.ErrEmptyImportFile):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "import file has no rows"})
		case errors.Is(err, vo.ErrInvalidImportFile):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "import file could not be parsed"})
		default:
			h.logger.Error("failed to import registrations", "event_code", eventCode, "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
		}
	}

	return c.Status(fiber.StatusOK).JSON(summary)
}
