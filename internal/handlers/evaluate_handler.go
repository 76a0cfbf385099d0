package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"cvscreen/dreamteam/internal/models"
	"cvscreen/dreamteam/internal/services"
)

type EvaluationHandler struct {
	pdfParser services.PDFParserService
	evaluator services.EvaluatorService
}

func NewEvaluationHandler(pdfParser services.PDFParserService, evaluator services.EvaluatorService) *EvaluationHandler {
	return &EvaluationHandler{
		pdfParser: pdfParser,
		evaluator: evaluator,
	}
}

// HandleEvaluate handles POST /evaluate. An LLM failure is not an HTTP
// error: the response carries it in its error field next to the extracted
// text.
func (h *EvaluationHandler) HandleEvaluate(c *fiber.Ctx) error {
	var req models.EvaluateRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	text, err := h.pdfParser.ExtractText(c.UserContext(), req.Filename)
	switch {
	case errors.Is(err, services.ErrDocumentNotFound):
		return fiber.NewError(fiber.StatusNotFound, services.ExtractionMessage(req.Filename, err))
	case errors.Is(err, services.ErrInvalidFilename):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case err != nil:
		return fiber.NewError(fiber.StatusUnprocessableEntity, services.ExtractionMessage(req.Filename, err))
	}

	resp := models.EvaluateResponse{
		Filename:      req.Filename,
		ExtractedText: text,
	}

	evaluation, err := h.evaluator.Evaluate(c.UserContext(), text)
	if err != nil {
		resp.Error = err.Error()
	} else {
		resp.Evaluation = evaluation
	}

	return c.JSON(resp)
}
