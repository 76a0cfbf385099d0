package handlers

import (
	"errors"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"cvscreen/dreamteam/internal/models"
	"cvscreen/dreamteam/internal/services"
)

type DocumentHandler struct {
	store services.DocumentStore
}

func NewDocumentHandler(store services.DocumentStore) *DocumentHandler {
	return &DocumentHandler{store: store}
}

// HandleList handles GET /documents
func (h *DocumentHandler) HandleList(c *fiber.Ctx) error {
	names, err := h.store.List(c.UserContext())
	if err != nil {
		return err
	}

	return c.JSON(models.DocumentListResponse{Documents: names})
}

// HandleDeleteMany handles DELETE /documents. Missing files are reported but
// are not an error.
func (h *DocumentHandler) HandleDeleteMany(c *fiber.Ctx) error {
	var req models.DeleteRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	resp := models.DeleteResponse{
		Deleted: []string{},
		Missing: []string{},
	}

	// Nothing is deleted unless every name is acceptable.
	for _, name := range req.Filenames {
		if err := services.ValidateStoredName(name); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
	}

	for _, name := range req.Filenames {
		deleted, err := h.store.Delete(c.UserContext(), name)
		if err != nil {
			return err
		}

		if deleted {
			resp.Deleted = append(resp.Deleted, name)
		} else {
			resp.Missing = append(resp.Missing, name)
		}
	}

	return c.JSON(resp)
}

// HandleDeleteOne handles DELETE /documents/:filename
func (h *DocumentHandler) HandleDeleteOne(c *fiber.Ctx) error {
	name, err := url.PathUnescape(c.Params("filename"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid filename")
	}

	deleted, err := h.store.Delete(c.UserContext(), name)
	if errors.Is(err, services.ErrInvalidFilename) {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err != nil {
		return err
	}

	resp := models.DeleteResponse{Deleted: []string{}, Missing: []string{}}
	if deleted {
		resp.Deleted = append(resp.Deleted, name)
	} else {
		resp.Missing = append(resp.Missing, name)
	}

	return c.JSON(resp)
}
