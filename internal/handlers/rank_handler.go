package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"cvscreen/dreamteam/internal/models"
	"cvscreen/dreamteam/internal/services"
)

type RankHandler struct {
	ranker services.RankerService
}

func NewRankHandler(ranker services.RankerService) *RankHandler {
	return &RankHandler{ranker: ranker}
}

// HandleRank handles POST /rank
func (h *RankHandler) HandleRank(c *fiber.Ctx) error {
	var req models.RankRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	report, err := h.ranker.Rank(c.UserContext(), req.RoleDescription)
	if errors.Is(err, services.ErrEmptyRoleDescription) {
		return fiber.NewError(fiber.StatusBadRequest, "role_description is required")
	}
	if err != nil {
		return err
	}

	return c.JSON(report)
}
