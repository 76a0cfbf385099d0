package handlers

import (
	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Upload    *UploadHandler
	Documents *DocumentHandler
	Evaluate  *EvaluationHandler
	Rank      *RankHandler
}

// RegisterRoutes mounts the document and screening endpoints on router.
func RegisterRoutes(router fiber.Router, h Handlers) {
	router.Post("/upload", h.Upload.HandleUpload)

	router.Get("/documents", h.Documents.HandleList)
	router.Delete("/documents", h.Documents.HandleDeleteMany)
	router.Delete("/documents/:filename", h.Documents.HandleDeleteOne)

	router.Post("/evaluate", h.Evaluate.HandleEvaluate)
	router.Post("/rank", h.Rank.HandleRank)
}
