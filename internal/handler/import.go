package handler

import (
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"taxidash/internal/domain"
	"taxidash/internal/service"
)

// maxImportBytes caps the size of an import request body.
const maxImportBytes = 32 << 20

// ImportHandler handles trip imports.
type ImportHandler struct {
	importService *service.ImportService
}

// NewImportHandler creates a new ImportHandler.
func NewImportHandler(importService *service.ImportService) *ImportHandler {
	return &ImportHandler{importService: importService}
}

// ImportTrips handles POST /v1/trips/import
//
// Accepts a CSV body (text/csv), a multipart upload with a "file" field, or a
// JSON object or array of trips.
func (h *ImportHandler) ImportTrips(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImportBytes)
	ctx := c.Request.Context()

	var (
		result *domain.ImportResult
		err    error
	)

	switch mediaType(c.GetHeader("Content-Type")) {
	case "text/csv", "application/csv":
		result, err = h.importService.ImportCSV(ctx, c.Request.Body)

	case "multipart/form-data":
		file, ferr := c.FormFile("file")
		if ferr != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing file field"})
			return
		}
		f, ferr := file.Open()
		if ferr != nil {
			respondError(c, ferr)
			return
		}
		defer f.Close()
		result, err = h.importService.ImportCSV(ctx, f)

	default:
		body, rerr := io.ReadAll(c.Request.Body)
		if rerr != nil {
			respondError(c, rerr)
			return
		}
		result, err = h.importService.ImportJSON(ctx, body)
	}

	if err != nil {
		respondError(c, err)
		return
	}

	code := http.StatusCreated
	if result.Imported == 0 {
		code = http.StatusOK
	}
	respondJSON(c, code, result)
}

func mediaType(contentType string) string {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return mt
}
