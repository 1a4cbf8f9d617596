package handlers

import (
	"errors"
	response "fieldops/internal/adapter/http/dto/response"
	"fieldops/internal/domain/entities"
	"fieldops/internal/usecase"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// multipart framing allowance on top of the file itself
const uploadOverhead = 64 << 10

type UploadHandler struct {
	usecase usecase.IReceiptUploadUseCase
}

func NewUploadHandler(uc usecase.IReceiptUploadUseCase) *UploadHandler {
	return &UploadHandler{usecase: uc}
}

// UploadReceipt stores a receipt photo or PDF and returns its key.
//
// @Summary      Upload a receipt photo or PDF
// @Tags         uploads
// @Accept       multipart/form-data
// @Produce      json
// @Param        file             formData  file    true  "JPEG, PNG, WEBP or PDF up to 5 MiB"
// @Param        X-Team-Id        header    string  true  "Team ID"
// @Param        X-Team-Password  header    string  true  "Team password"
// @Success      201  {object}  response.UploadResponse
// @Failure      413  {object}  pkg.HTTPError
// @Failure      415  {object}  pkg.HTTPError
// @Router       /uploads [post]
func (h *UploadHandler) UploadReceipt(c *gin.Context) {
	teamID := c.GetHeader(HeaderTeamID)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, entities.MaxReceiptFileSize+uploadOverhead)

	header, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(c, mapUploadError(entities.ErrReceiptFileTooLarge))
			return
		}
		writeError(c, errInvalidRequest)
		return
	}
	if header.Size > entities.MaxReceiptFileSize {
		writeError(c, mapUploadError(entities.ErrReceiptFileTooLarge))
		return
	}

	f, err := header.Open()
	if err != nil {
		writeError(c, errInvalidRequest)
		return
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, entities.MaxReceiptFileSize+1))
	if err != nil {
		writeError(c, errInvalidRequest)
		return
	}

	stored, err := h.usecase.Upload(c.Request.Context(), teamID, c.GetHeader(HeaderTeamPassword), header.Filename, data)
	if err != nil {
		log.Printf("[upload][handler] failed team_id=%s filename=%s err=%v", teamID, header.Filename, err)
		writeError(c, mapUploadError(err))
		return
	}
	log.Printf("[upload][handler] stored team_id=%s key=%s size=%d", teamID, stored.Key, stored.Size)

	c.JSON(http.StatusCreated, response.FromReceiptFile(stored))
}
