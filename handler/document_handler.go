package handler

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/phuslu/log"

	"github.com/finadvisor/findoc-ocr/dto"
	"github.com/finadvisor/findoc-ocr/service"
)

type DocumentHandler struct {
	documentService *service.DocumentService
	maxFileSize     int64
}

func NewDocumentHandler(documentService *service.DocumentService, maxFileSize int64) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
		maxFileSize:     maxFileSize,
	}
}

// UploadDocument handles POST /documents/upload: receives a multipart file,
// stages it in temp storage and runs the extraction pipeline over it. The
// pipeline owns temp-file deletion from this point on.
func (h *DocumentHandler) UploadDocument(c *gin.Context) {
	fileHeader, err := c.FormFile("document")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: dto.ErrNoFileUploaded.Error()})
		return
	}
	if fileHeader.Size > h.maxFileSize {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: fmt.Sprintf("file exceeds maximum size of %d bytes", h.maxFileSize),
		})
		return
	}

	mediaType := fileHeader.Header.Get("Content-Type")
	log.Info().Str("filename", fileHeader.Filename).Str("media_type", mediaType).Msg("file received")

	tempPath, err := stageTempFile(fileHeader)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "failed to store uploaded file"})
		return
	}

	response, err := h.documentService.ProcessUpload(c.Request.Context(), tempPath, mediaType)
	if err != nil {
		// The body still carries the full error-shaped payload.
		c.JSON(http.StatusInternalServerError, response)
		return
	}
	c.JSON(http.StatusOK, response)
}

// ExtractFromText handles POST /documents/extract: runs the extraction
// pipeline over text the caller already acquired.
func (h *DocumentHandler) ExtractFromText(c *gin.Context) {
	var request dto.ExtractTextRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: dto.ErrNoTextProvided.Error()})
		return
	}
	if err := request.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	response := h.documentService.ProcessText(c.Request.Context(), request.OCRText)
	c.JSON(http.StatusOK, response)
}

// stageTempFile copies an uploaded file into temp storage, keeping the
// original extension for the OCR engine.
func stageTempFile(fileHeader *multipart.FileHeader) (string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer file.Close()

	ext := filepath.Ext(fileHeader.Filename)
	tempFile, err := os.CreateTemp("", "findoc-*"+ext)
	if err != nil {
		return "", err
	}
	defer tempFile.Close()

	if _, err := io.Copy(tempFile, file); err != nil {
		os.Remove(tempFile.Name())
		return "", err
	}
	return tempFile.Name(), nil
}
