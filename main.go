package main

import (
	"context"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/phuslu/log"

	"github.com/finadvisor/findoc-ocr/client"
	"github.com/finadvisor/findoc-ocr/config"
	"github.com/finadvisor/findoc-ocr/handler"
	"github.com/finadvisor/findoc-ocr/service"
)

func main() {
	cfg := config.LoadConfig()

	// Tesseract v5 resolves its language data through this variable.
	os.Setenv("TESSDATA_PREFIX", cfg.TesseractDataPath)
	log.Info().Str("tessdata_prefix", cfg.TesseractDataPath).Msg("tesseract configured")

	// The Gemini client is optional: without a key the pipeline degrades to
	// heuristic extraction instead of refusing to start.
	var generator service.Generator
	if cfg.GeminiAPIKey != "" {
		geminiClient, err := client.NewGeminiClient(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiTimeout)
		if err != nil {
			log.Warn().Err(err).Msg("failed to initialize Gemini client, falling back to basic analysis")
		} else {
			generator = geminiClient
			log.Info().Str("model", cfg.GeminiModel).Msg("Gemini client configured")
		}
	} else {
		log.Warn().Msg("GEMINI_API_KEY not set, AI extraction disabled")
	}

	acquirer := service.NewTextAcquirer(
		service.NewPDFProcessor(),
		client.NewTesseractClient(cfg.TesseractDataPath),
		client.NewBarcodeClient(),
	)
	documentService := service.NewDocumentService(acquirer, service.NewFinancialExtractor(generator))
	documentHandler := handler.NewDocumentHandler(documentService, cfg.MaxFileSize)

	router := gin.Default()
	router.MaxMultipartMemory = 32 << 20

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "Financial Document Extraction",
		})
	})

	api := router.Group("/api/v1")
	{
		documents := api.Group("/documents")
		{
			documents.POST("/upload", documentHandler.UploadDocument)
			documents.POST("/extract", documentHandler.ExtractFromText)
		}
	}

	log.Info().Str("port", cfg.ServerPort).Msg("starting Financial Document Extraction Service")
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
