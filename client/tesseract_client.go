package client

import (
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
	"github.com/phuslu/log"

	"github.com/finadvisor/findoc-ocr/dto"
)

// enhancedWhitelist restricts recognition to characters that appear in
// financial documents, which cuts down on noise from decorative elements.
const enhancedWhitelist = `0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz.,$€£¥₹()[]{}:;@#%&*!?-_+=/\|<>"'`

// OCRStrategy is one named recognition pass. Strategies are executed
// strictly in declaration order; the first one returning non-empty text
// wins.
type OCRStrategy struct {
	Name string
	Run  func(filePath string) (string, error)
}

// TesseractClient runs Tesseract OCR over an ordered list of recognition
// strategies, falling from one to the next until text comes back.
type TesseractClient struct {
	dataPath   string
	strategies []OCRStrategy
}

// NewTesseractClient creates a client with the default strategy chain:
// a standard pass, an enhanced pass with a character whitelist and fixed
// page segmentation, and a pass tuned for sparse or noisy text.
func NewTesseractClient(dataPath string) *TesseractClient {
	tc := &TesseractClient{dataPath: dataPath}
	tc.strategies = []OCRStrategy{
		{Name: "standard", Run: func(path string) (string, error) {
			return tc.recognize(path, nil)
		}},
		{Name: "enhanced", Run: func(path string) (string, error) {
			return tc.recognize(path, func(c *gosseract.Client) error {
				if err := c.SetWhitelist(enhancedWhitelist); err != nil {
					return err
				}
				if err := c.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK); err != nil {
					return err
				}
				if err := c.SetVariable("preserve_interword_spaces", "1"); err != nil {
					return err
				}
				return c.SetVariable("tessedit_ocr_engine_mode", "3")
			})
		}},
		{Name: "sparse-text", Run: func(path string) (string, error) {
			return tc.recognize(path, func(c *gosseract.Client) error {
				if err := c.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK); err != nil {
					return err
				}
				if err := c.SetVariable("textord_heavy_nr", "1"); err != nil {
					return err
				}
				return c.SetVariable("textord_min_linesize", "2.5")
			})
		}},
	}
	return tc
}

// NewTesseractClientWithStrategies creates a client with a caller-supplied
// strategy chain.
func NewTesseractClientWithStrategies(strategies []OCRStrategy) *TesseractClient {
	return &TesseractClient{strategies: strategies}
}

// ExtractText runs the strategy chain against an image file. It returns the
// extracted text and the name of the strategy that produced it. A strategy
// error is logged and the next strategy is tried; only when every strategy
// errors or returns empty text does ExtractText fail, with the tried
// strategy names attached.
func (tc *TesseractClient) ExtractText(filePath string) (string, string, error) {
	tried := make([]string, 0, len(tc.strategies))

	for _, strategy := range tc.strategies {
		tried = append(tried, strategy.Name)

		text, err := strategy.Run(filePath)
		if err != nil {
			log.Warn().Str("config", strategy.Name).Err(err).Msg("OCR configuration failed, trying next")
			continue
		}
		if strings.TrimSpace(text) != "" {
			return text, strategy.Name, nil
		}
		log.Debug().Str("config", strategy.Name).Msg("OCR configuration returned empty text, trying next")
	}

	return "", "", fmt.Errorf("%w (tried configurations: %s)", dto.ErrOCRExhausted, strings.Join(tried, ", "))
}

func (tc *TesseractClient) recognize(filePath string, configure func(*gosseract.Client) error) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if tc.dataPath != "" {
		client.SetTessdataPrefix(tc.dataPath)
	}
	if err := client.SetLanguage("eng"); err != nil {
		return "", fmt.Errorf("failed to set language: %w", err)
	}
	if configure != nil {
		if err := configure(client); err != nil {
			return "", fmt.Errorf("failed to apply configuration: %w", err)
		}
	}
	if err := client.SetImage(filePath); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("failed to extract text: %w", err)
	}
	return text, nil
}
