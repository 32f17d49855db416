package dto

import "errors"

// Custom errors
var (
	ErrUnsupportedMediaType = errors.New("file must be an image (JPG, PNG, GIF, BMP, WEBP) or PDF")
	ErrNoTextExtracted      = errors.New("no text could be extracted from the PDF")
	ErrOCRExhausted         = errors.New("no text was extracted from the image")
	ErrNoFileUploaded       = errors.New("no file uploaded")
	ErrNoTextProvided       = errors.New("no OCR text provided")
)
