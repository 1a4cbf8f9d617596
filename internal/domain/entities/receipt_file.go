package entities

import (
	"errors"
	"time"

	"github.com/gabriel-vasile/mimetype"
)

// MaxReceiptFileSize bounds uploaded payment receipts.
const MaxReceiptFileSize = 5 << 20

var (
	ErrReceiptFileEmpty       = errors.New("receipt file is empty")
	ErrReceiptFileTooLarge    = errors.New("receipt file too large")
	ErrReceiptFileUnsupported = errors.New("receipt file type not supported")
)

var allowedReceiptTypes = []string{"image/jpeg", "image/png", "image/webp", "application/pdf"}

// ReceiptFile is a payment receipt photo or PDF attached to a transaction.
type ReceiptFile struct {
	Key         string    `json:"key"`
	Filename    string    `json:"filename,omitempty"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	Data        []byte    `json:"-"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// DetectReceiptContentType validates a receipt payload and returns its sniffed
// content type. The declared filename or header is never trusted.
func DetectReceiptContentType(data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrReceiptFileEmpty
	}
	if len(data) > MaxReceiptFileSize {
		return "", ErrReceiptFileTooLarge
	}
	mt := mimetype.Detect(data)
	for _, allowed := range allowedReceiptTypes {
		if mt.Is(allowed) {
			return allowed, nil
		}
	}
	return "", ErrReceiptFileUnsupported
}
