package extract

import (
	"context"
)

// TextExtractor is the file-format boundary: path in, cleaned text out.
// PDF/image decoding and OCR live behind implementations of this
// interface; the pipeline only sees whitespace-normalized text.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (string, error)
}
