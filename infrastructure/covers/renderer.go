package covers

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/gen2brain/go-fitz"
)

const (
	coverWidth  = 300
	coverHeight = 450
	jpegQuality = 85
)

// RenderFirstPage rasterizes the first page of a PDF document.
func RenderFirstPage(data []byte) (image.Image, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("failed to open document: %w", err)
	}
	defer doc.Close()

	if doc.NumPage() == 0 {
		return nil, fmt.Errorf("document has no pages")
	}

	img, err := doc.Image(0)
	if err != nil {
		return nil, fmt.Errorf("failed to render first page: %w", err)
	}

	return img, nil
}

// EncodeCover scales an image to cover dimensions and encodes it as JPEG.
func EncodeCover(img image.Image) ([]byte, error) {
	fitted := imaging.Fit(img, coverWidth, coverHeight, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, fitted, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, fmt.Errorf("failed to encode cover: %w", err)
	}

	return buf.Bytes(), nil
}
