package thumbnail

import (
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/gen2brain/go-fitz"
)

// ErrNoPages is returned for PDFs that parse but contain no pages.
var ErrNoPages = errors.New("pdf has no pages")

// FitzRenderer renders pages with MuPDF through go-fitz.
type FitzRenderer struct{}

// NewFitzRenderer returns the MuPDF-backed Renderer.
func NewFitzRenderer() *FitzRenderer {
	return &FitzRenderer{}
}

func (FitzRenderer) FirstPage(r io.Reader) (image.Image, error) {
	doc, err := fitz.NewFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}
	defer doc.Close()

	if doc.NumPage() == 0 {
		return nil, ErrNoPages
	}
	return doc.Image(0)
}
