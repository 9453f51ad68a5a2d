package thumbnail

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"regexp"

	"github.com/disintegration/imaging"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"pdfmanager/internal/config"
	"pdfmanager/internal/storage"
)

const (
	Suffix      = "_thumb.jpg"
	contentType = "image/jpeg"
)

var pdfExt = regexp.MustCompile(`(?i)\.pdf$`)

// PathFor derives the thumbnail location from a PDF location by replacing a
// trailing ".pdf" (any case) with "_thumb.jpg". Paths without that suffix get
// "_thumb.jpg" appended so the thumbnail never overwrites the PDF.
func PathFor(pdfPath string) string {
	if pdfExt.MatchString(pdfPath) {
		return pdfExt.ReplaceAllLiteralString(pdfPath, Suffix)
	}
	return pdfPath + Suffix
}

// Renderer rasterizes the first page of a PDF.
type Renderer interface {
	FirstPage(r io.Reader) (image.Image, error)
}

// Generator renders thumbnails from stored PDFs and writes them back to the
// same storage.
type Generator struct {
	store    storage.Storage
	renderer Renderer
	width    int
	height   int
	quality  int
	tracer   trace.Tracer
}

// NewGenerator builds a Generator. Width and height bound the thumbnail; the
// page aspect ratio is preserved.
func NewGenerator(store storage.Storage, renderer Renderer, cfg config.ThumbnailConfig) *Generator {
	g := &Generator{
		store:    store,
		renderer: renderer,
		width:    cfg.Width,
		height:   cfg.Height,
		quality:  cfg.JPEGQuality,
		tracer:   otel.Tracer("pdfmanager/thumbnail"),
	}
	if g.width <= 0 {
		g.width = 200
	}
	if g.height <= 0 {
		g.height = 200
	}
	if g.quality <= 0 || g.quality > 100 {
		g.quality = 85
	}
	return g
}

// Generate reads pdfPath, renders its first page and stores a JPEG at thumbPath.
func (g *Generator) Generate(ctx context.Context, pdfPath, thumbPath string) (err error) {
	ctx, span := g.tracer.Start(ctx, "thumbnail.generate", trace.WithAttributes(
		attribute.String("pdf.path", pdfPath),
		attribute.String("thumbnail.path", thumbPath),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	rc, _, err := g.store.Get(ctx, pdfPath)
	if err != nil {
		return fmt.Errorf("open pdf: %w", err)
	}
	defer rc.Close()

	page, err := g.renderer.FirstPage(rc)
	if err != nil {
		return fmt.Errorf("render first page: %w", err)
	}

	thumb := imaging.Fit(page, g.width, g.height, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG, imaging.JPEGQuality(g.quality)); err != nil {
		return fmt.Errorf("encode jpeg: %w", err)
	}

	size := int64(buf.Len())
	if _, err := g.store.Put(ctx, thumbPath, &buf, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Overwrite:   true,
	}); err != nil {
		return fmt.Errorf("store thumbnail: %w", err)
	}
	span.SetAttributes(attribute.Int64("thumbnail.bytes", size))
	return nil
}
