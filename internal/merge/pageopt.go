package merge

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif" // register GIF decoding
	"image/jpeg"
	"image/png"
	"os"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // register WEBP decoding
)

const defaultJPEGQuality = 85

// PageOptimizer downscales oversized pages in place of the verbatim
// copy. Output always keeps the page's original format so filenames
// stay truthful; formats without an encoder pass through untouched,
// which also keeps animated GIFs intact.
type PageOptimizer struct {
	MaxWidth    int
	JPEGQuality int
}

// PageResult reports what happened to one page. Warning is set when the
// bytes were written verbatim because the page could not be decoded or
// its format cannot be re-encoded; Resized is set when the page was
// downscaled.
type PageResult struct {
	Resized bool
	Width   int
	Height  int
	Warning string
}

// NewPageOptimizer creates a page optimizer with defaults applied.
func NewPageOptimizer(maxWidth, jpegQuality int) *PageOptimizer {
	quality := jpegQuality
	if quality <= 0 {
		quality = defaultJPEGQuality
	}
	if quality > 100 {
		quality = 100
	}
	return &PageOptimizer{MaxWidth: maxWidth, JPEGQuality: quality}
}

// OptimizeFile reads the page at src and writes it to dst, downscaled
// to MaxWidth when wider. Undecodable or unencodable pages are written
// verbatim with a Warning rather than failing the copy.
func (o *PageOptimizer) OptimizeFile(src, dst string) (PageResult, error) {
	input, err := os.ReadFile(src)
	if err != nil {
		return PageResult{}, fmt.Errorf("failed to read page: %w", err)
	}
	data, result := o.optimize(input)
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return result, fmt.Errorf("failed to write page: %w", err)
	}
	return result, nil
}

func (o *PageOptimizer) optimize(input []byte) ([]byte, PageResult) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(input))
	if err != nil {
		return input, PageResult{Warning: fmt.Sprintf("undecodable image: %v", err)}
	}
	result := PageResult{Width: cfg.Width, Height: cfg.Height}
	if cfg.Width <= o.MaxWidth {
		return input, result
	}
	if format != "jpeg" && format != "png" {
		result.Warning = fmt.Sprintf("no %s encoder, kept at %dx%d", format, cfg.Width, cfg.Height)
		return input, result
	}

	src, _, err := image.Decode(bytes.NewReader(input))
	if err != nil {
		result.Warning = fmt.Sprintf("image decode failed: %v", err)
		return input, result
	}
	scaled := imaging.Resize(src, o.MaxWidth, 0, imaging.Lanczos)

	var data []byte
	switch format {
	case "jpeg":
		data, err = encodeJPEG(scaled, o.JPEGQuality)
	case "png":
		data, err = encodePNG(scaled)
	}
	if err != nil {
		result.Warning = fmt.Sprintf("%s encode failed: %v", format, err)
		return input, result
	}

	result.Resized = true
	result.Width = scaled.Bounds().Dx()
	result.Height = scaled.Bounds().Dy()
	return data, result
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	encoder := png.Encoder{CompressionLevel: png.BestCompression}
	if err := encoder.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
