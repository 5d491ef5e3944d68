// Package render applies the engine's geometric results to actual decoded
// images: loading from file or URL (with WebP support), cutting out the crop
// rectangle, simulating the widget viewport, and saving outputs. The
// geometry core never depends on this package.
package render

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	"github.com/menta2k/crop-engine/pkg/geometry"
)

// Renderer handles image loading, cropping and saving.
type Renderer struct{}

// NewRenderer creates a new image renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// LoadImageFromURL downloads and loads an image from a URL.
func (r *Renderer) LoadImageFromURL(imageURL string) (image.Image, error) {
	parsedURL, err := url.Parse(imageURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %v", err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return nil, fmt.Errorf("unsupported URL scheme: %s (only http and https are supported)", parsedURL.Scheme)
	}

	client := &http.Client{
		Timeout: 30 * time.Second,
	}

	req, err := http.NewRequest("GET", imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("User-Agent", "Crop-Engine/1.0 (+https://github.com/menta2k/crop-engine)")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download image: HTTP %d %s", resp.StatusCode, resp.Status)
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("URL does not point to an image (Content-Type: %s)", contentType)
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %v", err)
	}

	return r.decodeImageFromBytes(imageData)
}

// LoadImage loads an image from a file path with WebP support.
func (r *Renderer) LoadImage(path string) (image.Image, error) {
	// Try imaging.Open (registered decoders)
	if img, err := imaging.Open(path); err == nil {
		return img, nil
	}

	// Fallback: explicit WebP decode
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	low := strings.ToLower(path)
	if strings.HasSuffix(low, ".webp") || strings.Contains(low, ".webp") {
		if img, err := webp.Decode(f); err == nil {
			return img, nil
		}
	}
	if _, err := f.Seek(0, 0); err == nil {
		if img, _, err := image.Decode(f); err == nil {
			return img, nil
		}
	}
	return nil, fmt.Errorf("image: unknown format for %s", path)
}

// LoadImageSmart loads an image from either a file path or URL.
func (r *Renderer) LoadImageSmart(source string) (image.Image, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return r.LoadImageFromURL(source)
	}
	return r.LoadImage(source)
}

func (r *Renderer) decodeImageFromBytes(data []byte) (image.Image, error) {
	reader := bytes.NewReader(data)
	if img, _, err := image.Decode(reader); err == nil {
		return img, nil
	}

	reader = bytes.NewReader(data)
	if img, err := webp.Decode(reader); err == nil {
		return img, nil
	}

	return nil, fmt.Errorf("image: unknown or unsupported format")
}

// ImageSize returns the image's dimensions as engine geometry.
func (r *Renderer) ImageSize(img image.Image) geometry.Size {
	bounds := img.Bounds()
	return geometry.Size{Width: float64(bounds.Dx()), Height: float64(bounds.Dy())}
}

// Apply cuts the crop rectangle out of the image. The rectangle is in
// image-pixel space as produced by the engine; coordinates outside the image
// are intersected away, and an empty result is an error.
func (r *Renderer) Apply(img image.Image, coordinates geometry.Rect) (image.Image, error) {
	bounds := img.Bounds()
	rect := image.Rect(
		int(coordinates.Left+0.5),
		int(coordinates.Top+0.5),
		int(coordinates.Right()+0.5),
		int(coordinates.Bottom()+0.5),
	).Intersect(bounds)
	if rect.Empty() {
		return nil, fmt.Errorf("empty crop rectangle")
	}
	return imaging.Crop(img, rect), nil
}

// ApplyToSize cuts the crop rectangle out and resizes the result to exact
// target dimensions.
func (r *Renderer) ApplyToSize(img image.Image, coordinates geometry.Rect, targetWidth, targetHeight int) (image.Image, error) {
	cropped, err := r.Apply(img, coordinates)
	if err != nil {
		return nil, err
	}
	if targetWidth > 0 && targetHeight > 0 {
		cropped = imaging.Fill(cropped, targetWidth, targetHeight, imaging.Center, imaging.Lanczos)
	}
	return cropped, nil
}

// Preview renders what the widget viewport would display: the visible area
// cut out of the image and scaled to the boundaries. Parts of the visible
// area outside the image render as the intersected region, matching the
// empty space a real widget would show.
func (r *Renderer) Preview(img image.Image, visibleArea geometry.Rect, boundaries geometry.Size) (image.Image, error) {
	if boundaries.Empty() {
		return nil, fmt.Errorf("preview: boundaries %gx%g are not positive", boundaries.Width, boundaries.Height)
	}
	viewport, err := r.Apply(img, visibleArea)
	if err != nil {
		return nil, fmt.Errorf("preview: %w", err)
	}
	return imaging.Resize(viewport, int(boundaries.Width+0.5), 0, imaging.Lanczos), nil
}

// SaveImage saves an image to a file with the specified format and quality.
func (r *Renderer) SaveImage(img image.Image, path, format string, quality int, lossless bool) error {
	switch strings.ToLower(format) {
	case "webp":
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		opts := &webp.Options{Lossless: lossless, Quality: float32(quality)}
		return webp.Encode(f, img, opts)
	case "png":
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		enc := png.Encoder{CompressionLevel: png.BestCompression}
		return enc.Encode(f, img)
	case "jpg", "jpeg":
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		return jpeg.Encode(f, img, &jpeg.Options{Quality: quality})
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}
