package ioutils

import (
	"bytes"
	"context"
	"image"
	_ "image/gif" // GIF decoder registration
	"image/jpeg"
	_ "image/png" // PNG decoder registration

	"golang.org/x/image/draw"
)

// jpegQuality is used for every re-encoded cover.
const jpegQuality = 90

// ImageService prepares channel artwork for embedding in episode tags.
//
// Podcast artwork is frequently 3000x3000 PNG, which bloats every tagged
// episode. ImageService scales it down and re-encodes it as JPEG so the
// same bytes can be embedded in each downloaded file.
type ImageService struct{}

// NewImageService creates a new ImageService.
func NewImageService() *ImageService {
	return &ImageService{}
}

// PrepareCoverArt decodes data, scales it to fit within maxSize x maxSize
// (aspect ratio preserved, never upscaled) and returns JPEG bytes.
//
// A maxSize of zero or less disables resizing; the image is still
// re-encoded as JPEG.
func (s *ImageService) PrepareCoverArt(ctx context.Context, data []byte, maxSize int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	if maxSize > 0 {
		img = fitWithin(img, maxSize, maxSize)
	}

	return encodeJPEG(img)
}

// fitWithin returns img scaled down to fit within maxWidth x maxHeight.
// Images that already fit are returned unchanged.
func fitWithin(img image.Image, maxWidth, maxHeight int) image.Image {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if width <= maxWidth && height <= maxHeight {
		return img
	}

	ratio := float64(width) / float64(height)
	if float64(maxWidth)/float64(maxHeight) > ratio {
		// Height is the limiting factor
		width = int(float64(maxHeight) * ratio)
		height = maxHeight
	} else {
		height = int(float64(maxWidth) / ratio)
		width = maxWidth
	}
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}

func encodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
