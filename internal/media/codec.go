// Package media is the single boundary to the image codec. Decoding and
// encoding go through the stdlib registry, pixel transforms through gift.
package media

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"

	"github.com/disintegration/gift"
)

var (
	ErrUnknownFormat    = errors.New("unrecognized image format")
	ErrInvalidAngle     = errors.New("angle must be 90, 180 or 270")
	ErrInvalidDirection = errors.New("direction must be horizontal or vertical")
)

const jpegQuality = 90

// Decode sniffs and decodes the payload, returning the normalized format
// name ("png", "jpeg", "gif").
func Decode(data []byte) (image.Image, string, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", ErrUnknownFormat
	}
	return img, format, nil
}

func Encode(img image.Image, format string) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case "png":
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encode png: %w", err)
		}
	case "jpeg":
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
			return nil, fmt.Errorf("encode jpeg: %w", err)
		}
	case "gif":
		if err := gif.Encode(&buf, img, nil); err != nil {
			return nil, fmt.Errorf("encode gif: %w", err)
		}
	default:
		return nil, ErrUnknownFormat
	}
	return buf.Bytes(), nil
}

// NormalizeFormat maps client format spellings to the codec names, or
// ErrUnknownFormat for anything this service cannot encode.
func NormalizeFormat(format string) (string, error) {
	switch format {
	case "png", "jpeg", "gif":
		return format, nil
	case "jpg":
		return "jpeg", nil
	default:
		return "", ErrUnknownFormat
	}
}

func ContentType(format string) string {
	return "image/" + format
}

// ResizeToWidth scales the image proportionally to the bounding width.
// Images already at or below the bound are returned unchanged.
func ResizeToWidth(img image.Image, width int) image.Image {
	if width <= 0 || img.Bounds().Dx() <= width {
		return img
	}
	return apply(img, gift.Resize(width, 0, gift.LanczosResampling))
}

// Resize scales to the exact width, and height when given; height zero
// preserves the aspect ratio.
func Resize(img image.Image, width, height int) image.Image {
	return apply(img, gift.Resize(width, height, gift.LanczosResampling))
}

// SquareThumbnail center-crops and scales to a size x size square.
func SquareThumbnail(img image.Image, size int) image.Image {
	return apply(img, gift.ResizeToFill(size, size, gift.LanczosResampling, gift.CenterAnchor))
}

func Rotate(img image.Image, angle int) (image.Image, error) {
	switch angle {
	case 90:
		return apply(img, gift.Rotate90()), nil
	case 180:
		return apply(img, gift.Rotate180()), nil
	case 270:
		return apply(img, gift.Rotate270()), nil
	default:
		return nil, ErrInvalidAngle
	}
}

func Flip(img image.Image, direction string) (image.Image, error) {
	switch direction {
	case "horizontal":
		return apply(img, gift.FlipHorizontal()), nil
	case "vertical":
		return apply(img, gift.FlipVertical()), nil
	default:
		return nil, ErrInvalidDirection
	}
}

func apply(img image.Image, filters ...gift.Filter) image.Image {
	g := gift.New(filters...)
	dst := image.NewRGBA(g.Bounds(img.Bounds()))
	g.Draw(dst, img)
	return dst
}
