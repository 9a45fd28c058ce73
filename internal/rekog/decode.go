package rekog

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// DefaultMaxPixels bounds width*height of anything we agree to decode.
const DefaultMaxPixels = 40_000_000

// ColorMode is the channel layout histograms are taken in.
type ColorMode int

const (
	ModeRGB ColorMode = iota
	ModeL
	ModeRGBA
)

func (m ColorMode) String() string {
	switch m {
	case ModeL:
		return "L"
	case ModeRGBA:
		return "RGBA"
	default:
		return "RGB"
	}
}

// Channels is the number of 256-bin channels in a histogram of this mode.
func (m ColorMode) Channels() int {
	switch m {
	case ModeL:
		return 1
	case ModeRGBA:
		return 4
	default:
		return 3
	}
}

// Image is a decoded raster image. Animated formats keep their first frame.
type Image struct {
	img    image.Image
	mode   ColorMode
	format string
}

func NewImage(img image.Image) *Image {
	return &Image{img: img, mode: colorModeOf(img)}
}

func (i *Image) Width() int { return i.img.Bounds().Dx() }
func (i *Image) Height() int { return i.img.Bounds().Dy() }
func (i *Image) Area() int { return i.Width() * i.Height() }
func (i *Image) Mode() ColorMode { return i.mode }
func (i *Image) Format() string { return i.format }

// Decoder turns raw bytes into an Image.
type Decoder struct {
	MaxPixels int
}

// Decode returns ErrNotAnImage when data is not a recognizable image and a
// *DecodeError for every other failure.
func (d Decoder) Decode(data []byte) (*Image, error) {
	if len(data) == 0 {
		return nil, ErrNotAnImage
	}
	mime := mimetype.Detect(data)
	if !strings.HasPrefix(mime.String(), "image/") {
		return nil, fmt.Errorf("%w: detected %s", ErrNotAnImage, mime.String())
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, fmt.Errorf("%w: unsupported %s", ErrNotAnImage, mime.String())
		}
		return nil, &DecodeError{Err: err}
	}

	maxPixels := d.MaxPixels
	if maxPixels <= 0 {
		maxPixels = DefaultMaxPixels
	}
	if int64(cfg.Width)*int64(cfg.Height) > int64(maxPixels) {
		return nil, &DecodeError{
			Format: format,
			Err:    fmt.Errorf("%dx%d exceeds %d pixels", cfg.Width, cfg.Height, maxPixels),
		}
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Format: format, Err: err}
	}

	decoded := NewImage(img)
	decoded.format = format
	return decoded, nil
}

func colorModeOf(img image.Image) ColorMode {
	switch img.ColorModel() {
	case color.GrayModel, color.Gray16Model:
		return ModeL
	}
	if o, ok := img.(interface{ Opaque() bool }); ok && !o.Opaque() {
		return ModeRGBA
	}
	return ModeRGB
}
