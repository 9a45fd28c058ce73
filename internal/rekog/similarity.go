package rekog

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/corona10/goimagehash"
	xdraw "golang.org/x/image/draw"
)

const histogramBins = 256

// Normalize brings both images to the same pixel count. The image with the
// larger area is scaled down to the other one's size, ignoring aspect ratio.
// Equal areas are left untouched even when the shapes differ. Results keep
// argument order.
func Normalize(a, b *Image) (*Image, *Image) {
	switch {
	case a.Area() > b.Area():
		return resize(a, b.Width(), b.Height()), b
	case a.Area() < b.Area():
		return a, resize(b, a.Width(), a.Height())
	default:
		return a, b
	}
}

func resize(src *Image, width, height int) *Image {
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	if width > 0 && height > 0 {
		xdraw.BiLinear.Scale(dst, dst.Bounds(), src.img, src.img.Bounds(), xdraw.Src, nil)
	}
	return &Image{img: dst, mode: src.mode, format: src.format}
}

// Histogram counts pixel intensities per channel, 256 bins per channel, in the
// image's color mode.
func Histogram(img *Image) ([]int, error) {
	bounds := img.img.Bounds()
	if bounds.Empty() {
		return nil, fmt.Errorf("%w: empty %dx%d image", ErrHistogram, bounds.Dx(), bounds.Dy())
	}

	channels := img.mode.Channels()
	hist := make([]int, channels*histogramBins)

	if img.mode == ModeL {
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				g := color.GrayModel.Convert(img.img.At(x, y)).(color.Gray)
				hist[g.Y]++
			}
		}
		return hist, nil
	}

	count := func(c color.NRGBA) {
		hist[c.R]++
		hist[histogramBins+int(c.G)]++
		hist[2*histogramBins+int(c.B)]++
		if channels == 4 {
			hist[3*histogramBins+int(c.A)]++
		}
	}

	if nrgba, ok := img.img.(*image.NRGBA); ok {
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				i := nrgba.PixOffset(x, y)
				p := nrgba.Pix[i : i+4 : i+4]
				count(color.NRGBA{R: p[0], G: p[1], B: p[2], A: p[3]})
			}
		}
		return hist, nil
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			count(color.NRGBAModel.Convert(img.img.At(x, y)).(color.NRGBA))
		}
	}
	return hist, nil
}

// RMS is the root-mean-square difference over the first min(len(h1), len(h2))
// buckets.
func RMS(h1, h2 []int) (float64, int) {
	n := min(len(h1), len(h2))
	if n == 0 {
		return 0, 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		d := float64(h1[i] - h2[i])
		sum += d * d
	}
	return math.Sqrt(sum / float64(n)), n
}

type Comparison struct {
	RMS       float64
	Threshold float64
	Buckets   int
	Match     bool
}

// Compare normalizes both images and tests their histogram RMS against
// threshold. A histogram failure is returned as an error wrapping ErrHistogram
// and the comparison is a no-match.
func Compare(a, b *Image, threshold float64) (Comparison, error) {
	result := Comparison{Threshold: threshold}

	na, nb := Normalize(a, b)
	h1, err := Histogram(na)
	if err != nil {
		return result, err
	}
	h2, err := Histogram(nb)
	if err != nil {
		return result, err
	}

	rms, n := RMS(h1, h2)
	if n == 0 {
		return result, fmt.Errorf("%w: no buckets to compare", ErrHistogram)
	}
	result.RMS = rms
	result.Buckets = n
	result.Match = rms <= threshold
	return result, nil
}

// Matches is Compare reduced to a boolean; any failure is a no-match.
func Matches(a, b *Image, threshold float64) bool {
	result, err := Compare(a, b, threshold)
	return err == nil && result.Match
}

// HashDistance is the dHash Hamming distance between the two normalized images.
// It is diagnostic only.
func HashDistance(a, b *Image) (int, error) {
	na, nb := Normalize(a, b)
	h1, err := goimagehash.DifferenceHash(na.img)
	if err != nil {
		return 0, err
	}
	h2, err := goimagehash.DifferenceHash(nb.img)
	if err != nil {
		return 0, err
	}
	return h1.Distance(h2)
}
