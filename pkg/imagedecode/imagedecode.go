// Package imagedecode implements the two external image-decode entry
// points spec.md §6 describes as collaborators that share no state or code
// with the deserializer core: DecodeJPEG and DecodePNG. Both delegate
// entirely to the standard library's image/jpeg and image/png codecs and
// normalize whatever Go color model comes back into one of the three
// output layouts spec.md §6 requires: [H,W] grayscale, [H,W,3] RGB, or
// [H,W,4] RGBA, element type unsigned 8-bit.
package imagedecode

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"

	"github.com/brownfield-data/typedeser/internal/dzerr"
)

// Image is the flat, row-major pixel buffer plus its shape, the same shape
// convention typedbuffer.Buffer uses for N-D arrays.
type Image struct {
	Data  []uint8
	Shape []int
}

// DecodeJPEG decodes baseline/progressive JPEG bytes via image/jpeg.
func DecodeJPEG(data []byte) (Image, error) {
	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		return Image{}, dzerr.Parse(err)
	}
	return normalize(img), nil
}

// DecodePNG decodes PNG bytes via image/png.
func DecodePNG(data []byte) (Image, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return Image{}, dzerr.Parse(err)
	}
	return normalize(img), nil
}

// normalize flattens img into row-major uint8 data under one of the three
// shapes spec.md §6 names, regardless of which concrete image.Image the
// codec returned (image.Gray, image.YCbCr, image.NRGBA, image.RGBA, ...).
func normalize(img image.Image) Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if isGray(img) {
		data := make([]uint8, 0, w*h)
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				r, _, _, _ := img.At(x, y).RGBA()
				data = append(data, uint8(r>>8))
			}
		}
		return Image{Data: data, Shape: []int{h, w}}
	}

	if hasAlpha(img) {
		data := make([]uint8, 0, w*h*4)
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				r, g, b, a := img.At(x, y).RGBA()
				data = append(data, uint8(r>>8), uint8(g>>8), uint8(b>>8), uint8(a>>8))
			}
		}
		return Image{Data: data, Shape: []int{h, w, 4}}
	}

	data := make([]uint8, 0, w*h*3)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			data = append(data, uint8(r>>8), uint8(g>>8), uint8(b>>8))
		}
	}
	return Image{Data: data, Shape: []int{h, w, 3}}
}

func isGray(img image.Image) bool {
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		return true
	default:
		return false
	}
}

func hasAlpha(img image.Image) bool {
	switch img.(type) {
	case *image.NRGBA, *image.RGBA, *image.NRGBA64, *image.RGBA64:
		return true
	default:
		return false
	}
}
