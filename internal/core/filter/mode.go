package filter

import (
	"fmt"
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
)

// ColorMode tags the pixel layout an image arrived in, so the filter can hand back the same layout.
type ColorMode int

const (
	ModeOther ColorMode = iota
	ModeGray
	ModeRGB
	ModeRGBA
)

func (m ColorMode) String() string {
	switch m {
	case ModeGray:
		return "L"
	case ModeRGB:
		return "RGB"
	case ModeRGBA:
		return "RGBA"
	default:
		return "other"
	}
}

// ModeOf derives the color mode from the concrete image type. Premultiplied RGBA buffers only count as RGBA
// when they actually carry transparency, since the standard decoders use them for opaque truecolor data too.
func ModeOf(img image.Image) ColorMode {
	switch src := img.(type) {
	case *image.Gray, *image.Gray16:
		return ModeGray
	case *image.NRGBA, *image.NRGBA64, *image.NYCbCrA:
		return ModeRGBA
	case *image.RGBA:
		if src.Opaque() {
			return ModeRGB
		}
		return ModeRGBA
	case *image.RGBA64:
		if src.Opaque() {
			return ModeRGB
		}
		return ModeRGBA
	case *image.YCbCr:
		return ModeRGB
	default:
		return ModeOther
	}
}

type restoreFunc func(rgb *image.NRGBA, src image.Image) image.Image

// restorers converts the sharpened RGB buffer back into the mode the source was recorded in.
var restorers = map[ColorMode]restoreFunc{
	ModeGray:  restoreGray,
	ModeRGB:   restoreRGB,
	ModeRGBA:  restoreRGBA,
	ModeOther: restoreOther,
}

func restore(rgb *image.NRGBA, mode ColorMode, src image.Image) image.Image {
	fn, ok := restorers[mode]
	if !ok {
		fn = restoreRGB
	}

	return fn(rgb, src)
}

func restoreGray(rgb *image.NRGBA, src image.Image) image.Image {
	b := rgb.Bounds()

	var dst xdraw.Image
	if _, ok := src.(*image.Gray16); ok {
		dst = image.NewGray16(b)
	} else {
		dst = image.NewGray(b)
	}

	xdraw.Draw(dst, b, rgb, b.Min, xdraw.Src)
	return dst
}

func restoreRGB(rgb *image.NRGBA, _ image.Image) image.Image {
	b := rgb.Bounds()
	dst := image.NewRGBA(b)
	xdraw.Draw(dst, b, rgb, b.Min, xdraw.Src)
	return dst
}

// restoreRGBA keeps the non-premultiplied buffer as is; the alpha channel is put back separately.
func restoreRGBA(rgb *image.NRGBA, _ image.Image) image.Image {
	return rgb
}

func restoreOther(rgb *image.NRGBA, src image.Image) image.Image {
	b := rgb.Bounds()

	switch s := src.(type) {
	case *image.Paletted:
		dst := image.NewPaletted(b, s.Palette)
		xdraw.Draw(dst, b, rgb, b.Min, xdraw.Src)
		return dst
	case *image.CMYK:
		dst := image.NewCMYK(b)
		xdraw.Draw(dst, b, rgb, b.Min, xdraw.Src)
		return dst
	default:
		return restoreRGB(rgb, src)
	}
}

// toRGB drops alpha and returns the un-premultiplied color as an opaque 8-bit buffer with the source bounds.
func toRGB(src image.Image) *image.NRGBA {
	b := src.Bounds()
	dst := image.NewNRGBA(b)

	if s, ok := src.(*image.NRGBA); ok {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			si := s.PixOffset(b.Min.X, y)
			di := dst.PixOffset(b.Min.X, y)
			copy(dst.Pix[di:di+b.Dx()*4], s.Pix[si:si+b.Dx()*4])
		}
	} else {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
				i := dst.PixOffset(x, y)
				dst.Pix[i+0] = c.R
				dst.Pix[i+1] = c.G
				dst.Pix[i+2] = c.B
			}
		}
	}

	for i := 3; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = 0xff
	}

	return dst
}

func extractAlpha(src image.Image) *image.Alpha {
	b := src.Bounds()
	dst := image.NewAlpha(b)

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			_, _, _, a := src.At(x, y).RGBA()
			dst.Pix[dst.PixOffset(x, y)] = uint8(a >> 8)
		}
	}

	return dst
}

func putAlpha(dst *image.NRGBA, alpha *image.Alpha) {
	if !dst.Bounds().Eq(alpha.Bounds()) {
		panic(fmt.Sprintf("filter: alpha bounds %v do not match image bounds %v", alpha.Bounds(), dst.Bounds()))
	}

	b := dst.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			dst.Pix[dst.PixOffset(x, y)+3] = alpha.Pix[alpha.PixOffset(x, y)]
		}
	}
}
