package filter

import (
	"image"

	"github.com/disintegration/imaging"
)

const channels = 3

// UnsharpMask sharpens img by adding back the difference between the image and a Gaussian-blurred copy of
// itself: out = orig + (orig - blurred) * strength/100, clamped to [0, 1] per channel.
//
// radius is the standard deviation of the blur and must be > 0; values beyond the larger image side act like
// that side. strength is a percentage and must be >= 0;
// 0 returns the input pixels unchanged and values above 100 over-sharpen. Callers validate both.
//
// The result has the bounds and color mode of img. An alpha channel, if img has one, is copied through
// without being sharpened.
func UnsharpMask(img image.Image, radius, strength float64) image.Image {
	mode := ModeOf(img)

	var alpha *image.Alpha
	if mode == ModeRGBA {
		alpha = extractAlpha(img)
	}

	rgb := toRGB(img)

	// blur the 8-bit pixels first, normalization comes after
	blurred := imaging.Blur(rgb, blurSigma(radius, rgb.Bounds()))

	orig := normalize(rgb)
	sharpen(orig, normalize(blurred), float32(strength/100.0))

	out := restore(denormalize(orig, rgb.Bounds()), mode, img)

	if alpha != nil {
		putAlpha(out.(*image.NRGBA), alpha)
	}

	return out
}

// blurSigma caps radius at the larger image side. imaging sizes its kernel from sigma without bounds, and past
// that size the blur is already a flat mean over the whole image.
func blurSigma(radius float64, b image.Rectangle) float64 {
	return min(radius, float64(max(b.Dx(), b.Dy(), 1)))
}

// normalize flattens the RGB channels of img into float32 values in [0, 1], row-major.
func normalize(img *image.NRGBA) []float32 {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	buf := make([]float32, 0, w*h*channels)

	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+w*4]
		for x := 0; x < len(row); x += 4 {
			buf = append(buf,
				float32(row[x+0])/255,
				float32(row[x+1])/255,
				float32(row[x+2])/255)
		}
	}

	return buf
}

// sharpen computes orig + (orig - blurred) * amount in place and clamps the result to [0, 1].
func sharpen(orig, blurred []float32, amount float32) {
	for i, v := range orig {
		v += (v - blurred[i]) * amount
		orig[i] = min(max(v, 0), 1)
	}
}

// denormalize scales buf back to 8 bits, rounding to nearest, and lays it out as an opaque image with bounds b.
func denormalize(buf []float32, b image.Rectangle) *image.NRGBA {
	dst := image.NewNRGBA(b)
	w, h := b.Dx(), b.Dy()

	for y := 0; y < h; y++ {
		row := dst.Pix[y*dst.Stride : y*dst.Stride+w*4]
		src := buf[y*w*channels : (y+1)*w*channels]
		for x := 0; x < w; x++ {
			row[x*4+0] = uint8(src[x*channels+0]*255 + 0.5)
			row[x*4+1] = uint8(src[x*channels+1]*255 + 0.5)
			row[x*4+2] = uint8(src[x*channels+2]*255 + 0.5)
			row[x*4+3] = 0xff
		}
	}

	return dst
}
