// Package codec decodes the image formats the bot accepts and encodes results as PNG.
package codec

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"

	// Register common decoders, including WebP via x/image/webp.
	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/webp"
)

// Decode reads an image from the reader, returning the decoded image and the detected format string
// ("png", "jpeg", "webp", etc.).
func Decode(r io.Reader) (image.Image, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("error decoding image: %w", err)
	}

	return img, format, nil
}

// EncodePNG writes the provided image to the writer as PNG. PNG keeps gray, paletted and alpha data intact.
func EncodePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

func EncodePNGBytes(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodePNG(&buf, img); err != nil {
		return nil, fmt.Errorf("error encoding png: %w", err)
	}

	return buf.Bytes(), nil
}
