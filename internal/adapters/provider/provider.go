// Package provider resolves image identifiers to decoded images.
package provider

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"os"

	"sharpbot/internal/adapters/codec"
	"sharpbot/internal/adapters/file"

	"github.com/rs/zerolog/log"
)

// HTTP treats image IDs as URLs, e.g. Telegram file download links.
type HTTP struct{}

func NewHTTP() *HTTP {
	return &HTTP{}
}

func (p *HTTP) GetImage(ctx context.Context, url string) (image.Image, error) {
	data, err := file.DownloadFile(ctx, url)
	if err != nil {
		return nil, err
	}

	img, format, err := codec.Decode(bytes.NewReader(data))
	if err != nil {
		log.Error().Err(err).Int("bytes", len(data)).Msg("downloaded file is not a supported image")
		return nil, err
	}

	log.Debug().Str("format", format).Stringer("bounds", img.Bounds()).Msg("downloaded image")

	return img, nil
}

// Disk treats image IDs as paths on the local file system.
type Disk struct{}

func NewDisk() *Disk {
	return &Disk{}
}

func (p *Disk) GetImage(ctx context.Context, path string) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening image %w", err)
	}
	defer f.Close()

	img, format, err := codec.Decode(f)
	if err != nil {
		return nil, err
	}

	log.Debug().Str("path", path).Str("format", format).Msg("loaded image")

	return img, nil
}
