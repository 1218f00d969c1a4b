package port

import (
	"context"
	"image"

	"sharpbot/internal/core/domain"
)

type ImageProvider interface {
	// GetImage resolves an identifier (a URL, a path) to a decoded image.
	GetImage(ctx context.Context, id string) (image.Image, error)
}

type ImageStore interface {
	// StoreImage persists a produced image together with its metadata and returns a handle to it.
	StoreImage(ctx context.Context, img image.Image, meta domain.ImageMetadata) (domain.ImageHandle, error)
}

type ImageArchive interface {
	// ReadImage returns the encoded bytes of a stored image by name.
	ReadImage(ctx context.Context, name string) ([]byte, error)
	// RemoveImage deletes a stored image and everything stored alongside it.
	RemoveImage(name string)
}
