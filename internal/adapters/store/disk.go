// Package store persists sharpened images.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"sharpbot/internal/adapters/codec"
	"sharpbot/internal/adapters/file"
	"sharpbot/internal/core/domain"

	"github.com/rs/zerolog/log"
)

const (
	imageExtension    = ".png"
	metadataExtension = ".json"
)

// Disk writes images as PNG into a directory. With metadata enabled it keeps a JSON file with the image metadata
// next to each image.
type Disk struct {
	dir      string
	metadata bool
}

func NewDisk(dir string, metadata bool) *Disk {
	return &Disk{dir: dir, metadata: metadata}
}

type sidecar struct {
	domain.ImageMetadata
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (d *Disk) StoreImage(ctx context.Context, img image.Image, meta domain.ImageMetadata) (domain.ImageHandle, error) {
	if err := ctx.Err(); err != nil {
		return domain.ImageHandle{}, err
	}

	name, err := d.name(meta.Name)
	if err != nil {
		return domain.ImageHandle{}, err
	}

	data, err := codec.EncodePNGBytes(img)
	if err != nil {
		return domain.ImageHandle{}, err
	}

	path, err := file.SaveFile(d.dir, name, data)
	if err != nil {
		return domain.ImageHandle{}, err
	}

	handle := domain.ImageHandle{
		Name:   name,
		Path:   path,
		Width:  img.Bounds().Dx(),
		Height: img.Bounds().Dy(),
	}

	log.Debug().Str("path", path).Bool("intermediate", meta.IsIntermediate).Msg("stored image")

	if !d.metadata {
		return handle, nil
	}

	meta.Name = name
	metadata, err := json.MarshalIndent(sidecar{ImageMetadata: meta, Width: handle.Width, Height: handle.Height},
		"", "  ")
	if err != nil {
		file.RemoveFile(path)
		return domain.ImageHandle{}, fmt.Errorf("error encoding metadata: %w", err)
	}

	if _, err := file.SaveFile(d.dir, sidecarName(name), metadata); err != nil {
		file.RemoveFile(path)
		return domain.ImageHandle{}, err
	}

	return handle, nil
}

// ReadImage returns the PNG bytes of the image stored under name.
func (d *Disk) ReadImage(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return file.ReadFile(filepath.Join(d.dir, filepath.Base(name)))
}

// RemoveImage deletes the image stored under name and its metadata.
func (d *Disk) RemoveImage(name string) {
	d.Remove(domain.ImageHandle{Name: filepath.Base(name), Path: filepath.Join(d.dir, filepath.Base(name))})
}

// Remove deletes a stored image and its metadata.
func (d *Disk) Remove(handle domain.ImageHandle) {
	file.RemoveFile(handle.Path)
	if d.metadata {
		file.RemoveFile(filepath.Join(filepath.Dir(handle.Path), sidecarName(handle.Name)))
	}
}

func (d *Disk) name(hint string) (string, error) {
	if hint == "" {
		return file.NewName(imageExtension)
	}

	hint = filepath.Base(hint)
	if !strings.EqualFold(filepath.Ext(hint), imageExtension) {
		hint = strings.TrimSuffix(hint, filepath.Ext(hint)) + imageExtension
	}

	return hint, nil
}

func sidecarName(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + metadataExtension
}
