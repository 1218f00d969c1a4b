package service

import (
	"context"
	"fmt"

	"sharpbot/internal/core/domain"
	"sharpbot/internal/core/filter"
	"sharpbot/internal/core/port"

	"github.com/rs/zerolog/log"
)

// Descriptor identifies the node towards the pipeline that invokes it.
type Descriptor struct {
	ID      string
	Title   string
	Tags    []string
	Version string
}

var UnsharpMaskDescriptor = Descriptor{
	ID:      "unsharp_mask",
	Title:   "Unsharp Mask",
	Tags:    []string{"unsharp_mask"},
	Version: "1.0.0",
}

// UnsharpMask is the sharpen node: it resolves the input image, runs the filter and registers the result.
type UnsharpMask struct {
	provider port.ImageProvider
	store    port.ImageStore
}

func NewUnsharpMask(provider port.ImageProvider, store port.ImageStore) *UnsharpMask {
	return &UnsharpMask{provider: provider, store: store}
}

func (u *UnsharpMask) Descriptor() Descriptor {
	return UnsharpMaskDescriptor
}

func (u *UnsharpMask) Invoke(ctx context.Context, req domain.UnsharpRequest) (domain.ImageOutput, error) {
	l := log.With().
		Str("node", UnsharpMaskDescriptor.ID).
		Str("imageId", req.ImageID).
		Float64("radius", req.Params.Radius).
		Float64("strength", req.Params.Strength).
		Logger()

	if err := req.Params.Validate(); err != nil {
		l.Debug().Err(err).Msg("rejecting invalid parameters")
		return domain.ImageOutput{}, err
	}

	img, err := u.provider.GetImage(ctx, req.ImageID)
	if err != nil {
		return domain.ImageOutput{}, fmt.Errorf("failed to get image: %w", err)
	}

	if img == nil {
		return domain.ImageOutput{}, domain.ErrNilImage
	}

	if err := ctx.Err(); err != nil {
		return domain.ImageOutput{}, err
	}

	l.Debug().
		Int("width", img.Bounds().Dx()).
		Int("height", img.Bounds().Dy()).
		Stringer("mode", filter.ModeOf(img)).
		Msg("applying unsharp mask")

	sharpened := filter.UnsharpMask(img, req.Params.Radius, req.Params.Strength)

	if err := ctx.Err(); err != nil {
		return domain.ImageOutput{}, err
	}

	handle, err := u.store.StoreImage(ctx, sharpened, domain.ImageMetadata{
		Name:           req.Name,
		Origin:         domain.OriginInternal,
		Category:       domain.CategoryGeneral,
		NodeID:         req.NodeID,
		SessionID:      req.SessionID,
		IsIntermediate: req.IsIntermediate,
		Metadata:       req.Metadata,
		Workflow:       req.Workflow,
	})
	if err != nil {
		l.Error().Err(err).Msg("failed to store sharpened image")
		return domain.ImageOutput{}, fmt.Errorf("failed to store image: %w", err)
	}

	l.Info().Str("imageName", handle.Name).Msg("stored sharpened image")

	return domain.ImageOutput{
		ImageName: handle.Name,
		Width:     sharpened.Bounds().Dx(),
		Height:    sharpened.Bounds().Dy(),
	}, nil
}
