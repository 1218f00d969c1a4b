package port

import (
	"context"

	"sharpbot/internal/core/domain"
)

type SharpenNode interface {
	// Invoke sharpens the image identified by the request and returns a reference to the stored result.
	Invoke(ctx context.Context, req domain.UnsharpRequest) (domain.ImageOutput, error)
}
