package domain

import "errors"

var (
	ErrSendingReplyFailed = errors.New("failed to send reply")
	ErrMissingImage       = errors.New("missing image, send a photo with the command or reply to one")
	ErrNilImage           = errors.New("nil image")
	ErrInvalidRadius      = errors.New("radius must be greater than 0")
	ErrInvalidStrength    = errors.New("strength must not be negative")
	ErrUsage              = errors.New("usage: /sharpen [radius] [strength], e.g. /sharpen 2 50")
)
