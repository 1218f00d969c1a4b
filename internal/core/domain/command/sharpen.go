package command

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"sharpbot/internal/core/domain"
	"sharpbot/internal/core/port"
	"sharpbot/internal/core/service"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const workflow = "telegram"

type Sharpen struct {
	node        port.SharpenNode
	archive     port.ImageArchive
	textSender  port.TextSender
	imageSender port.ImageSender
	authorizer  service.Authorizer
	tracker     service.Tracker
	defaults    domain.UnsharpParams
	keepOutputs bool
	command     string
}

func NewSharpen(node port.SharpenNode, archive port.ImageArchive, textSender port.TextSender,
	imageSender port.ImageSender, authorizer service.Authorizer, tracker service.Tracker, command string) *Sharpen {
	defaults := domain.DefaultParams()
	if viper.IsSet("unsharp.radius") {
		defaults.Radius = viper.GetFloat64("unsharp.radius")
	}
	if viper.IsSet("unsharp.strength") {
		defaults.Strength = viper.GetFloat64("unsharp.strength")
	}

	return &Sharpen{
		node:        node,
		archive:     archive,
		textSender:  textSender,
		imageSender: imageSender,
		authorizer:  authorizer,
		tracker:     tracker,
		defaults:    defaults,
		keepOutputs: viper.GetBool("storage.keep_outputs"),
		command:     command,
	}
}

func (s *Sharpen) GetCommand() string {
	return s.command
}

func (s *Sharpen) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	l := log.With().
		Int("messageId", message.ID).
		Int64("chatId", message.ChatID).
		Str("command", s.GetCommand()).
		Logger()

	l.Info().Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if !s.authorizer.IsAuthorized(ctx, message.ChatID) {
		return nil
	}

	if !s.tracker.CheckLimit(ctx, message.ChatID) {
		l.Info().Int("limit", s.tracker.Limit()).Msg("daily limit reached")
		return nil
	}

	if message.ImageURL == "" {
		return s.reject(ctx, domain.ErrMissingImage, message)
	}

	params, err := domain.ParseUnsharpParams(ParseCommandArgs(message.Text), s.defaults)
	if err == nil {
		err = params.Validate()
	}
	if err != nil {
		l.Debug().Err(err).Msg("invalid arguments")
		return s.reject(ctx, err, message)
	}

	go s.textSender.SendChatAction(ctx, message.ChatID, domain.SendingPhoto)

	out, err := s.node.Invoke(ctx, domain.UnsharpRequest{
		ImageID:        message.ImageURL,
		Params:         params,
		NodeID:         s.command,
		SessionID:      strconv.FormatInt(message.ChatID, 10),
		IsIntermediate: !s.keepOutputs,
		Metadata: map[string]any{
			"chat_id":    message.ChatID,
			"message_id": message.ID,
			"username":   message.Username,
		},
		Workflow: workflow,
	})
	if err != nil {
		return s.textSender.NotifyAndReturnError(ctx, fmt.Errorf("failed to sharpen image: %w", err), message)
	}

	if !s.keepOutputs {
		defer s.archive.RemoveImage(out.ImageName)
	}

	sharpened, err := s.archive.ReadImage(ctx, out.ImageName)
	if err != nil {
		return s.textSender.NotifyAndReturnError(ctx, fmt.Errorf("failed to read sharpened image: %w", err), message)
	}

	err = s.imageSender.SendImageFileReply(ctx, message, sharpened)
	if err != nil {
		return s.textSender.NotifyAndReturnError(ctx, fmt.Errorf("failed to send sharpened image: %w", err), message)
	}

	s.tracker.AddRequest(message.ChatID)

	l.Info().
		Str("imageName", out.ImageName).
		Float64("radius", params.Radius).
		Float64("strength", params.Strength).
		Msg("sent sharpened image")

	return nil
}

// reject tells the user why the request was refused. Only a failure to deliver that notice is returned.
func (s *Sharpen) reject(ctx context.Context, err error, message *domain.Message) error {
	notifyErr := s.textSender.NotifyAndReturnError(ctx, err, message)
	if errors.Is(notifyErr, domain.ErrSendingReplyFailed) {
		return notifyErr
	}

	return nil
}
