package command

import (
	"context"
	"fmt"
	"time"

	"sharpbot/internal/core/domain"
	"sharpbot/internal/core/port"
	"sharpbot/internal/core/service"
)

type Usage struct {
	tracker service.Tracker
	sender  port.TextSender
	command string
}

func NewUsage(tracker service.Tracker, ts port.TextSender, command string) *Usage {
	return &Usage{
		tracker: tracker,
		sender:  ts,
		command: command,
	}
}

func (u *Usage) GetCommand() string {
	return u.command
}

const (
	usageMessage          = "Sharpen requests today within ChatID %d: %d of %d."
	unlimitedUsageMessage = "Sharpen requests today within ChatID %d: %d."
)

func (u *Usage) Respond(ctx context.Context, _ time.Duration, message *domain.Message) error {
	text := fmt.Sprintf(unlimitedUsageMessage, message.ChatID, u.tracker.GetUsage(message.ChatID))
	if limit := u.tracker.Limit(); limit > 0 {
		text = fmt.Sprintf(usageMessage, message.ChatID, u.tracker.GetUsage(message.ChatID), limit)
	}

	_, err := u.sender.SendMessageReply(ctx, message, text)
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	return nil
}
