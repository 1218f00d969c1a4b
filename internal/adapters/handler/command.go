package handler

import (
	"context"
	"fmt"
	"time"

	"sharpbot/internal/core/domain"
	"sharpbot/internal/core/domain/command"
	"sharpbot/internal/core/port"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"
)

// fileLinker resolves Telegram file IDs to download URLs.
type fileLinker interface {
	GetFile(ctx context.Context, params *bot.GetFileParams) (*models.File, error)
	FileDownloadLink(f *models.File) string
}

type Command struct {
	commandRegistry port.CommandRegistry
	timeout         time.Duration
}

func NewCommand(commandRegistry port.CommandRegistry, timeout time.Duration) *Command {
	return &Command{commandRegistry: commandRegistry, timeout: timeout}
}

// Handle maps a Telegram update to a domain message and dispatches it to the registered command in the background.
func (c *Command) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		log.Debug().Msg("update without message, ignoring")
		return
	}

	msg := update.Message
	text := msg.Text
	if len(msg.Photo) > 0 && text == "" {
		text = msg.Caption
	}

	log.Debug().Str("message", text).Msg("received command")

	cmd := command.ParseCommand(text)
	commandHandler, err := c.commandRegistry.Get(cmd)
	if err != nil {
		log.Debug().Err(err).Str("command", cmd).Msg("no handler for command")
		return
	}

	var isReplyToBot bool
	var replyToUsername string
	var replyToMessageID int

	if msg.ReplyToMessage != nil {
		replyToMessageID = msg.ReplyToMessage.ID
		if msg.ReplyToMessage.From != nil {
			isReplyToBot = msg.ReplyToMessage.From.IsBot
			replyToUsername = msg.ReplyToMessage.From.Username
		}
	}

	var username string
	if msg.From != nil {
		username = getUserNameFromMessage(msg.From)
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Error().Interface("panic", r).Str("command", cmd).Int64("chatId", msg.Chat.ID).
					Msg("recovered from panic while responding to command")
			}
		}()

		var imageURL string
		if b != nil {
			imageURL = getOptionalImage(ctx, b, msg)
		}

		err := commandHandler.Respond(ctx, c.timeout, &domain.Message{
			ID:               msg.ID,
			ChatID:           msg.Chat.ID,
			Username:         username,
			ReplyToMessageID: &replyToMessageID,
			ReplyToUsername:  replyToUsername,
			IsReplyToBot:     isReplyToBot,
			ImageURL:         imageURL,
			Text:             text,
		})
		if err != nil {
			log.Err(err).Str("command", cmd).Msg("failed to respond to command")
		}
	}()
}

// getOptionalImage returns the download URL of the photo attached to msg, or to the message it replies to.
func getOptionalImage(ctx context.Context, files fileLinker, msg *models.Message) string {
	photos := msg.Photo
	if len(photos) == 0 && msg.ReplyToMessage != nil {
		photos = msg.ReplyToMessage.Photo
	}

	if len(photos) == 0 {
		return ""
	}

	f, err := files.GetFile(ctx, &bot.GetFileParams{FileID: findMediumSizedImage(photos)})
	if err != nil {
		log.Error().Err(err).Msg("error getting file from telegram api")
		return ""
	}

	return files.FileDownloadLink(f)
}

const minSize = 80000
const maxSize = 130000

func findMediumSizedImage(photos []models.PhotoSize) string {
	for _, photo := range photos {
		if photo.FileSize > minSize && photo.FileSize < maxSize {
			return photo.FileID
		}
	}

	return photos[len(photos)-1].FileID
}

func getUserNameFromMessage(user *models.User) string {
	if user.Username == "" {
		return user.FirstName
	}

	return fmt.Sprintf("@%s", user.Username)
}
