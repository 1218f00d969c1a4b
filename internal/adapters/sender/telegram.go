package sender

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"sharpbot/internal/core/domain"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"
)

const (
	TelegramMessageLimit    = 4096
	ChatActionRepeatSeconds = 5
)

// TelegramBot is the subset of the bot API used for replies.
type TelegramBot interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
	SendPhoto(ctx context.Context, params *bot.SendPhotoParams) (*models.Message, error)
	SendChatAction(ctx context.Context, params *bot.SendChatActionParams) (bool, error)
}

type Telegram struct {
	bot            TelegramBot
	actionInterval time.Duration
}

func NewTelegram(bot TelegramBot) *Telegram {
	return &Telegram{bot: bot, actionInterval: ChatActionRepeatSeconds * time.Second}
}

// SendMessageReply replies to message with text, split into chunks that fit a single Telegram message. The ID of
// the last sent chunk is returned.
func (s *Telegram) SendMessageReply(ctx context.Context, message *domain.Message, text string) (int, error) {
	var lastID int

	for _, chunk := range chunkText(text, TelegramMessageLimit) {
		sent, err := s.bot.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:          message.ChatID,
			Text:            chunk,
			ReplyParameters: replyTo(message),
		})
		if err != nil {
			log.Error().Err(err).Int64("chatID", message.ChatID).Msg("failed to send message reply")
			return lastID, err
		}

		if sent != nil {
			lastID = sent.ID
		}
	}

	return lastID, nil
}

func (s *Telegram) SendImageFileReply(ctx context.Context, message *domain.Message, file []byte) error {
	params := &bot.SendPhotoParams{
		ChatID: message.ChatID,
		Photo: &models.InputFileUpload{Filename: fmt.Sprintf("%d.png", message.ID),
			Data: bytes.NewReader(file)},
		ReplyParameters: replyTo(message),
	}

	_, err := s.bot.SendPhoto(ctx, params)
	if err != nil {
		log.Error().Err(err).Msg("failed to send photo response")
		return err
	}

	return nil
}

// NotifyAndReturnError tells the user about err and returns it. If the notification fails, both errors are returned.
func (s *Telegram) NotifyAndReturnError(ctx context.Context, err error, message *domain.Message) error {
	_, sendErr := s.SendMessageReply(ctx, message, fmt.Sprintf("Error: %s", err.Error()))
	if sendErr != nil {
		return errors.Join(err, fmt.Errorf("%w: %w", domain.ErrSendingReplyFailed, sendErr))
	}

	return err
}

// SendChatAction repeats action in the chat until ctx is done or sending fails.
func (s *Telegram) SendChatAction(ctx context.Context, chatID int64, action domain.Action) {
	l := log.With().Int64("chatID", chatID).Str("action", string(action)).Logger()
	l.Debug().Msg("starting action routine")

	ticker := time.NewTicker(s.actionInterval)
	defer ticker.Stop()

	for {
		_, err := s.bot.SendChatAction(ctx, &bot.SendChatActionParams{
			ChatID: chatID,
			Action: models.ChatAction(action),
		})
		if err != nil {
			if ctx.Err() == nil {
				l.Err(err).Msg("error sending chat action")
			}
			return
		}

		select {
		case <-ctx.Done():
			l.Debug().Msg("done, stopping action routine")
			return
		case <-ticker.C:
		}
	}
}

// replyTo references message for a threaded reply. Notices addressed to a whole chat carry no message ID and are
// sent as plain messages, since Telegram rejects replies to a message that does not exist.
func replyTo(message *domain.Message) *models.ReplyParameters {
	if message.ID == 0 {
		return nil
	}

	return &models.ReplyParameters{
		MessageID: message.ID,
		ChatID:    message.ChatID,
	}
}

// chunkText splits text into pieces of at most limit bytes without breaking up UTF-8 sequences.
func chunkText(text string, limit int) []string {
	if len(text) <= limit {
		return []string{text}
	}

	var chunks []string
	for len(text) > limit {
		cut := limit
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		if cut == 0 {
			cut = limit
		}

		chunks = append(chunks, text[:cut])
		text = text[cut:]
	}

	if text != "" {
		chunks = append(chunks, text)
	}

	return chunks
}
