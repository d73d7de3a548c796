package telegram

import (
	"context"
	"fmt"

	"borgo/internal/adapters/file"
	"borgo/internal/core/port"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"
)

// Messenger implements port.Messenger on the Telegram Bot API client.
type Messenger struct {
	bot *bot.Bot
}

func NewMessenger(b *bot.Bot) *Messenger {
	return &Messenger{bot: b}
}

func (m *Messenger) Send(ctx context.Context, chatID int64, text string, opts port.SendOptions) (int, error) {
	params := &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: parseMode(opts.ParseMode),
	}

	if opts.ReplyTo != 0 {
		params.ReplyParameters = &models.ReplyParameters{
			MessageID: opts.ReplyTo,
			ChatID:    chatID,
		}
	}

	if opts.DisablePreview {
		disabled := true
		params.LinkPreviewOptions = &models.LinkPreviewOptions{IsDisabled: &disabled}
	}

	msg, err := m.bot.SendMessage(ctx, params)
	if err != nil {
		return 0, fmt.Errorf("sending message: %w", err)
	}

	return msg.ID, nil
}

func (m *Messenger) Edit(ctx context.Context, chatID int64, messageID int, text string,
	opts port.SendOptions) error {
	_, err := m.bot.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:    chatID,
		MessageID: messageID,
		Text:      text,
		ParseMode: parseMode(opts.ParseMode),
	})
	if err != nil {
		return fmt.Errorf("editing message %d: %w", messageID, err)
	}

	return nil
}

func (m *Messenger) Delete(ctx context.Context, chatID int64, messageID int) error {
	_, err := m.bot.DeleteMessage(ctx, &bot.DeleteMessageParams{
		ChatID:    chatID,
		MessageID: messageID,
	})
	if err != nil {
		return fmt.Errorf("deleting message %d: %w", messageID, err)
	}

	return nil
}

func (m *Messenger) DownloadMedia(ctx context.Context, fileID string) ([]byte, error) {
	f, err := m.bot.GetFile(ctx, &bot.GetFileParams{FileID: fileID})
	if err != nil {
		log.Error().Err(err).Str("fileId", fileID).Msg("error getting file from telegram api")
		return nil, fmt.Errorf("getting file: %w", err)
	}

	return file.DownloadFile(ctx, m.bot.FileDownloadLink(f))
}

func parseMode(mode port.ParseMode) models.ParseMode {
	switch mode {
	case port.ParseMarkdown:
		return models.ParseModeMarkdown
	case port.ParseHTML:
		return models.ParseModeHTML
	default:
		return ""
	}
}
