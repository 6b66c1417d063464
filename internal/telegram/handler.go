// Package telegram answers delivery cost questions in a Telegram chat.
package telegram

import (
	"context"
	"fmt"
	"strings"

	"github.com/flowers-delivery/app/models"
	"github.com/flowers-delivery/app/services"
	"github.com/flowers-delivery/internal/geocoder"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const (
	welcomeMessage = "Здравствуйте! Напишите адрес доставки или отправьте геопозицию, и я рассчитаю стоимость доставки букета."
	helpMessage    = "Напишите адрес доставки текстом, например: «село Раевский, ул. Ленина 5», или отправьте геопозицию."
	locationFailed = "Не удалось определить адрес по геопозиции. Пожалуйста, напишите адрес текстом."
)

// Sender delivers outgoing messages. *tgbotapi.BotAPI implements it.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Quoter prices a delivery from the shop.
type Quoter interface {
	Quote(ctx context.Context, toAddress string, weight float64) models.DeliveryDecision
}

// Reverser finds the address at a position.
type Reverser interface {
	Reverse(ctx context.Context, lat, lon float64) (geocoder.ReverseResult, error)
}

// Handler replies to addresses and shared locations with a delivery quote.
// It keeps no per-chat state.
type Handler struct {
	sender   Sender
	quoter   Quoter
	reverser Reverser
	logger   *zap.Logger
}

// NewHandler creates a Handler; reverser may be nil, then locations are
// answered with a request to type the address.
func NewHandler(sender Sender, quoter Quoter, reverser Reverser, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		sender:   sender,
		quoter:   quoter,
		reverser: reverser,
		logger:   logger,
	}
}

// Start handles updates until ctx is done or the channel is closed.
func (h *Handler) Start(ctx context.Context, updates <-chan tgbotapi.Update) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			go h.HandleMessage(ctx, update.Message)
		}
	}
}

// HandleMessage answers one incoming message.
func (h *Handler) HandleMessage(ctx context.Context, message *tgbotapi.Message) {
	if message == nil || message.Chat == nil {
		return
	}
	chatID := message.Chat.ID

	switch {
	case message.IsCommand():
		h.handleCommand(chatID, message.Command())
	case message.Location != nil:
		h.handleLocation(ctx, chatID, message.Location)
	case strings.TrimSpace(message.Text) != "":
		h.reply(chatID, h.quote(ctx, strings.TrimSpace(message.Text)))
	default:
		h.reply(chatID, helpMessage)
	}
}

func (h *Handler) handleCommand(chatID int64, command string) {
	switch command {
	case "start":
		h.reply(chatID, welcomeMessage)
	default:
		h.reply(chatID, helpMessage)
	}
}

func (h *Handler) handleLocation(ctx context.Context, chatID int64, loc *tgbotapi.Location) {
	if h.reverser == nil {
		h.reply(chatID, locationFailed)
		return
	}

	result, err := h.reverser.Reverse(ctx, loc.Latitude, loc.Longitude)
	address := result.FormattedAddress
	if address == "" {
		address = result.FullAddress
	}
	if err != nil || address == "" {
		h.logger.Warn("Cannot resolve shared location",
			zap.Int64("chat_id", chatID),
			zap.Float64("lat", loc.Latitude),
			zap.Float64("lon", loc.Longitude),
			zap.Error(err))
		h.reply(chatID, locationFailed)
		return
	}

	h.reply(chatID, h.quote(ctx, address))
}

func (h *Handler) quote(ctx context.Context, address string) string {
	d := h.quoter.Quote(ctx, address, services.DefaultWeight)
	return fmt.Sprintf("Адрес: %s\n%s", address, services.CustomerMessage(d))
}

func (h *Handler) reply(chatID int64, text string) {
	if _, err := h.sender.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		h.logger.Error("Cannot send Telegram message", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}
