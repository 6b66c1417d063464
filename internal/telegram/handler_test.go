package telegram

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/flowers-delivery/app/models"
	"github.com/flowers-delivery/internal/geocoder"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMessage struct {
	chatID int64
	text   string
}

type fakeSender struct {
	mu   sync.Mutex
	sent []sentMessage
	err  error
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	msg := c.(tgbotapi.MessageConfig)
	f.sent = append(f.sent, sentMessage{chatID: msg.ChatID, text: msg.Text})
	return tgbotapi.Message{}, f.err
}

func (f *fakeSender) messages() []sentMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sentMessage(nil), f.sent...)
}

type fakeQuoter struct {
	mu        sync.Mutex
	addresses []string
}

func (f *fakeQuoter) Quote(ctx context.Context, toAddress string, weight float64) models.DeliveryDecision {
	f.mu.Lock()
	f.addresses = append(f.addresses, toAddress)
	f.mu.Unlock()

	if toAddress == "Москва" {
		return models.ManualDecision()
	}
	return models.DeliveryDecision{
		Cost:            decimal.NewFromInt(250),
		DurationMinutes: models.FixedTariffDurationMinutes,
		Available:       true,
		SourceLabel:     models.SourceFixedTariff,
	}
}

type fakeReverser struct {
	result geocoder.ReverseResult
	err    error
}

func (f fakeReverser) Reverse(ctx context.Context, lat, lon float64) (geocoder.ReverseResult, error) {
	return f.result, f.err
}

func textMessage(text string) *tgbotapi.Message {
	return &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: 7}, Text: text}
}

func commandMessage(command string) *tgbotapi.Message {
	msg := textMessage("/" + command)
	msg.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(command) + 1}}
	return msg
}

func TestHandler_Start(t *testing.T) {
	sender := &fakeSender{}
	h := NewHandler(sender, &fakeQuoter{}, nil, nil)

	h.HandleMessage(context.Background(), commandMessage("start"))

	require.Len(t, sender.messages(), 1)
	assert.Equal(t, int64(7), sender.messages()[0].chatID)
	assert.Equal(t, welcomeMessage, sender.messages()[0].text)

	h.HandleMessage(context.Background(), commandMessage("help"))
	assert.Equal(t, helpMessage, sender.messages()[1].text)
}

func TestHandler_Address(t *testing.T) {
	sender := &fakeSender{}
	quoter := &fakeQuoter{}
	h := NewHandler(sender, quoter, nil, nil)

	h.HandleMessage(context.Background(), textMessage("  село Раевский, ул. Ленина 5 "))
	h.HandleMessage(context.Background(), textMessage("Москва"))

	sent := sender.messages()
	require.Len(t, sent, 2)
	assert.Equal(t, "Адрес: село Раевский, ул. Ленина 5\nДоставка: 250.00 ₽\nПримерное время доставки: 30 минут", sent[0].text)
	assert.Contains(t, sent[1].text, "рассчитает менеджер")
	assert.Equal(t, []string{"село Раевский, ул. Ленина 5", "Москва"}, quoter.addresses)
}

func TestHandler_Location(t *testing.T) {
	location := &tgbotapi.Message{
		Chat:     &tgbotapi.Chat{ID: 7},
		Location: &tgbotapi.Location{Latitude: 54.07, Longitude: 54.93},
	}

	t.Run("reverse geocoded", func(t *testing.T) {
		sender := &fakeSender{}
		quoter := &fakeQuoter{}
		h := NewHandler(sender, quoter, fakeReverser{result: geocoder.ReverseResult{
			FormattedAddress: "Россия, Республика Башкортостан, село Раевский, Трактовая улица, 78А",
		}}, nil)

		h.HandleMessage(context.Background(), location)

		require.Len(t, sender.messages(), 1)
		assert.Equal(t, []string{"Россия, Республика Башкортостан, село Раевский, Трактовая улица, 78А"}, quoter.addresses)
	})

	t.Run("reverse failure", func(t *testing.T) {
		sender := &fakeSender{}
		quoter := &fakeQuoter{}
		h := NewHandler(sender, quoter, fakeReverser{err: errors.New("timeout")}, nil)

		h.HandleMessage(context.Background(), location)

		require.Len(t, sender.messages(), 1)
		assert.Equal(t, locationFailed, sender.messages()[0].text)
		assert.Empty(t, quoter.addresses)
	})

	t.Run("no geocoder", func(t *testing.T) {
		sender := &fakeSender{}
		h := NewHandler(sender, &fakeQuoter{}, nil, nil)

		h.HandleMessage(context.Background(), location)
		assert.Equal(t, locationFailed, sender.messages()[0].text)
	})
}

func TestHandler_IgnoresEmptyUpdates(t *testing.T) {
	sender := &fakeSender{}
	h := NewHandler(sender, &fakeQuoter{}, nil, nil)

	h.HandleMessage(context.Background(), nil)
	h.HandleMessage(context.Background(), &tgbotapi.Message{})
	assert.Empty(t, sender.messages())

	h.HandleMessage(context.Background(), textMessage("   "))
	assert.Equal(t, helpMessage, sender.messages()[0].text)
}

func TestHandler_SendErrorIsLogged(t *testing.T) {
	sender := &fakeSender{err: errors.New("forbidden")}
	h := NewHandler(sender, &fakeQuoter{}, nil, nil)

	assert.NotPanics(t, func() {
		h.HandleMessage(context.Background(), textMessage("Раевка"))
	})
}

func TestHandler_StartLoop(t *testing.T) {
	sender := &fakeSender{}
	h := NewHandler(sender, &fakeQuoter{}, nil, nil)

	updates := make(chan tgbotapi.Update, 2)
	updates <- tgbotapi.Update{}
	updates <- tgbotapi.Update{Message: textMessage("Раевка")}
	close(updates)

	require.NoError(t, h.Start(context.Background(), updates))
	assert.Eventually(t, func() bool { return len(sender.messages()) == 1 }, time.Second, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, h.Start(ctx, make(chan tgbotapi.Update)), context.Canceled)
}
