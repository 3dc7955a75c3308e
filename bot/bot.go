package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"github.com/subsgvip/subsbot/clients/backend"
)

// Backend is the slice of the subscription backend the handlers consume.
type Backend interface {
	ListPlans(ctx context.Context) ([]backend.Plan, error)
	GetStatus(ctx context.Context, telegramID int64) (*backend.SubscriptionStatus, error)
	CreatePayment(ctx context.Context, planID int, telegramID int64) (*backend.PaymentSession, error)
}

// Sender is the slice of *tgbotapi.BotAPI the handlers use to reply.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// subscriptionState is the authoritative reading of a backend-reported
// status. Handlers consult stateOf instead of inspecting the raw struct,
// so the "may this user start a purchase" rule lives in one place.
type subscriptionState int

const (
	stateNone subscriptionState = iota
	statePendingPayment
	stateActive
)

func (s subscriptionState) String() string {
	switch s {
	case statePendingPayment:
		return "pending-payment"
	case stateActive:
		return "active"
	default:
		return "none"
	}
}

func stateOf(status *backend.SubscriptionStatus) subscriptionState {
	if status != nil && status.IsActive {
		return stateActive
	}
	return stateNone
}

// Bot routes chat triggers to handlers. Stateless: every handler fetches
// what it needs fresh from the backend.
type Bot struct {
	api     Sender
	backend Backend
	log     zerolog.Logger
}

func New(api Sender, backendClient Backend, log zerolog.Logger) *Bot {
	return &Bot{
		api:     api,
		backend: backendClient,
		log:     log,
	}
}

// HandleUpdate dispatches one update. A panicking handler is contained
// here: the user gets a generic error with the main menu and the process
// keeps serving other updates.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	chatID := chatIDOf(update)

	defer func() {
		if r := recover(); r != nil {
			b.log.Error().Interface("panic", r).Int64("chat_id", chatID).Msg("handler panicked")
			if chatID != 0 {
				b.reply(chatID, unexpectedText, mainMenuKeyboard())
			}
		}
	}()

	switch {
	case update.Message != nil:
		b.handleMessage(ctx, update.Message)
	case update.CallbackQuery != nil && update.CallbackQuery.Message != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	}
}

func chatIDOf(update tgbotapi.Update) int64 {
	if update.Message != nil {
		return update.Message.Chat.ID
	}
	if update.CallbackQuery != nil && update.CallbackQuery.Message != nil {
		return update.CallbackQuery.Message.Chat.ID
	}
	return 0
}

func (b *Bot) reply(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboard
	msg.DisableWebPagePreview = true
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error().Err(err).Int64("chat_id", chatID).Msg("send reply")
	}
}

func (b *Bot) replyPlain(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.DisableWebPagePreview = true
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error().Err(err).Int64("chat_id", chatID).Msg("send reply")
	}
}

// ackCallback dismisses the pending-interaction indicator. Runs before the
// handler replies so the client never shows a stuck processing state.
func (b *Bot) ackCallback(cq *tgbotapi.CallbackQuery, text string) {
	cfg := tgbotapi.CallbackConfig{CallbackQueryID: cq.ID}
	if text != "" {
		cfg.Text = text
	}
	if _, err := b.api.Request(cfg); err != nil {
		b.log.Error().Err(err).Str("data", cq.Data).Msg("ack callback")
	}
}
