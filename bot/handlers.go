package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/subsgvip/subsbot/clients/backend"
)

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if !msg.IsCommand() || msg.From == nil {
		return
	}

	switch msg.Command() {
	case "start":
		b.handleStart(ctx, msg)
	case "planos":
		b.showPlans(ctx, msg.Chat.ID, msg.From.ID)
	case "assinar":
		b.handleSubscribeCommand(ctx, msg)
	default:
		// ignore other commands
	}
}

func (b *Bot) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	b.ackCallback(cq, "")

	chatID := cq.Message.Chat.ID
	userID := cq.From.ID
	data := cq.Data

	switch {
	case data == actionShowPlans:
		b.showPlans(ctx, chatID, userID)
	case data == actionCheckStatus:
		b.checkStatus(ctx, chatID, userID)
	case data == actionCancel:
		b.reply(chatID, cancelText, mainMenuKeyboard())
	case strings.HasPrefix(data, actionSubscribe):
		planID, err := strconv.Atoi(strings.TrimPrefix(data, actionSubscribe))
		if err != nil || planID < 1 {
			b.log.Warn().Str("data", data).Msg("malformed subscribe callback")
			return
		}
		b.subscribe(ctx, chatID, userID, planID)
	default:
		// ignore
	}
}

// handleStart fails open: a backend error degrades to the plain welcome
// instead of surfacing to the user.
func (b *Bot) handleStart(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	status, err := b.backend.GetStatus(ctx, msg.From.ID)
	if err != nil {
		b.log.Error().Err(err).Int64("telegram_id", msg.From.ID).Msg("get status on /start")
		b.reply(chatID, welcomeText, mainMenuKeyboard())
		return
	}

	if stateOf(status) == stateActive {
		b.reply(chatID, formatStatus(status), mainMenuKeyboard())
		return
	}
	b.reply(chatID, welcomeText, mainMenuKeyboard())
}

func (b *Bot) showPlans(ctx context.Context, chatID, userID int64) {
	status, err := b.backend.GetStatus(ctx, userID)
	if err != nil {
		b.log.Error().Err(err).Int64("telegram_id", userID).Msg("get status before plans")
		b.reply(chatID, genericFailureText, retryKeyboard(actionShowPlans))
		return
	}
	if stateOf(status) == stateActive {
		b.reply(chatID, alreadyActiveText+"\n"+formatStatus(status), statusKeyboard(true))
		return
	}

	plans, err := b.backend.ListPlans(ctx)
	if err != nil {
		b.log.Error().Err(err).Msg("list plans")
		b.reply(chatID, genericFailureText, retryKeyboard(actionShowPlans))
		return
	}

	b.reply(chatID, FormatPlanList(plans), plansKeyboard(len(plans)))
}

func (b *Bot) checkStatus(ctx context.Context, chatID, userID int64) {
	status, err := b.backend.GetStatus(ctx, userID)
	if err != nil {
		b.log.Error().Err(err).Int64("telegram_id", userID).Msg("get status")
		b.reply(chatID, genericFailureText, retryKeyboard(actionCheckStatus))
		return
	}
	b.reply(chatID, formatStatus(status), statusKeyboard(stateOf(status) == stateActive))
}

func (b *Bot) handleSubscribeCommand(ctx context.Context, msg *tgbotapi.Message) {
	args := strings.TrimSpace(msg.CommandArguments())
	if args == "" {
		b.replyPlain(msg.Chat.ID, usageHintText)
		return
	}
	planID, err := strconv.Atoi(args)
	if err != nil || planID < 1 {
		b.replyPlain(msg.Chat.ID, usageHintText)
		return
	}
	b.subscribe(ctx, msg.Chat.ID, msg.From.ID, planID)
}

// subscribe blocks double purchases with a fresh status check, validates the
// selector against the current catalog and only then asks for a payment
// session. The selector is the 1-based catalog index; the backend exposes
// no stable plan id.
func (b *Bot) subscribe(ctx context.Context, chatID, userID int64, planID int) {
	retryAction := fmt.Sprintf("%s%d", actionSubscribe, planID)

	status, err := b.backend.GetStatus(ctx, userID)
	if err != nil {
		b.log.Error().Err(err).Int64("telegram_id", userID).Msg("get status before payment")
		b.reply(chatID, genericFailureText, retryKeyboard(retryAction))
		return
	}
	if stateOf(status) == stateActive {
		b.reply(chatID, alreadyActiveText+"\n"+formatStatus(status), statusKeyboard(true))
		return
	}

	plans, err := b.backend.ListPlans(ctx)
	if err != nil {
		b.log.Error().Err(err).Msg("list plans before payment")
		b.reply(chatID, genericFailureText, retryKeyboard(retryAction))
		return
	}
	if planID > len(plans) {
		b.replyPlain(chatID, formatPlanNotFound(planID))
		return
	}

	session, err := b.backend.CreatePayment(ctx, planID, userID)
	if err != nil {
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			// the backend wrote this message for the user; relay it verbatim
			b.reply(chatID, apiErr.Message, mainMenuKeyboard())
			return
		}
		b.log.Error().Err(err).Int("plan_id", planID).Int64("telegram_id", userID).Msg("create payment")
		b.reply(chatID, genericFailureText, retryKeyboard(retryAction))
		return
	}

	b.log.Info().
		Int("plan_id", planID).
		Int64("telegram_id", userID).
		Str("state", statePendingPayment.String()).
		Msg("payment session created")
	b.reply(chatID, formatPaymentLink(session.PaymentURL), paymentKeyboard(session.PaymentURL))
}
