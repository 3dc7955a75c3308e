package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	actionShowPlans   = "show_plans"
	actionCheckStatus = "check_status"
	actionCancel      = "cancel_subscription"
	actionSubscribe   = "subscribe_plan_" // + 1-based plan index
)

func mainMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📋 Ver planos", actionShowPlans),
			tgbotapi.NewInlineKeyboardButtonData("📊 Meu status", actionCheckStatus),
		),
	)
}

// plansKeyboard offers one subscribe button per catalog entry, two per row,
// plus a cancel row. Button data carries the same 1-based index shown in
// the rendered list.
func plansKeyboard(planCount int) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var currentRow []tgbotapi.InlineKeyboardButton

	for i := 1; i <= planCount; i++ {
		btn := tgbotapi.NewInlineKeyboardButtonData(
			fmt.Sprintf("💳 Assinar plano %d", i),
			fmt.Sprintf("%s%d", actionSubscribe, i),
		)
		currentRow = append(currentRow, btn)
		if len(currentRow) == 2 {
			rows = append(rows, currentRow)
			currentRow = nil
		}
	}
	if len(currentRow) > 0 {
		rows = append(rows, currentRow)
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("❌ Cancelar", actionCancel),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func statusKeyboard(active bool) tgbotapi.InlineKeyboardMarkup {
	if active {
		return tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("🔄 Atualizar status", actionCheckStatus),
			),
		)
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📋 Ver planos", actionShowPlans),
		),
	)
}

func retryKeyboard(action string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Tentar novamente", action),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⬅️ Voltar ao menu", actionCancel),
		),
	)
}

func paymentKeyboard(paymentURL string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("💳 Pagar", paymentURL),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Verificar status", actionCheckStatus),
		),
	)
}
