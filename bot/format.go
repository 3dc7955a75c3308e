package bot

import (
	"fmt"
	"strings"

	"github.com/subsgvip/subsbot/clients/backend"
)

const (
	welcomeText = "Bem-vindo ao Subs Gvip! Digite /planos ou use o menu abaixo para ver os planos disponíveis."

	alreadyActiveText  = "Você já possui uma assinatura ativa."
	statusInactiveText = "🔒 Você ainda não possui uma assinatura ativa. Digite /planos para assinar."
	usageHintText      = "Informe o ID do plano. Ex: /assinar 1"
	cancelText         = "Tudo bem! Voltando ao menu principal."
	genericFailureText = "❌ Não foi possível completar a operação agora. Tente novamente em instantes."
	unexpectedText     = "❌ Ocorreu um erro inesperado. Tente novamente."
)

// FormatPrice renders a price in minor currency units as a two-decimal value.
func FormatPrice(cents int64) string {
	return fmt.Sprintf("%.2f", float64(cents)/100)
}

// FormatPlanList renders the catalog exactly as the backend ordered it,
// one numbered entry per plan.
func FormatPlanList(plans []backend.Plan) string {
	var b strings.Builder
	b.WriteString("Planos disponíveis:\n")
	for i, p := range plans {
		fmt.Fprintf(&b, "%d. %s - R$%s\n", i+1, p.Name, FormatPrice(p.Price))
	}
	b.WriteString("Use /assinar <numero_do_plano> ou toque em um botão abaixo.")
	return b.String()
}

func formatStatus(status *backend.SubscriptionStatus) string {
	if status.IsActive {
		return fmt.Sprintf("✅ Assinatura ativa!\n⏳ Dias restantes: %d", status.DaysRemaining)
	}
	return statusInactiveText
}

func formatPaymentLink(url string) string {
	return fmt.Sprintf("Para concluir sua assinatura, acesse: %s", url)
}

func formatPlanNotFound(planID int) string {
	return fmt.Sprintf("Plano %d não encontrado. Digite /planos para ver a lista atualizada.", planID)
}
