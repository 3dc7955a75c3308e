package webhook

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// Sender is the slice of *tgbotapi.BotAPI the receiver needs.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type paymentNotification struct {
	TelegramID int64  `json:"telegramId" validate:"required"`
	Status     string `json:"status" validate:"required"`
}

const (
	completedText = "✅ Pagamento confirmado! Sua assinatura está ativa."
	expiredText   = "⚠️ O link de pagamento expirou. Digite /planos para gerar um novo."
)

// Handler receives backend-pushed payment events and relays them to the
// user as chat messages. No retries here: a failed relay is reported as
// 500 so the backend can decide whether to call again.
type Handler struct {
	api      Sender
	validate *validator.Validate
	log      zerolog.Logger
}

func NewHandler(api Sender, log zerolog.Logger) *Handler {
	return &Handler{
		api:      api,
		validate: validator.New(),
		log:      log,
	}
}

func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()
	r.Post("/payment-notification", h.PaymentNotification)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
	return r
}

func (h *Handler) PaymentNotification(w http.ResponseWriter, r *http.Request) {
	var body paymentNotification
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}

	var text string
	switch body.Status {
	case "completed":
		text = completedText
	case "expired":
		text = expiredText
	default:
		// unknown statuses are acknowledged without a message
		h.log.Info().Str("status", body.Status).Int64("telegram_id", body.TelegramID).Msg("ignoring payment status")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
		return
	}

	if _, err := h.api.Send(tgbotapi.NewMessage(body.TelegramID, text)); err != nil {
		h.log.Error().Err(err).Int64("telegram_id", body.TelegramID).Str("status", body.Status).Msg("relay notification")
		http.Error(w, "failed to relay notification", http.StatusInternalServerError)
		return
	}

	h.log.Info().Int64("telegram_id", body.TelegramID).Str("status", body.Status).Msg("notification relayed")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
