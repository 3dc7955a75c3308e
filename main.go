package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"github.com/subsgvip/subsbot/bot"
	"github.com/subsgvip/subsbot/clients/backend"
	"github.com/subsgvip/subsbot/config"
	"github.com/subsgvip/subsbot/webhook"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("load config")
	}

	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		logger.Fatal().Err(err).Msg("telegram auth")
	}
	logger.Info().Str("bot", api.Self.UserName).Msg("bot rodando")

	backendClient := backend.New(cfg.BackendURL)
	b := bot.New(api, backendClient, logger)

	notifier := webhook.NewHandler(api, logger)
	server := &http.Server{
		Addr:    config.NotifyAddr,
		Handler: notifier.Router(),
	}
	go func() {
		logger.Info().Str("addr", config.NotifyAddr).Msg("notification server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("notification server")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				logger.Error().Err(err).Msg("notification server shutdown")
			}
			return
		case update := <-updates:
			// one slow backend call must not stall every other chat
			go b.HandleUpdate(ctx, update)
		}
	}
}
