package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"github.com/flowers-delivery/app/bootstrap"
	"github.com/flowers-delivery/app/config"
	"github.com/flowers-delivery/internal/telegram"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Cannot load config: %v", err)
	}
	if cfg.TelegramToken == "" {
		log.Fatal("TELEGRAM_BOT_TOKEN is not set")
	}

	logger, err := bootstrap.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Cannot initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize services", zap.Error(err))
	}
	defer app.Close()

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		logger.Fatal("Failed to create Telegram bot", zap.Error(err))
	}
	logger.Info("Telegram bot started", zap.String("username", bot.Self.UserName))

	var reverser telegram.Reverser
	if app.Geocoder.Enabled() {
		reverser = app.Geocoder
	}
	handler := telegram.NewHandler(bot, app.Delivery, reverser, logger.Named("telegram"))

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := bot.GetUpdatesChan(u)

	if err := handler.Start(ctx, updates); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Bot stopped", zap.Error(err))
	}
	bot.StopReceivingUpdates()
	logger.Info("Telegram bot stopped")
}
