package main

import (
	"log"
	"time"

	"Account-Shop-Telegram-bot/config"
	"Account-Shop-Telegram-bot/internal/admin"
	"Account-Shop-Telegram-bot/internal/bot"
	"Account-Shop-Telegram-bot/internal/logger"
	"Account-Shop-Telegram-bot/internal/session"
	"Account-Shop-Telegram-bot/internal/shop"
	"Account-Shop-Telegram-bot/internal/store"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/robfig/cron/v3"
)

func main() {
	config.LoadConfig()

	st, err := store.New(config.AppCfg.DataDir)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	sv := shop.NewService(st)

	sessions := session.NewStore(15 * time.Minute)
	sessions.StartJanitor(time.Minute)

	botapi, err := tgbotapi.NewBotAPI(config.AppCfg.BotToken)
	if err != nil {
		log.Fatalf("Failed to create Telegram bot: %v", err)
	}
	logger.InitNotifier(botapi, config.AppCfg.AdminIDs)

	admins := admin.NewRegistry(config.AppCfg.AdminIDs)
	adminHandler := admin.NewHandler(st, sv, sessions, admins)

	// ночной автобэкап данных
	c := cron.New()
	if _, err := c.AddFunc("0 3 * * *", func() {
		admin.AutoBackupData(config.AppCfg.DataDir, config.AppCfg.BackupDir)
	}); err != nil {
		log.Fatalf("Failed to schedule auto-backup: %v", err)
	}
	c.Start()
	defer c.Stop()

	bot.NewHandler(st, sv, sessions, adminHandler).Start(botapi)
}
