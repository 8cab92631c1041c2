package logger

import (
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

var (
	botInstance *tgbotapi.BotAPI
	adminIDs    []int64
	once        sync.Once
)

// InitNotifier инициализирует Telegram-уведомления об ошибках
func InitNotifier(bot *tgbotapi.BotAPI, admins []int64) {
	once.Do(func() {
		botInstance = bot
		adminIDs = admins
	})
}

// NotifyAdmins отправляет критическое уведомление всем админам
func NotifyAdmins(msg string) {
	if botInstance == nil || len(adminIDs) == 0 {
		return
	}
	for _, id := range adminIDs {
		botInstance.Send(tgbotapi.NewMessage(id, "[ALERT] "+msg))
	}
}

// NotifyOnPanic ловит панику, логирует и уведомляет
func NotifyOnPanic(context string) {
	if r := recover(); r != nil {
		Error("panic recovered", zap.String("context", context), zap.Any("panic", r))
		NotifyAdmins("Panic in " + context + ": " + toString(r))
	}
}

func toString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	if e, ok := v.(error); ok {
		return e.Error()
	}
	return "panic: unknown error"
}
