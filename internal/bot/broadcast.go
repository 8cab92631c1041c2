package bot

import (
	"fmt"
	"time"

	"Account-Shop-Telegram-bot/internal/logger"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// broadcast рассылает сообщение всем незабаненным пользователям
func (h *Handler) broadcast(botapi *tgbotapi.BotAPI, adminChatID int64, text string) {
	users, err := h.store.AllUsers()
	if err != nil {
		h.reportStorageError(botapi, adminChatID, err)
		return
	}

	sent, failed := 0, 0
	for _, u := range users {
		if u.Banned {
			continue
		}
		msg := tgbotapi.NewMessage(u.ID, "📣 Thông báo từ quản trị viên:\n\n"+text)
		if _, err := botapi.Send(msg); err != nil {
			failed++
			logger.Error("broadcast delivery failed", zap.Int64("user_id", u.ID), zap.Error(err))
		} else {
			sent++
		}
		// щадим лимиты Telegram
		time.Sleep(50 * time.Millisecond)
	}

	logger.Info("broadcast finished", zap.Int("sent", sent), zap.Int("failed", failed))
	botapi.Send(tgbotapi.NewMessage(adminChatID, fmt.Sprintf(
		"📣 Đã gửi thông báo.\n\nThành công: %d\nThất bại: %d", sent, failed)))
}
