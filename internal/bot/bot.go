package bot

import (
	"Account-Shop-Telegram-bot/internal/admin"
	"Account-Shop-Telegram-bot/internal/logger"
	"Account-Shop-Telegram-bot/internal/session"
	"Account-Shop-Telegram-bot/internal/shop"
	"Account-Shop-Telegram-bot/internal/store"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Handler связывает Telegram-обновления с магазином и админкой
type Handler struct {
	store    *store.Store
	shop     *shop.Service
	sessions *session.Store
	admin    *admin.Handler
	admins   *admin.Registry
	limiter  *RateLimiter
}

func NewHandler(st *store.Store, sv *shop.Service, ss *session.Store, ah *admin.Handler) *Handler {
	return &Handler{
		store:    st,
		shop:     sv,
		sessions: ss,
		admin:    ah,
		admins:   ah.Admins(),
		limiter:  NewRateLimiter(),
	}
}

// Start запускает Telegram-бота (polling) с переданным экземпляром
func (h *Handler) Start(botapi *tgbotapi.BotAPI) {
	logger.Info("authorized on account", zap.String("username", botapi.Self.UserName))

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := botapi.GetUpdatesChan(u)

	for update := range updates {
		h.HandleUpdate(botapi, update)
	}
}

func (h *Handler) HandleUpdate(botapi *tgbotapi.BotAPI, update tgbotapi.Update) {
	defer logger.NotifyOnPanic("handle_update")

	if update.CallbackQuery != nil {
		h.handleCallback(botapi, update.CallbackQuery)
		return
	}
	if update.Message == nil || update.Message.From == nil {
		return
	}
	h.handleMessage(botapi, update)
}
