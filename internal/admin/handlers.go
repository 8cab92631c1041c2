package admin

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"Account-Shop-Telegram-bot/config"
	"Account-Shop-Telegram-bot/internal/keyboard"
	"Account-Shop-Telegram-bot/internal/logger"
	"Account-Shop-Telegram-bot/internal/session"
	"Account-Shop-Telegram-bot/internal/shop"
	"Account-Shop-Telegram-bot/internal/store"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Handler обрабатывает админские слэш-команды
type Handler struct {
	store    *store.Store
	shop     *shop.Service
	sessions *session.Store
	admins   *Registry
}

func NewHandler(st *store.Store, sv *shop.Service, ss *session.Store, reg *Registry) *Handler {
	return &Handler{store: st, shop: sv, sessions: ss, admins: reg}
}

func (h *Handler) Admins() *Registry { return h.admins }

// HandleCommand возвращает false, если команда не админская
func (h *Handler) HandleCommand(bot *tgbotapi.BotAPI, update *tgbotapi.Update) bool {
	if update.Message == nil || !h.admins.IsAdmin(update.Message.From.ID) {
		return false
	}
	cmd := update.Message.Command()
	switch cmd {
	case "create_product":
		h.handleCreateProduct(bot, update)
	case "product_list":
		h.handleProductList(bot, update)
	case "upload_product":
		h.handleUploadProduct(bot, update)
	case "add_money":
		h.handleAddMoney(bot, update)
	case "user_list":
		h.handleUserList(bot, update)
	case "ban_user":
		h.handleBanUser(bot, update)
	case "unban_user":
		h.handleUnbanUser(bot, update)
	default:
		return false
	}
	logger.LogAdminAction(update.Message.From.ID, cmd, update.Message.Text)
	return true
}

func (h *Handler) handleCreateProduct(bot *tgbotapi.BotAPI, update *tgbotapi.Update) {
	chatID := update.Message.Chat.ID
	args := strings.Fields(update.Message.CommandArguments())
	if len(args) < 2 {
		bot.Send(tgbotapi.NewMessage(chatID,
			"❌ Sử dụng sai cú pháp. Vui lòng sử dụng: /create_product [tên] [giá]\n"+
				"Ví dụ: /create_product \"Netflix Premium\" 50000"))
		return
	}
	price, err := strconv.ParseFloat(args[len(args)-1], 64)
	if err != nil {
		bot.Send(tgbotapi.NewMessage(chatID, "❌ Giá phải là một số."))
		return
	}
	name := strings.Trim(strings.Join(args[:len(args)-1], " "), "\"")

	id, err := h.store.SaveProduct(store.Product{Name: name, Price: price})
	if err != nil {
		h.reportStorageError(bot, chatID, err)
		return
	}
	bot.Send(tgbotapi.NewMessage(chatID, fmt.Sprintf(
		"✅ Đã tạo sản phẩm thành công!\n\nID: %d\nTên: %s\nGiá: %s %s\nLoại: %s",
		id, name, shop.FormatMoney(price), config.AppCfg.Currency, productKind(price))))
}

func productKind(price float64) string {
	if price <= 0 {
		return "Miễn phí"
	}
	return "Trả phí"
}

func (h *Handler) handleProductList(bot *tgbotapi.BotAPI, update *tgbotapi.Update) {
	chatID := update.Message.Chat.ID
	products, err := h.store.AllProducts()
	if err != nil {
		h.reportStorageError(bot, chatID, err)
		return
	}
	if len(products) == 0 {
		bot.Send(tgbotapi.NewMessage(chatID, "📦 Chưa có sản phẩm nào."))
		return
	}
	msg := tgbotapi.NewMessage(chatID, "📋 *Danh sách sản phẩm*\n\nChọn một sản phẩm để xem chi tiết:")
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = keyboard.ProductList(products, 0, true)
	bot.Send(msg)
}

func (h *Handler) handleUploadProduct(bot *tgbotapi.BotAPI, update *tgbotapi.Update) {
	chatID := update.Message.Chat.ID
	args := strings.Fields(update.Message.CommandArguments())
	if len(args) < 1 {
		bot.Send(tgbotapi.NewMessage(chatID, "❌ Sử dụng sai cú pháp. Vui lòng sử dụng: /upload_product [product_id]"))
		return
	}
	productID, err := strconv.Atoi(args[0])
	if err != nil {
		bot.Send(tgbotapi.NewMessage(chatID, "❌ ID sản phẩm phải là một số."))
		return
	}
	product, err := h.store.GetProduct(productID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			bot.Send(tgbotapi.NewMessage(chatID, fmt.Sprintf("❌ Không tìm thấy sản phẩm với ID %d.", productID)))
			return
		}
		h.reportStorageError(bot, chatID, err)
		return
	}

	h.sessions.Set(update.Message.From.ID, session.State{Kind: session.WaitingAccounts, ProductID: productID})

	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf(
		"📤 Vui lòng gửi danh sách tài khoản cho sản phẩm *%s*.\n\n"+
			"Mỗi tài khoản trên một dòng, định dạng: `username:password` hoặc bất kỳ định dạng nào bạn muốn.\n\n"+
			"Ví dụ:\n```\nuser1@example.com:password1\nuser2@example.com:password2\n```",
		product.Name))
	msg.ParseMode = tgbotapi.ModeMarkdown
	bot.Send(msg)
}

func (h *Handler) handleAddMoney(bot *tgbotapi.BotAPI, update *tgbotapi.Update) {
	chatID := update.Message.Chat.ID
	args := strings.Fields(update.Message.CommandArguments())
	if len(args) < 2 {
		bot.Send(tgbotapi.NewMessage(chatID, "❌ Sử dụng sai cú pháp. Vui lòng sử dụng: /add_money [user_id] [số tiền]"))
		return
	}
	targetID, err1 := strconv.ParseInt(args[0], 10, 64)
	amount, err2 := strconv.ParseFloat(args[1], 64)
	if err1 != nil || err2 != nil {
		bot.Send(tgbotapi.NewMessage(chatID, "❌ ID người dùng và số tiền phải là số."))
		return
	}
	h.CreditUser(bot, chatID, targetID, amount)
}

// CreditUser пополняет баланс и уведомляет обе стороны.
// Используется и слэш-командой, и диалогом из панели.
func (h *Handler) CreditUser(bot *tgbotapi.BotAPI, chatID, targetID int64, amount float64) {
	target, err := h.store.GetUser(targetID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			bot.Send(tgbotapi.NewMessage(chatID, fmt.Sprintf("❌ Không tìm thấy người dùng với ID %d.", targetID)))
			return
		}
		h.reportStorageError(bot, chatID, err)
		return
	}

	newBalance, err := h.shop.Credit(targetID, amount)
	if err != nil {
		if errors.Is(err, shop.ErrInvalidAmount) {
			bot.Send(tgbotapi.NewMessage(chatID, "❌ Số tiền phải lớn hơn 0."))
			return
		}
		bot.Send(tgbotapi.NewMessage(chatID, "❌ Không thể thêm tiền cho người dùng này."))
		return
	}

	cur := config.AppCfg.Currency
	bot.Send(tgbotapi.NewMessage(chatID, fmt.Sprintf(
		"✅ Đã thêm %s %s cho người dùng %s.\nSố dư mới: %s %s",
		shop.FormatMoney(amount), cur, target.Username, shop.FormatMoney(newBalance), cur)))
	bot.Send(tgbotapi.NewMessage(targetID, fmt.Sprintf(
		"💰 Tài khoản của bạn vừa được cộng %s %s.\nSố dư hiện tại: %s %s",
		shop.FormatMoney(amount), cur, shop.FormatMoney(newBalance), cur)))
}

func (h *Handler) handleUserList(bot *tgbotapi.BotAPI, update *tgbotapi.Update) {
	chatID := update.Message.Chat.ID
	users, err := h.store.AllUsers()
	if err != nil {
		h.reportStorageError(bot, chatID, err)
		return
	}
	if len(users) == 0 {
		bot.Send(tgbotapi.NewMessage(chatID, "👥 Chưa có người dùng nào."))
		return
	}
	msg := tgbotapi.NewMessage(chatID, "👥 *Danh sách người dùng*\n\nChọn một người dùng để xem chi tiết:")
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = keyboard.UserList(users, 0)
	bot.Send(msg)
}

func (h *Handler) handleBanUser(bot *tgbotapi.BotAPI, update *tgbotapi.Update) {
	chatID := update.Message.Chat.ID
	args := strings.Fields(update.Message.CommandArguments())
	if len(args) < 1 {
		bot.Send(tgbotapi.NewMessage(chatID, "❌ Sử dụng sai cú pháp. Vui lòng sử dụng: /ban_user [user_id]"))
		return
	}
	targetID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		bot.Send(tgbotapi.NewMessage(chatID, "❌ ID người dùng phải là một số."))
		return
	}
	h.BanTarget(bot, chatID, targetID)
}

// BanTarget блокирует пользователя; админа заблокировать нельзя
func (h *Handler) BanTarget(bot *tgbotapi.BotAPI, chatID, targetID int64) {
	target, err := h.store.GetUser(targetID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			bot.Send(tgbotapi.NewMessage(chatID, fmt.Sprintf("❌ Không tìm thấy người dùng với ID %d.", targetID)))
			return
		}
		h.reportStorageError(bot, chatID, err)
		return
	}
	if h.admins.IsAdmin(targetID) {
		bot.Send(tgbotapi.NewMessage(chatID, "❌ Không thể cấm quản trị viên."))
		return
	}
	if err := h.store.BanUser(targetID); err != nil {
		bot.Send(tgbotapi.NewMessage(chatID, "❌ Không thể cấm người dùng này."))
		return
	}
	bot.Send(tgbotapi.NewMessage(chatID, fmt.Sprintf("✅ Đã cấm người dùng %s.", target.Username)))
	bot.Send(tgbotapi.NewMessage(targetID, "⛔ Tài khoản của bạn đã bị cấm. Vui lòng liên hệ quản trị viên."))
}

func (h *Handler) handleUnbanUser(bot *tgbotapi.BotAPI, update *tgbotapi.Update) {
	chatID := update.Message.Chat.ID
	args := strings.Fields(update.Message.CommandArguments())
	if len(args) < 1 {
		bot.Send(tgbotapi.NewMessage(chatID, "❌ Sử dụng sai cú pháp. Vui lòng sử dụng: /unban_user [user_id]"))
		return
	}
	targetID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		bot.Send(tgbotapi.NewMessage(chatID, "❌ ID người dùng phải là một số."))
		return
	}
	h.UnbanTarget(bot, chatID, targetID)
}

func (h *Handler) UnbanTarget(bot *tgbotapi.BotAPI, chatID, targetID int64) {
	target, err := h.store.GetUser(targetID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			bot.Send(tgbotapi.NewMessage(chatID, fmt.Sprintf("❌ Không tìm thấy người dùng với ID %d.", targetID)))
			return
		}
		h.reportStorageError(bot, chatID, err)
		return
	}
	if err := h.store.UnbanUser(targetID); err != nil {
		bot.Send(tgbotapi.NewMessage(chatID, "❌ Không thể bỏ cấm người dùng này."))
		return
	}
	bot.Send(tgbotapi.NewMessage(chatID, fmt.Sprintf("✅ Đã bỏ cấm người dùng %s.", target.Username)))
	bot.Send(tgbotapi.NewMessage(targetID, "✅ Tài khoản của bạn đã được bỏ cấm. Bạn có thể sử dụng bot bình thường."))
}

func (h *Handler) reportStorageError(bot *tgbotapi.BotAPI, chatID int64, err error) {
	logger.Error("storage failure", zap.Error(err))
	logger.NotifyAdmins("Storage failure: " + err.Error())
	bot.Send(tgbotapi.NewMessage(chatID, "❌ Lỗi hệ thống lưu trữ. Quản trị viên đã được thông báo."))
}
