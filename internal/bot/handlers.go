package bot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"Account-Shop-Telegram-bot/config"
	"Account-Shop-Telegram-bot/internal/keyboard"
	"Account-Shop-Telegram-bot/internal/logger"
	"Account-Shop-Telegram-bot/internal/session"
	"Account-Shop-Telegram-bot/internal/shop"
	"Account-Shop-Telegram-bot/internal/store"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const bannedText = "⛔ Tài khoản của bạn đã bị cấm. Vui lòng liên hệ quản trị viên."

func (h *Handler) handleMessage(botapi *tgbotapi.BotAPI, update tgbotapi.Update) {
	msg := update.Message
	userID := msg.From.ID

	user, err := h.ensureUser(msg)
	if err != nil {
		h.reportStorageError(botapi, msg.Chat.ID, err)
		return
	}

	isAdmin := h.admins.IsAdmin(userID)
	if user.Banned && !isAdmin {
		botapi.Send(tgbotapi.NewMessage(msg.Chat.ID, bannedText))
		return
	}

	if msg.IsCommand() {
		// новая команда заменяет незавершённый диалог
		h.sessions.Clear(userID)
		if !isAdmin && h.limiter.IsLimited(userID, "/"+msg.Command()) {
			botapi.Send(tgbotapi.NewMessage(msg.Chat.ID, "⏳ Thao tác quá nhanh! Vui lòng đợi vài giây."))
			return
		}
		if isAdmin && h.admin.HandleCommand(botapi, &update) {
			return
		}
		switch msg.Command() {
		case "start":
			h.handleStart(botapi, msg, user)
		case "help":
			h.handleHelp(botapi, msg, isAdmin)
		case "dashboard":
			h.handleDashboard(botapi, msg, isAdmin)
		default:
			botapi.Send(tgbotapi.NewMessage(msg.Chat.ID, "❓ Lệnh không xác định. Sử dụng /help để xem hướng dẫn."))
		}
		return
	}

	if st, ok := h.sessions.Get(userID); ok {
		h.handleState(botapi, msg, st, isAdmin)
	}
}

// ensureUser регистрирует пользователя при первом контакте и
// обновляет username, если тот сменился в Telegram
func (h *Handler) ensureUser(msg *tgbotapi.Message) (store.User, error) {
	userID := msg.From.ID
	username := msg.From.UserName
	if username == "" {
		username = fmt.Sprintf("user_%d", userID)
	}

	user, err := h.store.GetUser(userID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return store.User{}, err
		}
		user = store.User{
			ID:        userID,
			Username:  username,
			Balance:   0,
			Banned:    false,
			Purchases: []store.Purchase{},
			CreatedAt: time.Now().Format(time.RFC3339),
		}
		if err := h.store.AddUser(user); err != nil {
			return store.User{}, err
		}
		logger.Info("new user registered", zap.Int64("user_id", userID), zap.String("username", username))
		return user, nil
	}
	if user.Username != username {
		if err := h.store.UpdateUser(userID, func(u *store.User) { u.Username = username }); err != nil {
			return store.User{}, err
		}
		user.Username = username
	}
	return user, nil
}

func (h *Handler) handleStart(botapi *tgbotapi.BotAPI, msg *tgbotapi.Message, user store.User) {
	text := fmt.Sprintf(
		"👋 Chào mừng, %s!\n\n"+
			"Đây là bot mua bán tài khoản. Sử dụng các nút bên dưới để điều hướng.\n\n"+
			"Số dư hiện tại: %s %s",
		user.Username, shop.FormatMoney(user.Balance), config.AppCfg.Currency)
	out := tgbotapi.NewMessage(msg.Chat.ID, text)
	out.ReplyMarkup = h.mainMenu(user.ID)
	botapi.Send(out)
}

func (h *Handler) handleHelp(botapi *tgbotapi.BotAPI, msg *tgbotapi.Message, isAdmin bool) {
	text := "🔍 *Hướng dẫn sử dụng bot*\n\n" +
		"*Các lệnh cơ bản:*\n" +
		"/start - Khởi động bot\n" +
		"/help - Hiển thị trợ giúp\n" +
		"/dashboard - Mở bảng điều khiển\n\n" +
		"*Cách sử dụng:*\n" +
		"1. Chọn loại tài khoản (trả phí/miễn phí)\n" +
		"2. Chọn sản phẩm bạn muốn mua\n" +
		"3. Xác nhận giao dịch\n" +
		"4. Nhận thông tin tài khoản\n\n" +
		"*Nạp tiền:*\n" +
		"Vui lòng liên hệ quản trị viên để nạp tiền vào tài khoản của bạn."
	if isAdmin {
		text += "\n\n*Lệnh quản trị viên:*\n" +
			"/create_product [tên] [giá] - Tạo/sửa sản phẩm\n" +
			"/product_list - Xem danh sách sản phẩm\n" +
			"/upload_product [product_id] - Upload tài khoản cho sản phẩm\n" +
			"/add_money [user_id] [số tiền] - Thêm tiền cho người dùng\n" +
			"/user_list - Xem danh sách người dùng\n" +
			"/ban_user [user_id] - Cấm người dùng\n" +
			"/unban_user [user_id] - Bỏ cấm người dùng"
	}
	out := tgbotapi.NewMessage(msg.Chat.ID, text)
	out.ParseMode = tgbotapi.ModeMarkdown
	out.ReplyMarkup = keyboard.BackButton("")
	botapi.Send(out)
}

func (h *Handler) handleDashboard(botapi *tgbotapi.BotAPI, msg *tgbotapi.Message, isAdmin bool) {
	out := tgbotapi.NewMessage(msg.Chat.ID, "🎛️ *Bảng điều khiển*\n\nChọn một tùy chọn bên dưới:")
	out.ParseMode = tgbotapi.ModeMarkdown
	out.ReplyMarkup = h.mainMenu(msg.From.ID)
	botapi.Send(out)
}

// mainMenu строит главное меню с учётом настройки show_premium
func (h *Handler) mainMenu(userID int64) tgbotapi.InlineKeyboardMarkup {
	showPremium := true
	if st, err := h.store.Settings(); err == nil {
		showPremium = st.ShowPremium
	}
	return keyboard.MainMenu(h.admins.IsAdmin(userID), showPremium)
}

// handleState продолжает незавершённый диалог. Все состояния — админские сценарии.
func (h *Handler) handleState(botapi *tgbotapi.BotAPI, msg *tgbotapi.Message, st session.State, isAdmin bool) {
	userID := msg.From.ID
	chatID := msg.Chat.ID
	if !isAdmin {
		h.sessions.Clear(userID)
		return
	}
	cur := config.AppCfg.Currency

	switch st.Kind {
	case session.WaitingAccounts:
		var lines []string
		for _, line := range strings.Split(msg.Text, "\n") {
			if trimmed := strings.TrimSpace(line); trimmed != "" {
				lines = append(lines, trimmed)
			}
		}
		if len(lines) == 0 {
			botapi.Send(tgbotapi.NewMessage(chatID, "❌ Không tìm thấy tài khoản nào. Vui lòng thử lại."))
			return
		}
		count, err := h.store.AddAccounts(st.ProductID, lines)
		if err != nil {
			h.reportStorageError(botapi, chatID, err)
			return
		}
		h.sessions.Clear(userID)
		product, err := h.store.GetProduct(st.ProductID)
		if err != nil {
			botapi.Send(tgbotapi.NewMessage(chatID, fmt.Sprintf("✅ Đã thêm %d tài khoản.", count)))
			return
		}
		out := tgbotapi.NewMessage(chatID, fmt.Sprintf("✅ Đã thêm %d tài khoản cho sản phẩm *%s*.", count, product.Name))
		out.ParseMode = tgbotapi.ModeMarkdown
		botapi.Send(out)

	case session.WaitingProductName:
		st.ProductName = msg.Text
		st.Kind = session.WaitingProductPrice
		h.sessions.Set(userID, st)
		out := tgbotapi.NewMessage(chatID, fmt.Sprintf("📝 Tên sản phẩm: *%s*\n\nVui lòng nhập giá sản phẩm (số):", msg.Text))
		out.ParseMode = tgbotapi.ModeMarkdown
		botapi.Send(out)

	case session.WaitingProductPrice:
		price, err := strconv.ParseFloat(strings.TrimSpace(msg.Text), 64)
		if err != nil {
			botapi.Send(tgbotapi.NewMessage(chatID, "❌ Giá phải là một số. Vui lòng thử lại."))
			return
		}
		editing := st.EditProductID != 0
		id, err := h.store.SaveProduct(store.Product{ID: st.EditProductID, Name: st.ProductName, Price: price})
		if err != nil {
			h.reportStorageError(botapi, chatID, err)
			return
		}
		h.sessions.Clear(userID)
		action := "tạo"
		if editing {
			action = "cập nhật"
		}
		kind := "Trả phí"
		if price <= 0 {
			kind = "Miễn phí"
		}
		botapi.Send(tgbotapi.NewMessage(chatID, fmt.Sprintf(
			"✅ Đã %s sản phẩm thành công!\n\nID: %d\nTên: %s\nGiá: %s %s\nLoại: %s",
			action, id, st.ProductName, shop.FormatMoney(price), cur, kind)))

	case session.WaitingUserID:
		targetID, err := strconv.ParseInt(strings.TrimSpace(msg.Text), 10, 64)
		if err != nil {
			botapi.Send(tgbotapi.NewMessage(chatID, "❌ ID người dùng phải là một số. Vui lòng thử lại."))
			return
		}
		target, err := h.store.GetUser(targetID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				botapi.Send(tgbotapi.NewMessage(chatID, fmt.Sprintf("❌ Không tìm thấy người dùng với ID %d.", targetID)))
				return
			}
			h.reportStorageError(botapi, chatID, err)
			return
		}
		switch st.Purpose {
		case session.PurposeAddMoney:
			st.TargetUserID = targetID
			st.Kind = session.WaitingAmount
			h.sessions.Set(userID, st)
			botapi.Send(tgbotapi.NewMessage(chatID, fmt.Sprintf(
				"👤 Người dùng: %s\n\nVui lòng nhập số tiền muốn thêm (số):", target.Username)))
		case session.PurposeBan:
			h.sessions.Clear(userID)
			h.admin.BanTarget(botapi, chatID, targetID)
		case session.PurposeUnban:
			h.sessions.Clear(userID)
			h.admin.UnbanTarget(botapi, chatID, targetID)
		}

	case session.WaitingAmount:
		amount, err := strconv.ParseFloat(strings.TrimSpace(msg.Text), 64)
		if err != nil {
			botapi.Send(tgbotapi.NewMessage(chatID, "❌ Số tiền phải là một số. Vui lòng thử lại."))
			return
		}
		if amount <= 0 {
			botapi.Send(tgbotapi.NewMessage(chatID, "❌ Số tiền phải lớn hơn 0. Vui lòng thử lại."))
			return
		}
		h.sessions.Clear(userID)
		h.admin.CreditUser(botapi, chatID, st.TargetUserID, amount)

	case session.WaitingBroadcast:
		h.sessions.Clear(userID)
		h.broadcast(botapi, chatID, msg.Text)

	case session.WaitingAdminID:
		newAdminID, err := strconv.ParseInt(strings.TrimSpace(msg.Text), 10, 64)
		if err != nil {
			botapi.Send(tgbotapi.NewMessage(chatID, "❌ ID người dùng phải là một số. Vui lòng thử lại."))
			return
		}
		h.sessions.Clear(userID)
		if !h.admins.Add(newAdminID) {
			botapi.Send(tgbotapi.NewMessage(chatID, "❌ Người dùng này đã là quản trị viên."))
			return
		}
		logger.LogAdminAction(userID, "add_admin", strconv.FormatInt(newAdminID, 10))
		botapi.Send(tgbotapi.NewMessage(chatID, fmt.Sprintf("✅ Đã thêm quản trị viên mới: %d.", newAdminID)))
		botapi.Send(tgbotapi.NewMessage(newAdminID, "👑 Bạn đã được cấp quyền quản trị viên."))
	}
}

func (h *Handler) reportStorageError(botapi *tgbotapi.BotAPI, chatID int64, err error) {
	logger.Error("storage failure", zap.Error(err))
	logger.NotifyAdmins("Storage failure: " + err.Error())
	botapi.Send(tgbotapi.NewMessage(chatID, "❌ Lỗi hệ thống lưu trữ. Quản trị viên đã được thông báo."))
}
