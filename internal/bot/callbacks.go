package bot

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"Account-Shop-Telegram-bot/config"
	"Account-Shop-Telegram-bot/internal/admin"
	"Account-Shop-Telegram-bot/internal/keyboard"
	"Account-Shop-Telegram-bot/internal/logger"
	"Account-Shop-Telegram-bot/internal/session"
	"Account-Shop-Telegram-bot/internal/shop"
	"Account-Shop-Telegram-bot/internal/store"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

func (h *Handler) handleCallback(botapi *tgbotapi.BotAPI, call *tgbotapi.CallbackQuery) {
	if call.Message == nil {
		return
	}
	userID := call.From.ID
	chatID := call.Message.Chat.ID
	messageID := call.Message.MessageID
	data := call.Data
	isAdmin := h.admins.IsAdmin(userID)

	if user, err := h.store.GetUser(userID); err == nil && user.Banned && !isAdmin {
		botapi.Request(tgbotapi.NewCallback(call.ID, bannedText))
		return
	}

	switch {
	case data == "premium_accounts":
		h.showCatalog(botapi, chatID, messageID, false, 0)

	case data == "free_accounts":
		h.showCatalog(botapi, chatID, messageID, true, 0)

	case data == "tutorial":
		h.editText(botapi, chatID, messageID,
			"📚 Hướng dẫn sử dụng:\n\n"+
				"1. Chọn loại tài khoản (trả phí/miễn phí)\n"+
				"2. Chọn sản phẩm bạn muốn mua\n"+
				"3. Xác nhận thanh toán\n"+
				"4. Nhận thông tin tài khoản",
			keyboard.BackButton(""), false)

	case data == "balance":
		user, err := h.store.GetUser(userID)
		if err != nil {
			h.reportStorageError(botapi, chatID, err)
			break
		}
		h.editText(botapi, chatID, messageID, fmt.Sprintf(
			"💰 Số dư tài khoản của bạn: %s %s\n\nĐể nạp tiền, vui lòng liên hệ admin.",
			shop.FormatMoney(user.Balance), config.AppCfg.Currency),
			keyboard.BackButton(""), false)

	case data == "admin_panel" && isAdmin:
		h.editText(botapi, chatID, messageID, "⚙️ Panel quản trị viên", keyboard.AdminPanel(), false)

	case data == "manage_products" && isAdmin:
		h.editText(botapi, chatID, messageID, "📦 Quản lý sản phẩm", keyboard.ProductManagement(), false)

	case data == "manage_users" && isAdmin:
		h.editText(botapi, chatID, messageID, "👥 Quản lý người dùng", keyboard.UserManagement(), false)

	case data == "statistics" && isAdmin:
		stats, err := h.shop.Statistics()
		if err != nil {
			h.reportStorageError(botapi, chatID, err)
			break
		}
		h.editText(botapi, chatID, messageID, fmt.Sprintf(
			"📊 Thống kê:\n\nTổng người dùng: %d\nNgười dùng mới hôm nay: %d\nTổng đơn hàng: %d\nDoanh thu: %s %s",
			stats.TotalUsers, stats.NewUsersToday, stats.TotalOrders,
			shop.FormatMoney(stats.Revenue), config.AppCfg.Currency),
			keyboard.BackButton("back_to_admin"), false)

	case data == "broadcast" && isAdmin:
		h.sessions.Set(userID, session.State{Kind: session.WaitingBroadcast})
		h.editText(botapi, chatID, messageID,
			"📣 Vui lòng gửi nội dung thông báo. Tin nhắn tiếp theo của bạn sẽ được gửi đến tất cả người dùng.",
			keyboard.BackButton("back_to_admin"), false)

	case data == "backup_data" && isAdmin:
		h.sendBackup(botapi, chatID)

	case data == "toggle_premium" && isAdmin:
		show, err := h.store.ToggleShowPremium()
		if err != nil {
			h.reportStorageError(botapi, chatID, err)
			break
		}
		status := "ẩn"
		if show {
			status = "hiển thị"
		}
		h.editText(botapi, chatID, messageID,
			"⚙️ Panel quản trị viên\n\nMục tài khoản trả phí hiện đang: "+status,
			keyboard.AdminPanel(), false)

	case data == "add_admin" && isAdmin:
		h.sessions.Set(userID, session.State{Kind: session.WaitingAdminID})
		h.editText(botapi, chatID, messageID,
			"👑 Vui lòng nhập ID người dùng cần cấp quyền quản trị viên:",
			keyboard.BackButton("back_to_user_management"), false)

	case data == "create_product" && isAdmin:
		h.sessions.Set(userID, session.State{Kind: session.WaitingProductName})
		h.editText(botapi, chatID, messageID,
			"➕ Vui lòng nhập tên sản phẩm mới:",
			keyboard.BackButton("back_to_product_management"), false)

	case data == "add_money" && isAdmin:
		h.sessions.Set(userID, session.State{Kind: session.WaitingUserID, Purpose: session.PurposeAddMoney})
		h.editText(botapi, chatID, messageID,
			"💰 Vui lòng nhập ID người dùng cần thêm tiền:",
			keyboard.BackButton("back_to_user_management"), false)

	case data == "ban_user" && isAdmin:
		h.sessions.Set(userID, session.State{Kind: session.WaitingUserID, Purpose: session.PurposeBan})
		h.editText(botapi, chatID, messageID,
			"🚫 Vui lòng nhập ID người dùng cần cấm:",
			keyboard.BackButton("back_to_user_management"), false)

	case data == "unban_user" && isAdmin:
		h.sessions.Set(userID, session.State{Kind: session.WaitingUserID, Purpose: session.PurposeUnban})
		h.editText(botapi, chatID, messageID,
			"✅ Vui lòng nhập ID người dùng cần bỏ cấm:",
			keyboard.BackButton("back_to_user_management"), false)

	case data == "product_list" && isAdmin:
		h.showAdminProductList(botapi, chatID, messageID, 0)

	case data == "user_list" && isAdmin:
		h.showUserList(botapi, chatID, messageID, 0)

	case strings.HasPrefix(data, "view_product_"):
		if id, err := trailingInt(data, "view_product_"); err == nil {
			h.showProductDetail(botapi, chatID, messageID, id, false)
		}

	case strings.HasPrefix(data, "admin_product_") && isAdmin:
		if id, err := trailingInt(data, "admin_product_"); err == nil {
			h.showProductDetail(botapi, chatID, messageID, id, true)
		}

	case strings.HasPrefix(data, "view_user_") && isAdmin:
		if id, err := strconv.ParseInt(strings.TrimPrefix(data, "view_user_"), 10, 64); err == nil {
			h.showUserDetail(botapi, chatID, messageID, id)
		}

	case strings.HasPrefix(data, "add_money_") && isAdmin:
		if id, err := strconv.ParseInt(strings.TrimPrefix(data, "add_money_"), 10, 64); err == nil {
			h.sessions.Set(userID, session.State{Kind: session.WaitingAmount, Purpose: session.PurposeAddMoney, TargetUserID: id})
			h.editText(botapi, chatID, messageID,
				fmt.Sprintf("💰 Vui lòng nhập số tiền muốn thêm cho người dùng %d:", id),
				keyboard.BackButton("back_to_user_list"), false)
		}

	case strings.HasPrefix(data, "ban_user_") && isAdmin:
		if id, err := strconv.ParseInt(strings.TrimPrefix(data, "ban_user_"), 10, 64); err == nil {
			h.admin.BanTarget(botapi, chatID, id)
		}

	case strings.HasPrefix(data, "unban_user_") && isAdmin:
		if id, err := strconv.ParseInt(strings.TrimPrefix(data, "unban_user_"), 10, 64); err == nil {
			h.admin.UnbanTarget(botapi, chatID, id)
		}

	case strings.HasPrefix(data, "edit_product_") && isAdmin:
		if id, err := trailingInt(data, "edit_product_"); err == nil {
			h.sessions.Set(userID, session.State{Kind: session.WaitingProductName, EditProductID: id})
			h.editText(botapi, chatID, messageID,
				"✏️ Vui lòng nhập tên mới cho sản phẩm:",
				keyboard.BackButton("back_to_product_list"), false)
		}

	case strings.HasPrefix(data, "delete_product_") && isAdmin:
		if id, err := trailingInt(data, "delete_product_"); err == nil {
			h.deleteProduct(botapi, chatID, messageID, id)
		}

	case strings.HasPrefix(data, "upload_accounts_") && isAdmin:
		if id, err := trailingInt(data, "upload_accounts_"); err == nil {
			h.sessions.Set(userID, session.State{Kind: session.WaitingAccounts, ProductID: id})
			h.editText(botapi, chatID, messageID,
				"📤 Vui lòng gửi danh sách tài khoản, mỗi tài khoản trên một dòng.",
				keyboard.BackButton("back_to_product_list"), false)
		}

	case strings.HasPrefix(data, "buy_product_"):
		if !isAdmin && h.limiter.IsLimited(userID, "buy_product") {
			botapi.Request(tgbotapi.NewCallback(call.ID, "⏳ Thao tác quá nhanh!"))
			return
		}
		if id, err := trailingInt(data, "buy_product_"); err == nil {
			h.confirmPurchase(botapi, chatID, messageID, id)
		}

	case strings.HasPrefix(data, "confirm_purchase_"):
		if !isAdmin && h.limiter.IsLimited(userID, "confirm_purchase") {
			botapi.Request(tgbotapi.NewCallback(call.ID, "⏳ Thao tác quá nhanh!"))
			return
		}
		if id, err := trailingInt(data, "confirm_purchase_"); err == nil {
			h.processPurchase(botapi, chatID, messageID, userID, id)
		}

	case data == "cancel_purchase":
		h.editText(botapi, chatID, messageID, "🏠 Đã hủy giao dịch. Quay lại menu chính",
			h.mainMenu(userID), false)

	case strings.HasPrefix(data, "product_page_"):
		if page, err := trailingInt(data, "product_page_"); err == nil {
			if isAdmin {
				h.showAdminProductList(botapi, chatID, messageID, page)
			} else {
				h.showCatalog(botapi, chatID, messageID, false, page)
			}
		}

	case strings.HasPrefix(data, "user_page_") && isAdmin:
		if page, err := trailingInt(data, "user_page_"); err == nil {
			h.showUserList(botapi, chatID, messageID, page)
		}

	case data == "back_to_main":
		h.editText(botapi, chatID, messageID, "🏠 Menu chính", h.mainMenu(userID), false)

	case data == "back_to_admin" && isAdmin:
		h.editText(botapi, chatID, messageID, "⚙️ Panel quản trị viên", keyboard.AdminPanel(), false)

	case data == "back_to_product_management" && isAdmin:
		h.editText(botapi, chatID, messageID, "📦 Quản lý sản phẩm", keyboard.ProductManagement(), false)

	case data == "back_to_user_management" && isAdmin:
		h.editText(botapi, chatID, messageID, "👥 Quản lý người dùng", keyboard.UserManagement(), false)

	case data == "back_to_product_list":
		if isAdmin {
			h.showAdminProductList(botapi, chatID, messageID, 0)
		} else {
			h.showCatalog(botapi, chatID, messageID, false, 0)
		}

	case data == "back_to_user_list" && isAdmin:
		h.showUserList(botapi, chatID, messageID, 0)
	}

	botapi.Request(tgbotapi.NewCallback(call.ID, ""))
}

func trailingInt(data, prefix string) (int, error) {
	return strconv.Atoi(strings.TrimPrefix(data, prefix))
}

func (h *Handler) editText(botapi *tgbotapi.BotAPI, chatID int64, messageID int, text string, kb tgbotapi.InlineKeyboardMarkup, markdown bool) {
	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, kb)
	if markdown {
		edit.ParseMode = tgbotapi.ModeMarkdown
	}
	if _, err := botapi.Send(edit); err != nil {
		logger.Error("edit message failed", zap.Error(err))
	}
}

// showCatalog показывает страницу каталога: платные или бесплатные продукты
func (h *Handler) showCatalog(botapi *tgbotapi.BotAPI, chatID int64, messageID int, free bool, page int) {
	all, err := h.store.AllProducts()
	if err != nil {
		h.reportStorageError(botapi, chatID, err)
		return
	}
	var products []store.Product
	for _, p := range all {
		if p.IsFree == free {
			products = append(products, p)
		}
	}
	if len(products) == 0 {
		text := "📦 Chưa có sản phẩm trả phí nào."
		if free {
			text = "📦 Chưa có sản phẩm miễn phí nào."
		}
		h.editText(botapi, chatID, messageID, text, keyboard.BackButton(""), false)
		return
	}
	title := "🔐 *Tài khoản trả phí*\n\nChọn một sản phẩm để xem chi tiết:"
	if free {
		title = "🆓 *Tài khoản miễn phí*\n\nChọn một sản phẩm để xem chi tiết:"
	}
	h.editText(botapi, chatID, messageID, title, keyboard.ProductList(products, page, false), true)
}

func (h *Handler) showAdminProductList(botapi *tgbotapi.BotAPI, chatID int64, messageID int, page int) {
	products, err := h.store.AllProducts()
	if err != nil {
		h.reportStorageError(botapi, chatID, err)
		return
	}
	h.editText(botapi, chatID, messageID, "📋 Danh sách sản phẩm:", keyboard.ProductList(products, page, true), false)
}

func (h *Handler) showUserList(botapi *tgbotapi.BotAPI, chatID int64, messageID int, page int) {
	users, err := h.store.AllUsers()
	if err != nil {
		h.reportStorageError(botapi, chatID, err)
		return
	}
	h.editText(botapi, chatID, messageID, "📋 Danh sách người dùng:", keyboard.UserList(users, page), false)
}

func (h *Handler) showProductDetail(botapi *tgbotapi.BotAPI, chatID int64, messageID int, productID int, isAdmin bool) {
	product, err := h.store.GetProduct(productID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.editText(botapi, chatID, messageID, "❌ Sản phẩm không tồn tại.", keyboard.BackButton("back_to_product_list"), false)
			return
		}
		h.reportStorageError(botapi, chatID, err)
		return
	}
	available, err := h.store.CountAvailable(productID)
	if err != nil {
		h.reportStorageError(botapi, chatID, err)
		return
	}
	text := fmt.Sprintf(
		"🏷️ %s\n\n📝 Mô tả: %s\n💰 Giá: %s %s\n📦 Còn lại: %d tài khoản",
		product.Name, product.Description,
		shop.FormatMoney(product.Price), config.AppCfg.Currency, available)
	if isAdmin {
		text += fmt.Sprintf("\n🆔 ID: %d", product.ID)
	}
	h.editText(botapi, chatID, messageID, text, keyboard.ProductDetail(productID, isAdmin), false)
}

func (h *Handler) showUserDetail(botapi *tgbotapi.BotAPI, chatID int64, messageID int, targetID int64) {
	user, err := h.store.GetUser(targetID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.editText(botapi, chatID, messageID, "❌ Người dùng không tồn tại.", keyboard.BackButton("back_to_user_list"), false)
			return
		}
		h.reportStorageError(botapi, chatID, err)
		return
	}
	status := "✅ Đang hoạt động"
	if user.Banned {
		status = "🚫 Đã bị cấm"
	}
	text := fmt.Sprintf(
		"👤 Thông tin người dùng:\n\nID: %d\nUsername: @%s\nSố dư: %s %s\nSố đơn hàng: %d\nTrạng thái: %s",
		user.ID, user.Username, shop.FormatMoney(user.Balance), config.AppCfg.Currency,
		len(user.Purchases), status)
	h.editText(botapi, chatID, messageID, text, keyboard.UserDetail(targetID), false)
}

func (h *Handler) deleteProduct(botapi *tgbotapi.BotAPI, chatID int64, messageID int, productID int) {
	err := h.store.DeleteProduct(productID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.editText(botapi, chatID, messageID, "❌ Sản phẩm không tồn tại.", keyboard.BackButton("back_to_product_list"), false)
			return
		}
		h.reportStorageError(botapi, chatID, err)
		return
	}
	h.editText(botapi, chatID, messageID,
		"🗑️ Đã xóa sản phẩm và toàn bộ tài khoản tồn kho của nó.",
		keyboard.BackButton("back_to_product_list"), false)
}

func (h *Handler) confirmPurchase(botapi *tgbotapi.BotAPI, chatID int64, messageID int, productID int) {
	product, err := h.store.GetProduct(productID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.editText(botapi, chatID, messageID, "❌ Sản phẩm không tồn tại.", keyboard.BackButton(""), false)
			return
		}
		h.reportStorageError(botapi, chatID, err)
		return
	}
	h.editText(botapi, chatID, messageID, fmt.Sprintf(
		"🛒 Xác nhận mua:\n\nSản phẩm: %s\nGiá: %s %s\n\nBạn có chắc chắn muốn mua sản phẩm này?",
		product.Name, shop.FormatMoney(product.Price), config.AppCfg.Currency),
		keyboard.ConfirmPurchase(productID), false)
}

func (h *Handler) processPurchase(botapi *tgbotapi.BotAPI, chatID int64, messageID int, userID int64, productID int) {
	receipt, err := h.shop.Purchase(userID, productID)
	if err != nil {
		var insufficient *shop.InsufficientBalanceError
		var storageErr *store.StorageError
		var reason string
		switch {
		case errors.Is(err, shop.ErrProductNotFound):
			reason = "Sản phẩm không tồn tại"
		case errors.Is(err, shop.ErrOutOfStock):
			reason = "Sản phẩm đã hết hàng"
		case errors.Is(err, shop.ErrAlreadyClaimedFree):
			reason = "Bạn đã nhận sản phẩm miễn phí này rồi"
		case errors.As(err, &insufficient):
			reason = fmt.Sprintf("Số dư không đủ (thiếu %s %s)",
				shop.FormatMoney(insufficient.Shortfall()), config.AppCfg.Currency)
		case errors.Is(err, shop.ErrNoAccountLeft):
			reason = "Không thể lấy tài khoản"
		case errors.Is(err, shop.ErrUserNotFound):
			reason = "Vui lòng gửi /start trước khi mua hàng"
		case errors.As(err, &storageErr):
			h.reportStorageError(botapi, chatID, err)
			return
		default:
			reason = "Lỗi không xác định"
			logger.Error("purchase failed", zap.Error(err))
		}
		h.editText(botapi, chatID, messageID, "❌ Mua hàng thất bại: "+reason, keyboard.BackButton(""), false)
		return
	}

	logger.Info("purchase completed",
		zap.Int64("user_id", userID),
		zap.Int("product_id", productID),
		zap.Float64("price", receipt.Price))
	h.editText(botapi, chatID, messageID, fmt.Sprintf(
		"✅ Mua hàng thành công!\n\n"+
			"Sản phẩm: %s\n"+
			"Giá: %s %s\n"+
			"Số dư còn lại: %s %s\n\n"+
			"Thông tin tài khoản:\n```\n%s\n```\n\n"+
			"Cảm ơn bạn đã mua hàng!",
		receipt.ProductName,
		shop.FormatMoney(receipt.Price), config.AppCfg.Currency,
		shop.FormatMoney(receipt.NewBalance), config.AppCfg.Currency,
		receipt.AccountData),
		keyboard.BackButton(""), true)
}

// sendBackup создаёт архив данных и отправляет его админу документом
func (h *Handler) sendBackup(botapi *tgbotapi.BotAPI, chatID int64) {
	backupDir := config.AppCfg.BackupDir
	os.MkdirAll(backupDir, 0o755)
	filename := filepath.Join(backupDir, "backup_"+time.Now().Format("20060102_150405")+".zip")
	if err := admin.BackupData(h.store.Dir(), filename); err != nil {
		botapi.Send(tgbotapi.NewMessage(chatID, "❌ Lỗi sao lưu dữ liệu: "+err.Error()))
		return
	}
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FilePath(filename))
	doc.Caption = "💾 Bản sao lưu dữ liệu đã được tạo"
	if _, err := botapi.Send(doc); err != nil {
		logger.Error("failed to send backup", zap.Error(err))
	}
	_ = os.Remove(filename)
}
