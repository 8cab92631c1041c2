package keyboard

import (
	"fmt"
	"strconv"

	"Account-Shop-Telegram-bot/internal/store"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const itemsPerPage = 5

// MainMenu — главное меню; кнопка платного каталога скрывается настройкой show_premium
func MainMenu(isAdmin, showPremium bool) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	catalogRow := []tgbotapi.InlineKeyboardButton{}
	if showPremium {
		catalogRow = append(catalogRow, tgbotapi.NewInlineKeyboardButtonData("🔐 Tài khoản trả phí", "premium_accounts"))
	}
	catalogRow = append(catalogRow, tgbotapi.NewInlineKeyboardButtonData("🆓 Tài khoản miễn phí", "free_accounts"))
	rows = append(rows, catalogRow)
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("📚 Hướng dẫn", "tutorial"),
		tgbotapi.NewInlineKeyboardButtonData("💰 Số dư", "balance"),
	))
	if isAdmin {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⚙️ Quản trị viên", "admin_panel"),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func AdminPanel() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📦 Quản lý sản phẩm", "manage_products"),
			tgbotapi.NewInlineKeyboardButtonData("👥 Quản lý người dùng", "manage_users"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 Thống kê", "statistics"),
			tgbotapi.NewInlineKeyboardButtonData("📣 Gửi thông báo", "broadcast"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💾 Sao lưu dữ liệu", "backup_data"),
			tgbotapi.NewInlineKeyboardButtonData("👁 Bật/tắt mục trả phí", "toggle_premium"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 Quay lại", "back_to_main"),
		),
	)
}

func ProductManagement() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➕ Tạo sản phẩm", "create_product"),
			tgbotapi.NewInlineKeyboardButtonData("📋 Danh sách sản phẩm", "product_list"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 Quay lại", "back_to_admin"),
		),
	)
}

func UserManagement() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📋 Danh sách người dùng", "user_list"),
			tgbotapi.NewInlineKeyboardButtonData("💰 Thêm tiền", "add_money"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🚫 Cấm người dùng", "ban_user"),
			tgbotapi.NewInlineKeyboardButtonData("✅ Bỏ cấm người dùng", "unban_user"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("👑 Thêm admin", "add_admin"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 Quay lại", "back_to_admin"),
		),
	)
}

// ProductList — страница каталога, по 5 продуктов
func ProductList(products []store.Product, page int, admin bool) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	start := page * itemsPerPage
	end := start + itemsPerPage
	if end > len(products) {
		end = len(products)
	}
	if start > len(products) {
		start = len(products)
	}

	prefix := "view_product_"
	if admin {
		prefix = "admin_product_"
	}
	for _, p := range products[start:end] {
		name := p.Name
		if name == "" {
			name = "Không tên"
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(name, prefix+strconv.Itoa(p.ID)),
		))
	}

	var nav []tgbotapi.InlineKeyboardButton
	if page > 0 {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("⬅️ Trước", "product_page_"+strconv.Itoa(page-1)))
	}
	if end < len(products) {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("➡️ Sau", "product_page_"+strconv.Itoa(page+1)))
	}
	if len(nav) > 0 {
		rows = append(rows, nav)
	}

	back := "back_to_main"
	if admin {
		back = "back_to_product_management"
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🔙 Quay lại", back),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// UserList — страница списка пользователей для админа
func UserList(users []store.User, page int) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	start := page * itemsPerPage
	end := start + itemsPerPage
	if end > len(users) {
		end = len(users)
	}
	if start > len(users) {
		start = len(users)
	}

	for _, u := range users[start:end] {
		banned := ""
		if u.Banned {
			banned = "🚫 "
		}
		label := fmt.Sprintf("%s@%s (ID: %d)", banned, u.Username, u.ID)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, "view_user_"+strconv.FormatInt(u.ID, 10)),
		))
	}

	var nav []tgbotapi.InlineKeyboardButton
	if page > 0 {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("⬅️ Trang trước", "user_page_"+strconv.Itoa(page-1)))
	}
	if end < len(users) {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("➡️ Trang sau", "user_page_"+strconv.Itoa(page+1)))
	}
	if len(nav) > 0 {
		rows = append(rows, nav)
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🔙 Quay lại", "back_to_user_management"),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func ProductDetail(productID int, isAdmin bool) tgbotapi.InlineKeyboardMarkup {
	id := strconv.Itoa(productID)
	if isAdmin {
		return tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("✏️ Chỉnh sửa", "edit_product_"+id),
				tgbotapi.NewInlineKeyboardButtonData("🗑️ Xóa", "delete_product_"+id),
			),
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("📤 Upload tài khoản", "upload_accounts_"+id),
			),
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("🔙 Quay lại", "back_to_product_list"),
			),
		)
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🛒 Mua ngay", "buy_product_"+id),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 Quay lại", "back_to_product_list"),
		),
	)
}

func ConfirmPurchase(productID int) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Xác nhận", "confirm_purchase_"+strconv.Itoa(productID)),
			tgbotapi.NewInlineKeyboardButtonData("❌ Hủy", "cancel_purchase"),
		),
	)
}

func UserDetail(userID int64) tgbotapi.InlineKeyboardMarkup {
	id := strconv.FormatInt(userID, 10)
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💰 Thêm tiền", "add_money_"+id),
			tgbotapi.NewInlineKeyboardButtonData("🚫 Cấm", "ban_user_"+id),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Bỏ cấm", "unban_user_"+id),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 Quay lại", "back_to_user_list"),
		),
	)
}

func BackButton(callback string) tgbotapi.InlineKeyboardMarkup {
	if callback == "" {
		callback = "back_to_main"
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 Quay lại", callback),
		),
	)
}
