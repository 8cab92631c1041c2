package store

type User struct {
	ID        int64      `json:"id"`
	Username  string     `json:"username"`
	Balance   float64    `json:"balance"`
	Banned    bool       `json:"banned"`
	Purchases []Purchase `json:"purchases"`
	CreatedAt string     `json:"created_at"` // ISO-8601, выставляется один раз
}

// Purchase — запись в истории покупок пользователя, неизменяема после добавления
type Purchase struct {
	ID          string  `json:"id"`
	ProductID   int     `json:"product_id"`
	ProductName string  `json:"product_name"`
	Price       float64 `json:"price"`
	AccountData string  `json:"account_data"`
	PurchasedAt string  `json:"purchased_at"`
}

type Product struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	IsFree      bool    `json:"is_free"` // всегда пересчитывается из Price при сохранении
	Description string  `json:"description"`
}

// Account — одна продаваемая учётная запись, привязана к продукту, продаётся ровно один раз
type Account struct {
	ProductID int    `json:"product_id"`
	Data      string `json:"data"`
	Sold      bool   `json:"sold"`
}

type Settings struct {
	ShowPremium bool `json:"show_premium"`
}

func defaultSettings() Settings {
	return Settings{ShowPremium: true}
}
