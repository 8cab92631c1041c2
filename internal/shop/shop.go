package shop

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"Account-Shop-Telegram-bot/internal/logger"
	"Account-Shop-Telegram-bot/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrUserNotFound       = errors.New("shop: user not found")
	ErrProductNotFound    = errors.New("shop: product not found")
	ErrOutOfStock         = errors.New("shop: product out of stock")
	ErrAlreadyClaimedFree = errors.New("shop: free product already claimed")
	ErrNoAccountLeft      = errors.New("shop: no account could be allocated")
	ErrInvalidAmount      = errors.New("shop: amount must be positive")
)

// InsufficientBalanceError несёт недостающую сумму для сообщения пользователю
type InsufficientBalanceError struct {
	Balance float64
	Price   float64
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("shop: insufficient balance: short %.2f", e.Shortfall())
}

func (e *InsufficientBalanceError) Shortfall() float64 { return e.Price - e.Balance }

// Receipt — результат успешной покупки
type Receipt struct {
	ProductName string
	Price       float64
	NewBalance  float64
	AccountData string
}

// Service выполняет покупки и пополнения поверх хранилища.
// Мьютекс удерживается на всю многошаговую транзакцию: проверка остатка,
// выдача записи и списание не могут перемежаться с другой покупкой.
type Service struct {
	mu    sync.Mutex
	store *store.Store
}

func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

// Purchase проводит одну покупку: проверки, выдача учётной записи, списание,
// запись в историю. Списание и история пишутся одним обновлением пользователя;
// если оно сорвалось, выданная запись возвращается на склад.
func (s *Service) Purchase(userID int64, productID int) (*Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.store.GetUser(userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	product, err := s.store.GetProduct(productID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	available, err := s.store.CountAvailable(productID)
	if err != nil {
		return nil, err
	}
	if available <= 0 {
		return nil, ErrOutOfStock
	}

	if product.IsFree {
		for _, p := range user.Purchases {
			if p.ProductID == productID {
				return nil, ErrAlreadyClaimedFree
			}
		}
	}

	if product.Price > 0 && user.Balance < product.Price {
		return nil, &InsufficientBalanceError{Balance: user.Balance, Price: product.Price}
	}

	account, err := s.store.DrawAccount(productID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNoAccountLeft
		}
		return nil, err
	}

	entry := store.Purchase{
		ID:          uuid.NewString(),
		ProductID:   productID,
		ProductName: product.Name,
		Price:       product.Price,
		AccountData: account.Data,
		PurchasedAt: time.Now().Format(time.RFC3339),
	}
	newBalance := user.Balance
	err = s.store.UpdateUser(userID, func(u *store.User) {
		if product.Price > 0 {
			u.Balance -= product.Price
		}
		u.Purchases = append(u.Purchases, entry)
		newBalance = u.Balance
	})
	if err != nil {
		// деньги не списаны — вернуть запись на склад
		if rerr := s.store.ReleaseAccount(productID, account.Data); rerr != nil {
			logger.Error("failed to release account after aborted purchase",
				zap.Int("product_id", productID), zap.Error(rerr))
		}
		return nil, err
	}

	return &Receipt{
		ProductName: product.Name,
		Price:       product.Price,
		NewBalance:  newBalance,
		AccountData: account.Data,
	}, nil
}

// Credit пополняет баланс пользователя и возвращает новое значение
func (s *Service) Credit(userID int64, amount float64) (float64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	balance, err := s.store.AddMoney(userID, amount)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return 0, ErrUserNotFound
		}
		return 0, err
	}
	return balance, nil
}
