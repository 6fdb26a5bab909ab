package client

import (
	"time"

	domain "github.com/Shubhojit-pal/Flavour-s-garden-DevOps/internal/entity"
)

// Wire shapes the backend speaks. Prices and totals are integers in
// currency minor units; order items travel as a serialized JSON array
// inside the order object.

type wireUser struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone,omitempty"`
	Role       string `json:"role"`
	IsVerified bool   `json:"isVerified"`
}

func (u wireUser) toDomain(currency string) (domain.User, error) {
	role, err := domain.ParseRole(u.Role)
	if err != nil {
		return domain.User{}, err
	}
	return domain.User{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Phone:      u.Phone,
		Role:       role,
		IsVerified: u.IsVerified,
	}, nil
}

type wireMenuItem struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Description       string    `json:"description,omitempty"`
	Price             int64     `json:"price"`
	Category          string    `json:"category"`
	StockQuantity     int       `json:"stockQuantity"`
	LowStockThreshold int       `json:"lowStockThreshold"`
	Unit              string    `json:"unit,omitempty"`
	IsAvailable       bool      `json:"isAvailable"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

func (m wireMenuItem) toDomain(currency string) domain.MenuItem {
	return domain.MenuItem{
		ID:                m.ID,
		Name:              m.Name,
		Description:       m.Description,
		Price:             domain.NewMoney(m.Price, currency),
		Category:          m.Category,
		StockQuantity:     m.StockQuantity,
		LowStockThreshold: m.LowStockThreshold,
		Unit:              m.Unit,
		IsAvailable:       m.IsAvailable,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

type wireOrder struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	Items         string    `json:"items"` // serialized [{id,name,price,quantity}]
	Total         int64     `json:"total"`
	Status        string    `json:"status"`
	PaymentMethod string    `json:"paymentMethod"`
	PaymentStatus string    `json:"paymentStatus"`
	AddressID     string    `json:"addressId,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (o wireOrder) toDomain(currency string) domain.Order {
	status, err := domain.ParseStatus(o.Status)
	if err != nil {
		// An unknown status renders as pending rather than crashing the
		// history screen; the admin console still sees the raw value.
		status = domain.StatusPending
	}
	return domain.Order{
		ID:            o.ID,
		UserID:        o.UserID,
		Lines:         domain.DecodeLines([]byte(o.Items)),
		Total:         domain.NewMoney(o.Total, currency),
		Status:        status,
		PaymentMethod: o.PaymentMethod,
		PaymentStatus: domain.PaymentStatus(o.PaymentStatus),
		AddressID:     o.AddressID,
		CreatedAt:     o.CreatedAt,
	}
}

type wireAddress struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Street    string    `json:"street"`
	City      string    `json:"city"`
	State     string    `json:"state,omitempty"`
	Zip       string    `json:"zip"`
	IsDefault bool      `json:"isDefault"`
	CreatedAt time.Time `json:"createdAt"`
}

func (a wireAddress) toDomain() domain.Address {
	return domain.Address{
		ID:        a.ID,
		UserID:    a.UserID,
		Street:    a.Street,
		City:      a.City,
		State:     a.State,
		Zip:       a.Zip,
		IsDefault: a.IsDefault,
		CreatedAt: a.CreatedAt,
	}
}
