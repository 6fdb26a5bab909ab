package http

import (
	"time"

	domain "github.com/Shubhojit-pal/Flavour-s-garden-DevOps/internal/entity"
	"github.com/Shubhojit-pal/Flavour-s-garden-DevOps/internal/usecase"
)

// Response shapes. Prices and totals are integers in currency minor
// units; order items stay a serialized JSON array, the format old app
// builds already persist.

type userResp struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone,omitempty"`
	Role       string `json:"role"`
	IsVerified bool   `json:"isVerified"`
}

func toUserResp(u *usecase.UserRecord, role domain.Role) userResp {
	return userResp{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Phone:      u.Phone,
		Role:       string(role),
		IsVerified: u.IsVerified,
	}
}

type orderResp struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	Items         string    `json:"items"`
	Total         int64     `json:"total"`
	Status        string    `json:"status"`
	PaymentMethod string    `json:"paymentMethod"`
	PaymentStatus string    `json:"paymentStatus"`
	AddressID     string    `json:"addressId,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

func toOrderResp(rec *usecase.OrderRecord) orderResp {
	return orderResp{
		ID:            rec.ID,
		UserID:        rec.UserID,
		Items:         rec.ItemsJSON,
		Total:         rec.TotalCents,
		Status:        rec.Status,
		PaymentMethod: rec.PaymentMethod,
		PaymentStatus: rec.PaymentStatus,
		AddressID:     rec.AddressID,
		CreatedAt:     rec.CreatedAt,
	}
}

func toOrderResps(recs []usecase.OrderRecord) []orderResp {
	out := make([]orderResp, 0, len(recs))
	for i := range recs {
		out = append(out, toOrderResp(&recs[i]))
	}
	return out
}

type menuItemResp struct {
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

func toMenuItemResp(m domain.MenuItem) menuItemResp {
	return menuItemResp{
		ID:                m.ID,
		Name:              m.Name,
		Description:       m.Description,
		Price:             m.Price.Cents,
		Category:          m.Category,
		StockQuantity:     m.StockQuantity,
		LowStockThreshold: m.LowStockThreshold,
		Unit:              m.Unit,
		IsAvailable:       m.IsAvailable,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

func toMenuItemResps(items []domain.MenuItem) []menuItemResp {
	out := make([]menuItemResp, 0, len(items))
	for _, m := range items {
		out = append(out, toMenuItemResp(m))
	}
	return out
}

type addressResp struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Street    string    `json:"street"`
	City      string    `json:"city"`
	State     string    `json:"state,omitempty"`
	Zip       string    `json:"zip"`
	IsDefault bool      `json:"isDefault"`
	CreatedAt time.Time `json:"createdAt"`
}

func toAddressResps(addrs []domain.Address) []addressResp {
	out := make([]addressResp, 0, len(addrs))
	for _, a := range addrs {
		out = append(out, toAddressResp(a))
	}
	return out
}

func toAddressResp(a domain.Address) addressResp {
	return addressResp{
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
