package domain

import (
	"errors"
	"time"
)

type Status string

const (
	StatusPending        Status = "pending"
	StatusConfirmed      Status = "confirmed"
	StatusPreparing      Status = "preparing"
	StatusOutForDelivery Status = "out_for_delivery"
	StatusDelivered      Status = "delivered"
	StatusCancelled      Status = "cancelled"
)

var ErrUnknownStatus = errors.New("unknown order status")

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusConfirmed, StatusPreparing,
		StatusOutForDelivery, StatusDelivered, StatusCancelled:
		return Status(s), nil
	}
	return "", ErrUnknownStatus
}

// Payment is fixed: there is no payment processing, only a marker the
// rider settles at the door.
const PaymentCashOnDelivery = "cash_on_delivery"

type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "unpaid"
	PaymentPaid   PaymentStatus = "paid"
)

// Order is a placed order. Its lines are a frozen snapshot taken at
// placement time; later catalog edits never alter a historical order.
// Only admin-issued status updates mutate it after creation.
type Order struct {
	ID            string
	UserID        string
	Lines         []OrderLine
	Total         Money
	Status        Status
	PaymentMethod string
	PaymentStatus PaymentStatus
	AddressID     string
	CreatedAt     time.Time
}

func (o *Order) Validate() error {
	if o.Total.Cents <= 0 || o.Total.Currency == "" {
		return ErrInvalidAmount
	}
	if len(o.Lines) == 0 {
		return errors.New("order has no lines")
	}
	return nil
}
