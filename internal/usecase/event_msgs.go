package usecase

// OrderStatusChangedMsg is the event shape shared by the rabbit
// producer (admin console updates fanning out to notifications) and the
// kafka consumer (kitchen/delivery ops pushing progress back in).
type OrderStatusChangedMsg struct {
	OrderID string `json:"orderId"`
	UserID  string `json:"userId"`
	Status  string `json:"status"`
}
