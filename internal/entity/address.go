package domain

import "time"

// Address is a saved delivery address. At most one address per user may
// be the default; the backend enforces that on write.
type Address struct {
	ID        string
	UserID    string
	Street    string
	City      string
	State     string
	Zip       string
	IsDefault bool
	CreatedAt time.Time
}

func (a Address) Empty() bool { return a.ID == "" }
