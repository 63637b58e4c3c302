package models

// Client is a customer record kept by the agency for repeat senders and
// recipients.
type Client struct {
	Base
	Name    string `gorm:"not null" json:"name"`
	Phone   string `gorm:"index" json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
	City    string `json:"city"`
	Country string `gorm:"size:2" json:"country"`
	Notes   string `json:"notes"`
}
