package customer

import (
	"strings"

	"lunchly/internal/pkg/apperrors"
)

// Customer of the restaurant. CustomerID stays zero until the store assigns one.
type Customer struct {
	CustomerID int64  `json:"customerId"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Phone      string `json:"phone"`
	Notes      string `json:"notes"`
}

func NewCustomer(firstName, lastName, phone, notes string) *Customer {
	return &Customer{
		FirstName: strings.TrimSpace(firstName),
		LastName:  strings.TrimSpace(lastName),
		Phone:     strings.TrimSpace(phone),
		Notes:     strings.TrimSpace(notes),
	}
}

// FullName is the display name and the source of the search tokens.
func (c *Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}

func (c *Customer) IsPersisted() bool {
	return c.CustomerID != 0
}

func (c *Customer) Validate() error {
	if strings.TrimSpace(c.FirstName) == "" {
		return apperrors.NewValidationError("firstName", "cannot be empty")
	}
	if strings.TrimSpace(c.LastName) == "" {
		return apperrors.NewValidationError("lastName", "cannot be empty")
	}
	return nil
}
