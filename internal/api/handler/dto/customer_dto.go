package dto

import (
	"fmt"
	"strings"

	"lunchly/internal/domain/customer"
)

type CustomerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Notes     string `json:"notes"`
}

func (r *CustomerRequest) Validate() error {
	if strings.TrimSpace(r.FirstName) == "" {
		return fmt.Errorf("firstName cannot be empty")
	}
	if strings.TrimSpace(r.LastName) == "" {
		return fmt.Errorf("lastName cannot be empty")
	}
	return nil
}

type CustomerResponse struct {
	CustomerID int64  `json:"customerId"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	FullName   string `json:"fullName"`
	Phone      string `json:"phone,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

func NewCustomerResponse(cust *customer.Customer) CustomerResponse {
	if cust == nil {
		return CustomerResponse{}
	}
	return CustomerResponse{
		CustomerID: cust.CustomerID,
		FirstName:  cust.FirstName,
		LastName:   cust.LastName,
		FullName:   cust.FullName(),
		Phone:      cust.Phone,
		Notes:      cust.Notes,
	}
}

func NewCustomerListResponse(customers []*customer.Customer) []CustomerResponse {
	resp := make([]CustomerResponse, 0, len(customers))
	for _, c := range customers {
		resp = append(resp, NewCustomerResponse(c))
	}
	return resp
}

type ErrorDetail struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type TokenRequest struct {
	Username string `json:"username"`
}

type TokenResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"`
}
