package domain

import "time"

// CustomerAddress stores shipping address fields returned to clients.
type CustomerAddress struct {
	ID         string `json:"id"`
	FirstName  string `json:"firstName,omitempty"`
	LastName   string `json:"lastName,omitempty"`
	Phone      string `json:"phone,omitempty"`
	StreetName string `json:"streetName,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	Country    string `json:"country,omitempty"`
}

// Customer represents a registered shopper.
type Customer struct {
	ID                       string            `json:"id"`
	Email                    string            `json:"email"`
	PasswordHash             string            `json:"-"`
	FirstName                string            `json:"firstName,omitempty"`
	LastName                 string            `json:"lastName,omitempty"`
	Addresses                []CustomerAddress `json:"addresses,omitempty"`
	DefaultShippingAddressID string            `json:"defaultShippingAddressId,omitempty"`
	CreatedAt                time.Time         `json:"createdAt"`
}

// AddressByID returns the customer address with the given id.
func (c Customer) AddressByID(id string) (CustomerAddress, bool) {
	for _, a := range c.Addresses {
		if a.ID == id {
			return a, true
		}
	}
	return CustomerAddress{}, false
}
