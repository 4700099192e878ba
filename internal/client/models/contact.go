package models

import "time"

// Contact is a contact record as returned by the API.
type Contact struct {
	ID          string    `json:"_id"`
	User        string    `json:"user,omitempty"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	PhoneNumber string    `json:"phoneNumber"`
	Email       string    `json:"email,omitempty"`
	Address     string    `json:"address,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt,omitempty"`
}

// Input returns the editable part of c, used to prefill an edit form.
func (c Contact) Input() ContactInput {
	return ContactInput{
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		PhoneNumber: c.PhoneNumber,
		Email:       c.Email,
		Address:     c.Address,
		Notes:       c.Notes,
	}
}

// ContactInput is the body of create and update calls. Server-owned
// fields are deliberately absent.
type ContactInput struct {
	FirstName   string `json:"firstName" validate:"required"`
	LastName    string `json:"lastName" validate:"required"`
	PhoneNumber string `json:"phoneNumber" validate:"required"`
	Email       string `json:"email,omitempty" validate:"omitempty,email"`
	Address     string `json:"address,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

// ChartData is the dashboard series.
type ChartData struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// UserDetails is the dashboard summary for the logged-in user.
type UserDetails struct {
	Username      string    `json:"username"`
	ContactsCount int       `json:"contactsCount"`
	ListsCount    int       `json:"listsCount"`
	ProfileViews  int       `json:"profileViews"`
	ChartData     ChartData `json:"chartData"`
}
