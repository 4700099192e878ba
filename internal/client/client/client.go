package client

import (
	"context"

	"github.com/dmitrijs2005/contactkeeper/internal/client/models"
)

// AuthClient issues the four account calls. Every call is single-shot;
// failures are *AuthError or *NetworkError.
type AuthClient interface {
	Login(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, email, username, password string) error
	VerifyOTP(ctx context.Context, email, code string) error
	ResendOTP(ctx context.Context, email string) error
}

// ContactsClient issues bearer-authenticated calls for the dashboard and
// the contact book.
type ContactsClient interface {
	GetUserDetails(ctx context.Context, token string) (*models.UserDetails, error)
	ListContacts(ctx context.Context, token string) ([]models.Contact, error)
	GetContact(ctx context.Context, token, id string) (*models.Contact, error)
	CreateContact(ctx context.Context, token string, in models.ContactInput) (*models.Contact, error)
	UpdateContact(ctx context.Context, token, id string, in models.ContactInput) (*models.Contact, error)
}

// Client is the whole remote API surface.
type Client interface {
	AuthClient
	ContactsClient
}
