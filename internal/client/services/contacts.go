package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/contactkeeper/internal/client/client"
	"github.com/dmitrijs2005/contactkeeper/internal/client/models"
	"github.com/dmitrijs2005/contactkeeper/internal/client/session"
	"github.com/dmitrijs2005/contactkeeper/internal/client/validation"
	"github.com/dmitrijs2005/contactkeeper/internal/common"
	"github.com/dmitrijs2005/contactkeeper/internal/logging"
)

// ContactService defines the dashboard and contact book operations.
//
// Contract:
//   - every call needs a stored session token, else common.ErrNotLoggedIn;
//   - Create and Update validate input first and return *validation.Error
//     without calling the API;
//   - a 401 from the API clears the session before the error is returned.
type ContactService interface {
	Dashboard(ctx context.Context) (*models.UserDetails, error)
	List(ctx context.Context) ([]models.Contact, error)
	Get(ctx context.Context, id string) (*models.Contact, error)
	Create(ctx context.Context, in models.ContactInput) (*models.Contact, error)
	Update(ctx context.Context, id string, in models.ContactInput) (*models.Contact, error)
}

type contactService struct {
	client client.ContactsClient
	store  session.Store
	log    logging.Logger
}

// NewContactService constructs a ContactService reading the token from store.
func NewContactService(c client.ContactsClient, store session.Store, log logging.Logger) ContactService {
	if log == nil {
		log = logging.Discard()
	}
	return &contactService{client: c, store: store, log: log}
}

func (s *contactService) token(ctx context.Context) (string, error) {
	tok, err := s.store.Load(ctx)
	if err != nil {
		return "", err
	}
	if tok == "" {
		return "", common.ErrNotLoggedIn
	}
	return tok, nil
}

// checkSession ends the session when the server no longer accepts the token.
func (s *contactService) checkSession(ctx context.Context, err error) error {
	if err == nil || !errors.Is(err, client.ErrUnauthorized) {
		return err
	}
	s.log.Info(ctx, "session rejected by server, clearing token")
	if cerr := s.store.Clear(ctx); cerr != nil {
		return fmt.Errorf("%w (clearing session: %v)", err, cerr)
	}
	return err
}

func (s *contactService) Dashboard(ctx context.Context) (*models.UserDetails, error) {
	tok, err := s.token(ctx)
	if err != nil {
		return nil, err
	}
	d, err := s.client.GetUserDetails(ctx, tok)
	return d, s.checkSession(ctx, err)
}

func (s *contactService) List(ctx context.Context) ([]models.Contact, error) {
	tok, err := s.token(ctx)
	if err != nil {
		return nil, err
	}
	list, err := s.client.ListContacts(ctx, tok)
	return list, s.checkSession(ctx, err)
}

func (s *contactService) Get(ctx context.Context, id string) (*models.Contact, error) {
	tok, err := s.token(ctx)
	if err != nil {
		return nil, err
	}
	c, err := s.client.GetContact(ctx, tok, id)
	return c, s.checkSession(ctx, err)
}

func (s *contactService) Create(ctx context.Context, in models.ContactInput) (*models.Contact, error) {
	if errs := validation.ValidateContact(in); !errs.Valid() {
		return nil, &validation.Error{Fields: errs}
	}
	tok, err := s.token(ctx)
	if err != nil {
		return nil, err
	}
	c, err := s.client.CreateContact(ctx, tok, in)
	return c, s.checkSession(ctx, err)
}

func (s *contactService) Update(ctx context.Context, id string, in models.ContactInput) (*models.Contact, error) {
	if errs := validation.ValidateContact(in); !errs.Valid() {
		return nil, &validation.Error{Fields: errs}
	}
	tok, err := s.token(ctx)
	if err != nil {
		return nil, err
	}
	c, err := s.client.UpdateContact(ctx, tok, id, in)
	return c, s.checkSession(ctx, err)
}
