package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/dmitrijs2005/contactkeeper/internal/client/models"
	"github.com/dmitrijs2005/contactkeeper/internal/client/session"
	"github.com/dmitrijs2005/contactkeeper/internal/logging"
)

// fakeAPI implements client.Client and records what it was asked.
type fakeAPI struct {
	token     string
	loginErr  error
	regErr    error
	verifyErr error
	resendErr error

	details  *models.UserDetails
	contacts []models.Contact
	contact  *models.Contact
	apiErr   error

	calls      []string
	lastEmail  string
	lastOTP    string
	lastID     string
	lastInput  models.ContactInput
	lastPasswd string
}

func (f *fakeAPI) Login(_ context.Context, email, password string) (string, error) {
	f.calls = append(f.calls, "login")
	f.lastEmail, f.lastPasswd = email, password
	return f.token, f.loginErr
}

func (f *fakeAPI) Register(_ context.Context, email, _, password string) error {
	f.calls = append(f.calls, "register")
	f.lastEmail, f.lastPasswd = email, password
	return f.regErr
}

func (f *fakeAPI) VerifyOTP(_ context.Context, email, code string) error {
	f.calls = append(f.calls, "verify")
	f.lastEmail, f.lastOTP = email, code
	return f.verifyErr
}

func (f *fakeAPI) ResendOTP(_ context.Context, email string) error {
	f.calls = append(f.calls, "resend")
	f.lastEmail = email
	return f.resendErr
}

func (f *fakeAPI) GetUserDetails(context.Context, string) (*models.UserDetails, error) {
	f.calls = append(f.calls, "details")
	return f.details, f.apiErr
}

func (f *fakeAPI) ListContacts(context.Context, string) ([]models.Contact, error) {
	f.calls = append(f.calls, "list")
	return f.contacts, f.apiErr
}

func (f *fakeAPI) GetContact(_ context.Context, _, id string) (*models.Contact, error) {
	f.calls = append(f.calls, "get")
	f.lastID = id
	return f.contact, f.apiErr
}

func (f *fakeAPI) CreateContact(_ context.Context, _ string, in models.ContactInput) (*models.Contact, error) {
	f.calls = append(f.calls, "create")
	f.lastInput = in
	if f.apiErr != nil {
		return nil, f.apiErr
	}
	return &models.Contact{ID: "c1", FirstName: in.FirstName}, nil
}

func (f *fakeAPI) UpdateContact(_ context.Context, _, id string, in models.ContactInput) (*models.Contact, error) {
	f.calls = append(f.calls, "update")
	f.lastID, f.lastInput = id, in
	if f.apiErr != nil {
		return nil, f.apiErr
	}
	return &models.Contact{ID: id}, nil
}

// newTestApp builds an App over api with an in-memory session and input
// taken from lines.
func newTestApp(t *testing.T, api *fakeAPI, lines ...string) (*App, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	input := strings.Join(lines, "\n")
	if len(lines) > 0 {
		input += "\n"
	}
	a := &App{
		log:    logging.Discard(),
		store:  session.NewMemoryStore(),
		reader: bufio.NewReader(strings.NewReader(input)),
		out:    out,
	}
	a.wire(api)
	return a, out
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := getPassword
	getPassword = func(_ io.Writer) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { getPassword = orig })
}

func silencePrintln(t *testing.T) {
	t.Helper()
	orig := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = orig })
}
