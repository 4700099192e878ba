// Package services contains application services for the contacts client.
// This file defines the auth flow: the login/register → OTP → done state
// machine, the session it writes, and the routes it hands off to.
package services

import (
	"context"
	"net/url"
	"sync"

	"github.com/dmitrijs2005/contactkeeper/internal/client/client"
	"github.com/dmitrijs2005/contactkeeper/internal/client/models"
	"github.com/dmitrijs2005/contactkeeper/internal/client/session"
	"github.com/dmitrijs2005/contactkeeper/internal/client/validation"
	"github.com/dmitrijs2005/contactkeeper/internal/logging"
)

// State is the position of the auth flow.
type State int

const (
	StateIdle State = iota
	StateSubmittingCredentials
	StateAwaitingOTP
	StateSubmittingOTP
	StateResendingOTP
	StateAuthenticated
	// StateFailed is passed through on a rejected submission, immediately
	// followed by the state the user retries from.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmittingCredentials:
		return "submitting_credentials"
	case StateAwaitingOTP:
		return "awaiting_otp"
	case StateSubmittingOTP:
		return "submitting_otp"
	case StateResendingOTP:
		return "resending_otp"
	case StateAuthenticated:
		return "authenticated"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Routes handed to the Navigator.
const (
	RouteAuth      = "/auth"
	RouteDashboard = "/dashboard"
	RouteVerifyOTP = "/auth/verify-otp"
	RouteSuccess   = "/auth/success"
)

// VerifyOTPRoute is the OTP screen route carrying email.
func VerifyOTPRoute(email string) string {
	return RouteVerifyOTP + "?email=" + url.QueryEscape(email)
}

const (
	MsgEmailRequiredForOTP = "Email is required for OTP verification."
	MsgOTPResent           = "Verification email resent. Please check your inbox."
)

// Navigator receives the route to show after a successful step.
type Navigator interface {
	Navigate(ctx context.Context, route string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(ctx context.Context, route string)

func (f NavigatorFunc) Navigate(ctx context.Context, route string) { f(ctx, route) }

// View is the renderable snapshot of the flow.
type View struct {
	State   State
	Errors  validation.FormErrors
	Email   string
	Failure string
}

// AuthFlow drives the three auth screens. It is safe for concurrent use;
// at most one submission of any kind is in flight at a time, and triggers
// fired while one is running are ignored.
type AuthFlow struct {
	client       client.AuthClient
	store        session.Store
	nav          Navigator
	log          logging.Logger
	onTransition func(from, to State)

	mu      sync.Mutex
	state   State
	errors  validation.FormErrors
	email   string
	failure string
	// gen changes whenever the user leaves the current screen; results of
	// calls started under an older gen are dropped.
	gen uint64
}

type AuthFlowOption func(*AuthFlow)

func WithNavigator(n Navigator) AuthFlowOption {
	return func(f *AuthFlow) { f.nav = n }
}

func WithLogger(l logging.Logger) AuthFlowOption {
	return func(f *AuthFlow) { f.log = l }
}

// WithTransitionHook observes every state change. The hook runs with the
// flow locked and must not call back into it.
func WithTransitionHook(fn func(from, to State)) AuthFlowOption {
	return func(f *AuthFlow) { f.onTransition = fn }
}

// NewAuthFlow builds a flow in StateIdle over the given client and store.
func NewAuthFlow(c client.AuthClient, store session.Store, opts ...AuthFlowOption) *AuthFlow {
	f := &AuthFlow{
		client: c,
		store:  store,
		nav:    NavigatorFunc(func(context.Context, string) {}),
		log:    logging.Discard(),
		errors: validation.FormErrors{},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *AuthFlow) setState(ctx context.Context, to State) {
	from := f.state
	f.state = to
	f.log.Debug(ctx, "auth state changed", "from", from.String(), "to", to.String())
	if f.onTransition != nil {
		f.onTransition(from, to)
	}
}

func (f *AuthFlow) fail(ctx context.Context, reason string, back State) {
	f.failure = reason
	f.errors = validation.FormErrors{validation.KeyAPI: reason}
	f.setState(ctx, StateFailed)
	f.setState(ctx, back)
}

func (f *AuthFlow) viewLocked() View {
	return View{State: f.state, Errors: f.errors.Clone(), Email: f.email, Failure: f.failure}
}

// View returns the current snapshot.
func (f *AuthFlow) View() View {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.viewLocked()
}

func (f *AuthFlow) CanSubmitCredentials() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state == StateIdle
}

func (f *AuthFlow) CanSubmitOTP() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state == StateAwaitingOTP && f.email != ""
}

func (f *AuthFlow) CanResend() bool {
	return f.CanSubmitOTP()
}

// Reset shows a fresh credentials screen. A call still in flight finishes
// but its result is discarded.
func (f *AuthFlow) Reset(ctx context.Context) View {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gen++
	f.errors = validation.FormErrors{}
	f.email = ""
	f.failure = ""
	f.setState(ctx, StateIdle)
	return f.viewLocked()
}

// EnterOTP shows the OTP screen for email, as when the user opens the
// verification link directly. Without an email the screen is blocked.
func (f *AuthFlow) EnterOTP(ctx context.Context, email string) View {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gen++
	f.email = email
	f.failure = ""
	f.errors = validation.FormErrors{}
	if email == "" {
		f.errors[validation.KeyAPI] = MsgEmailRequiredForOTP
	}
	f.setState(ctx, StateAwaitingOTP)
	return f.viewLocked()
}

// SubmitCredentials validates creds for mode and, when valid, logs in or
// registers. Validation failures never reach the network. Server and
// network failures end up under the "api" key.
func (f *AuthFlow) SubmitCredentials(ctx context.Context, mode models.Mode, creds models.Credentials) View {
	f.mu.Lock()
	if f.state != StateIdle {
		defer f.mu.Unlock()
		return f.viewLocked()
	}

	f.failure = ""
	f.errors = validation.ValidateCredentials(creds, mode)
	if !f.errors.Valid() {
		defer f.mu.Unlock()
		return f.viewLocked()
	}

	f.setState(ctx, StateSubmittingCredentials)
	gen := f.gen
	f.mu.Unlock()

	var (
		token string
		err   error
	)
	if mode == models.ModeRegister {
		err = f.client.Register(ctx, creds.Email, creds.Username, creds.Password)
	} else {
		token, err = f.client.Login(ctx, creds.Email, creds.Password)
	}

	f.mu.Lock()
	if gen != f.gen {
		defer f.mu.Unlock()
		f.log.Debug(ctx, "discarding stale credentials result", "mode", string(mode))
		return f.viewLocked()
	}

	if err == nil && mode == models.ModeLogin {
		if err = f.store.Save(ctx, token); err != nil {
			f.log.Error(ctx, "saving session failed", "error", err)
		}
	}

	if err != nil {
		f.log.Info(ctx, "credentials rejected", "mode", string(mode), "error", err)
		f.fail(ctx, client.UserMessage(err), StateIdle)
		defer f.mu.Unlock()
		return f.viewLocked()
	}

	var route string
	if mode == models.ModeRegister {
		f.email = creds.Email
		f.setState(ctx, StateAwaitingOTP)
		route = VerifyOTPRoute(creds.Email)
	} else {
		f.setState(ctx, StateAuthenticated)
		route = RouteDashboard
	}
	f.log.Info(ctx, "credentials accepted", "mode", string(mode))
	v := f.viewLocked()
	f.mu.Unlock()

	f.nav.Navigate(ctx, route)
	return v
}

// SubmitOTP sends the verification code for the email carried into the
// OTP screen.
func (f *AuthFlow) SubmitOTP(ctx context.Context, code models.OTPCode) View {
	f.mu.Lock()
	if f.state != StateAwaitingOTP {
		defer f.mu.Unlock()
		return f.viewLocked()
	}
	if f.email == "" {
		defer f.mu.Unlock()
		f.errors = validation.FormErrors{validation.KeyAPI: MsgEmailRequiredForOTP}
		return f.viewLocked()
	}
	if errs := validation.ValidateOTP(code); !errs.Valid() {
		defer f.mu.Unlock()
		f.errors = errs
		return f.viewLocked()
	}

	f.failure = ""
	f.errors = validation.FormErrors{}
	f.setState(ctx, StateSubmittingOTP)
	gen, email := f.gen, f.email
	f.mu.Unlock()

	err := f.client.VerifyOTP(ctx, email, code.String())

	f.mu.Lock()
	if gen != f.gen {
		defer f.mu.Unlock()
		return f.viewLocked()
	}
	if err != nil {
		defer f.mu.Unlock()
		f.log.Info(ctx, "otp rejected", "error", err)
		f.fail(ctx, client.UserMessage(err), StateAwaitingOTP)
		return f.viewLocked()
	}

	f.setState(ctx, StateAuthenticated)
	f.log.Info(ctx, "otp verified")
	v := f.viewLocked()
	f.mu.Unlock()

	f.nav.Navigate(ctx, RouteSuccess)
	return v
}

// ResendOTP asks for a new code. Success and failure are both reported as
// a plain message under the "api" key.
func (f *AuthFlow) ResendOTP(ctx context.Context) View {
	f.mu.Lock()
	if f.state != StateAwaitingOTP {
		defer f.mu.Unlock()
		return f.viewLocked()
	}
	if f.email == "" {
		defer f.mu.Unlock()
		f.errors = validation.FormErrors{validation.KeyAPI: MsgEmailRequiredForOTP}
		return f.viewLocked()
	}

	f.setState(ctx, StateResendingOTP)
	gen, email := f.gen, f.email
	f.mu.Unlock()

	err := f.client.ResendOTP(ctx, email)

	f.mu.Lock()
	defer f.mu.Unlock()
	if gen != f.gen {
		return f.viewLocked()
	}

	msg := MsgOTPResent
	if err != nil {
		f.log.Warn(ctx, "resend otp failed", "error", err)
		msg = client.UserMessage(err)
	}
	f.errors = validation.FormErrors{validation.KeyAPI: msg}
	f.setState(ctx, StateAwaitingOTP)
	return f.viewLocked()
}

// Token returns the stored session token, "" when logged out.
func (f *AuthFlow) Token(ctx context.Context) (string, error) {
	return f.store.Load(ctx)
}

// IsAuthenticated reports whether a session token is stored.
func (f *AuthFlow) IsAuthenticated(ctx context.Context) bool {
	tok, err := f.store.Load(ctx)
	if err != nil {
		f.log.Warn(ctx, "loading session failed", "error", err)
		return false
	}
	return tok != ""
}

// Logout drops the session token and returns the flow to StateIdle.
func (f *AuthFlow) Logout(ctx context.Context) error {
	if err := f.store.Clear(ctx); err != nil {
		return err
	}
	f.Reset(ctx)
	return nil
}
