package cli

import (
	"context"
	"strings"
	"time"

	"github.com/dmitrijs2005/contactkeeper/internal/client/models"
	"github.com/dmitrijs2005/contactkeeper/internal/client/services"
	"github.com/dmitrijs2005/contactkeeper/internal/client/session"
	"github.com/dmitrijs2005/contactkeeper/internal/client/validation"
	"github.com/dmitrijs2005/contactkeeper/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// nowFn is a test seam for the clock used by Status.
var nowFn = time.Now

// Register prompts for email, username and password and submits the
// registration form. On success the OTP prompt starts right away.
//
// The password byte slice is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	return a.submitCredentials(ctx, models.ModeRegister, models.Credentials{
		Email:    email,
		Username: username,
		Password: string(password),
	})
}

// Login prompts for credentials and stores the session on success, then
// shows the dashboard.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	return a.submitCredentials(ctx, models.ModeLogin, models.Credentials{
		Email:    email,
		Password: string(password),
	})
}

func (a *App) submitCredentials(ctx context.Context, mode models.Mode, creds models.Credentials) error {
	a.flow.Reset(ctx)
	v := a.flow.SubmitCredentials(ctx, mode, creds)
	if !v.Errors.Valid() {
		a.renderErrors(v.Errors)
		return ErrReported
	}
	if mode == models.ModeLogin {
		a.println("Login successful.")
	} else {
		a.println("Registration successful.")
	}
	return a.handoff(ctx)
}

// Verify opens the OTP prompt for email. With no email the one carried
// over from registration is used.
func (a *App) Verify(ctx context.Context, email string) error {
	if email == "" {
		email = a.flow.View().Email
	}
	return a.otpLoop(ctx, email)
}

// Resend asks the server for a new code for email (or the current one).
func (a *App) Resend(ctx context.Context, email string) error {
	if email == "" {
		email = a.flow.View().Email
	}
	a.enterOTP(ctx, email)

	v := a.flow.ResendOTP(ctx)
	a.renderErrors(v.Errors)
	if v.Errors[validation.KeyAPI] != services.MsgOTPResent {
		return ErrReported
	}
	return nil
}

// enterOTP puts the flow on the OTP screen for email unless it is
// already there.
func (a *App) enterOTP(ctx context.Context, email string) services.View {
	v := a.flow.View()
	if v.State == services.StateAwaitingOTP && v.Email == email && email != "" {
		return v
	}
	return a.flow.EnterOTP(ctx, email)
}

// otpLoop prompts for the code until it is accepted, the user gives up
// with an empty line, or input ends. "resend" requests a new code.
func (a *App) otpLoop(ctx context.Context, email string) error {
	v := a.enterOTP(ctx, email)
	if !a.flow.CanSubmitOTP() {
		a.renderErrors(v.Errors)
		return ErrReported
	}

	a.printf("A %d-digit code was sent to %s.\n", models.OTPLength, email)
	for {
		line, err := getSimpleText(a.reader, "Enter the code ('resend' for a new one, empty line to stop)", a.out)
		if err != nil {
			return err
		}

		switch strings.ToLower(line) {
		case "":
			a.println("Verification postponed. Run 'verify " + email + "' to continue.")
			return nil
		case "resend":
			v = a.flow.ResendOTP(ctx)
			a.renderErrors(v.Errors)
			continue
		}

		v = a.flow.SubmitOTP(ctx, otpFromInput(line))
		if v.State == services.StateAuthenticated {
			return a.handoff(ctx)
		}
		a.renderErrors(v.Errors)
	}
}

// otpFromInput fills the code cells from typed text. Anything that is not
// exactly OTPLength digits leaves at least one cell empty.
func otpFromInput(s string) models.OTPCode {
	if code, err := models.ParseOTPCode(s); err == nil {
		return code
	}
	var code models.OTPCode
	for i, r := range strings.TrimSpace(s) {
		if i >= models.OTPLength-1 {
			break
		}
		code.Set(i, string(r))
	}
	return code
}

// Logout removes the stored session.
func (a *App) Logout(ctx context.Context) error {
	if err := a.flow.Logout(ctx); err != nil {
		a.log.Error(ctx, "logout failed", "error", err)
		return err
	}
	a.println("Logged out.")
	return nil
}

// savedAtStore is implemented by stores that remember when the token was
// written.
type savedAtStore interface {
	SavedAt(ctx context.Context) (time.Time, error)
}

// Status prints whether a session is stored and what can be read from it.
func (a *App) Status(ctx context.Context) error {
	if a.config != nil {
		a.printf("API: %s\n", a.config.APIBaseURL)
	}

	tok, err := a.flow.Token(ctx)
	if err != nil {
		return err
	}
	if tok == "" {
		a.println("Not logged in.")
		return nil
	}
	a.println("Logged in.")

	if s, ok := a.store.(savedAtStore); ok {
		if at, err := s.SavedAt(ctx); err == nil && !at.IsZero() {
			a.printf("Session saved: %s\n", at.Local().Format(time.RFC1123))
		}
	}

	info := session.Inspect(tok)
	if !info.IsJWT {
		return nil
	}
	if info.Subject != "" {
		a.printf("User: %s\n", info.Subject)
	}
	if !info.ExpiresAt.IsZero() {
		note := ""
		if info.Expired(nowFn()) {
			note = " (expired)"
		}
		a.printf("Expires: %s%s\n", info.ExpiresAt.Local().Format(time.RFC1123), note)
	}
	return nil
}
