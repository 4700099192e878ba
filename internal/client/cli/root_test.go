package cli

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/contactkeeper/internal/client/config"
	"github.com/dmitrijs2005/contactkeeper/internal/client/models"
)

// stubNewApp makes every command run against a, and records the config it
// was built from.
func stubNewApp(t *testing.T, a *App) **config.Config {
	t.Helper()
	var got *config.Config
	orig := newAppFn
	newAppFn = func(_ context.Context, c *config.Config, _ io.Reader, _ io.Writer) (*App, error) {
		got = c
		a.config = c
		return a, nil
	}
	t.Cleanup(func() { newAppFn = orig })
	return &got
}

func runRoot(t *testing.T, args ...string) error {
	t.Helper()
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	return cmd.ExecuteContext(context.Background())
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	cmd := NewRootCmd()

	names := map[string]bool{}
	for _, c := range cmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"login", "register", "verify-otp", "resend-otp", "logout", "status", "dashboard", "contacts"} {
		assert.True(t, names[want], "missing subcommand %q", want)
	}

	for _, f := range []string{config.FlagConfig, config.FlagAPIURL, config.FlagTimeout, config.FlagSessionDB, config.FlagEphemeral, config.FlagLogLevel, config.FlagLogFormat} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(f), "missing flag %q", f)
	}
}

func TestRootCmd_FlagsReachConfig(t *testing.T) {
	a, out := newTestApp(t, &fakeAPI{})
	cfg := stubNewApp(t, a)

	require.NoError(t, runRoot(t, "--api-url", "http://flag/api", "--ephemeral", "status"))

	require.NotNil(t, *cfg)
	assert.Equal(t, "http://flag/api", (*cfg).APIBaseURL)
	assert.True(t, (*cfg).Ephemeral)
	assert.Contains(t, out.String(), "API: http://flag/api")
	assert.Contains(t, out.String(), "Not logged in.")
}

func TestRootCmd_ContactsShow(t *testing.T) {
	api := &fakeAPI{contact: &models.Contact{ID: "9", FirstName: "Grace"}}
	a, out := newTestApp(t, api)
	require.NoError(t, a.store.Save(context.Background(), "T"))
	stubNewApp(t, a)

	require.NoError(t, runRoot(t, "contacts", "show", "9"))
	assert.Equal(t, "9", api.lastID)
	assert.Contains(t, out.String(), "Grace")
}

func TestRootCmd_ArgumentErrors(t *testing.T) {
	a, _ := newTestApp(t, &fakeAPI{})
	stubNewApp(t, a)

	assert.Error(t, runRoot(t, "contacts", "show"))
	assert.Error(t, runRoot(t, "login", "extra"))
	assert.Error(t, runRoot(t, "--log-level", "loud", "status"))
}

func TestRootCmd_VerifyWithEmailFlag(t *testing.T) {
	api := &fakeAPI{}
	a, _ := newTestApp(t, api, "123456")
	stubNewApp(t, a)

	require.NoError(t, runRoot(t, "verify-otp", "--email", "a@b.com"))
	assert.Equal(t, []string{"verify"}, api.calls)
	assert.Equal(t, "a@b.com", api.lastEmail)
}

func TestExecute_ExitCodes(t *testing.T) {
	a, _ := newTestApp(t, &fakeAPI{})
	stubNewApp(t, a)

	assert.Equal(t, 0, Execute(context.Background(), "test", []string{"status"}))
	assert.Equal(t, 1, Execute(context.Background(), "test", []string{"dashboard"}), "not logged in")
	assert.Equal(t, 1, Execute(context.Background(), "test", []string{"no-such-command"}))
}
