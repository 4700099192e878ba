package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/dmitrijs2005/contactkeeper/internal/client/client"
	"github.com/dmitrijs2005/contactkeeper/internal/client/config"
	"github.com/dmitrijs2005/contactkeeper/internal/client/services"
	"github.com/dmitrijs2005/contactkeeper/internal/client/session"
	"github.com/dmitrijs2005/contactkeeper/internal/logging"
)

// ErrReported is returned by command handlers after the problem has already
// been shown to the user. Callers should exit non-zero without printing it
// again.
var ErrReported = errors.New("error already reported")

type App struct {
	config   *config.Config
	log      logging.Logger
	db       *sql.DB
	store    session.Store
	flow     *services.AuthFlow
	contacts services.ContactService
	reader   *bufio.Reader
	out      io.Writer

	// route is the last route the auth flow navigated to; handoff consumes it.
	route string
}

// NewApp wires configuration, logging, the session store and the API client.
// Logs go to stderr; prompts and results go to out.
func NewApp(ctx context.Context, c *config.Config, in io.Reader, out io.Writer) (*App, error) {
	log, err := logging.Setup(c.LogLevel, c.LogFormat, os.Stderr)
	if err != nil {
		return nil, err
	}

	a := &App{config: c, log: log, reader: bufio.NewReader(in), out: out}

	if c.Ephemeral {
		a.store = session.NewMemoryStore()
	} else {
		db, err := client.InitDatabase(ctx, c.SessionDB)
		if err != nil {
			log.Error(ctx, "error initializing database", "path", c.SessionDB, "error", err)
			return nil, err
		}
		a.db = db
		a.store = session.NewSQLiteStore(db)
	}

	api := client.NewHTTPClient(c.APIBaseURL,
		client.WithTimeout(c.RequestTimeout),
		client.WithLogger(log),
	)
	a.wire(api)

	log.Debug(ctx, "app ready", "api", api.BaseURL(), "ephemeral", c.Ephemeral)
	return a, nil
}

func (a *App) wire(api client.Client) {
	a.flow = services.NewAuthFlow(api, a.store,
		services.WithNavigator(a),
		services.WithLogger(a.log),
	)
	a.contacts = services.NewContactService(api, a.store, a.log)
}

// Close releases the session database.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	return a.flow.IsAuthenticated(ctx)
}

// Navigate records the route chosen by the auth flow.
func (a *App) Navigate(_ context.Context, route string) {
	a.route = route
}

// handoff shows the screen for the last recorded route.
func (a *App) handoff(ctx context.Context) error {
	route := a.route
	a.route = ""

	switch {
	case route == "":
		return nil
	case route == services.RouteDashboard:
		return a.Dashboard(ctx)
	case strings.HasPrefix(route, services.RouteVerifyOTP):
		u, err := url.Parse(route)
		if err != nil {
			return err
		}
		return a.otpLoop(ctx, u.Query().Get("email"))
	case route == services.RouteSuccess:
		a.println("Success! Your registration was successful.")
		a.println("Log in to open your dashboard.")
		return nil
	}
	a.log.Warn(ctx, "unknown route", "route", route)
	return nil
}
