package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/contactkeeper/internal/client/config"
)

// newAppFn is a test seam for NewApp.
var newAppFn = func(ctx context.Context, c *config.Config, in io.Reader, out io.Writer) (*App, error) {
	return NewApp(ctx, c, in, out)
}

type handler func(ctx context.Context, a *App, args []string) error

// withApp loads configuration from the command's flags, builds the App and
// runs h with it.
func withApp(h handler) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(cmd.Flags())
		if err != nil {
			return err
		}
		a, err := newAppFn(cmd.Context(), cfg, cmd.InOrStdin(), cmd.OutOrStdout())
		if err != nil {
			return err
		}
		defer a.Close()
		return h(cmd.Context(), a, args)
	}
}

// NewRootCmd creates the root command. Without a subcommand it starts the
// interactive session.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contacts",
		Short: "Contact manager command-line client",
		Long: `contacts talks to the contact manager API: create an account, verify it
with the emailed code, log in, and manage your contacts.

Run without a command for an interactive session.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: withApp(func(ctx context.Context, a *App, _ []string) error {
			return a.Run(ctx)
		}),
	}

	config.RegisterFlags(cmd.PersistentFlags())

	cmd.AddCommand(newLoginCmd())
	cmd.AddCommand(newRegisterCmd())
	cmd.AddCommand(newVerifyCmd())
	cmd.AddCommand(newResendCmd())
	cmd.AddCommand(newLogoutCmd())
	cmd.AddCommand(newStatusCmd())
	cmd.AddCommand(newDashboardCmd())
	cmd.AddCommand(newContactsCmd())

	return cmd
}

func newLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session",
		Args:  cobra.NoArgs,
		RunE: withApp(func(ctx context.Context, a *App, _ []string) error {
			return a.Login(ctx)
		}),
	}
}

func newRegisterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register",
		Short: "Create an account and verify it",
		Args:  cobra.NoArgs,
		RunE: withApp(func(ctx context.Context, a *App, _ []string) error {
			return a.Register(ctx)
		}),
	}
}

func newVerifyCmd() *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "verify-otp",
		Short: "Enter the verification code sent by email",
		Args:  cobra.NoArgs,
		RunE: withApp(func(ctx context.Context, a *App, _ []string) error {
			return a.Verify(ctx, email)
		}),
	}
	cmd.Flags().StringVar(&email, "email", "", "email address the code was sent to")
	return cmd
}

func newResendCmd() *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "resend-otp",
		Short: "Send a new verification code",
		Args:  cobra.NoArgs,
		RunE: withApp(func(ctx context.Context, a *App, _ []string) error {
			return a.Resend(ctx, email)
		}),
	}
	cmd.Flags().StringVar(&email, "email", "", "email address to send the code to")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored session",
		Args:  cobra.NoArgs,
		RunE: withApp(func(ctx context.Context, a *App, _ []string) error {
			return a.Logout(ctx)
		}),
	}
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the stored session",
		Args:  cobra.NoArgs,
		RunE: withApp(func(ctx context.Context, a *App, _ []string) error {
			return a.Status(ctx)
		}),
	}
}

func newDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show the account summary",
		Args:  cobra.NoArgs,
		RunE: withApp(func(ctx context.Context, a *App, _ []string) error {
			return a.Dashboard(ctx)
		}),
	}
}

func newContactsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contacts",
		Short: "Manage contacts",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List contacts",
		Args:  cobra.NoArgs,
		RunE: withApp(func(ctx context.Context, a *App, _ []string) error {
			return a.List(ctx)
		}),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Show one contact",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(ctx context.Context, a *App, args []string) error {
			return a.Show(ctx, args[0])
		}),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "add",
		Short: "Create a contact",
		Args:  cobra.NoArgs,
		RunE: withApp(func(ctx context.Context, a *App, _ []string) error {
			return a.Add(ctx)
		}),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a contact",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(ctx context.Context, a *App, args []string) error {
			return a.Edit(ctx, args[0])
		}),
	})

	return cmd
}

// Execute runs the command tree with args and returns the process exit
// code. Errors already shown to the user are not printed twice.
func Execute(ctx context.Context, version string, args []string) int {
	cmd := NewRootCmd()
	cmd.Version = version
	cmd.SetArgs(args)

	if err := cmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, ErrReported) {
			fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
		}
		return 1
	}
	return 0
}
