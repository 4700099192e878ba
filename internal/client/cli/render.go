package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/contactkeeper/internal/client/client"
	"github.com/dmitrijs2005/contactkeeper/internal/client/models"
	"github.com/dmitrijs2005/contactkeeper/internal/client/validation"
	"github.com/dmitrijs2005/contactkeeper/internal/common"
)

const chartWidth = 30

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// renderErrors prints one line per field in Keys order. The api entry is
// printed as a bare message.
func (a *App) renderErrors(errs validation.FormErrors) {
	for _, k := range errs.Keys() {
		if k == validation.KeyAPI {
			a.println(errs[k])
			continue
		}
		a.printf("%s: %s\n", k, errs[k])
	}
}

// reportError shows err to the user and returns ErrReported.
func (a *App) reportError(ctx context.Context, err error) error {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		a.renderErrors(verr.Fields)
	case errors.Is(err, common.ErrNotLoggedIn):
		a.println("You are not logged in. Run 'login' first.")
	case errors.Is(err, client.ErrUnauthorized):
		a.println("Your session has expired. Please log in again.")
	default:
		a.println(client.UserMessage(err))
	}
	a.log.Debug(ctx, "command failed", "error", err)
	return ErrReported
}

func (a *App) printDashboard(d *models.UserDetails) {
	a.printf("Welcome, %s!\n\n", d.Username)

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Contacts\t%d\n", d.ContactsCount)
	fmt.Fprintf(tw, "Lists\t%d\n", d.ListsCount)
	fmt.Fprintf(tw, "Profile views\t%d\n", d.ProfileViews)
	_ = tw.Flush()

	if len(d.ChartData.Labels) == 0 {
		return
	}
	a.println()
	a.printChart(d.ChartData)
}

// printChart draws the series as horizontal bars scaled to chartWidth.
func (a *App) printChart(c models.ChartData) {
	var max float64
	for _, v := range c.Values {
		if v > max {
			max = v
		}
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 1, ' ', 0)
	for i, label := range c.Labels {
		var v float64
		if i < len(c.Values) {
			v = c.Values[i]
		}
		n := 0
		if max > 0 && v > 0 {
			n = int(v / max * chartWidth)
		}
		fmt.Fprintf(tw, "%s\t%s %g\n", label, strings.Repeat("#", n), v)
	}
	_ = tw.Flush()
}

func (a *App) printContacts(list []models.Contact) {
	if len(list) == 0 {
		a.println("No contacts yet. Run 'add' to create one.")
		return
	}
	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPHONE\tEMAIL")
	for _, c := range list {
		fmt.Fprintf(tw, "%s\t%s %s\t%s\t%s\n", c.ID, c.FirstName, c.LastName, c.PhoneNumber, c.Email)
	}
	_ = tw.Flush()
}

func (a *App) printContact(c *models.Contact) {
	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\t%s\n", c.ID)
	fmt.Fprintf(tw, "Name\t%s %s\n", c.FirstName, c.LastName)
	fmt.Fprintf(tw, "Phone\t%s\n", c.PhoneNumber)
	if c.Email != "" {
		fmt.Fprintf(tw, "Email\t%s\n", c.Email)
	}
	if c.Address != "" {
		fmt.Fprintf(tw, "Address\t%s\n", c.Address)
	}
	_ = tw.Flush()
	if c.Notes != "" {
		a.printf("\n%s\n", c.Notes)
	}
}
