package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/contactkeeper/internal/client/models"
)

// Dashboard prints the summary for the logged-in user.
func (a *App) Dashboard(ctx context.Context) error {
	d, err := a.contacts.Dashboard(ctx)
	if err != nil {
		return a.reportError(ctx, err)
	}
	a.printDashboard(d)
	return nil
}

// List prints every contact of the user.
func (a *App) List(ctx context.Context) error {
	list, err := a.contacts.List(ctx)
	if err != nil {
		return a.reportError(ctx, err)
	}
	a.printContacts(list)
	return nil
}

// Show prints a single contact. An empty id is asked for.
func (a *App) Show(ctx context.Context, id string) error {
	id, err := a.contactID(id)
	if err != nil {
		return err
	}
	c, err := a.contacts.Get(ctx, id)
	if err != nil {
		return a.reportError(ctx, err)
	}
	a.printContact(c)
	return nil
}

// Add collects a new contact and creates it.
func (a *App) Add(ctx context.Context) error {
	in, err := a.inputContact(models.ContactInput{})
	if err != nil {
		return err
	}
	c, err := a.contacts.Create(ctx, in)
	if err != nil {
		return a.reportError(ctx, err)
	}
	a.printf("Contact created (id %s).\n", c.ID)
	return nil
}

// Edit loads a contact, lets the user change its fields and saves it.
func (a *App) Edit(ctx context.Context, id string) error {
	id, err := a.contactID(id)
	if err != nil {
		return err
	}
	current, err := a.contacts.Get(ctx, id)
	if err != nil {
		return a.reportError(ctx, err)
	}

	a.println("Press Enter to keep a value, '-' to clear it.")
	in, err := a.inputContact(current.Input())
	if err != nil {
		return err
	}
	if _, err := a.contacts.Update(ctx, id, in); err != nil {
		return a.reportError(ctx, err)
	}
	a.println("Contact updated.")
	return nil
}

func (a *App) contactID(id string) (string, error) {
	if id != "" {
		return id, nil
	}
	return getSimpleText(a.reader, "Enter contact ID", a.out)
}

// inputContact prompts for every editable field, offering the values in
// current as defaults.
func (a *App) inputContact(current models.ContactInput) (models.ContactInput, error) {
	in := current
	fields := []struct {
		prompt string
		dst    *string
	}{
		{"First name", &in.FirstName},
		{"Last name", &in.LastName},
		{"Phone number", &in.PhoneNumber},
		{"Email (optional)", &in.Email},
		{"Address (optional)", &in.Address},
	}
	for _, f := range fields {
		v, err := GetTextWithDefault(a.reader, f.prompt, *f.dst, a.out)
		if err != nil {
			return in, err
		}
		*f.dst = v
	}

	prompt := "Notes (optional)"
	if current.Notes != "" {
		prompt = fmt.Sprintf("Notes (empty keeps the current notes)\n%s", current.Notes)
	}
	notes, err := GetMultiline(a.reader, prompt, a.out)
	if err != nil {
		return in, err
	}
	if notes != "" {
		in.Notes = notes
	}
	return in, nil
}
