package cli

import (
	"bytes"
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/contactkeeper/internal/client/client"
	"github.com/dmitrijs2005/contactkeeper/internal/client/models"
)

func loggedInApp(t *testing.T, api *fakeAPI, lines ...string) (*App, *bytes.Buffer) {
	t.Helper()
	a, out := newTestApp(t, api, lines...)
	require.NoError(t, a.store.Save(context.Background(), "T"))
	return a, out
}

func TestDashboard_NotLoggedIn(t *testing.T) {
	api := &fakeAPI{}
	a, out := newTestApp(t, api)

	assert.ErrorIs(t, a.Dashboard(context.Background()), ErrReported)
	assert.Empty(t, api.calls)
	assert.Contains(t, out.String(), "You are not logged in.")
}

func TestDashboard_PrintsSummaryAndChart(t *testing.T) {
	api := &fakeAPI{details: &models.UserDetails{
		Username: "ada", ContactsCount: 12, ListsCount: 2, ProfileViews: 40,
		ChartData: models.ChartData{Labels: []string{"Jan", "Feb"}, Values: []float64{5, 10}},
	}}
	a, out := loggedInApp(t, api)

	require.NoError(t, a.Dashboard(context.Background()))

	s := out.String()
	assert.Contains(t, s, "Welcome, ada!")
	assert.Regexp(t, `Contacts\s+12`, s)
	assert.Regexp(t, `Profile views\s+40`, s)
	assert.Regexp(t, `Feb\s+#{30} 10`, s)
	assert.Regexp(t, `Jan\s+#{15} 5`, s)
}

func TestList(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		a, out := loggedInApp(t, &fakeAPI{contacts: []models.Contact{}})
		require.NoError(t, a.List(context.Background()))
		assert.Contains(t, out.String(), "No contacts yet.")
	})

	t.Run("table", func(t *testing.T) {
		a, out := loggedInApp(t, &fakeAPI{contacts: []models.Contact{
			{ID: "1", FirstName: "Ada", LastName: "Lovelace", PhoneNumber: "+1", Email: "ada@x.io"},
		}})
		require.NoError(t, a.List(context.Background()))
		assert.Regexp(t, `ID\s+NAME\s+PHONE\s+EMAIL`, out.String())
		assert.Regexp(t, `1\s+Ada Lovelace\s+\+1\s+ada@x.io`, out.String())
	})
}

func TestList_ExpiredSessionIsCleared(t *testing.T) {
	api := &fakeAPI{apiErr: &client.AuthError{Status: http.StatusUnauthorized, Message: "jwt expired"}}
	a, out := loggedInApp(t, api)
	ctx := context.Background()

	assert.ErrorIs(t, a.List(ctx), ErrReported)
	assert.Contains(t, out.String(), "Your session has expired.")
	assert.False(t, a.isLoggedIn(ctx))
}

func TestShow(t *testing.T) {
	api := &fakeAPI{contact: &models.Contact{ID: "7", FirstName: "Ada", LastName: "L", PhoneNumber: "+1", Notes: "likes maths"}}
	a, out := loggedInApp(t, api, "7")

	require.NoError(t, a.Show(context.Background(), ""))
	assert.Equal(t, "7", api.lastID)
	assert.Contains(t, out.String(), "Enter contact ID")
	assert.Regexp(t, `Name\s+Ada L`, out.String())
	assert.Contains(t, out.String(), "likes maths")
}

func TestShow_NotFound(t *testing.T) {
	api := &fakeAPI{apiErr: &client.AuthError{Status: http.StatusNotFound, Message: "Contact not found"}}
	a, out := loggedInApp(t, api)

	assert.ErrorIs(t, a.Show(context.Background(), "x"), ErrReported)
	assert.Contains(t, out.String(), "Contact not found")
}

func TestAdd_ValidationErrorsStayLocal(t *testing.T) {
	api := &fakeAPI{}
	// first name, last name, phone, email, address, notes
	a, out := loggedInApp(t, api, "Ada", "", "", "nope", "", "")

	assert.ErrorIs(t, a.Add(context.Background()), ErrReported)
	assert.Empty(t, api.calls)
	s := out.String()
	assert.Contains(t, s, "email: Invalid email address\n")
	assert.Contains(t, s, "lastName: Last name is required\n")
	assert.Contains(t, s, "phoneNumber: Phone number is required\n")
}

func TestAdd_Success(t *testing.T) {
	api := &fakeAPI{}
	a, out := loggedInApp(t, api, "Ada", "Lovelace", "+44", "", "London", "first line", "second line", "")

	require.NoError(t, a.Add(context.Background()))
	assert.Equal(t, models.ContactInput{
		FirstName: "Ada", LastName: "Lovelace", PhoneNumber: "+44",
		Address: "London", Notes: "first line\nsecond line",
	}, api.lastInput)
	assert.Contains(t, out.String(), "Contact created (id c1).")
}

func TestEdit_KeepsAndClearsFields(t *testing.T) {
	api := &fakeAPI{contact: &models.Contact{
		ID: "7", User: "u1", FirstName: "Ada", LastName: "L", PhoneNumber: "+1",
		Email: "ada@x.io", Notes: "old",
	}}
	// keep first, new last, keep phone, clear email, keep address, keep notes
	a, out := loggedInApp(t, api, "", "Lovelace", "", "-", "", "")

	require.NoError(t, a.Edit(context.Background(), "7"))
	assert.Equal(t, "7", api.lastID)
	assert.Equal(t, models.ContactInput{
		FirstName: "Ada", LastName: "Lovelace", PhoneNumber: "+1", Notes: "old",
	}, api.lastInput)
	assert.Contains(t, out.String(), "Contact updated.")
}
