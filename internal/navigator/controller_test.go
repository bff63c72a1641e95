package navigator

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/gamestore/internal/model"
)

// scriptedView replays a fixed list of steps, one per Run call
type scriptedView struct {
	steps []func(c *Controller) (ViewID, error)
	runs  int
}

func (v *scriptedView) Run(_ context.Context, c *Controller) (ViewID, error) {
	if v.runs >= len(v.steps) {
		return 0, ErrQuit
	}
	step := v.steps[v.runs]
	v.runs++
	return step(c)
}

func goTo(id ViewID) func(*Controller) (ViewID, error) {
	return func(*Controller) (ViewID, error) { return id, nil }
}

var alice = model.SessionUser{ID: 1, Name: "alice"}

func newController(t *testing.T, login, signup, catalog View) *Controller {
	t.Helper()
	c, err := New(Table{ViewLogin: login, ViewSignup: signup, ViewCatalog: catalog})
	require.NoError(t, err)
	return c
}

func TestNewRequiresEveryView(t *testing.T) {
	_, err := New(Table{ViewLogin: &scriptedView{}, ViewCatalog: &scriptedView{}})
	assert.ErrorIs(t, err, ErrMissingView)
	assert.ErrorContains(t, err, "signup")
}

func TestInitialState(t *testing.T) {
	c := newController(t, &scriptedView{}, &scriptedView{}, &scriptedView{})
	assert.Equal(t, LoggedOut, c.State())
	assert.Equal(t, ViewLogin, c.Active())
	_, ok := c.CurrentUser()
	assert.False(t, ok)
}

func TestLoginAndLogout(t *testing.T) {
	c := newController(t, &scriptedView{}, &scriptedView{}, &scriptedView{})

	require.NoError(t, c.Login(alice))
	assert.Equal(t, LoggedIn, c.State())
	user, ok := c.CurrentUser()
	assert.True(t, ok)
	assert.Equal(t, alice, user)

	assert.ErrorIs(t, c.Login(model.SessionUser{ID: 2, Name: "bob"}), ErrAlreadyLoggedIn)

	c.Logout()
	assert.Equal(t, LoggedOut, c.State())
	c.Logout()
	assert.Equal(t, LoggedOut, c.State())
}

func TestNavigateCatalogRequiresLogin(t *testing.T) {
	c := newController(t, &scriptedView{}, &scriptedView{}, &scriptedView{})

	assert.Equal(t, ViewLogin, c.Navigate(ViewCatalog))

	require.NoError(t, c.Login(alice))
	assert.Equal(t, ViewCatalog, c.Navigate(ViewCatalog))
	assert.Equal(t, LoggedIn, c.State())
}

func TestNavigateAwayFromCatalogLogsOut(t *testing.T) {
	c := newController(t, &scriptedView{}, &scriptedView{}, &scriptedView{})
	require.NoError(t, c.Login(alice))

	assert.Equal(t, ViewSignup, c.Navigate(ViewSignup))
	assert.Equal(t, LoggedOut, c.State())
}

func TestNavigateUnknownViewShowsLogin(t *testing.T) {
	c := newController(t, &scriptedView{}, &scriptedView{}, &scriptedView{})
	assert.Equal(t, ViewLogin, c.Navigate(ViewID(42)))
	assert.Equal(t, "view(42)", ViewID(42).String())
}

func TestRunFullFlow(t *testing.T) {
	login := &scriptedView{steps: []func(*Controller) (ViewID, error){
		goTo(ViewSignup),
		func(c *Controller) (ViewID, error) {
			return ViewCatalog, c.Login(alice)
		},
		func(*Controller) (ViewID, error) { return 0, ErrQuit },
	}}
	signup := &scriptedView{steps: []func(*Controller) (ViewID, error){goTo(ViewLogin)}}
	var seenUser model.SessionUser
	catalog := &scriptedView{steps: []func(*Controller) (ViewID, error){
		func(c *Controller) (ViewID, error) {
			seenUser, _ = c.CurrentUser()
			c.Logout()
			return ViewLogin, nil
		},
	}}
	c := newController(t, login, signup, catalog)

	require.NoError(t, c.Run(context.Background()))

	assert.Equal(t, 3, login.runs)
	assert.Equal(t, 1, signup.runs)
	assert.Equal(t, 1, catalog.runs)
	assert.Equal(t, alice, seenUser)
	assert.Equal(t, LoggedOut, c.State())
}

func TestRunRedirectsCatalogWhenLoggedOut(t *testing.T) {
	login := &scriptedView{steps: []func(*Controller) (ViewID, error){
		goTo(ViewCatalog),
		func(*Controller) (ViewID, error) { return 0, ErrQuit },
	}}
	catalog := &scriptedView{}
	c := newController(t, login, &scriptedView{}, catalog)

	require.NoError(t, c.Run(context.Background()))
	assert.Equal(t, 2, login.runs)
	assert.Equal(t, 0, catalog.runs)
}

func TestRunStopsOnEOF(t *testing.T) {
	login := &scriptedView{steps: []func(*Controller) (ViewID, error){
		func(*Controller) (ViewID, error) { return 0, io.EOF },
	}}
	c := newController(t, login, &scriptedView{}, &scriptedView{})
	assert.NoError(t, c.Run(context.Background()))
}

func TestRunReturnsViewErrors(t *testing.T) {
	boom := errors.New("boom")
	login := &scriptedView{steps: []func(*Controller) (ViewID, error){
		func(*Controller) (ViewID, error) { return 0, boom },
	}}
	c := newController(t, login, &scriptedView{}, &scriptedView{})

	err := c.Run(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "login view")
}

func TestRunHonoursCancelledContext(t *testing.T) {
	login := &scriptedView{steps: []func(*Controller) (ViewID, error){goTo(ViewLogin)}}
	c := newController(t, login, &scriptedView{}, &scriptedView{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, c.Run(ctx), context.Canceled)
	assert.Equal(t, 0, login.runs)
}
