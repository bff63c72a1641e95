// Package navigator holds the single session of an interactive client and
// switches between its views.
package navigator

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/mcoot/gamestore/internal/model"
)

// ViewID identifies a view. The set is closed.
type ViewID int

const (
	ViewLogin ViewID = iota
	ViewSignup
	ViewCatalog

	numViews
)

func (v ViewID) String() string {
	switch v {
	case ViewLogin:
		return "login"
	case ViewSignup:
		return "signup"
	case ViewCatalog:
		return "catalog"
	default:
		return fmt.Sprintf("view(%d)", int(v))
	}
}

func (v ViewID) valid() bool {
	return v >= 0 && v < numViews
}

// State is the session state of a Controller
type State int

const (
	LoggedOut State = iota
	LoggedIn
)

func (s State) String() string {
	if s == LoggedIn {
		return "logged in"
	}
	return "logged out"
}

// Errors
var (
	// ErrQuit is returned by a view to end Run without error
	ErrQuit = errors.New("quit")

	ErrAlreadyLoggedIn = errors.New("already logged in")
	ErrMissingView     = errors.New("view not registered")
)

// View is one screen of the client. Run drives the view until it wants
// another view shown, and returns that view's ID.
type View interface {
	Run(ctx context.Context, c *Controller) (ViewID, error)
}

// Table maps every ViewID to its View
type Table [numViews]View

// Controller owns the session of one interactive client
type Controller struct {
	views  Table
	active ViewID
	user   *model.SessionUser
}

// New creates a Controller in the LoggedOut state showing the login view.
// Every slot of views must be filled.
func New(views Table) (*Controller, error) {
	for id, view := range views {
		if view == nil {
			return nil, fmt.Errorf("%w: %s", ErrMissingView, ViewID(id))
		}
	}
	return &Controller{views: views, active: ViewLogin}, nil
}

// State reports whether a user is logged in
func (c *Controller) State() State {
	if c.user == nil {
		return LoggedOut
	}
	return LoggedIn
}

// CurrentUser returns the logged in user, if any
func (c *Controller) CurrentUser() (model.SessionUser, bool) {
	if c.user == nil {
		return model.SessionUser{}, false
	}
	return *c.user, true
}

// Login records user as the session identity. Only one user can be logged in
// at a time.
func (c *Controller) Login(user model.SessionUser) error {
	if c.user != nil {
		return ErrAlreadyLoggedIn
	}
	c.user = &user
	return nil
}

// Logout clears the session. Logging out twice is a no-op.
func (c *Controller) Logout() {
	c.user = nil
}

// Active returns the view currently shown
func (c *Controller) Active() ViewID {
	return c.active
}

// Navigate activates the requested view and returns the one actually shown.
// The catalog needs a logged in user and falls back to login; the login and
// signup views end any current session. Unknown IDs show login.
func (c *Controller) Navigate(to ViewID) ViewID {
	switch {
	case !to.valid():
		to = ViewLogin
	case to == ViewCatalog && c.user == nil:
		to = ViewLogin
	}
	if to != ViewCatalog {
		c.Logout()
	}
	c.active = to
	return to
}

// Run drives the active view, switching views as they ask, until a view
// returns ErrQuit or io.EOF, another error, or ctx is done.
func (c *Controller) Run(ctx context.Context) error {
	c.Navigate(c.active)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		next, err := c.views[c.active].Run(ctx, c)
		if errors.Is(err, ErrQuit) || errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%s view: %w", c.active, err)
		}
		c.Navigate(next)
	}
}
