package shell

import (
	"context"
	"strings"

	"github.com/mcoot/gamestore/internal/model"
	"github.com/mcoot/gamestore/internal/navigator"
	"github.com/mcoot/gamestore/internal/services/storefront"
)

// LoginView asks for credentials and logs the user in
type LoginView struct {
	store Storefront
	term  *Terminal
}

func (v *LoginView) Run(ctx context.Context, c *navigator.Controller) (navigator.ViewID, error) {
	v.term.println()
	v.term.println("== Login ==")
	for {
		choice, err := v.term.prompt("[l]ogin, [s]ign up or [q]uit: ")
		if err != nil {
			return navigator.ViewLogin, err
		}
		switch strings.ToLower(choice) {
		case "l", "login":
			ok, err := v.login(ctx, c)
			if err != nil {
				return navigator.ViewLogin, err
			}
			if ok {
				return navigator.ViewCatalog, nil
			}
		case "s", "signup", "sign up":
			return navigator.ViewSignup, nil
		case "q", "quit":
			return navigator.ViewLogin, navigator.ErrQuit
		case "":
		default:
			v.term.printf("Unknown choice %q.\n", choice)
		}
	}
}

func (v *LoginView) login(ctx context.Context, c *navigator.Controller) (bool, error) {
	email, err := v.term.prompt("Email: ")
	if err != nil {
		return false, err
	}
	password, err := v.term.prompt("Password: ")
	if err != nil {
		return false, err
	}

	user, err := v.store.Login(ctx, email, password)
	if err != nil {
		v.term.println("Login failed:", model.UserMessage(err))
		return false, nil
	}
	if err := c.Login(user); err != nil {
		return false, err
	}
	v.term.println(storefront.MsgLoggedIn)
	v.term.printf("Welcome, %s!\n", user.Name)
	return true, nil
}
