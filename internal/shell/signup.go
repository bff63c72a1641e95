package shell

import (
	"context"

	"github.com/mcoot/gamestore/internal/model"
	"github.com/mcoot/gamestore/internal/navigator"
	"github.com/mcoot/gamestore/internal/services/storefront"
)

// SignupView registers a new account and returns to login
type SignupView struct {
	store Storefront
	term  *Terminal
}

func (v *SignupView) Run(ctx context.Context, _ *navigator.Controller) (navigator.ViewID, error) {
	v.term.println()
	v.term.println("== Sign Up ==")
	for {
		username, err := v.term.prompt("Username (blank to go back): ")
		if err != nil {
			return navigator.ViewSignup, err
		}
		if username == "" {
			return navigator.ViewLogin, nil
		}

		var in storefront.RegisterInput
		in.Username = username
		if in.Email, err = v.term.prompt("Email: "); err != nil {
			return navigator.ViewSignup, err
		}
		if in.Password, err = v.term.prompt("Password: "); err != nil {
			return navigator.ViewSignup, err
		}
		if in.DOB, err = v.term.prompt("Date of birth (YYYY-MM-DD, optional): "); err != nil {
			return navigator.ViewSignup, err
		}

		if _, err := v.store.Register(ctx, in); err != nil {
			v.term.println("Registration failed:", model.UserMessage(err))
			continue
		}
		v.term.println(storefront.MsgRegistered)
		return navigator.ViewLogin, nil
	}
}
