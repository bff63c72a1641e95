package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mcoot/gamestore/internal/model"
)

const userColumns = `user_id, user_name, email, password, dob`

func (s *Store) CreateUser(ctx context.Context, user *model.User) (model.UserID, error) {
	var id int64
	err := s.withConn(ctx, func(conn *sql.Conn) error {
		return conn.QueryRowContext(ctx,
			s.q(`INSERT INTO users (user_name, email, password, dob) VALUES (?, ?, ?, ?) RETURNING user_id`),
			user.Name, user.Email, user.PasswordHash, dateArg(user.DOB),
		).Scan(&id)
	})
	if err != nil {
		if isUniqueViolation(err) {
			return 0, model.ErrDuplicateEmail
		}
		return 0, fmt.Errorf("create user: %w", err)
	}
	return model.UserID(id), nil
}

func (s *Store) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	return s.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE user_id = ?`, int64(id))
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
}

func (s *Store) getUser(ctx context.Context, query string, arg any) (*model.User, error) {
	var (
		user model.User
		id   int64
		dob  nullTime
	)
	err := s.withConn(ctx, func(conn *sql.Conn) error {
		return conn.QueryRowContext(ctx, s.q(query), arg).
			Scan(&id, &user.Name, &user.Email, &user.PasswordHash, &dob)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	user.ID = model.UserID(id)
	user.DOB = dob.ptr()
	return &user, nil
}
