package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mcoot/gamestore/internal/model"
)

func (s *Store) AddLibraryEntry(ctx context.Context, entry model.LibraryEntry) error {
	err := s.withConn(ctx, func(conn *sql.Conn) error {
		_, err := conn.ExecContext(ctx,
			s.q(`INSERT INTO user_library (user_id, game_id, purchase_date) VALUES (?, ?, ?)`),
			int64(entry.UserID), int64(entry.GameID), entry.PurchasedAt.UTC(),
		)
		return err
	})
	switch {
	case err == nil:
		return nil
	case isUniqueViolation(err):
		return model.ErrAlreadyOwned
	case isForeignKeyViolation(err):
		return s.missingReference(ctx, entry)
	default:
		return fmt.Errorf("add library entry: %w", err)
	}
}

// missingReference tells apart the two foreign keys of user_library after an
// insert was rejected.
func (s *Store) missingReference(ctx context.Context, entry model.LibraryEntry) error {
	if _, err := s.GetUser(ctx, entry.UserID); err != nil {
		return err
	}
	return model.ErrGameNotFound
}

func (s *Store) ListLibrary(ctx context.Context, userID model.UserID) ([]model.LibraryItem, error) {
	items := []model.LibraryItem{}
	err := s.withConn(ctx, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, s.q(`
SELECT g.game_id, g.game_name, g.price, l.purchase_date
FROM user_library l
JOIN games g ON g.game_id = l.game_id
WHERE l.user_id = ?
ORDER BY g.game_name, g.game_id`), int64(userID))
		if err != nil {
			return err
		}
		defer func() { _ = rows.Close() }()

		for rows.Next() {
			var (
				item        model.LibraryItem
				id          int64
				purchasedAt nullTime
			)
			if err := rows.Scan(&id, &item.Game.Name, &item.Game.Price, &purchasedAt); err != nil {
				return err
			}
			item.Game.ID = model.GameID(id)
			item.PurchasedAt = purchasedAt.Time
			items = append(items, item)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("list library: %w", err)
	}
	return items, nil
}
