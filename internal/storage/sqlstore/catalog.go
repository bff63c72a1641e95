package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mcoot/gamestore/internal/model"
)

const summaryOrder = ` ORDER BY game_name, game_id`

func (s *Store) ListGames(ctx context.Context) ([]model.GameSummary, error) {
	return s.listSummaries(ctx, "list games",
		`SELECT game_id, game_name, price FROM games`+summaryOrder)
}

func (s *Store) ListGamesByPublisher(ctx context.Context, id model.PublisherID) ([]model.GameSummary, error) {
	return s.listSummaries(ctx, "list games by publisher",
		`SELECT game_id, game_name, price FROM games WHERE publisher_id = ?`+summaryOrder, int64(id))
}

func (s *Store) ListGamesByDeveloper(ctx context.Context, id model.DeveloperID) ([]model.GameSummary, error) {
	return s.listSummaries(ctx, "list games by developer",
		`SELECT game_id, game_name, price FROM games WHERE dev_id = ?`+summaryOrder, int64(id))
}

func (s *Store) SearchGames(ctx context.Context, query string) ([]model.GameSummary, error) {
	pattern := "%" + likeEscaper.Replace(strings.ToLower(query)) + "%"
	return s.listSummaries(ctx, "search games",
		`SELECT game_id, game_name, price FROM games WHERE LOWER(game_name) LIKE ? ESCAPE '\'`+summaryOrder, pattern)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (s *Store) listSummaries(ctx context.Context, op, query string, args ...any) ([]model.GameSummary, error) {
	games := []model.GameSummary{}
	err := s.withConn(ctx, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, s.q(query), args...)
		if err != nil {
			return err
		}
		defer func() { _ = rows.Close() }()

		for rows.Next() {
			var (
				g  model.GameSummary
				id int64
			)
			if err := rows.Scan(&id, &g.Name, &g.Price); err != nil {
				return err
			}
			g.ID = model.GameID(id)
			games = append(games, g)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return games, nil
}

func (s *Store) GetGameDetail(ctx context.Context, id model.GameID) (*model.GameDetail, error) {
	var (
		detail        model.GameDetail
		gameID        int64
		description   sql.NullString
		ageRating     sql.NullString
		releaseDate   nullTime
		publisherID   sql.NullInt64
		publisherName sql.NullString
		developerID   sql.NullInt64
		developerName sql.NullString
	)
	err := s.withConn(ctx, func(conn *sql.Conn) error {
		return conn.QueryRowContext(ctx, s.q(`
SELECT g.game_id, g.game_name, g.description, g.release_date, g.price, g.age_rating,
       g.publisher_id, p.publisher_name, g.dev_id, d.studio
FROM games g
LEFT JOIN publishers p ON g.publisher_id = p.publisher_id
LEFT JOIN developers d ON g.dev_id = d.dev_id
WHERE g.game_id = ?`), int64(id)).Scan(
			&gameID, &detail.Name, &description, &releaseDate, &detail.Price, &ageRating,
			&publisherID, &publisherName, &developerID, &developerName,
		)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrGameNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get game detail: %w", err)
	}

	detail.ID = model.GameID(gameID)
	detail.Description = description.String
	detail.AgeRating = ageRating.String
	detail.ReleaseDate = releaseDate.ptr()
	detail.PublisherID = idPtr[model.PublisherID](publisherID)
	detail.PublisherName = stringPtr(publisherName)
	detail.DeveloperID = idPtr[model.DeveloperID](developerID)
	detail.DeveloperName = stringPtr(developerName)
	return &detail, nil
}

// Catalog writes

func (s *Store) SavePublisher(ctx context.Context, p *model.Publisher) (model.PublisherID, error) {
	id, err := s.insertReturningID(ctx,
		`INSERT INTO publishers (publisher_name) VALUES (?) RETURNING publisher_id`, p.Name)
	if err != nil {
		return 0, fmt.Errorf("save publisher: %w", err)
	}
	return model.PublisherID(id), nil
}

func (s *Store) SaveDeveloper(ctx context.Context, d *model.Developer) (model.DeveloperID, error) {
	id, err := s.insertReturningID(ctx,
		`INSERT INTO developers (studio) VALUES (?) RETURNING dev_id`, d.Studio)
	if err != nil {
		return 0, fmt.Errorf("save developer: %w", err)
	}
	return model.DeveloperID(id), nil
}

func (s *Store) SaveGame(ctx context.Context, g *model.Game) (model.GameID, error) {
	id, err := s.insertReturningID(ctx, `
INSERT INTO games (game_name, description, release_date, price, age_rating, publisher_id, dev_id)
VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING game_id`,
		g.Name, g.Description, dateArg(g.ReleaseDate), g.Price, g.AgeRating,
		nullableID(g.PublisherID), nullableID(g.DeveloperID),
	)
	if err != nil {
		return 0, fmt.Errorf("save game: %w", err)
	}
	return model.GameID(id), nil
}

func (s *Store) insertReturningID(ctx context.Context, query string, args ...any) (int64, error) {
	var id int64
	err := s.withConn(ctx, func(conn *sql.Conn) error {
		return conn.QueryRowContext(ctx, s.q(query), args...).Scan(&id)
	})
	return id, err
}
