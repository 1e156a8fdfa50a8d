package sqlite

import (
	"context"
	"fmt"
)

func (s *Store) Follow(ctx context.Context, follower, followee string) error {
	if follower == followee {
		return ErrSelfFollow
	}
	followerID, err := accountID(ctx, s.DB, follower)
	if err != nil {
		return err
	}
	followeeID, err := accountID(ctx, s.DB, followee)
	if err != nil {
		return err
	}
	if _, err := s.DB.ExecContext(ctx, `
		INSERT OR IGNORE INTO follows (follower_id, followee_id, created_at) VALUES (?, ?, ?)
	`, followerID, followeeID, s.now()); err != nil {
		return fmt.Errorf("insert follow: %w", err)
	}
	return nil
}

func (s *Store) Unfollow(ctx context.Context, follower, followee string) error {
	followeeID, err := accountID(ctx, s.DB, followee)
	if err != nil {
		return err
	}
	_, err = s.DB.ExecContext(ctx, `
		DELETE FROM follows
		WHERE follower_id = (SELECT id FROM accounts WHERE username = ?) AND followee_id = ?
	`, follower, followeeID)
	return err
}

// Relationship reports whether a follows b and whether b follows a.
func (s *Store) Relationship(ctx context.Context, a, b string) (following, followedBy bool, err error) {
	const edge = `EXISTS (
		SELECT 1 FROM follows f
		JOIN accounts x ON x.id = f.follower_id
		JOIN accounts y ON y.id = f.followee_id
		WHERE x.username = ? AND y.username = ?)`
	err = s.DB.QueryRowContext(ctx, `SELECT `+edge+`, `+edge, a, b, b, a).Scan(&following, &followedBy)
	return following, followedBy, err
}

// Following lists the accounts username follows, oldest account first.
func (s *Store) Following(ctx context.Context, username string) ([]Account, error) {
	return s.edges(ctx, username, `
		SELECT `+accountColumns+`
		FROM follows f
		JOIN accounts a ON a.id = f.followee_id
		WHERE f.follower_id = ?
		ORDER BY a.id
	`)
}

// Followers lists the accounts following username, oldest account first.
func (s *Store) Followers(ctx context.Context, username string) ([]Account, error) {
	return s.edges(ctx, username, `
		SELECT `+accountColumns+`
		FROM follows f
		JOIN accounts a ON a.id = f.follower_id
		WHERE f.followee_id = ?
		ORDER BY a.id
	`)
}

func (s *Store) edges(ctx context.Context, username, query string) ([]Account, error) {
	id, err := accountID(ctx, s.DB, username)
	if err != nil {
		return nil, err
	}
	rows, err := s.DB.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("query follows: %w", err)
	}
	defer func() { _ = rows.Close() }()
	out := []Account{}
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
