package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

const statusColumns = `s.id, a.username, s.content, s.created_at`

func scanStatus(row scanner) (Status, error) {
	var (
		st      Status
		content sql.NullString
	)
	if err := row.Scan(&st.ID, &st.Author, &content, &st.CreatedAt); err != nil {
		return Status{}, err
	}
	st.Content = stringPtr(content)
	return st, nil
}

// CreateStatus posts content by author. Every media id must belong to author.
func (s *Store) CreateStatus(ctx context.Context, author string, content *string, mediaIDs []int64) (Status, error) {
	st := Status{Author: author, Content: content, CreatedAt: s.now()}
	err := withTx(ctx, s.DB, func(tx *sql.Tx) error {
		authorID, err := accountID(ctx, tx, author)
		if err != nil {
			return err
		}
		for _, id := range mediaIDs {
			var ownerID int64
			err := tx.QueryRowContext(ctx, `SELECT account_id FROM media WHERE id = ?`, id).Scan(&ownerID)
			if errors.Is(err, sql.ErrNoRows) {
				return ErrMediaNotFound
			}
			if err != nil {
				return err
			}
			if ownerID != authorID {
				return ErrForbidden
			}
		}

		res, err := tx.ExecContext(ctx, `
			INSERT INTO statuses (account_id, content, created_at)
			VALUES (?, ?, ?)
		`, authorID, nullString(content), st.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert status: %w", err)
		}
		if st.ID, err = res.LastInsertId(); err != nil {
			return err
		}
		for pos, id := range mediaIDs {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO status_media (status_id, position, media_id) VALUES (?, ?, ?)
			`, st.ID, pos, id); err != nil {
				return fmt.Errorf("attach media: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return Status{}, err
	}
	st.MediaIDs = append([]int64(nil), mediaIDs...)
	return st, nil
}

func (s *Store) Status(ctx context.Context, id int64) (Status, error) {
	st, err := scanStatus(s.DB.QueryRowContext(ctx, `
		SELECT `+statusColumns+`
		FROM statuses s
		JOIN accounts a ON a.id = s.account_id
		WHERE s.id = ?
	`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Status{}, ErrStatusNotFound
	}
	if err != nil {
		return Status{}, err
	}
	out := []Status{st}
	if err := s.attachMedia(ctx, out); err != nil {
		return Status{}, err
	}
	return out[0], nil
}

func (s *Store) DeleteStatus(ctx context.Context, author string, id int64) error {
	return withTx(ctx, s.DB, func(tx *sql.Tx) error {
		var owner string
		err := tx.QueryRowContext(ctx, `
			SELECT a.username FROM statuses s JOIN accounts a ON a.id = s.account_id WHERE s.id = ?
		`, id).Scan(&owner)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrStatusNotFound
		}
		if err != nil {
			return err
		}
		if owner != author {
			return ErrForbidden
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM status_media WHERE status_id = ?`, id); err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `DELETE FROM statuses WHERE id = ?`, id)
		return err
	})
}

// PublicTimeline returns statuses newest first.
func (s *Store) PublicTimeline(ctx context.Context, f TimelineFilter) ([]Status, error) {
	return s.timeline(ctx, "", f)
}

// HomeTimeline returns statuses by username and the accounts it follows.
func (s *Store) HomeTimeline(ctx context.Context, username string, f TimelineFilter) ([]Status, error) {
	if username == "" {
		return []Status{}, nil
	}
	return s.timeline(ctx, username, f)
}

// timeline scopes to username's home when it is non-empty.
func (s *Store) timeline(ctx context.Context, username string, f TimelineFilter) ([]Status, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = -1 // no limit
	}
	onlyMedia := 0
	if f.OnlyMedia {
		onlyMedia = 1
	}
	rows, err := s.DB.QueryContext(ctx, `
		SELECT `+statusColumns+`
		FROM statuses s
		JOIN accounts a ON a.id = s.account_id
		WHERE (? = 0 OR s.id < ?)
		  AND (? = 0 OR s.id > ?)
		  AND (? = 0 OR EXISTS (SELECT 1 FROM status_media sm WHERE sm.status_id = s.id))
		  AND (? = '' OR a.username = ? OR s.account_id IN (
		        SELECT f.followee_id
		        FROM follows f
		        JOIN accounts fa ON fa.id = f.follower_id
		        WHERE fa.username = ?))
		ORDER BY s.id DESC
		LIMIT ?
	`, f.MaxID, f.MaxID, f.SinceID, f.SinceID, onlyMedia, username, username, username, limit)
	if err != nil {
		return nil, fmt.Errorf("query timeline: %w", err)
	}
	out := []Status{}
	for rows.Next() {
		st, err := scanStatus(rows)
		if err != nil {
			_ = rows.Close()
			return nil, err
		}
		out = append(out, st)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	_ = rows.Close()

	if err := s.attachMedia(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

// attachMedia fills MediaIDs in attachment order. Rows must be closed before
// calling, since the pool has one connection.
func (s *Store) attachMedia(ctx context.Context, ss []Status) error {
	if len(ss) == 0 {
		return nil
	}
	index := make(map[int64]int, len(ss))
	args := make([]any, 0, len(ss))
	for i, st := range ss {
		index[st.ID] = i
		args = append(args, st.ID)
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ss)), ",")
	rows, err := s.DB.QueryContext(ctx, `
		SELECT status_id, media_id FROM status_media
		WHERE status_id IN (`+placeholders+`)
		ORDER BY status_id, position
	`, args...)
	if err != nil {
		return fmt.Errorf("query status media: %w", err)
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var statusID, mediaID int64
		if err := rows.Scan(&statusID, &mediaID); err != nil {
			return err
		}
		i := index[statusID]
		ss[i].MediaIDs = append(ss[i].MediaIDs, mediaID)
	}
	return rows.Err()
}
