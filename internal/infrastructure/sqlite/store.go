package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/oksasatya/yatter-client/pkg/helpers"
)

var (
	ErrAccountExists   = errors.New("account already exists")
	ErrAccountNotFound = errors.New("account not found")
	ErrStatusNotFound  = errors.New("status not found")
	ErrMediaNotFound   = errors.New("media not found")
	ErrForbidden       = errors.New("forbidden")
	ErrSelfFollow      = errors.New("cannot follow yourself")
)

type Account struct {
	ID           int64
	Username     string
	PasswordHash string
	DisplayName  *string
	Note         *string
	Avatar       string
	Header       string
	CreatedAt    time.Time
}

type Status struct {
	ID        int64
	Author    string
	Content   *string
	MediaIDs  []int64
	CreatedAt time.Time
}

type Media struct {
	ID          int64
	Owner       string
	Type        string
	Filename    string
	ContentType string
	Description string
	Data        []byte
}

// TimelineFilter mirrors the timeline query parameters. Zero values are unset.
type TimelineFilter struct {
	OnlyMedia bool
	MaxID     int64
	SinceID   int64
	Limit     int
}

type AccountUpdate struct {
	DisplayName *string
	Note        *string
	Avatar      *string
	Header      *string
}

type Store struct {
	DB *sql.DB
	// PasswordCost is the bcrypt cost for new accounts; zero means the default.
	PasswordCost int

	now func() time.Time
}

// Open connects to dsn and migrates the schema.
func Open(dsn string) (*Store, error) {
	db, err := openDB(dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := RunMigrations(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{DB: db, now: func() time.Time { return time.Now().UTC() }}, nil
}

// OpenMemory opens a fresh private in-memory store.
func OpenMemory() (*Store, error) {
	return Open(MemoryDSN())
}

func (s *Store) Close() error { return s.DB.Close() }

const accountColumns = `a.id, a.username, a.password_hash, a.display_name, a.note, a.avatar, a.header, a.created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanAccount(row scanner) (Account, error) {
	var (
		a          Account
		name, note sql.NullString
	)
	if err := row.Scan(&a.ID, &a.Username, &a.PasswordHash, &name, &note, &a.Avatar, &a.Header, &a.CreatedAt); err != nil {
		return Account{}, err
	}
	a.DisplayName, a.Note = stringPtr(name), stringPtr(note)
	return a, nil
}

func accountID(ctx context.Context, q querier, username string) (int64, error) {
	var id int64
	err := q.QueryRowContext(ctx, `SELECT id FROM accounts WHERE username = ?`, username).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrAccountNotFound
	}
	return id, err
}

// CreateAccount registers username. Repeating a registration with the same
// password returns the existing account so seeding is idempotent.
func (s *Store) CreateAccount(ctx context.Context, username, password string) (Account, error) {
	existing, err := s.Account(ctx, username)
	switch {
	case err == nil:
		if helpers.PasswordMatches(existing.PasswordHash, password) {
			return existing, nil
		}
		return Account{}, ErrAccountExists
	case !errors.Is(err, ErrAccountNotFound):
		return Account{}, err
	}

	hash, err := helpers.HashPassword(password, s.PasswordCost)
	if err != nil {
		return Account{}, err
	}
	now := s.now()
	res, err := s.DB.ExecContext(ctx, `
		INSERT INTO accounts (username, password_hash, created_at)
		VALUES (?, ?, ?)
	`, username, hash, now)
	if err != nil {
		if isUniqueViolation(err) {
			return Account{}, ErrAccountExists
		}
		return Account{}, fmt.Errorf("insert account: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Account{}, err
	}
	return Account{ID: id, Username: username, PasswordHash: hash, CreatedAt: now}, nil
}

func (s *Store) Account(ctx context.Context, username string) (Account, error) {
	a, err := scanAccount(s.DB.QueryRowContext(ctx, `SELECT `+accountColumns+` FROM accounts a WHERE a.username = ?`, username))
	if errors.Is(err, sql.ErrNoRows) {
		return Account{}, ErrAccountNotFound
	}
	return a, err
}

// UpdateAccount overwrites the fields set in u.
func (s *Store) UpdateAccount(ctx context.Context, username string, u AccountUpdate) (Account, error) {
	res, err := s.DB.ExecContext(ctx, `
		UPDATE accounts SET
			display_name = COALESCE(?, display_name),
			note         = COALESCE(?, note),
			avatar       = COALESCE(?, avatar),
			header       = COALESCE(?, header)
		WHERE username = ?
	`, nullString(u.DisplayName), nullString(u.Note), nullString(u.Avatar), nullString(u.Header), username)
	if err != nil {
		return Account{}, fmt.Errorf("update account: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return Account{}, err
	} else if n == 0 {
		return Account{}, ErrAccountNotFound
	}
	return s.Account(ctx, username)
}

// Counts returns how many accounts username follows and is followed by.
func (s *Store) Counts(ctx context.Context, username string) (following, followers int, err error) {
	err = s.DB.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM follows WHERE follower_id = a.id),
			(SELECT COUNT(*) FROM follows WHERE followee_id = a.id)
		FROM accounts a
		WHERE a.username = ?
	`, username).Scan(&following, &followers)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, 0, ErrAccountNotFound
	}
	return following, followers, err
}

func (s *Store) AddMedia(ctx context.Context, owner string, m Media) (Media, error) {
	ownerID, err := accountID(ctx, s.DB, owner)
	if err != nil {
		return Media{}, err
	}
	res, err := s.DB.ExecContext(ctx, `
		INSERT INTO media (account_id, type, filename, content_type, description, data)
		VALUES (?, ?, ?, ?, ?, ?)
	`, ownerID, m.Type, m.Filename, m.ContentType, m.Description, m.Data)
	if err != nil {
		return Media{}, fmt.Errorf("insert media: %w", err)
	}
	if m.ID, err = res.LastInsertId(); err != nil {
		return Media{}, err
	}
	m.Owner = owner
	return m, nil
}

func (s *Store) Media(ctx context.Context, id int64) (Media, error) {
	var m Media
	err := s.DB.QueryRowContext(ctx, `
		SELECT m.id, a.username, m.type, m.filename, m.content_type, m.description, m.data
		FROM media m
		JOIN accounts a ON a.id = m.account_id
		WHERE m.id = ?
	`, id).Scan(&m.ID, &m.Owner, &m.Type, &m.Filename, &m.ContentType, &m.Description, &m.Data)
	if errors.Is(err, sql.ErrNoRows) {
		return Media{}, ErrMediaNotFound
	}
	return m, err
}

// FormatID renders ids the way the API sends them.
func FormatID(id int64) string { return strconv.FormatInt(id, 10) }
