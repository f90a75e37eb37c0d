package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/hatembr/identity-api/internal/domain"
	"github.com/hatembr/identity-api/internal/platform/logger"
	"github.com/hatembr/identity-api/internal/store"
)

// PostgresUserStore implements the store.UserStore interface using a
// PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the
// UserStore interface. The connection (or transaction) is managed by the
// caller. If logger is nil, the default logger is used.
func NewPostgresUserStore(db store.DBTX, logger *slog.Logger) *PostgresUserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresUserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

const userColumns = "id, first_name, last_name, image_url, email, phone, credential_id"

// FindAll implements store.UserStore.FindAll.
func (s *PostgresUserStore) FindAll(ctx context.Context) ([]*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users ORDER BY id")
	if err != nil {
		log.Error("failed to list users", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var users []*domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, MapError(err)
		}
		users = append(users, user)
	}
	return users, MapError(rows.Err())
}

// FindByID implements store.UserStore.FindByID.
func (s *PostgresUserStore) FindByID(ctx context.Context, id int) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	row := s.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = $1", id)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found", slog.Int("user_id", id))
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user by id",
			slog.String("error", err.Error()), slog.Int("user_id", id))
		return nil, MapError(err)
	}
	return user, nil
}

// FindByUsername implements store.UserStore.FindByUsername. The lookup goes
// through the credential side of the 1:1 relation.
func (s *PostgresUserStore) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	row := s.db.QueryRowContext(ctx, `
		SELECT u.id, u.first_name, u.last_name, u.image_url, u.email, u.phone, u.credential_id
		FROM users u
		JOIN credentials c ON c.user_id = u.id
		WHERE c.username = $1`, username)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found by username", slog.String("username", username))
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user by username",
			slog.String("error", err.Error()), slog.String("username", username))
		return nil, MapError(err)
	}
	return user, nil
}

// ExistsByID implements store.UserStore.ExistsByID.
func (s *PostgresUserStore) ExistsByID(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)", id).Scan(&exists)
	if err != nil {
		return false, MapError(err)
	}
	return exists, nil
}

// Save implements store.UserStore.Save. The store assigns the id.
func (s *PostgresUserStore) Save(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during save", slog.String("error", err.Error()))
		return err
	}

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO users (first_name, last_name, image_url, email, phone, credential_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		user.FirstName, user.LastName, user.ImageURL, user.Email, user.Phone,
		user.CredentialID,
	).Scan(&user.ID)
	if err != nil {
		log.Error("failed to save user", slog.String("error", err.Error()))
		return MapError(err)
	}

	log.Info("user saved", slog.Int("user_id", user.ID))
	return nil
}

// Update implements store.UserStore.Update. It overwrites the row including
// the credential back-pointer, which the service layer keeps in agreement
// with the credential row's user_id.
func (s *PostgresUserStore) Update(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during update",
			slog.String("error", err.Error()), slog.Int("user_id", user.ID))
		return err
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE users
		SET first_name = $1, last_name = $2, image_url = $3, email = $4,
		    phone = $5, credential_id = $6
		WHERE id = $7`,
		user.FirstName, user.LastName, user.ImageURL, user.Email, user.Phone,
		user.CredentialID, user.ID,
	)
	if err != nil {
		log.Error("failed to update user",
			slog.String("error", err.Error()), slog.Int("user_id", user.ID))
		return MapError(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if affected == 0 {
		return store.ErrUserNotFound
	}
	return nil
}

// Delete implements store.UserStore.Delete.
func (s *PostgresUserStore) Delete(ctx context.Context, id int) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	res, err := s.db.ExecContext(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		log.Error("failed to delete user",
			slog.String("error", err.Error()), slog.Int("user_id", id))
		return MapError(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if affected == 0 {
		return store.ErrUserNotFound
	}

	log.Info("user deleted", slog.Int("user_id", id))
	return nil
}

// WithTx implements store.UserStore.WithTx.
func (s *PostgresUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return &PostgresUserStore{db: tx, logger: s.logger}
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanUser(sc scanner) (*domain.User, error) {
	var user domain.User
	var credentialID sql.NullInt64
	err := sc.Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.ImageURL,
		&user.Email,
		&user.Phone,
		&credentialID,
	)
	if err != nil {
		return nil, err
	}
	if credentialID.Valid {
		id := int(credentialID.Int64)
		user.CredentialID = &id
	}
	return &user, nil
}
