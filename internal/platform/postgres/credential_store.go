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

// PostgresCredentialStore implements the store.CredentialStore interface
// using a PostgreSQL database as the storage backend.
type PostgresCredentialStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCredentialStore creates a new PostgreSQL implementation of the
// CredentialStore interface.
func NewPostgresCredentialStore(db store.DBTX, logger *slog.Logger) *PostgresCredentialStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresCredentialStore{
		db:     db,
		logger: logger.With(slog.String("component", "credential_store")),
	}
}

// Ensure PostgresCredentialStore implements store.CredentialStore interface
var _ store.CredentialStore = (*PostgresCredentialStore)(nil)

const credentialColumns = "id, username, password, role, is_enabled, " +
	"is_account_non_expired, is_account_non_locked, is_credentials_non_expired, user_id"

// FindAll implements store.CredentialStore.FindAll.
func (s *PostgresCredentialStore) FindAll(ctx context.Context) ([]*domain.Credential, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx,
		"SELECT "+credentialColumns+" FROM credentials ORDER BY id")
	if err != nil {
		log.Error("failed to list credentials", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var creds []*domain.Credential
	for rows.Next() {
		cred, err := scanCredential(rows)
		if err != nil {
			return nil, MapError(err)
		}
		creds = append(creds, cred)
	}
	return creds, MapError(rows.Err())
}

// FindByID implements store.CredentialStore.FindByID.
func (s *PostgresCredentialStore) FindByID(ctx context.Context, id int) (*domain.Credential, error) {
	return s.findOne(ctx, "SELECT "+credentialColumns+" FROM credentials WHERE id = $1", id)
}

// FindByUsername implements store.CredentialStore.FindByUsername.
func (s *PostgresCredentialStore) FindByUsername(ctx context.Context, username string) (*domain.Credential, error) {
	return s.findOne(ctx, "SELECT "+credentialColumns+" FROM credentials WHERE username = $1", username)
}

// FindByUserID implements store.CredentialStore.FindByUserID.
func (s *PostgresCredentialStore) FindByUserID(ctx context.Context, userID int) (*domain.Credential, error) {
	return s.findOne(ctx, "SELECT "+credentialColumns+" FROM credentials WHERE user_id = $1", userID)
}

func (s *PostgresCredentialStore) findOne(ctx context.Context, query string, arg any) (*domain.Credential, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	cred, err := scanCredential(s.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrCredentialNotFound
		}
		log.Error("failed to get credential", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	return cred, nil
}

// ExistsByUsername implements store.CredentialStore.ExistsByUsername.
func (s *PostgresCredentialStore) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM credentials WHERE username = $1)", username).Scan(&exists)
	if err != nil {
		return false, MapError(err)
	}
	return exists, nil
}

// ExistsByUserID implements store.CredentialStore.ExistsByUserID.
func (s *PostgresCredentialStore) ExistsByUserID(ctx context.Context, userID int) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM credentials WHERE user_id = $1)", userID).Scan(&exists)
	if err != nil {
		return false, MapError(err)
	}
	return exists, nil
}

// Save implements store.CredentialStore.Save. The unique indexes on
// username and user_id back up the service-level checks.
func (s *PostgresCredentialStore) Save(ctx context.Context, cred *domain.Credential) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := cred.Validate(); err != nil {
		log.Warn("credential validation failed during save", slog.String("error", err.Error()))
		return err
	}

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO credentials (username, password, role, is_enabled,
			is_account_non_expired, is_account_non_locked,
			is_credentials_non_expired, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		cred.Username, cred.Password, cred.Role, cred.Enabled,
		cred.AccountNonExpired, cred.AccountNonLocked,
		cred.CredentialsNonExpired, cred.UserID,
	).Scan(&cred.ID)
	if err != nil {
		if isUniqueViolationOn(err, "username") {
			log.Warn("username collision during credential save",
				slog.String("username", cred.Username))
			return store.ErrUsernameExists
		}
		log.Error("failed to save credential",
			slog.String("error", err.Error()),
			slog.String("username", cred.Username),
			slog.Int("user_id", cred.UserID))
		return MapError(err)
	}

	log.Info("credential saved",
		slog.Int("credential_id", cred.ID), slog.Int("user_id", cred.UserID))
	return nil
}

// Update implements store.CredentialStore.Update. user_id is deliberately
// absent from the statement: the owning user is immutable.
func (s *PostgresCredentialStore) Update(ctx context.Context, cred *domain.Credential) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	res, err := s.db.ExecContext(ctx, `
		UPDATE credentials
		SET username = $1, password = $2, role = $3, is_enabled = $4,
		    is_account_non_expired = $5, is_account_non_locked = $6,
		    is_credentials_non_expired = $7
		WHERE id = $8`,
		cred.Username, cred.Password, cred.Role, cred.Enabled,
		cred.AccountNonExpired, cred.AccountNonLocked,
		cred.CredentialsNonExpired, cred.ID,
	)
	if err != nil {
		if isUniqueViolationOn(err, "username") {
			return store.ErrUsernameExists
		}
		log.Error("failed to update credential",
			slog.String("error", err.Error()), slog.Int("credential_id", cred.ID))
		return MapError(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if affected == 0 {
		return store.ErrCredentialNotFound
	}
	return nil
}

// Delete implements store.CredentialStore.Delete. Owned verification tokens
// go with the row via ON DELETE CASCADE.
func (s *PostgresCredentialStore) Delete(ctx context.Context, id int) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	res, err := s.db.ExecContext(ctx, "DELETE FROM credentials WHERE id = $1", id)
	if err != nil {
		log.Error("failed to delete credential",
			slog.String("error", err.Error()), slog.Int("credential_id", id))
		return MapError(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if affected == 0 {
		return store.ErrCredentialNotFound
	}

	log.Info("credential deleted", slog.Int("credential_id", id))
	return nil
}

// WithTx implements store.CredentialStore.WithTx.
func (s *PostgresCredentialStore) WithTx(tx *sql.Tx) store.CredentialStore {
	return &PostgresCredentialStore{db: tx, logger: s.logger}
}

func scanCredential(sc scanner) (*domain.Credential, error) {
	var cred domain.Credential
	var role string
	err := sc.Scan(
		&cred.ID,
		&cred.Username,
		&cred.Password,
		&role,
		&cred.Enabled,
		&cred.AccountNonExpired,
		&cred.AccountNonLocked,
		&cred.CredentialsNonExpired,
		&cred.UserID,
	)
	if err != nil {
		return nil, err
	}
	cred.Role = domain.Role(role)
	return &cred, nil
}
