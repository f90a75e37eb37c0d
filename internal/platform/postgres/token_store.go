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

// PostgresTokenStore implements the store.VerificationTokenStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTokenStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTokenStore creates a new PostgreSQL implementation of the
// VerificationTokenStore interface.
func NewPostgresTokenStore(db store.DBTX, logger *slog.Logger) *PostgresTokenStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresTokenStore{
		db:     db,
		logger: logger.With(slog.String("component", "token_store")),
	}
}

// Ensure PostgresTokenStore implements store.VerificationTokenStore interface
var _ store.VerificationTokenStore = (*PostgresTokenStore)(nil)

const tokenColumns = "id, token, expire_date, credential_id"

// FindAll implements store.VerificationTokenStore.FindAll.
func (s *PostgresTokenStore) FindAll(ctx context.Context) ([]*domain.VerificationToken, error) {
	return s.findMany(ctx, "SELECT "+tokenColumns+" FROM verification_tokens ORDER BY id")
}

// FindByCredentialID implements store.VerificationTokenStore.FindByCredentialID.
func (s *PostgresTokenStore) FindByCredentialID(ctx context.Context, credentialID int) ([]*domain.VerificationToken, error) {
	return s.findMany(ctx,
		"SELECT "+tokenColumns+" FROM verification_tokens WHERE credential_id = $1 ORDER BY id",
		credentialID)
}

func (s *PostgresTokenStore) findMany(ctx context.Context, query string, args ...any) ([]*domain.VerificationToken, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list verification tokens", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var toks []*domain.VerificationToken
	for rows.Next() {
		var tok domain.VerificationToken
		if err := rows.Scan(&tok.ID, &tok.Token, &tok.ExpireDate, &tok.CredentialID); err != nil {
			return nil, MapError(err)
		}
		toks = append(toks, &tok)
	}
	return toks, MapError(rows.Err())
}

// FindByID implements store.VerificationTokenStore.FindByID.
func (s *PostgresTokenStore) FindByID(ctx context.Context, id int) (*domain.VerificationToken, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var tok domain.VerificationToken
	err := s.db.QueryRowContext(ctx,
		"SELECT "+tokenColumns+" FROM verification_tokens WHERE id = $1", id,
	).Scan(&tok.ID, &tok.Token, &tok.ExpireDate, &tok.CredentialID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTokenNotFound
		}
		log.Error("failed to get verification token by id",
			slog.String("error", err.Error()), slog.Int("token_id", id))
		return nil, MapError(err)
	}
	return &tok, nil
}

// Save implements store.VerificationTokenStore.Save.
func (s *PostgresTokenStore) Save(ctx context.Context, tok *domain.VerificationToken) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := tok.Validate(); err != nil {
		log.Warn("verification token validation failed during save",
			slog.String("error", err.Error()))
		return err
	}

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO verification_tokens (token, expire_date, credential_id)
		VALUES ($1, $2, $3)
		RETURNING id`,
		tok.Token, tok.ExpireDate, tok.CredentialID,
	).Scan(&tok.ID)
	if err != nil {
		log.Error("failed to save verification token",
			slog.String("error", err.Error()),
			slog.Int("credential_id", tok.CredentialID))
		return MapError(err)
	}

	log.Info("verification token saved",
		slog.Int("token_id", tok.ID), slog.Int("credential_id", tok.CredentialID))
	return nil
}

// Update implements store.VerificationTokenStore.Update. credential_id is
// deliberately absent from the statement: the owner is immutable.
func (s *PostgresTokenStore) Update(ctx context.Context, tok *domain.VerificationToken) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	res, err := s.db.ExecContext(ctx, `
		UPDATE verification_tokens
		SET token = $1, expire_date = $2
		WHERE id = $3`,
		tok.Token, tok.ExpireDate, tok.ID,
	)
	if err != nil {
		log.Error("failed to update verification token",
			slog.String("error", err.Error()), slog.Int("token_id", tok.ID))
		return MapError(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if affected == 0 {
		return store.ErrTokenNotFound
	}
	return nil
}

// Delete implements store.VerificationTokenStore.Delete.
func (s *PostgresTokenStore) Delete(ctx context.Context, id int) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	res, err := s.db.ExecContext(ctx, "DELETE FROM verification_tokens WHERE id = $1", id)
	if err != nil {
		log.Error("failed to delete verification token",
			slog.String("error", err.Error()), slog.Int("token_id", id))
		return MapError(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if affected == 0 {
		return store.ErrTokenNotFound
	}

	log.Info("verification token deleted", slog.Int("token_id", id))
	return nil
}

// WithTx implements store.VerificationTokenStore.WithTx.
func (s *PostgresTokenStore) WithTx(tx *sql.Tx) store.VerificationTokenStore {
	return &PostgresTokenStore{db: tx, logger: s.logger}
}
