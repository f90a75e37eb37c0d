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

// PostgresAddressStore implements the store.AddressStore interface using a
// PostgreSQL database as the storage backend.
type PostgresAddressStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresAddressStore creates a new PostgreSQL implementation of the
// AddressStore interface.
func NewPostgresAddressStore(db store.DBTX, logger *slog.Logger) *PostgresAddressStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresAddressStore{
		db:     db,
		logger: logger.With(slog.String("component", "address_store")),
	}
}

// Ensure PostgresAddressStore implements store.AddressStore interface
var _ store.AddressStore = (*PostgresAddressStore)(nil)

const addressColumns = "id, full_address, postal_code, city, user_id"

// FindAll implements store.AddressStore.FindAll.
func (s *PostgresAddressStore) FindAll(ctx context.Context) ([]*domain.Address, error) {
	return s.findMany(ctx, "SELECT "+addressColumns+" FROM addresses ORDER BY id")
}

// FindByUserID implements store.AddressStore.FindByUserID.
func (s *PostgresAddressStore) FindByUserID(ctx context.Context, userID int) ([]*domain.Address, error) {
	return s.findMany(ctx,
		"SELECT "+addressColumns+" FROM addresses WHERE user_id = $1 ORDER BY id", userID)
}

func (s *PostgresAddressStore) findMany(ctx context.Context, query string, args ...any) ([]*domain.Address, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list addresses", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var addrs []*domain.Address
	for rows.Next() {
		var addr domain.Address
		if err := rows.Scan(&addr.ID, &addr.FullAddress, &addr.PostalCode,
			&addr.City, &addr.UserID); err != nil {
			return nil, MapError(err)
		}
		addrs = append(addrs, &addr)
	}
	return addrs, MapError(rows.Err())
}

// FindByID implements store.AddressStore.FindByID.
func (s *PostgresAddressStore) FindByID(ctx context.Context, id int) (*domain.Address, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var addr domain.Address
	err := s.db.QueryRowContext(ctx,
		"SELECT "+addressColumns+" FROM addresses WHERE id = $1", id,
	).Scan(&addr.ID, &addr.FullAddress, &addr.PostalCode, &addr.City, &addr.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrAddressNotFound
		}
		log.Error("failed to get address by id",
			slog.String("error", err.Error()), slog.Int("address_id", id))
		return nil, MapError(err)
	}
	return &addr, nil
}

// Save implements store.AddressStore.Save.
func (s *PostgresAddressStore) Save(ctx context.Context, addr *domain.Address) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := addr.Validate(); err != nil {
		log.Warn("address validation failed during save", slog.String("error", err.Error()))
		return err
	}

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO addresses (full_address, postal_code, city, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		addr.FullAddress, addr.PostalCode, addr.City, addr.UserID,
	).Scan(&addr.ID)
	if err != nil {
		log.Error("failed to save address",
			slog.String("error", err.Error()), slog.Int("user_id", addr.UserID))
		return MapError(err)
	}

	log.Info("address saved",
		slog.Int("address_id", addr.ID), slog.Int("user_id", addr.UserID))
	return nil
}

// Update implements store.AddressStore.Update. user_id is deliberately
// absent from the statement: the owner is immutable.
func (s *PostgresAddressStore) Update(ctx context.Context, addr *domain.Address) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	res, err := s.db.ExecContext(ctx, `
		UPDATE addresses
		SET full_address = $1, postal_code = $2, city = $3
		WHERE id = $4`,
		addr.FullAddress, addr.PostalCode, addr.City, addr.ID,
	)
	if err != nil {
		log.Error("failed to update address",
			slog.String("error", err.Error()), slog.Int("address_id", addr.ID))
		return MapError(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if affected == 0 {
		return store.ErrAddressNotFound
	}
	return nil
}

// Delete implements store.AddressStore.Delete. Absence is tolerated: the
// delete of a missing row is a no-op, not an error.
func (s *PostgresAddressStore) Delete(ctx context.Context, id int) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	_, err := s.db.ExecContext(ctx, "DELETE FROM addresses WHERE id = $1", id)
	if err != nil {
		log.Error("failed to delete address",
			slog.String("error", err.Error()), slog.Int("address_id", id))
		return MapError(err)
	}

	log.Info("address deleted", slog.Int("address_id", id))
	return nil
}

// WithTx implements store.AddressStore.WithTx.
func (s *PostgresAddressStore) WithTx(tx *sql.Tx) store.AddressStore {
	return &PostgresAddressStore{db: tx, logger: s.logger}
}
