package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hatembr/identity-api/internal/domain"
	"github.com/hatembr/identity-api/internal/store"
	"github.com/hatembr/identity-api/internal/transfer"
)

// AddressService provides address-related operations. The owning user is
// set at creation and immutable afterwards: update paths only ever touch
// the address's own scalar fields.
type AddressService interface {
	// List retrieves all addresses with their owner summaries.
	List(ctx context.Context) ([]*transfer.Address, error)

	// GetByID retrieves an address by id.
	// Returns store.ErrAddressNotFound if absent.
	GetByID(ctx context.Context, id int) (*transfer.Address, error)

	// Create persists a new address associated with the embedded user
	// reference's id. Returns ErrMissingUserRef when no user id is supplied
	// and store.ErrUserNotFound when the referenced user does not exist.
	Create(ctx context.Context, t *transfer.Address) (*transfer.Address, error)

	// Update overwrites full address, postal code and city of the address
	// identified by the embedded id. The owner is never changed, even if
	// the payload carries a different one.
	Update(ctx context.Context, t *transfer.Address) (*transfer.Address, error)

	// UpdateByID behaves like Update but locates the address by the
	// explicit id.
	UpdateByID(ctx context.Context, id int, t *transfer.Address) (*transfer.Address, error)

	// Delete removes an address by id. Absence is tolerated.
	Delete(ctx context.Context, id int) error
}

// AddressServiceImpl implements the AddressService interface.
type AddressServiceImpl struct {
	addressStore store.AddressStore
	userStore    store.UserStore
	db           *sql.DB
	logger       *slog.Logger
}

// NewAddressService creates a new AddressService.
func NewAddressService(
	addressStore store.AddressStore,
	userStore store.UserStore,
	db *sql.DB,
	logger *slog.Logger,
) AddressService {
	return &AddressServiceImpl{
		addressStore: addressStore,
		userStore:    userStore,
		db:           db,
		logger:       logger.With("component", "address_service"),
	}
}

// List retrieves all addresses.
func (s *AddressServiceImpl) List(ctx context.Context) ([]*transfer.Address, error) {
	addrs, err := s.addressStore.FindAll(ctx)
	if err != nil {
		s.logger.Error("failed to list addresses", "error", err)
		return nil, fmt.Errorf("failed to list addresses: %w", err)
	}

	var out []*transfer.Address
	var seen []*domain.Address
	for _, addr := range addrs {
		if containsAddress(seen, addr) {
			continue
		}
		seen = append(seen, addr)

		t, err := s.flatten(ctx, addr)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// GetByID retrieves an address by id.
func (s *AddressServiceImpl) GetByID(ctx context.Context, id int) (*transfer.Address, error) {
	addr, err := s.addressStore.FindByID(ctx, id)
	if err != nil {
		s.logger.Debug("address lookup failed", "error", err, "address_id", id)
		return nil, fmt.Errorf("failed to retrieve address: %w", err)
	}
	return s.flatten(ctx, addr)
}

// Create persists a new address for the user referenced in the payload.
func (s *AddressServiceImpl) Create(ctx context.Context, t *transfer.Address) (*transfer.Address, error) {
	if t.User == nil || t.User.ID == 0 {
		return nil, ErrMissingUserRef
	}

	addr := &domain.Address{
		FullAddress: t.FullAddress,
		PostalCode:  t.PostalCode,
		City:        t.City,
		UserID:      t.User.ID,
	}
	if err := addr.Validate(); err != nil {
		return nil, err
	}

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		exists, err := s.userStore.WithTx(tx).ExistsByID(ctx, addr.UserID)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("user %d: %w", addr.UserID, store.ErrUserNotFound)
		}

		return s.addressStore.WithTx(tx).Save(ctx, addr)
	})
	if err != nil {
		s.logger.Error("failed to save address", "error", err, "user_id", addr.UserID)
		return nil, fmt.Errorf("failed to save address: %w", err)
	}

	s.logger.Info("address created", "address_id", addr.ID, "user_id", addr.UserID)
	return s.flatten(ctx, addr)
}

// Update applies the incoming scalars to the address identified by the
// embedded id.
func (s *AddressServiceImpl) Update(ctx context.Context, t *transfer.Address) (*transfer.Address, error) {
	return s.updateAt(ctx, t.ID, t)
}

// UpdateByID applies the incoming scalars to the address identified by the
// explicit id.
func (s *AddressServiceImpl) UpdateByID(ctx context.Context, id int, t *transfer.Address) (*transfer.Address, error) {
	return s.updateAt(ctx, id, t)
}

func (s *AddressServiceImpl) updateAt(ctx context.Context, id int, t *transfer.Address) (*transfer.Address, error) {
	var addr *domain.Address
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		addrStore := s.addressStore.WithTx(tx)

		var err error
		addr, err = addrStore.FindByID(ctx, id)
		if err != nil {
			return err
		}

		// Own fields only; the owner in the payload is ignored.
		addr.FullAddress = t.FullAddress
		addr.PostalCode = t.PostalCode
		addr.City = t.City

		return addrStore.Update(ctx, addr)
	})
	if err != nil {
		s.logger.Error("failed to update address", "error", err, "address_id", id)
		return nil, fmt.Errorf("failed to update address: %w", err)
	}

	s.logger.Info("address updated", "address_id", id)
	return s.flatten(ctx, addr)
}

// Delete removes an address by id; a missing row is a no-op.
func (s *AddressServiceImpl) Delete(ctx context.Context, id int) error {
	if err := s.addressStore.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete address", "error", err, "address_id", id)
		return fmt.Errorf("failed to delete address: %w", err)
	}
	return nil
}

func (s *AddressServiceImpl) flatten(ctx context.Context, addr *domain.Address) (*transfer.Address, error) {
	user, err := s.userStore.FindByID(ctx, addr.UserID)
	if err != nil && !errors.Is(err, store.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to load user for address %d: %w", addr.ID, err)
	}
	return transfer.FromAddress(addr, user), nil
}

func containsAddress(addrs []*domain.Address, addr *domain.Address) bool {
	for _, a := range addrs {
		if a.Equal(addr) {
			return true
		}
	}
	return false
}
