package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hatembr/identity-api/internal/domain"
	"github.com/hatembr/identity-api/internal/service/auth"
	"github.com/hatembr/identity-api/internal/store"
	"github.com/hatembr/identity-api/internal/transfer"
)

// CredentialService provides credential-related operations, enforcing the
// one-credential-per-user invariant and username uniqueness. A credential's
// lifecycle is: created (hashed, linked to exactly one user) → updated
// (username, password, role and flags mutable; the user link immutable) →
// deleted. No transition ever re-links a credential to a different user.
type CredentialService interface {
	// List retrieves all credentials with their user summaries and tokens.
	List(ctx context.Context) ([]*transfer.Credential, error)

	// GetByID retrieves a credential by id.
	// Returns store.ErrCredentialNotFound if absent.
	GetByID(ctx context.Context, id int) (*transfer.Credential, error)

	// GetByUsername retrieves a credential by its unique username.
	GetByUsername(ctx context.Context, username string) (*transfer.Credential, error)

	// Create persists a new credential. Any caller-supplied id is ignored.
	// The checks run in a pinned order: the referenced user must exist
	// (store.ErrUserNotFound), must not already own a credential
	// (ErrUserAlreadyHasCredential), and the username must be free
	// (store.ErrUsernameExists). The plaintext password is hashed before
	// the row is persisted.
	Create(ctx context.Context, t *transfer.Credential) (*transfer.Credential, error)

	// Update overwrites username, password (re-hashed), role and the four
	// status flags of the credential identified by the embedded id. The
	// user association is preserved regardless of the payload.
	Update(ctx context.Context, t *transfer.Credential) (*transfer.Credential, error)

	// UpdateByID behaves like Update but locates the credential by the
	// explicit id, ignoring any id embedded in the transfer object.
	UpdateByID(ctx context.Context, id int, t *transfer.Credential) (*transfer.Credential, error)

	// Delete removes a credential by id, cascading its verification tokens.
	// Returns store.ErrCredentialNotFound if absent.
	Delete(ctx context.Context, id int) error
}

// CredentialServiceImpl implements the CredentialService interface.
type CredentialServiceImpl struct {
	credentialStore store.CredentialStore
	userStore       store.UserStore
	tokenStore      store.VerificationTokenStore
	hasher          auth.PasswordHasher
	db              *sql.DB
	logger          *slog.Logger
}

// NewCredentialService creates a new CredentialService.
func NewCredentialService(
	credentialStore store.CredentialStore,
	userStore store.UserStore,
	tokenStore store.VerificationTokenStore,
	hasher auth.PasswordHasher,
	db *sql.DB,
	logger *slog.Logger,
) CredentialService {
	return &CredentialServiceImpl{
		credentialStore: credentialStore,
		userStore:       userStore,
		tokenStore:      tokenStore,
		hasher:          hasher,
		db:              db,
		logger:          logger.With("component", "credential_service"),
	}
}

// List retrieves all credentials.
func (s *CredentialServiceImpl) List(ctx context.Context) ([]*transfer.Credential, error) {
	creds, err := s.credentialStore.FindAll(ctx)
	if err != nil {
		s.logger.Error("failed to list credentials", "error", err)
		return nil, fmt.Errorf("failed to list credentials: %w", err)
	}

	var out []*transfer.Credential
	var seen []*domain.Credential
	for _, cred := range creds {
		if containsCredential(seen, cred) {
			continue
		}
		seen = append(seen, cred)

		t, err := s.flatten(ctx, cred)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// GetByID retrieves a credential by id.
func (s *CredentialServiceImpl) GetByID(ctx context.Context, id int) (*transfer.Credential, error) {
	cred, err := s.credentialStore.FindByID(ctx, id)
	if err != nil {
		s.logger.Debug("credential lookup failed", "error", err, "credential_id", id)
		return nil, fmt.Errorf("failed to retrieve credential: %w", err)
	}
	return s.flatten(ctx, cred)
}

// GetByUsername retrieves a credential by username.
func (s *CredentialServiceImpl) GetByUsername(ctx context.Context, username string) (*transfer.Credential, error) {
	cred, err := s.credentialStore.FindByUsername(ctx, username)
	if err != nil {
		s.logger.Debug("credential lookup by username failed",
			"error", err, "username", username)
		return nil, fmt.Errorf("failed to retrieve credential: %w", err)
	}
	return s.flatten(ctx, cred)
}

// Create persists a new credential for an existing user.
func (s *CredentialServiceImpl) Create(ctx context.Context, t *transfer.Credential) (*transfer.Credential, error) {
	if t.User == nil || t.User.ID == 0 {
		return nil, ErrMissingUserRef
	}

	cred, err := transfer.ToCredential(t)
	if err != nil {
		return nil, err
	}
	cred.ID = 0 // force a new row regardless of caller-supplied id

	var user *domain.User
	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		userStore := s.userStore.WithTx(tx)
		credStore := s.credentialStore.WithTx(tx)

		// Check order is pinned: user existence, then ownership, then
		// username uniqueness. A user that already owns a credential gets
		// the ownership error even when the username is also taken.
		var err error
		user, err = userStore.FindByID(ctx, cred.UserID)
		if err != nil {
			return err
		}

		owns, err := credStore.ExistsByUserID(ctx, user.ID)
		if err != nil {
			return err
		}
		if owns {
			return fmt.Errorf("user %d: %w", user.ID, ErrUserAlreadyHasCredential)
		}

		taken, err := credStore.ExistsByUsername(ctx, cred.Username)
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("username %q: %w", cred.Username, store.ErrUsernameExists)
		}

		hashed, err := s.hasher.Hash(cred.Password)
		if err != nil {
			return err
		}
		cred.Password = hashed

		if err := credStore.Save(ctx, cred); err != nil {
			return err
		}

		// Keep the user-side back-pointer in agreement.
		user.CredentialID = &cred.ID
		return userStore.Update(ctx, user)
	})
	if err != nil {
		s.logger.Error("failed to create credential",
			"error", err, "username", t.Username)
		return nil, fmt.Errorf("failed to create credential: %w", err)
	}

	s.logger.Info("credential created",
		"credential_id", cred.ID, "user_id", cred.UserID)
	return transfer.FromCredential(cred, user, nil), nil
}

// Update applies the incoming scalars to the credential identified by the
// embedded id.
func (s *CredentialServiceImpl) Update(ctx context.Context, t *transfer.Credential) (*transfer.Credential, error) {
	return s.updateAt(ctx, t.ID, t)
}

// UpdateByID applies the incoming scalars to the credential identified by
// the explicit id.
func (s *CredentialServiceImpl) UpdateByID(ctx context.Context, id int, t *transfer.Credential) (*transfer.Credential, error) {
	return s.updateAt(ctx, id, t)
}

func (s *CredentialServiceImpl) updateAt(ctx context.Context, id int, t *transfer.Credential) (*transfer.Credential, error) {
	incoming, err := transfer.ToCredentialOwnFields(t)
	if err != nil {
		return nil, err
	}

	var cred *domain.Credential
	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		credStore := s.credentialStore.WithTx(tx)

		var err error
		cred, err = credStore.FindByID(ctx, id)
		if err != nil {
			return err
		}

		// Selective merge: the nested user in the payload, if any, never
		// alters the stored association.
		cred.Username = incoming.Username
		cred.Role = incoming.Role
		cred.Enabled = incoming.Enabled
		cred.AccountNonExpired = incoming.AccountNonExpired
		cred.AccountNonLocked = incoming.AccountNonLocked
		cred.CredentialsNonExpired = incoming.CredentialsNonExpired

		if incoming.Password != "" {
			hashed, err := s.hasher.Hash(incoming.Password)
			if err != nil {
				return err
			}
			cred.Password = hashed
		}

		return credStore.Update(ctx, cred)
	})
	if err != nil {
		s.logger.Error("failed to update credential", "error", err, "credential_id", id)
		return nil, fmt.Errorf("failed to update credential: %w", err)
	}

	s.logger.Info("credential updated", "credential_id", id)
	return s.flatten(ctx, cred)
}

// Delete removes a credential by id after verifying it exists.
func (s *CredentialServiceImpl) Delete(ctx context.Context, id int) error {
	cred, err := s.credentialStore.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to retrieve credential: %w", err)
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		userStore := s.userStore.WithTx(tx)
		credStore := s.credentialStore.WithTx(tx)

		// Clear the owning user's back-pointer before removing the row so
		// the two sides never disagree.
		user, err := userStore.FindByID(ctx, cred.UserID)
		if err == nil && user.CredentialID != nil {
			user.CredentialID = nil
			if err := userStore.Update(ctx, user); err != nil {
				return err
			}
		} else if err != nil && !errors.Is(err, store.ErrUserNotFound) {
			return err
		}

		return credStore.Delete(ctx, id)
	})
	if err != nil {
		s.logger.Error("failed to delete credential", "error", err, "credential_id", id)
		return fmt.Errorf("failed to delete credential: %w", err)
	}

	s.logger.Info("credential deleted", "credential_id", id)
	return nil
}

// flatten builds the forward transfer form of a credential: owner summary
// plus owned verification tokens.
func (s *CredentialServiceImpl) flatten(ctx context.Context, cred *domain.Credential) (*transfer.Credential, error) {
	user, err := s.userStore.FindByID(ctx, cred.UserID)
	if err != nil && !errors.Is(err, store.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to load user for credential %d: %w", cred.ID, err)
	}

	tokens, err := s.tokenStore.FindByCredentialID(ctx, cred.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tokens for credential %d: %w", cred.ID, err)
	}

	return transfer.FromCredential(cred, user, tokens), nil
}

func containsCredential(creds []*domain.Credential, cred *domain.Credential) bool {
	for _, c := range creds {
		if c.Equal(cred) {
			return true
		}
	}
	return false
}
