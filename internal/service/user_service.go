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

// UserService provides user-related operations. Its reads are
// credential-aware: a user without a credential is incomplete and treated as
// absent by List, GetByID, GetByUsername, Update and Delete. Create is the
// one path that works on a credential-less user, because credential creation
// is a separate, independently validated operation.
type UserService interface {
	// List retrieves all complete users with their credentials.
	List(ctx context.Context) ([]*transfer.User, error)

	// GetByID retrieves a user by id.
	// Returns store.ErrUserNotFound if the user is absent or incomplete.
	GetByID(ctx context.Context, id int) (*transfer.User, error)

	// GetByUsername retrieves a user through its credential's username.
	GetByUsername(ctx context.Context, username string) (*transfer.User, error)

	// Create persists a new user. Any caller-supplied id is ignored and a
	// new row is always created. No credential is auto-created.
	Create(ctx context.Context, t *transfer.User) (*transfer.User, error)

	// Update applies the incoming scalar fields to the user identified by
	// the id embedded in the transfer object. Credential scalars, when
	// present, are merged onto the existing credential; see updateAt.
	Update(ctx context.Context, t *transfer.User) (*transfer.User, error)

	// UpdateByID behaves like Update but locates the user by the explicit
	// id, ignoring any id embedded in the transfer object.
	UpdateByID(ctx context.Context, id int, t *transfer.User) (*transfer.User, error)

	// Delete unlinks and removes the user's credential. See UserServiceImpl.Delete.
	Delete(ctx context.Context, id int) error
}

// UserServiceImpl implements the UserService interface.
type UserServiceImpl struct {
	userStore       store.UserStore
	credentialStore store.CredentialStore
	hasher          auth.PasswordHasher
	db              *sql.DB
	logger          *slog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(
	userStore store.UserStore,
	credentialStore store.CredentialStore,
	hasher auth.PasswordHasher,
	db *sql.DB,
	logger *slog.Logger,
) UserService {
	return &UserServiceImpl{
		userStore:       userStore,
		credentialStore: credentialStore,
		hasher:          hasher,
		db:              db,
		logger:          logger.With("component", "user_service"),
	}
}

// List retrieves all users that own a credential. Structurally equal
// duplicates loaded through different graphs are collapsed by business-key
// equality.
func (s *UserServiceImpl) List(ctx context.Context) ([]*transfer.User, error) {
	users, err := s.userStore.FindAll(ctx)
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	var out []*transfer.User
	var seen []*domain.User
	for _, user := range users {
		if containsUser(seen, user) {
			continue
		}
		seen = append(seen, user)

		cred, err := s.credentialStore.FindByUserID(ctx, user.ID)
		if err != nil {
			if errors.Is(err, store.ErrCredentialNotFound) {
				// Incomplete user, excluded from credential-aware reads.
				continue
			}
			return nil, fmt.Errorf("failed to load credential for user %d: %w", user.ID, err)
		}
		out = append(out, transfer.FromUser(user, cred))
	}
	return out, nil
}

// GetByID retrieves a user and its credential by user id.
func (s *UserServiceImpl) GetByID(ctx context.Context, id int) (*transfer.User, error) {
	user, cred, err := s.loadComplete(ctx, id)
	if err != nil {
		return nil, err
	}
	return transfer.FromUser(user, cred), nil
}

// GetByUsername retrieves a user by its credential's username.
func (s *UserServiceImpl) GetByUsername(ctx context.Context, username string) (*transfer.User, error) {
	user, err := s.userStore.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("user not found by username", "username", username)
		} else {
			s.logger.Error("failed to retrieve user by username",
				"error", err, "username", username)
		}
		return nil, fmt.Errorf("failed to retrieve user by username: %w", err)
	}

	cred, err := s.credentialStore.FindByUserID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load credential for user %d: %w", user.ID, err)
	}
	return transfer.FromUser(user, cred), nil
}

// Create persists a new user from the user-only reverse mapping: any nested
// credential in the payload is ignored.
func (s *UserServiceImpl) Create(ctx context.Context, t *transfer.User) (*transfer.User, error) {
	user := transfer.ToUserOnly(t)
	user.ID = 0 // force a new row regardless of caller-supplied id
	user.CredentialID = nil

	if err := user.Validate(); err != nil {
		return nil, err
	}

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.userStore.WithTx(tx).Save(ctx, user)
	})
	if err != nil {
		s.logger.Error("failed to save user", "error", err, "email", user.Email)
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	s.logger.Info("user created", "user_id", user.ID)
	return transfer.FromUser(user, nil), nil
}

// Update applies the incoming scalars to the user identified by the
// embedded id.
func (s *UserServiceImpl) Update(ctx context.Context, t *transfer.User) (*transfer.User, error) {
	return s.updateAt(ctx, t.ID, t)
}

// UpdateByID applies the incoming scalars to the user identified by the
// explicit id; an id embedded in the transfer object is ignored.
func (s *UserServiceImpl) UpdateByID(ctx context.Context, id int, t *transfer.User) (*transfer.User, error) {
	return s.updateAt(ctx, id, t)
}

// updateAt overwrites the user's mutable scalars, never the id. When the
// payload carries credential fields they are merged onto the existing
// credential entity: its identity, owning user and token relations stay
// untouched, and an incoming password is hashed before it is persisted.
func (s *UserServiceImpl) updateAt(ctx context.Context, id int, t *transfer.User) (*transfer.User, error) {
	var user *domain.User
	var cred *domain.Credential

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		userStore := s.userStore.WithTx(tx)
		credStore := s.credentialStore.WithTx(tx)

		var err error
		user, err = userStore.FindByID(ctx, id)
		if err != nil {
			return err
		}
		cred, err = credStore.FindByUserID(ctx, user.ID)
		if err != nil {
			if errors.Is(err, store.ErrCredentialNotFound) {
				// Incomplete user: not updatable through this path.
				return store.ErrUserNotFound
			}
			return err
		}

		user.FirstName = t.FirstName
		user.LastName = t.LastName
		user.ImageURL = t.ImageURL
		user.Email = t.Email
		user.Phone = t.Phone

		if t.Credential != nil {
			if err := s.mergeCredential(cred, t.Credential); err != nil {
				return err
			}
			if err := credStore.Update(ctx, cred); err != nil {
				return err
			}
		}

		return userStore.Update(ctx, user)
	})
	if err != nil {
		s.logger.Error("failed to update user", "error", err, "user_id", id)
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.logger.Info("user updated", "user_id", id)
	return transfer.FromUser(user, cred), nil
}

// mergeCredential copies the incoming credential scalars onto the existing
// credential. The password is always hashed on this path; an empty incoming
// password leaves the stored hash alone.
func (s *UserServiceImpl) mergeCredential(cred *domain.Credential, in *transfer.Credential) error {
	cred.Username = in.Username
	cred.Role = domain.Role(in.Role)
	cred.Enabled = in.Enabled
	cred.AccountNonExpired = in.AccountNonExpired
	cred.AccountNonLocked = in.AccountNonLocked
	cred.CredentialsNonExpired = in.CredentialsNonExpired

	if in.Password != "" {
		hashed, err := s.hasher.Hash(in.Password)
		if err != nil {
			return err
		}
		cred.Password = hashed
	}
	return nil
}

// Delete removes the user's authentication capability: it fails when the
// user is absent or owns no credential, then clears the user's credential
// reference and saves the user row, and finally deletes the credential row.
// The user row itself is kept.
//
// The unlink commits before the credential delete runs. If the delete then
// fails, the user is left credential-less rather than pointing at a removed
// row; that partial outcome is accepted.
func (s *UserServiceImpl) Delete(ctx context.Context, id int) error {
	user, cred, err := s.loadComplete(ctx, id)
	if err != nil {
		return err
	}

	// Phase one: clear the back-pointer and persist the user.
	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		user.CredentialID = nil
		return s.userStore.WithTx(tx).Update(ctx, user)
	})
	if err != nil {
		s.logger.Error("failed to unlink credential from user", "error", err, "user_id", id)
		return fmt.Errorf("failed to unlink credential: %w", err)
	}

	// Phase two: delete the credential row (tokens cascade).
	if err := s.credentialStore.Delete(ctx, cred.ID); err != nil {
		s.logger.Error("credential delete failed after unlink; user left credential-less",
			"error", err, "user_id", id, "credential_id", cred.ID)
		return fmt.Errorf("failed to delete credential: %w", err)
	}

	s.logger.Info("user credential removed", "user_id", id, "credential_id", cred.ID)
	return nil
}

// loadComplete fetches a user and its credential, mapping an incomplete
// user to store.ErrUserNotFound.
func (s *UserServiceImpl) loadComplete(ctx context.Context, id int) (*domain.User, *domain.Credential, error) {
	user, err := s.userStore.FindByID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to retrieve user: %w", err)
	}

	cred, err := s.credentialStore.FindByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, store.ErrCredentialNotFound) {
			s.logger.Debug("user has no credential", "user_id", id)
			return nil, nil, fmt.Errorf("user %d is incomplete: %w", id, store.ErrUserNotFound)
		}
		return nil, nil, fmt.Errorf("failed to load credential for user %d: %w", id, err)
	}
	return user, cred, nil
}

func containsUser(users []*domain.User, user *domain.User) bool {
	for _, u := range users {
		if u.Equal(user) {
			return true
		}
	}
	return false
}
