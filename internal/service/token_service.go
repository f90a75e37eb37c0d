package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/hatembr/identity-api/internal/domain"
	"github.com/hatembr/identity-api/internal/store"
	"github.com/hatembr/identity-api/internal/transfer"
)

// VerificationTokenService provides verification-token operations. The
// owning credential is set at creation and immutable afterwards.
type VerificationTokenService interface {
	// List retrieves all verification tokens with their credential summaries.
	List(ctx context.Context) ([]*transfer.VerificationToken, error)

	// GetByID retrieves a verification token by id.
	// Returns store.ErrTokenNotFound if absent.
	GetByID(ctx context.Context, id int) (*transfer.VerificationToken, error)

	// Create persists a new token. A nested credential reference carrying
	// an id is required: its absence is ErrMissingCredentialRef, while a
	// reference to a credential that does not exist is
	// store.ErrCredentialNotFound. A blank token text is filled with a
	// generated value.
	Create(ctx context.Context, t *transfer.VerificationToken) (*transfer.VerificationToken, error)

	// Update overwrites token text and expiry of the token identified by
	// the embedded id. The credential association is preserved regardless
	// of the payload.
	Update(ctx context.Context, t *transfer.VerificationToken) (*transfer.VerificationToken, error)

	// UpdateByID behaves like Update but locates the token by the explicit id.
	UpdateByID(ctx context.Context, id int, t *transfer.VerificationToken) (*transfer.VerificationToken, error)

	// Delete removes a token by id.
	// Returns store.ErrTokenNotFound if absent.
	Delete(ctx context.Context, id int) error
}

// VerificationTokenServiceImpl implements the VerificationTokenService interface.
type VerificationTokenServiceImpl struct {
	tokenStore      store.VerificationTokenStore
	credentialStore store.CredentialStore
	db              *sql.DB
	logger          *slog.Logger
}

// NewVerificationTokenService creates a new VerificationTokenService.
func NewVerificationTokenService(
	tokenStore store.VerificationTokenStore,
	credentialStore store.CredentialStore,
	db *sql.DB,
	logger *slog.Logger,
) VerificationTokenService {
	return &VerificationTokenServiceImpl{
		tokenStore:      tokenStore,
		credentialStore: credentialStore,
		db:              db,
		logger:          logger.With("component", "verification_token_service"),
	}
}

// List retrieves all verification tokens.
func (s *VerificationTokenServiceImpl) List(ctx context.Context) ([]*transfer.VerificationToken, error) {
	toks, err := s.tokenStore.FindAll(ctx)
	if err != nil {
		s.logger.Error("failed to list verification tokens", "error", err)
		return nil, fmt.Errorf("failed to list verification tokens: %w", err)
	}

	var out []*transfer.VerificationToken
	var seen []*domain.VerificationToken
	for _, tok := range toks {
		if containsToken(seen, tok) {
			continue
		}
		seen = append(seen, tok)

		t, err := s.flatten(ctx, tok)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// GetByID retrieves a verification token by id.
func (s *VerificationTokenServiceImpl) GetByID(ctx context.Context, id int) (*transfer.VerificationToken, error) {
	tok, err := s.tokenStore.FindByID(ctx, id)
	if err != nil {
		s.logger.Debug("token lookup failed", "error", err, "token_id", id)
		return nil, fmt.Errorf("failed to retrieve verification token: %w", err)
	}
	return s.flatten(ctx, tok)
}

// Create persists a new verification token for an existing credential.
func (s *VerificationTokenServiceImpl) Create(ctx context.Context, t *transfer.VerificationToken) (*transfer.VerificationToken, error) {
	if t.Credential == nil || t.Credential.ID == 0 {
		return nil, ErrMissingCredentialRef
	}

	tok := transfer.ToTokenOwnFields(t)
	tok.ID = 0 // force a new row regardless of caller-supplied id
	if tok.Token == "" {
		tok.Token = uuid.NewString()
	}

	var cred *domain.Credential
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		credStore := s.credentialStore.WithTx(tx)

		var err error
		cred, err = credStore.FindByID(ctx, t.Credential.ID)
		if err != nil {
			return err
		}

		tok.CredentialID = cred.ID
		return s.tokenStore.WithTx(tx).Save(ctx, tok)
	})
	if err != nil {
		s.logger.Error("failed to create verification token",
			"error", err, "credential_id", t.Credential.ID)
		return nil, fmt.Errorf("failed to create verification token: %w", err)
	}

	s.logger.Info("verification token created",
		"token_id", tok.ID, "credential_id", tok.CredentialID)
	return transfer.FromToken(tok, cred), nil
}

// Update applies the incoming scalars to the token identified by the
// embedded id.
func (s *VerificationTokenServiceImpl) Update(ctx context.Context, t *transfer.VerificationToken) (*transfer.VerificationToken, error) {
	return s.updateAt(ctx, t.ID, t)
}

// UpdateByID applies the incoming scalars to the token identified by the
// explicit id.
func (s *VerificationTokenServiceImpl) UpdateByID(ctx context.Context, id int, t *transfer.VerificationToken) (*transfer.VerificationToken, error) {
	return s.updateAt(ctx, id, t)
}

func (s *VerificationTokenServiceImpl) updateAt(ctx context.Context, id int, t *transfer.VerificationToken) (*transfer.VerificationToken, error) {
	var tok *domain.VerificationToken
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		tokStore := s.tokenStore.WithTx(tx)

		var err error
		tok, err = tokStore.FindByID(ctx, id)
		if err != nil {
			return err
		}

		// Own fields only; the original credential association is kept no
		// matter what the payload carries.
		incoming := transfer.ToTokenOwnFields(t)
		tok.Token = incoming.Token
		tok.ExpireDate = incoming.ExpireDate

		return tokStore.Update(ctx, tok)
	})
	if err != nil {
		s.logger.Error("failed to update verification token", "error", err, "token_id", id)
		return nil, fmt.Errorf("failed to update verification token: %w", err)
	}

	s.logger.Info("verification token updated", "token_id", id)
	return s.flatten(ctx, tok)
}

// Delete removes a verification token by id after verifying it exists.
func (s *VerificationTokenServiceImpl) Delete(ctx context.Context, id int) error {
	if err := s.tokenStore.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete verification token", "error", err, "token_id", id)
		return fmt.Errorf("failed to delete verification token: %w", err)
	}
	s.logger.Info("verification token deleted", "token_id", id)
	return nil
}

func (s *VerificationTokenServiceImpl) flatten(ctx context.Context, tok *domain.VerificationToken) (*transfer.VerificationToken, error) {
	cred, err := s.credentialStore.FindByID(ctx, tok.CredentialID)
	if err != nil && !errors.Is(err, store.ErrCredentialNotFound) {
		return nil, fmt.Errorf("failed to load credential for token %d: %w", tok.ID, err)
	}
	return transfer.FromToken(tok, cred), nil
}

func containsToken(toks []*domain.VerificationToken, tok *domain.VerificationToken) bool {
	for _, t := range toks {
		if t.Equal(tok) {
			return true
		}
	}
	return false
}
