package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/testlane/testlane/internal/store"
	"github.com/testlane/testlane/internal/store/model"
)

// Credentials is the credential store: it owns password hashes and the token
// lifecycle. Password hashes never leave this package.
type Credentials struct {
	store  store.Store
	hasher PasswordHasher
	issuer *TokenIssuer

	// dummyHash is verified against when the identity is unknown, so the
	// response time does not reveal whether an email is registered.
	dummyHash string
}

func NewCredentials(s store.Store, hasher PasswordHasher, issuer *TokenIssuer) (*Credentials, error) {
	dummyHash, err := hasher.Hash(uuid.NewString())
	if err != nil {
		return nil, err
	}

	return &Credentials{
		store:     s,
		hasher:    hasher,
		issuer:    issuer,
		dummyHash: dummyHash,
	}, nil
}

// Register stores the hashed credential for a user. Registering the same
// identity twice fails with store.ErrDuplicateKey.
func (c *Credentials) Register(ctx context.Context, userID uuid.UUID, plaintext string) error {
	hash, err := c.hasher.Hash(plaintext)
	if err != nil {
		return err
	}

	return c.store.Credential().Create(ctx, model.Credential{
		UserID:       userID,
		PasswordHash: hash,
	})
}

// Verify checks a plaintext password against the stored credential for the
// identity. Unknown identity and wrong password take the same code path
// through the hasher and are indistinguishable to the caller.
func (c *Credentials) Verify(ctx context.Context, email, plaintext string) (uuid.UUID, bool) {
	user, err := c.store.User().GetByEmail(ctx, email)
	if err != nil {
		_, _ = c.hasher.Verify(plaintext, c.dummyHash)
		return uuid.Nil, false
	}

	credential, err := c.store.Credential().Get(ctx, user.ID)
	if err != nil {
		if !errors.Is(err, store.ErrRecordNotFound) {
			return uuid.Nil, false
		}
		_, _ = c.hasher.Verify(plaintext, c.dummyHash)
		return uuid.Nil, false
	}

	match, err := c.hasher.Verify(plaintext, credential.PasswordHash)
	if err != nil || !match {
		return uuid.Nil, false
	}

	return user.ID, true
}

func (c *Credentials) IssueToken(userID uuid.UUID) (string, time.Time, error) {
	return c.issuer.Issue(userID)
}

func (c *Credentials) ValidateToken(rawToken string) (uuid.UUID, error) {
	return c.issuer.Validate(rawToken)
}
