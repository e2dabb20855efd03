package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for a wrong username and for a wrong
// password alike, so a caller cannot tell which part failed.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Identity is a principal allowed to mutate schedules.
type Identity struct {
	Username     string
	PasswordHash string // bcrypt
}

// IdentityStore resolves a username to its stored identity.
type IdentityStore interface {
	Lookup(username string) (Identity, bool)
}

// StaticIdentityStore holds the single seeded principal. There is no
// registration and no roles.
type StaticIdentityStore struct {
	principal Identity
}

// NewStaticIdentityStore seeds the store with one principal. An empty hash
// falls back to the development default password ("password").
func NewStaticIdentityStore(username, passwordHash string) (*StaticIdentityStore, error) {
	if passwordHash == "" {
		hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		passwordHash = string(hash)
	}
	return &StaticIdentityStore{principal: Identity{Username: username, PasswordHash: passwordHash}}, nil
}

func (s *StaticIdentityStore) Lookup(username string) (Identity, bool) {
	if username != s.principal.Username {
		return Identity{}, false
	}
	return s.principal, true
}

// Gate verifies presented credentials or tokens before a schedule mutation
// is permitted.
type Gate struct {
	identities IdentityStore
	tokens     *TokenManager
}

// NewGate creates an auth gate over the given identity store and token
// manager.
func NewGate(identities IdentityStore, tokens *TokenManager) *Gate {
	return &Gate{identities: identities, tokens: tokens}
}

// Login checks the credentials and issues a signed, time-bounded token.
func (g *Gate) Login(username, password string) (string, error) {
	id, ok := g.identities.Lookup(username)
	if !ok {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(id.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return g.tokens.Issue(username)
}

// Authorize verifies a presented token. A missing token yields ErrNoToken;
// any verification failure yields ErrTokenInvalid.
func (g *Gate) Authorize(token string) (*Claims, error) {
	if token == "" {
		return nil, ErrNoToken
	}
	return g.tokens.Parse(token)
}
