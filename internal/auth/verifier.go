// Package auth checks dashboard credentials and issues signed session tokens.
package auth

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/preston-bernstein/dashboard-service/internal/domain/users"
)

// Verifier resolves an email and password pair to an account.
type Verifier interface {
	Verify(ctx context.Context, email, password string) (users.Account, bool)
}

// Credential is an account together with its bcrypt password hash.
type Credential struct {
	Account users.Account
	Hash    []byte
}

// NewCredential hashes password with the given bcrypt cost.
func NewCredential(account users.Account, password string, cost int) (Credential, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return Credential{}, fmt.Errorf("hash password for %s: %w", account.Email, err)
	}
	return Credential{Account: account, Hash: hash}, nil
}

// StaticVerifier checks credentials against a fixed in-memory list.
type StaticVerifier struct {
	byEmail map[string]Credential
	// compared against for unknown emails so both paths cost one bcrypt check
	dummy []byte
}

var _ Verifier = (*StaticVerifier)(nil)

// NewStaticVerifier indexes creds by email. The dummy hash for unknown emails
// uses the highest cost found among creds.
func NewStaticVerifier(creds ...Credential) (*StaticVerifier, error) {
	cost := bcrypt.DefaultCost
	if len(creds) > 0 {
		cost = bcrypt.MinCost
	}
	for _, c := range creds {
		if cc, err := bcrypt.Cost(c.Hash); err == nil && cc > cost {
			cost = cc
		}
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte("dashboard-service"), cost)
	if err != nil {
		return nil, fmt.Errorf("hash dummy password: %w", err)
	}
	v := &StaticVerifier{
		byEmail: make(map[string]Credential, len(creds)),
		dummy:   dummy,
	}
	for _, c := range creds {
		v.byEmail[normalizeEmail(c.Account.Email)] = c
	}
	return v, nil
}

func (v *StaticVerifier) Verify(ctx context.Context, email, password string) (users.Account, bool) {
	if ctx.Err() != nil {
		return users.Account{}, false
	}
	cred, ok := v.byEmail[normalizeEmail(email)]
	if !ok {
		_ = bcrypt.CompareHashAndPassword(v.dummy, []byte(password))
		return users.Account{}, false
	}
	if err := bcrypt.CompareHashAndPassword(cred.Hash, []byte(password)); err != nil {
		return users.Account{}, false
	}
	return cred.Account, true
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// DemoAccounts are the two built-in dashboard logins.
var DemoAccounts = []struct {
	Account  users.Account
	Password string
}{
	{
		Account:  users.Account{ID: "1", Name: "Administrator", Email: "admin@microservices.com", Role: users.RoleAdmin},
		Password: "admin123",
	},
	{
		Account:  users.Account{ID: "2", Name: "User Demo", Email: "user@microservices.com", Role: users.RoleUser},
		Password: "user123",
	},
}

// NewDemoVerifier builds a verifier holding the demo accounts.
func NewDemoVerifier(cost int) (*StaticVerifier, error) {
	creds := make([]Credential, 0, len(DemoAccounts))
	for _, d := range DemoAccounts {
		c, err := NewCredential(d.Account, d.Password, cost)
		if err != nil {
			return nil, err
		}
		creds = append(creds, c)
	}
	return NewStaticVerifier(creds...)
}
