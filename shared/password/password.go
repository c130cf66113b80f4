package password

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// MaxLength is the number of bytes bcrypt actually reads.
const MaxLength = 72

var (
	ErrMismatch = errors.New("password mismatch")
	ErrEmpty    = errors.New("password is empty")
	ErrTooLong  = errors.New("password exceeds 72 bytes")
)

// dummyHash is compared against when a login names an unknown user, so the
// response time does not reveal which usernames exist.
var dummyHash = sync.OnceValue(func() []byte {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("unknown-user"), bcrypt.DefaultCost)

	return hashed
})

func Hash(plain string) (string, error) {
	return HashWithCost(plain, bcrypt.DefaultCost)
}

func HashWithCost(plain string, cost int) (string, error) {
	switch {
	case plain == "":
		return "", ErrEmpty
	case len(plain) > MaxLength:
		return "", ErrTooLong
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	return string(hashed), nil
}

// Verify returns ErrMismatch for a wrong password and a wrapped error for a
// hash bcrypt cannot read.
func Verify(plain, hashed string) error {
	if plain == "" || hashed == "" {
		return ErrMismatch
	}

	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrMismatch
	default:
		return fmt.Errorf("verify password: %w", err)
	}
}

// Burn spends the same work as a real Verify and always fails.
func Burn(plain string) {
	_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(plain))
}
