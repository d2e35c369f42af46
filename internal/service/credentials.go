package service

import (
	"errors"

	"marketplace-service/internal/apperror"

	"golang.org/x/crypto/bcrypt"
)

const (
	// passwordCost is fixed so every stored hash verifies at the same cost
	passwordCost = bcrypt.DefaultCost
	// bcrypt only reads the first 72 bytes and x/crypto refuses anything longer
	maxPasswordBytes = 72
)

var ErrPasswordTooLong = errors.New("password exceeds 72 bytes")

// HashPassword returns a salted bcrypt hash of plain
func HashPassword(plain string) (string, error) {
	if len(plain) > maxPasswordBytes {
		return "", ErrPasswordTooLong
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), passwordCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// hashForStorage hashes a caller-supplied password, reporting an over-long one as bad input
func hashForStorage(plain string) (string, error) {
	hash, err := HashPassword(plain)
	if errors.Is(err, ErrPasswordTooLong) {
		return "", apperror.Validation("password too long")
	}
	if err != nil {
		return "", apperror.Internal("failed to hash password", err)
	}
	return hash, nil
}

// CheckPassword reports whether plain matches hash. An empty hash never matches.
func CheckPassword(plain, hash string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
