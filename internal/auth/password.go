package auth

import "golang.org/x/crypto/bcrypt"

// bcryptCost matches the work factor used since the first deployment.
// Raising it invalidates nothing (bcrypt self-describes its cost) but new
// hashes become slower to verify.
const bcryptCost = 10

// HashPassword returns a salted bcrypt hash of the plaintext. The salt is
// random per call, so repeated hashes of the same plaintext differ.
func HashPassword(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword reports whether plaintext matches the stored hash. An empty
// hash (Google-created account with no local password) is an ordinary
// mismatch, never a fault.
func CheckPassword(plaintext, hash string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
