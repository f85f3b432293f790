package database

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ValidateOperatorToken checks username/token against the single seeded
// operator account's bcrypt hash.
func (db *DB) ValidateOperatorToken(username, token string) error {
	var hashed string
	err := db.QueryRow(`SELECT password FROM operators WHERE username = $1`, username).Scan(&hashed)
	if err != nil {
		return fmt.Errorf("operator not found")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(token)); err != nil {
		return fmt.Errorf("invalid credentials")
	}
	return nil
}
