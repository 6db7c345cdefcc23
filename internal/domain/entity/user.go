package entity

import "time"

// User usuario del back-office (autenticación por JWT).
type User struct {
	ID           string // uuid
	Username     string
	PasswordHash string // bcrypt
	CreatedAt    time.Time
}
