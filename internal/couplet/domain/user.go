package domain

import "time"

type User struct {
	ID           string
	Email        string // lower-cased, unique
	PasswordHash string // argon2id PHC string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
