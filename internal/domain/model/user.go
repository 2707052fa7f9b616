package model

import "time"

// User is an account able to act on orders according to its role.
type User struct {
	ID           int64
	Login        string
	PasswordHash string
	Name         string
	Role         Role
	CreatedAt    time.Time
}
