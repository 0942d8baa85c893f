package domain

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

// User is a coached client. Accounts and credentials are managed elsewhere;
// the core only reads identity and physiology.
type User struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Name      string    `json:"name" bson:"name"`
	Surname   string    `json:"surname" bson:"surname"`
	Email     string    `json:"email" bson:"email"` // Unique index
	Age       *int      `json:"age,omitempty" bson:"age,omitempty"`
	WeightKg  *float64  `json:"weight_kg,omitempty" bson:"weight_kg,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// FullName joins name and surname for display.
func (u *User) FullName() string {
	return strings.TrimSpace(u.Name + " " + u.Surname)
}

// Validate enforces the profile rules: age in (0,150), weight > 0, email
// must look like an address.
func (u *User) Validate() error {
	if u.Age != nil && (*u.Age <= 0 || *u.Age >= 150) {
		return errors.New("age must be between 1 and 149")
	}
	if u.WeightKg != nil && *u.WeightKg <= 0 {
		return errors.New("weight must be greater than 0")
	}
	if u.Email != "" && !strings.Contains(u.Email, "@") {
		return errors.New("invalid email format")
	}
	return nil
}

// UserRepository defines persistence operations for clients.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]*User, error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id string) error
}
