package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Common validation errors. Each wraps one of the broader error classes in
// errors.go so callers can match either the precise cause or the category.
var (
	ErrEmptyUserID         = fmt.Errorf("%w: user ID cannot be empty", ErrValidation)
	ErrEmptyUsername       = fmt.Errorf("%w: username cannot be empty", ErrInvalidUsername)
	ErrUsernameTooShort    = fmt.Errorf("%w: username must be at least 3 characters long", ErrInvalidUsername)
	ErrUsernameTooLong     = fmt.Errorf("%w: username must be at most 20 characters long", ErrInvalidUsername)
	ErrUsernameNotAlnum    = fmt.Errorf("%w: username must contain only letters and digits", ErrInvalidUsername)
	ErrEmptyPassword       = fmt.Errorf("%w: password cannot be empty", ErrInvalidPassword)
	ErrPasswordTooLong     = fmt.Errorf("%w: password must be at most 72 characters long", ErrInvalidPassword)
	ErrEmptyHashedPassword = fmt.Errorf("%w: hashed password cannot be empty", ErrInvalidPassword)
)

// Username length bounds.
const (
	MinUsernameLength = 3
	MaxUsernameLength = 20
)

// User represents a registered account of the blog service.
type User struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	Password       string    `json:"-"` // Plaintext password, used transiently during registration
	HashedPassword string    `json:"-"` // Never expose the password hash in JSON
	CreatedAt      time.Time `json:"created_at"`
}

// NewUser creates a new User with the given username and password.
// It generates a new UUID for the user ID and sets the creation timestamp.
// Returns an error if validation fails.
//
// NOTE: This function only sets up the user structure with the plaintext
// password. The caller is responsible for hashing the password before
// storing the user.
func NewUser(username, password string) (*User, error) {
	user := &User{
		ID:        uuid.New(),
		Username:  username,
		Password:  password, // Must be hashed before storage
		CreatedAt: time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// Returns an error if any field fails validation.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}

	if err := ValidateUsername(u.Username); err != nil {
		return err
	}

	if u.Password != "" {
		// bcrypt silently truncates beyond 72 bytes, so reject earlier.
		if len(u.Password) > 72 {
			return ErrPasswordTooLong
		}
	} else if u.HashedPassword == "" {
		// Existing users loaded from the database carry only the hash.
		return ErrEmptyPassword
	}

	return nil
}

// ValidateUsername checks the username against the account rules:
// 3 to 20 characters, ASCII letters and digits only.
func ValidateUsername(username string) error {
	if username == "" {
		return ErrEmptyUsername
	}
	if len(username) < MinUsernameLength {
		return ErrUsernameTooShort
	}
	if len(username) > MaxUsernameLength {
		return ErrUsernameTooLong
	}
	for _, r := range username {
		if !isAlnum(r) {
			return ErrUsernameNotAlnum
		}
	}
	return nil
}

func isAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
