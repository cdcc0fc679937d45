package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewUser(t *testing.T) {
	// Test valid user creation
	validUsername := "ssh"
	validPassword := "mypass123"

	user, err := NewUser(validUsername, validPassword)

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if user.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if user.Username != validUsername {
		t.Errorf("Expected username %s, got %s", validUsername, user.Username)
	}

	if user.Password != validPassword {
		t.Errorf("Expected password %s, got %s", validPassword, user.Password)
	}

	if user.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt time")
	}

	// Test invalid usernames
	_, err = NewUser("", validPassword)
	if err != ErrEmptyUsername {
		t.Errorf("Expected error %v, got %v", ErrEmptyUsername, err)
	}

	_, err = NewUser("ab", validPassword)
	if err != ErrUsernameTooShort {
		t.Errorf("Expected error %v, got %v", ErrUsernameTooShort, err)
	}

	_, err = NewUser("abcdefghijklmnopqrstu", validPassword)
	if err != ErrUsernameTooLong {
		t.Errorf("Expected error %v, got %v", ErrUsernameTooLong, err)
	}

	_, err = NewUser("bad name!", validPassword)
	if err != ErrUsernameNotAlnum {
		t.Errorf("Expected error %v, got %v", ErrUsernameNotAlnum, err)
	}
}

func TestUserValidate(t *testing.T) {
	validUser := User{
		ID:             uuid.New(),
		Username:       "ssh123",
		HashedPassword: "hashedpassword123",
	}

	// Test valid user (existing user, hash only)
	if err := validUser.Validate(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	// Test invalid ID
	invalidUser := validUser
	invalidUser.ID = uuid.Nil
	if err := invalidUser.Validate(); err != ErrEmptyUserID {
		t.Errorf("Expected error %v, got %v", ErrEmptyUserID, err)
	}

	// Test invalid username
	invalidUser = validUser
	invalidUser.Username = ""
	if err := invalidUser.Validate(); err != ErrEmptyUsername {
		t.Errorf("Expected error %v, got %v", ErrEmptyUsername, err)
	}

	// Test no password at all
	invalidUser = validUser
	invalidUser.HashedPassword = ""
	if err := invalidUser.Validate(); err != ErrEmptyPassword {
		t.Errorf("Expected error %v, got %v", ErrEmptyPassword, err)
	}

	// Test overlong plaintext password
	invalidUser = validUser
	invalidUser.Password = string(make([]byte, 73))
	if err := invalidUser.Validate(); err != ErrPasswordTooLong {
		t.Errorf("Expected error %v, got %v", ErrPasswordTooLong, err)
	}
}

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  error
	}{
		{"valid lowercase", "ssh", nil},
		{"valid mixed", "Ssh123", nil},
		{"valid max length", "abcdefghij0123456789", nil},
		{"empty", "", ErrEmptyUsername},
		{"too short", "ab", ErrUsernameTooShort},
		{"too long", "abcdefghij01234567890", ErrUsernameTooLong},
		{"whitespace", "a b c", ErrUsernameNotAlnum},
		{"punctuation", "user-name", ErrUsernameNotAlnum},
		{"non-ascii", "användare", ErrUsernameNotAlnum},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateUsername(tt.username); err != tt.wantErr {
				t.Errorf("ValidateUsername(%q) = %v, want %v", tt.username, err, tt.wantErr)
			}
		})
	}
}
