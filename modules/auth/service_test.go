package auth

import (
	"context"
	"errors"
	"testing"

	domain "github.com/Community-Programmer/task-manager/domain/user"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestService creates an AuthService backed by an in-memory SQLite
// database.
func setupTestService(t *testing.T) *AuthService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&domain.User{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	repo := NewUserRepository(db)
	hasher := NewPasswordHasher()
	jwtManager := NewJWTManager(testJWTConfig())

	return NewAuthService(repo, hasher, jwtManager)
}

func TestAuthService_Register(t *testing.T) {
	service := setupTestService(t)
	ctx := context.Background()

	user, err := service.Register(ctx, "A", "a@x.com", "secret1")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if user.ID == "" {
		t.Error("Register() returned user without ID")
	}
	if user.Name != "A" {
		t.Errorf("user.Name = %q, want %q", user.Name, "A")
	}
	if user.Email != "a@x.com" {
		t.Errorf("user.Email = %q, want %q", user.Email, "a@x.com")
	}
	if user.PasswordHash == "secret1" {
		t.Error("Register() stored the plaintext password")
	}
	if user.PasswordHash == "" {
		t.Error("Register() stored no password hash")
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	service := setupTestService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		userName string
		email    string
		password string
		wantErr  error
	}{
		{
			name:     "missing name",
			userName: "",
			email:    "a@x.com",
			password: "secret1",
			wantErr:  ErrMissingFields,
		},
		{
			name:     "missing email",
			userName: "A",
			email:    "",
			password: "secret1",
			wantErr:  ErrMissingFields,
		},
		{
			name:     "missing password",
			userName: "A",
			email:    "a@x.com",
			password: "",
			wantErr:  ErrMissingFields,
		},
		{
			name:     "malformed email",
			userName: "A",
			email:    "not-an-email",
			password: "secret1",
			wantErr:  ErrInvalidEmail,
		},
		{
			name:     "short password",
			userName: "A",
			email:    "a@x.com",
			password: "12345",
			wantErr:  ErrPasswordTooShort,
		},
		{
			name:     "overlong password",
			userName: "A",
			email:    "a@x.com",
			password: strings73(),
			wantErr:  ErrPasswordTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Register(ctx, tt.userName, tt.email, tt.password)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Register() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// strings73 returns a 73-byte password, one over bcrypt's limit.
func strings73() string {
	b := make([]byte, 73)
	for i := range b {
		b[i] = 'a'
	}
	return string(b)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	service := setupTestService(t)
	ctx := context.Background()

	if _, err := service.Register(ctx, "A", "a@x.com", "secret1"); err != nil {
		t.Fatalf("first Register() error = %v", err)
	}

	_, err := service.Register(ctx, "Another A", "a@x.com", "different-password")
	if !errors.Is(err, ErrUserExists) {
		t.Errorf("second Register() error = %v, want %v", err, ErrUserExists)
	}
}

func TestAuthService_Login(t *testing.T) {
	service := setupTestService(t)
	ctx := context.Background()

	registered, err := service.Register(ctx, "A", "a@x.com", "secret1")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	token, user, err := service.Login(ctx, "a@x.com", "secret1")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if token == "" {
		t.Fatal("Login() returned empty token")
	}
	if user.ID != registered.ID {
		t.Errorf("Login() user.ID = %v, want %v", user.ID, registered.ID)
	}

	// The token must decode back to the same identity.
	claims, err := service.ValidateToken(ctx, token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.UserID != registered.ID {
		t.Errorf("claims.UserID = %v, want %v", claims.UserID, registered.ID)
	}
	if claims.Email != "a@x.com" {
		t.Errorf("claims.Email = %v, want %v", claims.Email, "a@x.com")
	}
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	service := setupTestService(t)
	ctx := context.Background()

	if _, err := service.Register(ctx, "A", "a@x.com", "secret1"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	// A wrong password and an unknown email must be indistinguishable.
	_, _, wrongPassErr := service.Login(ctx, "a@x.com", "wrong-password")
	if !errors.Is(wrongPassErr, ErrInvalidCredentials) {
		t.Errorf("Login() with wrong password error = %v, want %v", wrongPassErr, ErrInvalidCredentials)
	}

	_, _, unknownErr := service.Login(ctx, "nobody@x.com", "secret1")
	if !errors.Is(unknownErr, ErrInvalidCredentials) {
		t.Errorf("Login() with unknown email error = %v, want %v", unknownErr, ErrInvalidCredentials)
	}

	if wrongPassErr.Error() != unknownErr.Error() {
		t.Errorf("error messages differ: %q vs %q", wrongPassErr.Error(), unknownErr.Error())
	}
}

func TestAuthService_GetUser(t *testing.T) {
	service := setupTestService(t)
	ctx := context.Background()

	registered, err := service.Register(ctx, "A", "a@x.com", "secret1")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	user, err := service.GetUser(ctx, registered.ID)
	if err != nil {
		t.Fatalf("GetUser() error = %v", err)
	}
	if user.Email != "a@x.com" {
		t.Errorf("user.Email = %v, want %v", user.Email, "a@x.com")
	}

	_, err = service.GetUser(ctx, "no-such-user")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("GetUser() error = %v, want %v", err, ErrUserNotFound)
	}
}

func TestUserRepository_EmailExists(t *testing.T) {
	service := setupTestService(t)
	ctx := context.Background()

	exists, err := service.repo.EmailExists("a@x.com")
	if err != nil {
		t.Fatalf("EmailExists() error = %v", err)
	}
	if exists {
		t.Error("EmailExists() = true for unregistered email")
	}

	if _, err := service.Register(ctx, "A", "a@x.com", "secret1"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	exists, err = service.repo.EmailExists("a@x.com")
	if err != nil {
		t.Fatalf("EmailExists() error = %v", err)
	}
	if !exists {
		t.Error("EmailExists() = false for registered email")
	}

	// Stored emails are case-sensitive; a different casing is a different
	// address.
	exists, err = service.repo.EmailExists("A@X.COM")
	if err != nil {
		t.Fatalf("EmailExists() error = %v", err)
	}
	if exists {
		t.Error("EmailExists() = true for differently-cased email")
	}
}
