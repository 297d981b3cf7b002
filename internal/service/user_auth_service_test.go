package service

import (
	"context"
	"errors"
	"testing"

	"github.com/blogicum-next/internal/config"
	"github.com/blogicum-next/internal/repository"

	"gorm.io/gorm"
)

func newUserAuthServiceForTest(t *testing.T, db *gorm.DB) *UserAuthService {
	t.Helper()
	cfg := &config.Config{}
	cfg.UserJWT.SecretKey = "test-secret"
	cfg.UserJWT.ExpireHours = 1
	cfg.Security.PasswordPolicy = config.PasswordPolicyConfig{
		MinLength:     8,
		RequireUpper:  true,
		RequireLower:  true,
		RequireNumber: true,
	}
	return NewUserAuthService(cfg, repository.NewUserRepository(db))
}

func TestRegisterValidationAndUniqueness(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newUserAuthServiceForTest(t, db)

	good := RegisterInput{
		Username: "reg.user-1",
		Email:    "Reg.User@Example.com",
		Password: "Password1",
	}
	user, err := svc.Register(good)
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Email != "reg.user@example.com" {
		t.Fatalf("email should be normalized, got %q", user.Email)
	}
	if user.PasswordHash == "Password1" || user.PasswordHash == "" {
		t.Fatalf("password must be hashed")
	}

	if _, err := svc.Register(RegisterInput{Username: "reg.user-1", Email: "other@example.com", Password: "Password1"}); !errors.Is(err, ErrUsernameExists) {
		t.Fatalf("duplicate username want ErrUsernameExists got %v", err)
	}
	if _, err := svc.Register(RegisterInput{Username: "reg-user-2", Email: "reg.user@example.com", Password: "Password1"}); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("duplicate email want ErrEmailExists got %v", err)
	}
	if _, err := svc.Register(RegisterInput{Username: "bad name!", Email: "x@example.com", Password: "Password1"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("bad username want ErrValidation got %v", err)
	}
	if _, err := svc.Register(RegisterInput{Username: "reg-user-3", Email: "not-an-email", Password: "Password1"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("bad email want ErrValidation got %v", err)
	}
	if _, err := svc.Register(RegisterInput{Username: "reg-user-4", Email: "u4@example.com", Password: "short"}); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("weak password want ErrWeakPassword got %v", err)
	}
}

func TestLoginAndTokenRoundTrip(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newUserAuthServiceForTest(t, db)
	ctx := context.Background()

	if _, err := svc.Register(RegisterInput{Username: "login-user", Email: "login@example.com", Password: "Password1"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, _, _, err := svc.Login(ctx, "login-user", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password want ErrInvalidCredentials got %v", err)
	}
	if _, _, _, err := svc.Login(ctx, "no-such-user", "Password1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user want ErrInvalidCredentials got %v", err)
	}

	user, token, _, err := svc.Login(ctx, "login-user", "Password1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.LastLoginAt == nil {
		t.Fatalf("last login should be stamped")
	}

	claims, err := svc.ParseUserJWT(token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if claims.UserID != user.ID || claims.Username != "login-user" {
		t.Fatalf("claims mismatch: %+v", claims)
	}

	if _, err := svc.ParseUserJWT(token + "tampered"); err == nil {
		t.Fatalf("tampered token should fail")
	}
}

func TestChangePasswordRevokesTokens(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newUserAuthServiceForTest(t, db)
	ctx := context.Background()

	registered, err := svc.Register(RegisterInput{Username: "rotate-user", Email: "rotate@example.com", Password: "Password1"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if err := svc.ChangePassword(ctx, registered.ID, "wrong", "Password2"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong old password want ErrInvalidCredentials got %v", err)
	}
	if err := svc.ChangePassword(ctx, registered.ID, "Password1", "weak"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("weak new password want ErrWeakPassword got %v", err)
	}
	if err := svc.ChangePassword(ctx, registered.ID, "Password1", "Password2"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}

	reloaded, err := svc.GetByID(registered.ID)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.TokenVersion != registered.TokenVersion+1 {
		t.Fatalf("token version want %d got %d", registered.TokenVersion+1, reloaded.TokenVersion)
	}
	if reloaded.TokenInvalidBefore == nil {
		t.Fatalf("token invalid-before should be stamped")
	}

	if _, _, _, err := svc.Login(ctx, "rotate-user", "Password1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("old password should be rejected")
	}
	if _, _, _, err := svc.Login(ctx, "rotate-user", "Password2"); err != nil {
		t.Fatalf("new password login failed: %v", err)
	}
}

func TestUpdateProfileKeepsUniqueness(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newUserAuthServiceForTest(t, db)
	ctx := context.Background()

	first, err := svc.Register(RegisterInput{Username: "profile-a", Email: "pa@example.com", Password: "Password1"})
	if err != nil {
		t.Fatalf("register first failed: %v", err)
	}
	if _, err := svc.Register(RegisterInput{Username: "profile-b", Email: "pb@example.com", Password: "Password1"}); err != nil {
		t.Fatalf("register second failed: %v", err)
	}

	if _, err := svc.UpdateProfile(ctx, first.ID, ProfileUpdateInput{Username: "profile-b", Email: "pa@example.com"}); !errors.Is(err, ErrUsernameExists) {
		t.Fatalf("taken username want ErrUsernameExists got %v", err)
	}
	if _, err := svc.UpdateProfile(ctx, first.ID, ProfileUpdateInput{Username: "profile-a", Email: "pb@example.com"}); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("taken email want ErrEmailExists got %v", err)
	}

	updated, err := svc.UpdateProfile(ctx, first.ID, ProfileUpdateInput{
		Username:  "profile-a2",
		Email:     "pa2@example.com",
		FirstName: "Ada",
		LastName:  "Lovelace",
	})
	if err != nil {
		t.Fatalf("update profile failed: %v", err)
	}
	if updated.Username != "profile-a2" || updated.FirstName != "Ada" {
		t.Fatalf("profile not updated: %+v", updated)
	}
}
