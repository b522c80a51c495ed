package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/venue-next/internal/config"
	"github.com/venue-next/internal/models"
	"github.com/venue-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAuthServiceTest(t *testing.T) (*AuthService, *models.Admin) {
	t.Helper()
	dsn := fmt.Sprintf("file:auth_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Admin{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	cfg := &config.Config{}
	cfg.JWT.SecretKey = "test-secret"
	cfg.JWT.ExpireHours = 1
	cfg.Security.PasswordPolicy = config.PasswordPolicyConfig{MinLength: 8, RequireNumber: true}

	svc := NewAuthService(cfg, repository.NewAdminRepository(db))
	hash, err := svc.HashPassword("Secret123")
	if err != nil {
		t.Fatalf("hash password failed: %v", err)
	}
	admin := &models.Admin{Username: "manager", DisplayName: "Manager", PasswordHash: hash}
	if err := db.Create(admin).Error; err != nil {
		t.Fatalf("create admin failed: %v", err)
	}
	return svc, admin
}

func TestLogin(t *testing.T) {
	svc, admin := setupAuthServiceTest(t)

	if _, _, _, err := svc.Login(context.Background(), "manager", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("want ErrInvalidCredentials got %v", err)
	}
	if _, _, _, err := svc.Login(context.Background(), "nobody", "Secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("want ErrInvalidCredentials got %v", err)
	}

	logged, token, expiresAt, err := svc.Login(context.Background(), " manager ", "Secret123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if logged.ID != admin.ID || logged.LastLoginAt == nil || token == "" {
		t.Fatalf("unexpected login result: %+v", logged)
	}
	if time.Until(expiresAt) > time.Hour || time.Until(expiresAt) < 50*time.Minute {
		t.Fatalf("unexpected expiry: %s", expiresAt)
	}

	claims, err := svc.ParseJWT(token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if claims.AdminID != admin.ID || claims.Username != "manager" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if _, err := svc.CheckTokenState(context.Background(), claims); err != nil {
		t.Fatalf("fresh token should be valid: %v", err)
	}
}

func TestParseJWTRejectsForeignSecret(t *testing.T) {
	svc, admin := setupAuthServiceTest(t)
	token, _, err := svc.GenerateJWT(admin)
	if err != nil {
		t.Fatalf("generate token failed: %v", err)
	}
	other := NewAuthService(&config.Config{JWT: config.JWTConfig{SecretKey: "other"}}, nil)
	if _, err := other.ParseJWT(token); err == nil {
		t.Fatalf("token signed with another secret should be rejected")
	}
}

func TestChangePasswordRevokesTokens(t *testing.T) {
	svc, admin := setupAuthServiceTest(t)
	token, _, err := svc.GenerateJWT(admin)
	if err != nil {
		t.Fatalf("generate token failed: %v", err)
	}
	claims, err := svc.ParseJWT(token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}

	if err := svc.ChangePassword(context.Background(), admin.ID, "bad", "NewSecret1"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("want ErrInvalidPassword got %v", err)
	}
	if err := svc.ChangePassword(context.Background(), admin.ID, "Secret123", "Secret123"); !errors.Is(err, ErrPasswordUnchanged) {
		t.Fatalf("want ErrPasswordUnchanged got %v", err)
	}
	err = svc.ChangePassword(context.Background(), admin.ID, "Secret123", "short")
	if !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("want ErrWeakPassword got %v", err)
	}
	var policyErr PasswordPolicyError
	if !errors.As(err, &policyErr) || policyErr.Key() != "error.password_min_length" || policyErr.Args()[0] != 8 {
		t.Fatalf("unexpected policy error: %v", err)
	}

	if err := svc.ChangePassword(context.Background(), admin.ID, "Secret123", "NewSecret1"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}
	if _, err := svc.CheckTokenState(context.Background(), claims); !errors.Is(err, ErrTokenRevoked) {
		t.Fatalf("old token should be revoked, got %v", err)
	}
	if _, _, _, err := svc.Login(context.Background(), "manager", "NewSecret1"); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
}

func TestValidatePasswordPolicy(t *testing.T) {
	policy := config.PasswordPolicyConfig{MinLength: 6, RequireUpper: true, RequireLower: true, RequireNumber: true, RequireSpecial: true}
	cases := map[string]string{
		"Ab1!":     "error.password_min_length",
		"abcdef1!": "error.password_require_upper",
		"ABCDEF1!": "error.password_require_lower",
		"Abcdefg!": "error.password_require_number",
		"Abcdefg1": "error.password_require_special",
	}
	for password, key := range cases {
		err := validatePassword(policy, password)
		var policyErr PasswordPolicyError
		if !errors.As(err, &policyErr) || policyErr.Key() != key {
			t.Fatalf("password %q want %s got %v", password, key, err)
		}
	}
	if err := validatePassword(policy, "Abcdef1!"); err != nil {
		t.Fatalf("strong password rejected: %v", err)
	}
}
