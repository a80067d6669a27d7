package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/hackhub/hackathon-backend/internal/auth"
	"github.com/hackhub/hackathon-backend/internal/domain"
	"github.com/hackhub/hackathon-backend/internal/repo"
)

func newServiceDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), fmt.Sprintf("svc_test_%d.db", time.Now().UnixNano()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

// captureMailer records the last confirmation hand-off instead of sending.
type captureMailer struct {
	to    string
	token string
	fail  bool
}

func (m *captureMailer) SendConfirmation(_ context.Context, to, token string) error {
	if m.fail {
		return errors.New("relay down")
	}
	m.to, m.token = to, token
	return nil
}

func newAccountService(t *testing.T) (*AccountService, *captureMailer) {
	t.Helper()
	db := newServiceDB(t)
	mailer := &captureMailer{}
	tokens := auth.NewTokenManager("svc-test-secret", "svc", time.Hour)
	return NewAccountService(db, tokens, mailer, time.Hour), mailer
}

func registerInput(email string) RegisterInput {
	return RegisterInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     email,
		Password:  "hunter2hunter2",
		ShirtSize: "M",
	}
}

func TestAccountService_Register_HappyPath(t *testing.T) {
	svc, mailer := newAccountService(t)

	acc, err := svc.Register(context.Background(), registerInput("Ada@Example.COM"))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if acc.Email != "ada@example.com" {
		t.Fatalf("email must be lowercased, got %q", acc.Email)
	}
	if acc.Confirmed {
		t.Fatalf("fresh account must be unconfirmed")
	}
	if acc.PasswordHash == "hunter2hunter2" || acc.PasswordHash == "" {
		t.Fatalf("password must be stored hashed")
	}
	if !acc.HasPermission(domain.PermissionHacker) {
		t.Fatalf("registration should grant the hacker permission")
	}
	if mailer.to != "ada@example.com" || mailer.token == "" {
		t.Fatalf("confirmation email not handed off: %+v", mailer)
	}
}

func TestAccountService_Register_DuplicateEmail(t *testing.T) {
	svc, _ := newAccountService(t)

	if _, err := svc.Register(context.Background(), registerInput("dup@x.io")); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	_, err := svc.Register(context.Background(), registerInput("dup@x.io"))
	if !errors.Is(err, ErrDuplicateAccount) {
		t.Fatalf("expected ErrDuplicateAccount, got %v", err)
	}
}

func TestAccountService_Register_MailerFailure(t *testing.T) {
	svc, mailer := newAccountService(t)
	mailer.fail = true

	_, err := svc.Register(context.Background(), registerInput("mail@x.io"))
	if !errors.Is(err, ErrEmailSend) {
		t.Fatalf("expected ErrEmailSend, got %v", err)
	}
	// The account row survives so the token can be re-issued out of band.
	if _, err := svc.FindByEmail(context.Background(), "mail@x.io"); err != nil {
		t.Fatalf("account should exist after mail failure, got %v", err)
	}
}

func TestAccountService_Login(t *testing.T) {
	svc, _ := newAccountService(t)

	created, err := svc.Register(context.Background(), registerInput("login@x.io"))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	token, acc, err := svc.Login(context.Background(), "LOGIN@x.io", "hunter2hunter2")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token == "" || acc.ID != created.ID {
		t.Fatalf("unexpected login result: token=%q acc=%+v", token, acc)
	}

	// Wrong password and unknown email are indistinguishable.
	if _, _, err := svc.Login(context.Background(), "login@x.io", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "ghost@x.io", "hunter2hunter2"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestAccountService_Confirm_TokenFlow(t *testing.T) {
	svc, mailer := newAccountService(t)

	created, err := svc.Register(context.Background(), registerInput("confirm@x.io"))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	acc, err := svc.Confirm(context.Background(), mailer.token)
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if acc.ID != created.ID || !acc.Confirmed {
		t.Fatalf("expected confirmed account, got %+v", acc)
	}

	// Single use: the same token cannot be redeemed twice.
	if _, err := svc.Confirm(context.Background(), mailer.token); !errors.Is(err, ErrInvalidConfirmationToken) {
		t.Fatalf("expected ErrInvalidConfirmationToken on reuse, got %v", err)
	}
}

func TestAccountService_Confirm_ExpiredToken(t *testing.T) {
	db := newServiceDB(t)
	mailer := &captureMailer{}
	tokens := auth.NewTokenManager("svc-test-secret", "svc", time.Hour)
	svc := NewAccountService(db, tokens, mailer, time.Hour)

	created, err := svc.Register(context.Background(), registerInput("late@x.io"))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	// Re-issue with a lapsed window; the replacement supersedes the original.
	expired, err := repo.CreateConfirmationToken(context.Background(), db, created.ID, repo.NewTokenValue(), -time.Minute)
	if err != nil {
		t.Fatalf("CreateConfirmationToken: %v", err)
	}

	if _, err := svc.Confirm(context.Background(), expired.Token); !errors.Is(err, ErrInvalidConfirmationToken) {
		t.Fatalf("expected ErrInvalidConfirmationToken for expired token, got %v", err)
	}
}

func TestAccountService_Confirm_UnknownToken(t *testing.T) {
	svc, _ := newAccountService(t)

	if _, err := svc.Confirm(context.Background(), "no-such-token"); !errors.Is(err, ErrInvalidConfirmationToken) {
		t.Fatalf("expected ErrInvalidConfirmationToken, got %v", err)
	}
}

func TestAccountService_Patch_WhitelistAndRehash(t *testing.T) {
	svc, _ := newAccountService(t)

	created, err := svc.Register(context.Background(), registerInput("patch@x.io"))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	oldHash := created.PasswordHash

	err = svc.Patch(context.Background(), created.ID, map[string]any{
		"firstName": "Grace",
		"password":  "newpassword123",
		"email":     "evil@x.io", // not whitelisted, must be ignored
	})
	if err != nil {
		t.Fatalf("Patch: %v", err)
	}

	got, err := svc.FindByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.FirstName != "Grace" {
		t.Fatalf("firstName not updated: %+v", got)
	}
	if got.Email != "patch@x.io" {
		t.Fatalf("email must not be patchable, got %q", got.Email)
	}
	if got.PasswordHash == oldHash || got.PasswordHash == "newpassword123" {
		t.Fatalf("password must be re-hashed on patch")
	}

	// The new password must authenticate.
	if _, _, err := svc.Login(context.Background(), "patch@x.io", "newpassword123"); err != nil {
		t.Fatalf("login with patched password: %v", err)
	}
}

func TestAccountService_Patch_UnknownAccount(t *testing.T) {
	svc, _ := newAccountService(t)

	err := svc.Patch(context.Background(), "b4c8b9b0-0000-0000-0000-000000000000", map[string]any{"firstName": "X"})
	if !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestAccountService_SetConfirmed_AdminOverride(t *testing.T) {
	svc, _ := newAccountService(t)

	created, err := svc.Register(context.Background(), registerInput("admin@x.io"))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if err := svc.SetConfirmed(context.Background(), created.ID, true); err != nil {
		t.Fatalf("SetConfirmed: %v", err)
	}
	got, _ := svc.FindByID(context.Background(), created.ID)
	if !got.Confirmed {
		t.Fatalf("expected confirmed=true after override")
	}

	if err := svc.SetConfirmed(context.Background(), "b4c8b9b0-0000-0000-0000-000000000001", true); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}
