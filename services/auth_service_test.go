package services

import (
	"context"
	"errors"
	"testing"

	"github.com/iamkameel/scrbrd-beta-2-sub004/models"
)

func TestRegisterRejectsShortPassword(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo())

	_, err := svc.Register(context.Background(), RegisterInput{
		FirstName: "Asha",
		Email:     "asha@example.com",
		Password:  "short",
	})
	if !errors.Is(err, ErrPasswordTooShort) {
		t.Fatalf("expected ErrPasswordTooShort, got %v", err)
	}
}

func TestRegisterNormalizesEmailAndAssignsViewer(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo)

	user, err := svc.Register(context.Background(), RegisterInput{
		FirstName: "Asha",
		LastName:  "Perera",
		Email:     "  Asha@Example.COM ",
		Password:  "correct-horse",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Email != "asha@example.com" {
		t.Errorf("expected normalized email, got %q", user.Email)
	}
	if user.Role != models.RoleViewer {
		t.Errorf("expected viewer role on sign-up, got %q", user.Role)
	}
	if user.PasswordHash != "" {
		t.Error("password hash leaked in the returned user")
	}

	stored, err := repo.GetByEmail(context.Background(), "asha@example.com")
	if err != nil {
		t.Fatalf("stored user not found: %v", err)
	}
	if stored.PasswordHash == "" || stored.PasswordHash == "correct-horse" {
		t.Error("stored password must be a bcrypt hash")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo())
	input := RegisterInput{FirstName: "Asha", Email: "asha@example.com", Password: "correct-horse"}

	if _, err := svc.Register(context.Background(), input); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	_, err := svc.Register(context.Background(), input)
	if !errors.Is(err, ErrUserEmailConflict) {
		t.Fatalf("expected ErrUserEmailConflict, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo())
	if _, err := svc.Register(context.Background(), RegisterInput{
		FirstName: "Asha",
		Email:     "asha@example.com",
		Password:  "correct-horse",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	t.Run("valid credentials", func(t *testing.T) {
		user, err := svc.Login(context.Background(), LoginInput{Email: "Asha@example.com", Password: "correct-horse"})
		if err != nil {
			t.Fatalf("login failed: %v", err)
		}
		if user.PasswordHash != "" {
			t.Error("password hash leaked in the returned user")
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), LoginInput{Email: "asha@example.com", Password: "wrong"})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(context.Background(), LoginInput{Email: "nobody@example.com", Password: "correct-horse"})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})
}
