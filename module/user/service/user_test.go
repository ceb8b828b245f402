package service

import (
	"context"
	"errors"
	"testing"

	"PairChat/data/store"
	"PairChat/tools/errs"
	"PairChat/tools/security"

	"golang.org/x/crypto/bcrypt"
)

func newService() *UserService {
	return NewUserService(store.NewMemory(), security.DefaultOptions([]byte("test-secret")))
}

func TestRegisterValidation(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, "a", "longenough"); !errors.Is(err, errs.ErrArgs) {
		t.Fatalf("short username err = %v", err)
	}
	if _, err := svc.Register(ctx, "alice", "short"); !errors.Is(err, errs.ErrArgs) {
		t.Fatalf("short password err = %v", err)
	}

	u, err := svc.Register(ctx, "  alice  ", "password1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if u.Username != "alice" || u.UserID == 0 {
		t.Fatalf("user = %+v", u)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("password1")) != nil {
		t.Fatal("stored hash does not match password")
	}

	if _, err := svc.Register(ctx, "alice", "password2"); !errors.Is(err, errs.ErrDuplicateKey) {
		t.Fatalf("duplicate username err = %v", err)
	}
}

func TestLogin(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	u, _ := svc.Register(ctx, "alice", "password1")

	// wrong password and unknown user look identical to the caller
	if _, _, err := svc.Login(ctx, "alice", "nope"); !errors.Is(err, errs.ErrPassword) {
		t.Fatalf("wrong password err = %v", err)
	}
	if _, _, err := svc.Login(ctx, "nobody", "password1"); !errors.Is(err, errs.ErrPassword) {
		t.Fatalf("unknown user err = %v", err)
	}

	token, got, err := svc.Login(ctx, "alice", "password1")
	if err != nil || got.UserID != u.UserID {
		t.Fatalf("login = %v, %v", got, err)
	}
	claims, err := security.Verify(security.DefaultOptions([]byte("test-secret")), token)
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}
	uid, err := claims.UserID()
	if err != nil || uid != u.UserID {
		t.Fatalf("token subject = %d, %v", uid, err)
	}
}

func TestChangePassword(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	u, _ := svc.Register(ctx, "alice", "password1")

	if err := svc.ChangePassword(ctx, u.UserID, "wrong", "password2"); !errors.Is(err, errs.ErrPassword) {
		t.Fatalf("wrong old password err = %v", err)
	}
	if err := svc.ChangePassword(ctx, u.UserID, "password1", "short"); !errors.Is(err, errs.ErrArgs) {
		t.Fatalf("short new password err = %v", err)
	}
	if err := svc.ChangePassword(ctx, u.UserID, "password1", "password2"); err != nil {
		t.Fatalf("change password: %v", err)
	}
	if _, _, err := svc.Login(ctx, "alice", "password2"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
	if _, _, err := svc.Login(ctx, "alice", "password1"); !errors.Is(err, errs.ErrPassword) {
		t.Fatal("old password must stop working")
	}
}

func TestUpdatePictureAndListUsers(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	a, _ := svc.Register(ctx, "alice", "password1")
	b, _ := svc.Register(ctx, "bob", "password1")

	if err := svc.UpdatePicture(ctx, a.UserID, " http://pic "); err != nil {
		t.Fatalf("update picture: %v", err)
	}
	got, _ := svc.GetUser(ctx, a.UserID)
	if got.PictureURL != "http://pic" {
		t.Fatalf("picture = %q", got.PictureURL)
	}
	if err := svc.UpdatePicture(ctx, a.UserID, "  "); !errors.Is(err, errs.ErrArgs) {
		t.Fatalf("blank url err = %v", err)
	}

	users, err := svc.ListUsers(ctx, a.UserID)
	if err != nil || len(users) != 1 || users[0].UserID != b.UserID {
		t.Fatalf("list users = %v, %v", users, err)
	}
}
