package service

import (
	"context"
	"strings"
	"time"

	"PairChat/data/store"
	usermodel "PairChat/module/user/model"
	"PairChat/tools/errs"
	"PairChat/tools/ids"
	"PairChat/tools/security"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLen = 6
	minUsernameLen = 2
)

type UserService struct {
	store store.UserStore
	jwt   security.Options
}

func NewUserService(st store.UserStore, jwt security.Options) *UserService {
	return &UserService{store: st, jwt: jwt}
}

// Register creates an account with a bcrypt-hashed password.
func (s *UserService) Register(ctx context.Context, username, password string) (*usermodel.User, error) {
	username = strings.TrimSpace(username)
	if len(username) < minUsernameLen {
		return nil, errs.ErrArgs.WithDetail("username too short")
	}
	if len(password) < minPasswordLen {
		return nil, errs.ErrArgs.WithDetail("password too short")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Wrap(err, "hash password")
	}
	now := time.Now()
	u := &usermodel.User{
		UserID:       ids.Generate(),
		Username:     username,
		PasswordHash: string(hash),
		CreateTime:   now,
		UpdateTime:   now,
	}
	if err := s.store.CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, errs.ErrDuplicateKey.WithDetail("username taken")
		}
		return nil, err
	}
	return u, nil
}

// Login checks credentials and issues a session token.
func (s *UserService) Login(ctx context.Context, username, password string) (string, *usermodel.User, error) {
	u, err := s.store.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", nil, errs.ErrPassword
		}
		return "", nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return "", nil, errs.ErrPassword
	}
	token, _, err := security.Generate(s.jwt, u.UserID)
	if err != nil {
		return "", nil, errors.Wrap(err, "sign token")
	}
	return token, u, nil
}

func (s *UserService) GetUser(ctx context.Context, userID int64) (*usermodel.User, error) {
	u, err := s.store.GetUserByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, errs.ErrRecordNotFound
	}
	return u, err
}

// ListUsers returns everyone except the caller (the "start a chat" picker).
func (s *UserService) ListUsers(ctx context.Context, exceptUserID int64) ([]usermodel.Public, error) {
	all, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]usermodel.Public, 0, len(all))
	for i := range all {
		if all[i].UserID == exceptUserID {
			continue
		}
		out = append(out, all[i].Public())
	}
	return out, nil
}

// ChangePassword verifies the old password before storing the new hash.
func (s *UserService) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error {
	if len(newPassword) < minPasswordLen {
		return errs.ErrArgs.WithDetail("password too short")
	}
	u, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return errs.ErrRecordNotFound
		}
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(oldPassword)) != nil {
		return errs.ErrPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return errors.Wrap(err, "hash password")
	}
	return s.store.UpdatePassword(ctx, userID, string(hash))
}

// UpdatePicture stores the avatar URL; blob upload is out of scope.
func (s *UserService) UpdatePicture(ctx context.Context, userID int64, pictureURL string) error {
	pictureURL = strings.TrimSpace(pictureURL)
	if pictureURL == "" {
		return errs.ErrArgs.WithDetail("pictureUrl empty")
	}
	err := s.store.UpdatePicture(ctx, userID, pictureURL)
	if errors.Is(err, store.ErrNotFound) {
		return errs.ErrRecordNotFound
	}
	return err
}
