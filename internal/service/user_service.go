package service

import (
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"inkpress/internal/auth"
	"inkpress/internal/cache"
	"inkpress/internal/errors"
	"inkpress/internal/model"
	"inkpress/internal/repository"
	"inkpress/internal/storage"
)

const (
	bcryptCost   = 10
	userCacheTTL = 5 * time.Minute

	// MaxAvatarSize is the upload cap for avatar images, in bytes.
	MaxAvatarSize = 500_000

	minPasswordLen = 6
)

// UserService exposes registration, login and profile operations.
type UserService interface {
	Register(ctx context.Context, name, email, password, password2 string) (*model.User, error)
	Login(ctx context.Context, email, password string) (token string, user *model.User, err error)
	GetUser(ctx context.Context, id uint) (*model.User, error)
	ListAuthors(ctx context.Context) ([]model.Author, error)
	ChangeAvatar(ctx context.Context, userID uint, avatar *multipart.FileHeader) (*model.User, error)
	EditUser(ctx context.Context, userID uint, name, email, currentPassword, newPassword, confirmPassword string) (*model.User, error)
}

type userService struct {
	users repository.UserRepository
	posts repository.PostRepository
	files *storage.FileStore
	jwt   *auth.JWTService
	cache *cache.Client
}

// NewUserService builds a UserService.
func NewUserService(
	users repository.UserRepository,
	posts repository.PostRepository,
	files *storage.FileStore,
	jwt *auth.JWTService,
	cache *cache.Client,
) UserService {
	return &userService{users: users, posts: posts, files: files, jwt: jwt, cache: cache}
}

func (s *userService) cacheKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

// Register creates a new user with a bcrypt-hashed password.
func (s *userService) Register(ctx context.Context, name, email, password, password2 string) (*model.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || password == "" || password2 == "" {
		return nil, errors.ErrMissingFields
	}
	if len(password) < minPasswordLen {
		return nil, errors.ErrPasswordTooShort
	}
	if password != password2 {
		return nil, errors.ErrPasswordMismatch
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, errors.ErrEmailTaken
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check email: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashed),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login authenticates a user and issues a signed token.
func (s *userService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", nil, errors.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, errors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, errors.ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(user.ID, user.Email)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}
	return token, user, nil
}

// GetUser returns a user by id, read through the cache.
func (s *userService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, userCacheTTL)
	}
	return user, nil
}

// ListAuthors returns every user with a live count of posts they authored.
func (s *userService) ListAuthors(ctx context.Context) ([]model.Author, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}

	authors := make([]model.Author, 0, len(users))
	for _, user := range users {
		count, err := s.posts.CountByCreator(ctx, user.ID)
		if err != nil {
			return nil, fmt.Errorf("count posts for user %d: %w", user.ID, err)
		}
		authors = append(authors, model.Author{User: user, Posts: count})
	}
	return authors, nil
}

// ChangeAvatar replaces the user's avatar image.
func (s *userService) ChangeAvatar(ctx context.Context, userID uint, avatar *multipart.FileHeader) (*model.User, error) {
	if avatar == nil {
		return nil, errors.ErrFileRequired
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}

	name, err := s.files.Save(avatar, MaxAvatarSize)
	if err != nil {
		return nil, err
	}

	oldAvatar := user.Avatar
	user.Avatar = name
	if err := s.users.Update(ctx, user); err != nil {
		// Compensate: the row was not updated, so the new file is an orphan.
		_ = s.files.Remove(name)
		return nil, fmt.Errorf("update user: %w", err)
	}
	if err := s.files.Remove(oldAvatar); err != nil {
		logCleanupFailure("avatar", oldAvatar, err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(userID))
	return user, nil
}

// EditUser updates name, email and password after verifying the current password.
func (s *userService) EditUser(ctx context.Context, userID uint, name, email, currentPassword, newPassword, confirmPassword string) (*model.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || currentPassword == "" || newPassword == "" {
		return nil, errors.ErrMissingFields
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}

	// The new email may not belong to a different existing user.
	if other, err := s.users.FindByEmail(ctx, email); err == nil && other != nil && other.ID != userID {
		return nil, errors.ErrEmailTaken
	} else if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return nil, errors.ErrWrongPassword
	}
	if newPassword != confirmPassword {
		return nil, errors.ErrPasswordMismatch
	}
	if len(newPassword) < minPasswordLen {
		return nil, errors.ErrPasswordTooShort
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user.Name = name
	user.Email = email
	user.PasswordHash = string(hashed)
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(userID))
	return user, nil
}
