package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/antartica/bookstore/internal/hash"
	"github.com/antartica/bookstore/internal/middleware/auth"
	"github.com/antartica/bookstore/internal/models"
	"github.com/antartica/bookstore/internal/repo"
	"github.com/antartica/bookstore/internal/transport"
	"github.com/antartica/bookstore/internal/validate"
)

type UserService struct {
	Repo      *repo.GormRepo
	JWTSecret []byte
}

func (s *UserService) Register(ctx context.Context, req transport.RegisterRequest) error {
	if req.Email == "" || req.Password == "" {
		return fmt.Errorf("missing email or password: %w", ErrValidation)
	}
	if !validate.ValidateEmail(req.Email) {
		return fmt.Errorf("invalid email format: %w", ErrValidation)
	}
	if req.RUT != "" && !validate.ValidateRUT(req.RUT) {
		return fmt.Errorf("invalid RUT: %w", ErrValidation)
	}
	if req.Telefono != "" && !validate.ValidateChileanPhone(req.Telefono) {
		return fmt.Errorf("invalid phone: %w", ErrValidation)
	}

	if _, err := s.Repo.GetUserByEmail(ctx, req.Email); err == nil {
		return fmt.Errorf("user exists: %w", ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	passwordHash, err := hash.HashPassword(req.Password)
	if err != nil {
		return err
	}

	user := &models.User{
		Nombre:       req.Nombre,
		Apellido:     req.Apellido,
		Email:        req.Email,
		PasswordHash: passwordHash,
		Telefono:     req.Telefono,
		Region:       req.Region,
		Comuna:       req.Comuna,
		RUT:          req.RUT,
		Role:         models.RoleClient,
	}
	return s.Repo.CreateUser(ctx, user)
}

func (s *UserService) Login(ctx context.Context, email, password string) (*transport.LoginResponse, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("missing email or password: %w", ErrValidation)
	}

	user, err := s.Repo.GetUserByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !hash.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	token, err := auth.SignToken(user, s.JWTSecret, time.Now())
	if err != nil {
		return nil, err
	}

	return &transport.LoginResponse{
		Token: token,
		User: transport.PublicUser{
			ID:     user.ID,
			Email:  user.Email,
			Role:   user.Role,
			Nombre: user.Nombre,
		},
	}, nil
}

func (s *UserService) GetUsers(ctx context.Context, role string, offset, limit int) (int64, []models.User, error) {
	return s.Repo.GetUsers(ctx, role, offset, limit)
}

// DeleteUser removes a user unless the target holds the admin role, which is
// exempt from deletion.
func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	user, err := s.Repo.GetUser(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("user not found: %w", ErrNotFound)
	}
	if err != nil {
		return err
	}
	if user.Role == models.RoleAdmin {
		return fmt.Errorf("cannot delete admin users: %w", ErrForbidden)
	}
	return s.Repo.DeleteUser(ctx, id)
}
