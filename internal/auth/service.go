package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Rika4698/event-management-server/config"
	"github.com/Rika4698/event-management-server/internal/auditlog"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// dummyHash keeps the bcrypt compare on the login path even when the email is
// unknown, so the two failure cases are not distinguishable by timing.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

type Service interface {
	Register(ctx context.Context, in RegisterInput, ip, requestID string) error
	Login(ctx context.Context, in LoginInput, ip, requestID string) (string, *User, error)
	GetUserByID(userID uint) (*User, error)
}

type service struct {
	repo     Repository
	auditSvc auditlog.Service
	secret   string
	ttl      time.Duration
}

func NewService(r Repository, cfg *config.Config, auditSvc auditlog.Service) Service {
	return &service{
		repo:     r,
		auditSvc: auditSvc,
		secret:   cfg.JWTSecret,
		ttl:      time.Duration(cfg.JWTTTLHours) * time.Hour,
	}
}

// =============================
// Register
// =============================

type RegisterInput struct {
	Name     string
	Photo    string
	Email    string
	Password string
}

func (s *service) Register(ctx context.Context, in RegisterInput, ip, requestID string) error {
	_, err := s.repo.FindByEmail(in.Email)
	if err == nil {
		s.auditSvc.LogAction(ctx, nil, nil, auditlog.ActionUserRegistered,
			map[string]interface{}{"email": in.Email, "error": "email already registered"},
			ip, requestID, "failure")
		return ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &User{
		Name:         in.Name,
		Photo:        in.Photo,
		Email:        in.Email,
		PasswordHash: string(hash),
	}
	if err := s.repo.Create(user); err != nil {
		return err
	}

	s.auditSvc.LogAction(ctx, &user.ID, nil, auditlog.ActionUserRegistered,
		map[string]interface{}{"email": user.Email},
		ip, requestID, "success")

	return nil
}

// =============================
// Login
// =============================

type LoginInput struct {
	Email    string
	Password string
}

func (s *service) Login(ctx context.Context, in LoginInput, ip, requestID string) (string, *User, error) {
	user, err := s.repo.FindByEmail(in.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(in.Password))
			s.auditSvc.LogAction(ctx, nil, nil, auditlog.ActionUserLogin,
				map[string]interface{}{"email": in.Email, "error": "unknown email"},
				ip, requestID, "failure")
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		s.auditSvc.LogAction(ctx, &user.ID, nil, auditlog.ActionUserLogin,
			map[string]interface{}{"email": in.Email, "error": "password mismatch"},
			ip, requestID, "failure")
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	s.auditSvc.LogAction(ctx, &user.ID, nil, auditlog.ActionUserLogin,
		map[string]interface{}{"email": user.Email},
		ip, requestID, "success")

	return token, user, nil
}

func (s *service) generateToken(user *User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"exp":     time.Now().Add(s.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secret))
}

// =============================
// Get User By ID
// =============================

func (s *service) GetUserByID(userID uint) (*User, error) {
	return s.repo.FindByID(userID)
}
