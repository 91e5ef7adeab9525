package auth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"

	"CotLens/internal/domain/models"
	"CotLens/internal/domain/repository"
	"CotLens/internal/service/ratelimit"
	"CotLens/pkg/logger"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrCodeInvalid        = errors.New("verification code invalid")
	ErrCodeExpired        = errors.New("verification code expired")
	ErrRateLimited        = errors.New("rate limited")
)

const (
	codeTTL    = 10 * time.Minute
	codeDigits = 6

	// Login attempts and code sends per account.
	loginBurst      = 5
	loginRefillSec  = 1.0 / 60 // one attempt back per minute
	sendBurst       = 3
	sendRefillSec   = 1.0 / 300 // one send back per five minutes
)

// CodeSender delivers a verification code to a phone number.
type CodeSender interface {
	SendCode(ctx context.Context, phone, code string) error
}

// Service implements account signup, login and phone verification.
type Service struct {
	store   repository.UserStore
	sender  CodeSender
	tokens  *JWTService
	limiter *ratelimit.Limiter
	log     *logger.Logger
	now     func() time.Time
	genCode func() (string, error)
}

// ServiceOption configures Service.
type ServiceOption func(*Service)

// WithServiceClock replaces the time source.
func WithServiceClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		s.now = now
	}
}

// WithCodeGenerator replaces the verification code source.
func WithCodeGenerator(gen func() (string, error)) ServiceOption {
	return func(s *Service) {
		s.genCode = gen
	}
}

func NewService(store repository.UserStore, sender CodeSender, tokens *JWTService, limiter *ratelimit.Limiter, log *logger.Logger, opts ...ServiceOption) *Service {
	s := &Service{
		store:   store,
		sender:  sender,
		tokens:  tokens,
		limiter: limiter,
		log:     log,
		now:     time.Now,
		genCode: randomCode,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Signup registers a new account with a bcrypt-hashed password.
func (s *Service) Signup(ctx context.Context, email, password, phone string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if existing, err := s.store.UserByEmail(ctx, email); err != nil {
		return nil, fmt.Errorf("lookup email: %w", err)
	} else if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Phone:        phone,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.Info("user signed up", logger.String("user_id", user.ID))
	return user, nil
}

// Login verifies credentials and issues an access token.
func (s *Service) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if !s.limiter.Allow("login:"+email, loginBurst, loginRefillSec) {
		return "", nil, ErrRateLimited
	}

	user, err := s.store.UserByEmail(ctx, email)
	if err != nil {
		return "", nil, fmt.Errorf("lookup email: %w", err)
	}
	if user == nil || !VerifyPassword(user.PasswordHash, password) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// SendCode generates a verification code for the user's phone and delivers
// it through the configured sender. Resends are rate limited per account.
func (s *Service) SendCode(ctx context.Context, userID string) error {
	if !s.limiter.Allow("send_code:"+userID, sendBurst, sendRefillSec) {
		return ErrRateLimited
	}

	user, err := s.store.UserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("lookup user: %w", err)
	}
	if user == nil {
		return ErrUserNotFound
	}

	code, err := s.genCode()
	if err != nil {
		return fmt.Errorf("generate code: %w", err)
	}

	vc := &models.VerificationCode{
		UserID:    user.ID,
		Code:      code,
		ExpiresAt: s.now().UTC().Add(codeTTL),
	}
	if err := s.store.SaveCode(ctx, vc); err != nil {
		return fmt.Errorf("save code: %w", err)
	}

	if err := s.sender.SendCode(ctx, user.Phone, code); err != nil {
		return fmt.Errorf("send code: %w", err)
	}
	s.log.Info("verification code sent", logger.String("user_id", user.ID))
	return nil
}

// ConfirmCode checks a submitted verification code and marks the phone
// verified on match. Codes are single use.
func (s *Service) ConfirmCode(ctx context.Context, userID, code string) error {
	vc, err := s.store.CodeByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("lookup code: %w", err)
	}
	if vc == nil {
		return ErrCodeInvalid
	}
	if s.now().After(vc.ExpiresAt) {
		_ = s.store.DeleteCode(ctx, userID)
		return ErrCodeExpired
	}
	if subtle.ConstantTimeCompare([]byte(vc.Code), []byte(code)) != 1 {
		return ErrCodeInvalid
	}

	if err := s.store.MarkPhoneVerified(ctx, userID); err != nil {
		return fmt.Errorf("mark verified: %w", err)
	}
	if err := s.store.DeleteCode(ctx, userID); err != nil {
		return fmt.Errorf("delete code: %w", err)
	}
	s.log.Info("phone verified", logger.String("user_id", userID))
	return nil
}

// randomCode returns a uniformly random 6-digit code, zero padded.
func randomCode() (string, error) {
	max := big.NewInt(1)
	for i := 0; i < codeDigits; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", codeDigits, n), nil
}
