package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

// Clock は現在時刻を提供します。
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// Config はトークン発行の設定です。
type Config struct {
	Secret   []byte
	Issuer   string
	TokenTTL time.Duration
	// BcryptCost defaults to bcrypt.DefaultCost.
	BcryptCost int
}

// Claims はセッショントークンのクレームです。
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Authenticator はトークンを検証してオペレーターを返すインターフェースです。
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*Operator, error)
}

// UseCase はサインインユースケースの公開インターフェースです。
type UseCase interface {
	Authenticator
	SignIn(ctx context.Context, email, password string) (*Session, error)
	Register(ctx context.Context, in RegisterInput) (*Operator, error)
}

// RegisterInput はオペレーター登録時の入力です。
type RegisterInput struct {
	Email    string
	Name     string
	Password string
}

// Service はオペレーター認証に関するユースケースをまとめます。
type Service struct {
	repo  Repository
	clock Clock
	cfg   Config
}

// NewService は Service を生成します。
func NewService(repo Repository, clock Clock, cfg Config) *Service {
	if clock == nil {
		clock = realClock{}
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 12 * time.Hour
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	return &Service{repo: repo, clock: clock, cfg: cfg}
}

// Register は新しいオペレーターを登録します。
func (s *Service) Register(ctx context.Context, in RegisterInput) (*Operator, error) {
	email, err := normalizeEmail(in.Email)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ErrInvalidName
	}

	if err := validatePassword(in.Password); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, ErrOperatorNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("auth: hash password: %w", err)
	}

	now := s.clock.Now()
	return s.repo.Create(ctx, &Operator{
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		Status:       StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

// SignIn はメールアドレスとパスワードを検証し、セッションを発行します。
func (s *Service) SignIn(ctx context.Context, email, password string) (*Session, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	op, err := s.repo.FindByEmail(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if op.Status != StatusActive {
		return nil, ErrOperatorNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(op.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := s.clock.Now()
	expiresAt := now.Add(s.cfg.TokenTTL)
	claims := Claims{
		Email: op.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   op.ID,
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.cfg.Secret)
	if err != nil {
		return nil, fmt.Errorf("auth: sign token: %w", err)
	}

	return &Session{Token: token, ExpiresAt: expiresAt, Operator: op}, nil
}

// Authenticate はトークンを検証し、対応するオペレーターを返します。
func (s *Service) Authenticate(ctx context.Context, token string) (*Operator, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrUnauthenticated
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return s.cfg.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.clock.Now),
		jwt.WithIssuer(s.cfg.Issuer),
	)
	if err != nil || !parsed.Valid {
		return nil, ErrUnauthenticated
	}

	op, err := s.repo.FindByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, ErrOperatorNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}
	if op.Status != StatusActive {
		return nil, ErrUnauthenticated
	}
	return op, nil
}

func normalizeEmail(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrInvalidEmail
	}

	addr, err := mail.ParseAddress(trimmed)
	if err != nil {
		return "", ErrInvalidEmail
	}

	return strings.ToLower(addr.Address), nil
}

func validatePassword(pw string) error {
	if utf8.RuneCountInString(pw) < minPasswordLength {
		return ErrInvalidPassword
	}
	return nil
}

type operatorContextKey struct{}

// ContextWithOperator は認証済みオペレーターをコンテキストに格納します。
func ContextWithOperator(ctx context.Context, op *Operator) context.Context {
	return context.WithValue(ctx, operatorContextKey{}, op)
}

// OperatorFromContext はコンテキストから認証済みオペレーターを取り出します。
func OperatorFromContext(ctx context.Context) (*Operator, bool) {
	op, ok := ctx.Value(operatorContextKey{}).(*Operator)
	return op, ok && op != nil
}
