package service

import (
	"context"
	"errors"
	"net/mail"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/founderflow/founderflow/internal/core/domain"
	"github.com/founderflow/founderflow/internal/core/ports"
	"github.com/founderflow/founderflow/internal/email"
)

// AuthService implements registration, login, and password reset.
type AuthService struct {
	users     ports.UserRepository
	profiles  ports.ProfileRepository
	resolver  ports.RoleResolver
	mailer    ports.Mailer
	jwtSecret string
	tokenTTL  time.Duration
	authURL   string
	log       zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	profiles ports.ProfileRepository,
	resolver ports.RoleResolver,
	mailer ports.Mailer,
	jwtSecret string,
	tokenTTL time.Duration,
	authURL string,
	log zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		users:     users,
		profiles:  profiles,
		resolver:  resolver,
		mailer:    mailer,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		authURL:   authURL,
		log:       log,
	}
}

// Register creates an account plus its display profile. No role row is
// written: an absent row already means the default role.
func (s *AuthService) Register(ctx context.Context, emailAddr, password, fullName string) (*domain.User, error) {
	if password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if !validEmail(emailAddr) {
		return nil, domain.ErrInvalidEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        emailAddr,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := s.profiles.Create(ctx, &domain.Profile{ID: created.ID, FullName: fullName}); err != nil {
		s.log.Error().Err(err).Str("user_id", created.ID).Msg("failed to create profile for new user")
	}

	return created, nil
}

// Login authenticates by email and password and returns a signed token. The
// role claim is resolved from the role store at issue time.
func (s *AuthService) Login(ctx context.Context, emailAddr, password string) (string, *domain.User, error) {
	if emailAddr == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, emailAddr)
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	role, err := s.resolver.Resolve(ctx, user.ID)
	if err != nil {
		return "", nil, err
	}

	token, err := s.generateToken(user, role)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// RequestPasswordReset validates the address before any provider call, then
// emails a reset link. An unknown address is not an error, so the endpoint
// cannot be used to enumerate accounts.
func (s *AuthService) RequestPasswordReset(ctx context.Context, emailAddr, redirectTo string) error {
	if !validEmail(emailAddr) {
		return domain.ErrInvalidEmail
	}

	user, err := s.users.FindByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.log.Debug().Str("email", emailAddr).Msg("password reset requested for unknown address")
			return nil
		}
		return err
	}

	token, err := s.generateResetToken(user)
	if err != nil {
		return err
	}

	link := email.VerifyURL(s.authURL, token, "recovery", redirectTo)
	msg := email.PasswordReset(user.Email, link)
	if err := s.mailer.Send(ctx, msg); err != nil {
		return err
	}

	s.log.Info().Str("user_id", user.ID).Msg("password reset email sent")
	return nil
}

func (s *AuthService) generateToken(user *domain.User, role domain.Role) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  string(role),
		"exp":   time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// generateResetToken issues a short-lived single-purpose token; the auth
// middleware rejects it for API calls because it carries no role claim.
func (s *AuthService) generateResetToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":     user.ID,
		"email":   user.Email,
		"purpose": "recovery",
		"exp":     time.Now().Add(time.Hour).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func validEmail(addr string) bool {
	if addr == "" {
		return false
	}
	parsed, err := mail.ParseAddress(addr)
	return err == nil && parsed.Address == addr
}
