package services

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/YassineBouzid/phsyckatre-clinick/internal/models"
	"github.com/YassineBouzid/phsyckatre-clinick/internal/repositories"
)

var (
	// ErrUnknownUser is returned when no credential matches the username.
	ErrUnknownUser = errors.New("unknown user")
	// ErrBadPassword is returned when the password does not match the stored hash.
	ErrBadPassword = errors.New("wrong password")
	// ErrNoBootstrapPassword is returned when the credential store is empty
	// and no initial password was supplied.
	ErrNoBootstrapPassword = errors.New("no bootstrap password configured")
)

// AuthService checks credentials against the user store.
type AuthService struct {
	userRepo repositories.UserRepository
	cost     int
	log      zerolog.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, log zerolog.Logger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		cost:     bcrypt.DefaultCost,
		log:      log.With().Str("service", "auth").Logger(),
	}
}

// WithCost sets the bcrypt cost used for new hashes.
func (s *AuthService) WithCost(cost int) *AuthService {
	s.cost = cost
	return s
}

// Bootstrap creates the initial credential when the user store is empty.
// It does nothing when any user already exists.
func (s *AuthService) Bootstrap(username, password string) error {
	n, err := s.userRepo.Count()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	if password == "" {
		return ErrNoBootstrapPassword
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user := &models.User{Username: username, PasswordHash: string(hashedPassword)}
	if err := s.userRepo.Create(user); err != nil {
		return fmt.Errorf("failed to bootstrap user: %w", err)
	}
	s.log.Info().Str("username", username).Msg("initial user created")
	return nil
}

// Authenticate checks a username and password pair.
func (s *AuthService) Authenticate(username, password string) error {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			s.log.Warn().Str("username", username).Msg("login with unknown username")
			return ErrUnknownUser
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.log.Warn().Str("username", username).Msg("login with wrong password")
		return ErrBadPassword
	}
	return nil
}
