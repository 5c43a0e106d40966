package auth

import (
	"errors"
	"log"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
)

type Service struct {
	repo UserRepository
}

func NewService(repo UserRepository) *Service {
	return &Service{repo: repo}
}

// REGISTER
func (s *Service) Register(name, email, password string) (*User, error) {
	if name == "" || email == "" || password == "" {
		return nil, errors.New("missing required fields")
	}

	if _, err := s.repo.FindByEmail(email); !errors.Is(err, ErrUserNotFound) {
		if err == nil {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword(
		[]byte(password),
		bcrypt.DefaultCost,
	)
	if err != nil {
		return nil, err
	}

	user := &User{
		Name:     name,
		Email:    email,
		Password: string(hashedPassword),
		Role:     RoleViewer,
	}

	if err := s.repo.Save(user); err != nil {
		return nil, err
	}

	return user, nil
}

// LOGIN
func (s *Service) Login(email, password string) (*User, error) {
	user, err := s.repo.FindByEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	err = bcrypt.CompareHashAndPassword(
		[]byte(user.Password),
		[]byte(password),
	)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// EnsureAdmin creates the configured admin account at startup if it
// does not exist yet. No-op when the email is already registered.
func (s *Service) EnsureAdmin(email, password string) error {
	if email == "" || password == "" {
		return errors.New("admin email and password required")
	}

	if _, err := s.repo.FindByEmail(email); !errors.Is(err, ErrUserNotFound) {
		// Existing account wins, whatever its role.
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword(
		[]byte(password),
		bcrypt.DefaultCost,
	)
	if err != nil {
		return err
	}

	user := &User{
		Name:     "Canteen Admin",
		Email:    email,
		Password: string(hashedPassword),
		Role:     RoleAdmin,
	}
	if err := s.repo.Save(user); err != nil {
		return err
	}

	log.Printf("admin account created email=%s", email)
	return nil
}
