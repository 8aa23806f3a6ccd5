package services

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"andhrawala/internal/models"
	"andhrawala/internal/repositories"
	"andhrawala/internal/utils"
)

// AuthService defines signup and login business logic.
type AuthService interface {
	Signup(req *models.SignupRequest) (*models.User, error)
	Login(creds *models.LoginRequest) (string, error)
}

type authService struct {
	userRepo    repositories.UserRepository
	sessionRepo repositories.SessionRepository
}

func NewAuthService(userRepo repositories.UserRepository, sessionRepo repositories.SessionRepository) AuthService {
	utils.RegisteredUsersGauge.Set(float64(userRepo.CountAll()))
	return &authService{userRepo: userRepo, sessionRepo: sessionRepo}
}

func (s *authService) Signup(req *models.SignupRequest) (*models.User, error) {
	log.Debug().Str("username", req.Username).Msg("Attempting to register user")
	if req.Contact == "" || req.Username == "" || req.Password == "" {
		log.Warn().Msg("Contact, username, and password are required for signup")
		return nil, fmt.Errorf("contact, username, and password are required")
	}

	contactType, ok := utils.ClassifyContact(req.Contact)
	if !ok {
		log.Warn().Str("contact", req.Contact).Msg("Invalid contact format for signup")
		return nil, fmt.Errorf("invalid contact: expected an email address or a 10-digit mobile number")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), 8)
	if err != nil {
		log.Error().Err(err).Msg("Failed to hash password during signup")
		return nil, fmt.Errorf("failed to hash password")
	}

	user := &models.User{
		Contact:      req.Contact,
		ContactType:  contactType,
		Username:     req.Username,
		PasswordHash: string(hashedPassword),
		DOB:          req.DOB,
	}

	createdUser, err := s.userRepo.Create(user)
	if err != nil {
		if err == repositories.ErrDuplicateContact || err == repositories.ErrDuplicateUsername {
			log.Warn().Str("username", req.Username).Msg("Duplicate user during signup")
		}
		return nil, err
	}

	log.Info().Str("username", createdUser.Username).Str("contact_type", contactType).Msg("User registered successfully")
	utils.RegisteredUsersGauge.Set(float64(s.userRepo.CountAll()))

	createdUser.PasswordHash = "" // Clear hash before returning
	return createdUser, nil
}

func (s *authService) Login(creds *models.LoginRequest) (string, error) {
	log.Debug().Str("username", creds.Username).Msg("Attempting user login")
	user := s.userRepo.FindByUsername(creds.Username)
	if user == nil {
		log.Warn().Str("username", creds.Username).Msg("Invalid credentials during login attempt")
		return "", fmt.Errorf("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		log.Warn().Str("username", creds.Username).Msg("Invalid credentials (password mismatch) during login attempt")
		return "", fmt.Errorf("invalid credentials")
	}

	token, err := s.sessionRepo.Create(models.Session{
		Username: user.Username,
		Contact:  user.Contact,
	})
	if err != nil {
		log.Error().Err(err).Str("username", user.Username).Msg("Could not create session for user")
		return "", fmt.Errorf("could not create session")
	}

	log.Info().Str("username", user.Username).Msg("User logged in successfully")
	return token, nil
}
