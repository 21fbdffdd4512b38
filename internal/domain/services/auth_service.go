package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/loctime/controldoc/internal/domain/entities"
	"github.com/loctime/controldoc/internal/domain/repositories"
	"github.com/loctime/controldoc/internal/utils"
	"github.com/loctime/controldoc/pkg/errors"
)

type AuthService struct {
	userRepo      repositories.UserRepository
	sessionRepo   repositories.SessionRepository
	companyRepo   repositories.CompanyRepository
	tokenDuration time.Duration
}

func NewAuthService(
	userRepo repositories.UserRepository,
	sessionRepo repositories.SessionRepository,
	companyRepo repositories.CompanyRepository,
	tokenDuration time.Duration,
) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		sessionRepo:   sessionRepo,
		companyRepo:   companyRepo,
		tokenDuration: tokenDuration,
	}
}

// RegisterAdmin creates an administrator account. Admins own companies and
// review submissions; they are not invited by anyone.
func (s *AuthService) RegisterAdmin(ctx context.Context, name, email, password string) (*entities.User, error) {
	return s.register(ctx, name, email, password, entities.RoleAdmin, nil)
}

// RegisterEmployee creates an employee account through a validated
// invitation and attaches the new user to the inviting company.
func (s *AuthService) RegisterEmployee(ctx context.Context, name, email, password string, invite *entities.Invitation) (*entities.User, error) {
	if invite == nil {
		return nil, errors.NewInvalidInvitationError("invitation is required")
	}

	assoc := entities.CompanyAssociation{CompanyID: invite.CompanyID, AdminID: invite.AdminID}
	user, err := s.register(ctx, name, email, password, entities.RoleEmployee, &assoc)
	if err != nil {
		return nil, err
	}

	if err := s.companyRepo.AddUser(ctx, invite.CompanyID, user.ID); err != nil {
		return nil, errors.NewInternalError("failed to attach user to company")
	}

	return user, nil
}

func (s *AuthService) register(ctx context.Context, name, email, password string, role entities.Role, assoc *entities.CompanyAssociation) (*entities.User, error) {
	if err := utils.ValidateName(name); err != nil {
		return nil, errors.NewBadRequestError(err.Error())
	}
	if err := utils.ValidateEmail(email); err != nil {
		return nil, errors.NewBadRequestError(err.Error())
	}
	if err := utils.ValidatePassword(password); err != nil {
		return nil, errors.NewBadRequestError(err.Error())
	}

	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, errors.NewBadRequestError("user already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.NewInternalError("failed to hash password")
	}

	user := &entities.User{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Password:  string(hashedPassword),
		Role:      role,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if assoc != nil {
		user.Companies = []entities.CompanyAssociation{*assoc}
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, errors.NewInternalError("failed to create user")
	}

	return user, nil
}

func (s *AuthService) Authenticate(ctx context.Context, email, password string) (string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", errors.NewUnauthorizedError("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", errors.NewUnauthorizedError("invalid credentials")
	}

	token := utils.GenerateToken()
	session := &entities.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: time.Now().Add(s.tokenDuration),
		UpdatedAt: time.Now(),
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return "", errors.NewInternalError("failed to create session")
	}

	return token, nil
}

func (s *AuthService) ValidateToken(ctx context.Context, token string) (*entities.User, error) {
	session, err := s.sessionRepo.GetByToken(ctx, token)
	if err != nil {
		return nil, errors.NewUnauthorizedError("invalid token")
	}

	if session.ExpiresAt.Before(time.Now()) {
		s.sessionRepo.Delete(ctx, token)
		return nil, errors.NewUnauthorizedError("token expired")
	}

	user, err := s.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, errors.NewUnauthorizedError("user not found")
	}

	return user, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessionRepo.Delete(ctx, token)
}
