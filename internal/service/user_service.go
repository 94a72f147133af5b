package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"job-board/internal/apperr"
	"job-board/internal/auth"
	"job-board/internal/domain"
	"job-board/internal/repository"
)

const (
	msgFillFullForm       = "Please fill full form!"
	msgLoginFields        = "Please provide email, password, and role."
	msgEmailRegistered    = "Email already registered!"
	msgInvalidCredentials = "Invalid Email Or Password."
	msgNotAuthorized      = "User Not Authorized"
	msgTokenInvalid       = "Json Web Token is invalid, Try again!"
	msgTokenExpired       = "Json Web Token is expired, Try again!"
)

var registerMessages = fieldMessages{
	"name.min":     "Name must contain at least 3 Characters!",
	"name.max":     "Name cannot exceed 30 Characters!",
	"email.email":  "Please provide a valid Email!",
	"phone.phone":  "Please provide a valid Phone Number!",
	"password.min": "Password must contain at least 8 characters!",
	"password.max": "Password cannot exceed 32 characters!",
	"role.oneof":   "Please select a role",
}

// RegisterInput carries the fields of a registration request.
type RegisterInput struct {
	Name     string `json:"name" validate:"required,min=3,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,phone"`
	Password string `json:"password" validate:"required,min=8,max=32"`
	Role     string `json:"role" validate:"required,oneof='Job Seeker' Employer"`
}

// LoginInput carries the fields of a login request.
type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required"`
}

// Session is an authenticated user together with a freshly issued token.
type Session struct {
	User  *domain.User
	Token string
}

// UserService describes user lifecycle operations.
type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*Session, error)
	Login(ctx context.Context, in LoginInput) (*Session, error)
	// ResolveSession maps a session token to the user it was issued for.
	ResolveSession(ctx context.Context, token string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

type userService struct {
	users  repository.UserRepository
	creds  *auth.Credentials
	tokens *auth.TokenService
	log    logrus.FieldLogger
}

func NewUserService(users repository.UserRepository, creds *auth.Credentials, tokens *auth.TokenService, log logrus.FieldLogger) UserService {
	return &userService{
		users:  users,
		creds:  creds,
		tokens: tokens,
		log:    log,
	}
}

func (s *userService) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Role = strings.TrimSpace(in.Role)

	if err := check(in, msgFillFullForm, registerMessages); err != nil {
		return nil, err
	}
	role, ok := domain.ParseRole(in.Role)
	if !ok {
		return nil, apperr.Validation(registerMessages["role.oneof"])
	}

	if _, err := s.users.GetByEmail(ctx, in.Email); err == nil {
		return nil, apperr.Duplicate(msgEmailRegistered)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.Internal("lookup user", err)
	}

	user := &domain.User{
		Name:     in.Name,
		Email:    in.Email,
		Phone:    in.Phone,
		Role:     role,
		Password: in.Password,
	}
	if err := s.creds.Apply(user); err != nil {
		if auth.IsPasswordTooLong(err) {
			return nil, apperr.Validation(registerMessages["password.max"])
		}
		return nil, apperr.Internal("hash password", err)
	}

	if err := s.users.Create(ctx, user); err != nil {
		// lost a race with a concurrent registration of the same email
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil, apperr.Duplicate(msgEmailRegistered)
		}
		return nil, apperr.Internal("create user", err)
	}

	s.log.WithFields(logrus.Fields{"user_id": user.ID, "role": user.Role}).Info("user registered")
	return s.newSession(user)
}

func (s *userService) Login(ctx context.Context, in LoginInput) (*Session, error) {
	in.Email = normalizeEmail(in.Email)
	in.Role = strings.TrimSpace(in.Role)
	if err := check(in, msgLoginFields, nil); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.Unauthorized(msgInvalidCredentials)
		}
		return nil, apperr.Internal("lookup user", err)
	}
	if !s.creds.Verify(in.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized(msgInvalidCredentials)
	}
	if string(user.Role) != in.Role {
		return nil, apperr.Unauthorized(fmt.Sprintf("User with provided email and %s not found!", in.Role))
	}

	return s.newSession(user)
}

func (s *userService) ResolveSession(ctx context.Context, token string) (*domain.User, error) {
	if strings.TrimSpace(token) == "" {
		return nil, apperr.Unauthorized(msgNotAuthorized)
	}

	userID, err := s.tokens.Verify(token)
	if err != nil {
		if errors.Is(err, auth.ErrExpired) {
			return nil, apperr.Wrap(apperr.KindUnauthorized, msgTokenExpired, err)
		}
		return nil, apperr.Wrap(apperr.KindUnauthorized, msgTokenInvalid, err)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.Unauthorized(msgNotAuthorized)
		}
		return nil, apperr.Internal("lookup session user", err)
	}
	return sanitizeUser(user), nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("User not found!")
		}
		return nil, apperr.Internal("lookup user", err)
	}
	return sanitizeUser(user), nil
}

func (s *userService) newSession(user *domain.User) (*Session, error) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, apperr.Internal("issue token", err)
	}
	return &Session{User: sanitizeUser(user), Token: token}, nil
}

func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	return &domain.User{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Phone:     user.Phone,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}
