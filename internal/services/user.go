package service

import (
	"context"
	"database/sql"
	"errors"

	"shopapi/internal/auth"
	appErrors "shopapi/internal/errors"
	"shopapi/internal/models"
	repository "shopapi/internal/repositories"
	"shopapi/internal/utils"

	"github.com/google/uuid"
)

type UserService interface {
	Signup(ctx context.Context, req *models.SignupRequest) (*models.UserSummary, error)
	Signin(ctx context.Context, req *models.SigninRequest) (*models.SigninResponse, error)
	UpdateUser(ctx context.Context, id uuid.UUID, req *models.UpdateUserRequest) (*models.UserSummary, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

type userService struct {
	repo        repository.UserRepository
	rateLimiter repository.RateLimitRepository
	credentials *auth.Credentials
}

func NewUserService(repo repository.UserRepository, rateLimiter repository.RateLimitRepository, credentials *auth.Credentials) UserService {
	return &userService{repo: repo, rateLimiter: rateLimiter, credentials: credentials}
}

func (s *userService) Signup(ctx context.Context, req *models.SignupRequest) (*models.UserSummary, error) {
	existingUser, _ := s.repo.GetUserByEmail(ctx, req.Email)
	if existingUser != nil {
		return nil, appErrors.ValidationError("Email already in use")
	}

	hashedPassword, err := s.credentials.HashPassword(req.Password)
	if err != nil {
		return nil, appErrors.InternalError("Failed to secure password").WithError(err)
	}

	user := &models.User{
		Name:     utils.SanitizeText(req.Name),
		Email:    req.Email,
		Password: hashedPassword,
		Address:  utils.SanitizeText(req.Address),
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, appErrors.DatabaseError("Failed to create user").WithError(err)
	}

	return user.Summary(), nil
}

func (s *userService) Signin(ctx context.Context, req *models.SigninRequest) (*models.SigninResponse, error) {
	allowed, remaining, retryAfter, err := s.rateLimiter.CheckLoginRateLimit(ctx, req.Email)
	if err != nil {
		return nil, appErrors.InternalError("Rate limit check failed").WithError(err)
	}

	if !allowed {
		return &models.SigninResponse{
			Success:    false,
			Message:    "Too many login attempts. Please try again later.",
			RetryAfter: retryAfter,
		}, nil
	}

	user, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil || !s.credentials.VerifyPassword(req.Password, user.Password) {
		return &models.SigninResponse{
			Success:        false,
			Message:        "Invalid email or password",
			RemainingTries: remaining,
		}, nil
	}

	token, expiresIn, err := s.credentials.IssueToken(user.ID, user.Email)
	if err != nil {
		return nil, appErrors.InternalError("Failed to generate authentication token").WithError(err)
	}

	return &models.SigninResponse{
		Success:   true,
		Token:     token,
		ExpiresIn: expiresIn,
		User:      user.Summary(),
	}, nil
}

func (s *userService) UpdateUser(ctx context.Context, id uuid.UUID, req *models.UpdateUserRequest) (*models.UserSummary, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, appErrors.NotFoundError("User not found").WithError(err)
	}

	user.Name = utils.SanitizeText(req.Name)
	user.Email = req.Email

	if req.Address != nil {
		user.Address = utils.SanitizeText(*req.Address)
	}

	if err := s.repo.UpdateUser(ctx, user); err != nil {
		return nil, appErrors.DatabaseError("Failed to update user").WithError(err)
	}

	return user.Summary(), nil
}

func (s *userService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.NotFoundError("User not found").WithError(err)
		}

		return appErrors.DatabaseError("Failed to delete user").WithError(err)
	}

	return nil
}
