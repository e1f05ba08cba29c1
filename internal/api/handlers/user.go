package handlers

import (
	"log/slog"
	"net/http"

	"shopapi/internal/api/middleware"
	"shopapi/internal/models"
	service "shopapi/internal/services"
	"shopapi/internal/utils"
	"shopapi/internal/utils/response"

	"github.com/go-playground/validator/v10"
)

type UserHandler struct {
	userService service.UserService
	validator   *validator.Validate
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService, validator: validator.New()}
}

func (h *UserHandler) Signup() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		var req models.SignupRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		user, err := h.userService.Signup(r.Context(), &req)
		if err != nil {
			logger.Warn("User signup failed", slog.String("email", req.Email), slog.Any("error", err))
			response.Error(w, err)

			return
		}

		logger.Info("User registered", slog.String("userId", user.ID.String()))
		response.SuccessMessage(w, http.StatusCreated, "User registered successfully", user)
	}
}

func (h *UserHandler) Signin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		var req models.SigninRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		resp, err := h.userService.Signin(r.Context(), &req)
		if err != nil {
			logger.Warn("Signin failed", slog.String("email", req.Email), slog.Any("error", err))
			response.Error(w, err)

			return
		}

		if !resp.Success {
			status := http.StatusUnauthorized
			if resp.RetryAfter > 0 {
				status = http.StatusTooManyRequests
			}

			response.WriteJson(w, status, resp)

			return
		}

		logger.Info("User signed in", slog.String("email", req.Email))
		response.WriteJson(w, http.StatusOK, resp)
	}
}

func (h *UserHandler) UpdateUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		userID, ok := parsePathUUID(w, r, "userId")
		if !ok {
			return
		}

		var req models.UpdateUserRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		user, err := h.userService.UpdateUser(r.Context(), userID, &req)
		if err != nil {
			logger.Warn("User update failed", slog.String("userId", userID.String()), slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.SuccessMessage(w, http.StatusOK, "User updated successfully", user)
	}
}

func (h *UserHandler) DeleteUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		userID, ok := parsePathUUID(w, r, "userId")
		if !ok {
			return
		}

		if err := h.userService.DeleteUser(r.Context(), userID); err != nil {
			logger.Warn("User deletion failed", slog.String("userId", userID.String()), slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.SuccessMessage(w, http.StatusOK, "User deleted successfully", nil)
	}
}
