package httpserver

import (
	"errors"
	"net/http"

	"github.com/ratespot/ratespot/internal/auth"
	"github.com/ratespot/ratespot/internal/domain"
	"github.com/ratespot/ratespot/internal/repository"
)

type registerRequest struct {
	Name     string `json:"name" validate:"required,min=20,max=60"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,accountpassword"`
	Address  string `json:"address" validate:"max=400"`
}

type userResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role"`
}

type registerResponse struct {
	Msg  string       `json:"msg"`
	User userResponse `json:"user"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Msg   string       `json:"msg"`
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}
	if fieldErrors := validateStruct(req); fieldErrors != nil {
		s.respondJSON(w, http.StatusBadRequest, validationResponse{Errors: fieldErrors})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.logger.Printf("hash password error: %v", err)
		s.respondInternal(w)
		return
	}

	user, err := s.repo.Users.Create(r.Context(), repository.UserCreateParams{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Address:      req.Address,
		Role:         domain.RoleNormalUser,
	})
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			s.respondMsg(w, http.StatusBadRequest, "User with this email already exists.")
			return
		}
		s.logger.Printf("register error: %v", err)
		s.respondInternal(w)
		return
	}

	s.respondJSON(w, http.StatusCreated, registerResponse{
		Msg: "User registered successfully!",
		User: userResponse{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Role:  string(user.Role),
		},
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}

	// One generic message for unknown email and wrong password alike.
	user, err := s.repo.Users.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondMsg(w, http.StatusBadRequest, "Invalid credentials.")
			return
		}
		s.logger.Printf("login lookup error: %v", err)
		s.respondInternal(w)
		return
	}
	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		s.respondMsg(w, http.StatusBadRequest, "Invalid credentials.")
		return
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		s.logger.Printf("issue token error: %v", err)
		s.respondInternal(w)
		return
	}

	s.respondJSON(w, http.StatusOK, loginResponse{
		Msg:   "Login successful!",
		Token: token,
		User: userResponse{
			ID:   user.ID,
			Name: user.Name,
			Role: string(user.Role),
		},
	})
}
