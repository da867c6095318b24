package httpserver

import (
	"errors"
	"net/http"

	"github.com/ratespot/ratespot/internal/auth"
	"github.com/ratespot/ratespot/internal/repository"
)

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r.Context())
	if !ok {
		s.respondMsg(w, http.StatusUnauthorized, "No token, authorization denied.")
		return
	}

	var req changePasswordRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}

	user, err := s.repo.Users.GetByID(r.Context(), identity.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondMsg(w, http.StatusNotFound, "User not found.")
			return
		}
		s.logger.Printf("change password lookup error: %v", err)
		s.respondInternal(w)
		return
	}

	if !auth.CheckPassword(user.PasswordHash, req.CurrentPassword) {
		s.respondMsg(w, http.StatusBadRequest, "Incorrect current password.")
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		s.logger.Printf("hash new password error: %v", err)
		s.respondInternal(w)
		return
	}
	if err := s.repo.Users.UpdatePassword(r.Context(), user.ID, hash); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondMsg(w, http.StatusNotFound, "User not found.")
			return
		}
		s.logger.Printf("update password error: %v", err)
		s.respondInternal(w)
		return
	}

	s.respondMsg(w, http.StatusOK, "Password updated successfully.")
}
