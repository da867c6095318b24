package httpserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/ratespot/ratespot/internal/repository"
)

type ratingRequest struct {
	StoreID string `json:"store_id"`
	Rating  int    `json:"rating"`
}

type ratingResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	StoreID   string    `json:"store_id"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *Server) handleSubmitRating(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r.Context())
	if !ok {
		s.respondMsg(w, http.StatusUnauthorized, "No token, authorization denied.")
		return
	}

	var req ratingRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}

	if req.Rating < 1 || req.Rating > 5 {
		s.respondMsg(w, http.StatusBadRequest, "Rating must be between 1 and 5")
		return
	}
	if _, err := uuid.Parse(req.StoreID); err != nil {
		s.respondMsg(w, http.StatusBadRequest, "Invalid store id.")
		return
	}

	if _, err := s.repo.Stores.GetByID(r.Context(), req.StoreID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondMsg(w, http.StatusNotFound, "Store not found.")
			return
		}
		s.logger.Printf("rating store lookup error: %v", err)
		s.respondInternal(w)
		return
	}

	rating, _, err := s.repo.Ratings.Upsert(r.Context(), repository.RatingUpsertParams{
		UserID:  identity.UserID,
		StoreID: req.StoreID,
		Value:   req.Rating,
	})
	if err != nil {
		s.logger.Printf("upsert rating error: %v", err)
		s.respondInternal(w)
		return
	}

	s.respondJSON(w, http.StatusOK, ratingResponse{
		ID:        rating.ID,
		UserID:    rating.UserID,
		StoreID:   rating.StoreID,
		Rating:    rating.Value,
		CreatedAt: rating.CreatedAt,
	})
}
