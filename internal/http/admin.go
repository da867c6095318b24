package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ratespot/ratespot/internal/auth"
	"github.com/ratespot/ratespot/internal/domain"
	"github.com/ratespot/ratespot/internal/repository"
)

type statsResponse struct {
	Users   int64 `json:"users"`
	Stores  int64 `json:"stores"`
	Ratings int64 `json:"ratings"`
}

type userDirectoryResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Address     string  `json:"address"`
	Role        string  `json:"role"`
	StoreName   *string `json:"store_name"`
	StoreRating float64 `json:"store_rating"`
}

type storeDirectoryResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Address       string  `json:"address"`
	OwnerID       *string `json:"owner_id"`
	OwnerName     *string `json:"owner_name"`
	AverageRating float64 `json:"average_rating"`
}

type adminCreateUserRequest struct {
	Name     string  `json:"name" validate:"required,min=20,max=60"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,accountpassword"`
	Address  string  `json:"address" validate:"max=400"`
	Role     string  `json:"role"`
	StoreID  *string `json:"store_id"`
}

type adminCreateStoreRequest struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Address string  `json:"address"`
	OwnerID *string `json:"owner_id"`
}

type storeResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	OwnerID   *string   `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *Server) handleAdminStats(w http.ResponseWriter, r *http.Request) {
	users, err := s.repo.Users.CountAll(r.Context())
	if err != nil {
		s.logger.Printf("stats users error: %v", err)
		s.respondInternal(w)
		return
	}
	stores, err := s.repo.Stores.CountAll(r.Context())
	if err != nil {
		s.logger.Printf("stats stores error: %v", err)
		s.respondInternal(w)
		return
	}
	ratings, err := s.repo.Ratings.CountAll(r.Context())
	if err != nil {
		s.logger.Printf("stats ratings error: %v", err)
		s.respondInternal(w)
		return
	}

	s.respondJSON(w, http.StatusOK, statsResponse{Users: users, Stores: stores, Ratings: ratings})
}

func (s *Server) handleAdminListUsers(w http.ResponseWriter, r *http.Request) {
	filters, err := buildUserFilters(r.URL.Query())
	if err != nil {
		s.respondMsg(w, http.StatusBadRequest, err.Error())
		return
	}

	entries, err := s.repo.Users.ListEnriched(r.Context(), filters)
	if err != nil {
		s.logger.Printf("list users error: %v", err)
		s.respondInternal(w)
		return
	}

	items := make([]userDirectoryResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, userDirectoryResponse{
			ID:          entry.ID,
			Name:        entry.Name,
			Email:       entry.Email,
			Address:     entry.Address,
			Role:        string(entry.Role),
			StoreName:   entry.StoreName,
			StoreRating: entry.StoreRating,
		})
	}
	s.respondJSON(w, http.StatusOK, items)
}

func buildUserFilters(query url.Values) (repository.UserListFilters, error) {
	var filters repository.UserListFilters
	if val := strings.TrimSpace(query.Get("name")); val != "" {
		filters.Name = &val
	}
	if val := strings.TrimSpace(query.Get("email")); val != "" {
		filters.Email = &val
	}
	if val := strings.TrimSpace(query.Get("role")); val != "" {
		role, err := domain.ParseRole(val)
		if err != nil {
			return filters, fmt.Errorf("unknown role %q", val)
		}
		filters.Role = &role
	}
	return filters, nil
}

func (s *Server) handleAdminListStores(w http.ResponseWriter, r *http.Request) {
	filters := buildStoreFilters(r.URL.Query())

	entries, err := s.repo.Stores.ListEnriched(r.Context(), filters)
	if err != nil {
		s.logger.Printf("list stores error: %v", err)
		s.respondInternal(w)
		return
	}

	items := make([]storeDirectoryResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, storeDirectoryResponse{
			ID:            entry.ID,
			Name:          entry.Name,
			Email:         entry.Email,
			Address:       entry.Address,
			OwnerID:       entry.OwnerID,
			OwnerName:     entry.OwnerName,
			AverageRating: entry.AverageRating,
		})
	}
	s.respondJSON(w, http.StatusOK, items)
}

func buildStoreFilters(query url.Values) repository.StoreListFilters {
	var filters repository.StoreListFilters
	if val := strings.TrimSpace(query.Get("name")); val != "" {
		filters.Name = &val
	}
	if val := strings.TrimSpace(query.Get("email")); val != "" {
		filters.Email = &val
	}
	if val := strings.TrimSpace(query.Get("address")); val != "" {
		filters.Address = &val
	}
	return filters
}

func (s *Server) handleAdminCreateUser(w http.ResponseWriter, r *http.Request) {
	var req adminCreateUserRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}
	if fieldErrors := validateStruct(req); fieldErrors != nil {
		s.respondJSON(w, http.StatusBadRequest, validationResponse{Errors: fieldErrors})
		return
	}

	role := domain.RoleNormalUser
	if req.Role != "" {
		parsed, err := domain.ParseRole(req.Role)
		if err != nil {
			s.respondMsg(w, http.StatusBadRequest, "Unknown role "+req.Role+".")
			return
		}
		role = parsed
	}

	var storeID *string
	if role == domain.RoleStoreOwner && req.StoreID != nil {
		if _, err := uuid.Parse(*req.StoreID); err != nil {
			s.respondMsg(w, http.StatusBadRequest, "Invalid store id.")
			return
		}
		storeID = req.StoreID
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.logger.Printf("hash password error: %v", err)
		s.respondInternal(w)
		return
	}

	user, err := s.repo.Users.CreateWithStore(r.Context(), repository.UserCreateParams{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Address:      req.Address,
		Role:         role,
	}, storeID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrConflict):
			s.respondMsg(w, http.StatusBadRequest, "User with this email already exists.")
		case errors.Is(err, repository.ErrNotFound):
			s.respondMsg(w, http.StatusNotFound, "Store not found.")
		default:
			s.logger.Printf("admin create user error: %v", err)
			s.respondInternal(w)
		}
		return
	}

	s.respondJSON(w, http.StatusCreated, userResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  string(user.Role),
	})
}

func (s *Server) handleAdminCreateStore(w http.ResponseWriter, r *http.Request) {
	var req adminCreateStoreRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}

	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" {
		s.respondMsg(w, http.StatusBadRequest, "Store name and email are required.")
		return
	}
	if req.OwnerID != nil {
		if _, err := uuid.Parse(*req.OwnerID); err != nil {
			s.respondMsg(w, http.StatusBadRequest, "Invalid owner id.")
			return
		}
	}

	st, err := s.repo.Stores.Create(r.Context(), repository.StoreCreateParams{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Address: req.Address,
		OwnerID: req.OwnerID,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrConflict):
			s.respondMsg(w, http.StatusBadRequest, "Store with this email already exists.")
		case errors.Is(err, repository.ErrNotFound):
			s.respondMsg(w, http.StatusNotFound, "Owner not found.")
		default:
			s.logger.Printf("admin create store error: %v", err)
			s.respondInternal(w)
		}
		return
	}

	s.respondJSON(w, http.StatusCreated, storeResponse{
		ID:        st.ID,
		Name:      st.Name,
		Email:     st.Email,
		Address:   st.Address,
		OwnerID:   st.OwnerID,
		CreatedAt: st.CreatedAt,
	})
}
