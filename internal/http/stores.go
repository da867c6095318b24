package httpserver

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/ratespot/ratespot/internal/domain"
	"github.com/ratespot/ratespot/internal/repository"
)

type storeForUserResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Address       string  `json:"address"`
	AverageRating float64 `json:"average_rating"`
	UserRating    *int    `json:"user_rating"`
}

type ratersResponse struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Rating int    `json:"rating"`
}

type ownerDashboardResponse struct {
	StoreName     string           `json:"storeName"`
	AverageRating float64          `json:"averageRating"`
	Raters        []ratersResponse `json:"raters"`
}

func (s *Server) handleListStores(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r.Context())
	if !ok {
		s.respondMsg(w, http.StatusUnauthorized, "No token, authorization denied.")
		return
	}

	filters := buildStoreUserFilters(r.URL.Query())
	stores, err := s.repo.Stores.ListForUser(r.Context(), identity.UserID, filters)
	if err != nil {
		s.logger.Printf("list stores error: %v", err)
		s.respondInternal(w)
		return
	}

	items := make([]storeForUserResponse, 0, len(stores))
	for _, st := range stores {
		items = append(items, storeForUserResponse{
			ID:            st.ID,
			Name:          st.Name,
			Address:       st.Address,
			AverageRating: st.AverageRating,
			UserRating:    st.UserRating,
		})
	}
	s.respondJSON(w, http.StatusOK, items)
}

func buildStoreUserFilters(query url.Values) repository.StoreUserFilters {
	var filters repository.StoreUserFilters
	if val := strings.TrimSpace(query.Get("name")); val != "" {
		filters.Name = &val
	}
	if val := strings.TrimSpace(query.Get("address")); val != "" {
		filters.Address = &val
	}
	return filters
}

func (s *Server) handleOwnerDashboard(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r.Context())
	if !ok {
		s.respondMsg(w, http.StatusUnauthorized, "No token, authorization denied.")
		return
	}

	dashboard, err := s.ownerDashboard(r, identity.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondMsg(w, http.StatusNotFound, "You do not own a store.")
			return
		}
		s.logger.Printf("owner dashboard error: %v", err)
		s.respondInternal(w)
		return
	}

	raters := make([]ratersResponse, 0, len(dashboard.Raters))
	for _, rater := range dashboard.Raters {
		raters = append(raters, ratersResponse{Name: rater.Name, Email: rater.Email, Rating: rater.Rating})
	}
	s.respondJSON(w, http.StatusOK, ownerDashboardResponse{
		StoreName:     dashboard.StoreName,
		AverageRating: dashboard.AverageRating,
		Raters:        raters,
	})
}

func (s *Server) ownerDashboard(r *http.Request, ownerID string) (domain.OwnerDashboard, error) {
	st, err := s.repo.Stores.GetByOwner(r.Context(), ownerID)
	if err != nil {
		return domain.OwnerDashboard{}, err
	}

	average, err := s.repo.Ratings.AverageFor(r.Context(), st.ID)
	if err != nil {
		return domain.OwnerDashboard{}, err
	}

	raters, err := s.repo.Ratings.RatersFor(r.Context(), st.ID)
	if err != nil {
		return domain.OwnerDashboard{}, err
	}

	return domain.OwnerDashboard{
		StoreName:     st.Name,
		AverageRating: average,
		Raters:        raters,
	}, nil
}
