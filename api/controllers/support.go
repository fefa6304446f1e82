package controllers

import (
	"net/http"

	"github.com/mediastash/mediastash-backend/api/responses"
	"github.com/mediastash/mediastash-backend/internal/supporters"
	"github.com/mediastash/mediastash-backend/pkg/config"
	"github.com/mediastash/mediastash-backend/pkg/logger"
)

// Support returns the static contact payload.
func Support(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteJSON(w, http.StatusOK, map[string]string{
			"phone":   cfg.Support.Phone,
			"message": cfg.Support.Message,
		})
	}
}

// Supporters echoes the externally maintained supporters document. A broken
// document still answers with an empty array, flagged by the 500 status.
func Supporters(svc supporters.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := svc.List(r.Context())
		if err != nil {
			if logg != nil {
				logg.Error(r.Context(), "supporters document unreadable", err)
			}
			responses.WriteRaw(w, http.StatusInternalServerError, []byte("[]"))
			return
		}
		responses.WriteRaw(w, http.StatusOK, entries)
	}
}
