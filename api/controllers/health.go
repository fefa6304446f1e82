package controllers

import (
	"net/http"

	"github.com/mediastash/mediastash-backend/api/responses"
	"github.com/mediastash/mediastash-backend/pkg/config"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Mediastash-Env", cfg.App.Env)
		responses.WriteJSON(w, http.StatusOK, map[string]string{"status": "live"})
	}
}
