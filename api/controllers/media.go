package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mediastash/mediastash-backend/api/responses"
	"github.com/mediastash/mediastash-backend/internal/media"
	"github.com/mediastash/mediastash-backend/pkg/enums"
	pkgerrors "github.com/mediastash/mediastash-backend/pkg/errors"
	"github.com/mediastash/mediastash-backend/pkg/logger"
)

// MediaList returns every record of the requested type, newest first.
func MediaList(svc media.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, err := enums.ParseMediaDir(chi.URLParam(r, "mediaType"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "media type must be videos or audios"))
			return
		}

		records, err := svc.List(r.Context(), kind)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteJSON(w, http.StatusOK, records)
	}
}

// MediaSearch scans video records for a case-insensitive substring match on
// title or uploader name. A blank query is an empty result, not an error.
func MediaSearch(svc media.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matches := svc.Search(r.Context(), r.URL.Query().Get("q"))
		responses.WriteJSON(w, http.StatusOK, matches)
	}
}

// MediaFiles serves stored media and thumbnails straight from the upload
// tree. Anyone holding a generated filename can fetch the bytes.
func MediaFiles(root string) http.Handler {
	return http.StripPrefix("/media/", http.FileServer(http.Dir(root)))
}
