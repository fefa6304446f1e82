package controllers

import (
	"net/http"

	"github.com/mediastash/mediastash-backend/api/responses"
	"github.com/mediastash/mediastash-backend/api/validators"
	"github.com/mediastash/mediastash-backend/internal/media"
	pkgerrors "github.com/mediastash/mediastash-backend/pkg/errors"
	"github.com/mediastash/mediastash-backend/pkg/logger"
)

// Form parts beyond this stay in memory; larger ones spill to temp files.
const uploadMemoryLimit = 32 << 20

type uploadForm struct {
	Title        string `form:"videoName" validate:"omitempty,max=200"`
	UploaderName string `form:"username" validate:"omitempty,max=100"`
}

// MediaUpload handles the multipart upload of one media file plus an optional
// thumbnail.
func MediaUpload(svc media.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "media service unavailable"))
			return
		}

		if err := r.ParseMultipartForm(uploadMemoryLimit); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart request"))
			return
		}

		mediaFile, mediaHeader, err := r.FormFile("media")
		if err != nil {
			// The contract for a missing media part is a plain-text 400.
			http.Error(w, "media file is required", http.StatusBadRequest)
			return
		}
		defer mediaFile.Close()

		form := uploadForm{
			Title:        r.FormValue("videoName"),
			UploaderName: r.FormValue("username"),
		}
		if err := validators.CheckForm(form); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := media.UploadInput{
			Media: &media.FilePart{
				Reader:      mediaFile,
				FileName:    mediaHeader.Filename,
				ContentType: mediaHeader.Header.Get("Content-Type"),
			},
			Title:        form.Title,
			UploaderName: form.UploaderName,
		}

		if thumbFile, thumbHeader, err := r.FormFile("thumbnail"); err == nil {
			defer thumbFile.Close()
			input.Thumbnail = &media.FilePart{
				Reader:      thumbFile,
				FileName:    thumbHeader.Filename,
				ContentType: thumbHeader.Header.Get("Content-Type"),
			}
		}

		record, err := svc.Upload(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if logg != nil {
			ctx := logg.WithFields(r.Context(), map[string]any{
				"filename":   record.Filename,
				"media_kind": record.MediaKind.String(),
			})
			logg.Info(ctx, "media.uploaded")
		}

		responses.WriteJSON(w, http.StatusOK, map[string]string{"message": "upload successful"})
	}
}
