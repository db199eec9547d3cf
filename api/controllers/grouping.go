package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/angelmondragon/lotlister-backend/api/responses"
	"github.com/angelmondragon/lotlister-backend/api/validators"
	"github.com/angelmondragon/lotlister-backend/internal/grouping"
	"github.com/angelmondragon/lotlister-backend/pkg/db/models"
	"github.com/angelmondragon/lotlister-backend/pkg/logger"
)

type uploadedImage struct {
	FileName     string `json:"file_name" validate:"required"`
	OriginalKey  string `json:"original_key" validate:"required"`
	ThumbnailKey string `json:"thumbnail_key"`
}

type completeUploadRequest struct {
	Images    []uploadedImage `json:"images" validate:"required,min=1,dive"`
	GroupSize int             `json:"group_size" validate:"omitempty,min=1,max=24"`
}

// CompleteUpload takes the storage layer's uploaded-image descriptors and
// groups them into cards appended to the lot.
func CompleteUpload(svc grouping.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lotID, err := validators.UUIDParam(r, "lotID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload completeUploadRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		images := make([]models.CardImage, 0, len(payload.Images))
		for _, img := range payload.Images {
			images = append(images, models.CardImage{
				ID:           uuid.New(),
				FileName:     img.FileName,
				OriginalKey:  img.OriginalKey,
				ThumbnailKey: img.ThumbnailKey,
			})
		}

		cards, err := svc.GroupNewImages(r.Context(), lotID, images, payload.GroupSize)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, cards)
	}
}

type regroupRequest struct {
	GroupSize int `json:"group_size" validate:"required,min=1,max=24"`
}

// Regroup replaces every card in the lot with a fresh grouping. Manual
// card edits do not survive; the UI warns before calling this.
func Regroup(svc grouping.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lotID, err := validators.UUIDParam(r, "lotID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload regroupRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cards, err := svc.Regroup(r.Context(), lotID, payload.GroupSize)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, cards)
	}
}
