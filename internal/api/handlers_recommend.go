// Marquee - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/recommend"
	"github.com/tomtom215/marquee/internal/validation"
)

type personalizedParams struct {
	UserID int64
	Size   int `validate:"min=1,max=100"`
}

type similarParams struct {
	MovieID string `validate:"required,max=512,movieid"`
	Size    int    `validate:"min=1,max=100"`
}

// Personalized handles GET /recommendations/personalized/{userId}.
func (h *Handler) Personalized(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_USER_ID", "User ID must be an integer", err)
		return
	}

	size, err := parseSize(r, h.opts.DefaultSize)
	if err != nil {
		respondError(w, http.StatusBadRequest, validation.ErrorCode, err.Error(), nil)
		return
	}

	params := personalizedParams{UserID: userID, Size: size}
	if verr := validation.ValidateStruct(&params); verr != nil {
		respondValidationError(w, verr)
		return
	}

	movies := h.recommender.Personalized(r.Context(), params.UserID, params.Size)
	respondRecommendations(w, recommend.StrategyPersonalized, movies, start)
}

// Similar handles GET /recommendations/similar/{movieId}.
func (h *Handler) Similar(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	movieID, err := url.PathUnescape(chi.URLParam(r, "movieId"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_MOVIE_ID", "Movie ID is not valid path encoding", err)
		return
	}

	size, err := parseSize(r, h.opts.DefaultSize)
	if err != nil {
		respondError(w, http.StatusBadRequest, validation.ErrorCode, err.Error(), nil)
		return
	}

	params := similarParams{MovieID: movieID, Size: size}
	if verr := validation.ValidateStruct(&params); verr != nil {
		respondValidationError(w, verr)
		return
	}

	movies := h.recommender.Similar(r.Context(), params.MovieID, params.Size)
	respondRecommendations(w, recommend.StrategySimilar, movies, start)
}

func respondRecommendations(w http.ResponseWriter, strategy string, movies []models.MovieItem, start time.Time) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   models.NewRecommendationList(strategy, movies),
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}
