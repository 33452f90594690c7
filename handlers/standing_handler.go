package handlers

import (
	"errors"
	"net/http"

	"github.com/iamkameel/scrbrd-beta-2-sub004/services"
)

type StandingHandler struct {
	standingService services.StandingService
}

func NewStandingHandler(standingService services.StandingService) *StandingHandler {
	return &StandingHandler{standingService: standingService}
}

func (h *StandingHandler) Table(w http.ResponseWriter, r *http.Request) {
	season := r.URL.Query().Get("season")
	if season == "" {
		badRequestResponse(w, r, errors.New("season query parameter is required"))
		return
	}

	table, err := h.standingService.Table(r.Context(), season)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"season": season, "standings": table}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
