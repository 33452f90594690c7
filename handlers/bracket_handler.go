package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iamkameel/scrbrd-beta-2-sub004/services"
)

type BracketHandler struct {
	bracketService services.BracketService
}

func NewBracketHandler(bracketService services.BracketService) *BracketHandler {
	return &BracketHandler{bracketService: bracketService}
}

func (h *BracketHandler) Seed(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Season string `json:"season"`
		Size   int    `json:"size"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.Season == "" {
		badRequestResponse(w, r, errors.New("season is required"))
		return
	}

	bracket, err := h.bracketService.Seed(r.Context(), input.Season, input.Size)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"bracket": bracket}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *BracketHandler) GetBySeason(w http.ResponseWriter, r *http.Request) {
	season := chi.URLParam(r, "season")
	if season == "" {
		badRequestResponse(w, r, errors.New("season is required"))
		return
	}

	bracket, err := h.bracketService.Get(r.Context(), season)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"bracket": bracket}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *BracketHandler) AssignMatch(w http.ResponseWriter, r *http.Request) {
	season := chi.URLParam(r, "season")
	if season == "" {
		badRequestResponse(w, r, errors.New("season is required"))
		return
	}

	var input struct {
		NodeUID string `json:"node_uid"`
		MatchID int    `json:"match_id"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.NodeUID == "" {
		badRequestResponse(w, r, errors.New("node_uid is required"))
		return
	}
	if input.MatchID <= 0 {
		badRequestResponse(w, r, errors.New("match_id must be a positive integer"))
		return
	}

	bracket, err := h.bracketService.AssignMatch(r.Context(), season, input.NodeUID, input.MatchID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"bracket": bracket}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *BracketHandler) Delete(w http.ResponseWriter, r *http.Request) {
	season := chi.URLParam(r, "season")
	if season == "" {
		badRequestResponse(w, r, errors.New("season is required"))
		return
	}

	if err := h.bracketService.Delete(r.Context(), season); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
