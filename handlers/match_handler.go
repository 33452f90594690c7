package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/iamkameel/scrbrd-beta-2-sub004/middleware"
	"github.com/iamkameel/scrbrd-beta-2-sub004/models"
	"github.com/iamkameel/scrbrd-beta-2-sub004/repositories"
	"github.com/iamkameel/scrbrd-beta-2-sub004/services"
)

type MatchHandler struct {
	matchService services.MatchService
}

func NewMatchHandler(matchService services.MatchService) *MatchHandler {
	return &MatchHandler{matchService: matchService}
}

// --- Fixtures ---

func (h *MatchHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.CreateMatchInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.CreateFixture(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.GetByID(r.Context(), matchID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := repositories.MatchListFilter{}
	query := r.URL.Query()

	if season := query.Get("season"); season != "" {
		filter.Season = &season
	}
	if raw := query.Get("team_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil || id <= 0 {
			badRequestResponse(w, r, fmt.Errorf("invalid team_id: %q", raw))
			return
		}
		filter.TeamID = &id
	}
	if raw := query.Get("state"); raw != "" {
		state := models.MatchState(raw)
		filter.State = &state
	}

	matches, err := h.matchService.List(r.Context(), filter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) Update(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.UpdateMatchInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.UpdateFixture(r.Context(), matchID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) Delete(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.matchService.Delete(r.Context(), matchID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Lifecycle ---

func (h *MatchHandler) actor(w http.ResponseWriter, r *http.Request) (int, bool) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return 0, false
	}
	return userID, true
}

func (h *MatchHandler) RecordToss(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	actorID, ok := h.actor(w, r)
	if !ok {
		return
	}

	var input services.TossInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.RecordToss(r.Context(), matchID, actorID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) StartInnings(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	actorID, ok := h.actor(w, r)
	if !ok {
		return
	}

	match, err := h.matchService.StartInnings(r.Context(), matchID, actorID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) RecordDelivery(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	actorID, ok := h.actor(w, r)
	if !ok {
		return
	}

	var input services.DeliveryInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	delivery, err := h.matchService.RecordDelivery(r.Context(), matchID, actorID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"delivery": delivery}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) CorrectDelivery(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	actorID, ok := h.actor(w, r)
	if !ok {
		return
	}

	uidStr := chi.URLParam(r, "deliveryUID")
	uid, err := uuid.Parse(uidStr)
	if err != nil {
		badRequestResponse(w, r, fmt.Errorf("invalid delivery uid: %q", uidStr))
		return
	}

	var input services.DeliveryInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	delivery, err := h.matchService.CorrectDelivery(r.Context(), matchID, actorID, uid, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"delivery": delivery}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) EndInnings(w http.ResponseWriter, r *http.Request) {
	h.lifecycle(w, r, func(matchID, actorID int) (*models.Match, error) {
		return h.matchService.EndInnings(r.Context(), matchID, actorID)
	})
}

func (h *MatchHandler) CompleteMatch(w http.ResponseWriter, r *http.Request) {
	h.lifecycle(w, r, func(matchID, actorID int) (*models.Match, error) {
		return h.matchService.CompleteMatch(r.Context(), matchID, actorID)
	})
}

func (h *MatchHandler) Abandon(w http.ResponseWriter, r *http.Request) {
	reason, err := readOptionalReason(w, r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	h.lifecycle(w, r, func(matchID, actorID int) (*models.Match, error) {
		return h.matchService.Abandon(r.Context(), matchID, actorID, reason)
	})
}

func (h *MatchHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	reason, err := readOptionalReason(w, r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	h.lifecycle(w, r, func(matchID, actorID int) (*models.Match, error) {
		return h.matchService.Cancel(r.Context(), matchID, actorID, reason)
	})
}

func (h *MatchHandler) Postpone(w http.ResponseWriter, r *http.Request) {
	reason, err := readOptionalReason(w, r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	h.lifecycle(w, r, func(matchID, actorID int) (*models.Match, error) {
		return h.matchService.Postpone(r.Context(), matchID, actorID, reason)
	})
}

func (h *MatchHandler) Reschedule(w http.ResponseWriter, r *http.Request) {
	var input struct {
		ScheduledAt time.Time `json:"scheduled_at"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.ScheduledAt.IsZero() {
		badRequestResponse(w, r, errors.New("scheduled_at is required"))
		return
	}
	h.lifecycle(w, r, func(matchID, actorID int) (*models.Match, error) {
		return h.matchService.Reschedule(r.Context(), matchID, actorID, input.ScheduledAt)
	})
}

func (h *MatchHandler) lifecycle(w http.ResponseWriter, r *http.Request, fn func(matchID, actorID int) (*models.Match, error)) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	actorID, ok := h.actor(w, r)
	if !ok {
		return
	}

	match, err := fn(matchID, actorID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// readOptionalReason accepts an empty body or {"reason": "..."}.
func readOptionalReason(w http.ResponseWriter, r *http.Request) (*string, error) {
	if r.ContentLength == 0 {
		return nil, nil
	}
	var input struct {
		Reason *string `json:"reason"`
	}
	if err := readJSON(w, r, &input); err != nil {
		return nil, err
	}
	return input.Reason, nil
}

// --- Derived views ---

func (h *MatchHandler) Scorecard(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	card, err := h.matchService.Scorecard(r.Context(), matchID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"scorecard": card}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) ListTransitions(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	transitions, err := h.matchService.ListTransitions(r.Context(), matchID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"transitions": transitions}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
