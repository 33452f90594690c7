package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/iamkameel/scrbrd-beta-2-sub004/services"
)

type EquipmentHandler struct {
	equipmentService services.EquipmentService
}

func NewEquipmentHandler(equipmentService services.EquipmentService) *EquipmentHandler {
	return &EquipmentHandler{equipmentService: equipmentService}
}

func (h *EquipmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.CreateEquipmentInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	item, err := h.equipmentService.Create(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"equipment": item}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *EquipmentHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	equipmentID, err := getIDFromURL(r, "equipmentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	item, err := h.equipmentService.GetByID(r.Context(), equipmentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"equipment": item}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *EquipmentHandler) List(w http.ResponseWriter, r *http.Request) {
	var teamID *int
	if raw := r.URL.Query().Get("team_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil || id <= 0 {
			badRequestResponse(w, r, fmt.Errorf("invalid team_id: %q", raw))
			return
		}
		teamID = &id
	}

	items, err := h.equipmentService.List(r.Context(), teamID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"equipment": items}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *EquipmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	equipmentID, err := getIDFromURL(r, "equipmentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.UpdateEquipmentInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	item, err := h.equipmentService.Update(r.Context(), equipmentID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"equipment": item}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *EquipmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	equipmentID, err := getIDFromURL(r, "equipmentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.equipmentService.Delete(r.Context(), equipmentID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
