package handlers

import (
	"net/http"

	"github.com/iamkameel/scrbrd-beta-2-sub004/models"
	"github.com/iamkameel/scrbrd-beta-2-sub004/services"
)

type OfficialHandler struct {
	officialService services.OfficialService
}

func NewOfficialHandler(officialService services.OfficialService) *OfficialHandler {
	return &OfficialHandler{officialService: officialService}
}

func (h *OfficialHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.CreateOfficialInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	official, err := h.officialService.Create(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"official": official}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *OfficialHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	officialID, err := getIDFromURL(r, "officialID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	official, err := h.officialService.GetByID(r.Context(), officialID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"official": official}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *OfficialHandler) List(w http.ResponseWriter, r *http.Request) {
	var role *models.OfficialRole
	if raw := r.URL.Query().Get("role"); raw != "" {
		value := models.OfficialRole(raw)
		role = &value
	}

	officials, err := h.officialService.List(r.Context(), role)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"officials": officials}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *OfficialHandler) Update(w http.ResponseWriter, r *http.Request) {
	officialID, err := getIDFromURL(r, "officialID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.UpdateOfficialInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	official, err := h.officialService.Update(r.Context(), officialID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"official": official}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *OfficialHandler) Delete(w http.ResponseWriter, r *http.Request) {
	officialID, err := getIDFromURL(r, "officialID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.officialService.Delete(r.Context(), officialID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
