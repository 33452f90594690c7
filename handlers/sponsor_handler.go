package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/iamkameel/scrbrd-beta-2-sub004/models"
	"github.com/iamkameel/scrbrd-beta-2-sub004/services"
)

type SponsorHandler struct {
	sponsorService services.SponsorService
}

func NewSponsorHandler(sponsorService services.SponsorService) *SponsorHandler {
	return &SponsorHandler{sponsorService: sponsorService}
}

func (h *SponsorHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.CreateSponsorInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	sponsor, err := h.sponsorService.Create(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"sponsor": sponsor}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SponsorHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	sponsorID, err := getIDFromURL(r, "sponsorID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	sponsor, err := h.sponsorService.GetByID(r.Context(), sponsorID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"sponsor": sponsor}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SponsorHandler) List(w http.ResponseWriter, r *http.Request) {
	var tier *models.SponsorTier
	if raw := r.URL.Query().Get("tier"); raw != "" {
		value := models.SponsorTier(raw)
		tier = &value
	}

	sponsors, err := h.sponsorService.List(r.Context(), tier)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"sponsors": sponsors}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SponsorHandler) Update(w http.ResponseWriter, r *http.Request) {
	sponsorID, err := getIDFromURL(r, "sponsorID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.UpdateSponsorInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	sponsor, err := h.sponsorService.Update(r.Context(), sponsorID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"sponsor": sponsor}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SponsorHandler) UploadLogo(w http.ResponseWriter, r *http.Request) {
	sponsorID, err := getIDFromURL(r, "sponsorID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		badRequestResponse(w, r, fmt.Errorf("failed to parse multipart form: %w", err))
		return
	}
	file, header, err := r.FormFile("logo")
	if err != nil {
		badRequestResponse(w, r, fmt.Errorf("failed to get logo file from form: %w", err))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		badRequestResponse(w, r, errors.New("content-type header is required for logo"))
		return
	}

	sponsor, err := h.sponsorService.UploadLogo(r.Context(), sponsorID, file, contentType)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"sponsor": sponsor}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SponsorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	sponsorID, err := getIDFromURL(r, "sponsorID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.sponsorService.Delete(r.Context(), sponsorID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
