package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/iamkameel/scrbrd-beta-2-sub004/services"
)

type SchoolHandler struct {
	schoolService services.SchoolService
}

func NewSchoolHandler(schoolService services.SchoolService) *SchoolHandler {
	return &SchoolHandler{schoolService: schoolService}
}

func (h *SchoolHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.CreateSchoolInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	school, err := h.schoolService.Create(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"school": school}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SchoolHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	schoolID, err := getIDFromURL(r, "schoolID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	school, err := h.schoolService.GetByID(r.Context(), schoolID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"school": school}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SchoolHandler) List(w http.ResponseWriter, r *http.Request) {
	schools, err := h.schoolService.List(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"schools": schools}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SchoolHandler) Update(w http.ResponseWriter, r *http.Request) {
	schoolID, err := getIDFromURL(r, "schoolID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.UpdateSchoolInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	school, err := h.schoolService.Update(r.Context(), schoolID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"school": school}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SchoolHandler) UploadCrest(w http.ResponseWriter, r *http.Request) {
	schoolID, err := getIDFromURL(r, "schoolID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		badRequestResponse(w, r, fmt.Errorf("failed to parse multipart form: %w", err))
		return
	}
	file, header, err := r.FormFile("crest")
	if err != nil {
		badRequestResponse(w, r, fmt.Errorf("failed to get crest file from form: %w", err))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		badRequestResponse(w, r, errors.New("content-type header is required for crest"))
		return
	}

	school, err := h.schoolService.UploadCrest(r.Context(), schoolID, file, contentType)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"school": school}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SchoolHandler) Delete(w http.ResponseWriter, r *http.Request) {
	schoolID, err := getIDFromURL(r, "schoolID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.schoolService.Delete(r.Context(), schoolID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
