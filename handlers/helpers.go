package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/iamkameel/scrbrd-beta-2-sub004/scoring"
	"github.com/iamkameel/scrbrd-beta-2-sub004/services"
)

type jsonResponse map[string]interface{}

func readJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	maxBytes := 1_048_576 // 1MB
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var invalidUnmarshalError *json.InvalidUnmarshalError

		switch {
		case errors.As(err, &syntaxError):
			return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)
		case errors.Is(err, io.ErrUnexpectedEOF):
			return errors.New("body contains badly-formed JSON")
		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return fmt.Errorf("body contains incorrect JSON type for field %q", unmarshalTypeError.Field)
			}
			return fmt.Errorf("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)
		case errors.Is(err, io.EOF):
			return errors.New("body must not be empty")
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
			return fmt.Errorf("body contains unknown key %s", fieldName)
		case err.Error() == "http: request body too large":
			return fmt.Errorf("body must not be larger than %d bytes", maxBytes)
		case errors.As(err, &invalidUnmarshalError):
			panic(err)
		default:
			return err
		}
	}

	err = dec.Decode(&struct{}{})
	if !errors.Is(err, io.EOF) {
		return errors.New("body must only contain a single JSON value")
	}

	return nil
}

func writeJSON(w http.ResponseWriter, status int, data interface{}, headers http.Header) error {
	js, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		return err
	}
	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(js)
	return err
}

func getIDFromURL(r *http.Request, paramName string) (int, error) {
	idStr := chi.URLParam(r, paramName)
	if idStr == "" {
		idStr = chi.URLParam(r, "id")
		if idStr == "" {
			return 0, fmt.Errorf("missing %s or id in URL path", paramName)
		}
	}

	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s format: %q", paramName, idStr)
	}
	return id, nil
}

func errorResponse(w http.ResponseWriter, r *http.Request, status int, message interface{}) {
	env := jsonResponse{"error": message}
	if err := writeJSON(w, status, env, nil); err != nil {
		slog.Error("failed to write error response", "error", err, "path", r.URL.Path)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	slog.Error("internal server error", "error", err, "method", r.Method, "path", r.URL.Path)
	message := "the server encountered a problem and could not process your request"
	errorResponse(w, r, http.StatusInternalServerError, message)
}

func badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	errorResponse(w, r, http.StatusBadRequest, err.Error())
}

func notFoundResponse(w http.ResponseWriter, r *http.Request) {
	message := "the requested resource could not be found"
	errorResponse(w, r, http.StatusNotFound, message)
}

func conflictResponse(w http.ResponseWriter, r *http.Request, message string) {
	errorResponse(w, r, http.StatusConflict, message)
}

func unauthorizedResponse(w http.ResponseWriter, r *http.Request, message string) {
	errorResponse(w, r, http.StatusUnauthorized, message)
}

func forbiddenResponse(w http.ResponseWriter, r *http.Request, message string) {
	errorResponse(w, r, http.StatusForbidden, message)
}

// mapServiceErrorToHTTP translates service layer errors into HTTP responses.
func mapServiceErrorToHTTP(w http.ResponseWriter, r *http.Request, err error) {
	var invalidTransition *scoring.InvalidTransitionError
	var invalidBracketSize *scoring.InvalidBracketSizeError

	switch {
	// Missing resources
	case errors.Is(err, services.ErrNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrSchoolNotFound),
		errors.Is(err, services.ErrTeamNotFound),
		errors.Is(err, services.ErrPlayerNotFound),
		errors.Is(err, services.ErrOfficialNotFound),
		errors.Is(err, services.ErrSponsorNotFound),
		errors.Is(err, services.ErrEquipmentNotFound),
		errors.Is(err, services.ErrMatchNotFound),
		errors.Is(err, services.ErrInningsNotFound),
		errors.Is(err, services.ErrDeliveryNotFound),
		errors.Is(err, services.ErrBracketNotFound):
		notFoundResponse(w, r)

	// Conflicts
	case errors.Is(err, services.ErrUserEmailConflict),
		errors.Is(err, services.ErrSchoolNameConflict),
		errors.Is(err, services.ErrTeamNameConflict),
		errors.Is(err, services.ErrSponsorNameConflict),
		errors.Is(err, services.ErrOfficialEmailConflict),
		errors.Is(err, services.ErrBracketExists),
		errors.Is(err, services.ErrScoringConflict),
		errors.Is(err, services.ErrDeliveryAlreadyFixed):
		conflictResponse(w, r, err.Error())

	// Scoring lifecycle violations carry their own status: a bad transition
	// is a conflict with the current match state, not a malformed request.
	case errors.As(err, &invalidTransition):
		conflictResponse(w, r, invalidTransition.Error())
	case errors.Is(err, scoring.ErrMatchNotDecided),
		errors.Is(err, services.ErrMatchFrozen):
		conflictResponse(w, r, err.Error())
	case errors.Is(err, scoring.ErrDeliveryOutOfOrder):
		conflictResponse(w, r, err.Error())

	// Validation and business rules
	case errors.Is(err, services.ErrValidationFailed),
		errors.Is(err, services.ErrPasswordTooShort),
		errors.Is(err, services.ErrSchoolNameRequired),
		errors.Is(err, services.ErrTeamNameRequired),
		errors.Is(err, services.ErrPlayerNameRequired),
		errors.Is(err, services.ErrInvalidOversLimit),
		errors.Is(err, services.ErrSameTeamFixture),
		errors.Is(err, services.ErrTossWinnerNotPlaying),
		errors.Is(err, services.ErrInvalidUploadType),
		errors.Is(err, services.ErrBracketTooFewQualified),
		errors.As(err, &invalidBracketSize),
		isDeliveryValidationError(err):
		badRequestResponse(w, r, err)

	// Authentication and authorization
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrAuthenticationFailed):
		unauthorizedResponse(w, r, err.Error())
	case errors.Is(err, services.ErrForbiddenOperation):
		forbiddenResponse(w, r, err.Error())

	default:
		serverErrorResponse(w, r, err)
	}
}

func isDeliveryValidationError(err error) bool {
	return errors.Is(err, scoring.ErrDeliveryMissingStriker) ||
		errors.Is(err, scoring.ErrDeliveryMissingNonStriker) ||
		errors.Is(err, scoring.ErrDeliveryMissingBowler) ||
		errors.Is(err, scoring.ErrDeliverySamePlayers) ||
		errors.Is(err, scoring.ErrDeliveryRunsOutOfRange) ||
		errors.Is(err, scoring.ErrDeliveryInvalidExtra) ||
		errors.Is(err, scoring.ErrDeliveryExtraRunsRequired) ||
		errors.Is(err, scoring.ErrDeliveryWicketIncomplete)
}
