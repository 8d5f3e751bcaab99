package httpapi

import (
	"errors"
	"net/http"

	"timberd/internal/apperr"
	"timberd/internal/repo"
)

// respondError maps the error taxonomy onto HTTP statuses. Validation and
// duplicate-key failures are the caller's fault (400), missing entities are
// 404, bad credentials are 401, and everything else is a 500 whose detail
// is withheld in production.
func (a *API) respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case apperr.IsValidation(err):
		respondJSON(w, http.StatusBadRequest, err.Error(), nil)
	case apperr.IsNotFound(err):
		respondJSON(w, http.StatusNotFound, err.Error(), nil)
	case apperr.IsInvalidCredential(err):
		respondJSON(w, http.StatusUnauthorized, err.Error(), nil)
	case repo.IsDuplicate(err):
		respondJSON(w, http.StatusBadRequest, "a record with these unique values already exists", nil)
	case errors.Is(err, errBadRequest):
		respondJSON(w, http.StatusBadRequest, err.Error(), nil)
	default:
		a.log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		message := "internal server error"
		if !a.production {
			message = err.Error()
		}
		respondJSON(w, http.StatusInternalServerError, message, nil)
	}
}

// errBadRequest marks handler-level input failures, such as unparseable
// bodies or malformed ids, so respondError answers 400 without consulting
// the domain taxonomy.
var errBadRequest = errors.New("bad request")

func badRequest(message string) error {
	return &badRequestError{message: message}
}

type badRequestError struct {
	message string
}

func (e *badRequestError) Error() string { return e.message }

func (e *badRequestError) Is(target error) bool { return target == errBadRequest }
