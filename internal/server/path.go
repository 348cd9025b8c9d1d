package server

import (
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strconv"

	"github.com/desertthunder/chinook/internal/shared"
)

// isNumeric reports whether s is a non-empty run of ASCII digits.
func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func parseID(s string) (int64, bool) {
	if !isNumeric(s) {
		return 0, false
	}
	id, err := strconv.ParseInt(s, 10, 64)
	return id, err == nil
}

// outOfRange reports whether s is numeric but too large for an int64.
func outOfRange(s string) bool {
	if !isNumeric(s) {
		return false
	}
	_, err := strconv.ParseInt(s, 10, 64)
	return err != nil
}

// unknownID answers 404 when segments are /{id}, or /{id}/{sub} for one of subs, and the id is too large
// for an int64. No row carries such an id. It reports whether it answered.
func unknownID(w http.ResponseWriter, segments []string, entity string, subs ...string) bool {
	if len(segments) == 0 || !outOfRange(segments[0]) {
		return false
	}
	if len(segments) > 2 || (len(segments) == 2 && !slices.Contains(subs, segments[1])) {
		return false
	}
	writeError(w, http.StatusNotFound, fmt.Sprintf("%s with ID %s not found.", entity, segments[0]))
	return true
}

// itemID matches the /{id} shape.
func itemID(segments []string) (int64, bool) {
	if len(segments) != 1 {
		return 0, false
	}
	return parseID(segments[0])
}

// subID matches the /{id}/{sub} shape.
func subID(segments []string, sub string) (int64, bool) {
	if len(segments) != 2 || segments[1] != sub {
		return 0, false
	}
	return parseID(segments[0])
}

func invalidPath(w http.ResponseWriter) {
	writeError(w, http.StatusBadRequest, "Invalid request path.")
}

func methodNotAllowed(w http.ResponseWriter) {
	writeError(w, http.StatusMethodNotAllowed, "Method not allowed.")
}

// fail maps a repository error to 404 or 500.
func fail(w http.ResponseWriter, err error, notFound, failed string) {
	if errors.Is(err, shared.ErrNotFound) {
		writeError(w, http.StatusNotFound, notFound)
		return
	}
	writeError(w, http.StatusInternalServerError, failed)
}

// invalidBody answers 400 for a body that does not decode or does not validate.
func invalidBody(w http.ResponseWriter, err error) {
	if errors.Is(err, shared.ErrInvalidInput) {
		writeError(w, http.StatusBadRequest, "Invalid JSON body.")
		return
	}
	writeError(w, http.StatusBadRequest, err.Error())
}
