package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/desertthunder/chinook/internal/shared"
)

// guardedDelete describes a delete that is refused while dependents exist.
type guardedDelete struct {
	entity     string
	dependents string
	id         int64
	exists     func(ctx context.Context, id int64) error
	depends    func(ctx context.Context, id int64) (bool, error)
	remove     func(ctx context.Context, id int64) error
}

// run checks existence, then dependents, then deletes. A failed dependency check never deletes.
func (d guardedDelete) run(w http.ResponseWriter, r *request) {
	ctx := r.Context()
	lower := strings.ToLower(d.entity)

	if err := d.exists(ctx, d.id); err != nil {
		fail(w, err, fmt.Sprintf("%s with ID %d not found.", d.entity, d.id),
			fmt.Sprintf("Failed to retrieve %s %d.", lower, d.id))
		return
	}

	has, err := d.depends(ctx, d.id)
	if err != nil {
		writeError(w, http.StatusInternalServerError,
			fmt.Sprintf("Failed to check %s for %s %d.", d.dependents, lower, d.id))
		return
	}
	if has {
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("Cannot delete %s %d: it still has %s.", lower, d.id, d.dependents))
		return
	}

	if err := d.remove(ctx, d.id); err != nil {
		fail(w, err, fmt.Sprintf("%s with ID %d not found.", d.entity, d.id),
			fmt.Sprintf("Failed to delete %s %d.", lower, d.id))
		return
	}

	writeMessage(w, http.StatusOK, fmt.Sprintf("%s %d deleted successfully.", d.entity, d.id))
}

// exists adapts a getter to the existence check of a [guardedDelete].
func exists[T any](get func(context.Context, int64) (T, error)) func(context.Context, int64) error {
	return func(ctx context.Context, id int64) error {
		_, err := get(ctx, id)
		return err
	}
}

// isMissing reports whether err means the row does not exist.
func isMissing(err error) bool {
	return errors.Is(err, shared.ErrNotFound)
}
