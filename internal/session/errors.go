package session

import (
	"fmt"

	"github.com/kwamena/ugrecover/internal/model"
)

// Operation-specific errors. Each wraps one of the model error kinds so
// callers can match either the specific failure or the broad kind.
var (
	ErrPointNotFound    = fmt.Errorf("collection point %w", model.ErrNotFound)
	ErrOfficerNotFound  = fmt.Errorf("officer %w", model.ErrNotFound)
	ErrCategoryNotFound = fmt.Errorf("category %w", model.ErrNotFound)
	ErrItemNotFound     = fmt.Errorf("item %w", model.ErrNotFound)
	ErrClaimNotFound    = fmt.Errorf("claim %w", model.ErrNotFound)

	ErrAlreadyAssigned  = fmt.Errorf("%w: officer already assigned", model.ErrConflict)
	ErrNotAssigned      = fmt.Errorf("%w: officer not assigned", model.ErrConflict)
	ErrPointInactive    = fmt.Errorf("%w: collection point inactive", model.ErrConflict)
	ErrCapacityExceeded = fmt.Errorf("%w: collection point at capacity", model.ErrConflict)
	ErrPointNotEmpty    = fmt.Errorf("%w: collection point still holds items", model.ErrConflict)
	ErrItemNotClaimable = fmt.Errorf("%w: item cannot be claimed", model.ErrConflict)
	ErrDuplicateClaim   = fmt.Errorf("%w: open claim for this item already exists", model.ErrConflict)
	ErrClaimFinalized   = fmt.Errorf("%w: claim review already finalized", model.ErrConflict)
	ErrBadTransition    = fmt.Errorf("%w: claim status transition not allowed", model.ErrConflict)
)
