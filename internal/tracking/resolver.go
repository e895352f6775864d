package tracking

import (
	"context"
	"errors"

	"github.com/xnorik/xnorik-backend/internal/db"
	"github.com/xnorik/xnorik-backend/internal/models"
)

// Resolver looks up service records by their public tracking code for
// anonymous callers.
type Resolver struct {
	services db.ServiceCollection
}

// NewResolver creates a new tracking resolver
func NewResolver(services db.ServiceCollection) *Resolver {
	return &Resolver{services: services}
}

// Resolve normalizes a candidate code and looks up the matching record.
// A miss is not an error: it returns (nil, false, nil) so the caller can
// surface an informational warning instead of a failure.
func (r *Resolver) Resolve(ctx context.Context, code string) (*models.ServiceRecord, bool, error) {
	normalized := NormalizeCode(code)
	if !ValidCode(normalized) {
		// A malformed code can never match a stored one.
		return nil, false, nil
	}

	record, err := r.services.FindServiceByTrackingCode(ctx, normalized)
	if err != nil {
		if errors.Is(err, db.ErrServiceNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return record, true, nil
}
