// Package forge resolves an author's pull-request count from whichever
// hosting-platform source is available: local forge CLIs first, then the
// REST API of the detected remote. Every source failure is soft; the chain
// degrades to an "unknown" sentinel rather than failing the run.
package forge

import (
	"context"

	apperrors "github.com/gitlytics/gitlytics-go/internal/errors"
)

// Source resolves a pull-request count for one author identity. A nil error
// means the count is definite, including an explicit zero. Sources that
// cannot answer return a PRSourceUnavailable error so the chain can fall
// through.
type Source interface {
	Name() string
	Count(ctx context.Context, identity string) (int, error)
}

// unavailable wraps a source failure so the chain treats it as soft
func unavailable(err error, message string) error {
	if err == nil {
		return apperrors.New(apperrors.PRSourceUnavailable, message)
	}
	return apperrors.SourceUnavailable(err, message)
}
