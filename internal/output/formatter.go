package output

import (
	"io"

	apperrors "github.com/gitlytics/gitlytics-go/internal/errors"
	"github.com/gitlytics/gitlytics-go/internal/stats"
)

// Formatter renders one aggregate report. Selected once at startup from
// --format; both implementations report identical numbers.
type Formatter interface {
	Format(report *stats.Report, w io.Writer) error
}

// NewFormatter returns the formatter for the requested format name
func NewFormatter(format string) (Formatter, error) {
	switch format {
	case "text":
		return &TextFormatter{}, nil
	case "json":
		return &JSONFormatter{}, nil
	default:
		return nil, apperrors.UsageErrorf("invalid format %q, must be: text or json", format)
	}
}
