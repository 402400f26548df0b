package output

import (
	"encoding/json"
	"io"

	"github.com/gitlytics/gitlytics-go/internal/stats"
)

// JSONFormatter renders the report as a single indented JSON object with
// stable key names for machine consumption.
type JSONFormatter struct{}

func (f *JSONFormatter) Format(report *stats.Report, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
