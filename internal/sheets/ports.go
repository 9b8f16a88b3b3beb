package sheets

import (
	"context"

	"kakei/internal/core"
)

// Ports for outbound sync destinations.
type (
	// Exporter sends the entire record collection to a spreadsheet
	// destination. There is no incremental sync; every call carries all
	// records.
	Exporter interface {
		Export(ctx context.Context, records []core.Record) error
	}
)
