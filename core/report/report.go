package report

import (
	"context"

	"github.com/pkg/errors"

	"github.com/migeprof/fehub/services/backend"
)

// Source is the slice of the backend the assembler needs.
type Source interface {
	Stats(ctx context.Context) (backend.AdminReport, error)
	FieldAgents(ctx context.Context) ([]backend.FieldAgentSummary, error)
	ProgramsFamilies(ctx context.Context) ([]backend.ProgramFamilyCount, error)
	Contents(ctx context.Context) ([]backend.ContentRatingReport, error)
}

// Assemble fetches the aggregate stats plus the optional sub-reports. The
// stats call is the only hard requirement; a sub-report that fails or comes
// back empty is simply left out of the result.
func Assemble(ctx context.Context, src Source) (backend.AdminReport, error) {
	rpt, err := src.Stats(ctx)
	if err != nil {
		return backend.AdminReport{}, errors.Wrap(err, "assembling report")
	}

	if len(rpt.FieldAgents) == 0 {
		if agents, err := src.FieldAgents(ctx); err == nil {
			rpt.FieldAgents = agents
		}
	}
	if len(rpt.ProgramFamilies) == 0 {
		if counts, err := src.ProgramsFamilies(ctx); err == nil {
			rpt.ProgramFamilies = counts
		}
	}
	if len(rpt.Contents) == 0 {
		if contents, err := src.Contents(ctx); err == nil {
			rpt.Contents = contents
		}
	}
	return rpt, nil
}
