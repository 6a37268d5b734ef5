package registry

import (
	"context"

	"registry-harvester/lib/htmlutil"
	"registry-harvester/lib/scrapers/registry/core"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// FetchSponsor reads the sponsor name from its fixed cell in the first
// data row of the program page. A missing row or a row that is too
// short yields the "" sentinel, never an error: "unknown sponsor" is a
// normal state for a record.
func FetchSponsor(ctx context.Context, client *core.Client, studentNumber string) (Sponsor, error) {
	ctx, span := tracer.Start(ctx, "FetchSponsor")
	defer span.End()
	span.SetAttributes(attribute.String("student", studentNumber))

	cells, err := firstProgramRow(ctx, client, studentNumber)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch")
		return Sponsor{}, err
	}
	if cells == nil || cells.Length() <= programListSponsorColumn {
		return Sponsor{Name: ""}, nil
	}
	return Sponsor{Name: htmlutil.Text(cells.Eq(programListSponsorColumn))}, nil
}
