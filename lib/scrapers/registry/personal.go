package registry

import (
	"context"
	"fmt"
	"net/url"

	"registry-harvester/lib/field"
	"registry-harvester/lib/htmlutil"
	"registry-harvester/lib/scrapers/registry/core"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// FetchPersonal extracts the personal-details partial. Each label is
// looked up independently.
func FetchPersonal(ctx context.Context, client *core.Client, studentNumber string) (Personal, error) {
	ctx, span := tracer.Start(ctx, "FetchPersonal")
	defer span.End()
	span.SetAttributes(attribute.String("student", studentNumber))

	pageUrl := fmt.Sprintf("%s?StudentID=%s", personalPath, url.QueryEscape(studentNumber))
	page, err := client.Fetch(ctx, pageUrl)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch")
		return Personal{}, err
	}
	doc, err := page.Document()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse html")
		return Personal{}, err
	}

	return Personal{
		Nationality: labeledCell(doc, nationalityLabel),
		Sex:         labeledCell(doc, sexLabel),
		Birthdate:   labeledCell(doc, birthdateLabel),
		BirthPlace:  labeledCell(doc, birthPlaceLabel),
	}, nil
}

func labeledCell(doc *goquery.Document, labelText string) field.Field[string] {
	label, ok := htmlutil.FindByText(doc, "td", labelText)
	if !ok {
		return field.Absent[string]()
	}
	text, ok := htmlutil.NextCellText(label)
	if !ok || text == "" {
		return field.Absent[string]()
	}
	return field.Present(text)
}
