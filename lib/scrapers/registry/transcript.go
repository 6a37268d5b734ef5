package registry

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"registry-harvester/lib/field"
	"registry-harvester/lib/htmlutil"
	"registry-harvester/lib/scrapers/registry/core"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// FetchTranscript extracts the academic partial from the official
// report page. The transcript lists every historical term, so labeled
// fields repeat; the most recent term owns the final occurrence in
// document order, which is the one taken.
func FetchTranscript(ctx context.Context, client *core.Client, studentNumber string) (Transcript, error) {
	ctx, span := tracer.Start(ctx, "FetchTranscript")
	defer span.End()
	span.SetAttributes(attribute.String("student", studentNumber))

	pageUrl := fmt.Sprintf("%s?showmaster=1&StudentID=%s", transcriptPath, url.QueryEscape(studentNumber))
	page, err := client.Fetch(ctx, pageUrl)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch")
		return Transcript{}, err
	}
	doc, err := page.Document()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse html")
		return Transcript{}, err
	}

	return Transcript{
		Program:      extractProgram(doc),
		GradeSignal:  extractGradeSignal(doc),
		AcademicYear: extractAcademicYear(doc),
	}, nil
}

func extractProgram(doc *goquery.Document) field.Field[string] {
	label, ok := htmlutil.FindLastByText(doc, "td", programLabel)
	if !ok {
		return field.Absent[string]()
	}
	text, ok := htmlutil.NextCellText(label)
	if !ok || text == "" {
		return field.Absent[string]()
	}
	return field.Present(text)
}

// the results cell reads like "3.21 / 3.40", the grade signal is the
// figure after the final slash
func extractGradeSignal(doc *goquery.Document) field.Field[string] {
	label, ok := htmlutil.FindLastByText(doc, "td", resultsLabel)
	if !ok {
		return field.Absent[string]()
	}
	text, ok := htmlutil.NextCellText(label)
	if !ok || text == "" {
		return field.Absent[string]()
	}
	parts := strings.Split(text, "/")
	signal := strings.TrimSpace(parts[len(parts)-1])
	if signal == "" {
		return field.Absent[string]()
	}
	return field.Present(signal)
}

// the semester cell reads like "Semester 1, Year 3"
func extractAcademicYear(doc *goquery.Document) field.Field[int] {
	label, ok := htmlutil.FindLastByText(doc, "td", semesterLabel)
	if !ok {
		return field.Absent[int]()
	}
	text, ok := htmlutil.NextCellText(label)
	if !ok {
		return field.Absent[int]()
	}
	parts := strings.Split(text, ",")
	if len(parts) < 2 {
		return field.Absent[int]()
	}
	words := strings.Fields(parts[1])
	if len(words) < 2 {
		return field.Absent[int]()
	}
	year, err := strconv.Atoi(words[1])
	if err != nil {
		return field.Absent[int]()
	}
	return field.Present(year)
}

// FetchProgramList is the fallback for students whose transcript yields
// no usable data. The program-list page knows the program and year of
// study but carries no numeric grade, so GradeSignal comes back
// NotApplicable rather than Absent.
func FetchProgramList(ctx context.Context, client *core.Client, studentNumber string) (Transcript, error) {
	ctx, span := tracer.Start(ctx, "FetchProgramList")
	defer span.End()
	span.SetAttributes(attribute.String("student", studentNumber))

	cells, err := firstProgramRow(ctx, client, studentNumber)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch")
		return Transcript{}, err
	}

	out := Transcript{
		Program:      field.Absent[string](),
		GradeSignal:  field.NotApplicable[string](),
		AcademicYear: field.Absent[int](),
	}
	if cells == nil {
		return out, nil
	}

	if cells.Length() > programListProgramColumn {
		program := htmlutil.Text(cells.Eq(programListProgramColumn))
		if program != "" {
			out.Program = field.Present(program)
		}
	}
	if cells.Length() > programListYearColumn {
		// the year cell reads like "Year 2"
		words := strings.Fields(htmlutil.Text(cells.Eq(programListYearColumn)))
		if len(words) > 0 {
			year, err := strconv.Atoi(words[len(words)-1])
			if err == nil {
				out.AcademicYear = field.Present(year)
			}
		}
	}
	return out, nil
}

// firstProgramRow returns the cells of the first data row of the
// program-list page, or nil when the page has no such row.
func firstProgramRow(ctx context.Context, client *core.Client, studentNumber string) (*goquery.Selection, error) {
	pageUrl := fmt.Sprintf("%s?StudentID=%s", programPath, url.QueryEscape(studentNumber))
	page, err := client.Fetch(ctx, pageUrl)
	if err != nil {
		return nil, err
	}
	doc, err := page.Document()
	if err != nil {
		return nil, err
	}
	row := doc.Find(rosterTableSelector).Find(rosterRowSelector).First()
	if row.Length() == 0 {
		return nil, nil
	}
	return row.Find("td"), nil
}
