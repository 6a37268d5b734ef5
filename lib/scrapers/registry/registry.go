// Package registry scrapes the server-rendered pages of the campus
// registry: the paginated student roster plus the per-student detail
// pages (official transcript, personal details, program list).
//
// Every extracted field is independent, one missing label never
// prevents extraction of the others. Absence is reported through
// field.Field, not through errors.
package registry

import (
	"registry-harvester/lib/field"

	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("scrapers/registry")

// page paths under the registry root
const (
	ListPath       = "r_studentviewlist.php"
	transcriptPath = "Officialreport.php"
	personalPath   = "r_stdpersonalview.php"
	programPath    = "r_stdprogramlist.php"
)

// structural markers and labels, kept as data so the parsing logic
// stays testable against fixture pages
const (
	rosterTableSelector = "table#ewlistmain"
	rosterRowSelector   = "tr.ewTableRow, tr.ewTableAltRow"
	nextPageText        = "Next"

	programLabel     = "Program:"
	resultsLabel     = "Results:"
	semesterLabel    = "Semester:"
	nationalityLabel = "Nationality"
	sexLabel         = "Sex"
	birthdateLabel   = "Birthdate"
	birthPlaceLabel  = "Birth Place"
)

// roster column layout
const (
	minRosterColumns = 7

	rosterSchoolColumn = 1
	rosterNumberColumn = 3
	rosterNameColumn   = 4
	rosterStatusColumn = 6
)

// program-list column layout
const (
	programListProgramColumn = 1
	programListYearColumn    = 2
	programListSponsorColumn = 3
)

// Row is one entry of the paginated roster, pre-enrichment.
type Row struct {
	SchoolCode    string
	StudentNumber string
	FullName      string
	StatusText    string
}

// Transcript is the partial record extracted from the official report
// page, or from the program-list fallback. On the fallback path
// GradeSignal is NotApplicable: there is no numeric grade from that
// page, which is different from the label being missing.
type Transcript struct {
	Program      field.Field[string]
	GradeSignal  field.Field[string]
	AcademicYear field.Field[int]
}

// Usable reports whether the primary extraction produced the full
// program/grade/year triple. When it did not, the caller consults the
// program-list fallback instead.
func (t Transcript) Usable() bool {
	return t.Program.IsPresent() && t.GradeSignal.IsPresent() && t.AcademicYear.IsPresent()
}

type Personal struct {
	Nationality field.Field[string]
	Sex         field.Field[string]
	Birthdate   field.Field[string]
	BirthPlace  field.Field[string]
}

// Sponsor holds the sponsor name from the program page. The empty
// string is a sentinel for "not determined", callers branch on it, it
// is never an error.
type Sponsor struct {
	Name string
}
