package harvest

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
)

// the fixed column order of the institutional return format
var csvHeader = []string{
	"Institution Name",
	"Academic Year",
	"Student Number",
	"FirstName",
	"Surname",
	"Date Of Birth",
	"Gender",
	"Nationality (Country)",
	"Number of Sponsors",
	"Type of Main Sponsor",
	"Name of Main Sponsor",
	"Faculty or School",
	"Programme",
	"Duration on programme",
	"Year of Study",
	"Qualification",
	"Level of Study",
	"Residential Status",
	"Student Status",
	"Mode of Study",
	"Disability Type",
	"Overall Exam Mark (%)",
	"Graduate Status",
	"Fees Application",
	"Fees Registration",
	"Fees Tuition",
	"Fee (Books)",
	"Fee (Accomodation Recommended)",
	"Fee (Accomodation Actual)",
	"Fee (Meals Recommended)",
	"Fee (Meals Actual)",
	"Fee (Lump Sum Recommended)",
	"Fee (Lump Sum Actual)",
	"OtherFees1Description",
	"Other Fees1 Value",
	"OtherFees2Description",
	"Other Fees 2 Value",
}

// ExportCSV writes every stored record as one CSV row, in store
// enumeration order. Returns the number of exported records.
func ExportCSV(ctx context.Context, store Store, institution string, w io.Writer) (int, error) {
	records, err := store.List(ctx)
	if err != nil {
		return 0, err
	}

	out := csv.NewWriter(w)
	err = out.Write(csvHeader)
	if err != nil {
		return 0, err
	}
	for _, rec := range records {
		err = out.Write(csvRow(rec, institution))
		if err != nil {
			return 0, err
		}
	}
	out.Flush()
	return len(records), out.Error()
}

func csvRow(rec StudentRecord, institution string) []string {
	mark := ""
	if rec.OverallMark != nil {
		mark = strconv.Itoa(*rec.OverallMark)
	}
	tuition := ""
	if rec.TuitionFee != nil {
		tuition = formatFee(*rec.TuitionFee)
	}
	return []string{
		institution,
		strconv.Itoa(rec.AcademicYear),
		rec.StudentNumber,
		rec.FirstName,
		rec.Surname,
		rec.DateOfBirth,
		rec.Gender,
		rec.Nationality,
		strconv.Itoa(rec.NumberOfSponsors),
		string(rec.SponsorType),
		rec.SponsorName,
		rec.FacultyName,
		rec.Program,
		strconv.Itoa(rec.DurationOfProgram),
		strconv.Itoa(rec.YearOfStudy),
		rec.Qualification,
		rec.LevelOfStudy,
		rec.ResidentialStatus,
		string(rec.StudentStatus),
		rec.ModeOfStudy,
		rec.Disability,
		mark,
		string(rec.GraduateStatus),
		formatFee(rec.FeesApplication),
		formatFee(rec.FeesRegistration),
		tuition,
		formatFee(rec.FeeBooks),
		formatFee(rec.FeeAccommodation),
		formatFee(rec.FeeAccommodationActual),
		formatFee(rec.FeeMeals),
		formatFee(rec.FeeMealsActual),
		formatFee(rec.FeeLumpsum),
		formatFee(rec.FeeLumpsumActual),
		"",
		"",
		"",
		"",
	}
}

func formatFee(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
