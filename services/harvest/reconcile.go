package harvest

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"registry-harvester/lib/field"
	"registry-harvester/lib/scrapers/registry"
)

// ErrIncompleteRecord marks a student whose pages did not yield the
// minimum field set even after the program-list fallback. The record is
// skipped, never persisted partially.
var ErrIncompleteRecord = errors.New("incomplete record")

// Reconcile merges a roster row and the three detail partials into one
// StudentRecord and applies every business-rule derivation. It is a
// pure function of its inputs: identical inputs always produce an
// identical record.
func Reconcile(
	row registry.Row,
	transcript registry.Transcript,
	personal registry.Personal,
	sponsor registry.Sponsor,
	policy Policy,
) (StudentRecord, error) {
	var missing []string
	if transcript.Program.IsAbsent() {
		missing = append(missing, "program")
	}
	if transcript.GradeSignal.IsAbsent() {
		missing = append(missing, "grade signal")
	}
	if transcript.AcademicYear.IsAbsent() {
		missing = append(missing, "academic year")
	}
	if personal.Sex.IsAbsent() {
		missing = append(missing, "sex")
	}
	if personal.Birthdate.IsAbsent() {
		missing = append(missing, "birthdate")
	}
	if len(missing) > 0 {
		return StudentRecord{}, fmt.Errorf(
			"%w: student %s is missing %s",
			ErrIncompleteRecord, row.StudentNumber, strings.Join(missing, ", "),
		)
	}

	program, _ := transcript.Program.Value()
	yearOfStudy, _ := transcript.AcademicYear.Value()
	firstName, surname := splitName(row.FullName, policy.NameOrder)

	duration := programDuration(program)
	tier := qualificationTier(program)

	status := StatusContinuing
	if yearOfStudy == duration {
		status = StatusCompleter
	}

	mark := overallMark(transcript.GradeSignal, policy.MarkMultiplier)
	graduate := GraduateFailed
	if mark != nil && *mark >= policy.PassMark {
		graduate = GraduatePassed
	}

	sponsorName := sponsor.Name
	if sponsorName == "" {
		sponsorName = "Unknown"
	}
	sponsorType := SponsorOther
	if sponsor.Name == policy.GovernmentSponsor {
		sponsorType = SponsorGovernment
	}

	fee := policy.Fee(tier, yearOfStudy)
	defaults := policy.Defaults

	return StudentRecord{
		StudentNumber: row.StudentNumber,
		AcademicYear:  yearOfStudy,
		FirstName:     firstName,
		Surname:       surname,
		DateOfBirth:   personal.Birthdate.Or(""),
		Gender:        personal.Sex.Or(""),
		Nationality:   personal.Nationality.Or("Unknown"),
		BirthPlace:    personal.BirthPlace.Or(""),

		NumberOfSponsors: defaults.NumberOfSponsors,
		SponsorType:      sponsorType,
		SponsorName:      sponsorName,

		FacultyName:       policy.Faculty(row.SchoolCode),
		Program:           program,
		DurationOfProgram: duration,
		YearOfStudy:       yearOfStudy,
		QualificationTier: tier,
		Qualification:     tier.String(),
		StudentStatus:     status,
		OverallMark:       mark,
		GraduateStatus:    graduate,

		TuitionFee: &fee,

		LevelOfStudy:           defaults.LevelOfStudy,
		ResidentialStatus:      defaults.ResidentialStatus,
		ModeOfStudy:            defaults.ModeOfStudy,
		Disability:             defaults.Disability,
		FeesApplication:        defaults.FeesApplication,
		FeesRegistration:       defaults.FeesRegistration,
		FeeBooks:               defaults.FeeBooks,
		FeeAccommodation:       defaults.FeeAccommodation,
		FeeAccommodationActual: defaults.FeeAccommodationActual,
		FeeMeals:               defaults.FeeMeals,
		FeeMealsActual:         defaults.FeeMealsActual,
		FeeLumpsum:             defaults.FeeLumpsum,
		FeeLumpsumActual:       defaults.FeeLumpsumActual,
	}, nil
}

func splitName(fullName string, order NameOrder) (firstName, surname string) {
	names := strings.Fields(fullName)
	if len(names) == 0 {
		return "", ""
	}
	if len(names) == 1 {
		return names[0], ""
	}
	if order == SurnameFirst {
		return names[0], strings.Join(names[1:], " ")
	}
	return strings.Join(names[:len(names)-1], " "), names[len(names)-1]
}

func programDuration(program string) int {
	p := strings.ToLower(program)
	switch {
	case strings.Contains(p, "diploma"), strings.Contains(p, "associate"):
		return 3
	case strings.Contains(p, "certificate"):
		return 1
	}
	return 4
}

// tier numbering is deliberately independent from duration numbering
func qualificationTier(program string) QualificationTier {
	p := strings.ToLower(program)
	switch {
	case strings.Contains(p, "diploma"), strings.Contains(p, "associate"):
		return TierDiploma
	case strings.Contains(p, "certificate"):
		return TierCertificate
	}
	return TierDegree
}

// overallMark scales a numeric grade signal onto 0-100. A NotApplicable
// or non-numeric signal yields nil, which is a valid persisted state,
// not a reason to drop the record.
func overallMark(signal field.Field[string], multiplier float64) *int {
	text, ok := signal.Value()
	if !ok {
		return nil
	}
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil
	}
	mark := int(math.Round(value * multiplier))
	return &mark
}
