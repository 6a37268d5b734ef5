package db

import "database/sql"

type Student struct {
	StudentNumber          string
	AcademicYear           int64
	FirstName              string
	Surname                string
	DateOfBirth            string
	Gender                 string
	Nationality            string
	BirthPlace             string
	NumberOfSponsors       int64
	SponsorType            string
	SponsorName            string
	Faculty                string
	Program                string
	DurationOfProgram      int64
	YearOfStudy            int64
	Qualification          string
	QualificationTier      int64
	LevelOfStudy           string
	ResidentialStatus      string
	StudentStatus          string
	ModeOfStudy            string
	Disability             string
	OverallMark            sql.NullInt64
	GraduateStatus         string
	FeesApplication        float64
	FeesRegistration       float64
	TuitionFee             sql.NullFloat64
	FeeBooks               float64
	FeeAccommodation       float64
	FeeAccommodationActual float64
	FeeMeals               float64
	FeeMealsActual         float64
	FeeLumpsum             float64
	FeeLumpsumActual       float64
}
