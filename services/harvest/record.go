// Package harvest turns scraped registry partials into canonical
// student records, persists them idempotently and drives the crawl.
package harvest

type QualificationTier int

const (
	TierDiploma     QualificationTier = 1
	TierCertificate QualificationTier = 2
	TierDegree      QualificationTier = 3
)

func (t QualificationTier) String() string {
	switch t {
	case TierDiploma:
		return "Diploma"
	case TierCertificate:
		return "Certificate"
	case TierDegree:
		return "Degree"
	}
	return "Unknown"
}

type StudentStatus string

const (
	StatusContinuing StudentStatus = "Continuing"
	StatusCompleter  StudentStatus = "Completer"
)

type GraduateStatus string

const (
	GraduatePassed       GraduateStatus = "Passed"
	GraduateFailed       GraduateStatus = "Failed"
	GraduateNotGraduated GraduateStatus = "Not Graduated"
)

type SponsorType string

const (
	SponsorGovernment SponsorType = "Government"
	SponsorOther      SponsorType = "Other"
)

// StudentRecord is the persisted entity: one row per student number for
// the lifetime of the store, insert-only.
type StudentRecord struct {
	StudentNumber string
	AcademicYear  int
	FirstName     string
	Surname       string
	DateOfBirth   string
	Gender        string
	Nationality   string
	BirthPlace    string

	NumberOfSponsors int
	SponsorType      SponsorType
	SponsorName      string

	FacultyName       string
	Program           string
	DurationOfProgram int
	YearOfStudy       int
	QualificationTier QualificationTier
	Qualification     string
	StudentStatus     StudentStatus
	OverallMark       *int
	GraduateStatus    GraduateStatus

	TuitionFee *float64

	// institution-wide defaults, substituted at record-build time
	LevelOfStudy           string
	ResidentialStatus      string
	ModeOfStudy            string
	Disability             string
	FeesApplication        float64
	FeesRegistration       float64
	FeeBooks               float64
	FeeAccommodation       float64
	FeeAccommodationActual float64
	FeeMeals               float64
	FeeMealsActual         float64
	FeeLumpsum             float64
	FeeLumpsumActual       float64
}

// Defaults are the static institution-wide values every record carries.
// They are not derived from any page.
type Defaults struct {
	InstitutionName        string  `json:"institution_name"`
	NumberOfSponsors       int     `json:"number_of_sponsors"`
	LevelOfStudy           string  `json:"level_of_study"`
	ResidentialStatus      string  `json:"residential_status"`
	ModeOfStudy            string  `json:"mode_of_study"`
	Disability             string  `json:"disability"`
	FeesApplication        float64 `json:"fees_application"`
	FeesRegistration       float64 `json:"fees_registration"`
	FeeBooks               float64 `json:"fee_books"`
	FeeAccommodation       float64 `json:"fee_accommodation"`
	FeeAccommodationActual float64 `json:"fee_accommodation_actual"`
	FeeMeals               float64 `json:"fee_meals"`
	FeeMealsActual         float64 `json:"fee_meals_actual"`
	FeeLumpsum             float64 `json:"fee_lumpsum"`
	FeeLumpsumActual       float64 `json:"fee_lumpsum_actual"`
}

func DefaultDefaults() Defaults {
	return Defaults{
		InstitutionName:        "Limkokwing University of Creative Technology, Lesotho",
		NumberOfSponsors:       1,
		LevelOfStudy:           "Undergraduate",
		ResidentialStatus:      "Off Campus",
		ModeOfStudy:            "Fulltime",
		Disability:             "N/A",
		FeesApplication:        2,
		FeesRegistration:       1,
		FeeBooks:               1,
		FeeAccommodation:       7200,
		FeeAccommodationActual: 7200,
		FeeMeals:               6000,
		FeeMealsActual:         6000,
		FeeLumpsum:             0,
		FeeLumpsumActual:       0,
	}
}
