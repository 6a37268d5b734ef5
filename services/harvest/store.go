package harvest

import (
	"context"
	"database/sql"
	"log/slog"

	"registry-harvester/services/harvest/db"
)

// Outcome is the per-record result of the persistence gate.
type Outcome int

const (
	OutcomeInserted Outcome = iota
	// the student number already exists, which is the expected state on
	// a re-run
	OutcomeSkipped
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeInserted:
		return "inserted"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeFailed:
		return "failed"
	}
	return "unknown"
}

type Store struct {
	db  *sql.DB
	qry *db.Queries
}

func NewStore(database *sql.DB) Store {
	return Store{
		db:  database,
		qry: db.New(database),
	}
}

// Persist inserts the record unless its student number already exists.
// The existence check and the insert share one transaction; a write
// failure rolls back and reports OutcomeFailed with the error, it never
// aborts the crawl.
func (s Store) Persist(ctx context.Context, rec StudentRecord) (Outcome, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return OutcomeFailed, err
	}
	defer tx.Rollback()
	txqry := s.qry.WithTx(tx)

	count, err := txqry.StudentExists(ctx, rec.StudentNumber)
	if err != nil {
		return OutcomeFailed, err
	}
	if count > 0 {
		slog.InfoContext(ctx, "student already stored", "student", rec.StudentNumber)
		return OutcomeSkipped, nil
	}

	err = txqry.CreateStudent(ctx, recordToParams(rec))
	if err != nil {
		return OutcomeFailed, err
	}
	err = tx.Commit()
	if err != nil {
		return OutcomeFailed, err
	}
	return OutcomeInserted, nil
}

// List returns every stored record ordered by student number.
func (s Store) List(ctx context.Context) ([]StudentRecord, error) {
	rows, err := s.qry.ListStudents(ctx)
	if err != nil {
		return nil, err
	}
	records := make([]StudentRecord, len(rows))
	for i, r := range rows {
		records[i] = rowToRecord(r)
	}
	return records, nil
}

func recordToParams(rec StudentRecord) db.CreateStudentParams {
	var mark sql.NullInt64
	if rec.OverallMark != nil {
		mark = sql.NullInt64{Int64: int64(*rec.OverallMark), Valid: true}
	}
	var tuition sql.NullFloat64
	if rec.TuitionFee != nil {
		tuition = sql.NullFloat64{Float64: *rec.TuitionFee, Valid: true}
	}
	return db.CreateStudentParams{
		StudentNumber:          rec.StudentNumber,
		AcademicYear:           int64(rec.AcademicYear),
		FirstName:              rec.FirstName,
		Surname:                rec.Surname,
		DateOfBirth:            rec.DateOfBirth,
		Gender:                 rec.Gender,
		Nationality:            rec.Nationality,
		BirthPlace:             rec.BirthPlace,
		NumberOfSponsors:       int64(rec.NumberOfSponsors),
		SponsorType:            string(rec.SponsorType),
		SponsorName:            rec.SponsorName,
		Faculty:                rec.FacultyName,
		Program:                rec.Program,
		DurationOfProgram:      int64(rec.DurationOfProgram),
		YearOfStudy:            int64(rec.YearOfStudy),
		Qualification:          rec.Qualification,
		QualificationTier:      int64(rec.QualificationTier),
		LevelOfStudy:           rec.LevelOfStudy,
		ResidentialStatus:      rec.ResidentialStatus,
		StudentStatus:          string(rec.StudentStatus),
		ModeOfStudy:            rec.ModeOfStudy,
		Disability:             rec.Disability,
		OverallMark:            mark,
		GraduateStatus:         string(rec.GraduateStatus),
		FeesApplication:        rec.FeesApplication,
		FeesRegistration:       rec.FeesRegistration,
		TuitionFee:             tuition,
		FeeBooks:               rec.FeeBooks,
		FeeAccommodation:       rec.FeeAccommodation,
		FeeAccommodationActual: rec.FeeAccommodationActual,
		FeeMeals:               rec.FeeMeals,
		FeeMealsActual:         rec.FeeMealsActual,
		FeeLumpsum:             rec.FeeLumpsum,
		FeeLumpsumActual:       rec.FeeLumpsumActual,
	}
}

func rowToRecord(r db.Student) StudentRecord {
	var mark *int
	if r.OverallMark.Valid {
		m := int(r.OverallMark.Int64)
		mark = &m
	}
	var tuition *float64
	if r.TuitionFee.Valid {
		t := r.TuitionFee.Float64
		tuition = &t
	}
	return StudentRecord{
		StudentNumber:          r.StudentNumber,
		AcademicYear:           int(r.AcademicYear),
		FirstName:              r.FirstName,
		Surname:                r.Surname,
		DateOfBirth:            r.DateOfBirth,
		Gender:                 r.Gender,
		Nationality:            r.Nationality,
		BirthPlace:             r.BirthPlace,
		NumberOfSponsors:       int(r.NumberOfSponsors),
		SponsorType:            SponsorType(r.SponsorType),
		SponsorName:            r.SponsorName,
		FacultyName:            r.Faculty,
		Program:                r.Program,
		DurationOfProgram:      int(r.DurationOfProgram),
		YearOfStudy:            int(r.YearOfStudy),
		QualificationTier:      QualificationTier(r.QualificationTier),
		Qualification:          r.Qualification,
		StudentStatus:          StudentStatus(r.StudentStatus),
		OverallMark:            mark,
		GraduateStatus:         GraduateStatus(r.GraduateStatus),
		TuitionFee:             tuition,
		LevelOfStudy:           r.LevelOfStudy,
		ResidentialStatus:      r.ResidentialStatus,
		ModeOfStudy:            r.ModeOfStudy,
		Disability:             r.Disability,
		FeesApplication:        r.FeesApplication,
		FeesRegistration:       r.FeesRegistration,
		FeeBooks:               r.FeeBooks,
		FeeAccommodation:       r.FeeAccommodation,
		FeeAccommodationActual: r.FeeAccommodationActual,
		FeeMeals:               r.FeeMeals,
		FeeMealsActual:         r.FeeMealsActual,
		FeeLumpsum:             r.FeeLumpsum,
		FeeLumpsumActual:       r.FeeLumpsumActual,
	}
}
