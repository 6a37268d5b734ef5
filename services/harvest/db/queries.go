package db

import (
	"context"
	"database/sql"
)

const studentExists = `-- name: StudentExists :one
SELECT COUNT(*) FROM students WHERE student_number = ?
`

func (q *Queries) StudentExists(ctx context.Context, studentNumber string) (int64, error) {
	row := q.db.QueryRowContext(ctx, studentExists, studentNumber)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const createStudent = `-- name: CreateStudent :exec
INSERT INTO students (
    student_number,
    academic_year,
    first_name,
    surname,
    date_of_birth,
    gender,
    nationality,
    birth_place,
    number_of_sponsors,
    sponsor_type,
    sponsor_name,
    faculty,
    program,
    duration_of_program,
    year_of_study,
    qualification,
    qualification_tier,
    level_of_study,
    residential_status,
    student_status,
    mode_of_study,
    disability,
    overall_mark,
    graduate_status,
    fees_application,
    fees_registration,
    tuition_fee,
    fee_books,
    fee_accommodation,
    fee_accommodation_actual,
    fee_meals,
    fee_meals_actual,
    fee_lumpsum,
    fee_lumpsum_actual
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

type CreateStudentParams struct {
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

func (q *Queries) CreateStudent(ctx context.Context, arg CreateStudentParams) error {
	_, err := q.db.ExecContext(ctx, createStudent,
		arg.StudentNumber,
		arg.AcademicYear,
		arg.FirstName,
		arg.Surname,
		arg.DateOfBirth,
		arg.Gender,
		arg.Nationality,
		arg.BirthPlace,
		arg.NumberOfSponsors,
		arg.SponsorType,
		arg.SponsorName,
		arg.Faculty,
		arg.Program,
		arg.DurationOfProgram,
		arg.YearOfStudy,
		arg.Qualification,
		arg.QualificationTier,
		arg.LevelOfStudy,
		arg.ResidentialStatus,
		arg.StudentStatus,
		arg.ModeOfStudy,
		arg.Disability,
		arg.OverallMark,
		arg.GraduateStatus,
		arg.FeesApplication,
		arg.FeesRegistration,
		arg.TuitionFee,
		arg.FeeBooks,
		arg.FeeAccommodation,
		arg.FeeAccommodationActual,
		arg.FeeMeals,
		arg.FeeMealsActual,
		arg.FeeLumpsum,
		arg.FeeLumpsumActual,
	)
	return err
}

const listStudents = `-- name: ListStudents :many
SELECT
    student_number,
    academic_year,
    first_name,
    surname,
    date_of_birth,
    gender,
    nationality,
    birth_place,
    number_of_sponsors,
    sponsor_type,
    sponsor_name,
    faculty,
    program,
    duration_of_program,
    year_of_study,
    qualification,
    qualification_tier,
    level_of_study,
    residential_status,
    student_status,
    mode_of_study,
    disability,
    overall_mark,
    graduate_status,
    fees_application,
    fees_registration,
    tuition_fee,
    fee_books,
    fee_accommodation,
    fee_accommodation_actual,
    fee_meals,
    fee_meals_actual,
    fee_lumpsum,
    fee_lumpsum_actual
FROM students
ORDER BY student_number
`

func (q *Queries) ListStudents(ctx context.Context) ([]Student, error) {
	rows, err := q.db.QueryContext(ctx, listStudents)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Student
	for rows.Next() {
		var i Student
		if err := rows.Scan(
			&i.StudentNumber,
			&i.AcademicYear,
			&i.FirstName,
			&i.Surname,
			&i.DateOfBirth,
			&i.Gender,
			&i.Nationality,
			&i.BirthPlace,
			&i.NumberOfSponsors,
			&i.SponsorType,
			&i.SponsorName,
			&i.Faculty,
			&i.Program,
			&i.DurationOfProgram,
			&i.YearOfStudy,
			&i.Qualification,
			&i.QualificationTier,
			&i.LevelOfStudy,
			&i.ResidentialStatus,
			&i.StudentStatus,
			&i.ModeOfStudy,
			&i.Disability,
			&i.OverallMark,
			&i.GraduateStatus,
			&i.FeesApplication,
			&i.FeesRegistration,
			&i.TuitionFee,
			&i.FeeBooks,
			&i.FeeAccommodation,
			&i.FeeAccommodationActual,
			&i.FeeMeals,
			&i.FeeMealsActual,
			&i.FeeLumpsum,
			&i.FeeLumpsumActual,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
