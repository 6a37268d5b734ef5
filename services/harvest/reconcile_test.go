package harvest

import (
	"errors"
	"testing"

	"registry-harvester/lib/field"
	"registry-harvester/lib/scrapers/registry"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func fullInputs() (registry.Row, registry.Transcript, registry.Personal, registry.Sponsor) {
	row := registry.Row{
		SchoolCode:    "FICT",
		StudentNumber: "901012345",
		FullName:      "John Michael Doe",
		StatusText:    "Active",
	}
	transcript := registry.Transcript{
		Program:      field.Present("BSc in Information Technology"),
		GradeSignal:  field.Present("3.4"),
		AcademicYear: field.Present(2),
	}
	personal := registry.Personal{
		Nationality: field.Present("Mosotho"),
		Sex:         field.Present("Male"),
		Birthdate:   field.Present("1999-04-12"),
		BirthPlace:  field.Present("Maseru"),
	}
	sponsor := registry.Sponsor{Name: "NMDS"}
	return row, transcript, personal, sponsor
}

func TestReconcile(t *testing.T) {
	row, transcript, personal, sponsor := fullInputs()

	record, err := Reconcile(row, transcript, personal, sponsor, DefaultPolicy())
	require.NoError(t, err)

	require.Equal(t, "901012345", record.StudentNumber)
	require.Equal(t, "John Michael", record.FirstName)
	require.Equal(t, "Doe", record.Surname)
	require.Equal(t, "Faculty of Information & Communication Technology", record.FacultyName)
	require.Equal(t, 4, record.DurationOfProgram)
	require.Equal(t, TierDegree, record.QualificationTier)
	require.Equal(t, "Degree", record.Qualification)
	require.Equal(t, StatusContinuing, record.StudentStatus)
	require.NotNil(t, record.OverallMark)
	require.Equal(t, 85, *record.OverallMark)
	require.Equal(t, GraduatePassed, record.GraduateStatus)
	require.Equal(t, SponsorGovernment, record.SponsorType)
	require.NotNil(t, record.TuitionFee)
	require.Equal(t, 30500.0, *record.TuitionFee)
}

func TestReconcileIsDeterministic(t *testing.T) {
	row, transcript, personal, sponsor := fullInputs()

	first, err := Reconcile(row, transcript, personal, sponsor, DefaultPolicy())
	require.NoError(t, err)
	second, err := Reconcile(row, transcript, personal, sponsor, DefaultPolicy())
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("records differ (-first +second):\n%s", diff)
	}
}

func TestReconcileProgramRules(t *testing.T) {
	for _, tc := range []struct {
		program  string
		duration int
		tier     QualificationTier
	}{
		{"Diploma in Business Management", 3, TierDiploma},
		{"Associate Degree in Architecture", 3, TierDiploma},
		{"Certificate in Fashion Design", 1, TierCertificate},
		{"BSc in Information Technology", 4, TierDegree},
		{"B Arch in Architectural Studies", 4, TierDegree},
	} {
		t.Run(tc.program, func(t *testing.T) {
			row, transcript, personal, sponsor := fullInputs()
			transcript.Program = field.Present(tc.program)

			record, err := Reconcile(row, transcript, personal, sponsor, DefaultPolicy())
			require.NoError(t, err)
			require.Equal(t, tc.duration, record.DurationOfProgram)
			require.Equal(t, tc.tier, record.QualificationTier)
		})
	}
}

func TestReconcileCompleterStatus(t *testing.T) {
	row, transcript, personal, sponsor := fullInputs()
	// final year of a four year degree
	transcript.AcademicYear = field.Present(4)

	record, err := Reconcile(row, transcript, personal, sponsor, DefaultPolicy())
	require.NoError(t, err)
	require.Equal(t, StatusCompleter, record.StudentStatus)
}

func TestReconcileMarkAndGraduate(t *testing.T) {
	for _, tc := range []struct {
		name     string
		signal   field.Field[string]
		mark     *int
		graduate GraduateStatus
	}{
		{"pass on the boundary", field.Present("2.0"), intPtr(50), GraduatePassed},
		{"fail below the boundary", field.Present("1.9"), intPtr(48), GraduateFailed},
		{"above scale is not clamped", field.Present("4.2"), intPtr(105), GraduatePassed},
		{"rounded half up", field.Present("3.41"), intPtr(85), GraduatePassed},
		{"no numeric signal", field.NotApplicable[string](), nil, GraduateFailed},
		{"garbage signal", field.Present("N/A"), nil, GraduateFailed},
	} {
		t.Run(tc.name, func(t *testing.T) {
			row, transcript, personal, sponsor := fullInputs()
			transcript.GradeSignal = tc.signal

			record, err := Reconcile(row, transcript, personal, sponsor, DefaultPolicy())
			require.NoError(t, err)
			if tc.mark == nil {
				require.Nil(t, record.OverallMark)
			} else {
				require.NotNil(t, record.OverallMark)
				require.Equal(t, *tc.mark, *record.OverallMark)
			}
			require.Equal(t, tc.graduate, record.GraduateStatus)
		})
	}
}

func TestReconcileIncomplete(t *testing.T) {
	for _, tc := range []struct {
		name   string
		mutate func(*registry.Transcript, *registry.Personal)
	}{
		{"missing program", func(tr *registry.Transcript, p *registry.Personal) {
			tr.Program = field.Absent[string]()
		}},
		{"missing grade signal", func(tr *registry.Transcript, p *registry.Personal) {
			tr.GradeSignal = field.Absent[string]()
		}},
		{"missing academic year", func(tr *registry.Transcript, p *registry.Personal) {
			tr.AcademicYear = field.Absent[int]()
		}},
		{"missing sex", func(tr *registry.Transcript, p *registry.Personal) {
			p.Sex = field.Absent[string]()
		}},
		{"missing birthdate", func(tr *registry.Transcript, p *registry.Personal) {
			p.Birthdate = field.Absent[string]()
		}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			row, transcript, personal, sponsor := fullInputs()
			tc.mutate(&transcript, &personal)

			_, err := Reconcile(row, transcript, personal, sponsor, DefaultPolicy())
			require.ErrorIs(t, err, ErrIncompleteRecord)
		})
	}
}

func TestReconcileTolerates(t *testing.T) {
	row, transcript, personal, sponsor := fullInputs()
	row.SchoolCode = "XYZ"
	personal.Nationality = field.Absent[string]()
	personal.BirthPlace = field.Absent[string]()
	sponsor.Name = ""

	record, err := Reconcile(row, transcript, personal, sponsor, DefaultPolicy())
	require.NoError(t, err)
	require.False(t, errors.Is(err, ErrIncompleteRecord))
	require.Equal(t, "Unknown", record.FacultyName)
	require.Equal(t, "Unknown", record.Nationality)
	require.Equal(t, "", record.BirthPlace)
	require.Equal(t, "Unknown", record.SponsorName)
	require.Equal(t, SponsorOther, record.SponsorType)
}

func TestReconcileFallbackGradeSignal(t *testing.T) {
	row, transcript, personal, sponsor := fullInputs()
	// the program-list fallback knows no numeric grade
	transcript.GradeSignal = field.NotApplicable[string]()

	record, err := Reconcile(row, transcript, personal, sponsor, DefaultPolicy())
	require.NoError(t, err)
	require.Nil(t, record.OverallMark)
	require.Equal(t, GraduateFailed, record.GraduateStatus)
}

func TestReconcileFeeFallback(t *testing.T) {
	row, transcript, personal, sponsor := fullInputs()
	// year 5 of a degree has no fee table entry
	transcript.AcademicYear = field.Present(5)

	record, err := Reconcile(row, transcript, personal, sponsor, DefaultPolicy())
	require.NoError(t, err)
	require.NotNil(t, record.TuitionFee)
	require.Equal(t, DefaultPolicy().DefaultFee, *record.TuitionFee)
}

func TestSplitName(t *testing.T) {
	for _, tc := range []struct {
		fullName  string
		order     NameOrder
		firstName string
		surname   string
	}{
		{"John Michael Doe", SurnameLast, "John Michael", "Doe"},
		{"Jane Smith", SurnameLast, "Jane", "Smith"},
		{"Madonna", SurnameLast, "Madonna", ""},
		{"", SurnameLast, "", ""},
		{"Doe John Michael", SurnameFirst, "Doe", "John Michael"},
	} {
		firstName, surname := splitName(tc.fullName, tc.order)
		require.Equal(t, tc.firstName, firstName, tc.fullName)
		require.Equal(t, tc.surname, surname, tc.fullName)
	}
}

func intPtr(v int) *int { return &v }
