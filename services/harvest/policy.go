package harvest

// NameOrder selects which end of a full name holds the surname. The
// registry writes "John Michael Doe" with the surname last; older
// exports of this pipeline assumed the opposite, so the choice stays
// configurable.
type NameOrder string

const (
	// canonical: final whitespace token is the surname
	SurnameLast NameOrder = "surname-last"
	// legacy, superseded: first token is the first name... meaning the
	// surname is everything after it
	SurnameFirst NameOrder = "surname-first"
)

// Policy holds every reconciliation rule that has diverged across
// historical variants of this pipeline. The zero value is not usable,
// start from DefaultPolicy.
type Policy struct {
	NameOrder NameOrder `json:"name_order"`
	// grade signals are on a 0-4 scale, marks on 0-100
	MarkMultiplier float64 `json:"mark_multiplier"`
	// minimum overall mark that counts as a pass, ties pass
	PassMark int `json:"pass_mark"`
	// the one sponsor code recognized as government funding
	GovernmentSponsor string `json:"government_sponsor"`
	// tuition per qualification tier and year of study
	FeeTable map[QualificationTier]map[int]float64 `json:"fee_table"`
	// charged when a (tier, year) combination is not in the table
	DefaultFee float64 `json:"default_fee"`
	// school code to full faculty name
	Faculties map[string]string `json:"faculties"`

	Defaults Defaults `json:"defaults"`
}

func DefaultPolicy() Policy {
	return Policy{
		NameOrder:         SurnameLast,
		MarkMultiplier:    25,
		PassMark:          50,
		GovernmentSponsor: "NMDS",
		FeeTable: map[QualificationTier]map[int]float64{
			TierDiploma: {
				1: 28000,
				2: 26500,
				3: 25000,
			},
			TierCertificate: {
				1: 22000,
			},
			TierDegree: {
				1: 32000,
				2: 30500,
				3: 29000,
				4: 27500,
			},
		},
		DefaultFee: 35000,
		Faculties: map[string]string{
			"FICT": "Faculty of Information & Communication Technology",
			"FDI":  "Faculty of Design and Innovation",
			"FCMB": "Faculty of Communication, Media and Broadcasting",
			"FBMG": "Faculty of Business and Globalisation",
			"FCTH": "Faculty of Creativity in Tourism and Hospitality",
			"FABE": "Faculty of Architecture and the Built Environment",
		},
		Defaults: DefaultDefaults(),
	}
}

// Fee looks up the tuition for a tier and year of study, falling back
// to the default ceiling fee for unmapped combinations.
func (p Policy) Fee(tier QualificationTier, yearOfStudy int) float64 {
	years, ok := p.FeeTable[tier]
	if !ok {
		return p.DefaultFee
	}
	fee, ok := years[yearOfStudy]
	if !ok {
		return p.DefaultFee
	}
	return fee
}

// Faculty maps a school code to its faculty name, "Unknown" when the
// code is unmapped. An unmapped code never drops a record.
func (p Policy) Faculty(schoolCode string) string {
	name, ok := p.Faculties[schoolCode]
	if !ok {
		return "Unknown"
	}
	return name
}
