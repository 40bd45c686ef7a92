package domain

// StatKey identifies a category progress bar
type StatKey string

// Category stats
const (
	StatMental      StatKey = "MNT"
	StatPhysical    StatKey = "PHY"
	StatEnvironment StatKey = "ENV"
	StatProject     StatKey = "PRJ"
	StatFamily      StatKey = "FAM"
	StatSchool      StatKey = "ECO"
	StatSocial      StatKey = "SOC"
)

// StatKeys lists every category in display order
var StatKeys = []StatKey{
	StatMental,
	StatPhysical,
	StatEnvironment,
	StatProject,
	StatFamily,
	StatSchool,
	StatSocial,
}

// Valid reports whether k is a known category
func (k StatKey) Valid() bool {
	for _, known := range StatKeys {
		if k == known {
			return true
		}
	}
	return false
}

// SchoolStatKey identifies a secondary progress bar tracked for child profiles
type SchoolStatKey string

// School stats
const (
	SchoolWriting  SchoolStatKey = "ECR"
	SchoolReading  SchoolStatKey = "LEC"
	SchoolMath     SchoolStatKey = "MAT"
	SchoolSport    SchoolStatKey = "SPO"
	SchoolBehavior SchoolStatKey = "COM"
)

// SchoolStatKeys lists every school stat in display order
var SchoolStatKeys = []SchoolStatKey{
	SchoolWriting,
	SchoolReading,
	SchoolMath,
	SchoolSport,
	SchoolBehavior,
}

// Stat defaults
const (
	DefaultStatValue = 20
	DefaultStatMax   = 100
)

// StatDef is a single bounded progress bar
type StatDef struct {
	Name string `json:"name"`
	Val  int    `json:"val"`
	Max  int    `json:"max"`
}

// Add returns the stat moved by delta and clamped to [0, Max]
func (s StatDef) Add(delta int) StatDef {
	s.Val += delta
	return s.Clamp()
}

// Clamp keeps Val inside [0, Max]
func (s StatDef) Clamp() StatDef {
	if s.Max <= 0 {
		s.Max = DefaultStatMax
	}
	if s.Val < 0 {
		s.Val = 0
	}
	if s.Val > s.Max {
		s.Val = s.Max
	}
	return s
}

// DefaultStats returns the category bars for a fresh profile
func DefaultStats() map[StatKey]StatDef {
	names := map[StatKey]string{
		StatMental:      "MENTAL",
		StatPhysical:    "PHYSIQUE",
		StatEnvironment: "ENVIRON.",
		StatProject:     "PROJETS",
		StatFamily:      "FAMILLE",
		StatSchool:      "ECOLE",
		StatSocial:      "SOCIAL",
	}
	stats := make(map[StatKey]StatDef, len(StatKeys))
	for _, k := range StatKeys {
		stats[k] = StatDef{Name: names[k], Val: DefaultStatValue, Max: DefaultStatMax}
	}
	return stats
}

// DefaultSchoolStats returns the school bars for a fresh profile
func DefaultSchoolStats() map[SchoolStatKey]StatDef {
	names := map[SchoolStatKey]string{
		SchoolWriting:  "ECRITURE",
		SchoolReading:  "LECTURE",
		SchoolMath:     "MATHS",
		SchoolSport:    "SPORT",
		SchoolBehavior: "COMPORTEMENT",
	}
	stats := make(map[SchoolStatKey]StatDef, len(SchoolStatKeys))
	for _, k := range SchoolStatKeys {
		stats[k] = StatDef{Name: names[k], Val: DefaultStatValue, Max: DefaultStatMax}
	}
	return stats
}
