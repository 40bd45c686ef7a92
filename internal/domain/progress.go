package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// DocumentSchemaVersion is bumped whenever the persisted shape gains fields
const DocumentSchemaVersion = 2

// DateLayout is the calendar-day format used by the daily gift gate
const DateLayout = "2006-01-02"

// ProgressState is the mutable game state of one profile
type ProgressState struct {
	Level             int                       `json:"level"`
	XP                float64                   `json:"xp"`
	Tokens            int                       `json:"tokens"`
	Boxes             int                       `json:"boxes"`
	TasksDoneTotal    int                       `json:"tasksDoneTotal"`
	TasksSinceLastBox int                       `json:"tasksSinceLastBox"`
	Streak            int                       `json:"streak"`
	LastDailyClaim    *string                   `json:"lastDailyClaim"`
	LastPeriodReset   *time.Time                `json:"lastPeriodReset,omitempty"`
	Stats             map[StatKey]StatDef       `json:"stats"`
	SchoolStats       map[SchoolStatKey]StatDef `json:"schoolStats"`
	Quests            []Quest                   `json:"quests"`
}

// QuestIndex returns the position of the quest with the given id, or -1
func (s *ProgressState) QuestIndex(id int64) int {
	for i := range s.Quests {
		if s.Quests[i].ID == id {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy so transitions never alias the previous state
func (s ProgressState) Clone() ProgressState {
	out := s
	if s.LastDailyClaim != nil {
		v := *s.LastDailyClaim
		out.LastDailyClaim = &v
	}
	if s.LastPeriodReset != nil {
		v := *s.LastPeriodReset
		out.LastPeriodReset = &v
	}
	out.Stats = make(map[StatKey]StatDef, len(s.Stats))
	for k, v := range s.Stats {
		out.Stats[k] = v
	}
	out.SchoolStats = make(map[SchoolStatKey]StatDef, len(s.SchoolStats))
	for k, v := range s.SchoolStats {
		out.SchoolStats[k] = v
	}
	out.Quests = make([]Quest, len(s.Quests))
	for i, q := range s.Quests {
		if q.CompletedAt != nil {
			v := *q.CompletedAt
			q.CompletedAt = &v
		}
		out.Quests[i] = q
	}
	return out
}

// DefaultQuests are the starter quests of a profile created without presets
func DefaultQuests() []Quest {
	return []Quest{
		{ID: 1, Txt: "Douche Froide", Cat: StatPhysical, XP: 50, Frequency: FrequencyDaily, MaxProgress: 1},
		{ID: 2, Txt: "Ranger 10 min", Cat: StatEnvironment, XP: 30, Frequency: FrequencyDaily, MaxProgress: 1},
		{ID: 3, Txt: "Avancer Projet X", Cat: StatProject, XP: 100, Frequency: FrequencyDaily, MaxProgress: 1},
	}
}

// DefaultProgressState returns the baseline state of a freshly onboarded profile
func DefaultProgressState() ProgressState {
	return ProgressState{
		Level:       1,
		Streak:      1,
		Stats:       DefaultStats(),
		SchoolStats: DefaultSchoolStats(),
		Quests:      DefaultQuests(),
	}
}

// Document is the persisted shape: identity fields and game state side by side
type Document struct {
	SchemaVersion int `json:"schemaVersion"`
	Profile
	ProgressState
}

// DefaultDocument returns the baseline every stored document is merged over
func DefaultDocument() Document {
	return Document{
		SchemaVersion: DocumentSchemaVersion,
		ProgressState: DefaultProgressState(),
	}
}

// Clone deep copies the document
func (d Document) Clone() Document {
	out := d
	out.ProgressState = d.ProgressState.Clone()
	return out
}

// DecodeDocument reads a stored document, defaulting any field it lacks.
// Stat maps are merged key by key so documents written before a category
// existed still expose every bar.
func DecodeDocument(data []byte) (Document, error) {
	doc := DefaultDocument()
	// quests present in the payload replace the starter list wholesale
	doc.Quests = nil
	var probe struct {
		Quests json.RawMessage `json:"quests"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return Document{}, fmt.Errorf("decode document: %w", err)
	}
	if probe.Quests == nil {
		doc.Quests = DefaultQuests()
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("decode document: %w", err)
	}
	doc.Normalize()
	return doc, nil
}

// Normalize repairs values that older revisions stored differently
func (d *Document) Normalize() {
	if d.Level < 1 {
		d.Level = 1
	}
	if d.XP < 0 {
		d.XP = 0
	}
	if d.Stats == nil {
		d.Stats = DefaultStats()
	}
	if d.SchoolStats == nil {
		d.SchoolStats = DefaultSchoolStats()
	}
	for k, v := range DefaultStats() {
		if _, ok := d.Stats[k]; !ok {
			d.Stats[k] = v
		}
	}
	for k, v := range DefaultSchoolStats() {
		if _, ok := d.SchoolStats[k]; !ok {
			d.SchoolStats[k] = v
		}
	}
	for k, v := range d.Stats {
		d.Stats[k] = v.Clamp()
	}
	for k, v := range d.SchoolStats {
		d.SchoolStats[k] = v.Clamp()
	}
	if d.Quests == nil {
		d.Quests = []Quest{}
	}
	for i := range d.Quests {
		d.Quests[i].normalize()
	}
	d.SchemaVersion = DocumentSchemaVersion
}
