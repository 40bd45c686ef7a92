package domain

import "time"

// Frequency classifies how often a quest is meant to be repeated
type Frequency string

// Quest frequencies
const (
	FrequencyDaily   Frequency = "DAILY"
	FrequencyWeekly  Frequency = "WEEKLY"
	FrequencyMonthly Frequency = "MONTHLY"
)

// Valid reports whether f is a known frequency
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return true
	}
	return false
}

// QuestStatus is derived from the quest and the profile level, never stored
type QuestStatus string

// Quest statuses
const (
	QuestLocked     QuestStatus = "LOCKED"
	QuestAvailable  QuestStatus = "AVAILABLE"
	QuestInProgress QuestStatus = "IN_PROGRESS"
	QuestDone       QuestStatus = "DONE"
)

// Quest is a single completable task
type Quest struct {
	ID          int64      `json:"id"`
	Txt         string     `json:"txt"`
	Cat         StatKey    `json:"cat"`
	XP          int        `json:"xp"`
	Tokens      int        `json:"tokens"`
	MinLevel    int        `json:"minLevel,omitempty"`
	Frequency   Frequency  `json:"frequency"`
	Progress    int        `json:"progress"`
	MaxProgress int        `json:"maxProgress"`
	Done        bool       `json:"done"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// IsLocked reports whether the quest requires a higher level than the given one
func (q Quest) IsLocked(level int) bool {
	return level < q.MinLevel
}

// Status computes the quest state for a profile at the given level
func (q Quest) Status(level int) QuestStatus {
	switch {
	case q.IsLocked(level):
		return QuestLocked
	case q.Done:
		return QuestDone
	case q.Progress > 0:
		return QuestInProgress
	default:
		return QuestAvailable
	}
}

// QuestPreset is a catalog template for a quest
type QuestPreset struct {
	Txt         string    `yaml:"txt" json:"txt" validate:"required"`
	Cat         StatKey   `yaml:"cat" json:"cat" validate:"required"`
	XP          int       `yaml:"xp" json:"xp" validate:"gte=0"`
	Tokens      int       `yaml:"tokens" json:"tokens" validate:"gte=0"`
	MinLevel    int       `yaml:"min_level" json:"minLevel" validate:"gte=0"`
	Frequency   Frequency `yaml:"frequency" json:"frequency"`
	MaxProgress int       `yaml:"max_progress" json:"maxProgress" validate:"gte=0"`
}

// normalize fills defaults that older documents may lack
func (q *Quest) normalize() {
	if q.MaxProgress < 1 {
		q.MaxProgress = 1
	}
	if !q.Frequency.Valid() {
		q.Frequency = FrequencyDaily
	}
	if q.Progress < 0 {
		q.Progress = 0
	}
	if q.Progress > q.MaxProgress {
		q.Progress = q.MaxProgress
	}
	if q.Done && q.Progress < q.MaxProgress {
		q.Progress = q.MaxProgress
	}
}

// ToQuest instantiates the preset as an open quest with the given id
func (p QuestPreset) ToQuest(id int64) Quest {
	q := Quest{
		ID:          id,
		Txt:         p.Txt,
		Cat:         p.Cat,
		XP:          p.XP,
		Tokens:      p.Tokens,
		MinLevel:    p.MinLevel,
		Frequency:   p.Frequency,
		MaxProgress: p.MaxProgress,
	}
	q.normalize()
	return q
}
