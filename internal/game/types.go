package game

import (
	"github.com/osse101/HabitQuest_Go/internal/domain"
	"github.com/osse101/HabitQuest_Go/internal/progression"
)

// View is a profile document plus the values derived from it
type View struct {
	domain.Document
	QuestStatus        map[int64]domain.QuestStatus `json:"questStatus"`
	NextLevelXP        float64                      `json:"nextLevelXp"`
	DailyGiftAvailable bool                         `json:"dailyGiftAvailable"`
}

// Result is returned by every mutation
type Result struct {
	State   View                `json:"state"`
	Outcome progression.Outcome `json:"outcome"`
	Quest   *domain.Quest       `json:"quest,omitempty"`
}

// RadarPoint is one axis of the stats radar
type RadarPoint struct {
	Key   string  `json:"key"`
	Name  string  `json:"name"`
	Val   int     `json:"val"`
	Max   int     `json:"max"`
	Ratio float64 `json:"ratio"`
}

// Radar holds the category axes and, for children, the school axes
type Radar struct {
	Stats  []RadarPoint `json:"stats"`
	School []RadarPoint `json:"school,omitempty"`
}
