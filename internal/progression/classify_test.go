package progression

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/HabitQuest_Go/internal/domain"
)

func TestClassifyQuestText(t *testing.T) {
	tests := []struct {
		name  string
		cat   domain.StatKey
		text  string
		key   domain.SchoolStatKey
		delta int
		ok    bool
	}{
		{"math keyword", domain.StatSchool, "Réviser le CALCUL mental", domain.SchoolMath, SchoolBoostMatched, true},
		{"reading keyword", domain.StatSchool, "Lire 20 pages", domain.SchoolReading, SchoolBoostMatched, true},
		{"writing with accents", domain.StatSchool, "Dictée du jeudi", domain.SchoolWriting, SchoolBoostMatched, true},
		{"school fallback", domain.StatSchool, "Préparer le cartable", domain.SchoolBehavior, SchoolBoostFallback, true},
		{"first rule wins", domain.StatSchool, "Lire un livre de maths", domain.SchoolMath, SchoolBoostMatched, true},
		{"social always counts", domain.StatSocial, "Appeler mamie", domain.SchoolBehavior, SchoolBoostMatched, true},
		{"family helping", domain.StatFamily, "Aider à mettre la table", domain.SchoolBehavior, SchoolBoostMatched, true},
		{"family without keyword", domain.StatFamily, "Vaisselle", "", 0, false},
		{"sport", domain.StatPhysical, "Jouer au ballon", domain.SchoolSport, SchoolBoostMatched, true},
		{"physical without keyword", domain.StatPhysical, "Douche Froide", "", 0, false},
		{"unrelated category", domain.StatMental, "Lire 10 minutes", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			boost, ok := ClassifyQuestText(tt.cat, tt.text)

			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.key, boost.Key)
			assert.Equal(t, tt.delta, boost.Delta)
		})
	}
}

func TestLevelPolicy_Threshold(t *testing.T) {
	p := DefaultLevelPolicy()

	assert.Equal(t, 1000.0, p.Threshold(1))
	assert.Equal(t, 5000.0, p.Threshold(5))
	assert.Equal(t, 1000.0, p.Threshold(0))
	assert.Equal(t, 2000.0, LevelPolicy{}.Threshold(2))
}

func TestLevelPolicy_ApplyNonFinite(t *testing.T) {
	level, _, gained := DefaultLevelPolicy().apply(3, math.Inf(1))
	assert.Equal(t, 3, level)
	assert.Zero(t, gained)

	level, _, gained = DefaultLevelPolicy().apply(3, math.NaN())
	assert.Equal(t, 3, level)
	assert.Zero(t, gained)
}
