package progression

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/osse101/HabitQuest_Go/internal/domain"
)

// School boost amounts
const (
	SchoolBoostMatched  = 5
	SchoolBoostFallback = 2
)

// schoolRule routes a completed quest to a school stat.
// A rule with no keywords matches any text in its category.
type schoolRule struct {
	cat      domain.StatKey
	keywords []string
	target   domain.SchoolStatKey
	delta    int
}

// schoolRules are evaluated in order; the first match wins
var schoolRules = []schoolRule{
	{domain.StatSchool, []string{"math", "calcul", "chiffre"}, domain.SchoolMath, SchoolBoostMatched},
	{domain.StatSchool, []string{"lire", "lecture", "livre"}, domain.SchoolReading, SchoolBoostMatched},
	{domain.StatSchool, []string{"ecri", "copie", "dictee"}, domain.SchoolWriting, SchoolBoostMatched},
	{domain.StatSchool, nil, domain.SchoolBehavior, SchoolBoostFallback},
	{domain.StatSocial, nil, domain.SchoolBehavior, SchoolBoostMatched},
	{domain.StatFamily, []string{"aide", "gentil"}, domain.SchoolBehavior, SchoolBoostMatched},
	{domain.StatPhysical, []string{"sport", "ballon", "courir"}, domain.SchoolSport, SchoolBoostMatched},
}

// SchoolBoost is the secondary stat bump derived from a quest
type SchoolBoost struct {
	Key   domain.SchoolStatKey `json:"key"`
	Delta int                  `json:"delta"`
}

// ClassifyQuestText picks the school stat a quest feeds, if any.
// Matching ignores case and accents, so "Dictée" matches "dictee".
func ClassifyQuestText(cat domain.StatKey, text string) (SchoolBoost, bool) {
	folded := foldText(text)
	for _, rule := range schoolRules {
		if rule.cat != cat {
			continue
		}
		if len(rule.keywords) == 0 || containsAny(folded, rule.keywords) {
			return SchoolBoost{Key: rule.target, Delta: rule.delta}, true
		}
	}
	return SchoolBoost{}, false
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

// foldText lowercases and strips combining marks
func foldText(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	return cases.Fold().String(stripped)
}
