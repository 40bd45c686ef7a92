package progression

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/osse101/HabitQuest_Go/internal/domain"
)

// Engine defaults
const (
	DefaultBoxEvery            = 5
	DefaultStatStep            = 5
	DefaultMinigameSchoolNudge = 1
)

// Picker draws a reward from a weighted pool
type Picker interface {
	Pick(ctx context.Context, pool []domain.RewardDef) (domain.RewardDef, error)
}

// Options tunes the engine rules
type Options struct {
	LevelPolicy         LevelPolicy
	BoxEvery            int
	StatStep            int
	MinigameSchoolNudge int
}

// DefaultOptions returns the standard rule set
func DefaultOptions() Options {
	return Options{
		LevelPolicy:         DefaultLevelPolicy(),
		BoxEvery:            DefaultBoxEvery,
		StatStep:            DefaultStatStep,
		MinigameSchoolNudge: DefaultMinigameSchoolNudge,
	}
}

// LevelUp describes one level-up reveal, however many levels were crossed
type LevelUp struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// Outcome reports what a transition did beyond the new state
type Outcome struct {
	Completed   bool              `json:"completed,omitempty"`
	Uncompleted bool              `json:"uncompleted,omitempty"`
	Advanced    bool              `json:"advanced,omitempty"`
	LevelUp     *LevelUp          `json:"levelUp,omitempty"`
	BoxesEarned int               `json:"boxesEarned,omitempty"`
	SchoolBoost *SchoolBoost      `json:"schoolBoost,omitempty"`
	Reward      *domain.RewardDef `json:"reward,omitempty"`
	Purchased   *domain.ShopItem  `json:"purchased,omitempty"`
	QuestID     int64             `json:"questId,omitempty"`
	ResetCount  int               `json:"resetCount,omitempty"`
}

// Changed reports whether the outcome carries anything worth publishing
func (o Outcome) Changed() bool {
	return o.Completed || o.Uncompleted || o.Advanced || o.LevelUp != nil ||
		o.BoxesEarned > 0 || o.Reward != nil || o.Purchased != nil || o.ResetCount > 0 || o.QuestID != 0
}

// Engine computes the next progress state from the current one and an event.
// Every method works on a copy; the input state is never modified.
type Engine struct {
	opts   Options
	picker Picker
}

// NewEngine creates an engine. Zero option fields fall back to defaults.
func NewEngine(opts Options, picker Picker) *Engine {
	def := DefaultOptions()
	if opts.LevelPolicy.XPPerLevel <= 0 {
		opts.LevelPolicy.XPPerLevel = def.LevelPolicy.XPPerLevel
	}
	if opts.BoxEvery <= 0 {
		opts.BoxEvery = def.BoxEvery
	}
	if opts.StatStep <= 0 {
		opts.StatStep = def.StatStep
	}
	if opts.MinigameSchoolNudge <= 0 {
		opts.MinigameSchoolNudge = def.MinigameSchoolNudge
	}
	return &Engine{opts: opts, picker: picker}
}

// Options returns the rules in effect
func (e *Engine) Options() Options {
	return e.opts
}

// QuestSpec is the input of AddQuest
type QuestSpec struct {
	Txt         string
	Cat         domain.StatKey
	XP          int
	Tokens      int
	MinLevel    int
	Frequency   domain.Frequency
	MaxProgress int
}

// ToggleQuest completes an open quest or reverts a done one
func (e *Engine) ToggleQuest(state domain.ProgressState, profile domain.Profile, questID int64, now time.Time) (domain.ProgressState, Outcome, error) {
	idx := state.QuestIndex(questID)
	if idx < 0 {
		return state, Outcome{}, domain.ErrQuestNotFound
	}
	q := state.Quests[idx]
	if q.IsLocked(state.Level) {
		return state, Outcome{}, &domain.LevelLockedError{Required: q.MinLevel, Current: state.Level}
	}

	next := state.Clone()
	out := Outcome{QuestID: questID}
	if q.Done {
		e.uncomplete(&next, idx)
		out.Uncompleted = true
		return next, out, nil
	}
	e.complete(&next, profile, idx, now, &out)
	return next, out, nil
}

// AdvanceQuest moves a multi-step quest forward by one step.
// Rewards are granted once, on the step that reaches MaxProgress.
func (e *Engine) AdvanceQuest(state domain.ProgressState, profile domain.Profile, questID int64, now time.Time) (domain.ProgressState, Outcome, error) {
	idx := state.QuestIndex(questID)
	if idx < 0 {
		return state, Outcome{}, domain.ErrQuestNotFound
	}
	q := state.Quests[idx]
	if q.IsLocked(state.Level) {
		return state, Outcome{}, &domain.LevelLockedError{Required: q.MinLevel, Current: state.Level}
	}
	if q.Done {
		return state, Outcome{}, nil
	}

	next := state.Clone()
	out := Outcome{QuestID: questID, Advanced: true}
	nq := &next.Quests[idx]
	nq.Progress++
	if nq.Progress >= nq.MaxProgress {
		e.complete(&next, profile, idx, now, &out)
		return next, out, nil
	}
	if nq.CompletedAt == nil {
		// anchors the period reset for partially done quests
		t := now
		nq.CompletedAt = &t
	}
	return next, out, nil
}

// AddQuest appends a new quest with a fresh id
func (e *Engine) AddQuest(state domain.ProgressState, spec QuestSpec, now time.Time) (domain.ProgressState, domain.Quest, error) {
	txt := strings.TrimSpace(spec.Txt)
	if txt == "" {
		return state, domain.Quest{}, domain.ErrEmptyQuestText
	}

	id := now.UnixMilli()
	for _, q := range state.Quests {
		if q.ID >= id {
			id = q.ID + 1
		}
	}

	q := domain.Quest{
		ID:          id,
		Txt:         txt,
		Cat:         spec.Cat,
		XP:          max(spec.XP, 0),
		Tokens:      max(spec.Tokens, 0),
		MinLevel:    max(spec.MinLevel, 1),
		Frequency:   spec.Frequency,
		MaxProgress: max(spec.MaxProgress, 1),
	}
	if !q.Frequency.Valid() {
		q.Frequency = domain.FrequencyDaily
	}

	next := state.Clone()
	next.Quests = append(next.Quests, q)
	return next, q, nil
}

// DeleteQuest removes a quest. Rewards already granted are kept.
func (e *Engine) DeleteQuest(state domain.ProgressState, questID int64) (domain.ProgressState, error) {
	idx := state.QuestIndex(questID)
	if idx < 0 {
		return state, domain.ErrQuestNotFound
	}
	next := state.Clone()
	next.Quests = append(next.Quests[:idx], next.Quests[idx+1:]...)
	return next, nil
}

// complete applies the completion rewards of quest idx to s
func (e *Engine) complete(s *domain.ProgressState, profile domain.Profile, idx int, now time.Time, out *Outcome) {
	q := &s.Quests[idx]
	q.Done = true
	q.Progress = q.MaxProgress
	t := now
	q.CompletedAt = &t
	out.Completed = true

	s.Tokens += q.Tokens
	s.TasksDoneTotal++
	s.TasksSinceLastBox++
	if stat, ok := s.Stats[q.Cat]; ok {
		s.Stats[q.Cat] = stat.Add(e.opts.StatStep)
	}

	if profile.IsChild() {
		if boost, ok := ClassifyQuestText(q.Cat, q.Txt); ok {
			e.bumpSchool(s, boost.Key, boost.Delta)
			out.SchoolBoost = &boost
		}
	}

	if s.TasksSinceLastBox >= e.opts.BoxEvery {
		s.Boxes++
		s.TasksSinceLastBox = 0
		out.BoxesEarned++
	}

	e.addXP(s, float64(q.XP), out)
}

// uncomplete reverses the completion deltas of quest idx, clamping at zero.
// School stats are left as they are and the level is never lowered; both
// mirror how the app has always behaved and are pending product review.
func (e *Engine) uncomplete(s *domain.ProgressState, idx int) {
	q := &s.Quests[idx]
	q.Done = false
	q.Progress = 0
	q.CompletedAt = nil

	s.XP = max(0, s.XP-float64(q.XP))
	s.Tokens = max(0, s.Tokens-q.Tokens)
	s.TasksDoneTotal = max(0, s.TasksDoneTotal-1)
	s.TasksSinceLastBox = max(0, s.TasksSinceLastBox-1)
	if stat, ok := s.Stats[q.Cat]; ok {
		s.Stats[q.Cat] = stat.Add(-e.opts.StatStep)
	}
}

func (e *Engine) bumpSchool(s *domain.ProgressState, key domain.SchoolStatKey, delta int) {
	stat, ok := s.SchoolStats[key]
	if !ok {
		stat = domain.DefaultSchoolStats()[key]
	}
	s.SchoolStats[key] = stat.Add(delta)
}

// addXP credits xp and runs the level-up loop, recording a single reveal
func (e *Engine) addXP(s *domain.ProgressState, xp float64, out *Outcome) {
	if xp <= 0 || math.IsNaN(xp) || math.IsInf(xp, 0) {
		return
	}
	from := s.Level
	level, rest, gained := e.opts.LevelPolicy.apply(s.Level, s.XP+xp)
	s.Level = level
	s.XP = rest
	if gained > 0 {
		out.LevelUp = &LevelUp{From: from, To: level}
	}
}
