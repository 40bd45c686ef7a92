package game

import (
	"context"
	"reflect"
	"sync"
	"time"

	"github.com/osse101/HabitQuest_Go/internal/catalog"
	"github.com/osse101/HabitQuest_Go/internal/clock"
	"github.com/osse101/HabitQuest_Go/internal/concurrency"
	"github.com/osse101/HabitQuest_Go/internal/directory"
	"github.com/osse101/HabitQuest_Go/internal/domain"
	"github.com/osse101/HabitQuest_Go/internal/event"
	"github.com/osse101/HabitQuest_Go/internal/logger"
	"github.com/osse101/HabitQuest_Go/internal/progression"
)

// Documents is the part of the persistence adapter the game needs
type Documents interface {
	Load(ctx context.Context, id string) (domain.Document, bool, error)
	Save(ctx context.Context, id string, doc domain.Document) error
	Subscribe(ctx context.Context, id string, onChange func(domain.Document)) func()
}

// Profiles resolves profile ids against the directory
type Profiles interface {
	Get(ctx context.Context, id string) (directory.Entry, error)
	List(ctx context.Context) ([]directory.Entry, error)
}

// Service runs game actions against stored profiles
type Service interface {
	State(ctx context.Context, profileID string) (View, error)
	ToggleQuest(ctx context.Context, profileID string, questID int64) (Result, error)
	AdvanceQuest(ctx context.Context, profileID string, questID int64) (Result, error)
	AddQuest(ctx context.Context, profileID string, spec progression.QuestSpec) (Result, error)
	DeleteQuest(ctx context.Context, profileID string, questID int64) (Result, error)
	ClaimDailyGift(ctx context.Context, profileID string) (Result, error)
	BuyShopItem(ctx context.Context, profileID, itemID string) (Result, error)
	ApplyMinigameWin(ctx context.Context, profileID, game, mode string) (Result, error)
	OpenBox(ctx context.Context, profileID string) (Result, error)
	ResetPeriodicQuests(ctx context.Context, profileID string) (Result, error)
	ResetAll(ctx context.Context) (int, error)
	Radar(ctx context.Context, profileID string) (Radar, error)
	Season(now time.Time) (domain.Season, bool)
	Watch(ctx context.Context, profileID string) func()
}

type service struct {
	engine   *progression.Engine
	docs     Documents
	profiles Profiles
	catalog  *catalog.Catalog
	clock    clock.Clock
	bus      event.Bus
	locks    *concurrency.LockManager

	watchMu  sync.Mutex
	watchers map[string]*watcher
}

// watcher is one adapter subscription shared by every stream of a profile
type watcher struct {
	refs int
	stop func()
}

// NewService creates the game service. bus may be nil.
func NewService(engine *progression.Engine, docs Documents, profiles Profiles, cat *catalog.Catalog, clk clock.Clock, bus event.Bus) Service {
	s := &service{
		engine:   engine,
		docs:     docs,
		profiles: profiles,
		catalog:  cat,
		clock:    clk,
		bus:      bus,
		locks:    concurrency.NewLockManager(),
		watchers: make(map[string]*watcher),
	}
	if bus != nil {
		bus.Subscribe(event.ProfileDeleted, s.forgetProfile)
	}
	return s
}

func (s *service) forgetProfile(_ context.Context, evt event.Event) error {
	s.locks.Forget(evt.ProfileID())
	return nil
}

// transition computes the next document. It must not keep doc.
type transition func(ctx context.Context, doc domain.Document, now time.Time) (domain.ProgressState, progression.Outcome, error)

func noop(_ context.Context, doc domain.Document, _ time.Time) (domain.ProgressState, progression.Outcome, error) {
	return doc.ProgressState, progression.Outcome{}, nil
}

func (s *service) State(ctx context.Context, profileID string) (View, error) {
	res, err := s.mutate(ctx, profileID, "", noop)
	return res.State, err
}

func (s *service) ToggleQuest(ctx context.Context, profileID string, questID int64) (Result, error) {
	res, err := s.mutate(ctx, profileID, "", func(_ context.Context, doc domain.Document, now time.Time) (domain.ProgressState, progression.Outcome, error) {
		return s.engine.ToggleQuest(doc.ProgressState, doc.Profile, questID, now)
	})
	return withQuest(res, questID), err
}

func (s *service) AdvanceQuest(ctx context.Context, profileID string, questID int64) (Result, error) {
	res, err := s.mutate(ctx, profileID, "", func(_ context.Context, doc domain.Document, now time.Time) (domain.ProgressState, progression.Outcome, error) {
		return s.engine.AdvanceQuest(doc.ProgressState, doc.Profile, questID, now)
	})
	return withQuest(res, questID), err
}

func (s *service) AddQuest(ctx context.Context, profileID string, spec progression.QuestSpec) (Result, error) {
	var added domain.Quest
	res, err := s.mutate(ctx, profileID, "", func(_ context.Context, doc domain.Document, now time.Time) (domain.ProgressState, progression.Outcome, error) {
		next, q, err := s.engine.AddQuest(doc.ProgressState, spec, now)
		if err != nil {
			return doc.ProgressState, progression.Outcome{}, err
		}
		added = q
		return next, progression.Outcome{QuestID: q.ID}, nil
	})
	if err != nil {
		return res, err
	}
	res.Quest = &added
	return res, nil
}

func (s *service) DeleteQuest(ctx context.Context, profileID string, questID int64) (Result, error) {
	return s.mutate(ctx, profileID, "", func(_ context.Context, doc domain.Document, _ time.Time) (domain.ProgressState, progression.Outcome, error) {
		next, err := s.engine.DeleteQuest(doc.ProgressState, questID)
		return next, progression.Outcome{QuestID: questID}, err
	})
}

func (s *service) ClaimDailyGift(ctx context.Context, profileID string) (Result, error) {
	return s.mutate(ctx, profileID, event.SourceDailyGift, func(ctx context.Context, doc domain.Document, _ time.Time) (domain.ProgressState, progression.Outcome, error) {
		return s.engine.ClaimDailyGift(ctx, doc.ProgressState, s.clock.Today(), s.catalog.DailyGift)
	})
}

func (s *service) BuyShopItem(ctx context.Context, profileID, itemID string) (Result, error) {
	item, err := s.catalog.ShopItem(itemID)
	if err != nil {
		return Result{}, err
	}
	return s.mutate(ctx, profileID, event.SourceShop, func(_ context.Context, doc domain.Document, _ time.Time) (domain.ProgressState, progression.Outcome, error) {
		return s.engine.BuyShopItem(doc.ProgressState, item)
	})
}

func (s *service) ApplyMinigameWin(ctx context.Context, profileID, game, mode string) (Result, error) {
	win, err := s.catalog.Minigame(game, mode)
	if err != nil {
		return Result{}, err
	}
	return s.mutate(ctx, profileID, "", func(_ context.Context, doc domain.Document, _ time.Time) (domain.ProgressState, progression.Outcome, error) {
		next, out := s.engine.ApplyMinigameWin(doc.ProgressState, win.Tokens, win.XP)
		return next, out, nil
	})
}

func (s *service) OpenBox(ctx context.Context, profileID string) (Result, error) {
	return s.mutate(ctx, profileID, event.SourceBox, func(ctx context.Context, doc domain.Document, _ time.Time) (domain.ProgressState, progression.Outcome, error) {
		return s.engine.OpenBox(ctx, doc.ProgressState, s.catalog.Boxes)
	})
}

// ResetPeriodicQuests runs the period reset alone. Every other call
// already applies it before its own transition.
func (s *service) ResetPeriodicQuests(ctx context.Context, profileID string) (Result, error) {
	return s.mutate(ctx, profileID, "", noop)
}

// ResetAll applies the period reset to every listed profile and returns
// how many quests were reopened
func (s *service) ResetAll(ctx context.Context) (int, error) {
	entries, err := s.profiles.List(ctx)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		res, err := s.ResetPeriodicQuests(ctx, e.ID)
		if err != nil {
			logger.FromContext(ctx).Warn(LogMsgResetAllProfile, logger.AttrKeyProfileID, e.ID, "error", err)
			continue
		}
		total += res.Outcome.ResetCount
	}
	return total, nil
}

func (s *service) Radar(ctx context.Context, profileID string) (Radar, error) {
	view, err := s.State(ctx, profileID)
	if err != nil {
		return Radar{}, err
	}

	r := Radar{Stats: make([]RadarPoint, 0, len(domain.StatKeys))}
	for _, k := range domain.StatKeys {
		r.Stats = append(r.Stats, radarPoint(string(k), view.Stats[k]))
	}
	if view.IsChild() {
		r.School = make([]RadarPoint, 0, len(domain.SchoolStatKeys))
		for _, k := range domain.SchoolStatKeys {
			r.School = append(r.School, radarPoint(string(k), view.SchoolStats[k]))
		}
	}
	return r, nil
}

func (s *service) Season(now time.Time) (domain.Season, bool) {
	return s.catalog.SeasonAt(now)
}

// Watch relays changes made on other devices to the event bus until the
// returned function is called. Concurrent watchers of one profile share a
// subscription so each change is published once.
func (s *service) Watch(ctx context.Context, profileID string) func() {
	s.watchMu.Lock()
	w, ok := s.watchers[profileID]
	if !ok {
		w = &watcher{stop: s.docs.Subscribe(ctx, profileID, func(doc domain.Document) {
			s.publish(context.Background(), event.NewStateEvent(event.RemoteStateChanged, profileID, doc))
		})}
		s.watchers[profileID] = w
	}
	w.refs++
	s.watchMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.watchMu.Lock()
			defer s.watchMu.Unlock()
			w.refs--
			if w.refs == 0 {
				w.stop()
				delete(s.watchers, profileID)
			}
		})
	}
}

// mutate loads the profile under its lock, applies the period reset and
// then t, schedules the save and publishes what happened. source names
// where a revealed reward came from.
func (s *service) mutate(ctx context.Context, profileID, source string, t transition) (Result, error) {
	var (
		res    Result
		events []event.Event
	)
	err := s.locks.WithLock(profileID, func() error {
		// checked under the lock so a concurrent delete is not undone by a seed
		if _, err := s.profiles.Get(ctx, profileID); err != nil {
			return err
		}
		doc, _, err := s.docs.Load(ctx, profileID)
		if err != nil {
			return err
		}
		now := s.clock.Now()

		reset, resetOut := s.engine.ResetPeriodicQuests(doc.ProgressState, now)
		resetChanged := resetOut.ResetCount > 0 || !sameResetMark(doc.LastPeriodReset, reset.LastPeriodReset)
		doc.ProgressState = reset
		if resetOut.ResetCount > 0 {
			logger.FromContext(ctx).Info(LogMsgPeriodReset, logger.AttrKeyProfileID, profileID, "count", resetOut.ResetCount)
			events = append(events, event.NewQuestsResetEvent(profileID, resetOut.ResetCount, now))
		}

		next, out, opErr := t(ctx, doc, now)
		if opErr != nil {
			if resetChanged {
				s.save(ctx, profileID, doc)
				events = append(events, event.NewStateEvent(event.StateChanged, profileID, doc))
			}
			res = Result{State: s.view(doc), Outcome: resetOut}
			return opErr
		}

		changed := resetChanged || !reflect.DeepEqual(doc.ProgressState, next)
		doc.ProgressState = next
		out.ResetCount += resetOut.ResetCount
		if changed {
			s.save(ctx, profileID, doc)
			if out.Changed() {
				events = append(events, outcomeEvents(profileID, source, doc, out)...)
			}
			events = append(events, event.NewStateEvent(event.StateChanged, profileID, doc))
		}
		res = Result{State: s.view(doc), Outcome: out}
		return nil
	})

	// published outside the lock so that handlers may read the profile
	for _, evt := range events {
		s.publish(ctx, evt)
	}
	return res, err
}

func (s *service) save(ctx context.Context, profileID string, doc domain.Document) {
	if err := s.docs.Save(ctx, profileID, doc); err != nil {
		logger.FromContext(ctx).Error(LogMsgSaveFailed, logger.AttrKeyProfileID, profileID, "error", err)
	}
}

func (s *service) view(doc domain.Document) View {
	statuses := make(map[int64]domain.QuestStatus, len(doc.Quests))
	for _, q := range doc.Quests {
		statuses[q.ID] = q.Status(doc.Level)
	}
	claimed := doc.LastDailyClaim != nil && *doc.LastDailyClaim == s.clock.Today()
	return View{
		Document:           doc,
		QuestStatus:        statuses,
		NextLevelXP:        s.engine.Options().LevelPolicy.Threshold(doc.Level),
		DailyGiftAvailable: !claimed,
	}
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "type", evt.Type, "error", err)
	}
}

// outcomeEvents lists the domain events an outcome stands for
func outcomeEvents(profileID, source string, doc domain.Document, out progression.Outcome) []event.Event {
	var events []event.Event
	if out.Completed || out.Uncompleted {
		if i := doc.QuestIndex(out.QuestID); i >= 0 {
			t := event.QuestCompleted
			if out.Uncompleted {
				t = event.QuestUncompleted
			}
			events = append(events, event.NewQuestEvent(t, profileID, doc.Quests[i]))
		}
	}
	if out.LevelUp != nil {
		events = append(events, event.NewLevelUpEvent(profileID, out.LevelUp.From, out.LevelUp.To))
	}
	if out.Reward != nil {
		events = append(events, event.NewRewardRevealedEvent(profileID, source, *out.Reward))
	}
	return events
}

func radarPoint(key string, s domain.StatDef) RadarPoint {
	ratio := 0.0
	if s.Max > 0 {
		ratio = float64(s.Val) / float64(s.Max)
	}
	return RadarPoint{Key: key, Name: s.Name, Val: s.Val, Max: s.Max, Ratio: ratio}
}

func withQuest(res Result, questID int64) Result {
	if i := res.State.QuestIndex(questID); i >= 0 {
		q := res.State.Quests[i]
		res.Quest = &q
	}
	return res
}

func sameResetMark(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
