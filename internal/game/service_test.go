package game

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/HabitQuest_Go/internal/catalog"
	"github.com/osse101/HabitQuest_Go/internal/clock"
	"github.com/osse101/HabitQuest_Go/internal/directory"
	"github.com/osse101/HabitQuest_Go/internal/domain"
	"github.com/osse101/HabitQuest_Go/internal/event"
	"github.com/osse101/HabitQuest_Go/internal/persistence"
	"github.com/osse101/HabitQuest_Go/internal/progression"
	"github.com/osse101/HabitQuest_Go/internal/reward"
)

// 2026-03-10 is a Tuesday
var start = time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)

type recorder struct {
	mu     sync.Mutex
	events []event.Event
}

func (r *recorder) handle(_ context.Context, e event.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recorder) types() []event.Type {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]event.Type, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

func (r *recorder) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

type fixture struct {
	store   *persistence.MemoryStore
	adapter *persistence.Adapter
	dir     directory.Service
	clock   *clock.SimulatedClock
	svc     Service
	rec     *recorder
	profile directory.Entry
}

func newFixture(t *testing.T, age int, rolls ...float64) *fixture {
	t.Helper()
	cat, err := catalog.NewLoader("../../configs", nil).Load()
	require.NoError(t, err)

	if len(rolls) == 0 {
		rolls = []float64{0.1}
	}

	f := &fixture{
		store: persistence.NewMemoryStore(),
		clock: clock.NewSimulatedClock(start),
		rec:   &recorder{},
	}
	f.adapter = persistence.NewAdapter(f.store, persistence.AdapterOptions{Debounce: 10 * time.Millisecond, WriterID: "server"})
	t.Cleanup(func() { _ = f.adapter.Close(context.Background()) })

	bus := event.NewMemoryBus()
	for _, typ := range []event.Type{
		event.QuestCompleted, event.QuestUncompleted, event.QuestsReset, event.LevelUp,
		event.RewardRevealed, event.StateChanged, event.RemoteStateChanged,
	} {
		bus.Subscribe(typ, f.rec.handle)
	}

	f.dir = directory.NewService(f.store, f.adapter, cat, bus)
	engine := progression.NewEngine(progression.DefaultOptions(), reward.NewResolver(reward.NewFixedSource(rolls...)))
	f.svc = NewService(engine, f.adapter, f.dir, cat, f.clock, bus)

	f.profile, err = f.dir.Create(context.Background(), directory.CreateRequest{Name: "Léa", Pin: "1234", Age: age, Gender: "F"})
	require.NoError(t, err)
	return f
}

func (f *fixture) questByText(t *testing.T, text string) domain.Quest {
	t.Helper()
	view, err := f.svc.State(context.Background(), f.profile.ID)
	require.NoError(t, err)
	for _, q := range view.Quests {
		if q.Txt == text {
			return q
		}
	}
	t.Fatalf("quest %q not found", text)
	return domain.Quest{}
}

func TestToggleQuest_CompletesAndPublishes(t *testing.T) {
	f := newFixture(t, 10)
	ctx := context.Background()
	q := f.questByText(t, "Devoirs de maths")
	f.rec.reset()

	res, err := f.svc.ToggleQuest(ctx, f.profile.ID, q.ID)
	require.NoError(t, err)

	assert.True(t, res.Outcome.Completed)
	require.NotNil(t, res.Quest)
	assert.True(t, res.Quest.Done)
	assert.Equal(t, domain.QuestDone, res.State.QuestStatus[q.ID])
	assert.Equal(t, float64(q.XP), res.State.XP)
	assert.Equal(t, q.Tokens, res.State.Tokens)
	require.NotNil(t, res.Outcome.SchoolBoost)
	assert.Equal(t, domain.SchoolMath, res.Outcome.SchoolBoost.Key)

	assert.Equal(t, []event.Type{event.QuestCompleted, event.StateChanged}, f.rec.types())

	require.NoError(t, f.adapter.Flush(ctx))
	body, err := f.store.Get(ctx, persistence.CollectionUsers, f.profile.ID)
	require.NoError(t, err)
	stored, err := domain.DecodeDocument(body)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.TasksDoneTotal)

	// toggling back reverts the rewards
	res, err = f.svc.ToggleQuest(ctx, f.profile.ID, q.ID)
	require.NoError(t, err)
	assert.True(t, res.Outcome.Uncompleted)
	assert.Zero(t, res.State.XP)
	assert.Contains(t, f.rec.types(), event.QuestUncompleted)
}

func TestToggleQuest_LevelLocked(t *testing.T) {
	f := newFixture(t, 10)
	q := f.questByText(t, "Finir un livre")

	_, err := f.svc.ToggleQuest(context.Background(), f.profile.ID, q.ID)

	var locked *domain.LevelLockedError
	require.ErrorAs(t, err, &locked)
	assert.Equal(t, 3, locked.Required)
	assert.ErrorIs(t, err, domain.ErrLevelLocked)
}

func TestAddQuest_ThenLevelUp(t *testing.T) {
	f := newFixture(t, 30)
	ctx := context.Background()

	res, err := f.svc.AddQuest(ctx, f.profile.ID, progression.QuestSpec{Txt: "Marathon", Cat: domain.StatPhysical, XP: 1200})
	require.NoError(t, err)
	require.NotNil(t, res.Quest)
	assert.Equal(t, "Marathon", res.Quest.Txt)

	f.rec.reset()
	res, err = f.svc.ToggleQuest(ctx, f.profile.ID, res.Quest.ID)
	require.NoError(t, err)
	require.NotNil(t, res.Outcome.LevelUp)
	assert.Equal(t, 2, res.State.Level)
	assert.Equal(t, 2000.0, res.State.NextLevelXP)
	assert.Contains(t, f.rec.types(), event.LevelUp)
}

func TestAddQuest_EmptyText(t *testing.T) {
	f := newFixture(t, 30)

	_, err := f.svc.AddQuest(context.Background(), f.profile.ID, progression.QuestSpec{Txt: "  ", Cat: domain.StatMental})
	assert.ErrorIs(t, err, domain.ErrEmptyQuestText)
}

func TestDeleteQuest(t *testing.T) {
	f := newFixture(t, 10)
	ctx := context.Background()
	q := f.questByText(t, "Sport ou vélo")

	res, err := f.svc.DeleteQuest(ctx, f.profile.ID, q.ID)
	require.NoError(t, err)
	assert.Equal(t, -1, res.State.QuestIndex(q.ID))

	_, err = f.svc.DeleteQuest(ctx, f.profile.ID, q.ID)
	assert.ErrorIs(t, err, domain.ErrQuestNotFound)
}

func TestClaimDailyGift_OncePerDay(t *testing.T) {
	f := newFixture(t, 10, 0.1)
	ctx := context.Background()

	res, err := f.svc.ClaimDailyGift(ctx, f.profile.ID)
	require.NoError(t, err)
	require.NotNil(t, res.Outcome.Reward)
	assert.Equal(t, "gift-xp-50", res.Outcome.Reward.ID)
	assert.Equal(t, 50.0, res.State.XP)
	assert.False(t, res.State.DailyGiftAvailable)

	_, err = f.svc.ClaimDailyGift(ctx, f.profile.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyClaimed)

	f.clock.AdvanceDays(1)
	res, err = f.svc.ClaimDailyGift(ctx, f.profile.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, res.State.Streak)

	f.rec.mu.Lock()
	defer f.rec.mu.Unlock()
	var sources []string
	for _, e := range f.rec.events {
		if e.Type == event.RewardRevealed {
			sources = append(sources, e.GetMetadataValue(event.MetaSource).(string))
		}
	}
	assert.Equal(t, []string{event.SourceDailyGift, event.SourceDailyGift}, sources)
}

func TestMinigameWinsThenShop(t *testing.T) {
	f := newFixture(t, 10)
	ctx := context.Background()

	_, err := f.svc.BuyShopItem(ctx, f.profile.ID, "screen-30")
	var short *domain.InsufficientFundsError
	require.ErrorAs(t, err, &short)
	assert.Equal(t, 50, short.Cost)

	for i := 0; i < 2; i++ {
		res, err := f.svc.ApplyMinigameWin(ctx, f.profile.ID, catalog.GameMath, "DIV")
		require.NoError(t, err)
		assert.Equal(t, 30*(i+1), res.State.Tokens)
	}

	res, err := f.svc.BuyShopItem(ctx, f.profile.ID, "screen-30")
	require.NoError(t, err)
	assert.Equal(t, 10, res.State.Tokens)
	require.NotNil(t, res.Outcome.Purchased)
	assert.Equal(t, "screen-30", res.Outcome.Purchased.ID)

	_, err = f.svc.BuyShopItem(ctx, f.profile.ID, "unicorn")
	assert.ErrorIs(t, err, domain.ErrItemNotFound)

	_, err = f.svc.ApplyMinigameWin(ctx, f.profile.ID, catalog.GameMath, "POW")
	assert.ErrorIs(t, err, domain.ErrUnknownMinigameMode)
}

func TestOpenBox(t *testing.T) {
	f := newFixture(t, 30, 0.1)
	ctx := context.Background()

	_, err := f.svc.OpenBox(ctx, f.profile.ID)
	assert.ErrorIs(t, err, domain.ErrNoBoxes)

	for i := 0; i < 5; i++ {
		res, err := f.svc.AddQuest(ctx, f.profile.ID, progression.QuestSpec{Txt: "Q", Cat: domain.StatMental, XP: 1})
		require.NoError(t, err)
		_, err = f.svc.ToggleQuest(ctx, f.profile.ID, res.Quest.ID)
		require.NoError(t, err)
	}

	res, err := f.svc.OpenBox(ctx, f.profile.ID)
	require.NoError(t, err)
	require.NotNil(t, res.Outcome.Reward)
	assert.Equal(t, 100, res.Outcome.Reward.Value)
	assert.Zero(t, res.State.Boxes)
}

func TestPeriodicReset_OnNextDay(t *testing.T) {
	f := newFixture(t, 10)
	ctx := context.Background()
	q := f.questByText(t, "Devoirs de maths")
	weekly := f.questByText(t, "Dictée d'entraînement")

	_, err := f.svc.ToggleQuest(ctx, f.profile.ID, q.ID)
	require.NoError(t, err)
	_, err = f.svc.ToggleQuest(ctx, f.profile.ID, weekly.ID)
	require.NoError(t, err)
	f.rec.reset()

	f.clock.AdvanceDays(1)
	res, err := f.svc.ResetPeriodicQuests(ctx, f.profile.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Outcome.ResetCount)
	assert.Equal(t, domain.QuestAvailable, res.State.QuestStatus[q.ID])
	assert.Equal(t, domain.QuestDone, res.State.QuestStatus[weekly.ID])
	assert.Contains(t, f.rec.types(), event.QuestsReset)
}

func TestResetAll(t *testing.T) {
	f := newFixture(t, 10)
	ctx := context.Background()
	q := f.questByText(t, "Devoirs de maths")
	_, err := f.svc.ToggleQuest(ctx, f.profile.ID, q.ID)
	require.NoError(t, err)

	f.clock.AdvanceDays(1)
	n, err := f.svc.ResetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRadar(t *testing.T) {
	child := newFixture(t, 10)
	r, err := child.svc.Radar(context.Background(), child.profile.ID)
	require.NoError(t, err)
	assert.Len(t, r.Stats, len(domain.StatKeys))
	assert.Len(t, r.School, len(domain.SchoolStatKeys))
	assert.Equal(t, "MNT", r.Stats[0].Key)
	assert.InDelta(t, 0.2, r.Stats[0].Ratio, 1e-9)

	adult := newFixture(t, 35)
	r, err = adult.svc.Radar(context.Background(), adult.profile.ID)
	require.NoError(t, err)
	assert.Empty(t, r.School)
}

func TestSeason(t *testing.T) {
	f := newFixture(t, 10)

	s, ok := f.svc.Season(time.Date(2026, time.December, 24, 0, 0, 0, 0, time.UTC))
	require.True(t, ok)
	assert.Equal(t, "NOEL", s.Name)
}

func TestUnknownProfile(t *testing.T) {
	f := newFixture(t, 10)

	_, err := f.svc.State(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)

	_, err = f.store.Get(context.Background(), persistence.CollectionUsers, "ghost")
	assert.ErrorIs(t, err, domain.ErrDocumentNotFound, "no document is seeded for unknown ids")
}

func TestConcurrentMutationsAreSerialized(t *testing.T) {
	f := newFixture(t, 10)
	ctx := context.Background()
	const wins = 20

	var wg sync.WaitGroup
	for i := 0; i < wins; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.ApplyMinigameWin(ctx, f.profile.ID, catalog.GameReading, "")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	view, err := f.svc.State(ctx, f.profile.ID)
	require.NoError(t, err)
	assert.Equal(t, wins*15, view.Tokens)
	assert.Equal(t, wins*30.0, view.XP)
}

func TestWatch_RelaysRemoteChanges(t *testing.T) {
	f := newFixture(t, 10)
	ctx := context.Background()

	local := persistence.NewAdapter(f.store, persistence.AdapterOptions{WriterID: "tablet", PollInterval: 5 * time.Millisecond})
	defer local.Close(ctx)
	bus := event.NewMemoryBus()
	rec := &recorder{}
	bus.Subscribe(event.RemoteStateChanged, rec.handle)
	watcher := NewService(progression.NewEngine(progression.DefaultOptions(), nil), local, f.dir, nil, f.clock, bus)

	stop := watcher.Watch(ctx, f.profile.ID)
	defer stop()
	second := watcher.Watch(ctx, f.profile.ID)
	defer second()

	_, err := f.svc.ApplyMinigameWin(ctx, f.profile.ID, catalog.GameReading, "")
	require.NoError(t, err)
	require.NoError(t, f.adapter.Flush(ctx))

	require.Eventually(t, func() bool {
		return len(rec.types()) > 0
	}, time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	require.Len(t, rec.events, 1, "watchers of one profile share a subscription")
	assert.Equal(t, f.profile.ID, rec.events[0].ProfileID())
}

func TestDeletedProfileReleasesLock(t *testing.T) {
	f := newFixture(t, 10)
	ctx := context.Background()
	svc := f.svc.(*service)

	_, err := f.svc.State(ctx, f.profile.ID)
	require.NoError(t, err)
	before := svc.locks.GetLock(f.profile.ID)

	require.NoError(t, f.dir.Delete(ctx, f.profile.ID))

	assert.NotSame(t, before, svc.locks.GetLock(f.profile.ID))
}

func TestStateRacingDeleteDoesNotRecreateDocument(t *testing.T) {
	f := newFixture(t, 10)
	ctx := context.Background()
	svc := f.svc.(*service)

	_, err := f.svc.State(ctx, f.profile.ID)
	require.NoError(t, err)
	require.NoError(t, f.adapter.Flush(ctx))

	held := svc.locks.GetLock(f.profile.ID)
	held.Lock()
	got := make(chan error, 1)
	go func() {
		_, err := f.svc.State(ctx, f.profile.ID)
		got <- err
	}()
	time.Sleep(20 * time.Millisecond)

	require.NoError(t, f.dir.Delete(ctx, f.profile.ID))
	held.Unlock()

	select {
	case err := <-got:
		assert.ErrorIs(t, err, domain.ErrProfileNotFound)
	case <-time.After(time.Second):
		t.Fatal("state did not return")
	}

	require.NoError(t, f.adapter.Flush(ctx))
	_, err = f.store.Get(ctx, persistence.CollectionUsers, f.profile.ID)
	assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
}
