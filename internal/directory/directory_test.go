package directory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/HabitQuest_Go/internal/domain"
	"github.com/osse101/HabitQuest_Go/internal/event"
	"github.com/osse101/HabitQuest_Go/internal/persistence"
)

type fixedPresets []domain.Quest

func (p fixedPresets) QuestsForAge(int) []domain.Quest {
	return append([]domain.Quest(nil), p...)
}

type failingDocs struct{}

func (failingDocs) Seed(context.Context, string, domain.Document) error {
	return errors.New("disk full")
}

func (failingDocs) Delete(context.Context, string) error { return nil }

type fixture struct {
	store   *persistence.MemoryStore
	adapter *persistence.Adapter
	bus     *event.MemoryBus
	svc     Service
	events  []event.Type
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store: persistence.NewMemoryStore(),
		bus:   event.NewMemoryBus(),
	}
	f.adapter = persistence.NewAdapter(f.store, persistence.AdapterOptions{})
	presets := fixedPresets{{ID: 1, Txt: "Lire 20 pages", Cat: domain.StatSchool, XP: 40, Frequency: domain.FrequencyDaily, MaxProgress: 1}}
	f.svc = NewService(f.store, f.adapter, presets, f.bus)

	record := func(_ context.Context, e event.Event) error {
		f.events = append(f.events, e.Type)
		return nil
	}
	f.bus.Subscribe(event.ProfileCreated, record)
	f.bus.Subscribe(event.ProfileDeleted, record)
	return f
}

func (f *fixture) create(t *testing.T, name string) Entry {
	t.Helper()
	e, err := f.svc.Create(context.Background(), CreateRequest{Name: name, Pin: "1234", Age: 10, Gender: "F", Avatar: "fox"})
	require.NoError(t, err)
	return e
}

func TestCreate_SeedsDocumentFromPresets(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	entry := f.create(t, "  Léa ")
	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, "Léa", entry.Name)

	list, err := f.svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Entry{entry}, list)

	doc, seeded, err := f.adapter.Load(ctx, entry.ID)
	require.NoError(t, err)
	assert.False(t, seeded, "document exists before first load")
	assert.Equal(t, 10, doc.Age)
	assert.Equal(t, domain.GenderFemale, doc.Gender)
	assert.True(t, doc.OnboardingComplete)
	require.Len(t, doc.Quests, 1)
	assert.Equal(t, "Lire 20 pages", doc.Quests[0].Txt)

	assert.Equal(t, []event.Type{event.ProfileCreated}, f.events)
}

func TestCreate_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  CreateRequest
		err  error
	}{
		{"short pin", CreateRequest{Name: "Tom", Pin: "123"}, domain.ErrInvalidPin},
		{"letters in pin", CreateRequest{Name: "Tom", Pin: "12a4"}, domain.ErrInvalidPin},
		{"blank name", CreateRequest{Name: "   ", Pin: "1234"}, domain.ErrInvalidInput},
		{"negative age", CreateRequest{Name: "Tom", Pin: "1234", Age: -1}, domain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			_, err := f.svc.Create(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.err)

			list, err := f.svc.List(context.Background())
			require.NoError(t, err)
			assert.Empty(t, list)
		})
	}
}

func TestCreate_RollsBackWhenSeedFails(t *testing.T) {
	store := persistence.NewMemoryStore()
	svc := NewService(store, failingDocs{}, nil, nil)

	_, err := svc.Create(context.Background(), CreateRequest{Name: "Tom", Pin: "1234"})
	require.Error(t, err)

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestVerifyPin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	entry := f.create(t, "Tom")

	assert.NoError(t, f.svc.VerifyPin(ctx, entry.ID, "1234"))
	assert.ErrorIs(t, f.svc.VerifyPin(ctx, entry.ID, "4321"), domain.ErrPinMismatch)
	assert.ErrorIs(t, f.svc.VerifyPin(ctx, "ghost", "1234"), domain.ErrProfileNotFound)
}

func TestDelete_RemovesEntryAndDocument(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.create(t, "A")
	b := f.create(t, "B")

	require.NoError(t, f.svc.Delete(ctx, a.ID))

	list, err := f.svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Entry{b}, list)

	_, err = f.store.Get(ctx, persistence.CollectionUsers, a.ID)
	assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
	assert.Contains(t, f.events, event.ProfileDeleted)
}

func TestDelete_RestoresEntryWhenDocumentDeleteFails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.create(t, "A")
	b := f.create(t, "B")
	c := f.create(t, "C")

	f.store.SetFailures(false, true)
	err := f.svc.Delete(ctx, b.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStorageFailure)

	list, err := f.svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Entry{a, b, c}, list, "entry restored at its original index")

	_, err = f.store.Get(ctx, persistence.CollectionUsers, b.ID)
	assert.NoError(t, err)
	assert.NotContains(t, f.events, event.ProfileDeleted)
}

func TestDelete_Unknown(t *testing.T) {
	f := newFixture(t)

	err := f.svc.Delete(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestList_MalformedDirectoryIsEmpty(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.store.Put(ctx, persistence.CollectionMeta, persistence.DirectoryID, []byte(`{"list":`)))

	list, err := f.svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}
