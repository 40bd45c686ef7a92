package catalog

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/HabitQuest_Go/internal/config"
	"github.com/osse101/HabitQuest_Go/internal/domain"
)

const repoConfigs = "../../configs"

// copyConfigs copies the shipped catalogs into a temp dir so a test can
// replace one of them
func copyConfigs(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	entries, err := os.ReadDir(repoConfigs)
	require.NoError(t, err)
	for _, e := range entries {
		data, err := os.ReadFile(filepath.Join(repoConfigs, e.Name()))
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, e.Name()), data, 0o600))
	}
	return dir
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func TestLoad_ShippedCatalogs(t *testing.T) {
	c, err := NewLoader(repoConfigs, nil).Load()
	require.NoError(t, err)

	assert.NotEmpty(t, c.Brackets)
	assert.NotEmpty(t, c.Shop)
	assert.NotEmpty(t, c.Avatars)
	assert.Len(t, c.Boxes, 4)

	for _, item := range c.Shop {
		assert.NotEmpty(t, item.Color, "shop item %s has a color", item.ID)
	}
	for _, r := range c.DailyGift {
		assert.NotEmpty(t, r.Color)
	}
}

func TestLoad_BoxColorOverride(t *testing.T) {
	c, err := NewLoader(repoConfigs, nil).Load()
	require.NoError(t, err)

	var superRare *domain.RewardDef
	for i := range c.Boxes {
		if c.Boxes[i].Value == 200 {
			superRare = &c.Boxes[i]
		}
	}
	require.NotNil(t, superRare)
	assert.Equal(t, domain.RarityRare, superRare.Rarity)
	assert.Equal(t, "#00d2ff", superRare.Color)

	hundred, ok := findReward(c.Boxes, "box-xp-100")
	require.True(t, ok)
	assert.Equal(t, domain.RarityRare, hundred.Rarity)
	assert.Equal(t, "#54b734", hundred.Color)
}

func findReward(pool []domain.RewardDef, id string) (domain.RewardDef, bool) {
	for _, r := range pool {
		if r.ID == id {
			return r, true
		}
	}
	return domain.RewardDef{}, false
}

func TestLoad_PoolNotSummingToOne(t *testing.T) {
	dir := copyConfigs(t)
	writeFile(t, dir, config.CatalogFileDailyGift, `
rewards:
  - { id: a, text: "A", rarity: COMMON, kind: xp, value: 10, probability: 0.5 }
  - { id: b, text: "B", rarity: RARE, kind: xp, value: 20, probability: 0.4 }
`)

	_, err := NewLoader(dir, nil).Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidProbability)
}

func TestLoad_PoolSchemaViolation(t *testing.T) {
	dir := copyConfigs(t)
	writeFile(t, dir, config.CatalogFileBoxes, `
rewards:
  - { id: a, text: "A", rarity: COMMON, kind: gold, value: 10, probability: 1 }
`)

	_, err := NewLoader(dir, nil).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.CatalogFileBoxes)
}

func TestLoad_UnknownRarity(t *testing.T) {
	dir := copyConfigs(t)
	writeFile(t, dir, config.CatalogFileShop, `
items:
  - { id: cape, text: "Cape", cost: 10, rarity: MYTHIC }
`)

	_, err := NewLoader(dir, nil).Load()
	require.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	dir := copyConfigs(t)
	require.NoError(t, os.Remove(filepath.Join(dir, config.CatalogFileAvatars)))

	_, err := NewLoader(dir, nil).Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_InvalidPresetCategory(t *testing.T) {
	dir := copyConfigs(t)
	writeFile(t, dir, config.CatalogFilePresets, `
brackets:
  - name: all
    min_age: 0
    max_age: 120
    presets:
      - { txt: "Nager", cat: SWIM, xp: 10 }
`)

	_, err := NewLoader(dir, nil).Load()
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLoad_NonFiniteMinigameXP(t *testing.T) {
	for _, xp := range []string{".inf", ".nan"} {
		t.Run(xp, func(t *testing.T) {
			dir := copyConfigs(t)
			writeFile(t, dir, config.CatalogFileMinigames, `
rewards:
  - { game: math, mode: ADD, tokens: 5, xp: `+xp+` }
`)

			_, err := NewLoader(dir, nil).Load()
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestValidate_NonFiniteProbability(t *testing.T) {
	l := NewLoader(repoConfigs, nil)
	c, err := l.Load()
	require.NoError(t, err)

	c.Boxes[0].Probability = math.NaN()
	assert.ErrorIs(t, l.Validate(c), domain.ErrInvalidInput)
}

func TestCatalog_Lookups(t *testing.T) {
	c, err := NewLoader(repoConfigs, nil).Load()
	require.NoError(t, err)

	t.Run("presets by age", func(t *testing.T) {
		quests := c.QuestsForAge(10)
		require.NotEmpty(t, quests)
		for i, q := range quests {
			assert.Equal(t, int64(i+1), q.ID)
			assert.GreaterOrEqual(t, q.MaxProgress, 1)
			assert.True(t, q.Frequency.Valid())
		}
	})

	t.Run("age outside brackets falls back to defaults", func(t *testing.T) {
		assert.Equal(t, domain.DefaultQuests(), c.QuestsForAge(-1))
	})

	t.Run("shop item", func(t *testing.T) {
		item, err := c.ShopItem(c.Shop[0].ID)
		require.NoError(t, err)
		assert.Equal(t, c.Shop[0], item)

		_, err = c.ShopItem("nope")
		assert.ErrorIs(t, err, domain.ErrItemNotFound)
	})

	t.Run("minigame", func(t *testing.T) {
		m, err := c.Minigame(GameMath, "mul")
		require.NoError(t, err)
		assert.Equal(t, 20, m.Tokens)
		assert.Equal(t, 50.0, m.XP)

		r, err := c.Minigame(GameReading, "")
		require.NoError(t, err)
		assert.Equal(t, 15, r.Tokens)

		_, err = c.Minigame(GameMath, "POW")
		assert.ErrorIs(t, err, domain.ErrUnknownMinigameMode)
	})

	t.Run("avatar", func(t *testing.T) {
		assert.True(t, c.HasAvatar(c.Avatars[0].ID))
		assert.False(t, c.HasAvatar("ghost"))
	})
}

func TestCatalog_SeasonAt(t *testing.T) {
	c := &Catalog{Seasons: []domain.Season{
		{Name: "NOEL", From: domain.MonthDay{Month: 12, Day: 1}, To: domain.MonthDay{Month: 12, Day: 31}},
		{Name: "HIVER", From: domain.MonthDay{Month: 12, Day: 21}, To: domain.MonthDay{Month: 3, Day: 19}},
	}}

	s, ok := c.SeasonAt(time.Date(2026, time.December, 24, 0, 0, 0, 0, time.UTC))
	require.True(t, ok)
	assert.Equal(t, "NOEL", s.Name)

	s, ok = c.SeasonAt(time.Date(2027, time.January, 15, 0, 0, 0, 0, time.UTC))
	require.True(t, ok)
	assert.Equal(t, "HIVER", s.Name)

	_, ok = c.SeasonAt(time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC))
	assert.False(t, ok)
}
