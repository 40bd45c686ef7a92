package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/osse101/HabitQuest_Go/internal/domain"
)

// Catalog is the static content loaded at startup
type Catalog struct {
	Brackets  []domain.AgeBracket     `yaml:"brackets" json:"brackets" validate:"required,min=1,dive"`
	Shop      []domain.ShopItem       `yaml:"items" json:"shop" validate:"required,min=1,dive"`
	DailyGift []domain.RewardDef      `yaml:"-" json:"-" validate:"required,min=1,dive"`
	Boxes     []domain.RewardDef      `yaml:"-" json:"-" validate:"required,min=1,dive"`
	Avatars   []domain.AvatarDef      `yaml:"avatars" json:"avatars" validate:"required,min=1,dive"`
	Seasons   []domain.Season         `yaml:"seasons" json:"seasons" validate:"dive"`
	Minigames []domain.MinigameReward `yaml:"-" json:"minigames" validate:"required,min=1,dive"`
}

// PresetsForAge returns the presets of the first bracket containing age
func (c *Catalog) PresetsForAge(age int) []domain.QuestPreset {
	for _, b := range c.Brackets {
		if b.Contains(age) {
			return append([]domain.QuestPreset(nil), b.Presets...)
		}
	}
	return nil
}

// QuestsForAge builds the starter quest list of a new profile.
// Ages outside every bracket get the default quests.
func (c *Catalog) QuestsForAge(age int) []domain.Quest {
	presets := c.PresetsForAge(age)
	if len(presets) == 0 {
		return domain.DefaultQuests()
	}
	quests := make([]domain.Quest, 0, len(presets))
	for i, p := range presets {
		quests = append(quests, p.ToQuest(int64(i+1)))
	}
	return quests
}

// ShopItem looks an item up by id
func (c *Catalog) ShopItem(id string) (domain.ShopItem, error) {
	for _, item := range c.Shop {
		if item.ID == id {
			return item, nil
		}
	}
	return domain.ShopItem{}, fmt.Errorf("%w: %s", domain.ErrItemNotFound, id)
}

// Minigame returns the reward of one win in game/mode
func (c *Catalog) Minigame(game, mode string) (domain.MinigameReward, error) {
	for _, m := range c.Minigames {
		if strings.EqualFold(m.Game, game) && strings.EqualFold(m.Mode, mode) {
			return m, nil
		}
	}
	return domain.MinigameReward{}, fmt.Errorf("%w: %s/%s", domain.ErrUnknownMinigameMode, game, mode)
}

// HasAvatar reports whether id is in the avatar catalog
func (c *Catalog) HasAvatar(id string) bool {
	for _, a := range c.Avatars {
		if a.ID == id {
			return true
		}
	}
	return false
}

// SeasonAt returns the first season containing t
func (c *Catalog) SeasonAt(t time.Time) (domain.Season, bool) {
	day := domain.MonthDay{Month: int(t.Month()), Day: t.Day()}
	for _, s := range c.Seasons {
		if s.Contains(day) {
			return s, true
		}
	}
	return domain.Season{}, false
}
