package catalog

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/osse101/HabitQuest_Go/internal/config"
	"github.com/osse101/HabitQuest_Go/internal/domain"
	"github.com/osse101/HabitQuest_Go/internal/logger"
	"github.com/osse101/HabitQuest_Go/internal/reward"
	"github.com/osse101/HabitQuest_Go/internal/validation"
)

type bracketsFile struct {
	Brackets []domain.AgeBracket `yaml:"brackets"`
}

type shopFile struct {
	Items []domain.ShopItem `yaml:"items"`
}

type poolFile struct {
	Rewards []domain.RewardDef `yaml:"rewards"`
}

type avatarsFile struct {
	Avatars []domain.AvatarDef `yaml:"avatars"`
}

type seasonsFile struct {
	Seasons []domain.Season `yaml:"seasons"`
}

type minigamesFile struct {
	Rewards []domain.MinigameReward `yaml:"rewards"`
}

// Loader reads the YAML catalogs from a directory
type Loader struct {
	dir      string
	validate *validator.Validate
	schemas  validation.SchemaValidator
}

// NewLoader creates a loader for the catalogs in dir
func NewLoader(dir string, schemas validation.SchemaValidator) *Loader {
	if schemas == nil {
		schemas = validation.NewSchemaValidator()
	}
	return &Loader{
		dir:      dir,
		validate: validator.New(),
		schemas:  schemas,
	}
}

// Load reads and validates every catalog. Any defect is returned as an
// error so that a broken catalog stops startup.
func (l *Loader) Load() (*Catalog, error) {
	var (
		brackets  bracketsFile
		shop      shopFile
		gift      poolFile
		boxes     poolFile
		avatars   avatarsFile
		seasons   seasonsFile
		minigames minigamesFile
	)

	if err := l.read(config.CatalogFilePresets, &brackets); err != nil {
		return nil, err
	}
	if err := l.read(config.CatalogFileShop, &shop); err != nil {
		return nil, err
	}
	if err := l.readPool(config.CatalogFileDailyGift, &gift); err != nil {
		return nil, err
	}
	if err := l.readPool(config.CatalogFileBoxes, &boxes); err != nil {
		return nil, err
	}
	if err := l.read(config.CatalogFileAvatars, &avatars); err != nil {
		return nil, err
	}
	if err := l.read(config.CatalogFileSeasons, &seasons); err != nil {
		return nil, err
	}
	if err := l.read(config.CatalogFileMinigames, &minigames); err != nil {
		return nil, err
	}

	c := &Catalog{
		Brackets:  brackets.Brackets,
		Shop:      shop.Items,
		DailyGift: gift.Rewards,
		Boxes:     boxes.Rewards,
		Avatars:   avatars.Avatars,
		Seasons:   seasons.Seasons,
		Minigames: minigames.Rewards,
	}
	if err := l.Validate(c); err != nil {
		return nil, err
	}
	fillColors(c)

	logger.Info(LogMsgCatalogLoaded,
		"dir", l.dir,
		"brackets", len(c.Brackets),
		"shop_items", len(c.Shop),
		"gift_rewards", len(c.DailyGift),
		"box_rewards", len(c.Boxes))
	return c, nil
}

// Validate checks struct constraints, reward pool sums and preset categories
func (l *Loader) Validate(c *Catalog) error {
	if err := l.validate.Struct(c); err != nil {
		return fmt.Errorf("invalid catalog: %w", err)
	}
	if err := reward.ValidatePool(c.DailyGift); err != nil {
		return fmt.Errorf("invalid daily gift pool: %w", err)
	}
	if err := reward.ValidatePool(c.Boxes); err != nil {
		return fmt.Errorf("invalid box pool: %w", err)
	}
	for _, r := range append(append([]domain.RewardDef{}, c.DailyGift...), c.Boxes...) {
		if !finite(r.Probability) {
			return fmt.Errorf("invalid catalog: reward %q: %w: probability is not finite", r.ID, domain.ErrInvalidInput)
		}
	}
	for _, m := range c.Minigames {
		if !finite(m.XP) {
			return fmt.Errorf("invalid catalog: minigame %s/%s: %w: xp is not finite", m.Game, m.Mode, domain.ErrInvalidInput)
		}
	}
	for _, b := range c.Brackets {
		for _, p := range b.Presets {
			if !p.Cat.Valid() {
				return fmt.Errorf("invalid catalog: bracket %s preset %q: %w: category %q", b.Name, p.Txt, domain.ErrInvalidInput, p.Cat)
			}
		}
	}
	seen := make(map[string]bool, len(c.Shop))
	for _, item := range c.Shop {
		if seen[item.ID] {
			return fmt.Errorf("invalid catalog: duplicate shop item %q", item.ID)
		}
		seen[item.ID] = true
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// read decodes one YAML file into out
func (l *Loader) read(name string, out interface{}) error {
	data, err := os.ReadFile(filepath.Join(l.dir, name))
	if err != nil {
		return fmt.Errorf("read catalog %s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse catalog %s: %w", name, err)
	}
	return nil
}

// readPool checks the raw file against the reward pool schema before
// decoding it, so a typo in a field name is reported instead of ignored
func (l *Loader) readPool(name string, out *poolFile) error {
	var raw map[string]interface{}
	if err := l.read(name, &raw); err != nil {
		return err
	}
	if err := l.schemas.ValidateValue(raw, validation.SchemaRewardPool); err != nil {
		return fmt.Errorf("catalog %s: %w", name, err)
	}
	return l.read(name, out)
}

func fillColors(c *Catalog) {
	for i := range c.Shop {
		if c.Shop[i].Color == "" {
			c.Shop[i].Color = c.Shop[i].Rarity.Color()
		}
	}
	for _, pool := range [][]domain.RewardDef{c.DailyGift, c.Boxes} {
		for i := range pool {
			pool[i].Color = pool[i].DisplayColor()
		}
	}
}
