package domain

// RewardKind says which resource a reward credits
type RewardKind string

// Reward kinds
const (
	RewardXP       RewardKind = "xp"
	RewardTokens   RewardKind = "tokens"
	RewardCosmetic RewardKind = "cosmetic"
)

// RewardDef is one entry of a weighted reward pool
type RewardDef struct {
	ID          string     `yaml:"id" json:"id" validate:"required"`
	Text        string     `yaml:"text" json:"text" validate:"required"`
	Rarity      Rarity     `yaml:"rarity" json:"rarity" validate:"required"`
	Color       string     `yaml:"color" json:"color"`
	Kind        RewardKind `yaml:"kind" json:"kind" validate:"required,oneof=xp tokens cosmetic"`
	Value       int        `yaml:"value" json:"value" validate:"gte=0"`
	Probability float64    `yaml:"probability" json:"probability" validate:"gte=0,lte=1"`
}

// DisplayColor falls back to the rarity color when none is configured
func (r RewardDef) DisplayColor() string {
	if r.Color != "" {
		return r.Color
	}
	return r.Rarity.Color()
}

// ShopItem is a purchasable catalog entry
type ShopItem struct {
	ID     string `yaml:"id" json:"id" validate:"required"`
	Text   string `yaml:"text" json:"text" validate:"required"`
	Cost   int    `yaml:"cost" json:"cost" validate:"gt=0"`
	Rarity Rarity `yaml:"rarity" json:"rarity" validate:"required"`
	Color  string `yaml:"color" json:"color"`
	Icon   string `yaml:"icon" json:"icon"`
}

// AgeBracket groups quest presets offered to profiles of a given age range
type AgeBracket struct {
	Name    string        `yaml:"name" json:"name" validate:"required"`
	MinAge  int           `yaml:"min_age" json:"minAge" validate:"gte=0"`
	MaxAge  int           `yaml:"max_age" json:"maxAge" validate:"gtefield=MinAge"`
	Presets []QuestPreset `yaml:"presets" json:"presets" validate:"required,min=1,dive"`
}

// Contains reports whether age falls in the bracket, bounds inclusive
func (b AgeBracket) Contains(age int) bool {
	return age >= b.MinAge && age <= b.MaxAge
}

// AvatarDef is an entry of the avatar catalog
type AvatarDef struct {
	ID   string `yaml:"id" json:"id" validate:"required"`
	File string `yaml:"file" json:"file" validate:"required"`
	Name string `yaml:"name" json:"name" validate:"required"`
}

// MonthDay is a calendar position independent of the year
type MonthDay struct {
	Month int `yaml:"month" json:"month" validate:"min=1,max=12"`
	Day   int `yaml:"day" json:"day" validate:"min=1,max=31"`
}

// Before reports whether m comes strictly before o in the calendar year
func (m MonthDay) Before(o MonthDay) bool {
	if m.Month != o.Month {
		return m.Month < o.Month
	}
	return m.Day < o.Day
}

// Season is a themed range of the calendar; ranges may wrap over new year
type Season struct {
	Name string   `yaml:"name" json:"name" validate:"required,oneof=RENTREE AUTOMNE NOEL HIVER PRINTEMPS ETE"`
	From MonthDay `yaml:"from" json:"from"`
	To   MonthDay `yaml:"to" json:"to"`
}

// Contains reports whether day falls inside the season, bounds inclusive
func (s Season) Contains(day MonthDay) bool {
	if !s.To.Before(s.From) {
		return !day.Before(s.From) && !s.To.Before(day)
	}
	return !day.Before(s.From) || !s.To.Before(day)
}

// MinigameReward is what a single win in a minigame mode credits
type MinigameReward struct {
	Game   string  `yaml:"game" json:"game" validate:"required"`
	Mode   string  `yaml:"mode" json:"mode"`
	Tokens int     `yaml:"tokens" json:"tokens" validate:"gte=0"`
	XP     float64 `yaml:"xp" json:"xp" validate:"gte=0"`
}
