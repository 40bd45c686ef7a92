package progression

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/HabitQuest_Go/internal/domain"
)

// ClaimDailyGift grants the free gift once per calendar day.
// today is the caller's local date formatted as domain.DateLayout.
func (e *Engine) ClaimDailyGift(ctx context.Context, state domain.ProgressState, today string, pool []domain.RewardDef) (domain.ProgressState, Outcome, error) {
	if state.LastDailyClaim != nil && *state.LastDailyClaim == today {
		return state, Outcome{}, domain.ErrAlreadyClaimed
	}
	day, err := time.Parse(domain.DateLayout, today)
	if err != nil {
		return state, Outcome{}, fmt.Errorf("%w: bad date %q", domain.ErrInvalidInput, today)
	}

	picked, err := e.pick(ctx, pool)
	if err != nil {
		return state, Outcome{}, err
	}

	next := state.Clone()
	next.Streak = nextStreak(state.LastDailyClaim, day, state.Streak)
	claimed := today
	next.LastDailyClaim = &claimed

	out := Outcome{Reward: &picked}
	e.applyReward(&next, picked, &out)
	return next, out, nil
}

// nextStreak extends the streak when the previous claim was the day before
func nextStreak(last *string, today time.Time, current int) int {
	if last == nil {
		return 1
	}
	prev, err := time.Parse(domain.DateLayout, *last)
	if err != nil {
		return 1
	}
	if prev.AddDate(0, 0, 1).Equal(today) {
		return max(current, 0) + 1
	}
	return 1
}

// BuyShopItem spends tokens on a shop item and reveals it
func (e *Engine) BuyShopItem(state domain.ProgressState, item domain.ShopItem) (domain.ProgressState, Outcome, error) {
	if item.Cost < 0 {
		return state, Outcome{}, fmt.Errorf("%w: negative cost for %q", domain.ErrInvalidInput, item.ID)
	}
	if state.Tokens < item.Cost {
		return state, Outcome{}, &domain.InsufficientFundsError{Cost: item.Cost, Balance: state.Tokens}
	}

	next := state.Clone()
	next.Tokens -= item.Cost

	bought := item
	reveal := domain.RewardDef{
		ID:     item.ID,
		Text:   item.Text,
		Rarity: item.Rarity,
		Color:  item.Color,
		Kind:   domain.RewardCosmetic,
	}
	return next, Outcome{Purchased: &bought, Reward: &reveal}, nil
}

// ApplyMinigameWin credits a mini-game win and nudges math and reading.
// Negative amounts count as zero.
func (e *Engine) ApplyMinigameWin(state domain.ProgressState, tokens int, xp float64) (domain.ProgressState, Outcome) {
	next := state.Clone()
	out := Outcome{}

	next.Tokens += max(tokens, 0)
	e.addXP(&next, max(xp, 0), &out)
	e.bumpSchool(&next, domain.SchoolMath, e.opts.MinigameSchoolNudge)
	e.bumpSchool(&next, domain.SchoolReading, e.opts.MinigameSchoolNudge)
	return next, out
}

// OpenBox spends one legacy box on a draw from pool
func (e *Engine) OpenBox(ctx context.Context, state domain.ProgressState, pool []domain.RewardDef) (domain.ProgressState, Outcome, error) {
	if state.Boxes <= 0 {
		return state, Outcome{}, domain.ErrNoBoxes
	}
	picked, err := e.pick(ctx, pool)
	if err != nil {
		return state, Outcome{}, err
	}

	next := state.Clone()
	next.Boxes--
	out := Outcome{Reward: &picked}
	e.applyReward(&next, picked, &out)
	return next, out, nil
}

func (e *Engine) pick(ctx context.Context, pool []domain.RewardDef) (domain.RewardDef, error) {
	if e.picker == nil {
		return domain.RewardDef{}, fmt.Errorf("%w: no reward picker configured", domain.ErrEmptyPool)
	}
	picked, err := e.picker.Pick(ctx, pool)
	if err != nil {
		return domain.RewardDef{}, err
	}
	if picked.Color == "" {
		picked.Color = picked.DisplayColor()
	}
	return picked, nil
}

// applyReward credits a resolved reward. Cosmetic rewards only reveal.
func (e *Engine) applyReward(s *domain.ProgressState, r domain.RewardDef, out *Outcome) {
	switch r.Kind {
	case domain.RewardXP:
		e.addXP(s, float64(r.Value), out)
	case domain.RewardTokens:
		s.Tokens += max(r.Value, 0)
	}
}
