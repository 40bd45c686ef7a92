package reward

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/osse101/HabitQuest_Go/internal/domain"
	"github.com/osse101/HabitQuest_Go/internal/logger"
)

// ProbabilityEpsilon is the tolerance allowed on the sum of a pool
const ProbabilityEpsilon = 1e-6

// Resolver draws rewards from weighted pools
type Resolver struct {
	mu  sync.Mutex
	rng RandomSource
}

// NewResolver creates a resolver. A nil source uses DefaultSource.
func NewResolver(rng RandomSource) *Resolver {
	if rng == nil {
		rng = DefaultSource()
	}
	return &Resolver{rng: rng}
}

// Pick draws one entry from pool.
// An empty pool is a content defect and is reported as ErrEmptyPool.
func (r *Resolver) Pick(ctx context.Context, pool []domain.RewardDef) (domain.RewardDef, error) {
	if len(pool) == 0 {
		logger.FromContext(ctx).Error(LogMsgEmptyPool)
		return domain.RewardDef{}, domain.ErrEmptyPool
	}
	r.mu.Lock()
	roll := r.rng.Float64()
	r.mu.Unlock()
	picked := PickWithRoll(pool, roll)
	logger.FromContext(ctx).Debug(LogMsgRewardPicked,
		"roll", roll,
		"reward_id", picked.ID,
		"rarity", picked.Rarity.String())
	return picked, nil
}

// PickWithRoll walks the cumulative probabilities of pool and returns the
// first entry whose running sum reaches roll. When the walk runs out,
// because of float drift or a roll outside [0, 1), the last entry is returned.
// pool must not be empty.
func PickWithRoll(pool []domain.RewardDef, roll float64) domain.RewardDef {
	cumulative := 0.0
	for _, entry := range pool {
		cumulative += entry.Probability
		if cumulative >= roll {
			return entry
		}
	}
	return pool[len(pool)-1]
}

// ValidatePool rejects pools that cannot be drawn from reliably
func ValidatePool(pool []domain.RewardDef) error {
	if len(pool) == 0 {
		return domain.ErrEmptyPool
	}
	sum := 0.0
	for _, entry := range pool {
		p := entry.Probability
		if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 {
			return fmt.Errorf("%w: entry %q has probability %v", domain.ErrInvalidProbability, entry.ID, p)
		}
		if !entry.Rarity.Valid() {
			return fmt.Errorf("%w: entry %q", domain.ErrUnknownRarity, entry.ID)
		}
		sum += p
	}
	if math.Abs(sum-1) > ProbabilityEpsilon {
		return fmt.Errorf("%w: probabilities sum to %.6f, expected 1", domain.ErrInvalidProbability, sum)
	}
	return nil
}
