package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulatedClock(t *testing.T) {
	c := NewSimulatedClock(time.Date(2026, 2, 28, 23, 30, 0, 0, time.UTC))

	assert.Equal(t, "2026-02-28", c.Today())

	c.Advance(time.Hour)
	assert.Equal(t, "2026-03-01", c.Today())

	c.AdvanceDays(2)
	assert.Equal(t, "2026-03-03", c.Today())

	c.Set(time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, 2030, c.Now().Year())
}

func TestRealClock_UsesLocation(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	c := NewRealClock(loc)

	assert.Equal(t, loc, c.Now().Location())
	assert.Equal(t, c.Now().Format("2006-01-02"), c.Today())
	assert.Equal(t, time.Local, NewRealClock(nil).Now().Location())
}
