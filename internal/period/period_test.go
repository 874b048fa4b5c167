package period

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyFor(t *testing.T) {
	assert.Equal(t, "2026-08", KeyFor(time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2026-01", KeyFor(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))

	// Keys are derived in UTC, so a local time near midnight on the first
	// of the month keys consistently.
	loc := time.FixedZone("UTC+10", 10*60*60)
	assert.Equal(t, "2026-07", KeyFor(time.Date(2026, 8, 1, 5, 0, 0, 0, loc)))
}

func TestParse(t *testing.T) {
	got, err := Parse("2026-08")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), got)

	_, err = Parse("August 2026")
	assert.Error(t, err)

	_, err = Parse("2026-13")
	assert.Error(t, err)
}
