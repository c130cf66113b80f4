package timezone_test

import (
	"testing"
	"time"
	_ "time/tzdata"

	"hotel/shared/timezone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	defer func() { _ = timezone.Init("UTC") }()

	require.NoError(t, timezone.Init("Asia/Jakarta"))
	assert.Equal(t, "Asia/Jakarta", timezone.GetLocation().String())
	assert.Equal(t, "Asia/Jakarta", timezone.Now().Location().String())

	stamp := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-01-01 07:00", timezone.Format(stamp, "2006-01-02 15:04"))

	parsed, err := timezone.Parse(time.DateOnly, "2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, "Asia/Jakarta", parsed.Location().String())
}

func TestInitFallsBackToUTC(t *testing.T) {
	err := timezone.Init("Mars/Olympus_Mons")

	assert.Error(t, err)
	assert.Equal(t, time.UTC, timezone.GetLocation())
}

func TestInitEmptyMeansUTC(t *testing.T) {
	require.NoError(t, timezone.Init(""))
	assert.Equal(t, "UTC", timezone.GetLocation().String())
}

func TestParseInvalid(t *testing.T) {
	_, err := timezone.Parse(time.DateOnly, "2024-02-30")

	assert.Error(t, err)
}
