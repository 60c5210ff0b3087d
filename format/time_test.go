package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// ============================================================================
// TIME FORMATTER TESTS
// ============================================================================

func TestSmartDateGranularity(t *testing.T) {
	cases := []struct {
		in   time.Time
		want string
	}{
		{time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), "2021"},
		{time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC), "Mar 2021"},
		{time.Date(2021, 3, 4, 0, 0, 0, 0, time.UTC), "Mar 4, 2021"},
		{time.Date(2021, 3, 4, 15, 30, 0, 0, time.UTC), "Mar 4, 15:30"},
		{time.Date(2021, 3, 4, 15, 30, 45, 0, time.UTC), "2021-03-04 15:30:45"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, SmartDate(c.in), "input %v", c.in)
	}
	assert.Equal(t, "", SmartDate(time.Time{}))
}

func TestTimeStrftime(t *testing.T) {
	ts := time.Date(2021, 3, 4, 15, 30, 0, 0, time.UTC)

	assert.Equal(t, "2021-03-04", Time("%Y-%m-%d")(ts))
	assert.Equal(t, "04 Mar 2021, 15:30", Time("%d %b %Y, %H:%M")(ts))
	assert.Equal(t, "Thursday", Time("%A")(ts))

	// Empty and smart_date keys route to the adaptive formatter.
	assert.Equal(t, SmartDate(ts), Time("")(ts))
	assert.Equal(t, SmartDate(ts), Time(SmartDateFormat)(ts))

	assert.Equal(t, "", Time("%Y")(time.Time{}))
}
