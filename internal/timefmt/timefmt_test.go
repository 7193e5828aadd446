package timefmt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormats(t *testing.T) {
	ts := time.Date(2024, 3, 5, 7, 8, 9, 0, time.UTC)

	assert.Equal(t, "2024-03-05 07:08", Stamp(ts))
	assert.Equal(t, "07:08", Clock(ts))
	assert.Equal(t, "2024-03-05 23:59", EndOfDay(ts))
}
