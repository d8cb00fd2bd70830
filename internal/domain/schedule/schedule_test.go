package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("valid schedule", func(t *testing.T) {
		ws := Parse([]byte(`{"start_time":"09:00","end_time":"17:00","working_days":[1,2,3,4,5]}`))

		require.True(t, ws.Configured)
		assert.Equal(t, 540, ws.Start)
		assert.Equal(t, 1020, ws.End)
		assert.True(t, ws.IsWorkingDay(time.Monday))
		assert.True(t, ws.IsWorkingDay(time.Friday))
		assert.False(t, ws.IsWorkingDay(time.Sunday))
		assert.Nil(t, ws.Break)
		assert.Equal(t, []int{1, 2, 3, 4, 5}, ws.WorkingDays())
	})

	t.Run("with break", func(t *testing.T) {
		ws := Parse([]byte(`{"start_time":"09:00","end_time":"17:00","working_days":[1],"break_start":"12:00","break_end":"13:00"}`))

		require.True(t, ws.Configured)
		require.NotNil(t, ws.Break)
		assert.Equal(t, 720, ws.Break.Start)
		assert.Equal(t, 780, ws.Break.End)
	})

	t.Run("break outside hours is dropped", func(t *testing.T) {
		ws := Parse([]byte(`{"start_time":"09:00","end_time":"17:00","working_days":[1],"break_start":"18:00","break_end":"19:00"}`))

		require.True(t, ws.Configured)
		assert.Nil(t, ws.Break)
	})

	unconfigured := map[string]string{
		"empty":            ``,
		"not json":         `{{{`,
		"null":             `null`,
		"missing start":    `{"end_time":"17:00","working_days":[1]}`,
		"bad end":          `{"start_time":"09:00","end_time":"25:00","working_days":[1]}`,
		"inverted bounds":  `{"start_time":"17:00","end_time":"09:00","working_days":[1]}`,
		"equal bounds":     `{"start_time":"09:00","end_time":"09:00","working_days":[1]}`,
		"no days":          `{"start_time":"09:00","end_time":"17:00","working_days":[]}`,
		"day out of range": `{"start_time":"09:00","end_time":"17:00","working_days":[1,7]}`,
		"wrong types":      `{"start_time":900,"end_time":"17:00","working_days":"mon"}`,
	}
	for name, raw := range unconfigured {
		t.Run(name, func(t *testing.T) {
			ws := Parse([]byte(raw))

			assert.False(t, ws.Configured)
			assert.False(t, ws.HasAnyWorkingDay())
			assert.Empty(t, ws.WorkingDays())
			assert.Equal(t, 540, ws.Start)
			assert.Equal(t, 1080, ws.End)
			for d := time.Sunday; d <= time.Saturday; d++ {
				assert.False(t, ws.IsWorkingDay(d))
			}
		})
	}
}

func TestEncode(t *testing.T) {
	raw, err := Encode(Config{
		StartTime:   "08:00",
		EndTime:     "12:00",
		WorkingDays: []int{5, 1, 1, 3},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"start_time":"08:00","end_time":"12:00","working_days":[1,3,5]}`, string(raw))

	ws := Parse(raw)
	require.True(t, ws.Configured)
	assert.Equal(t, []int{1, 3, 5}, ws.Config().WorkingDays)
}
