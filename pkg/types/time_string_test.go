package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeString
		wantErr bool
	}{
		{name: "valid morning time", input: "09:30", want: TimeString("09:30")},
		{name: "valid midnight", input: "00:00", want: TimeString("00:00")},
		{name: "end of day boundary", input: "24:00", want: TimeString("24:00")},
		{name: "invalid format", input: "9:30am", wantErr: true},
		{name: "out of range hour", input: "25:00", wantErr: true},
		{name: "out of range minute", input: "10:65", wantErr: true},
		{name: "empty string", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_Minutes(t *testing.T) {
	assert.Equal(t, 0, TimeString("00:00").Minutes())
	assert.Equal(t, 570, TimeString("09:30").Minutes())
	assert.Equal(t, 1439, TimeString("23:59").Minutes())
	assert.Equal(t, 1440, TimeString("24:00").Minutes())
}

func TestTimeString_AddMinutes(t *testing.T) {
	start := TimeString("09:00")

	end, err := start.AddMinutes(45)
	require.NoError(t, err)
	assert.Equal(t, TimeString("09:45"), end)

	// Ending exactly at midnight is valid
	end, err = TimeString("23:30").AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("24:00"), end)

	// Going past midnight is not
	_, err = TimeString("23:30").AddMinutes(31)
	assert.ErrorIs(t, err, ErrTimeOverflow)
}

func TestTimeString_Comparisons(t *testing.T) {
	a := TimeString("10:00")
	b := TimeString("10:30")

	assert.True(t, a.IsBefore(b))
	assert.False(t, b.IsBefore(a))
	assert.True(t, b.IsAfter(a))

	// Strict comparison: equal times are neither before nor after
	assert.False(t, a.IsBefore(a))
	assert.False(t, a.IsAfter(a))
}

func TestFromMinutes(t *testing.T) {
	got, err := FromMinutes(615)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:15"), got)

	got, err = FromMinutes(1440)
	require.NoError(t, err)
	assert.Equal(t, TimeString("24:00"), got)

	_, err = FromMinutes(-1)
	assert.Error(t, err)

	_, err = FromMinutes(1441)
	assert.Error(t, err)
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	// Postgres TIME values arrive as time.Time
	require.NoError(t, ts.Scan(time.Date(2025, 10, 15, 14, 30, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("14:30"), ts)

	// Driver may also return strings with seconds
	require.NoError(t, ts.Scan("09:15:00"))
	assert.Equal(t, TimeString("09:15"), ts)

	require.NoError(t, ts.Scan([]byte("18:45")))
	assert.Equal(t, TimeString("18:45"), ts)
}

func TestNewTimeString(t *testing.T) {
	ts := NewTimeString(time.Date(2025, 10, 15, 8, 5, 0, 0, time.UTC))
	assert.Equal(t, TimeString("08:05"), ts)
}
