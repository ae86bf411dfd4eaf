package timeutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToMinutes(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:30", 570, false},
		{"9:30", 570, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"12", 0, true},
		{"ab:cd", 0, true},
		{"", 0, true},
	}

	for _, tc := range cases {
		got, err := ToMinutes(tc.in)
		if tc.wantErr {
			assert.Error(t, err, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestFromMinutes(t *testing.T) {
	assert.Equal(t, "00:00", FromMinutes(0))
	assert.Equal(t, "09:05", FromMinutes(545))
	assert.Equal(t, "23:59", FromMinutes(1439))
}

func TestAddMinutesRollsOver(t *testing.T) {
	got, err := AddMinutes("09:45", 30)
	require.NoError(t, err)
	assert.Equal(t, "10:15", got)

	got, err = AddMinutes("10:00", 30)
	require.NoError(t, err)
	assert.Equal(t, "10:30", got)

	_, err = AddMinutes("25:00", 30)
	assert.Error(t, err)
}

func TestOverlapsIsSymmetric(t *testing.T) {
	cases := []struct {
		s1, e1, s2, e2 int
		want           bool
	}{
		{540, 570, 570, 600, false}, // back-to-back never conflict
		{540, 570, 540, 570, true},
		{540, 600, 555, 570, true}, // envelops
		{540, 570, 555, 600, true}, // partial
		{540, 570, 600, 630, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Overlaps(tc.s1, tc.e1, tc.s2, tc.e2))
		assert.Equal(t, tc.want, Overlaps(tc.s2, tc.e2, tc.s1, tc.e1))
	}
}
