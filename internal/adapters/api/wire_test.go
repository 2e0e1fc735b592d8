package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexIntTolerantDecoding(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw  string
		want int
	}{
		{`12`, 12},
		{`"34"`, 34},
		{`"  56 "`, 56},
		{`12.9`, 12},
		{`"7.2"`, 7},
		{`null`, 0},
		{`""`, 0},
		{`"n/a"`, 0},
		{`true`, 0},
	}

	for _, tc := range cases {
		var v flexInt
		require.NoError(t, v.UnmarshalJSON([]byte(tc.raw)), "raw %s", tc.raw)
		assert.Equal(t, tc.want, int(v), "raw %s", tc.raw)
	}
}

func TestFlexIntInsideStruct(t *testing.T) {
	t.Parallel()

	var payload collectCoinData
	require.NoError(t, json.Unmarshal([]byte(`{"coin":"910"}`), &payload))
	assert.Equal(t, 910, int(payload.Coin))
}
