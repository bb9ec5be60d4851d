package shared

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_JSON(t *testing.T) {
	t.Run("round trips through YYYY-MM-DD", func(t *testing.T) {
		var payload struct {
			Day Date `json:"day"`
		}
		require.NoError(t, json.Unmarshal([]byte(`{"day":"2025-03-09"}`), &payload))
		assert.Equal(t, "2025-03-09", payload.Day.String())

		out, err := json.Marshal(payload)
		require.NoError(t, err)
		assert.JSONEq(t, `{"day":"2025-03-09"}`, string(out))
	})

	t.Run("rejects other layouts", func(t *testing.T) {
		var d Date
		err := json.Unmarshal([]byte(`"09/03/2025"`), &d)
		assert.Error(t, err)
	})

	t.Run("zero date marshals as null", func(t *testing.T) {
		out, err := json.Marshal(Date{})
		require.NoError(t, err)
		assert.Equal(t, "null", string(out))
	})
}

func TestDate_Scan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2024, 12, 31, 17, 45, 0, 0, time.UTC)))
	assert.Equal(t, "2024-12-31", d.String())

	require.NoError(t, d.Scan("2024-01-02 00:00:00+00:00"))
	assert.Equal(t, "2024-01-02", d.String())

	require.NoError(t, d.Scan([]byte("2023-07-04")))
	assert.Equal(t, "2023-07-04", d.String())

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())

	assert.Error(t, d.Scan(42))
}

func TestDate_Compare(t *testing.T) {
	a := MustParseDate("2024-01-01")
	b := a.AddDays(1)
	assert.True(t, a.Before(b))
	assert.False(t, b.Before(a))
	assert.Equal(t, "2024-01-02", b.String())
}
