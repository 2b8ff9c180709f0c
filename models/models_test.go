package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeasurementUnitValid(t *testing.T) {
	assert.True(t, Grams.Valid())
	assert.True(t, Liters.Valid())
	assert.True(t, Pieces.Valid())
	assert.False(t, MeasurementUnit("").Valid())
	assert.False(t, MeasurementUnit("kilograms").Valid())
	assert.False(t, MeasurementUnit("Grams").Valid(), "units are case-sensitive")
}

func TestDateJSON(t *testing.T) {
	d, err := ParseDate("2025-01-01")
	require.NoError(t, err)
	assert.Equal(t, "2025-01-01", d.String())

	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2025-01-01"`, string(out))

	var parsed Date
	require.NoError(t, json.Unmarshal([]byte(`"2024-02-29"`), &parsed))
	assert.Equal(t, time.February, parsed.Time().Month())

	var bad Date
	assert.Error(t, json.Unmarshal([]byte(`"01/02/2024"`), &bad))
	assert.Error(t, json.Unmarshal([]byte(`"2024-13-01"`), &bad))
}

func TestDateTruncatesTime(t *testing.T) {
	d := NewDate(time.Date(2025, 6, 15, 18, 30, 12, 0, time.UTC))
	assert.Equal(t, "2025-06-15", d.String())
	assert.Equal(t, 0, d.Time().Hour())
}
