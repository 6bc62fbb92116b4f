package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYearMonth_Arithmetic(t *testing.T) {
	jan := YearMonth{Year: 2024, Month: time.January}
	dec := YearMonth{Year: 2023, Month: time.December}

	assert.True(t, jan.Previous().Equal(dec))
	assert.True(t, dec.Next().Equal(jan))
	assert.True(t, jan.Next().Equal(YearMonth{Year: 2024, Month: time.February}))

	assert.Equal(t, -1, dec.Compare(jan))
	assert.Equal(t, 1, jan.Compare(dec))
	assert.Equal(t, 0, jan.Compare(jan))
}

func TestYearMonth_Days(t *testing.T) {
	tests := []struct {
		ym   YearMonth
		want int
	}{
		{YearMonth{Year: 2024, Month: time.January}, 31},
		{YearMonth{Year: 2024, Month: time.February}, 29}, // leap year
		{YearMonth{Year: 2023, Month: time.February}, 28},
		{YearMonth{Year: 2024, Month: time.April}, 30},
		{YearMonth{Year: 2024, Month: time.December}, 31},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.ym.Days(), tt.ym.String())
	}
}

func TestYearMonth_Contains(t *testing.T) {
	march := YearMonth{Year: 2024, Month: time.March}

	assert.True(t, march.Contains(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, march.Contains(time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC)))
	assert.False(t, march.Contains(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, march.Contains(time.Date(2024, 2, 29, 23, 59, 59, 0, time.UTC)))
}

func TestYearMonth_Format(t *testing.T) {
	march := YearMonth{Year: 2024, Month: time.March}
	assert.Equal(t, "2024-03", march.String())
	assert.Equal(t, "March 2024", march.Label())

	parsed, err := ParseYearMonth("2024-03")
	require.NoError(t, err)
	assert.True(t, parsed.Equal(march))

	_, err = ParseYearMonth("2024-3")
	assert.Error(t, err)
	_, err = ParseYearMonth("march 2024")
	assert.Error(t, err)
}

func TestYearMonth_JSON(t *testing.T) {
	march := YearMonth{Year: 2024, Month: time.March}

	data, err := json.Marshal(march)
	require.NoError(t, err)
	assert.Equal(t, `"2024-03"`, string(data))

	var decoded YearMonth
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, decoded.Equal(march))
}

func TestYearMonth_Scan(t *testing.T) {
	var ym YearMonth
	require.NoError(t, ym.Scan("2024-07"))
	assert.True(t, ym.Equal(YearMonth{Year: 2024, Month: time.July}))

	require.NoError(t, ym.Scan([]byte("2023-12")))
	assert.True(t, ym.Equal(YearMonth{Year: 2023, Month: time.December}))

	assert.Error(t, ym.Scan(42))
}
