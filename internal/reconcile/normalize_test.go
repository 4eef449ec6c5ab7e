package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"portops/internal/domain"
)

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2025-03-10", "2025-03-10"},
		{"2025-03-10T15:04:05Z", "2025-03-10"},
		{"2025-03-10T15:04:05.123+07:00", "2025-03-10"},
		{"10/03/2025", "2025-03-10"},
		{"1/3/25", "2025-03-01"},
		{" 05/04/2025 ", "2025-04-05"},
		{"31/02/2025", ""},
		{"13/13/2025", ""},
		{"10/03", ""},
		{"45000", "2023-03-15"},
		{"12", ""},
		{"not a date", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeDate(tt.in))
		})
	}
}

func TestParseDate(t *testing.T) {
	d, ok := ParseDate("10/03/2025")
	assert.True(t, ok)
	assert.Equal(t, 2025, d.Year())
	assert.Equal(t, 3, int(d.Month()))
	assert.Equal(t, 10, d.Day())

	_, ok = ParseDate("garbage")
	assert.False(t, ok)
}

func TestClassifyUnit(t *testing.T) {
	tests := []struct {
		in   string
		want domain.UnitType
	}{
		{"WHSU2024001", domain.UnitTypeContainer},
		{"whsu 202400-1", domain.UnitTypeContainer},
		{"MSKU.7654321", domain.UnitTypeContainer},
		{"43C-055.62", domain.UnitTypeVehicle},
		{"43C/12345", domain.UnitTypeVehicle},
		{"ABC1234567", domain.UnitTypeVehicle},
		{"", domain.UnitTypeVehicle},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyUnit(tt.in))
		})
	}
}

func TestRawRow_Number(t *testing.T) {
	row := RawRow{
		"int":     16,
		"float":   28.8,
		"string":  " 28.8 ",
		"comma":   "28,8",
		"blank":   "",
		"garbage": "abc",
		"nil":     nil,
	}

	v, ok := row.Number("int")
	assert.True(t, ok)
	assert.Equal(t, 16.0, v)

	v, ok = row.Number("float")
	assert.True(t, ok)
	assert.Equal(t, 28.8, v)

	v, ok = row.Number("string")
	assert.True(t, ok)
	assert.Equal(t, 28.8, v)

	v, ok = row.Number("comma")
	assert.True(t, ok)
	assert.Equal(t, 28.8, v)

	for _, key := range []string{"blank", "garbage", "nil", "missing"} {
		_, ok = row.Number(key)
		assert.False(t, ok, key)
	}
}

func TestRawRow_StringFallsThroughAliases(t *testing.T) {
	row := RawRow{"tkNhaVC": "  ", "toKhai": "TK-7"}
	assert.Equal(t, "TK-7", row.String("tkNhaVC", "toKhai"))
	assert.Equal(t, "", row.String("missing"))
}
