package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromCents(t *testing.T) {
	assert.Equal(t, "165.5", FromCents(16550).String())
	assert.Equal(t, "0", FromCents(0).String())
	assert.Equal(t, "-20", FromCents(-2000).String())
}

func TestFormatIDR(t *testing.T) {
	tests := []struct {
		name  string
		cents int64
		want  string
	}{
		{"zero", 0, "Rp0"},
		{"small", 50000, "Rp500"},
		{"thousands", 1650000, "Rp16.500"},
		{"millions", 9990000000, "Rp99.900.000"},
		{"rounds half up", 16550, "Rp166"},
		{"negative", -1650000, "-Rp16.500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatIDR(tt.cents))
		})
	}
}
