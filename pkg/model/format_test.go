package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatLaptime(t *testing.T) {
	tests := []struct {
		name    string
		seconds float64
		want    string
	}{
		{name: "typical lap", seconds: 93.456, want: "1:33.456"},
		{name: "sub minute", seconds: 31.2, want: "0:31.200"},
		{name: "rounding", seconds: 59.9996, want: "1:00.000"},
		{name: "over an hour", seconds: 3723.001, want: "1:02:03.001"},
		{name: "zero", seconds: 0, want: "0:00.000"},
		{name: "negative", seconds: -1, want: "-"},
		{name: "nan", seconds: math.NaN(), want: "-"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatLaptime(tt.seconds))
		})
	}
}
