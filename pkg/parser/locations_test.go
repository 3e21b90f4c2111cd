package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCity(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"Bangalore", "Bangalore"},
		{"bengaluru", "Bangalore"},
		{"BLR", "Bangalore"},
		{"Bengaluru BLR", "Bangalore"},
		{"Jeddah JED", "Jeddah"},
		{"jed", "Jeddah"},
		{"riyadh", "Riyadh"},
		{"dxb", "Dubai"},
		{"Paris", "Paris"},
		{"  dubai  ", "Dubai"},
		{"", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeCity(tc.raw), "input %q", tc.raw)
	}
}

func TestAirportCode(t *testing.T) {
	assert.Equal(t, "BLR", AirportCode("Bangalore"))
	assert.Equal(t, "BLR", AirportCode("bengaluru"))
	assert.Equal(t, "JED", AirportCode("Jeddah"))
	assert.Equal(t, "DXB", AirportCode("dubai"))

	// Unknown cities and raw codes pass through upper-cased
	assert.Equal(t, "PARIS", AirportCode("Paris"))
	assert.Equal(t, "CDG", AirportCode("cdg"))
}
