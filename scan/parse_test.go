package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFixedDecimal(t *testing.T) {
	cases := []struct {
		token string
		want  float64
	}{
		{"0.0", 0.0},
		{"-5.3", -5.3},
		{"23.1", 23.1},
		{"-0.1", -0.1},
		{"99.9", 99.9},
		{"-99.9", -99.9},
		{"10.0", 10.0},
	}
	for _, c := range cases {
		got, err := parseFixedDecimal([]byte(c.token))
		assert.NoError(t, err, "token %q", c.token)
		assert.InDelta(t, c.want, got, 1e-9, "token %q", c.token)
	}
}

func TestParseFixedDecimalRejects(t *testing.T) {
	tokens := []string{
		"", "-", "5", "-5", "5.", ".5", "100.0", "5.55", "12.34",
		"a.b", "--1.0", "1,0", "1.0\n", " 1.0",
	}
	for _, token := range tokens {
		_, err := parseFixedDecimal([]byte(token))
		assert.Error(t, err, "token %q", token)
	}
}
