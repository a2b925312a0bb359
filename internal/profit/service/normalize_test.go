package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSKU(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{" vestido agua viva ", "VESTIDO-AGUA-VIVA"},
		{"vestido-agua-viva ", "VESTIDO-AGUA-VIVA"},
		{"Conj. Baddie/P", "CONJ-BADDIEP"},
		{"VEST   LONG\tTOP", "VEST-LONG-TOP"},
		{"snake_case 01", "SNAKE_CASE-01"},
		{"Vestido Água", "VESTIDO-GUA"},
		{"", ""},
		{" \t ", ""},
		{"***", ""},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeSKU(tc.in))
		})
	}
}

func TestNormalizeSKUIdempotent(t *testing.T) {
	inputs := []string{
		"", "  ", "vestido-agua-viva ", "1stillVEST-LONG-TOP-SAI-FEND",
		"Conj. Baddie/P", "a  b c", "çÇ ñ", "--__--", "R$ 12,50",
	}
	for _, s := range inputs {
		once := NormalizeSKU(s)
		assert.Equal(t, once, NormalizeSKU(once), "input %q", s)
	}
}
