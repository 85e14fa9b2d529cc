package fs_test

import (
	"testing"

	"github.com/fwojciec/bookgrab/fs"
	"github.com/stretchr/testify/assert"
)

func TestNaturalSort(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{
			name:  "numeric file names",
			input: []string{"10.png", "2.png", "1.png", "0.png"},
			want:  []string{"0.png", "1.png", "2.png", "10.png"},
		},
		{
			name:  "prefixed names",
			input: []string{"page12.png", "page2.png", "page1.png"},
			want:  []string{"page1.png", "page2.png", "page12.png"},
		},
		{
			name:  "decimal runs",
			input: []string{"scan 1.10.png", "scan 1.9.png", "scan 1.2.png"},
			want:  []string{"scan 1.10.png", "scan 1.2.png", "scan 1.9.png"},
		},
		{
			name:  "numbers before text at the same position",
			input: []string{"cover.png", "1.png"},
			want:  []string{"1.png", "cover.png"},
		},
		{
			name:  "equal values fall back to string order",
			input: []string{"01.png", "1.png"},
			want:  []string{"01.png", "1.png"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			names := append([]string(nil), tt.input...)
			fs.NaturalSort(names)

			assert.Equal(t, tt.want, names)
		})
	}
}

func TestNaturalLess(t *testing.T) {
	t.Parallel()

	assert.True(t, fs.NaturalLess("9.png", "10.png"))
	assert.False(t, fs.NaturalLess("10.png", "9.png"))
	assert.False(t, fs.NaturalLess("3.png", "3.png"))
	assert.True(t, fs.NaturalLess("a", "a1"))
}
