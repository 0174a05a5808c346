package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeInput(t *testing.T) {
	t.Parallel()

	svc := NewNumberService()

	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{
			name:     "digits commas spaces survive",
			raw:      "1234, 56",
			expected: "1234, 56",
		},
		{
			name:     "letters and symbols dropped",
			raw:      "12ab!34,x 5-6",
			expected: "1234, 56",
		},
		{
			name:     "empty input",
			raw:      "",
			expected: "",
		},
		{
			name:     "only junk",
			raw:      "abc!@#",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, svc.SanitizeInput(tt.raw))
		})
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	svc := NewNumberService()

	tests := []struct {
		name     string
		raw      string
		expected []string
	}{
		{
			name:     "basic comma separated",
			raw:      "1234, 56",
			expected: []string{"1234", "56"},
		},
		{
			name:     "leading zeros preserved",
			raw:      "007, 00100",
			expected: []string{"007", "00100"},
		},
		{
			name:     "whitespace trimmed",
			raw:      "  12  ,  34  ",
			expected: []string{"12", "34"},
		},
		{
			name:     "empty pieces skipped",
			raw:      "12,,34,",
			expected: []string{"12", "34"},
		},
		{
			name:     "non numeric pieces discarded",
			raw:      "12, 3 4, 56",
			expected: []string{"12", "56"},
		},
		{
			name:     "duplicates kept",
			raw:      "12, 12",
			expected: []string{"12", "12"},
		},
		{
			name:     "empty input",
			raw:      "",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, svc.Normalize(tt.raw))
		})
	}
}

func TestProject(t *testing.T) {
	t.Parallel()

	svc := NewNumberService()

	tests := []struct {
		name     string
		numbers  []string
		lengths  []int
		expected map[int][]string
	}{
		{
			name:    "truncation and exact match across lengths",
			numbers: []string{"1234", "56"},
			lengths: []int{2, 3, 4},
			expected: map[int][]string{
				2: {"34", "56"},
				3: {"234"},
				4: {"1234"},
			},
		},
		{
			name:     "all zero number produces nothing",
			numbers:  []string{"00"},
			lengths:  []int{2, 3, 4},
			expected: map[int][]string{},
		},
		{
			name:     "truncation to all zeros rejected",
			numbers:  []string{"100"},
			lengths:  []int{2},
			expected: map[int][]string{},
		},
		{
			name:    "suffix duplicate collapses within bucket",
			numbers: []string{"100", "00100"},
			lengths: []int{3},
			expected: map[int][]string{
				3: {"100"},
			},
		},
		{
			name:    "shorter numbers never stretched",
			numbers: []string{"56"},
			lengths: []int{3},
			expected: map[int][]string{},
		},
		{
			name:    "short candidate padded to canonical width",
			numbers: []string{"7007"},
			lengths: []int{3},
			expected: map[int][]string{
				3: {"007"},
			},
		},
		{
			name:    "insertion order preserved within bucket",
			numbers: []string{"99", "11", "55"},
			lengths: []int{2},
			expected: map[int][]string{
				2: {"99", "11", "55"},
			},
		},
		{
			name:     "no lengths selected",
			numbers:  []string{"1234"},
			lengths:  nil,
			expected: map[int][]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, svc.Project(tt.numbers, tt.lengths))
		})
	}
}

func TestRebuild(t *testing.T) {
	t.Parallel()

	svc := NewNumberService()

	set := svc.Rebuild("1234, 56", []int{2, 3, 4})
	assert.Equal(t, []int{2, 3, 4}, set.Digits())
	assert.Equal(t, []string{"34", "56"}, set.Bucket(2))
	assert.Equal(t, []string{"234"}, set.Bucket(3))
	assert.Equal(t, []string{"1234"}, set.Bucket(4))
	assert.Equal(t, 4, set.TotalCount())

	empty := svc.Rebuild("00", []int{2, 3, 4})
	assert.True(t, empty.IsEmpty())
}

func TestDedupeBySuffix(t *testing.T) {
	t.Parallel()

	svc := NewNumberService()

	tests := []struct {
		name     string
		numbers  []string
		expected []string
	}{
		{
			name:     "exact duplicates removed",
			numbers:  []string{"12", "12", "34"},
			expected: []string{"12", "34"},
		},
		{
			name:     "suffix of longer earlier entry removed",
			numbers:  []string{"1234", "234", "34"},
			expected: []string{"1234"},
		},
		{
			name:     "longer number after its suffix is kept",
			numbers:  []string{"34", "1234"},
			expected: []string{"34", "1234"},
		},
		{
			name:     "unrelated numbers untouched",
			numbers:  []string{"12", "21"},
			expected: []string{"12", "21"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, svc.DedupeBySuffix(tt.numbers))
		})
	}
}
