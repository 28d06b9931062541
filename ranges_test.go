package rowview

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name   string
		offset int
		ranges []Range
		want   []Range
	}{
		{name: "nil", offset: 3, ranges: nil, want: []Range{}},
		{name: "zero offset", offset: 0, ranges: []Range{{0, 2}}, want: []Range{{0, 2}}},
		{name: "non contiguous", offset: 2, ranges: []Range{{0, 2}, {3, 5}}, want: []Range{{2, 4}, {5, 7}}},
		{name: "overlapping", offset: 1, ranges: []Range{{1, 3}, {0, 2}}, want: []Range{{2, 4}, {1, 3}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Translate(tt.offset, tt.ranges))
		})
	}
}

func TestSumRanges(t *testing.T) {
	require.Equal(t, 0, SumRanges(nil))
	require.Equal(t, 4, SumRanges([]Range{{0, 2}, {3, 5}}))
	require.Equal(t, 5, SumRanges([]Range{{0, 3}, {1, 3}}))
}

func TestRange_String(t *testing.T) {
	require.Equal(t, "[3,5)", Range{Start: 3, Stop: 5}.String())
	require.Equal(t, 2, Range{Start: 3, Stop: 5}.Len())
}
