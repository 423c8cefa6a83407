package moderation

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilter_IsProfane(t *testing.T) {
	req := require.New(t)
	filter, err := NewFilter([]string{"badger", "snake", "mushroom"})
	req.NoError(err)

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "plain word", input: "the badger is here", want: true},
		{name: "uppercase", input: "SNAKE!", want: true},
		{name: "leet speak", input: "a b4dg3r appeared", want: true},
		{name: "dollar for s", input: "$nake in the grass", want: true},
		{name: "punctuation around", input: "(mushroom)", want: true},
		{name: "only word", input: "badger", want: true},
		{name: "inside a longer word", input: "badgering me", want: false},
		{name: "prefix glued", input: "rattlesnake", want: false},
		{name: "digit glued", input: "snake2", want: false},
		{name: "clean text", input: "hello there", want: false},
		{name: "empty", input: "", want: false},
		{name: "accented neighbours", input: "été badger été", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, filter.IsProfane(tt.input))
		})
	}
}

func TestFilter_Empty_Word_List_Never_Flags(t *testing.T) {
	req := require.New(t)

	filter, err := NewFilter([]string{"", "   "})
	req.NoError(err)
	req.False(filter.IsProfane("anything goes"))

	var nilFilter *Filter
	req.False(nilFilter.IsProfane("anything goes"))
}

func TestFilter_Duplicate_Words(t *testing.T) {
	filter, err := NewFilter([]string{"Snake", "snake", " SNAKE "})
	require.NoError(t, err)
	require.True(t, filter.IsProfane("a snake"))
}

func TestFilter_DefaultWords(t *testing.T) {
	req := require.New(t)
	filter, err := NewFilter(DefaultWords)
	req.NoError(err)

	req.True(filter.IsProfane("well sh1t"))
	req.False(filter.IsProfane("a classic assessment"))
	req.False(filter.IsProfane("Scunthorpe United"))
}
