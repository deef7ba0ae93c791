package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want Intent
	}{
		{
			name: "wiki prefix any casing",
			in:   "WiKi  Roman Empire ",
			want: Intent{Kind: KindWiki, Raw: "WiKi  Roman Empire ", Topic: "Roman Empire"},
		},
		{
			name: "wiki wins over year",
			in:   "wiki 1984",
			want: Intent{Kind: KindWiki, Raw: "wiki 1984", Topic: "1984"},
		},
		{
			name: "four digit year",
			in:   "what happened in 1066?",
			want: Intent{Kind: KindYear, Raw: "what happened in 1066?", Year: 1066},
		},
		{
			name: "three digit year",
			in:   "tell me about 476",
			want: Intent{Kind: KindYear, Raw: "tell me about 476", Year: 476},
		},
		{
			name: "first year token wins",
			in:   "1900-1950",
			want: Intent{Kind: KindYear, Raw: "1900-1950", Year: 1900},
		},
		{
			name: "range when years are not whole words",
			in:   "events of c1900-1950s",
			want: Intent{Kind: KindYearRange, Raw: "events of c1900-1950s", Start: 1900, End: 1950},
		},
		{
			name: "wars phrasing with era suffixes",
			in:   "What wars occurred from 1900AD to 1950AD",
			want: Intent{Kind: KindWarsRange, Raw: "What wars occurred from 1900AD to 1950AD", Start: 1900, End: 1950},
		},
		{
			name: "wars keywords without range fall through to name",
			in:   "which wars occurred in europe",
			want: Intent{Kind: KindName, Raw: "which wars occurred in europe"},
		},
		{
			name: "five digit numbers are not years",
			in:   "population 12345",
			want: Intent{Kind: KindName, Raw: "population 12345"},
		},
		{
			name: "year zero is not a year",
			in:   "Agent 000 story",
			want: Intent{Kind: KindName, Raw: "Agent 000 story"},
		},
		{
			name: "plain name",
			in:   "Napoleon",
			want: Intent{Kind: KindName, Raw: "Napoleon"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.in))
		})
	}
}

func TestExtractYear(t *testing.T) {
	y, ok := ExtractYear("between 800 and 1200")
	assert.True(t, ok)
	assert.Equal(t, 800, y)

	_, ok = ExtractYear("no digits here")
	assert.False(t, ok)
}
