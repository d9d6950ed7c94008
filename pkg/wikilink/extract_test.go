package wikilink

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type extractionCase struct {
	name            string
	input           string
	expectedValid   []ValidLink
	expectedInvalid []InvalidLink
}

func assertExtraction(t *testing.T, tc extractionCase) {
	t.Helper()
	extracted := Extract(tc.input)

	require.Len(t, extracted.Valid, len(tc.expectedValid), "valid link count mismatch")
	for i, want := range tc.expectedValid {
		got := extracted.Valid[i]
		assert.Equal(t, want.Target, got.Target, "target mismatch at %d", i)
		assert.Equal(t, want.DisplayText, got.DisplayText, "display mismatch at %d", i)
		assert.Equal(t, want.IsAlias, got.IsAlias, "alias flag mismatch at %d", i)
		if want.End != 0 {
			assert.Equal(t, want.Start, got.Start, "valid span start at %d", i)
			assert.Equal(t, want.End, got.End, "valid span end at %d", i)
		}
	}

	require.Len(t, extracted.Invalid, len(tc.expectedInvalid), "invalid link count mismatch")
	for i, want := range tc.expectedInvalid {
		got := extracted.Invalid[i]
		assert.Equal(t, want.Content, got.Content, "content mismatch at %d", i)
		assert.Equal(t, want.Reason, got.Reason, "reason mismatch at %d", i)
		assert.Equal(t, want.Start, got.Start, "span start mismatch at %d", i)
		assert.Equal(t, want.End, got.End, "span end mismatch at %d", i)
	}
}

func TestExtractValidWikilinks(t *testing.T) {
	tests := []extractionCase{
		{
			name:  "simple wikilink",
			input: "A [[Tomato]] grows here",
			expectedValid: []ValidLink{
				{Wikilink: Wikilink{DisplayText: "Tomato", Target: "Tomato"}, Start: 2, End: 12},
			},
		},
		{
			name:  "aliased wikilink",
			input: "I like [[tomato|tomatoes]] a lot",
			expectedValid: []ValidLink{
				{Wikilink: Wikilink{DisplayText: "tomatoes", Target: "tomato", IsAlias: true}, Start: 7, End: 26},
			},
		},
		{
			name:  "whitespace trimmed",
			input: "[[ Spaced Target | padded display ]]",
			expectedValid: []ValidLink{
				{Wikilink: Wikilink{DisplayText: "padded display", Target: "Spaced Target", IsAlias: true}, Start: 0, End: 36},
			},
		},
		{
			name:          "image embed is not a link",
			input:         "Look ![[photo.png]] here",
			expectedValid: []ValidLink{},
			expectedInvalid: []InvalidLink{
				{Content: "![[photo.png]]", Reason: ReasonImageEmbed, Start: 5, End: 19},
			},
		},
		{
			name:          "note embed span covers the bang",
			input:         "See ![[Other Note]] here",
			expectedValid: []ValidLink{},
			expectedInvalid: []InvalidLink{
				{Content: "![[Other Note]]", Reason: ReasonImageEmbed, Start: 4, End: 19},
			},
		},
		{
			name:  "two links on one line",
			input: "[[One]] and [[Two|second]]",
			expectedValid: []ValidLink{
				{Wikilink: Wikilink{DisplayText: "One", Target: "One"}, Start: 0, End: 7},
				{Wikilink: Wikilink{DisplayText: "second", Target: "Two", IsAlias: true}, Start: 12, End: 26},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertExtraction(t, tt)
		})
	}
}

func TestExtractInvalidWikilinks(t *testing.T) {
	tests := []extractionCase{
		{
			name:  "double alias with closing brackets",
			input: "Text with [[target|alias|extra]] here",
			expectedInvalid: []InvalidLink{
				{Content: "[[target|alias|extra]]", Reason: ReasonDoubleAlias, Start: 10, End: 32},
			},
		},
		{
			name:  "double alias without closing",
			input: "Text with [[target|alias|extra",
			expectedInvalid: []InvalidLink{
				{Content: "[[target|alias|extra", Reason: ReasonUnmatchedOpening, Start: 10, End: 30},
			},
		},
		{
			name:  "unmatched closing bracket within wikilink",
			input: "Text with [[test]text]] here",
			expectedInvalid: []InvalidLink{
				{Content: "[[test]text]]", Reason: ReasonUnmatchedSingle, Start: 10, End: 23},
			},
		},
		{
			name:  "unmatched opening bracket within wikilink",
			input: "Text with [[test[text]] here",
			expectedInvalid: []InvalidLink{
				{Content: "[[test[text]]", Reason: ReasonUnmatchedSingle, Start: 10, End: 23},
			},
		},
		{
			name:  "nested wikilink opening",
			input: "Text with [[target[[inner]] here",
			expectedInvalid: []InvalidLink{
				{Content: "[[target[[inner]]", Reason: ReasonNestedOpening, Start: 10, End: 27},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertExtraction(t, tt)
		})
	}
}

func TestExtractUnmatchedBrackets(t *testing.T) {
	tests := []extractionCase{
		{
			name:  "single unmatched closing brackets",
			input: "Some text here]] more text",
			expectedInvalid: []InvalidLink{
				{Content: "Some text here]]", Reason: ReasonUnmatchedClosing, Start: 0, End: 16},
			},
		},
		{
			name:  "multiple unmatched closings",
			input: "Text]] more]] text",
			expectedInvalid: []InvalidLink{
				{Content: "Text]]", Reason: ReasonUnmatchedClosing, Start: 0, End: 6},
				{Content: " more]]", Reason: ReasonUnmatchedClosing, Start: 6, End: 13},
			},
		},
		{
			name:  "mixed valid and invalid brackets",
			input: "[[Valid Link]] but here]] and [[Another]]",
			expectedValid: []ValidLink{
				{Wikilink: Wikilink{DisplayText: "Valid Link", Target: "Valid Link"}},
				{Wikilink: Wikilink{DisplayText: "Another", Target: "Another"}},
			},
			expectedInvalid: []InvalidLink{
				{Content: " but here]]", Reason: ReasonUnmatchedClosing, Start: 14, End: 25},
			},
		},
		{
			name:  "unmatched opening brackets at the end",
			input: "Here is an [[unmatched link",
			expectedInvalid: []InvalidLink{
				{Content: "[[unmatched link", Reason: ReasonUnmatchedOpening, Start: 11, End: 27},
			},
		},
		{
			name:  "plain text produces nothing",
			input: "This is a plain text without any wikilinks.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertExtraction(t, tt)
		})
	}
}

func TestExtractUnclosedMarkdownLinks(t *testing.T) {
	tests := []extractionCase{
		{
			name:  "basic unclosed markdown link",
			input: "[display",
			expectedInvalid: []InvalidLink{
				{Content: "[display", Reason: ReasonUnmatchedMarkdownOpening, Start: 0, End: 8},
			},
		},
		{
			name:  "unclosed link in context",
			input: "some text [link",
			expectedInvalid: []InvalidLink{
				{Content: "[link", Reason: ReasonUnmatchedMarkdownOpening, Start: 10, End: 15},
			},
		},
		{
			name:  "mixed valid wikilink and unclosed markdown",
			input: "[[valid link]] [unclosed",
			expectedValid: []ValidLink{
				{Wikilink: Wikilink{DisplayText: "valid link", Target: "valid link"}},
			},
			expectedInvalid: []InvalidLink{
				{Content: "[unclosed", Reason: ReasonUnmatchedMarkdownOpening, Start: 15, End: 24},
			},
		},
		{
			name:  "multiple unclosed markdown links",
			input: "[first [second",
			expectedInvalid: []InvalidLink{
				{Content: "[first", Reason: ReasonUnmatchedMarkdownOpening, Start: 0, End: 6},
				{Content: "[second", Reason: ReasonUnmatchedMarkdownOpening, Start: 7, End: 14},
			},
		},
		{
			name:  "escaped brackets do not trigger",
			input: "\\[not a link",
		},
		{
			name:  "valid markdown link followed by unclosed",
			input: "[valid](link) [unclosed",
			expectedInvalid: []InvalidLink{
				{Content: "[unclosed", Reason: ReasonUnmatchedMarkdownOpening, Start: 14, End: 23},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertExtraction(t, tt)
		})
	}
}

func TestExtractSpecialPatterns(t *testing.T) {
	tests := []extractionCase{
		{
			name:  "simple email address",
			input: "Contact bob@example.com for more info",
			expectedInvalid: []InvalidLink{
				{Content: "bob@example.com", Reason: ReasonEmailAddress, Start: 8, End: 23},
			},
		},
		{
			name:  "email alongside wikilink",
			input: "[[Contact]] john.doe@company.org today",
			expectedValid: []ValidLink{
				{Wikilink: Wikilink{DisplayText: "Contact", Target: "Contact"}},
			},
			expectedInvalid: []InvalidLink{
				{Content: "john.doe@company.org", Reason: ReasonEmailAddress, Start: 12, End: 32},
			},
		},
		{
			name:  "tag at start of line",
			input: "#gardening is great",
			expectedInvalid: []InvalidLink{
				{Content: "#gardening", Reason: ReasonTag, Start: 0, End: 10},
			},
		},
		{
			name:  "tag after space keeps the leading space in the span",
			input: "Check out this #ka-fave tag",
			expectedInvalid: []InvalidLink{
				{Content: "#ka-fave", Reason: ReasonTag, Start: 14, End: 23},
			},
		},
		{
			name:  "raw http url",
			input: "See https://example.com/page for details",
			expectedInvalid: []InvalidLink{
				{Content: "https://example.com/page", Reason: ReasonRawHTTPLink, Start: 4, End: 28},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertExtraction(t, tt)
		})
	}
}

func TestMarkdownLinkRegex(t *testing.T) {
	locs := MarkdownLinkRegex.FindAllStringIndex("pre [text](http://x.y) post", -1)
	require.Len(t, locs, 1)
	assert.Equal(t, 4, locs[0][0])
	assert.Equal(t, 22, locs[0][1])
}
