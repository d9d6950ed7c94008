package wikilink

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToWikilink(t *testing.T) {
	tests := []struct {
		name   string
		target string
		want   string
	}{
		{"plain target", "Tomato", "[[Tomato]]"},
		{"strips md extension", "Tomato.md", "[[Tomato]]"},
		{"preserves inner dots", "v1.2 Notes", "[[v1.2 Notes]]"},
		{"empty target", "", "[[]]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToWikilink(tt.target))
		})
	}
}

func TestToAliasedWikilink(t *testing.T) {
	tests := []struct {
		name    string
		target  string
		display string
		want    string
	}{
		{"different display", "tomato", "tomatoes", "[[tomato|tomatoes]]"},
		{"same display collapses", "Tomato", "Tomato", "[[Tomato]]"},
		{"case difference keeps alias", "Test Link", "TEST LINK", "[[Test Link|TEST LINK]]"},
		{"md extension stripped before compare", "Tomato.md", "Tomato", "[[Tomato]]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToAliasedWikilink(tt.target, tt.display))
		})
	}
}

func TestForFilename(t *testing.T) {
	link := ForFilename("Garden Notes.md")

	assert.Equal(t, "Garden Notes", link.Target)
	assert.Equal(t, "Garden Notes", link.DisplayText)
	assert.False(t, link.IsAlias)
}

func TestWikilinkString(t *testing.T) {
	assert.Equal(t, "tomato|tomatoes", Wikilink{DisplayText: "tomatoes", Target: "tomato", IsAlias: true}.String())
	assert.Equal(t, "tomato", Wikilink{DisplayText: "tomato", Target: "tomato"}.String())
}
