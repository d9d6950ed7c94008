package match

import "strings"

const (
	frontmatterDelimiter = "---"
	codeFenceDelimiter   = "```"
)

// FileProcessingState tracks, line by line, whether the cursor sits inside
// a frontmatter block or a fenced code block. Created once per document
// scan, fed every line in order, discarded afterwards.
//
// The frontmatter delimiter toggles on every occurrence: an odd running
// count means inside. A code fence only toggles when not inside
// frontmatter. Malformed or unbalanced delimiters leave the rest of the
// document classified inside, which errs on the side of not matching.
type FileProcessingState struct {
	inFrontmatter             bool
	inCodeBlock               bool
	frontmatterDelimiterCount int
}

// NewFileProcessingState returns a classifier positioned before the first
// line of a document.
func NewFileProcessingState() *FileProcessingState {
	return &FileProcessingState{}
}

// UpdateForLine advances the state for one line and reports whether the
// line must be skipped. Delimiter lines themselves are always skipped.
func (s *FileProcessingState) UpdateForLine(line string) bool {
	trimmed := strings.TrimSpace(line)

	if trimmed == frontmatterDelimiter {
		s.frontmatterDelimiterCount++
		s.inFrontmatter = s.frontmatterDelimiterCount%2 != 0
		return true
	}

	if !s.inFrontmatter && strings.HasPrefix(trimmed, codeFenceDelimiter) {
		s.inCodeBlock = !s.inCodeBlock
		return true
	}

	return s.inFrontmatter || s.inCodeBlock
}

// ShouldSkipLine reports the current skip state without consuming a line.
func (s *FileProcessingState) ShouldSkipLine() bool {
	return s.inFrontmatter || s.inCodeBlock
}
