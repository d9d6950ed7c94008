package wikilink

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// InvalidReason classifies why a span is not a usable wikilink.
type InvalidReason string

const (
	ReasonDoubleAlias              InvalidReason = "double-alias"
	ReasonEmptyWikilink            InvalidReason = "empty-wikilink"
	ReasonEmailAddress             InvalidReason = "email-address"
	ReasonImageEmbed               InvalidReason = "image-embed"
	ReasonNestedOpening            InvalidReason = "nested-opening"
	ReasonRawHTTPLink              InvalidReason = "raw-http-link"
	ReasonTag                      InvalidReason = "tag"
	ReasonUnmatchedClosing         InvalidReason = "unmatched-closing"
	ReasonUnmatchedMarkdownOpening InvalidReason = "unmatched-markdown-opening"
	ReasonUnmatchedOpening         InvalidReason = "unmatched-opening"
	ReasonUnmatchedSingle          InvalidReason = "unmatched-single-bracket"
)

// Description returns the human-readable form used in reports.
func (r InvalidReason) Description() string {
	switch r {
	case ReasonDoubleAlias:
		return "contains multiple alias separators"
	case ReasonEmptyWikilink:
		return "contains empty wikilink"
	case ReasonEmailAddress:
		return "ignore email addresses for back population"
	case ReasonImageEmbed:
		return "ignore image embeds for back population"
	case ReasonNestedOpening:
		return "contains a nested opening"
	case ReasonRawHTTPLink:
		return "ignore raw urls for back population"
	case ReasonTag:
		return "ignore tags for back population"
	case ReasonUnmatchedClosing:
		return "contains unmatched closing brackets ']]'"
	case ReasonUnmatchedMarkdownOpening:
		return "'[' without following match"
	case ReasonUnmatchedOpening:
		return "contains unmatched opening brackets '[['"
	case ReasonUnmatchedSingle:
		return "contains unmatched bracket '[' or ']'"
	default:
		return string(r)
	}
}

// ValidLink is a well-formed wikilink found in a line, with the byte span
// of the full [[...]] source text.
type ValidLink struct {
	Wikilink
	Start int
	End   int
}

// InvalidLink is a span of a line that looks link-like but must not be
// touched: malformed brackets, or text categorically excluded from back
// population (emails, tags, raw urls).
type InvalidLink struct {
	Content string
	Reason  InvalidReason
	Start   int
	End     int
}

// Extracted holds everything the bracket scanner found on a single line.
type Extracted struct {
	Valid   []ValidLink
	Invalid []InvalidLink
}

// MarkdownLinkRegex recognizes markdown-style [text](url) links.
var MarkdownLinkRegex = regexp.MustCompile(`\[.*?\]\(.*?\)`)

var (
	emailRegex   = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	tagRegex     = regexp.MustCompile(`(?:^|\s)#[a-zA-Z0-9_-]+`)
	rawHTTPRegex = regexp.MustCompile(`https?://\S+`)
)

// Extract scans one line of text and returns every valid wikilink along
// with every invalid or categorically excluded span. Image embeds
// (![[...]]) parse as wikilinks but are recorded as excluded spans
// rather than valid links, so their interior stays untouchable.
func Extract(line string) Extracted {
	var result Extracted

	extractSpecialSpans(line, &result)

	sc := &charScanner{line: line}
	markdownOpening := -1
	lastPosition := 0

	for {
		idx, ch, ok := sc.next()
		if !ok {
			break
		}

		// Escaped characters never open or close anything
		if ch == '\\' {
			sc.next()
			continue
		}

		// ]] without a matching opening
		if ch == ']' && sc.nextIs(']') {
			result.Invalid = append(result.Invalid, InvalidLink{
				Content: line[lastPosition : idx+2],
				Reason:  ReasonUnmatchedClosing,
				Start:   lastPosition,
				End:     idx + 2,
			})
			markdownOpening = -1
			lastPosition = idx + 2
			continue
		}

		// A single ] closes any pending markdown link opening
		if ch == ']' {
			markdownOpening = -1
		}

		if ch != '[' {
			continue
		}

		if sc.nextIs('[') {
			// A wikilink opening invalidates any pending markdown opening
			if markdownOpening >= 0 {
				content := strings.TrimSpace(line[markdownOpening:idx])
				result.Invalid = append(result.Invalid, InvalidLink{
					Content: content,
					Reason:  ReasonUnmatchedMarkdownOpening,
					Start:   markdownOpening,
					End:     markdownOpening + len(content),
				})
				markdownOpening = -1
			}

			isImage := idx > 0 && line[idx-1] == '!'

			valid, invalid := parseWikilink(sc, idx)
			switch {
			case invalid != nil:
				result.Invalid = append(result.Invalid, *invalid)
			case valid != nil:
				if isImage {
					result.Invalid = append(result.Invalid, InvalidLink{
						Content: line[idx-1 : valid.End],
						Reason:  ReasonImageEmbed,
						Start:   idx - 1,
						End:     valid.End,
					})
				} else {
					result.Valid = append(result.Valid, *valid)
				}
				if pidx, _, pok := sc.peek(); pok {
					lastPosition = pidx
				}
			}
		} else {
			if markdownOpening >= 0 {
				content := strings.TrimSpace(line[markdownOpening:idx])
				result.Invalid = append(result.Invalid, InvalidLink{
					Content: content,
					Reason:  ReasonUnmatchedMarkdownOpening,
					Start:   markdownOpening,
					End:     markdownOpening + len(content),
				})
			}
			markdownOpening = idx
		}
	}

	// Unclosed markdown opening at end of line
	if markdownOpening >= 0 {
		content := strings.TrimSpace(line[markdownOpening:])
		result.Invalid = append(result.Invalid, InvalidLink{
			Content: content,
			Reason:  ReasonUnmatchedMarkdownOpening,
			Start:   markdownOpening,
			End:     markdownOpening + len(content),
		})
	}

	return result
}

// extractSpecialSpans records emails, raw urls and tags as excluded spans.
func extractSpecialSpans(line string, result *Extracted) {
	specials := []struct {
		reason InvalidReason
		re     *regexp.Regexp
	}{
		{ReasonEmailAddress, emailRegex},
		{ReasonRawHTTPLink, rawHTTPRegex},
		{ReasonTag, tagRegex},
	}
	for _, sp := range specials {
		reason, re := sp.reason, sp.re
		for _, loc := range re.FindAllStringIndex(line, -1) {
			result.Invalid = append(result.Invalid, InvalidLink{
				Content: strings.TrimSpace(line[loc[0]:loc[1]]),
				Reason:  reason,
				Start:   loc[0],
				End:     loc[1],
			})
		}
	}
}

type wikilinkParseState int

const (
	stateTarget wikilinkParseState = iota
	stateDisplay
	stateInvalid
)

// parseWikilink consumes characters after an opening [[ until the link
// closes or the line ends. openIdx is the byte position of the first [.
func parseWikilink(sc *charScanner, openIdx int) (*ValidLink, *InvalidLink) {
	var (
		state   = stateTarget
		target  strings.Builder
		display strings.Builder
		content strings.Builder
		reason  InvalidReason
	)

	formatted := func() string {
		switch state {
		case stateTarget:
			return target.String()
		case stateDisplay:
			return target.String() + "|" + display.String()
		default:
			return content.String()
		}
	}

	push := func(c rune) {
		switch state {
		case stateTarget:
			target.WriteRune(c)
		case stateDisplay:
			display.WriteRune(c)
		default:
			content.WriteRune(c)
		}
	}

	invalidate := func(r InvalidReason) {
		snapshot := formatted()
		state = stateInvalid
		reason = r
		content.Reset()
		content.WriteString(snapshot)
	}

	finish := func(end int) (*ValidLink, *InvalidLink) {
		switch state {
		case stateTarget:
			trimmed := strings.TrimSpace(target.String())
			if trimmed == "" {
				return nil, &InvalidLink{
					Content: "[[]]",
					Reason:  ReasonEmptyWikilink,
					Start:   openIdx,
					End:     end,
				}
			}
			return &ValidLink{
				Wikilink: Wikilink{DisplayText: trimmed, Target: trimmed},
				Start:    openIdx,
				End:      end,
			}, nil
		case stateDisplay:
			trimmedTarget := strings.TrimSpace(target.String())
			trimmedDisplay := strings.TrimSpace(display.String())
			if trimmedTarget == "" || trimmedDisplay == "" {
				return nil, &InvalidLink{
					Content: "[[" + target.String() + "|" + display.String() + "]]",
					Reason:  ReasonEmptyWikilink,
					Start:   openIdx,
					End:     end,
				}
			}
			return &ValidLink{
				Wikilink: Wikilink{
					DisplayText: trimmedDisplay,
					Target:      trimmedTarget,
					IsAlias:     true,
				},
				Start: openIdx,
				End:   end,
			}, nil
		default:
			text := content.String()
			var full string
			if reason == ReasonUnmatchedOpening {
				full = "[[" + text
			} else {
				full = "[[" + text + "]]"
			}
			return nil, &InvalidLink{
				Content: full,
				Reason:  reason,
				Start:   openIdx,
				End:     end,
			}
		}
	}

	for {
		idx, c, ok := sc.next()
		if !ok {
			break
		}

		if state == stateInvalid {
			if c == ']' && sc.nextIs(']') {
				return finish(idx + 2)
			}
			content.WriteRune(c)
			continue
		}

		switch c {
		case '\\':
			if _, nc, nok := sc.next(); nok {
				if nc == '|' {
					// Escaped pipe behaves like a plain pipe
					if state == stateTarget {
						state = stateDisplay
					} else {
						invalidate(ReasonDoubleAlias)
						content.WriteRune('\\')
						content.WriteRune('|')
					}
				} else {
					push(nc)
				}
			}
		case '|':
			if state == stateTarget {
				state = stateDisplay
			} else {
				invalidate(ReasonDoubleAlias)
				content.WriteRune('|')
			}
		case ']':
			if sc.nextIs(']') {
				return finish(idx + 2)
			}
			invalidate(ReasonUnmatchedSingle)
			content.WriteRune(']')
		case '[':
			if sc.nextIs('[') {
				invalidate(ReasonNestedOpening)
				content.WriteString("[[")
			} else {
				invalidate(ReasonUnmatchedSingle)
				content.WriteRune('[')
			}
		default:
			push(c)
		}
	}

	// Line ended inside the link
	invalidate(ReasonUnmatchedOpening)
	return finish(openIdx + 2 + content.Len())
}

// charScanner iterates a string by rune while exposing byte offsets.
type charScanner struct {
	line string
	pos  int
}

func (s *charScanner) next() (int, rune, bool) {
	if s.pos >= len(s.line) {
		return 0, 0, false
	}
	r, size := utf8.DecodeRuneInString(s.line[s.pos:])
	idx := s.pos
	s.pos += size
	return idx, r, true
}

func (s *charScanner) peek() (int, rune, bool) {
	if s.pos >= len(s.line) {
		return 0, 0, false
	}
	r, _ := utf8.DecodeRuneInString(s.line[s.pos:])
	return s.pos, r, true
}

// nextIs consumes the next rune only when it equals expected.
func (s *charScanner) nextIs(expected rune) bool {
	if _, r, ok := s.peek(); ok && r == expected {
		s.next()
		return true
	}
	return false
}
