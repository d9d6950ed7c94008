package document

import (
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/linkmend/pkg/errors"
)

// StringList accepts either a YAML scalar or a YAML sequence, since vault
// frontmatter uses both forms for aliases.
type StringList []string

// UnmarshalYAML implements yaml.Unmarshaler
func (s *StringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var single string
		if err := value.Decode(&single); err != nil {
			return err
		}
		*s = StringList{single}
		return nil
	default:
		var list []string
		if err := value.Decode(&list); err != nil {
			return err
		}
		*s = StringList(list)
		return nil
	}
}

// Frontmatter is the parsed YAML block at the top of a document. Unknown
// keys are ignored; only the fields the pipeline consumes are modeled.
type Frontmatter struct {
	Aliases           StringList `yaml:"aliases"`
	DoNotBackPopulate StringList `yaml:"do_not_back_populate"`
	DateCreated       string     `yaml:"date_created"`
	DateModified      string     `yaml:"date_modified"`
}

const frontmatterDelimiter = "---"

// splitFrontmatter separates a leading frontmatter block from the content.
// It returns the raw YAML between the delimiters, the number of lines the
// block occupies (delimiters included), or zero when there is no block.
func splitFrontmatter(content string) (string, int) {
	lines := strings.Split(content, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != frontmatterDelimiter {
		return "", 0
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == frontmatterDelimiter {
			return strings.Join(lines[1:i], "\n"), i + 1
		}
	}
	// Unterminated block: treat the whole file as frontmatter
	return strings.Join(lines[1:], "\n"), len(lines)
}

// parseFrontmatter decodes the YAML block, if any.
func parseFrontmatter(content string) (*Frontmatter, int, error) {
	raw, lineCount := splitFrontmatter(content)
	if lineCount == 0 {
		return nil, 0, nil
	}

	var fm Frontmatter
	if err := yaml.Unmarshal([]byte(raw), &fm); err != nil {
		return nil, lineCount, errors.Wrap(err, errors.ErrFrontmatterParse, "failed to parse frontmatter")
	}
	return &fm, lineCount, nil
}
