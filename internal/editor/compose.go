package editor

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/starford/penna/internal/models"
)

// DefaultEditor is used when neither $VISUAL nor $EDITOR is set.
const DefaultEditor = "vi"

// RenderDraft serializes a draft to the on-disk editing format: a YAML
// frontmatter block carrying the title, followed by the content.
func RenderDraft(d models.Draft) []byte {
	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.WriteString("title: ")
	titleLine, _ := yaml.Marshal(d.Title)
	buf.Write(titleLine) // yaml.Marshal appends the newline
	buf.WriteString("---\n")
	buf.WriteString(d.Content)
	if d.Content != "" && !strings.HasSuffix(d.Content, "\n") {
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// ParseDraft reads the editing format back into a draft. A frontmatter
// `title:` wins; without frontmatter the first non-blank line becomes the
// title and the remainder the content.
func ParseDraft(data []byte) models.Draft {
	fm, body := splitFrontmatter(data)
	if fm != nil {
		if t, ok := fm["title"].(string); ok && t != "" {
			return models.Draft{Title: t, Content: strings.TrimRight(body, "\n")}
		}
	}

	lines := strings.Split(strings.TrimLeft(body, "\n\r"), "\n")
	if len(lines) == 0 {
		return models.Draft{}
	}
	title := strings.TrimSpace(lines[0])
	content := strings.TrimRight(strings.TrimLeft(strings.Join(lines[1:], "\n"), "\n"), "\n")
	return models.Draft{Title: title, Content: content}
}

// splitFrontmatter separates a leading YAML block (between --- delimiters)
// from the body. No frontmatter, an unterminated block, or invalid YAML all
// fall back to treating the whole input as body.
func splitFrontmatter(data []byte) (map[string]any, string) {
	const delim = "---"
	trimmed := bytes.TrimLeft(data, "\n\r")
	if !bytes.HasPrefix(trimmed, []byte(delim)) {
		return nil, string(data)
	}

	rest := trimmed[len(delim):]
	idx := bytes.Index(rest, []byte("\n"+delim))
	if idx < 0 {
		return nil, string(data)
	}

	var fm map[string]any
	if err := yaml.Unmarshal(rest[:idx], &fm); err != nil {
		return nil, string(data)
	}
	body := strings.TrimLeft(string(rest[idx+1+len(delim):]), "\n\r")
	return fm, body
}

// Compose writes the draft to a temp file, runs the user's editor on it, and
// parses the result. The temp file path is returned so callers can keep
// watching it (see Watch); the caller owns cleanup.
func Compose(d models.Draft) (models.Draft, string, error) {
	f, err := os.CreateTemp("", "penna-draft-*.md")
	if err != nil {
		return models.Draft{}, "", fmt.Errorf("create draft file: %w", err)
	}
	path := f.Name()

	if _, err := f.Write(RenderDraft(d)); err != nil {
		f.Close()
		os.Remove(path)
		return models.Draft{}, "", fmt.Errorf("write draft file: %w", err)
	}
	f.Close()

	if err := runEditor(path); err != nil {
		os.Remove(path)
		return models.Draft{}, "", err
	}

	edited, err := ReadDraftFile(path)
	if err != nil {
		os.Remove(path)
		return models.Draft{}, "", err
	}
	return edited, path, nil
}

// ReadDraftFile parses the draft file at path.
func ReadDraftFile(path string) (models.Draft, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.Draft{}, fmt.Errorf("read draft file: %w", err)
	}
	return ParseDraft(data), nil
}

func runEditor(path string) error {
	name := os.Getenv("VISUAL")
	if name == "" {
		name = os.Getenv("EDITOR")
	}
	if name == "" {
		name = DefaultEditor
	}

	cmd := exec.Command(name, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor %s: %w", name, err)
	}
	return nil
}
