package deck

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/adrg/frontmatter"
)

// ErrEmptyDeck is returned when a deck contains no slides.
var ErrEmptyDeck = errors.New("deck contains no slides")

// Load reads and parses the deck file at path.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load deck: %w", err)
	}
	reg, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return reg, nil
}

// Parse splits markdown source into slides. An optional YAML frontmatter
// block supplies deck metadata; slides are separated by top-level "---"
// lines. Delimiters inside fenced code blocks are ignored.
func Parse(src string) (*Registry, error) {
	var meta Meta
	rest, err := frontmatter.Parse(strings.NewReader(src), &meta)
	if err != nil {
		return nil, fmt.Errorf("frontmatter: %w", err)
	}

	reg := &Registry{meta: meta, byID: make(map[string]int)}
	for _, chunk := range splitSlides(string(rest)) {
		slide := Slide{Content: chunk, Title: firstHeading(chunk)}
		if slug := slugify(slide.Title); slug != "" {
			if _, taken := reg.byID[slug]; !taken {
				slide.ID = slug
				reg.byID[slug] = len(reg.slides)
			}
		}
		reg.slides = append(reg.slides, slide)
	}
	if len(reg.slides) == 0 {
		return nil, ErrEmptyDeck
	}
	return reg, nil
}

func splitSlides(src string) []string {
	var (
		chunks  []string
		current []string
		inFence bool
	)
	flush := func() {
		chunk := strings.TrimSpace(strings.Join(current, "\n"))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}
		current = current[:0]
	}
	for _, line := range strings.Split(src, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			inFence = !inFence
		}
		if !inFence && isDelimiter(trimmed) {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()
	return chunks
}

func isDelimiter(line string) bool {
	return line == "---"
}

func firstHeading(chunk string) string {
	for _, line := range strings.Split(chunk, "\n") {
		trimmed := strings.TrimSpace(line)
		rest := strings.TrimLeft(trimmed, "#")
		if rest == trimmed || len(trimmed)-len(rest) > 6 {
			continue
		}
		if title := strings.TrimSpace(rest); title != "" {
			return title
		}
	}
	return ""
}

func slugify(title string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		case r == ' ' || r == '-' || r == '_':
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

func fallbackTitle(index int) string {
	return fmt.Sprintf("Slide %d", index+1)
}
