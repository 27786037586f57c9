// Package deck loads a markdown file and splits it into the ordered,
// immutable slide registry the presentation is driven from.
package deck

// Meta holds deck-level settings read from the YAML frontmatter block.
type Meta struct {
	Title  string `yaml:"title"`
	Author string `yaml:"author"`
	Theme  string `yaml:"theme"`
}

// Slide is one renderable unit of the presentation.
type Slide struct {
	// Content is the slide's raw markdown.
	Content string
	// Title is the text of the slide's first ATX heading, if any.
	Title string
	// ID is the slug of Title, used for menu deep-linking. Empty when the
	// slide has no heading or another slide already claimed the slug.
	ID string
}

// Registry is the fixed sequence of slides in a deck. It is built once at
// load time and never mutated afterwards.
type Registry struct {
	meta   Meta
	slides []Slide
	byID   map[string]int
}

// Meta returns the deck-level metadata.
func (r *Registry) Meta() Meta { return r.meta }

// Len returns the number of slides.
func (r *Registry) Len() int { return len(r.slides) }

// At returns the slide at the given position. The index must be in range;
// callers are expected to have validated it against Len.
func (r *Registry) At(index int) Slide { return r.slides[index] }

// IndexOf resolves a slide identifier to its position.
func (r *Registry) IndexOf(id string) (int, bool) {
	if id == "" {
		return 0, false
	}
	index, ok := r.byID[id]
	return index, ok
}

// Titles returns a display title per slide, falling back to "Slide N" for
// slides without a heading.
func (r *Registry) Titles() []string {
	titles := make([]string, len(r.slides))
	for i, s := range r.slides {
		if s.Title != "" {
			titles[i] = s.Title
		} else {
			titles[i] = fallbackTitle(i)
		}
	}
	return titles
}
