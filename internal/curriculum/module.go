package curriculum

import (
	"errors"
	"strings"
)

// ModuleSeparator splits generated curriculum text into modules.
// Part of the wire contract with the generation backend.
const ModuleSeparator = "$$$"

// ErrMalformedOutput indicates the generated curriculum text did not
// contain any parsable module.
var ErrMalformedOutput = errors.New("malformed curriculum output")

// Submodule is one sub-unit inside a module.
type Submodule struct {
	Title      string
	Directions string
}

// Module is one unit of a generated curriculum.
type Module struct {
	// Number is the 1-based position of the module.
	Number int

	// Title is the text after "# Module N:" in the heading.
	Title string

	// Directions is the module-level directions line, if present.
	Directions string

	// Body is the raw markdown of the whole module segment.
	Body string

	// Submodules lists the parsed submodule headings, if any.
	Submodules []Submodule
}

// Curriculum is an ordered sequence of modules. Immutable once parsed;
// generated teaching content, flashcards and images are attached to the
// session's side tables, never to the curriculum itself.
type Curriculum struct {
	Topic   string
	Modules []Module
}

// Len returns the number of modules.
func (c *Curriculum) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Modules)
}

// Markdown renders the curriculum as one markdown document, the module
// separator consumed.
func (c *Curriculum) Markdown() string {
	if c == nil {
		return ""
	}
	bodies := make([]string, len(c.Modules))
	for i, m := range c.Modules {
		bodies[i] = m.Body
	}
	return strings.Join(bodies, "\n\n")
}

// Module returns the module at the given 1-based number.
func (c *Curriculum) Module(number int) (Module, bool) {
	if c == nil || number < 1 || number > len(c.Modules) {
		return Module{}, false
	}
	return c.Modules[number-1], true
}

// Parse splits raw generated text on the module separator, trims each
// segment and drops empties. Returns ErrMalformedOutput when nothing
// parsable remains.
func Parse(topic, raw string) (*Curriculum, error) {
	var modules []Module
	for _, segment := range strings.Split(raw, ModuleSeparator) {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		modules = append(modules, parseModule(segment, len(modules)+1))
	}

	if len(modules) == 0 {
		return nil, ErrMalformedOutput
	}

	return &Curriculum{Topic: topic, Modules: modules}, nil
}

func parseModule(segment string, number int) Module {
	m := Module{Number: number, Body: segment}

	lines := strings.Split(segment, "\n")
	var currentSub *Submodule

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case i == 0:
			m.Title = headingTitle(trimmed)
		case strings.HasPrefix(trimmed, "## "):
			m.Submodules = append(m.Submodules, Submodule{Title: headingTitle(trimmed)})
			currentSub = &m.Submodules[len(m.Submodules)-1]
		case strings.HasPrefix(trimmed, "###### Directions:"):
			directions := strings.TrimSpace(strings.TrimPrefix(trimmed, "###### Directions:"))
			if currentSub != nil {
				currentSub.Directions = directions
			} else if m.Directions == "" {
				m.Directions = directions
			}
		}
	}

	return m
}

// headingTitle strips markdown hashes, emoji markers and the
// "Module N:" / "Submodule N.x:" label from a heading line.
func headingTitle(line string) string {
	s := strings.TrimLeft(line, "# ")
	s = strings.ReplaceAll(s, ":pushpin:", "")
	if idx := strings.Index(s, ":"); idx >= 0 {
		label := strings.ToLower(s[:idx])
		if strings.Contains(label, "module") {
			s = s[idx+1:]
		}
	}
	return strings.TrimSpace(s)
}
