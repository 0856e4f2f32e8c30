package config

import (
	"fmt"
	"strings"
	"sync"
)

// Depth is the learner's cooking skill level.
type Depth string

const (
	DepthBeginner     Depth = "Beginner"
	DepthIntermediate Depth = "Intermediate"
	DepthExpert       Depth = "Expert"
)

// Style is the preferred cuisine region.
type Style string

const (
	StyleAllWorld      Style = "All World"
	StyleAsian         Style = "Asian"
	StyleEuropean      Style = "European"
	StyleAmerican      Style = "American"
	StyleSouthAmerican Style = "South-American"
	StyleAfrican       Style = "African"
)

// TimeBudget is how long the learner wants to spend cooking.
type TimeBudget string

const (
	TimeShort  TimeBudget = "Short"
	TimeMedium TimeBudget = "Medium"
	TimeLong   TimeBudget = "Long"
)

// Mode controls whether lessons include generated images.
type Mode string

const (
	ModeImageContaining Mode = "Image-Containing"
	ModeTextOnly        Mode = "Text-Only"
)

// Language is the response language.
type Language string

const (
	LanguageEnglish Language = "English"
	LanguageChinese Language = "Chinese"
	LanguageTurkish Language = "Turkish"
	LanguageGerman  Language = "German"
)

// Depths, Styles, TimeBudgets, Modes and Languages list the legal values
// for each field, in display order.
var (
	Depths      = []Depth{DepthBeginner, DepthIntermediate, DepthExpert}
	Styles      = []Style{StyleAllWorld, StyleAsian, StyleEuropean, StyleAmerican, StyleSouthAmerican, StyleAfrican}
	TimeBudgets = []TimeBudget{TimeShort, TimeMedium, TimeLong}
	Modes       = []Mode{ModeImageContaining, ModeTextOnly}
	Languages   = []Language{LanguageEnglish, LanguageChinese, LanguageTurkish, LanguageGerman}
)

// Config is the five-field user preference tuple that shapes every
// generation request. The zero value is not valid; use Default.
type Config struct {
	Depth    Depth
	Style    Style
	Time     TimeBudget
	Mode     Mode
	Language Language
}

// Default returns the configuration used before the user changes anything.
func Default() Config {
	return Config{
		Depth:    DepthBeginner,
		Style:    StyleAllWorld,
		Time:     TimeMedium,
		Mode:     ModeTextOnly,
		Language: LanguageEnglish,
	}
}

// Validate checks every field against its enumeration.
func (c Config) Validate() error {
	if !contains(Depths, c.Depth) {
		return fmt.Errorf("invalid depth: %q", c.Depth)
	}
	if !contains(Styles, c.Style) {
		return fmt.Errorf("invalid style: %q", c.Style)
	}
	if !contains(TimeBudgets, c.Time) {
		return fmt.Errorf("invalid time budget: %q", c.Time)
	}
	if !contains(Modes, c.Mode) {
		return fmt.Errorf("invalid mode: %q", c.Mode)
	}
	if !contains(Languages, c.Language) {
		return fmt.Errorf("invalid language: %q", c.Language)
	}
	return nil
}

// Fragment renders the configuration as the natural-language instruction
// block appended to every generation prompt.
func (c Config) Fragment() string {
	style := string(c.Style)
	if c.Style == StyleAllWorld {
		style = "everywhere so it does not matter"
	}
	return fmt.Sprintf(
		"Here is the user configuration: Make sure that the content you generate is suitable for the following configs:\n"+
			"The user is %s at cooking, the user prefers a dish from %s, the user wants to spend a %s time on cooking, and your answer MUST be in %s language.",
		c.Depth, style, c.Time, c.Language)
}

// CanonicalKey returns a deterministic, unambiguous serialization of the
// tuple for use in cache keys. Fields are joined with an ASCII unit
// separator so values containing spaces or hyphens cannot collide.
func (c Config) CanonicalKey() string {
	return strings.Join([]string{
		string(c.Depth),
		string(c.Style),
		string(c.Time),
		string(c.Mode),
		string(c.Language),
	}, "\x1f")
}

// State tracks the active configuration and reports changes so prompt
// consumers know when to re-bind. Safe for concurrent use: the settings
// screen can update it while an in-flight turn reads it.
type State struct {
	mu      sync.RWMutex
	current Config
}

// NewState creates a State holding the default configuration.
func NewState() *State {
	return &State{current: Default()}
}

// Current returns the active configuration.
func (s *State) Current() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Update replaces the configuration if it differs from the current one.
// Returns true when a change was applied.
func (s *State) Update(next Config) (bool, error) {
	if err := next.Validate(); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if next == s.current {
		return false, nil
	}
	s.current = next
	return true, nil
}

func contains[T comparable](list []T, v T) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
