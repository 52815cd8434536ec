// Package tenses holds the static English tense reference: structure
// formulas and example sentences for every tense, voice and form.
package tenses

import (
	_ "embed"
	"fmt"
	"slices"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed tenses.yaml
var rawTenses []byte

// Form is the polarity/mood of a sentence.
type Form string

const (
	FormAffirmative   Form = "Affirmative"
	FormNegative      Form = "Negative"
	FormInterrogative Form = "Interrogative"
)

// Voice selects who performs the action.
type Voice string

const (
	VoiceActive  Voice = "active"
	VoicePassive Voice = "passive"
)

// Entry is one structure/example pair for a form.
type Entry struct {
	Form      Form   `yaml:"form"`
	Structure string `yaml:"structure"`
	Example   string `yaml:"example"`
}

// Template is the reference card for a single tense.
type Template struct {
	ID      string  `yaml:"id"`
	Title   string  `yaml:"title"`
	Active  []Entry `yaml:"active"`
	Passive []Entry `yaml:"passive"`
}

// clone copies the entry slices so callers cannot edit the loaded table.
func (t Template) clone() Template {
	t.Active = slices.Clone(t.Active)
	t.Passive = slices.Clone(t.Passive)
	return t
}

// Entries returns the entries for the given voice.
func (t Template) Entries(v Voice) []Entry {
	if v == VoicePassive {
		return t.Passive
	}
	return t.Active
}

// Lookup finds the entry for a voice and form.
func (t Template) Lookup(v Voice, f Form) (Entry, bool) {
	for _, e := range t.Entries(v) {
		if e.Form == f {
			return e, true
		}
	}
	return Entry{}, false
}

// UnknownTitle is returned by Title for ids that are not in the reference.
const UnknownTitle = "Unknown Tense"

var (
	loadOnce  sync.Once
	templates []Template
	byID      map[string]int
	loadErr   error
)

type document struct {
	Tenses []Template `yaml:"tenses"`
}

func load() {
	var doc document
	if err := yaml.Unmarshal(rawTenses, &doc); err != nil {
		loadErr = fmt.Errorf("parse tense reference: %w", err)
		return
	}
	templates = doc.Tenses
	byID = make(map[string]int, len(templates))
	for i, t := range templates {
		byID[t.ID] = i
	}
}

func ensureLoaded() {
	loadOnce.Do(load)
	if loadErr != nil {
		panic(loadErr)
	}
}

// All returns every tense in reference order.
func All() []Template {
	ensureLoaded()
	out := make([]Template, len(templates))
	for i, t := range templates {
		out[i] = t.clone()
	}
	return out
}

// Get returns the tense with the given id.
func Get(id string) (Template, bool) {
	ensureLoaded()
	i, ok := byID[id]
	if !ok {
		return Template{}, false
	}
	return templates[i].clone(), true
}

// Title returns the display title for a tense id.
func Title(id string) string {
	t, ok := Get(id)
	if !ok {
		return UnknownTitle
	}
	return t.Title
}

// ID builds a tense id from a time and an aspect, e.g. ("past",
// "perfect continuous") -> "past-perfect-continuous".
func ID(time, aspect string) string {
	if time == "" || aspect == "" {
		return ""
	}
	return strings.ToLower(time) + "-" + strings.ReplaceAll(strings.ToLower(strings.TrimSpace(aspect)), " ", "-")
}

// Times lists the tense time categories.
func Times() []string {
	return []string{"present", "past", "future"}
}

// Aspects lists the tense aspects.
func Aspects() []string {
	return []string{"simple", "continuous", "perfect", "perfect-continuous"}
}

// ByTime returns the tenses of one time category.
func ByTime(time string) []Template {
	var out []Template
	for _, t := range All() {
		if strings.HasPrefix(t.ID, time+"-") {
			out = append(out, t)
		}
	}
	return out
}
