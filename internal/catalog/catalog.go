// Package catalog holds the immutable site content: sections, tracks and the
// problem writeups shown in the modal. A Catalog is built once at startup and
// shared read-only by every request.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed content.yaml
var embedded []byte

// ErrNotFound is returned by lookups for an unknown id or title.
var ErrNotFound = errors.New("not found")

// Site is the layout-level metadata.
type Site struct {
	Name    string `yaml:"name" json:"name"`
	Tagline string `yaml:"tagline" json:"tagline"`
	Home    string `yaml:"home" json:"home"`
}

// Track groups problems written for one area of the city.
type Track struct {
	ID     string `yaml:"id" json:"id"`
	Name   string `yaml:"name" json:"name"`
	Author string `yaml:"author" json:"author"`
}

// Section is one hash-addressable page of the single-page layout.
type Section struct {
	ID    string `yaml:"id" json:"id"`
	Title string `yaml:"title" json:"title"`
	Track string `yaml:"track,omitempty" json:"track,omitempty"`
}

// Problem is a single writeup. ID is the stable key carried by the card that
// opens it; Title is only for display.
type Problem struct {
	ID       string `yaml:"id" json:"id"`
	Title    string `yaml:"title" json:"title"`
	Track    string `yaml:"track" json:"track"`
	Language string `yaml:"language" json:"language"`
	Problem  string `yaml:"problem" json:"problem"`
	Solution string `yaml:"solution" json:"solution"`
	Code     string `yaml:"code" json:"code"`
}

type document struct {
	Site     Site      `yaml:"site"`
	Tracks   []Track   `yaml:"tracks"`
	Sections []Section `yaml:"sections"`
	Problems []Problem `yaml:"problems"`
}

// Catalog is the validated, indexed content. It has no mutating methods.
type Catalog struct {
	site     Site
	tracks   []Track
	sections []Section
	problems []Problem

	sectionIdx map[string]int
	problemIdx map[string]int
	titleIdx   map[string]int
	trackIdx   map[string]int
}

// Default returns the catalog compiled into the binary.
func Default() (*Catalog, error) {
	return Parse(embedded)
}

// Load reads a catalog from path, or the embedded one when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML catalog document.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return New(doc.Site, doc.Tracks, doc.Sections, doc.Problems)
}

// New validates and indexes the given content.
func New(site Site, tracks []Track, sections []Section, problems []Problem) (*Catalog, error) {
	c := &Catalog{
		site:       site,
		tracks:     append([]Track(nil), tracks...),
		sections:   append([]Section(nil), sections...),
		problems:   append([]Problem(nil), problems...),
		sectionIdx: make(map[string]int, len(sections)),
		problemIdx: make(map[string]int, len(problems)),
		titleIdx:   make(map[string]int, len(problems)),
		trackIdx:   make(map[string]int, len(tracks)),
	}

	for i, t := range c.tracks {
		if t.ID == "" {
			return nil, fmt.Errorf("track %d: missing id", i)
		}
		if _, dup := c.trackIdx[t.ID]; dup {
			return nil, fmt.Errorf("duplicate track id %q", t.ID)
		}
		c.trackIdx[t.ID] = i
	}

	for i, s := range c.sections {
		if err := ValidateSectionID(s.ID); err != nil {
			return nil, fmt.Errorf("section %d: %w", i, err)
		}
		if _, dup := c.sectionIdx[s.ID]; dup {
			return nil, fmt.Errorf("duplicate section id %q", s.ID)
		}
		if s.Track != "" {
			if _, ok := c.trackIdx[s.Track]; !ok {
				return nil, fmt.Errorf("section %q: unknown track %q", s.ID, s.Track)
			}
		}
		c.sectionIdx[s.ID] = i
	}

	if c.site.Home == "" {
		return nil, errors.New("site.home is required")
	}
	if _, ok := c.sectionIdx[c.site.Home]; !ok {
		return nil, fmt.Errorf("home section %q is not defined", c.site.Home)
	}

	for i, p := range c.problems {
		if err := ValidateID(p.ID); err != nil {
			return nil, fmt.Errorf("problem %d: %w", i, err)
		}
		if p.Title == "" {
			return nil, fmt.Errorf("problem %q: missing title", p.ID)
		}
		if _, dup := c.problemIdx[p.ID]; dup {
			return nil, fmt.Errorf("duplicate problem id %q", p.ID)
		}
		if _, dup := c.titleIdx[p.Title]; dup {
			return nil, fmt.Errorf("duplicate problem title %q", p.Title)
		}
		if _, ok := c.trackIdx[p.Track]; !ok {
			return nil, fmt.Errorf("problem %q: unknown track %q", p.ID, p.Track)
		}
		c.problemIdx[p.ID] = i
		c.titleIdx[p.Title] = i
	}

	return c, nil
}

// Site returns the site metadata.
func (c *Catalog) Site() Site { return c.site }

// Home returns the id of the default section.
func (c *Catalog) Home() string { return c.site.Home }

// Sections returns all sections in display order.
func (c *Catalog) Sections() []Section {
	return append([]Section(nil), c.sections...)
}

// Tracks returns all tracks in display order.
func (c *Catalog) Tracks() []Track {
	return append([]Track(nil), c.tracks...)
}

// Problems returns all problems in display order.
func (c *Catalog) Problems() []Problem {
	return append([]Problem(nil), c.problems...)
}

// HasSection reports whether id names a known section.
func (c *Catalog) HasSection(id string) bool {
	_, ok := c.sectionIdx[id]
	return ok
}

// Section looks up a section by id.
func (c *Catalog) Section(id string) (Section, error) {
	i, ok := c.sectionIdx[id]
	if !ok {
		return Section{}, fmt.Errorf("section %q: %w", id, ErrNotFound)
	}
	return c.sections[i], nil
}

// Track looks up a track by id.
func (c *Catalog) Track(id string) (Track, error) {
	i, ok := c.trackIdx[id]
	if !ok {
		return Track{}, fmt.Errorf("track %q: %w", id, ErrNotFound)
	}
	return c.tracks[i], nil
}

// Problem looks up a problem by its stable id.
func (c *Catalog) Problem(id string) (Problem, error) {
	i, ok := c.problemIdx[id]
	if !ok {
		return Problem{}, fmt.Errorf("problem %q: %w", id, ErrNotFound)
	}
	return c.problems[i], nil
}

// ProblemByTitle looks up a problem by its exact display title.
func (c *Catalog) ProblemByTitle(title string) (Problem, error) {
	i, ok := c.titleIdx[title]
	if !ok {
		return Problem{}, fmt.Errorf("problem titled %q: %w", title, ErrNotFound)
	}
	return c.problems[i], nil
}

// ProblemsByTrack returns the problems of one track in display order.
func (c *Catalog) ProblemsByTrack(track string) []Problem {
	var out []Problem
	for _, p := range c.problems {
		if p.Track == track {
			out = append(out, p)
		}
	}
	return out
}
