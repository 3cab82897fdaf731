// Package courses is the reference table of courses on the trip, embedded
// from catalog.yaml and looked up by exact key.
package courses

import (
	_ "embed"
	"errors"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/padraicbc/golftrip/scoring"
)

//go:embed catalog.yaml
var catalogYAML []byte

// ErrUnknownCourse is returned when a key is not in the catalog.
var ErrUnknownCourse = errors.New("unknown course")

// Catalog is an immutable, ordered set of courses.
type Catalog struct {
	courses []scoring.Course
	byKey   map[string]int
}

type catalogFile struct {
	Courses []scoring.Course `yaml:"courses"`
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decoding course catalog: %w", err)
	}

	c := &Catalog{byKey: make(map[string]int, len(f.Courses))}
	for _, course := range f.Courses {
		if err := Validate(course); err != nil {
			return nil, err
		}
		if _, dup := c.byKey[course.Key]; dup {
			return nil, fmt.Errorf("course %q listed twice", course.Key)
		}
		c.byKey[course.Key] = len(c.courses)
		c.courses = append(c.courses, course)
	}
	return c, nil
}

var loadDefault = sync.OnceValues(func() (*Catalog, error) {
	return Parse(catalogYAML)
})

// Default returns the embedded catalog. It panics if the embedded file is
// invalid, which the package tests rule out.
func Default() *Catalog {
	c, err := loadDefault()
	if err != nil {
		panic(err)
	}
	return c
}

// Lookup finds a course by its exact key.
func (c *Catalog) Lookup(key string) (scoring.Course, bool) {
	i, ok := c.byKey[key]
	if !ok {
		return scoring.Course{}, false
	}
	return clone(c.courses[i]), true
}

// Find is Lookup with ErrUnknownCourse for a missing key.
func (c *Catalog) Find(key string) (scoring.Course, error) {
	course, ok := c.Lookup(key)
	if !ok {
		return scoring.Course{}, fmt.Errorf("%w: %q", ErrUnknownCourse, key)
	}
	return course, nil
}

// All returns every course in catalog order.
func (c *Catalog) All() []scoring.Course {
	out := make([]scoring.Course, len(c.courses))
	for i, course := range c.courses {
		out[i] = clone(course)
	}
	return out
}

func clone(c scoring.Course) scoring.Course {
	c.Holes = append([]scoring.Hole(nil), c.Holes...)
	return c
}

// Validate checks the structural rules of a course: a key, 18 holes numbered
// in order, pars of 3 to 5, stroke indexes 1..18 used once each and a par
// equal to the sum of the hole pars.
func Validate(c scoring.Course) error {
	if c.Key == "" {
		return errors.New("course key is required")
	}
	if len(c.Holes) != scoring.HolesPerRound {
		return fmt.Errorf("course %q: %d holes, want %d", c.Key, len(c.Holes), scoring.HolesPerRound)
	}

	seen := make(map[int]bool, scoring.HolesPerRound)
	total := 0
	for i, h := range c.Holes {
		if h.Number != i+1 {
			return fmt.Errorf("course %q: hole %d out of order", c.Key, h.Number)
		}
		if h.Par < 3 || h.Par > 5 {
			return fmt.Errorf("course %q: hole %d has par %d", c.Key, h.Number, h.Par)
		}
		if h.StrokeIndex < 1 || h.StrokeIndex > scoring.HolesPerRound || seen[h.StrokeIndex] {
			return fmt.Errorf("course %q: hole %d has invalid stroke index %d", c.Key, h.Number, h.StrokeIndex)
		}
		seen[h.StrokeIndex] = true
		total += h.Par
	}
	if c.Par != total {
		return fmt.Errorf("course %q: par %d does not match hole total %d", c.Key, c.Par, total)
	}
	return nil
}
