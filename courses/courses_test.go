package courses

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padraicbc/golftrip/scoring"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()

	tests := []struct {
		key    string
		par    int
		rating float64
		slope  int
		hole1  scoring.Hole
	}{
		{"morgado", 72, 72.7, 129, scoring.Hole{Number: 1, Par: 4, StrokeIndex: 13}},
		{"amendoeira", 72, 74.5, 142, scoring.Hole{Number: 1, Par: 4, StrokeIndex: 9}},
		{"quintadolago", 71, 73.7, 139, scoring.Hole{Number: 1, Par: 4, StrokeIndex: 6}},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			course, ok := c.Lookup(tt.key)
			require.True(t, ok)
			assert.Equal(t, tt.par, course.Par)
			assert.Equal(t, tt.rating, course.CourseRating)
			assert.Equal(t, tt.slope, course.SlopeRating)
			require.Len(t, course.Holes, 18)
			assert.Equal(t, tt.hole1, course.Holes[0])
			assert.NoError(t, Validate(course))
		})
	}
	assert.Len(t, c.All(), 3)
}

func TestLookupIsExact(t *testing.T) {
	c := Default()

	_, ok := c.Lookup("quinta")
	assert.False(t, ok)
	_, ok = c.Lookup("Morgado")
	assert.False(t, ok)

	_, err := c.Find("nope")
	assert.ErrorIs(t, err, ErrUnknownCourse)
}

func TestLookupReturnsCopy(t *testing.T) {
	c := Default()

	course, _ := c.Lookup("morgado")
	course.Holes[0].Par = 9

	again, _ := c.Lookup("morgado")
	assert.Equal(t, 4, again.Holes[0].Par)
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"not yaml", "courses: [::"},
		{"too few holes", "courses:\n  - key: x\n    par: 4\n    holes:\n      - {number: 1, par: 4, hcp: 1}\n"},
		{"missing key", "courses:\n  - name: x\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestValidate(t *testing.T) {
	base, _ := Default().Lookup("amendoeira")

	dupIndex := base
	dupIndex.Holes = append([]scoring.Hole(nil), base.Holes...)
	dupIndex.Holes[1].StrokeIndex = dupIndex.Holes[0].StrokeIndex
	assert.Error(t, Validate(dupIndex))

	wrongPar := base
	wrongPar.Par = 73
	assert.Error(t, Validate(wrongPar))

	badHolePar := base
	badHolePar.Holes = append([]scoring.Hole(nil), base.Holes...)
	badHolePar.Holes[0].Par = 6
	assert.Error(t, Validate(badHolePar))
}
