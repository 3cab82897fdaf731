package fines

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestLookup(t *testing.T) {
	c, ok := Lookup("  woody ")
	assert.True(t, ok)
	assert.Equal(t, "Woody", c.Name)
	assert.Equal(t, 1.0, c.Amount)

	_, ok = Lookup("Shank")
	assert.False(t, ok)
}

func TestCategoriesIsACopy(t *testing.T) {
	cats := Categories()
	cats[0].Amount = 100
	assert.Equal(t, 1.0, Categories()[0].Amount)
	assert.Len(t, cats, 11)
}

func TestTotals(t *testing.T) {
	got := Totals([]Entry{
		{PlayerID: "a", PlayerName: "Padraic", Amount: 1},
		{PlayerID: "b", PlayerName: "Mike", Amount: 5},
		{PlayerID: "a", PlayerName: "Padraic", Amount: 2},
		{PlayerID: "c", PlayerName: "Alan", Amount: 3},
	})
	want := []Total{
		{PlayerID: "b", PlayerName: "Mike", Count: 1, Amount: 5},
		{PlayerID: "c", PlayerName: "Alan", Count: 1, Amount: 3},
		{PlayerID: "a", PlayerName: "Padraic", Count: 2, Amount: 3},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Totals() mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, Totals(nil))
}
