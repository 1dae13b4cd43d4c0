package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerms(t *testing.T) {
	assert.Equal(t, []string{"django", "go"}, Terms("Django, GO django!"))
	assert.Empty(t, Terms("  ...  "))
	assert.Equal(t, []string{"école"}, Terms("ÉCOLE école"))
}

func TestRank(t *testing.T) {
	doc := Document{Title: "Learning Go", Body: "Go has goroutines and channels."}

	assert.InDelta(t, 1.0, Rank([]string{"go"}, doc), 1e-9)
	assert.InDelta(t, 0.4, Rank([]string{"channels"}, doc), 1e-9)
	assert.InDelta(t, 0.7, Rank([]string{"learning", "channels"}, doc), 1e-9)
	assert.InDelta(t, 0.5, Rank([]string{"learning", "python"}, doc), 1e-9)
	assert.Zero(t, Rank([]string{"python"}, doc))
	assert.Zero(t, Rank(nil, doc))
}

func TestRankAll(t *testing.T) {
	docs := []Document{
		{Title: "Cooking pasta", Body: "boil water"},
		{Title: "Music", Body: "django reinhardt played jazz"},
		{Title: "Django tutorial", Body: "views and models"},
		{Title: "Misc", Body: "nothing here about music"},
	}

	hits := RankAll("django", docs, 0.3)
	require.Len(t, hits, 2)
	assert.Equal(t, 2, hits[0].Index)
	assert.InDelta(t, 1.0, hits[0].Rank, 1e-9)
	assert.Equal(t, 1, hits[1].Index)
	assert.InDelta(t, 0.4, hits[1].Rank, 1e-9)

	// Music 只在正文命中两个词：(0.4+0.4)/3 低于阈值
	hits = RankAll("django jazz water", docs, 0.3)
	require.Len(t, hits, 1)
	assert.Equal(t, 2, hits[0].Index)

	assert.Nil(t, RankAll("", docs, 0.3))
}
