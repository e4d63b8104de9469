package search

import (
	"testing"

	"github.com/FocuswithJustin/BibleArchive/core/bible"
)

// fixtureVerses is a tiny corpus in canonical order.
var fixtureVerses = []struct {
	book, chapter, verse int
	text                 string
}{
	{1, 1, 1, "In the beginning God created the heaven and the earth."},
	{1, 1, 2, "And on the seventh day God ended his work."},
	{19, 1, 1, "Blessed is the man that walketh not in the counsel of the ungodly, who shall praise."},
	{19, 119, 1, "Blessed are the undefiled in the way, who walk in the law of the LORD."},
	{19, 119, 2, "Blessed are they that keep his testimonies, and that seek him with the whole heart."},
	{19, 119, 3, "I will praise thee with uprightness of heart."},
	{19, 119, 4, "Seven times a day do I praise thee because of thy righteous judgments."},
	{19, 119, 5, "Let my soul live, and it shall praise thee; and let thy judgments help me."},
	{19, 119, 6, "Praise ye the LORD."},
	{40, 1, 1, "Until seventy times seven."},
	{66, 1, 1, "John to the seven churches, and from the seven Spirits."},
	{66, 1, 2, "Seven stars; seven candlesticks; seven angels."},
	{66, 1, 3, "And the seventeen elders fell down."},
	{66, 15, 1, "Seven angels having the seven last plagues."},
}

func fixtureCorpus(t *testing.T) *bible.Corpus {
	t.Helper()
	c := bible.NewCorpus("Fixture")
	for _, v := range fixtureVerses {
		if err := c.SetVerse(v.book, v.chapter, v.verse, v.text); err != nil {
			t.Fatalf("SetVerse(%d, %d, %d) error = %v", v.book, v.chapter, v.verse, err)
		}
	}
	return c
}

func intPtr(n int) *int {
	return &n
}
