package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMakeExcerptStripsMarkup(t *testing.T) {
	content := "<h2>Getting Started</h2><p>React 18 brings <strong>exciting</strong> new features.</p>"

	excerpt := MakeExcerpt(content)

	assert.NotContains(t, excerpt, "<")
	assert.NotContains(t, excerpt, ">")
	assert.Contains(t, excerpt, "Getting Started")
	assert.Contains(t, excerpt, "exciting")
}

func TestMakeExcerptTruncatesLongContent(t *testing.T) {
	content := strings.Repeat("word ", 100)

	excerpt := MakeExcerpt(content)

	assert.True(t, strings.HasSuffix(excerpt, "..."))
	// 150 characters plus the ellipsis is the ceiling
	assert.LessOrEqual(t, len([]rune(excerpt)), 153)
}

func TestMakeExcerptLeavesShortContentAlone(t *testing.T) {
	assert.Equal(t, "A short post.", MakeExcerpt("A short post."))
}

func TestMakeExcerptNeverLeaksBrackets(t *testing.T) {
	cases := []string{
		"",
		"<p>unclosed",
		"text with a lone < bracket",
		"text with a lone > bracket",
		strings.Repeat("<div>", 60) + "deep" + strings.Repeat("</div>", 60),
		"<a href=\"https://example.com\">link</a>" + strings.Repeat("x", 200),
	}
	for _, content := range cases {
		excerpt := MakeExcerpt(content)
		assert.NotContains(t, excerpt, "<", "content: %q", content)
		assert.NotContains(t, excerpt, ">", "content: %q", content)
		assert.LessOrEqual(t, len([]rune(excerpt)), 153)
	}
}

func TestMakeExcerptNeverSplitsATag(t *testing.T) {
	// A tag straddling the 150-char boundary must not leave a fragment.
	content := strings.Repeat("a", 148) + "<strong>bold</strong> tail " + strings.Repeat("b", 50)

	excerpt := MakeExcerpt(content)

	assert.NotContains(t, excerpt, "<")
	assert.NotContains(t, excerpt, "strong>")
}

func TestParseTags(t *testing.T) {
	assert.Equal(t,
		[]string{"React", "JavaScript", "Tutorial"},
		ParseTags("React, JavaScript,  Tutorial"))
}

func TestParseTagsDropsEmptyEntries(t *testing.T) {
	assert.Equal(t, []string{"Go"}, ParseTags(",Go, ,"))
	assert.Empty(t, ParseTags(""))
	assert.Empty(t, ParseTags(" , ,"))
}

func TestParseTagsPreservesOrder(t *testing.T) {
	assert.Equal(t,
		[]string{"zeta", "alpha", "mid"},
		ParseTags("zeta,alpha,mid"))
}

func TestDefaultProfileImage(t *testing.T) {
	assert.Equal(t,
		"https://api.dicebear.com/7.x/avataaars/svg?seed=gopher",
		DefaultProfileImage("gopher"))
	// usernames with reserved characters stay a valid query value
	assert.NotContains(t, DefaultProfileImage("a b&c"), " ")
}
