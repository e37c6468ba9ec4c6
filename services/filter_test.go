package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"

	"github.com/rpupo63/bloghub-backend/models"
)

func post(title, excerpt, category string, tags ...string) *models.BlogPost {
	return &models.BlogPost{
		Title:    title,
		Excerpt:  excerpt,
		Category: category,
		Tags:     datatypes.JSONSlice[string](tags),
	}
}

func TestFilterPostsByCategory(t *testing.T) {
	posts := []*models.BlogPost{
		post("React 18", "new features", "Technology"),
		post("Minimalism", "less is more", "Lifestyle"),
		post("AI in Healthcare", "patient care", "Technology"),
		post("Nomad Diaries", "six months abroad", "Travel"),
	}

	filtered := FilterPosts(posts, "Technology", "")

	assert.Len(t, filtered, 2)
	assert.Equal(t, "React 18", filtered[0].Title)
	assert.Equal(t, "AI in Healthcare", filtered[1].Title)
}

func TestFilterPostsAllCategoryPassesEverything(t *testing.T) {
	posts := []*models.BlogPost{
		post("a", "", "Technology"),
		post("b", "", "Travel"),
	}

	assert.Len(t, FilterPosts(posts, models.CategoryAll, ""), 2)
	assert.Len(t, FilterPosts(posts, "", ""), 2)
}

func TestMatchesSearchTitleExcerptAndTags(t *testing.T) {
	p := post("Remote Work Guide", "Insights from Thailand and Bali", "Travel", "Digital Nomad", "Asia")

	assert.True(t, MatchesSearch(p, "remote"))
	assert.True(t, MatchesSearch(p, "THAILAND"))
	assert.True(t, MatchesSearch(p, "nomad"))
	assert.True(t, MatchesSearch(p, ""))
	assert.False(t, MatchesSearch(p, "cooking"))
}

func TestFilterPostsCombinesCategoryAndSearch(t *testing.T) {
	posts := []*models.BlogPost{
		post("Go Concurrency", "goroutines explained", "Technology", "Go"),
		post("Go Slow", "travel slowly", "Travel", "Go"),
	}

	// The tag matches both; the category keeps only one.
	filtered := FilterPosts(posts, "Technology", "go")

	assert.Len(t, filtered, 1)
	assert.Equal(t, "Go Concurrency", filtered[0].Title)
}

func TestFilterPostsPreservesSourceOrder(t *testing.T) {
	posts := []*models.BlogPost{
		post("third", "", "Technology"),
		post("first", "", "Technology"),
		post("second", "", "Technology"),
	}

	filtered := FilterPosts(posts, "Technology", "")

	assert.Equal(t, "third", filtered[0].Title)
	assert.Equal(t, "first", filtered[1].Title)
	assert.Equal(t, "second", filtered[2].Title)
}
