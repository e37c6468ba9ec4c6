package services

import (
	"strings"

	"github.com/rpupo63/bloghub-backend/models"
)

// MatchesCategory reports whether a post passes the category filter.
// The "All" sentinel (or an empty selection) passes everything.
func MatchesCategory(post *models.BlogPost, category string) bool {
	if category == "" || category == models.CategoryAll {
		return true
	}
	return post.Category == category
}

// MatchesSearch reports whether a post matches a search term:
// case-insensitive substring on title, excerpt, or any tag. An empty term
// matches everything.
func MatchesSearch(post *models.BlogPost, term string) bool {
	if term == "" {
		return true
	}
	needle := strings.ToLower(term)
	if strings.Contains(strings.ToLower(post.Title), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(post.Excerpt), needle) {
		return true
	}
	for _, tag := range post.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

// FilterPosts applies the category and search filters (logical AND),
// preserving the order of the source list.
func FilterPosts(posts []*models.BlogPost, category, term string) []*models.BlogPost {
	filtered := make([]*models.BlogPost, 0, len(posts))
	for _, post := range posts {
		if MatchesCategory(post, category) && MatchesSearch(post, term) {
			filtered = append(filtered, post)
		}
	}
	return filtered
}
