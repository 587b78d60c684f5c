package articles

import (
	"strings"

	"github.com/google/uuid"
)

// Config holds the article link configuration
type Config struct {
	// BaseURL is prepended to the links rendered for articles.
	BaseURL string `yaml:"baseURL" default:"http://localhost:8080"`
}

// LinkBuilder renders absolute API links
type LinkBuilder struct {
	base string
}

// NewLinkBuilder creates a link builder rooted at baseURL
func NewLinkBuilder(baseURL string) *LinkBuilder {
	return &LinkBuilder{base: strings.TrimRight(baseURL, "/")}
}

// Article returns the link to an article
func (l *LinkBuilder) Article(id uuid.UUID) string {
	return l.base + "/api/v1/articles/" + id.String()
}

// Author returns the link to an author
func (l *LinkBuilder) Author(id uuid.UUID) string {
	return l.base + "/api/v1/authors/" + id.String()
}
