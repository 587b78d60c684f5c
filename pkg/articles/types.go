// Package articles is the content domain served by the API: authors, the
// articles they write and the comments left on them, together with the
// transformers that render them.
package articles

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	// KeyArticle is the registration key articles report for themselves
	KeyArticle = "article"
	// KeyAuthor is the registration key authors report for themselves
	KeyAuthor = "author"
	// KeyComment is the runtime type name comments are registered under
	KeyComment = "articles.Comment"
)

var (
	// ErrArticleNotFound is returned when an article does not exist
	ErrArticleNotFound = errors.New("article not found")
	// ErrAuthorNotFound is returned when an author does not exist
	ErrAuthorNotFound = errors.New("author not found")
	// ErrTitleRequired is returned when an article has no title
	ErrTitleRequired = errors.New("article title is required")
	// ErrCommentBodyRequired is returned when a comment has no body
	ErrCommentBodyRequired = errors.New("comment body is required")
	// ErrUnexpectedType is returned when a transformer receives a value it cannot render
	ErrUnexpectedType = errors.New("unexpected value type")
)

// Author writes articles
type Author struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// TransformKey implements transformer.Keyer
func (Author) TransformKey() string { return KeyAuthor }

// Article is a published piece of content. Author and Comments are filled in
// by the repository when the article is loaded.
type Article struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	AuthorID  uuid.UUID `json:"author_id"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`

	Author   *Author    `json:"-"`
	Comments []*Comment `json:"-"`
}

// TransformKey implements transformer.Keyer
func (Article) TransformKey() string { return KeyArticle }

// Validate checks the fields a caller must supply
func (a *Article) Validate() error {
	if a.Title == "" {
		return ErrTitleRequired
	}

	return nil
}

// Comment is left by a reader on an article
type Comment struct {
	ID        uuid.UUID `json:"id"`
	ArticleID uuid.UUID `json:"article_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate checks the fields a caller must supply
func (c *Comment) Validate() error {
	if c.Body == "" {
		return ErrCommentBodyRequired
	}

	return nil
}
