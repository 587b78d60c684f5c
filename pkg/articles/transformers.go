package articles

import (
	"fmt"
	"time"

	"github.com/ethpandaops/embedapi/pkg/fractal"
	"github.com/ethpandaops/embedapi/pkg/transformer"
)

const (
	includeAuthor   = "author"
	includeComments = "comments"
)

// ArticleTransformer renders articles. The author and comments are available
// as embeds.
type ArticleTransformer struct {
	links *LinkBuilder
}

// NewArticleTransformer creates an article transformer. links may be nil, in
// which case no links are rendered.
func NewArticleTransformer(links *LinkBuilder) *ArticleTransformer {
	return &ArticleTransformer{links: links}
}

// Transform implements fractal.Transformer
func (t *ArticleTransformer) Transform(data any) (map[string]any, error) {
	article, err := asArticle(data)
	if err != nil {
		return nil, err
	}

	tags := article.Tags
	if tags == nil {
		tags = []string{}
	}

	fields := map[string]any{
		"id":         article.ID.String(),
		"title":      article.Title,
		"body":       article.Body,
		"tags":       tags,
		"created_at": article.CreatedAt.UTC().Format(time.RFC3339),
	}

	if t.links != nil {
		fields["links"] = map[string]any{
			"self":   t.links.Article(article.ID),
			"author": t.links.Author(article.AuthorID),
		}
	}

	return fields, nil
}

// AvailableIncludes implements fractal.Includer
func (t *ArticleTransformer) AvailableIncludes() []string {
	return []string{includeAuthor, includeComments}
}

// DefaultIncludes implements fractal.Includer
func (t *ArticleTransformer) DefaultIncludes() []string {
	return nil
}

// Include implements fractal.Includer
func (t *ArticleTransformer) Include(name string, data any) (fractal.Resource, error) {
	article, err := asArticle(data)
	if err != nil {
		return nil, err
	}

	switch name {
	case includeAuthor:
		if article.Author == nil {
			return fractal.Null(), nil
		}

		return fractal.NewItem(article.Author, &AuthorTransformer{}), nil
	case includeComments:
		return fractal.NewCollection(transformer.Items(article.Comments), NewCommentTransformer()), nil
	default:
		return nil, fmt.Errorf("unknown include %q", name)
	}
}

// AuthorTransformer renders authors. Email addresses are never rendered.
type AuthorTransformer struct{}

// Transform implements fractal.Transformer
func (*AuthorTransformer) Transform(data any) (map[string]any, error) {
	var author *Author

	switch v := data.(type) {
	case *Author:
		author = v
	case Author:
		author = &v
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnexpectedType, data)
	}

	if author == nil {
		return nil, fmt.Errorf("%w: nil author", ErrUnexpectedType)
	}

	return map[string]any{
		"id":   author.ID.String(),
		"name": author.Name,
	}, nil
}

// CommentTransformer renders comments
type CommentTransformer struct{}

// NewCommentTransformer creates a comment transformer
func NewCommentTransformer() *CommentTransformer {
	return &CommentTransformer{}
}

// Transform implements fractal.Transformer
func (*CommentTransformer) Transform(data any) (map[string]any, error) {
	var comment *Comment

	switch v := data.(type) {
	case *Comment:
		comment = v
	case Comment:
		comment = &v
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnexpectedType, data)
	}

	if comment == nil {
		return nil, fmt.Errorf("%w: nil comment", ErrUnexpectedType)
	}

	return map[string]any{
		"id":         comment.ID.String(),
		"article_id": comment.ArticleID.String(),
		"body":       comment.Body,
		"created_at": comment.CreatedAt.UTC().Format(time.RFC3339),
	}, nil
}

func asArticle(data any) (*Article, error) {
	switch v := data.(type) {
	case *Article:
		if v == nil {
			return nil, fmt.Errorf("%w: nil article", ErrUnexpectedType)
		}

		return v, nil
	case Article:
		return &v, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnexpectedType, data)
	}
}
