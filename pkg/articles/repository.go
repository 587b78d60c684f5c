package articles

import (
	"context"

	"github.com/google/uuid"
)

// Repository stores authors, articles and comments. Articles are returned
// newest first with Author and Comments populated.
type Repository interface {
	ListArticles(ctx context.Context) ([]*Article, error)
	GetArticle(ctx context.Context, id uuid.UUID) (*Article, error)
	CreateArticle(ctx context.Context, article *Article) error
	AddComment(ctx context.Context, comment *Comment) error
	GetAuthor(ctx context.Context, id uuid.UUID) (*Author, error)
	SaveAuthor(ctx context.Context, author *Author) error
}
