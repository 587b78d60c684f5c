package articles

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ethpandaops/embedapi/pkg/observability"
	rediscfg "github.com/ethpandaops/embedapi/pkg/redis"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisStore is a Repository backed by Redis. Articles and authors are JSON
// strings, the article index is a sorted set scored by creation time and each
// article's comments are a list.
type RedisStore struct {
	client *redis.Client
	config *rediscfg.Config
}

// NewRedisStore creates a Redis-backed store
func NewRedisStore(client *redis.Client, cfg *rediscfg.Config) *RedisStore {
	return &RedisStore{
		client: client,
		config: cfg,
	}
}

func (s *RedisStore) indexKey() string {
	return s.config.PrefixKey("articles")
}

func (s *RedisStore) articleKey(id uuid.UUID) string {
	return s.config.PrefixKey("article:" + id.String())
}

func (s *RedisStore) commentsKey(id uuid.UUID) string {
	return s.config.PrefixKey("article:" + id.String() + ":comments")
}

func (s *RedisStore) authorKey(id uuid.UUID) string {
	return s.config.PrefixKey("author:" + id.String())
}

// ListArticles returns every article, newest first
func (s *RedisStore) ListArticles(ctx context.Context) (articles []*Article, err error) {
	defer record("list_articles", &err)

	ids, err := s.client.ZRevRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	articles = make([]*Article, 0, len(ids))

	for _, raw := range ids {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("corrupt article index entry %q: %w", raw, err)
		}

		article, err := s.getArticle(ctx, id)
		if err != nil {
			return nil, err
		}

		articles = append(articles, article)
	}

	return articles, nil
}

// GetArticle returns one article
func (s *RedisStore) GetArticle(ctx context.Context, id uuid.UUID) (article *Article, err error) {
	defer record("get_article", &err)

	return s.getArticle(ctx, id)
}

func (s *RedisStore) getArticle(ctx context.Context, id uuid.UUID) (*Article, error) {
	data, err := s.client.Get(ctx, s.articleKey(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: %s", ErrArticleNotFound, id)
		}

		return nil, err
	}

	var article Article
	if err := json.Unmarshal([]byte(data), &article); err != nil {
		return nil, err
	}

	author, err := s.getAuthor(ctx, article.AuthorID)

	switch {
	case err == nil:
		article.Author = author
	case !errors.Is(err, ErrAuthorNotFound):
		return nil, err
	}

	comments, err := s.getComments(ctx, id)
	if err != nil {
		return nil, err
	}

	article.Comments = comments

	return &article, nil
}

func (s *RedisStore) getComments(ctx context.Context, id uuid.UUID) ([]*Comment, error) {
	raw, err := s.client.LRange(ctx, s.commentsKey(id), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	comments := make([]*Comment, 0, len(raw))

	for _, data := range raw {
		var comment Comment
		if err := json.Unmarshal([]byte(data), &comment); err != nil {
			return nil, err
		}

		comments = append(comments, &comment)
	}

	return comments, nil
}

// CreateArticle stores an article written by an existing author
func (s *RedisStore) CreateArticle(ctx context.Context, article *Article) (err error) {
	defer record("create_article", &err)

	if err := article.Validate(); err != nil {
		return err
	}

	if _, err := s.getAuthor(ctx, article.AuthorID); err != nil {
		return err
	}

	data, err := json.Marshal(article)
	if err != nil {
		return err
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.articleKey(article.ID), data, 0)
		pipe.ZAdd(ctx, s.indexKey(), redis.Z{
			Score:  float64(article.CreatedAt.UnixNano()),
			Member: article.ID.String(),
		})

		return nil
	})

	return err
}

// AddComment appends a comment to an existing article
func (s *RedisStore) AddComment(ctx context.Context, comment *Comment) (err error) {
	defer record("add_comment", &err)

	if err := comment.Validate(); err != nil {
		return err
	}

	exists, err := s.client.Exists(ctx, s.articleKey(comment.ArticleID)).Result()
	if err != nil {
		return err
	}

	if exists == 0 {
		return fmt.Errorf("%w: %s", ErrArticleNotFound, comment.ArticleID)
	}

	data, err := json.Marshal(comment)
	if err != nil {
		return err
	}

	return s.client.RPush(ctx, s.commentsKey(comment.ArticleID), data).Err()
}

// GetAuthor returns one author
func (s *RedisStore) GetAuthor(ctx context.Context, id uuid.UUID) (author *Author, err error) {
	defer record("get_author", &err)

	return s.getAuthor(ctx, id)
}

func (s *RedisStore) getAuthor(ctx context.Context, id uuid.UUID) (*Author, error) {
	data, err := s.client.Get(ctx, s.authorKey(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: %s", ErrAuthorNotFound, id)
		}

		return nil, err
	}

	var author Author
	if err := json.Unmarshal([]byte(data), &author); err != nil {
		return nil, err
	}

	return &author, nil
}

// SaveAuthor creates or replaces an author
func (s *RedisStore) SaveAuthor(ctx context.Context, author *Author) (err error) {
	defer record("save_author", &err)

	data, err := json.Marshal(author)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, s.authorKey(author.ID), data, 0).Err()
}

func record(operation string, err *error) {
	status := "success"

	switch {
	case *err == nil:
	case errors.Is(*err, ErrArticleNotFound), errors.Is(*err, ErrAuthorNotFound):
		status = "not_found"
	default:
		status = "error"
	}

	observability.RecordStoreOperation(operation, status)
}

var _ Repository = (*RedisStore)(nil)
