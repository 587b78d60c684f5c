package handlers

import (
	"errors"
	"time"

	"github.com/ethpandaops/embedapi/pkg/articles"
	"github.com/ethpandaops/embedapi/pkg/transformer"
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// CreateArticleRequest is the body of POST /articles
type CreateArticleRequest struct {
	Title    string   `json:"title"`
	Body     string   `json:"body"`
	AuthorID string   `json:"author_id"`
	Tags     []string `json:"tags"`
}

// CreateCommentRequest is the body of POST /articles/:id/comments
type CreateCommentRequest struct {
	Body string `json:"body"`
}

// ListArticles handles GET /api/v1/articles
func (s *Server) ListArticles(c fiber.Ctx) error {
	list, err := s.repo.ListArticles(c.Context())
	if err != nil {
		return err
	}

	return s.respondCollection(c, transformer.Items(list))
}

// GetArticle handles GET /api/v1/articles/:id
func (s *Server) GetArticle(c fiber.Ctx) error {
	id, err := parseID(c.Params("id"))
	if err != nil {
		return err
	}

	article, err := s.repo.GetArticle(c.Context(), id)
	if err != nil {
		return mapStoreError(err)
	}

	return s.respond(c, fiber.StatusOK, article)
}

// CreateArticle handles POST /api/v1/articles
func (s *Server) CreateArticle(c fiber.Ctx) error {
	var req CreateArticleRequest
	if err := c.Bind().Body(&req); err != nil {
		return ErrInvalidBody
	}

	authorID, err := parseID(req.AuthorID)
	if err != nil {
		return err
	}

	article := &articles.Article{
		ID:        uuid.New(),
		Title:     req.Title,
		Body:      req.Body,
		AuthorID:  authorID,
		Tags:      req.Tags,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.CreateArticle(c.Context(), article); err != nil {
		return mapStoreError(err)
	}

	created, err := s.repo.GetArticle(c.Context(), article.ID)
	if err != nil {
		return mapStoreError(err)
	}

	s.log.WithField("article_id", article.ID).Info("Created article")

	return s.respond(c, fiber.StatusCreated, created)
}

// CreateComment handles POST /api/v1/articles/:id/comments
func (s *Server) CreateComment(c fiber.Ctx) error {
	articleID, err := parseID(c.Params("id"))
	if err != nil {
		return err
	}

	var req CreateCommentRequest
	if err := c.Bind().Body(&req); err != nil {
		return ErrInvalidBody
	}

	comment := &articles.Comment{
		ID:        uuid.New(),
		ArticleID: articleID,
		Body:      req.Body,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.AddComment(c.Context(), comment); err != nil {
		return mapStoreError(err)
	}

	return s.respond(c, fiber.StatusCreated, comment)
}

func parseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, ErrInvalidID
	}

	return id, nil
}

func mapStoreError(err error) error {
	switch {
	case errors.Is(err, articles.ErrArticleNotFound):
		return ErrArticleNotFound
	case errors.Is(err, articles.ErrAuthorNotFound):
		return ErrAuthorNotFound
	case errors.Is(err, articles.ErrTitleRequired), errors.Is(err, articles.ErrCommentBodyRequired):
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	default:
		return err
	}
}
