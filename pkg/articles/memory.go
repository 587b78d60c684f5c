package articles

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is a Repository held in process memory
type MemoryStore struct {
	mu       sync.RWMutex
	articles map[uuid.UUID]Article
	authors  map[uuid.UUID]Author
	comments map[uuid.UUID][]Comment
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		articles: make(map[uuid.UUID]Article),
		authors:  make(map[uuid.UUID]Author),
		comments: make(map[uuid.UUID][]Comment),
	}
}

// ListArticles returns every article, newest first
func (m *MemoryStore) ListArticles(_ context.Context) ([]*Article, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Article, 0, len(m.articles))
	for id := range m.articles {
		out = append(out, m.hydrate(id))
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return out, nil
}

// GetArticle returns one article
func (m *MemoryStore) GetArticle(_ context.Context, id uuid.UUID) (*Article, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if _, ok := m.articles[id]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrArticleNotFound, id)
	}

	return m.hydrate(id), nil
}

// CreateArticle stores an article written by an existing author
func (m *MemoryStore) CreateArticle(_ context.Context, article *Article) error {
	if err := article.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.authors[article.AuthorID]; !ok {
		return fmt.Errorf("%w: %s", ErrAuthorNotFound, article.AuthorID)
	}

	stored := *article
	stored.Tags = append([]string(nil), article.Tags...)
	stored.Author = nil
	stored.Comments = nil
	m.articles[article.ID] = stored

	return nil
}

// AddComment appends a comment to an existing article
func (m *MemoryStore) AddComment(_ context.Context, comment *Comment) error {
	if err := comment.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.articles[comment.ArticleID]; !ok {
		return fmt.Errorf("%w: %s", ErrArticleNotFound, comment.ArticleID)
	}

	m.comments[comment.ArticleID] = append(m.comments[comment.ArticleID], *comment)

	return nil
}

// GetAuthor returns one author
func (m *MemoryStore) GetAuthor(_ context.Context, id uuid.UUID) (*Author, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	author, ok := m.authors[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAuthorNotFound, id)
	}

	return &author, nil
}

// SaveAuthor creates or replaces an author
func (m *MemoryStore) SaveAuthor(_ context.Context, author *Author) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.authors[author.ID] = *author

	return nil
}

// hydrate must be called with the lock held.
func (m *MemoryStore) hydrate(id uuid.UUID) *Article {
	article := m.articles[id]
	article.Tags = append([]string(nil), article.Tags...)

	if author, ok := m.authors[article.AuthorID]; ok {
		article.Author = &author
	}

	comments := m.comments[id]
	article.Comments = make([]*Comment, len(comments))

	for i := range comments {
		c := comments[i]
		article.Comments[i] = &c
	}

	return &article
}

var _ Repository = (*MemoryStore)(nil)
