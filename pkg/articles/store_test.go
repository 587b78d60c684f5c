package articles

import (
	"context"
	"testing"
	"time"

	"github.com/ethpandaops/embedapi/internal/testutil"
	rediscfg "github.com/ethpandaops/embedapi/pkg/redis"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStores(t *testing.T) map[string]Repository {
	t.Helper()

	_, client := testutil.NewMiniredisClient(t)

	return map[string]Repository{
		"memory": NewMemoryStore(),
		"redis":  NewRedisStore(client, &rediscfg.Config{Prefix: "test"}),
	}
}

func TestRepository_Articles(t *testing.T) {
	for name, repo := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

			author := &Author{ID: uuid.New(), Name: "Ada", Email: "ada@example.com"}
			require.NoError(t, repo.SaveAuthor(ctx, author))

			older := &Article{ID: uuid.New(), Title: "older", AuthorID: author.ID, Tags: []string{"a"}, CreatedAt: now}
			newer := &Article{ID: uuid.New(), Title: "newer", AuthorID: author.ID, CreatedAt: now.Add(time.Hour)}
			require.NoError(t, repo.CreateArticle(ctx, older))
			require.NoError(t, repo.CreateArticle(ctx, newer))

			list, err := repo.ListArticles(ctx)
			require.NoError(t, err)
			require.Len(t, list, 2)
			assert.Equal(t, "newer", list[0].Title)
			assert.Equal(t, "older", list[1].Title)

			got, err := repo.GetArticle(ctx, older.ID)
			require.NoError(t, err)
			assert.Equal(t, older.ID, got.ID)
			assert.Equal(t, []string{"a"}, got.Tags)
			assert.True(t, now.Equal(got.CreatedAt))
			require.NotNil(t, got.Author)
			assert.Equal(t, "Ada", got.Author.Name)
			assert.Empty(t, got.Comments)
		})
	}
}

func TestRepository_Comments(t *testing.T) {
	for name, repo := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			author := &Author{ID: uuid.New(), Name: "Grace"}
			require.NoError(t, repo.SaveAuthor(ctx, author))

			article := &Article{ID: uuid.New(), Title: "bugs", AuthorID: author.ID, CreatedAt: time.Now()}
			require.NoError(t, repo.CreateArticle(ctx, article))

			for _, body := range []string{"first", "second"} {
				require.NoError(t, repo.AddComment(ctx, &Comment{
					ID:        uuid.New(),
					ArticleID: article.ID,
					Body:      body,
					CreatedAt: time.Now(),
				}))
			}

			got, err := repo.GetArticle(ctx, article.ID)
			require.NoError(t, err)
			require.Len(t, got.Comments, 2)
			assert.Equal(t, "first", got.Comments[0].Body)
			assert.Equal(t, "second", got.Comments[1].Body)

			err = repo.AddComment(ctx, &Comment{ID: uuid.New(), ArticleID: uuid.New(), Body: "orphan"})
			assert.ErrorIs(t, err, ErrArticleNotFound)

			err = repo.AddComment(ctx, &Comment{ID: uuid.New(), ArticleID: article.ID})
			assert.ErrorIs(t, err, ErrCommentBodyRequired)
		})
	}
}

func TestRepository_Errors(t *testing.T) {
	for name, repo := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := repo.GetArticle(ctx, uuid.New())
			assert.ErrorIs(t, err, ErrArticleNotFound)

			_, err = repo.GetAuthor(ctx, uuid.New())
			assert.ErrorIs(t, err, ErrAuthorNotFound)

			err = repo.CreateArticle(ctx, &Article{ID: uuid.New(), Title: "x", AuthorID: uuid.New()})
			assert.ErrorIs(t, err, ErrAuthorNotFound)

			err = repo.CreateArticle(ctx, &Article{ID: uuid.New()})
			assert.ErrorIs(t, err, ErrTitleRequired)

			list, err := repo.ListArticles(ctx)
			require.NoError(t, err)
			assert.Empty(t, list)
		})
	}
}

func TestRepository_SaveAuthorReplaces(t *testing.T) {
	for name, repo := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			id := uuid.New()

			require.NoError(t, repo.SaveAuthor(ctx, &Author{ID: id, Name: "before"}))
			require.NoError(t, repo.SaveAuthor(ctx, &Author{ID: id, Name: "after"}))

			got, err := repo.GetAuthor(ctx, id)
			require.NoError(t, err)
			assert.Equal(t, "after", got.Name)
		})
	}
}

func TestRedisStore_Keys(t *testing.T) {
	mr, client := testutil.NewMiniredisClient(t)
	store := NewRedisStore(client, &rediscfg.Config{Prefix: "blog"})
	ctx := context.Background()

	author := &Author{ID: uuid.New(), Name: "Ada"}
	require.NoError(t, store.SaveAuthor(ctx, author))

	article := &Article{ID: uuid.New(), Title: "t", AuthorID: author.ID, CreatedAt: time.Now()}
	require.NoError(t, store.CreateArticle(ctx, article))

	assert.True(t, mr.Exists("blog:author:"+author.ID.String()))
	assert.True(t, mr.Exists("blog:article:"+article.ID.String()))

	members, err := mr.ZMembers("blog:articles")
	require.NoError(t, err)
	assert.Equal(t, []string{article.ID.String()}, members)
}

func TestRedisStore_CorruptIndex(t *testing.T) {
	mr, client := testutil.NewMiniredisClient(t)
	store := NewRedisStore(client, &rediscfg.Config{Prefix: "blog"})

	_, err := mr.ZAdd("blog:articles", 1, "not-a-uuid")
	require.NoError(t, err)

	_, err = store.ListArticles(context.Background())
	assert.ErrorContains(t, err, "corrupt article index entry")
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	author := &Author{ID: uuid.New(), Name: "Ada"}
	require.NoError(t, store.SaveAuthor(ctx, author))

	article := &Article{ID: uuid.New(), Title: "t", AuthorID: author.ID, Tags: []string{"a"}}
	require.NoError(t, store.CreateArticle(ctx, article))

	article.Tags[0] = "mutated"

	got, err := store.GetArticle(ctx, article.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, got.Tags)

	got.Tags[0] = "mutated"
	again, err := store.GetArticle(ctx, article.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, again.Tags)
}
