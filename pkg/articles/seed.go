package articles

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// seedID derives a stable identifier so seeding twice is a no-op.
func seedID(name string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("embedapi/"+name))
}

// Seed loads a small set of demo authors, articles and comments. Articles
// that already exist are left untouched.
func Seed(ctx context.Context, repo Repository) error {
	epoch := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)

	authors := []*Author{
		{ID: seedID("author/ada"), Name: "Ada Lovelace", Email: "ada@example.com"},
		{ID: seedID("author/grace"), Name: "Grace Hopper", Email: "grace@example.com"},
	}

	for _, author := range authors {
		if err := repo.SaveAuthor(ctx, author); err != nil {
			return fmt.Errorf("failed to seed author %s: %w", author.Name, err)
		}
	}

	articles := []*Article{
		{
			ID:        seedID("article/engines"),
			Title:     "Notes on the Analytical Engine",
			Body:      "The engine weaves algebraic patterns just as the loom weaves flowers.",
			AuthorID:  authors[0].ID,
			Tags:      []string{"history", "computing"},
			CreatedAt: epoch,
		},
		{
			ID:        seedID("article/compilers"),
			Title:     "Why we need compilers",
			Body:      "Programmers should be writing for people, not machines.",
			AuthorID:  authors[1].ID,
			Tags:      []string{"compilers"},
			CreatedAt: epoch.Add(24 * time.Hour),
		},
		{
			ID:        seedID("article/bugs"),
			Title:     "The first actual bug",
			Body:      "A moth was found trapped between points at relay 70.",
			AuthorID:  authors[1].ID,
			Tags:      []string{"history", "debugging"},
			CreatedAt: epoch.Add(48 * time.Hour),
		},
	}

	comments := map[uuid.UUID][]string{
		articles[0].ID: {"Beautifully put.", "Poetical science indeed."},
		articles[2].ID: {"Taped into the log book!"},
	}

	for _, article := range articles {
		_, err := repo.GetArticle(ctx, article.ID)
		if err == nil {
			continue
		}

		if !errors.Is(err, ErrArticleNotFound) {
			return err
		}

		if err := repo.CreateArticle(ctx, article); err != nil {
			return fmt.Errorf("failed to seed article %q: %w", article.Title, err)
		}

		for i, body := range comments[article.ID] {
			comment := &Comment{
				ID:        seedID(fmt.Sprintf("comment/%s/%d", article.ID, i)),
				ArticleID: article.ID,
				Body:      body,
				CreatedAt: article.CreatedAt.Add(time.Duration(i+1) * time.Hour),
			}

			if err := repo.AddComment(ctx, comment); err != nil {
				return fmt.Errorf("failed to seed comment: %w", err)
			}
		}
	}

	return nil
}
