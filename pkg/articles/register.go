package articles

import (
	"github.com/ethpandaops/embedapi/pkg/container"
	"github.com/ethpandaops/embedapi/pkg/fractal"
	"github.com/ethpandaops/embedapi/pkg/transformer"
)

// Register registers the article, author and comment transformation rules
func Register(reg *transformer.Registry) {
	reg.
		Register(KeyArticle, transformer.FactoryRule(func(c *container.Container) (fractal.Transformer, error) {
			links, err := container.Make[*LinkBuilder](c)
			if err != nil {
				return nil, err
			}

			return NewArticleTransformer(links), nil
		})).
		Register(KeyAuthor, transformer.TypeRule[AuthorTransformer]()).
		Register(KeyComment, transformer.ConstructorRule("*articles.CommentTransformer", func() fractal.Transformer {
			return NewCommentTransformer()
		}))
}

// Provide binds the services article transformers resolve from the container
func Provide(c *container.Container, repo Repository, cfg *Config) {
	container.Instance(c, repo)
	container.Instance(c, NewLinkBuilder(cfg.BaseURL))
}
