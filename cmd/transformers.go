package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/ethpandaops/embedapi/pkg/articles"
	"github.com/ethpandaops/embedapi/pkg/server"
	"github.com/ethpandaops/embedapi/pkg/transformer"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra flags are typically global
var (
	previewEmbeds string
)

//nolint:gochecknoglobals // Cobra commands are typically global
var transformersCmd = &cobra.Command{
	Use:   "transformers",
	Short: "List the registered transformation rules",
	Long:  `Lists every registered type key with the kind of rule that produces its transformer.`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		// Keep the output readable unless a level was asked for
		if !cmd.Flags().Changed("log-level") {
			logger.SetLevel(logrus.ErrorLevel)
		}
		return nil
	},
	RunE: runTransformersList,
}

//nolint:gochecknoglobals // Cobra commands are typically global
var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Render the demo articles with the configured transformers",
	Long:  `Seeds an in-memory store and prints the article collection as the API would return it.`,
	RunE:  runTransformersPreview,
}

func init() {
	rootCmd.AddCommand(transformersCmd)
	transformersCmd.AddCommand(previewCmd)
	previewCmd.Flags().StringVar(&previewEmbeds, "embeds", "", "comma separated embeds to include, e.g. author,comments")
}

// loadOptionalConfig reads the config file, falling back to defaults when the
// file does not exist.
func loadOptionalConfig(path string) (*server.Config, error) {
	config, err := server.LoadConfig(path)
	if errors.Is(err, os.ErrNotExist) {
		return server.DefaultConfig()
	}

	return config, err
}

func runTransformersList(cmd *cobra.Command, _ []string) error {
	// Silence usage on error
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	config, err := loadOptionalConfig(cfgFile)
	if err != nil {
		return err
	}

	registry, err := server.NewRegistry(config, articles.NewMemoryStore(), logger)
	if err != nil {
		return err
	}

	printTransformers(cmd.OutOrStdout(), registry)

	return nil
}

func runTransformersPreview(cmd *cobra.Command, _ []string) error {
	// Silence usage on error
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	config, err := loadOptionalConfig(cfgFile)
	if err != nil {
		return err
	}

	repo := articles.NewMemoryStore()
	if err := articles.Seed(cmd.Context(), repo); err != nil {
		return err
	}

	registry, err := server.NewRegistry(config, repo, logger)
	if err != nil {
		return err
	}

	list, err := repo.ListArticles(cmd.Context())
	if err != nil {
		return err
	}

	req := transformer.RequestFunc(func(key string) string {
		if key == config.Transformer.EmbedsKey {
			return previewEmbeds
		}
		return ""
	})

	out, err := registry.TransformCollection(transformer.Items(list), req)
	if err != nil {
		return fmt.Errorf("failed to transform articles: %w", err)
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")

	return encoder.Encode(out)
}

func printTransformers(out io.Writer, registry *transformer.Registry) {
	rules := registry.Transformers()

	keys := make([]string, 0, len(rules))
	for key := range rules {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "KEY\tKIND\tTRANSFORMER")

	for _, key := range keys {
		rule := rules[key]
		if rule == nil {
			_, _ = fmt.Fprintf(w, "%s\t-\t-\n", key)
			continue
		}

		name := rule.Name()
		if name == "" {
			name = "-"
		}

		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", key, rule.Kind(), name)
	}

	_ = w.Flush()
}
