package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/archispec/pkg/config"
	"github.com/matzehuels/archispec/pkg/io"
)

// publishCommand creates the publish command.
func (c *CLI) publishCommand() *cobra.Command {
	var mongoURI string

	cmd := &cobra.Command{
		Use:   "publish <model.specif.json>...",
		Short: "Publish SpecIF models to the model store",
		Long: `Publish SpecIF models to the configured model store (MongoDB).

Models are keyed by their id; publishing a model again replaces it.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if mongoURI != "" {
				cfg.Store.Backend = config.StoreMongo
				cfg.Store.MongoURI = mongoURI
			}
			if cfg.Store.Backend != config.StoreMongo {
				return fmt.Errorf("publish needs a persistent store: set store.backend = %q or pass --mongo-uri", config.StoreMongo)
			}
			return c.runPublish(cmd.Context(), cfg.Store, args)
		},
	}

	cmd.Flags().StringVar(&mongoURI, "mongo-uri", "", "MongoDB connection string (overrides config)")

	return cmd
}

func (c *CLI) runPublish(ctx context.Context, cfg config.Store, inputs []string) error {
	st, err := newStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close(context.WithoutCancel(ctx))

	for _, input := range inputs {
		m, err := io.ImportJSON(input)
		if err != nil {
			return err
		}
		rec, err := st.Put(ctx, m, input)
		if err != nil {
			return err
		}
		printSuccess("Published %s", rec.Title)
		printDetail("id: %s", rec.ID)
	}
	return nil
}
