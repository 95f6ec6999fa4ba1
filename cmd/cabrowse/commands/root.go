// cmd/cabrowse/commands/root.go
package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/ThanushaGali/CaConnect/internal/catalog"
	"github.com/ThanushaGali/CaConnect/internal/common/logger"
	"github.com/ThanushaGali/CaConnect/internal/discovery"
)

// app holds what every subcommand shares once the catalog is loaded.
type app struct {
	catalogPath string
	verbose     bool
	service     *discovery.Service
}

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "cabrowse",
		Short:         "Browse the CA provider catalog from the terminal",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd.Context())
		},
	}

	root.PersistentFlags().StringVar(&a.catalogPath, "catalog", "", "catalog YAML file (default: built-in catalog)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log catalog loading to stderr")

	root.AddCommand(listCmd(a), showCmd(a), suggestCmd(a), optionsCmd(a))
	return root
}

func (a *app) load(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	log := logger.NewNoOpLogger()
	if a.verbose {
		log = logger.NewStructured("debug", "console")
	}

	var src catalog.Source = catalog.NewEmbeddedSource()
	if a.catalogPath != "" {
		src = catalog.FileSource{Path: a.catalogPath}
	}
	cat, err := catalog.Load(ctx, src, 0, log)
	if err != nil {
		return err
	}
	a.service = discovery.NewService(cat, nil, log)
	return nil
}
