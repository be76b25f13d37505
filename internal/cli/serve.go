package cli

import (
	"github.com/ralt/rpm2cpe/internal/models"
	"github.com/ralt/rpm2cpe/internal/repo"
	"github.com/ralt/rpm2cpe/internal/server"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// NewServeCmd creates the serve command
func NewServeCmd() *cobra.Command {
	var config models.TranslatorConfig

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve translations over HTTP",
		Long: `Starts an HTTP server answering:

  GET /rpm?name=<rpm>[&name=<rpm>...][&strict=true]
  GET /repo?name=<repo>[&name=<repo>...][&strict=true]`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(cmd, afero.NewOsFs(), &config); err != nil {
				return err
			}
			if err := validateConfig(&config); err != nil {
				return err
			}

			srv, err := server.New(&config, repo.NewEnumerator(&config))
			if err != nil {
				return err
			}
			return srv.ListenAndServe(cmd.Context(), config.ListenAddr)
		},
	}

	cmd.Flags().StringVar(&config.ListenAddr, "listen", ":8080", "Address to listen on")
	cmd.Flags().BoolVar(&config.IncludeRelease, "release", false, "Append the release tag to match strings")
	cmd.Flags().BoolVar(&config.IncludeArch, "arch", false, "Append the architecture to match strings")
	cmd.Flags().StringVar(&config.Strategy, "strategy", "", "Name decomposition strategy (anchor, vocabulary)")
	cmd.Flags().StringVar(&config.SpecialMode, "special", "", "How the special version part is used (level, suffix)")
	cmd.Flags().StringVar(&config.PackageManager, "package-manager", "", "Package manager used to list repositories (yum, dnf)")
	cmd.Flags().BoolVar(&config.MakeCache, "makecache", false, "Refresh the repository metadata cache before listing")
	cmd.Flags().DurationVar(&config.Timeout, "timeout", 0, "Timeout of each package manager invocation")

	return cmd
}
