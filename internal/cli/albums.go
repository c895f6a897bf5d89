package cli

import (
	"github.com/spf13/cobra"
)

func newAlbumsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "albums",
		Short: "Export every album (owned first, then shared)",
		Long: `Enumerate all albums the account owns plus albums shared with it,
and export each one as its own scope with its own listing cache.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			api, err := newAPIClient(cmd.Context(), settings)
			if err != nil {
				return err
			}

			scopes, err := api.AlbumScopes(cmd.Context())
			if err != nil {
				return err
			}
			if len(scopes) == 0 {
				logger.Info().Msg("No albums found")
				return nil
			}

			logger.Info().Msgf("Exporting %d album(s) to %s", len(scopes), settings.OutputPath)
			return runScopes(cmd.Context(), settings, api, scopes)
		},
	}
}
