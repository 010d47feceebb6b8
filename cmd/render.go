package cmd

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	renderName string
	renderOut  string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render one profile to a static HTML file",
	Long: `Render fetches every section for --name once and writes the finished
page. Sections that fail to load keep the shell's placeholder markup.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		defer func() { _ = a.logger.Sync() }()

		html, err := a.site.Render(cmd.Context(), renderName)
		if err != nil {
			return fmt.Errorf("rendering page: %w", err)
		}

		if renderOut == "-" {
			_, err = fmt.Fprint(cmd.OutOrStdout(), html)
			return err
		}
		if err := afero.WriteFile(fs, renderOut, []byte(html), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", renderOut, err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", renderOut)
		return nil
	},
}

func init() {
	renderCmd.Flags().StringVar(&renderName, "name", "", "profile to render (defaults to default_username)")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "index.html", "output file, or - for stdout")
	rootCmd.AddCommand(renderCmd)
}
