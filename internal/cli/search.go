package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mmcdole/zenkai/internal/domain"
	"github.com/mmcdole/zenkai/internal/orchestrator"
)

func newSearchCmd(v *viper.Viper) *cobra.Command {
	var page int
	cmd := &cobra.Command{
		Use:   "search <characters|planets|transformations> <term>",
		Short: "Print the records of a catalog matching a name",
		Long: `Search a catalog by name. Characters are searched by the API; planets and
transformations are filtered from their first loaded page.`,
		Args: cobra.MinimumNArgs(2),
		Example: `  zenkai search characters goku
  zenkai search planets "namek"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			tab, err := domain.ParseTab(args[0])
			if err != nil {
				return err
			}
			term := strings.TrimSpace(strings.Join(args[1:], " "))

			return withApp(v, func(a *app) error {
				s := a.newSession()
				err := s.do(cmd.Context(), func(o *orchestrator.Orchestrator) []orchestrator.Task {
					return append(o.SwitchTab(tab), o.SetSearchTerm(term)...)
				})
				if err != nil {
					return err
				}
				if err := s.goToPage(cmd.Context(), page); err != nil {
					return err
				}
				s.printList(cmd.OutOrStdout())
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&page, "page", "p", 1, "page of results to print")
	return cmd
}
