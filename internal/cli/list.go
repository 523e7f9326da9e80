package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mmcdole/zenkai/internal/domain"
	"github.com/mmcdole/zenkai/internal/orchestrator"
)

func newListCmd(v *viper.Viper) *cobra.Command {
	var page int
	cmd := &cobra.Command{
		Use:       "list <characters|planets|transformations>",
		Short:     "Print one page of a catalog",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"characters", "planets", "transformations"},
		Example: `  # First page of characters
  zenkai list characters

  # Third page of planets
  zenkai list planets --page 3`,
		RunE: func(cmd *cobra.Command, args []string) error {
			tab, err := domain.ParseTab(args[0])
			if err != nil {
				return err
			}
			return withApp(v, func(a *app) error {
				s := a.newSession()
				if err := s.do(cmd.Context(), openTab(tab)); err != nil {
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

	cmd.Flags().IntVarP(&page, "page", "p", 1, "page to print")
	return cmd
}

// openTab shows tab in browse mode, loading it when needed
func openTab(tab domain.Tab) func(*orchestrator.Orchestrator) []orchestrator.Task {
	return func(o *orchestrator.Orchestrator) []orchestrator.Task {
		if tasks := o.SwitchTab(tab); len(tasks) > 0 {
			return tasks
		}
		return o.LoadDataIfNeeded()
	}
}
