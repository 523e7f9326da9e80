package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mmcdole/zenkai/internal/domain"
	"github.com/mmcdole/zenkai/internal/orchestrator"
)

func newShowCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:       "show <character|planet|transformation> <id>",
		Short:     "Print the details of one record",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"character", "planet", "transformation"},
		Example:   `  zenkai show character 1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			itemType, err := domain.ParseItemType(args[0])
			if err != nil {
				return err
			}
			id, err := strconv.Atoi(args[1])
			if err != nil || id < 1 {
				return fmt.Errorf("invalid id %q", args[1])
			}

			return withApp(v, func(a *app) error {
				s := a.newSession()
				err := s.do(cmd.Context(), func(o *orchestrator.Orchestrator) []orchestrator.Task {
					return o.NavigateToDetail(itemType, id)
				})
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), s.presenter.detail)
				return nil
			})
		},
	}
}
