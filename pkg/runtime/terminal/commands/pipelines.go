package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func NewPipelinesCmd(rt *Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "pipelines",
		Short: "List the registered pipelines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names := rt.Registry.List()
			if len(names) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No pipelines registered")
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Available pipelines:\n%s\n", strings.Join(names, "\n"))
			return nil
		},
	}
}
