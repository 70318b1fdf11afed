package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

type RunCmd struct {
	all bool
	rt  *Runtime
}

func NewRunCmd(rt *Runtime) *cobra.Command {
	rc := &RunCmd{rt: rt}
	cmd := &cobra.Command{
		Use:   "run [pipeline...]",
		Short: "Run one or more pipelines",
		RunE:  rc.run,
	}

	cmd.Flags().BoolVar(&rc.all, "all", false, "Run every registered pipeline")

	return cmd
}

func (rc *RunCmd) run(cmd *cobra.Command, args []string) error {
	names := args
	if rc.all {
		if len(args) > 0 {
			return fmt.Errorf("--all cannot be combined with pipeline names")
		}
		names = rc.rt.Registry.List()
	}
	if len(names) == 0 {
		return fmt.Errorf("no pipeline given, use --all or one of %v", rc.rt.Registry.List())
	}

	return rc.rt.RunPipelines(cmd.Context(), names)
}

// NewPipelineCmd returns a shortcut command running a single pipeline.
func NewPipelineCmd(rt *Runtime, name string) *cobra.Command {
	return &cobra.Command{
		Use:   name,
		Short: fmt.Sprintf("Run the %s pipeline", name),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.RunPipelines(cmd.Context(), []string{name})
		},
	}
}
