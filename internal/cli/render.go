package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vortex/xdiff"
	"github.com/vortex/xdiff/dom/etreedom"
)

var renderCmd = &cobra.Command{
	Use:   "render <left.xml> <right.xml>",
	Short: "Print left annotated with diff:* marker attributes",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		left, err := readTree(args[0])
		if err != nil {
			return err
		}
		right, err := readTree(args[1])
		if err != nil {
			return err
		}

		differ, err := xdiff.New(configFromFlags())
		if err != nil {
			return err
		}
		actions, err := differ.Diff(left, right)
		if err != nil {
			return err
		}
		annotated, err := differ.Format(actions)
		if err != nil {
			return err
		}

		out, err := etreedom.Serialize(annotated.(*etreedom.Elem))
		if err != nil {
			return fmt.Errorf("serialize: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func init() {
	addMatchFlags(renderCmd)
}
