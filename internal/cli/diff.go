package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vortex/xdiff"
)

var diffCmd = &cobra.Command{
	Use:   "diff <left.xml> <right.xml>",
	Short: "Print the edit script transforming left into right",
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

		for _, a := range actions {
			fmt.Fprintln(cmd.OutOrStdout(), a.String())
		}
		return nil
	},
}

func init() {
	addMatchFlags(diffCmd)
}
