package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vortex/xdiff"
	"github.com/vortex/xdiff/dom/etreedom"
)

var (
	threshold float64
	fastMatch bool
)

func addMatchFlags(cmd *cobra.Command) {
	cmd.Flags().Float64VarP(&threshold, "threshold", "t", 0, "minimum node similarity ratio to match two nodes (default 0.5)")
	cmd.Flags().BoolVar(&fastMatch, "fast-match", false, "enable the LCS fast-match pre-pass before the greedy matcher")
}

func configFromFlags() xdiff.Config {
	cfg := xdiff.DefaultConfig()
	if threshold > 0 {
		cfg.F = threshold
	}
	cfg.FastMatch = fastMatch
	return cfg
}

func readTree(path string) (*etreedom.Elem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	node, err := etreedom.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return node, nil
}
