package qrgen

import (
	"fmt"
	"text/tabwriter"

	"github.com/Badsnus/qrgen/pkg/qrcode"
	"github.com/spf13/cobra"
)

func newPlatformsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "platforms",
		Short: "List platform presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tCOLOR\tICON")
			for _, p := range qrcode.Platforms() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", p.Name, qrcode.Hex(p.Brand), p.IconURL)
			}
			return w.Flush()
		},
	}
}
