package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/JPM1118/imgbind/internal/resolver"
	"github.com/JPM1118/imgbind/internal/tui"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <animation.json>",
	Short: "Resolve every image layer and print the result (non-interactive)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession(args[0], passLogger())
		if err != nil {
			return err
		}
		rows := sess.Resolver.ResolveAll()

		if len(rows) == 0 {
			fmt.Println("No image layers bound to declared assets.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "LAYER\tASSET\tNAME\tSIZE\tOUTCOME")
		fmt.Fprintln(w, "─────\t─────\t────\t────\t───────")
		counts := map[resolver.Outcome]int{}
		for _, r := range rows {
			counts[r.Outcome]++
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				r.LayerName, r.AssetID, tui.DisplayName(r.AssetName), tui.FormatSize(r),
				tui.OutcomeStyle(r.Outcome).Render(tui.OutcomeLabel(r)))
		}
		if err := w.Flush(); err != nil {
			return err
		}

		fmt.Printf("\n%d layers: %d replaced, %d source, %d unresolved (source: %s)\n",
			len(rows), counts[resolver.OutcomeReplacement], counts[resolver.OutcomeSource],
			counts[resolver.OutcomeMiss], sess.SourceKind())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}
