package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JPM1118/imgbind/internal/export"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export <animation.json>",
	Short: "Write the resolved image of every bound asset to a directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession(args[0], passLogger())
		if err != nil {
			return err
		}

		images := sess.Resolver.Snapshot()
		m, err := export.Write(exportOut, images, sess.Resolver.Assets(), export.Manifest{
			Document: args[0],
			Source:   sess.SourceKind(),
		})
		if err != nil {
			return err
		}

		fmt.Printf("Exported %d images to %s (export %s)\n", len(m.Assets), exportOut, m.ID)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "imgbind-export", "output directory")
	rootCmd.AddCommand(exportCmd)
}
