package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/JPM1118/imgbind/internal/tui"
	"github.com/JPM1118/imgbind/internal/watch"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <animation.json>",
	Short: "Launch the interactive resolution inspector",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInspect(args[0])
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(docPath string) error {
	// Pass events go to the notification bar; stderr would corrupt the
	// alt screen, so --verbose does not apply here.
	passLog := &tui.PassLog{}
	sess, err := openSession(docPath, passLog)
	if err != nil {
		return err
	}

	opts := []tui.Option{tui.WithPassLog(passLog)}
	if interval := sess.Config().Watch.Interval; interval > 0 {
		opts = append(opts, tui.WithWatcher(watch.New(sess.ReplacementFiles, watch.WithInterval(interval))))
	}

	model := tui.NewInspector(sess, opts...)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("inspect: %w", err)
	}
	return nil
}
