package cmd

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/JPM1118/imgbind/internal/config"
	"github.com/JPM1118/imgbind/internal/resolver"
	"github.com/JPM1118/imgbind/internal/session"
)

var (
	configPath     string
	replacementDir string
	replaceFlags   []string
	verbose        bool
)

var rootCmd = &cobra.Command{
	Use:   "imgbind [animation.json]",
	Short: "Resolve the images shown by a Lottie animation's image layers",
	Long: `imgbind binds the image assets of a Lottie animation to its image layers.

Each layer shows a local replacement file when its asset name has one,
otherwise the image the configured source provides for the asset.

Run with a document path to launch the interactive inspector.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		return runInspect(args[0])
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default $XDG_CONFIG_HOME/imgbind/config.yml)")
	rootCmd.PersistentFlags().StringVar(&replacementDir, "replacement-dir", "", "directory holding replacement images")
	rootCmd.PersistentFlags().StringArrayVarP(&replaceFlags, "replace", "r", nil, "replace an asset by name, as name=file (repeatable)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every resolution pass to stderr")
}

func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	return nil
}

// openSession loads configuration and opens docPath with the global flags
// applied.
func openSession(docPath string, logger resolver.Logger) (*session.Session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	replace, err := parseReplacements(replaceFlags)
	if err != nil {
		return nil, err
	}
	return session.Open(session.Options{
		DocPath:        docPath,
		Config:         cfg,
		ReplacementDir: replacementDir,
		Replace:        replace,
		Logger:         logger,
	})
}

func loadConfig() (config.Config, error) {
	if configPath != "" {
		return config.LoadFrom(configPath)
	}
	return config.Load()
}

// parseReplacements turns name=file flags into a replacement table.
func parseReplacements(flags []string) (map[string]string, error) {
	table := make(map[string]string, len(flags))
	for _, f := range flags {
		name, file, ok := strings.Cut(f, "=")
		name, file = strings.TrimSpace(name), strings.TrimSpace(file)
		if !ok || name == "" || file == "" {
			return nil, fmt.Errorf("invalid --replace %q: want name=file", f)
		}
		table[name] = file
	}
	return table, nil
}

// passLogger returns a stderr logger when --verbose is set.
func passLogger() resolver.Logger {
	if !verbose {
		return nil
	}
	l := log.New(os.Stderr, "imgbind: ", log.LstdFlags)
	return resolver.LoggerFunc(func(e resolver.PassEvent) {
		l.Printf("%s pass %s: %d layers, %d replaced, %d source, %d miss, %d undeclared, %d collected (%s)",
			e.Kind, e.ID, e.Layers, e.Replaced, e.Sourced, e.Missed, e.Undeclared, e.Collected, e.Duration)
	})
}
