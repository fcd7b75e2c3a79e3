package cmd

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfgFile string
	timeout time.Duration

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:              "defog [paths...]",
	Short:            "defog - fold obfuscated constants back into plain literals",
	TraverseChildren: true, // Prioritize subcommands
	Run: func(cmd *cobra.Command, args []string) {
		// no subcommand
		if len(args) == 0 {
			// display help when only 'defog' is entered
			_ = cmd.Help()
			return
		}
		// Format: defog [path1 path2 ...] => behaves like the fold subcommand
		foldCmd.Run(foldCmd, args)
	},
}

func Execute() error {
	var err error
	logger, err = zap.NewProduction()
	if err != nil {
		return err
	}
	defer logger.Sync()

	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Path to the configuration file")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 5*time.Minute, "Timeout for the whole run")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(foldCmd)
	rootCmd.AddCommand(watchCmd)
}
