package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/defogjs/defog"
	"github.com/defogjs/defog/internal"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dirs...]",
	Short: "Watch directories and re-fold script files on change",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide directory paths to watch")
			os.Exit(1)
		}

		config, err := defog.LoadConfig(cfgFile)
		if err != nil {
			logger.Fatal("Failed to load configuration", zap.Error(err))
		}

		watcher, err := internal.NewWatcher(args, func() *internal.Engine {
			return defog.NewFromConfig(config)
		})
		if err != nil {
			logger.Fatal("Failed to create watcher", zap.Error(err))
		}
		if err := watcher.StartWatching(); err != nil {
			logger.Fatal("Failed to start watching", zap.Error(err))
		}
		fmt.Printf("watching %d directories; press Ctrl-C to stop\n", len(args))

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig

		if err := watcher.StopWatching(); err != nil {
			logger.Error("Error stopping watcher", zap.Error(err))
		}
	},
}
