// Package cmd provides the Cobra CLI command structure for foldertree.
package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/foldertree/foldertree/log"
	fdlogrus "github.com/foldertree/foldertree/log/logrus"
)

var (
	logLevel  string
	logTopics []string
)

var rootCmd = &cobra.Command{
	Use:   "foldertree",
	Short: "Drive the concurrent in-memory folder namespace",
	Long: `foldertree exercises the concurrent in-memory folder namespace:
replay a script of create/list/remove/move operations against one
tree, render its current shape, or hammer it with concurrent workers
to exercise the per-folder fair reader/writer protocol.`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "off",
		"logging verbosity: off, info, debug")
	rootCmd.PersistentFlags().StringSliceVar(&logTopics, "log-topics", nil,
		"comma-separated topics to log: call,verdict,trace,error (default: all, when logging is enabled)")
}

// newLogger builds a log.Log from the --log-level/--log-topics flags,
// defaulting to the zero-cost log.NoLog{} when logging is off.
func newLogger() log.Log {
	if logLevel == "off" {
		return log.NoLog{}
	}
	l := logrus.New()
	if logLevel == "debug" {
		l.SetLevel(logrus.DebugLevel)
	}
	adapter := &fdlogrus.Logrus{Logger: l, Enable: parseTopics(logTopics)}
	return adapter
}

func parseTopics(names []string) log.Topics {
	if len(names) == 0 {
		return log.AllTopics
	}
	var topics log.Topics
	for _, n := range names {
		switch n {
		case "call":
			topics |= log.TopicCall
		case "verdict":
			topics |= log.TopicVerdict
		case "trace":
			topics |= log.TopicTrace
		case "error":
			topics |= log.TopicError
		}
	}
	return topics
}
