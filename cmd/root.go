package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "phonassess",
	Short: "Korean phonological awareness assessment",
	Long: `phonassess runs a syllable-deletion assessment: the child hears a word,
removes one syllable and says what remains. Practice items give feedback,
main items are recorded for the final report.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Path to config file (default $XDG_CONFIG_HOME/phonassess/config.yaml)")
	flags.String("questions", "", "Path to a question set JSON file (overrides PHONASSESS_QUESTIONS)")
	flags.String("log-level", "", "Log level: debug, info, warn or error")
	flags.String("log-file", "", "Path to the log file (default $XDG_STATE_HOME/phonassess/phonassess.log)")
	flags.Bool("score-main", false, "Score main items as well as practice items")

	rootCmd.AddCommand(consoleCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(transcribeCmd)
	rootCmd.AddCommand(questionsCmd)
	rootCmd.AddCommand(versionCmd)
}
