package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "momentum",
	Short: "Habit, goal, and mood tracking over chat",
	Long:  "Momentum is a personal habit/goal/mood tracker delivered through a chat bot: daily reminders, deadline warnings, and a small point economy. Single Go binary.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
}
