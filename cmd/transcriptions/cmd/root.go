package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/nocdn/transcriptions-ssr/cmd/transcriptions/cmd/history"
	"github.com/nocdn/transcriptions-ssr/cmd/transcriptions/cmd/record"
	"github.com/nocdn/transcriptions-ssr/cmd/transcriptions/cmd/serve"
	"github.com/nocdn/transcriptions-ssr/cmd/transcriptions/cmd/version"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "transcriptions",
	Short: "Audio transcription with clipboard delivery and history",
	Long: `Audio transcription with clipboard delivery and history.

- Record from the microphone or submit an audio file
- Transcriptions are copied to the clipboard and saved to history
- Run the API server to accept uploads over HTTP`,
	TraverseChildren: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(record.Cmd)
	rootCmd.AddCommand(history.Cmd)
	rootCmd.AddCommand(version.Cmd)
}
