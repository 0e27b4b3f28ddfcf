package record

import (
	"bufio"
	"bytes"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/nocdn/transcriptions-ssr/internal/app"
	"github.com/nocdn/transcriptions-ssr/internal/app/audio"
	"github.com/nocdn/transcriptions-ssr/internal/app/capture"
	"github.com/nocdn/transcriptions-ssr/internal/app/flow"
	"github.com/nocdn/transcriptions-ssr/internal/app/notify"
	"github.com/nocdn/transcriptions-ssr/internal/config"
)

var silent bool

func init() {
	Cmd.Flags().BoolVarP(&silent, "silent", "s", false, "suppress the desktop notification")
}

// Cmd represents the record command
var Cmd = &cobra.Command{
	Use:   "record",
	Short: "Record from the microphone and transcribe",
	Long: `Record from the microphone and transcribe.

- Recording starts immediately and stops when you press Enter
- The transcription is copied to the clipboard and saved to history`,
	Run: func(cmd *cobra.Command, args []string) {
		env := config.GetEnv()
		if err := env.RequireTranscriptionKey(); err != nil {
			log.Fatalf("Configuration error: %v\n", err)
		}

		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

		controller, err := app.InitializeFlowController(env)
		if err != nil {
			log.Fatalf("Failed to initialize: %v\n", err)
		}

		session := capture.NewSession(capture.NewPortAudioSource(), logger)
		if err := session.Start(cmd.Context()); err != nil {
			log.Fatalf("Failed to start recording: %v\n", err)
		}

		fmt.Println("Recording... press Enter to stop.")
		bufio.NewReader(os.Stdin).ReadString('\n')

		recording, err := session.Stop()
		if err != nil {
			log.Fatalf("Failed to finalize recording: %v\n", err)
		}
		if recording == nil || len(recording.Data) == 0 {
			log.Fatal("Nothing was recorded")
		}

		converter := audio.NewConverter(audio.NewFFmpegDecoder(), logger)
		file, err := converter.Convert(cmd.Context(), recording.Data, recording.Format)
		if err != nil {
			log.Fatalf("Failed to package recording: %v\n", err)
		}

		err = controller.Submit(cmd.Context(), flow.File{
			Name:    file.Name,
			Size:    file.Size(),
			Content: bytes.NewReader(file.Data),
		}, "recording")
		if err != nil {
			log.Fatalf("Transcription failed: %v\n", err)
		}

		text := controller.ResultText()
		fmt.Println(text)

		var notifier notify.Notifier = notify.NewDesktopNotifier()
		if silent {
			notifier = notify.NopNotifier{}
		}
		if err := notifier.Notify("Transcription ready", "The text is on your clipboard"); err != nil {
			logger.Warn("notification failed", "error", err)
		}
	},
}
