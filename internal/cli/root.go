package cli

import (
	"github.com/spf13/cobra"

	"github.com/mateusdtakayama/meet-transcript/config"
	"github.com/mateusdtakayama/meet-transcript/internal/app"
	"github.com/mateusdtakayama/meet-transcript/internal/version"
)

type Dependencies struct {
	App    *app.App
	Config *config.Config
}

func NewRootCmd(deps *Dependencies) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "meet-transcript",
		Short: "Record meetings in the browser, transcribe, and summarize",
		Long:  "A local web app that records meetings through the browser microphone, transcribes them with OpenAI Whisper, and generates AI summaries of past meetings.",
	}

	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(version.Full() + "\n")

	rootCmd.AddCommand(NewServeCmd(deps))
	rootCmd.AddCommand(NewListCmd(deps))
	rootCmd.AddCommand(NewDoctorCmd(deps))

	return rootCmd
}
