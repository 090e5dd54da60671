package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mateusdtakayama/meet-transcript/internal/logging"
	"github.com/mateusdtakayama/meet-transcript/internal/output"
	"github.com/mateusdtakayama/meet-transcript/internal/server"
)

func NewServeCmd(deps *Dependencies) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the local web interface",
		Long:  "Start the local web server hosting the recording and browsing interface.\nOpen the printed address in a browser and allow microphone access to record.",
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(os.Stdout)

			logging.Init(deps.Config.LogLevel, deps.Config.LogFormat)

			if port > 0 {
				deps.Config.Port = port
			}
			if deps.Config.OpenAIAPIKey == "" {
				formatter.Warning("OPENAI_API_KEY is not set; transcription and summaries will fail")
			}

			formatter.ServerStarted(fmt.Sprintf("localhost:%d", deps.Config.Port), deps.Config.MeetingsDir)

			return server.New(deps.App).ListenAndServe(deps.Config.Port)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (overrides config, default 8501)")

	return cmd
}
