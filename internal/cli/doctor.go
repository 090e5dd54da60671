package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mateusdtakayama/meet-transcript/internal/output"
)

func NewDoctorCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check prerequisites",
		RunE: func(cmd *cobra.Command, args []string) error {
			f := output.NewFormatter(os.Stdout)
			ok := true

			if deps.Config.OpenAIAPIKey != "" {
				f.SetupCheck("OpenAI API key", true, "configured")
			} else {
				f.SetupCheck("OpenAI API key", false, "not set. Set OPENAI_API_KEY or add openai_api_key to config")
				ok = false
			}

			if err := checkWritable(deps.Config.MeetingsDir); err != nil {
				f.SetupCheck("Meetings directory", false, fmt.Sprintf("%s is not writable: %v", deps.Config.MeetingsDir, err))
				ok = false
			} else {
				f.SetupCheck("Meetings directory", true, deps.Config.MeetingsDir)
			}

			f.SetupCheck("Port", true, fmt.Sprintf("%d", deps.Config.Port))
			f.SetupCheck("Flush interval", true, deps.Config.FlushInterval.String())

			if ok {
				f.Success("\nAll prerequisites met. Run 'meet-transcript serve' to start.")
			} else {
				f.Warning("\nSome prerequisites are missing.")
			}
			return nil
		},
	}
}

func checkWritable(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	probe := filepath.Join(dir, ".writecheck")
	if err := os.WriteFile(probe, nil, 0o644); err != nil {
		return err
	}
	return os.Remove(probe)
}
