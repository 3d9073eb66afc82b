package cli

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"

	"github.com/getmockd/fixturegen/pkg/cli/internal/console"
	"github.com/getmockd/fixturegen/pkg/generator"
	"github.com/getmockd/fixturegen/pkg/random"
	"github.com/getmockd/fixturegen/pkg/schema"
)

// VersionOutput is the JSON shape of the version command.
type VersionOutput struct {
	Version       string `json:"version"`
	Commit        string `json:"commit"`
	Date          string `json:"date"`
	SchemaVersion string `json:"schemaVersion"`
	Kinds         int    `json:"kinds"`
	Fakers        int    `json:"fakers"`
	Go            string `json:"go"`
	Platform      string `json:"platform"`
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show fixturegen version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := buildVersion()
		if jsonOutput {
			return console.JSON(out)
		}

		v := out.Version
		if v != "dev" && v != "(devel)" && !strings.HasPrefix(v, "v") {
			v = "v" + v
		}
		fmt.Printf("fixturegen %s (%s, %s)\n", v, out.Commit, out.Date)
		fmt.Printf("schema v%s, %d field kinds, %d fakers\n", out.SchemaVersion, out.Kinds, out.Fakers)
		fmt.Printf("%s %s\n", out.Go, out.Platform)
		return nil
	},
}

// buildVersion fills unset build metadata from the embedded VCS info.
func buildVersion() VersionOutput {
	out := VersionOutput{
		Version:       Version,
		Commit:        Commit,
		Date:          BuildDate,
		SchemaVersion: schema.Version,
		Kinds:         len(generator.Kinds()),
		Fakers:        len(random.FakerNames()),
		Go:            runtime.Version(),
		Platform:      runtime.GOOS + "/" + runtime.GOARCH,
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return out
	}
	if out.Version == "dev" && info.Main.Version != "" {
		out.Version = info.Main.Version
	}
	dirty := false
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if out.Commit == "none" {
				out.Commit = s.Value
			}
		case "vcs.time":
			if out.Date == "unknown" {
				out.Date = s.Value
			}
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if dirty && out.Commit != "none" {
		out.Commit += "-dirty"
	}
	return out
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
