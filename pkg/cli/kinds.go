package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/getmockd/fixturegen/pkg/cli/internal/console"
	"github.com/getmockd/fixturegen/pkg/generator"
	"github.com/getmockd/fixturegen/pkg/random"
)

// KindsOutput is the JSON output of kinds.
type KindsOutput struct {
	Kinds  []string `json:"kinds"`
	Fakers []string `json:"fakers"`
}

var kindsCmd = &cobra.Command{
	Use:   "kinds",
	Short: "List field kinds and faker names",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := KindsOutput{Fakers: random.FakerNames()}
		for _, k := range generator.Kinds() {
			out.Kinds = append(out.Kinds, string(k))
		}

		if jsonOutput {
			return console.JSON(out)
		}

		title := cases.Title(language.English)
		for _, group := range []struct {
			name  string
			items []string
		}{
			{"field kinds", out.Kinds},
			{"fakers", out.Fakers},
		} {
			fmt.Printf("%s:\n", title.String(group.name))
			for _, item := range group.items {
				fmt.Printf("  %s\n", item)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(kindsCmd)
}
