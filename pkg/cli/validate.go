package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/getmockd/fixturegen/pkg/cli/internal/console"
	"github.com/getmockd/fixturegen/pkg/cli/internal/flags"
	"github.com/getmockd/fixturegen/pkg/schema"
)

var validateFiles flags.Documents

// ValidateOutput is the JSON output of validate.
type ValidateOutput struct {
	Valid    bool                     `json:"valid"`
	Entities int                      `json:"entities"`
	Sources  []string                 `json:"sources,omitempty"`
	Errors   []schema.ValidationError `json:"errors,omitempty"`
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check fixture documents for errors",
	Long: `Check fixture documents against the document schema and for semantic
errors: unknown field kinds, unknown parents or nested entities, inheritance
and nesting cycles, unresolvable references and invalid plans.

Every problem is reported with its path. The exit status is non-zero when
any document is invalid.`,
	Example: `  fixturegen validate -f fixtures.yaml
  fixturegen validate -f 'fixtures/**/*.yaml' --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := ValidateOutput{}

		doc, err := loadDocument(validateFiles)
		var structural *schema.ValidationResult
		switch {
		case errors.As(err, &structural):
			out.Errors = structural.Errors
		case err != nil:
			return err
		default:
			out.Entities = len(doc.Entities)
			out.Sources = doc.Sources
			out.Errors = schema.Validate(doc).Errors
		}
		out.Valid = len(out.Errors) == 0

		if jsonOutput {
			if err := console.JSON(out); err != nil {
				return err
			}
		} else if out.Valid {
			fmt.Printf("✓ valid: %d entities in %d documents\n", out.Entities, len(out.Sources))
		} else {
			fmt.Printf("✗ %d problems found:\n", len(out.Errors))
			for _, e := range out.Errors {
				fmt.Printf("  %s\n", e.Error())
			}
		}

		if !out.Valid {
			return ErrValidationFailed
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().VarP(&validateFiles, "file", "f", "Fixture document or glob (repeatable)")
}
