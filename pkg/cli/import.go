package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/getmockd/fixturegen/pkg/cli/internal/console"
	"github.com/getmockd/fixturegen/pkg/cli/internal/flags"
	"github.com/getmockd/fixturegen/pkg/importer"
	"github.com/getmockd/fixturegen/pkg/schema"
)

var (
	importOutput    string
	importPaths     flags.StringSlice
	importForce     bool
	importSeed      uint64
	importPlanCount int
)

var importCmd = &cobra.Command{
	Use:   "import <openapi|graphql|proto> <file>",
	Short: "Derive a fixture document from an existing schema",
	Long: `Derive a fixture document from an OpenAPI 3 document, a GraphQL SDL
schema or a protobuf file.

Object types become entities, scalar types become field kinds, nested
objects become entity fields and lists repeat one to three times unless the
source bounds them. The document is written as YAML.`,
	Example: `  fixturegen import openapi petstore.yaml -o fixtures.yaml
  fixturegen import graphql schema.graphql
  fixturegen import proto api/shop.proto -I third_party --seed 1`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := importer.ParseSource(args[0])
		if err != nil {
			return err
		}

		doc, err := importer.ImportFile(cmd.Context(), source, args[1], importPaths...)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("seed") {
			seed := importSeed
			doc.Seed = &seed
		}
		if importPlanCount > 0 {
			for _, name := range doc.EntityNames() {
				doc.Generate = append(doc.Generate, schema.PlanEntry{Entity: name, Count: importPlanCount})
			}
		}

		data, err := schema.Marshal(doc)
		if err != nil {
			return err
		}

		logger.Info("imported schema", "source", string(source), "file", args[1], "entities", len(doc.Entities))

		if importOutput == "" || importOutput == "-" {
			_, err = os.Stdout.Write(data)
			return err
		}
		if _, err := os.Stat(importOutput); err == nil && !importForce {
			return fmt.Errorf("%s: %w", importOutput, ErrFileExists)
		}
		if err := os.WriteFile(importOutput, data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", importOutput, err)
		}
		console.Status("Imported %d entities from %s into %s", len(doc.Entities), args[1], importOutput)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().StringVarP(&importOutput, "output", "o", "", "Write the document to this file instead of stdout")
	importCmd.Flags().VarP(&importPaths, "import-path", "I", "Directory searched for proto imports (repeatable)")
	importCmd.Flags().BoolVar(&importForce, "force", false, "Overwrite the output file")
	importCmd.Flags().Uint64Var(&importSeed, "seed", 0, "Seed to record in the document")
	importCmd.Flags().IntVar(&importPlanCount, "plan", 0, "Add a generate entry of this many records per entity")
}
