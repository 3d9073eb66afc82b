package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/getmockd/fixturegen/pkg/cli/internal/console"
	"github.com/getmockd/fixturegen/pkg/cli/internal/flags"
	"github.com/getmockd/fixturegen/pkg/output"
	"github.com/getmockd/fixturegen/pkg/schema"
)

var (
	generateFiles    flags.Documents
	generateEntity   string
	generateCount    int
	generateFormat   string
	generateSeed     uint64
	generateIdentity string
	generateSelect   string
	generateOutput   string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate records from fixture documents",
	Long: `Generate records from one or more fixture documents.

Without --entity, the document's generate plan is run; a document without a
plan yields one record of every entity. With --entity, --count records of
that entity are produced instead.`,
	Example: `  fixturegen generate -f fixtures.yaml
  fixturegen generate -f fixtures.yaml --entity Person --count 10 --format ndjson
  fixturegen generate -f 'fixtures/**/*.yaml' --seed 42 -o people.json
  fixturegen generate -f fixtures.yaml --select '$[*].email'`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func runGenerate(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormat(generateFormat)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("count") && generateEntity == "" {
		return ErrCountNeedsEntity
	}

	var opts []schema.Option
	if cmd.Flags().Changed("seed") {
		opts = append(opts, schema.WithSeed(generateSeed))
	}
	if generateIdentity != "" {
		opts = append(opts, schema.WithIdentity(generateIdentity))
	}

	catalog, err := loadCatalog(generateFiles, opts...)
	if err != nil {
		return err
	}

	var plan []schema.PlanEntry
	if generateEntity != "" {
		plan = []schema.PlanEntry{{Entity: generateEntity, Count: generateCount}}
	}
	results, err := catalog.Run(plan)
	if err != nil {
		return err
	}

	batches := make([]output.Batch, len(results))
	total := 0
	for i, r := range results {
		batches[i] = output.Batch{Type: r.Entity, Records: r.Records}
		total += len(r.Records)
	}

	w, closeOut, err := openOutput(generateOutput)
	if err != nil {
		return err
	}

	if generateSelect != "" {
		values, serr := output.Select(generateSelect, batches...)
		if serr != nil {
			_ = closeOut()
			return serr
		}
		err = output.WriteValues(w, format, values)
	} else {
		err = output.Write(w, format, batches...)
	}
	if cerr := closeOut(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}

	logger.Info("generated records", "records", total, "format", string(format))
	if generateOutput != "" {
		console.Status("Wrote %d records to %s", total, generateOutput)
	}
	return nil
}

// openOutput returns stdout for an empty path, otherwise the created file.
func openOutput(path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("creating output file: %w", err)
	}
	return f, f.Close, nil
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().VarP(&generateFiles, "file", "f", "Fixture document or glob (repeatable)")
	generateCmd.Flags().StringVarP(&generateEntity, "entity", "e", "", "Generate only this entity")
	generateCmd.Flags().IntVarP(&generateCount, "count", "n", 1, "Number of records (with --entity)")
	generateCmd.Flags().StringVar(&generateFormat, "format", "json", "Output format (json, ndjson, yaml, xml)")
	generateCmd.Flags().Uint64Var(&generateSeed, "seed", 0, "Seed for reproducible output (overrides the document)")
	generateCmd.Flags().StringVar(&generateIdentity, "identity", "", "Identity provider (uuid, ulid, short, seeded)")
	generateCmd.Flags().StringVar(&generateSelect, "select", "", "JSONPath applied to the generated records")
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "Write to this file instead of stdout")
}
