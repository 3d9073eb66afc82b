package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/getmockd/fixturegen/internal/id"
	"github.com/getmockd/fixturegen/pkg/cli/internal/console"
	"github.com/getmockd/fixturegen/pkg/cli/internal/flags"
	"github.com/getmockd/fixturegen/pkg/cli/internal/parse"
	"github.com/getmockd/fixturegen/pkg/generator"
	"github.com/getmockd/fixturegen/pkg/random"
	"github.com/getmockd/fixturegen/pkg/schema"
)

var (
	initName     string
	initFields   flags.StringSlice
	initCount    int
	initIdentity string
	initOutput   string
	initFormat   string
	initForce    bool
)

// defaultInitFields are scaffolded when no --field is given.
var defaultInitFields = []string{"name:string", "email:faker", "created:date"}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a starter fixture document",
	Long: `Create a starter fixture document with one entity and a generate plan.

Without --name, the entity is described through an interactive form.`,
	Example: `  fixturegen init
  fixturegen init --name Customer --field name:string --field email:faker --count 5
  fixturegen init --name Order -o fixtures.json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("name") {
			if err := runInitForm(); err != nil {
				return err
			}
		}

		fields := []string(initFields)
		if len(fields) == 0 {
			fields = defaultInitFields
		}
		doc, err := scaffoldDocument(initName, fields, initCount, initIdentity)
		if err != nil {
			return err
		}

		if _, err := os.Stat(initOutput); err == nil && !initForce {
			return fmt.Errorf("%s: %w", initOutput, ErrFileExists)
		}

		data, err := encodeDocument(doc, initFormat, initOutput)
		if err != nil {
			return err
		}
		if err := os.WriteFile(initOutput, data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", initOutput, err)
		}

		console.Status("Created %s", initOutput)
		console.Status("Next: fixturegen generate -f %s", initOutput)
		return nil
	},
}

func runInitForm() error {
	fieldList := strings.Join(defaultInitFields, ", ")
	countStr := strconv.Itoa(initCount)
	if initIdentity == "" {
		initIdentity = id.KindUUID
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("What is the entity called?").
				Placeholder("Customer").
				Value(&initName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("name is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Which fields should it have? (name:kind, comma separated)").
				Value(&fieldList).
				Validate(func(s string) error {
					_, err := parseFieldList(s)
					return err
				}),
			huh.NewInput().
				Title("How many records should be generated?").
				Value(&countStr).
				Validate(func(s string) error {
					if n, err := strconv.Atoi(s); err != nil || n < 0 {
						return errors.New("enter a whole number")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("How should record ids be generated?").
				Options(
					huh.NewOption("Random UUIDs", id.KindUUID),
					huh.NewOption("Sortable ULIDs", id.KindULID),
					huh.NewOption("Short hex ids", id.KindShort),
					huh.NewOption("Reproducible UUIDs", id.KindSeeded),
				).
				Value(&initIdentity),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	fields, err := parseFieldList(fieldList)
	if err != nil {
		return err
	}
	initName = strings.TrimSpace(initName)
	initFields = fields
	initCount, _ = strconv.Atoi(countStr)
	return nil
}

func parseFieldList(s string) ([]string, error) {
	var fields []string
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		if _, _, err := parse.FieldSpec(part); err != nil {
			return nil, err
		}
		fields = append(fields, strings.TrimSpace(part))
	}
	return fields, nil
}

// scaffoldDocument builds a document with one entity whose fields are
// declared as name:kind, each given workable defaults.
func scaffoldDocument(name string, fieldSpecs []string, count int, identity string) (*schema.Document, error) {
	if name == "" {
		return nil, errors.New("entity name is required")
	}

	e := schema.Entity{Name: name}
	for _, spec := range fieldSpecs {
		fieldName, kindName, err := parse.FieldSpec(spec)
		if err != nil {
			return nil, err
		}
		kind, err := generator.ParseKind(kindName)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", fieldName, err)
		}
		f, err := scaffoldField(fieldName, kind)
		if err != nil {
			return nil, err
		}
		e.Fields = append(e.Fields, f)
	}

	doc := &schema.Document{
		Version:  schema.Version,
		Identity: identity,
		Entities: []schema.Entity{e},
		Generate: []schema.PlanEntry{{Entity: name, Count: count}},
	}
	if result := schema.Validate(doc); !result.IsValid() {
		return nil, result
	}
	return doc, nil
}

func scaffoldField(name string, kind generator.Kind) (schema.Field, error) {
	f := schema.Field{Name: name, Type: string(kind)}
	bound := func(v float64) *float64 { return &v }

	switch kind {
	case generator.KindString:
		f.Len = 8
	case generator.KindInteger, generator.KindDecimal:
		f.Min, f.Max = bound(0), bound(100)
	case generator.KindDate:
		f.MinDate, f.MaxDate = "2020-01-01", "2025-12-31"
	case generator.KindFaker:
		f.Faker = "word"
		if random.HasFaker(name) {
			f.Faker = name
		}
	case generator.KindEnum:
		f.Values = []any{"alpha", "beta", "gamma"}
	case generator.KindDict:
		f.Dict = name
	case generator.KindLiteral:
		f.Value = name
	case generator.KindExpr, generator.KindReference, generator.KindEntity:
		return f, fmt.Errorf("field %s: %s fields cannot be scaffolded, add them to the document by hand", name, kind)
	}
	return f, nil
}

// encodeDocument renders doc as JSON when format is json or the path ends
// in .json, and as YAML otherwise.
func encodeDocument(doc *schema.Document, format, path string) ([]byte, error) {
	if format == "" && strings.EqualFold(filepath.Ext(path), ".json") {
		format = "json"
	}
	switch strings.ToLower(format) {
	case "json":
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case "", "yaml", "yml":
		return schema.Marshal(doc)
	default:
		return nil, fmt.Errorf("unsupported document format %q (use yaml or json)", format)
	}
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().StringVar(&initName, "name", "", "Entity name (prompts when omitted)")
	initCmd.Flags().Var(&initFields, "field", "Field as name:kind (repeatable)")
	initCmd.Flags().IntVar(&initCount, "count", 3, "Records in the generate plan")
	initCmd.Flags().StringVar(&initIdentity, "identity", "", "Identity provider (uuid, ulid, short, seeded)")
	initCmd.Flags().StringVarP(&initOutput, "output", "o", "fixtures.yaml", "Output filename")
	initCmd.Flags().StringVar(&initFormat, "format", "", "Output format: yaml or json (default: inferred from filename)")
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite existing file")
}
