package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/getmockd/fixturegen/pkg/cli/internal/console"
	"github.com/getmockd/fixturegen/pkg/cli/internal/flags"
	"github.com/getmockd/fixturegen/pkg/generator"
	"github.com/getmockd/fixturegen/pkg/schema"
)

var entitiesFiles flags.Documents

// EntityOutput describes one entity in the JSON output of entities.
type EntityOutput struct {
	Name   string        `json:"name"`
	Type   string        `json:"type"`
	Base   string        `json:"base,omitempty"`
	Fields []FieldOutput `json:"fields"`
}

// FieldOutput describes one field of an entity.
type FieldOutput struct {
	Name      string `json:"name"`
	Kind      string `json:"kind"`
	Count     string `json:"count,omitempty"`
	Inherited bool   `json:"inherited,omitempty"`
}

var entitiesCmd = &cobra.Command{
	Use:     "entities",
	Aliases: []string{"ls"},
	Short:   "List the entities of fixture documents",
	Example: `  fixturegen entities -f fixtures.yaml
  fixturegen entities -f fixtures.yaml --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := loadDocument(entitiesFiles)
		if err != nil {
			return err
		}
		catalog, err := schema.Build(doc, schema.WithLogger(logger))
		if err != nil {
			return err
		}

		out := describeEntities(doc, catalog)
		if jsonOutput {
			return console.JSON(out)
		}

		for i, e := range out {
			if i > 0 {
				fmt.Println()
			}
			if e.Base != "" {
				fmt.Printf("%s (extends %s)\n", e.Name, e.Base)
			} else {
				fmt.Println(e.Name)
			}
			w := console.Table()
			for _, f := range e.Fields {
				note := f.Count
				if f.Inherited {
					note = "inherited " + note
				}
				fmt.Fprintf(w, "  %s\t%s\t%s\n", f.Name, f.Kind, note)
			}
			if err := w.Flush(); err != nil {
				return err
			}
		}
		return nil
	},
}

func describeEntities(doc *schema.Document, catalog *schema.Catalog) []EntityOutput {
	out := make([]EntityOutput, 0, len(doc.Entities))
	for _, name := range catalog.EntityNames() {
		g, ok := catalog.Generator(name)
		if !ok {
			continue
		}
		declared, _ := doc.Entity(name)

		e := EntityOutput{Name: g.Name(), Type: g.Type(), Base: g.Base()}
		for _, fieldName := range g.Fields() {
			f, _ := g.Field(fieldName)
			fo := FieldOutput{Name: fieldName, Kind: string(f.Kind())}
			if c := f.CountRange(); c != nil {
				fo.Count = c.String()
			}
			own := declared == nil
			if declared != nil {
				_, own = declared.Field(fieldName)
			}
			fo.Inherited = !own && !generator.IsMeta(fieldName)
			e.Fields = append(e.Fields, fo)
		}
		out = append(out, e)
	}
	return out
}

func init() {
	rootCmd.AddCommand(entitiesCmd)
	entitiesCmd.Flags().VarP(&entitiesFiles, "file", "f", "Fixture document or glob (repeatable)")
}
