package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/fixturegen/pkg/schema"
)

const zooDocument = `
entities:
  - name: Animal
    fields:
      - name: name
        type: string
        len: 6
  - name: Keeper
    fields:
      - name: animals
        type: entity
        entity: Animal
        count: {min: 1, max: 2}
  - name: Lion
    extends: Animal
    fields:
      - name: mane
        type: bool
`

func TestDescribeEntities(t *testing.T) {
	doc, err := schema.Parse([]byte(zooDocument), "zoo.yaml")
	require.NoError(t, err)
	catalog, err := schema.Build(doc)
	require.NoError(t, err)

	out := describeEntities(doc, catalog)
	require.Len(t, out, 3)

	byName := map[string]EntityOutput{}
	for _, e := range out {
		byName[e.Name] = e
	}

	lion := byName["Lion"]
	assert.Equal(t, "Animal", lion.Base)
	fields := map[string]FieldOutput{}
	for _, f := range lion.Fields {
		fields[f.Name] = f
	}
	assert.True(t, fields["name"].Inherited)
	assert.False(t, fields["mane"].Inherited)
	assert.False(t, fields["$id"].Inherited)

	var animals FieldOutput
	for _, f := range byName["Keeper"].Fields {
		if f.Name == "animals" {
			animals = f
		}
	}
	assert.Equal(t, "entity", animals.Kind)
	assert.NotEmpty(t, animals.Count)
}
