package cli

import (
	"github.com/getmockd/fixturegen/pkg/cli/internal/flags"
	"github.com/getmockd/fixturegen/pkg/schema"
)

// loadDocument reads and merges the documents named by -f.
func loadDocument(files flags.Documents) (*schema.Document, error) {
	if len(files) == 0 {
		return nil, ErrNoFiles
	}
	return schema.Load(files, schema.WithLogger(logger))
}

// loadCatalog reads the documents named by -f and builds them.
func loadCatalog(files flags.Documents, opts ...schema.Option) (*schema.Catalog, error) {
	doc, err := loadDocument(files)
	if err != nil {
		return nil, err
	}
	return schema.Build(doc, append([]schema.Option{schema.WithLogger(logger)}, opts...)...)
}
