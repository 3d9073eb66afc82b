package output

import (
	"errors"
	"fmt"

	"github.com/ohler55/ojg/jp"
)

// ErrInvalidPath is returned for a JSONPath expression that does not parse.
var ErrInvalidPath = errors.New("invalid JSONPath")

// Select evaluates a JSONPath expression over the records of every batch,
// seen as one JSON array. Records are converted to plain maps first, so
// selected objects lose their field order.
func Select(path string, batches ...Batch) ([]any, error) {
	expr, err := jp.ParseString(path)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidPath, path, err)
	}

	var data []any
	for _, b := range batches {
		for _, rec := range b.Records {
			data = append(data, rec.Map())
		}
	}
	if data == nil {
		data = []any{}
	}
	return expr.Get(data), nil
}
