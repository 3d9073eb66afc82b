package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyValue(t *testing.T) {
	k, v, ok := KeyValue("name:string")
	assert.True(t, ok)
	assert.Equal(t, "name", k)
	assert.Equal(t, "string", v)

	k, v, ok = KeyValue("a=b:c", ':', '=')
	assert.True(t, ok)
	assert.Equal(t, "a", k)
	assert.Equal(t, "b:c", v)

	_, _, ok = KeyValue("plain")
	assert.False(t, ok)
}

func TestFieldSpec(t *testing.T) {
	tests := []struct {
		in       string
		name     string
		kind     string
		errMatch string
	}{
		{in: "email:faker", name: "email", kind: "faker"},
		{in: " age = integer ", name: "age", kind: "integer"},
		{in: "title", name: "title", kind: "string"},
		{in: ":bool", errMatch: "missing name"},
		{in: "flag:", errMatch: "missing kind"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			name, kind, err := FieldSpec(tt.in)
			if tt.errMatch != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMatch)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.name, name)
			assert.Equal(t, tt.kind, kind)
		})
	}
}
