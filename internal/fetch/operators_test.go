package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog_Lookups(t *testing.T) {
	tests := []struct {
		op   string
		want Arity
	}{
		{"eq", ArityOne},
		{"like", ArityOne},
		{"on-or-after", ArityOne},
		{"null", ArityNone},
		{"this-week", ArityNone},
		{"eq-userid", ArityNone},
		{"between", ArityTwo},
		{"not-between", ArityTwo},
		{"in", ArityMany},
		{"contain-values", ArityMany},
	}
	for _, tt := range tests {
		t.Run(tt.op, func(t *testing.T) {
			assert.Equal(t, tt.want, DefaultCatalog.ArityOf(tt.op))
		})
	}
}

func TestCatalog_UnknownOperatorIsLegal(t *testing.T) {
	// The operator field is an open string; operators the catalog has
	// never heard of resolve to ArityUnknown, not an error.
	assert.Equal(t, ArityUnknown, DefaultCatalog.ArityOf("some-future-operator"))
	assert.Equal(t, ArityUnknown, DefaultCatalog.ArityOf(""))
}

func TestNewCatalog_Swappable(t *testing.T) {
	custom, err := NewCatalog([]byte(`
none: [frob-null]
one: [frob-eq]
many: [frob-in]
`))
	require.NoError(t, err)

	assert.Equal(t, ArityNone, custom.ArityOf("frob-null"))
	assert.Equal(t, ArityOne, custom.ArityOf("frob-eq"))
	assert.Equal(t, ArityMany, custom.ArityOf("frob-in"))
	assert.Equal(t, ArityUnknown, custom.ArityOf("eq"), "custom catalogs replace, not extend")
}

func TestNewCatalog_BadYAML(t *testing.T) {
	_, err := NewCatalog([]byte("none: [unterminated"))
	assert.Error(t, err)
}
