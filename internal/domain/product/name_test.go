package product

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "plain", input: "Tomate", want: "Tomate"},
		{name: "trims whitespace", input: "  Saumon Atlantique  ", want: "Saumon Atlantique"},
		{name: "blank rejected", input: "   ", wantErr: true},
		{name: "empty rejected", input: "", wantErr: true},
		{name: "max length accepted", input: strings.Repeat("a", MaxNameLength), want: strings.Repeat("a", MaxNameLength)},
		{name: "over max length rejected", input: strings.Repeat("a", MaxNameLength+1), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := NewName(tt.input)
			if tt.wantErr {
				var nameErr *InvalidNameError
				require.ErrorAs(t, err, &nameErr)
				assert.Equal(t, tt.input, nameErr.Name)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, n.Value())
		})
	}
}

func TestNameEqualIsCaseInsensitive(t *testing.T) {
	a, err := NewName("Tomate")
	require.NoError(t, err)
	b, err := NewName("TOMATE")
	require.NoError(t, err)
	c, err := NewName("Tomates")
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}
