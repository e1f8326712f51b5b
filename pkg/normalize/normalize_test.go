package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/invetex/cortes-api/pkg/normalize"
)

func TestText(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Teléfono", "telefono"},
		{"CAMIÓN  Grúa", "camion grua"},
		{"  ñandú ", "nandu"},
		{"cable #12 AWG", "cable #12 awg"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, normalize.Text(tc.in), tc.in)
	}
}
