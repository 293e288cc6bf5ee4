package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "a@x.com", want: "a@x.com"},
		{in: "  Ari@X.Com ", want: "ari@x.com"},
		{in: "\tUSER@EXAMPLE.ORG\n", want: "user@example.org"},
		{in: "", want: ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeEmail(tt.in))
	}
}

func TestRandomDigits(t *testing.T) {
	for i := 0; i < 200; i++ {
		s, err := RandomDigits(6)
		require.NoError(t, err)
		require.Len(t, s, 6)
		for _, r := range s {
			require.True(t, r >= '0' && r <= '9', "unexpected rune %q in %q", r, s)
		}
	}

	s, err := RandomDigits(0)
	require.NoError(t, err)
	require.Empty(t, s)
}

func TestWipeByteArray(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5}
	WipeByteArray(buf)
	assert.Equal(t, []byte{0, 0, 0, 0, 0}, buf)

	WipeByteArray(nil)
}
