package crypto

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParsePath(t *testing.T) {
	t.Run("default path", func(t *testing.T) {
		p, err := ParsePath(DefaultPath)
		require.NoError(t, err)
		require.Equal(t, Path{44 | Hardened, 888 | Hardened, Hardened, 0, 0}, p)
		require.Equal(t, DefaultPath, p.String())
		require.NoError(t, p.Validate())
	})

	t.Run("h suffix", func(t *testing.T) {
		p, err := ParsePath("m/44h/888h/3h/1/42")
		require.NoError(t, err)
		require.Equal(t, "m/44'/888'/3'/1/42", p.String())
	})

	for _, s := range []string{
		"",
		"44'/888'/0'/0/0",
		"m/44'/888'/0'/0",
		"m/44'/888'/0'/0/0/0",
		"m/44'/888'/x'/0/0",
		"m/44'/888'/0'/0/2147483648",
	} {
		t.Run("malformed "+s, func(t *testing.T) {
			_, err := ParsePath(s)
			require.ErrorIs(t, err, ErrMalformedPath)
		})
	}
}

func TestPathValidate(t *testing.T) {
	tests := []struct {
		path string
		err  error
		sw   uint16
	}{
		{"m/44'/888'/10'/1/5000", nil, 0},
		{"m/49'/888'/0'/0/0", ErrBadPurpose, 0xB100},
		{"m/44/888'/0'/0/0", ErrBadPurpose, 0xB100},
		{"m/44'/60'/0'/0/0", ErrBadCoinType, 0xB101},
		{"m/44'/888'/0/0/0", ErrAccountNotHardened, 0xB102},
		{"m/44'/888'/11'/0/0", ErrBadAccount, 0xB103},
		{"m/44'/888'/0'/2/0", ErrBadChange, 0xB104},
		{"m/44'/888'/0'/0'/0", ErrBadChange, 0xB104},
		{"m/44'/888'/0'/0/5001", ErrBadAddress, 0xB105},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			p, err := ParsePath(tt.path)
			require.NoError(t, err)

			err = p.Validate()
			sw, ok := PathStatusWord(err)
			if tt.err == nil {
				require.NoError(t, err)
				require.False(t, ok)
				return
			}
			require.ErrorIs(t, err, tt.err)
			require.True(t, ok)
			require.Equal(t, tt.sw, sw)
		})
	}
}
