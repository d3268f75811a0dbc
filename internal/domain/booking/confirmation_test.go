package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirmationNumber(t *testing.T) {
	cases := map[uint]string{
		7:       "VC-000007",
		42:      "VC-000042",
		123456:  "VC-123456",
		1234567: "VC-1234567",
	}

	for id, want := range cases {
		got, err := ConfirmationNumber("VC", id)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestConfirmationNumberRejectsZero(t *testing.T) {
	_, err := ConfirmationNumber("VC", 0)
	assert.ErrorIs(t, err, ErrInvalidIdentity)
}
