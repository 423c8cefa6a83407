package randx

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestConnectionID_Unique(t *testing.T) {
	seen := make(map[string]struct{})

	for range 1000 {
		id := ConnectionID()
		parsed, err := uuid.Parse(id)
		require.NoError(t, err)
		require.Equal(t, uuid.Version(4), parsed.Version())

		_, dup := seen[id]
		require.False(t, dup)
		seen[id] = struct{}{}
	}
}
