package sclisp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPackedVersionMatchesComponents(t *testing.T) {
	require.Equal(t, VersionMajor*1_000_000+VersionMinor*1_000+VersionRevision, PackedVersion())
}
