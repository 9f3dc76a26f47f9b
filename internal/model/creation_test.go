package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStringSetAddIsDuplicateFree(t *testing.T) {
	s := StringSet{}
	s = s.Add("u1")
	s = s.Add("u1")
	s = s.Add("u2")
	require.Equal(t, StringSet{"u1", "u2"}, s)

	s = s.Remove("u1")
	require.Equal(t, StringSet{"u2"}, s)
	require.False(t, s.Contains("u1"))
}

func TestStringSetScanRoundTrip(t *testing.T) {
	v, err := StringSet{"a", "b"}.Value()
	require.NoError(t, err)

	var out StringSet
	require.NoError(t, out.Scan(v))
	require.Equal(t, StringSet{"a", "b"}, out)

	var empty StringSet
	require.NoError(t, empty.Scan(nil))
	require.Empty(t, empty)
}
