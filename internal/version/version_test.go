package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestShort tests that Short returns just the version string.
func TestShort(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Version, Short())
}

// TestFull tests the full version string layout.
func TestFull(t *testing.T) {
	t.Parallel()

	expected := "version: " + Version + ", commit: " + Commit + ", built at: " + BuildTime
	assert.Equal(t, expected, Full())
}

// TestBuildVariables tests that the ldflags-backed variables carry defaults.
func TestBuildVariables(t *testing.T) {
	t.Parallel()

	assert.NotEmpty(t, Version)
	assert.NotEmpty(t, Commit)
	assert.NotEmpty(t, BuildTime)

	// Version should look like a semantic version.
	assert.Contains(t, Version, ".")
	assert.NotContains(t, Version, " ")
}
