package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
	}{
		{"basic", ModeBasic},
		{"detailed", ModeDetailed},
		{"DETAILED", ModeDetailed},
		{" Basic ", ModeBasic},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestParseModeRejectsUnknown(t *testing.T) {
	for _, in := range []string{"", "full", "brief"} {
		_, err := ParseMode(in)
		assert.ErrorIs(t, err, ErrInvalidMode, in)
	}
}

func TestBuildDetailed(t *testing.T) {
	got, err := Build(ModeDetailed, "RESUME\nJOB\n")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(got, detailedPrompt+"\n"))
	assert.True(t, strings.HasSuffix(got, "\nRESUME\nJOB\n"))
	assert.Contains(t, got, "ATS system")
	assert.Contains(t, got, "keywords")
}

func TestBuildBasic(t *testing.T) {
	got, err := Build(ModeBasic, "text")
	require.NoError(t, err)

	assert.Equal(t, basicPrompt+"\ntext", got)
	assert.NotContains(t, got, "Analysis Results")
}

func TestBuildNeverDefaults(t *testing.T) {
	_, err := Build("", "text")
	assert.ErrorIs(t, err, ErrInvalidMode)

	_, err = Build(Mode("summary"), "text")
	assert.ErrorIs(t, err, ErrInvalidMode)
}

func TestModes(t *testing.T) {
	assert.Equal(t, []Mode{ModeBasic, ModeDetailed}, Modes())
}
