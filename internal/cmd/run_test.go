package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/basecamp/visit-recorder/internal/server"
)

func TestRunCommand_Variants(t *testing.T) {
	tests := []struct {
		name            string
		args            []string
		render          server.RenderMode
		timestampFormat server.TimestampFormat
		future          bool
		audience        bool
		debug           bool
	}{
		{
			name:            "no variant uses flag defaults",
			args:            []string{},
			render:          server.RenderHTML,
			timestampFormat: server.TimestampClock,
		},
		{
			name:            "home",
			args:            []string{"--variant", "home"},
			render:          server.RenderHTML,
			timestampFormat: server.TimestampClock,
			future:          true,
			debug:           true,
		},
		{
			name:            "plain",
			args:            []string{"--variant", "plain"},
			render:          server.RenderText,
			timestampFormat: server.TimestampISO,
			debug:           true,
		},
		{
			name:            "audience",
			args:            []string{"--variant", "audience"},
			render:          server.RenderHTML,
			timestampFormat: server.TimestampClock,
			audience:        true,
		},
		{
			name:            "explicit flags win over the variant",
			args:            []string{"--variant", "plain", "--render", "html", "--debug=false"},
			render:          server.RenderHTML,
			timestampFormat: server.TimestampISO,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := testRunCommand(t, tt.args...)

			require.NoError(t, cmd.preRun(cmd.cmd, nil))

			assert.Equal(t, tt.render, globalConfig.Render)
			assert.Equal(t, tt.timestampFormat, globalConfig.TimestampFormat)
			assert.Equal(t, tt.future, globalConfig.FutureEnabled)
			assert.Equal(t, tt.audience, globalConfig.AudienceEnabled)
			assert.Equal(t, tt.debug, globalConfig.Debug)
		})
	}
}

func TestRunCommand_EnvironmentWinsOverTheVariant(t *testing.T) {
	t.Setenv("VISIT_RECORDER_RENDER", "html")
	t.Setenv("DEBUG", "false")

	cmd := testRunCommand(t, "--variant", "plain")
	require.NoError(t, cmd.preRun(cmd.cmd, nil))

	assert.Equal(t, server.RenderHTML, globalConfig.Render)
	assert.False(t, globalConfig.Debug)
	assert.Equal(t, server.TimestampISO, globalConfig.TimestampFormat, "unset values still come from the variant")
}

func TestRunCommand_RejectsUnknownValues(t *testing.T) {
	cmd := testRunCommand(t, "--variant", "fancy")
	assert.ErrorIs(t, cmd.preRun(cmd.cmd, nil), server.ErrorUnknownVariant)

	cmd = testRunCommand(t, "--render", "pdf")
	assert.ErrorIs(t, cmd.preRun(cmd.cmd, nil), server.ErrorUnknownRenderMode)

	cmd = testRunCommand(t, "--timestamp-format", "unix")
	assert.ErrorIs(t, cmd.preRun(cmd.cmd, nil), server.ErrorUnknownTimestampFormat)
}

// Helpers

func testRunCommand(t *testing.T, args ...string) *runCommand {
	t.Helper()

	globalConfig = server.Config{Store: server.StoreMemory}
	t.Cleanup(func() { globalConfig = server.Config{} })

	cmd := newRunCommand()
	require.NoError(t, cmd.cmd.ParseFlags(args))

	return cmd
}
