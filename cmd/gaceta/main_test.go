package main

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func findCommand(t *testing.T, app *cli.App, name string) *cli.Command {
	t.Helper()
	for _, cmd := range app.Commands {
		if cmd.Name == name {
			return cmd
		}
	}
	t.Fatalf("command %q not found", name)
	return nil
}

func findStringFlag(cmd *cli.Command, name string) *cli.StringFlag {
	for _, flag := range cmd.Flags {
		if f, ok := flag.(*cli.StringFlag); ok && f.Name == name {
			return f
		}
	}
	return nil
}

func TestIngestCommandFlags(t *testing.T) {
	app := newApp()
	cmd := findCommand(t, app, "ingest")

	t.Run("feed is required", func(t *testing.T) {
		err := app.Run([]string{"gaceta", "ingest", "--data", t.TempDir()})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "feed")
	})

	t.Run("data flag reads env", func(t *testing.T) {
		dataFlag := findStringFlag(cmd, "data")
		require.NotNil(t, dataFlag)
		assert.True(t, dataFlag.Required)
		assert.Contains(t, dataFlag.EnvVars, "GACETA_DATA_DIR")
	})

	t.Run("ai-host has default value", func(t *testing.T) {
		hostFlag := findStringFlag(cmd, "ai-host")
		require.NotNil(t, hostFlag)
		assert.Equal(t, "http://localhost:11434/v1", hostFlag.Value)
	})

	t.Run("language defaults to es", func(t *testing.T) {
		langFlag := findStringFlag(cmd, "language")
		require.NotNil(t, langFlag)
		assert.Equal(t, "es", langFlag.Value)
	})
}

func TestSearchCommandFlags(t *testing.T) {
	app := newApp()

	t.Run("data is required", func(t *testing.T) {
		err := app.Run([]string{"gaceta", "search", "consulta"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "data")
	})
}

func TestRefineCommandFlags(t *testing.T) {
	app := newApp()

	t.Run("id is required", func(t *testing.T) {
		err := app.Run([]string{"gaceta", "refine", "--data", t.TempDir(), "más conciso"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "id")
	})
}

func TestSetupLogger(t *testing.T) {
	app := newApp()
	app.Commands = nil
	app.Action = func(c *cli.Context) error { return nil }

	t.Run("valid levels", func(t *testing.T) {
		for _, level := range []string{"debug", "info", "warn", "error"} {
			err := app.Run([]string{"gaceta", "--log-level", level})
			assert.NoError(t, err, "level %s", level)
		}
	})

	t.Run("invalid level", func(t *testing.T) {
		err := app.Run([]string{"gaceta", "--log-level", "loud"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})

	t.Run("debug level lowers default logger threshold", func(t *testing.T) {
		err := app.Run([]string{"gaceta", "--log-level", "debug"})
		require.NoError(t, err)
		assert.True(t, slog.Default().Enabled(nil, slog.LevelDebug))
	})
}
