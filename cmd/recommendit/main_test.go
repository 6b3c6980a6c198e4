package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func findStringFlag(flags []cli.Flag, name string) *cli.StringFlag {
	for _, flag := range flags {
		if f, ok := flag.(*cli.StringFlag); ok && f.Name == name {
			return f
		}
	}
	return nil
}

func TestEngineFlags(t *testing.T) {
	flags := engineFlags()

	t.Run("catalog is required", func(t *testing.T) {
		f := findStringFlag(flags, "catalog")
		require.NotNil(t, f)
		assert.True(t, f.Required)
		assert.Empty(t, f.Value)
	})

	t.Run("embedding-host has local default", func(t *testing.T) {
		f := findStringFlag(flags, "embedding-host")
		require.NotNil(t, f)
		assert.Equal(t, "http://localhost:11434/v1", f.Value)
	})

	t.Run("extractor-host defaults to empty", func(t *testing.T) {
		// Empty means "same host as embeddings", resolved at provider setup.
		f := findStringFlag(flags, "extractor-host")
		require.NotNil(t, f)
		assert.Empty(t, f.Value)
	})

	t.Run("cache-dir defaults to disabled", func(t *testing.T) {
		f := findStringFlag(flags, "cache-dir")
		require.NotNil(t, f)
		assert.Empty(t, f.Value)
	})
}

func TestStatsCommandRequiresCatalog(t *testing.T) {
	app := &cli.App{
		Name: "recommendit",
		Commands: []*cli.Command{
			{
				Name:   "stats",
				Action: statsCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "catalog",
						Required: true,
					},
				},
			},
		},
	}

	err := app.Run([]string{"recommendit", "stats"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "catalog")
}

func TestSetupLogger(t *testing.T) {
	newApp := func() *cli.App {
		return &cli.App{
			Name: "test",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "log-level",
					Value: "info",
				},
			},
			Before: setupLogger,
			Action: func(c *cli.Context) error {
				return nil
			},
		}
	}

	t.Run("valid log levels", func(t *testing.T) {
		for _, level := range []string{"debug", "info", "warn", "error"} {
			t.Run(level, func(t *testing.T) {
				err := newApp().Run([]string{"test", "--log-level", level})
				require.NoError(t, err)
			})
		}
	})

	t.Run("case insensitive", func(t *testing.T) {
		for _, level := range []string{"DEBUG", "Info", "WaRn"} {
			t.Run(level, func(t *testing.T) {
				err := newApp().Run([]string{"test", "--log-level", level})
				require.NoError(t, err)
			})
		}
	})

	t.Run("invalid log level returns error", func(t *testing.T) {
		err := newApp().Run([]string{"test", "--log-level", "loud"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})
}
