package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMainApp(t *testing.T) {
	t.Run("app structure", func(t *testing.T) {
		app := newApp()
		require.Equal(t, "neo-review", app.Name)

		commandNames := make(map[string]bool)
		for _, cmd := range app.Commands {
			commandNames[cmd.Name] = true
		}
		require.Len(t, commandNames, 5)
		require.True(t, commandNames["review"])
		require.True(t, commandNames["items"])
		require.True(t, commandNames["decode"])
		require.True(t, commandNames["settings"])
		require.True(t, commandNames["address"])
	})

	t.Run("help command", func(t *testing.T) {
		var buf bytes.Buffer
		app := newApp()
		app.Writer = &buf

		err := app.Run(context.Background(), []string{"neo-review", "--help"})
		require.NoError(t, err)

		output := buf.String()
		require.Contains(t, output, "neo-review")
		require.Contains(t, output, "COMMANDS:")
		require.Contains(t, output, "review")
	})
}
