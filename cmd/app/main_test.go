package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRun_ReturnsStartupErrors(t *testing.T) {
	t.Run("invalid configuration", func(t *testing.T) {
		t.Setenv("STORE_DRIVER", "sqlite")

		err := run()

		require.ErrorContains(t, err, "invalid configuration")
	})

	t.Run("logger cannot be created", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "loud")

		err := run()

		require.ErrorContains(t, err, "failed to create logger")
	})
}
