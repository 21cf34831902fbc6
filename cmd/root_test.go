package cmd

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvIsLoadedForEveryCommand(t *testing.T) {
	t.Cleanup(viper.Reset)
	t.Setenv("RUBIN_TRANSPORT", "unix")

	RootCmd.SetArgs([]string{"version"})
	require.NoError(t, RootCmd.Execute())

	// commands without their own setup still see RUBIN_* variables
	assert.Equal(t, "unix", viper.GetString("transport"))
}
