package util

import (
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapString(t *testing.T) {
	text := strings.Repeat("word ", 30)
	for _, line := range strings.Split(WrapString(text), "\n") {
		assert.LessOrEqual(t, len(line), Wrap)
	}
	assert.Equal(t, "short text", WrapString("  short   text "))
}

func TestGetClientConfig(t *testing.T) {
	t.Cleanup(viper.Reset)

	viper.Set("timeout", 3)
	viper.Set("endpoint", "127.0.0.1:1234")
	viper.Set("read-buffer", 128)
	viper.Set("tcp-nodelay", true)

	config := GetClientConfig()
	assert.Equal(t, 3, config.TimeoutSecond)
	assert.Equal(t, "127.0.0.1:1234", config.Transport.Endpoint)
	assert.Equal(t, 128, config.Transport.ReadBufferSize)
	assert.True(t, config.Transport.TCPNoDelay)
}

func TestGetTransport(t *testing.T) {
	t.Cleanup(viper.Reset)

	for _, name := range []string{"tcp", "unix"} {
		viper.Set("transport", name)
		_, err := GetTransport()
		require.NoError(t, err)
		_, err = GetServerTransport()
		require.NoError(t, err)
	}

	viper.Set("transport", "http")
	_, err := GetTransport()
	assert.Error(t, err)
	_, err = GetServerTransport()
	assert.Error(t, err)
}
