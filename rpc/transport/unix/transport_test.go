package unix_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ValentinKolb/rubin/rpc/common"
	"github.com/ValentinKolb/rubin/rpc/transport/unix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnixRoundTrip(t *testing.T) {
	// a stale file at the socket path must not prevent listening
	socket := filepath.Join(t.TempDir(), "rubin.sock")
	require.NoError(t, os.WriteFile(socket, []byte("stale"), 0644))

	for i := 0; i < 2; i++ {
		config := common.NewServerConfig("", 0)
		config.Endpoint = socket

		srv := unix.NewUnixServerTransport()
		srv.RegisterHandler(func(req []byte) []byte {
			return append([]byte("got "), req...)
		})
		require.NoError(t, srv.Listen(config))
		go func() { _ = srv.Serve() }()

		clientConfig := common.ClientConfig{TimeoutSecond: 1}
		clientConfig.Transport.Endpoint = socket

		c := unix.NewUnixClientTransport()
		require.NoError(t, c.Connect(clientConfig))

		resp, err := c.Send([]byte("ping"))
		require.NoError(t, err)
		assert.Equal(t, "got ping", string(resp))

		require.NoError(t, srv.Close())
	}
}
