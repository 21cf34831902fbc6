package serve

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	cmdUtil "github.com/ValentinKolb/rubin/cmd/util"
	"github.com/ValentinKolb/rubin/rpc/common"
	"github.com/ValentinKolb/rubin/rpc/serializer"
	"github.com/ValentinKolb/rubin/rpc/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// shutdownTimeout bounds the graceful shutdown after a signal
const shutdownTimeout = 10 * time.Second

var (
	serveCmdConfig = &common.ServerConfig{}
	ServeCmd       = &cobra.Command{
		Use:     "serve",
		Short:   "Start the rubin server",
		Long:    `Start the rubin server with the specified configuration. The configuration can be set via command line flags or environment variables. The format of the environment variables is RUBIN_<flag> (e.g. RUBIN_DATA_DIR=/var/lib/rubin)`,
		PreRunE: processConfig,
		RunE:    run,
	}
)

func init() {
	// add flags
	key := "address"
	ServeCmd.PersistentFlags().String(key, "0.0.0.0", cmdUtil.WrapString("The address the tcp transport listens on"))

	key = "port"
	ServeCmd.PersistentFlags().Int(key, common.DefaultPort, cmdUtil.WrapString("The port the tcp transport listens on"))

	key = "socket"
	ServeCmd.PersistentFlags().String(key, "/tmp/rubin.sock", cmdUtil.WrapString("The socket path the unix transport listens on"))

	key = "data-dir"
	ServeCmd.PersistentFlags().String(key, "", cmdUtil.WrapString("Directory of the persistent store. The snapshot in it is loaded on start. If empty, the store lives in memory only"))

	key = "write-on-update"
	ServeCmd.PersistentFlags().Bool(key, false, cmdUtil.WrapString("Write the snapshot after every mutation (only with --data-dir). Otherwise the store is written on shutdown"))

	key = "read-buffer"
	ServeCmd.PersistentFlags().Int(key, common.DefaultBufferSize, cmdUtil.WrapString("The size of the buffer a request is read into (in bytes). Longer requests are cut off"))

	key = "write-buffer"
	ServeCmd.PersistentFlags().Int(key, 0, cmdUtil.WrapString("The size of the socket write buffer (in bytes, 0 = system default, only for tcp)"))

	key = "tcp-nodelay"
	ServeCmd.PersistentFlags().Bool(key, true, cmdUtil.WrapString("Whether to enable TCP_NODELAY (only for tcp)"))

	key = "tcp-keepalive"
	ServeCmd.PersistentFlags().Int(key, 0, cmdUtil.WrapString("The keepalive interval (in seconds, 0 = disabled, only for tcp)"))

	key = "tcp-linger"
	ServeCmd.PersistentFlags().Int(key, -1, cmdUtil.WrapString("The linger time (in seconds, -1 = system default, only for tcp)"))

	key = "metrics-endpoint"
	ServeCmd.PersistentFlags().String(key, "", cmdUtil.WrapString("Address of the http endpoint serving prometheus metrics on /metrics (e.g. localhost:9877). Disabled if empty"))

	key = "log-level"
	ServeCmd.PersistentFlags().String(key, "info", cmdUtil.WrapString("LogLevel is the level at which logs will be output (debug, info, warn, error)"))
}

// processConfig reads the configuration from the command line flags and environment variables and converts them to the server configuration
func processConfig(cmd *cobra.Command, _ []string) error {
	// bind the flags to viper
	if err := cmdUtil.BindCommandFlags(cmd); err != nil {
		return err
	}

	*serveCmdConfig = common.NewServerConfig(viper.GetString("address"), viper.GetInt("port"))

	switch viper.GetString("transport") {
	case "tcp":
	case "unix":
		serveCmdConfig.Endpoint = viper.GetString("socket")
	default:
		return fmt.Errorf("invalid transport %s", viper.GetString("transport"))
	}

	serveCmdConfig.DataDir = viper.GetString("data-dir")
	serveCmdConfig.WriteOnUpdate = viper.GetBool("write-on-update")
	serveCmdConfig.MetricsEndpoint = viper.GetString("metrics-endpoint")
	serveCmdConfig.LogLevel = viper.GetString("log-level")

	serveCmdConfig.Transport.ReadBufferSize = viper.GetInt("read-buffer")
	serveCmdConfig.Transport.WriteBufferSize = viper.GetInt("write-buffer")
	serveCmdConfig.Transport.TCPNoDelay = viper.GetBool("tcp-nodelay")
	serveCmdConfig.Transport.TCPKeepAliveSec = viper.GetInt("tcp-keepalive")
	serveCmdConfig.Transport.TCPLingerSec = viper.GetInt("tcp-linger")

	if serveCmdConfig.WriteOnUpdate && !serveCmdConfig.IsPersistent() {
		return fmt.Errorf("--write-on-update requires --data-dir")
	}

	return serveCmdConfig.Validate()
}

// run starts the rubin server and stops it on SIGINT or SIGTERM
func run(_ *cobra.Command, _ []string) error {
	t, err := cmdUtil.GetServerTransport()
	if err != nil {
		return err
	}

	serv := server.NewRPCServer(
		*serveCmdConfig,
		t,
		serializer.NewTextSerializer(),
	)

	if err := serv.Listen(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errC := make(chan error, 1)
	go func() { errC <- serv.Serve() }()

	select {
	case err := <-errC:
		return err
	case <-ctx.Done():
		server.Logger.Infof("Received signal, shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := serv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errC
}
