package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"
	"unicode"

	"github.com/ValentinKolb/rubin/lib/store"
	"github.com/ValentinKolb/rubin/lib/store/lstore"
	"github.com/ValentinKolb/rubin/lib/store/pstore"
	"github.com/ValentinKolb/rubin/rpc/common"
	"github.com/ValentinKolb/rubin/rpc/serializer"
	"github.com/ValentinKolb/rubin/rpc/transport"
	"github.com/ValentinKolb/rubin/rpc/transport/tcp"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/spf13/afero"
)

var Logger = logger.GetLogger("rpc")

// Start launches a server on address:port with the default configuration
// (tcp transport, text protocol, in-memory store) and blocks until it fails.
func Start(address string, port int) error {
	s := NewRPCServer(
		common.NewServerConfig(address, port),
		tcp.NewTCPServerTransport(),
		serializer.NewTextSerializer(),
	)
	if err := s.Listen(); err != nil {
		return err
	}
	return s.Serve()
}

// NewRPCServer creates a new RPC server
// It takes a config, transport and serializer as parameters
//
// Usage:
//
//	s := server.NewRPCServer(
//		common.NewServerConfig("0.0.0.0", common.DefaultPort),
//		tcp.NewTCPServerTransport(),
//		serializer.NewTextSerializer(),
//	)
//
//	if err := s.Listen(); err != nil {
//		panic(err)
//	}
//	go s.Serve()
//	defer s.Shutdown(context.Background())
func NewRPCServer(
	config common.ServerConfig,
	transport transport.IRPCServerTransport,
	serializer serializer.IRPCSerializer,
) *RPCServer {
	// https://github.com/golang/go/issues/17393
	if runtime.GOOS == "darwin" {
		signal.Ignore(syscall.Signal(0xd))
	}

	fs := afero.NewOsFs()

	return &RPCServer{
		config:     config,
		transport:  transport,
		serializer: serializer,
		adapter:    NewIStoreServerAdapter(fs),
		fs:         fs,
		metrics:    newServerMetrics(transport),
	}
}

// RPCServer owns the single store of the process and serves it over a transport
type RPCServer struct {
	config     common.ServerConfig
	transport  transport.IRPCServerTransport
	serializer serializer.IRPCSerializer
	adapter    IRPCServerAdapter
	fs         afero.Fs
	metrics    *serverMetrics

	store         store.IStore
	shared        *store.Shared
	metricsServer *http.Server
}

// Listen initializes the loggers and the store and binds the transport.
// A corrupt snapshot in the data directory is returned as an error.
func (s *RPCServer) Listen() error {
	if err := s.config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := common.InitLoggers(s.config.LogLevel); err != nil {
		return err
	}

	Logger.Infof("Created RPC Server")
	Logger.Infof("%s", s.config.String())

	st, err := s.createStore()
	if err != nil {
		return err
	}
	s.store = st
	s.shared = store.NewShared(st)

	s.transport.RegisterHandler(s.handle)
	if err := s.transport.Listen(s.config); err != nil {
		return err
	}

	if s.config.MetricsEndpoint != "" {
		if err := s.startMetricsServer(); err != nil {
			_ = s.transport.Close()
			return err
		}
	}

	Logger.Infof("rubin setup completed successfully")
	return nil
}

// Serve accepts connections until Shutdown is called
func (s *RPCServer) Serve() error {
	return s.transport.Serve()
}

// Addr returns the address the transport is bound to (nil before Listen)
func (s *RPCServer) Addr() net.Addr {
	return s.transport.Addr()
}

// Shutdown stops the transport and waits for running requests.
// A persistent store without write-on-update is flushed afterwards.
func (s *RPCServer) Shutdown(ctx context.Context) error {
	var errs []error

	if err := s.transport.Close(); err != nil {
		errs = append(errs, err)
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop metrics server: %w", err))
		}
	}

	if ps, ok := s.store.(*pstore.Store); ok && !ps.WriteOnUpdate() {
		err := s.shared.Do(func(store.IStore) error {
			return ps.Write()
		})
		if err != nil {
			errs = append(errs, err)
		} else {
			Logger.Infof("Flushed %d keys to %s", ps.Len(), ps.Path())
		}
	}

	return errors.Join(errs...)
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// createStore creates the in-memory store or, with a data directory, the persistent store
func (s *RPCServer) createStore() (store.IStore, error) {
	if !s.config.IsPersistent() {
		Logger.Infof("Using in-memory store")
		return lstore.NewLocalStore(), nil
	}

	ps, err := pstore.FromExisting(s.fs, s.config.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open store in %s: %w", s.config.DataDir, err)
	}
	ps.SetWriteOnUpdate(s.config.WriteOnUpdate)
	Logger.Infof("Using persistent store %s (write on update: %t)", ps.Path(), s.config.WriteOnUpdate)
	return ps, nil
}

// handle is the transport handler: decode, apply under the store lock, encode.
// The response is encoded after the lock is released.
func (s *RPCServer) handle(req []byte) []byte {
	start := time.Now()

	raw := strings.TrimRightFunc(strings.ToValidUTF8(string(req), "\uFFFD"), unicode.IsSpace)

	msg, err := s.serializer.DecodeRequest(raw)
	if err != nil {
		Logger.Debugf("Rejected request %q: %v", raw, err)
		s.metrics.observeRejected(start)
		return []byte(s.serializer.EncodeResponse(common.OpError, err.Error()))
	}

	var (
		op      common.Operation
		payload string
	)
	_ = s.shared.Do(func(st store.IStore) error {
		op, payload = s.adapter.Handle(msg, st)
		return nil
	})

	if op == common.OpError {
		Logger.Warningf("%s failed: %s", msg.Op, payload)
	}
	s.metrics.observe(msg.Op, op, start)

	return []byte(s.serializer.EncodeResponse(op, payload))
}

// startMetricsServer serves the prometheus metrics on the configured endpoint
func (s *RPCServer) startMetricsServer() error {
	listener, err := net.Listen("tcp", s.config.MetricsEndpoint)
	if err != nil {
		return fmt.Errorf("failed to listen on metrics endpoint %s: %w", s.config.MetricsEndpoint, err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/metrics", func(w http.ResponseWriter, _ *http.Request) {
		s.metrics.writePrometheus(w)
	})

	s.metricsServer = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := s.metricsServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			Logger.Errorf("Metrics server stopped: %v", err)
		}
	}()

	Logger.Infof("Serving metrics on http://%s/metrics", listener.Addr())
	return nil
}
