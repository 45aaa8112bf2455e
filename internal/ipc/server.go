package ipc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"os"
	"strings"
	"sync"

	"log/slog"

	"layoutkit/internal/logging"
)

// Server exposes a property Backend via JSON-RPC over a Unix domain socket.
type Server struct {
	path      string
	logger    *slog.Logger
	listener  net.Listener
	rpcServer *rpc.Server

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu    sync.Mutex
	conns map[net.Conn]struct{}
}

// NewServer configures the IPC server at the given socket path.
func NewServer(ctx context.Context, path string, backend Backend, logger *slog.Logger) (*Server, error) {
	if backend == nil {
		return nil, errors.New("ipc server requires backend")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logging.NewComponentLogger(logger, "ipc")

	if err := os.RemoveAll(path); err != nil {
		return nil, fmt.Errorf("remove existing socket: %w", err)
	}

	listener, err := net.Listen("unix", path)
	if err != nil {
		return nil, fmt.Errorf("listen on socket: %w", err)
	}

	serverCtx, cancel := context.WithCancel(ctx)
	rpcServer := rpc.NewServer()
	srv := &service{backend: backend, logger: logger, ctx: serverCtx}
	if err := rpcServer.RegisterName(serviceName, srv); err != nil {
		cancel()
		listener.Close()
		return nil, fmt.Errorf("register rpc service: %w", err)
	}

	return &Server{
		path:      path,
		logger:    logger,
		listener:  listener,
		rpcServer: rpcServer,
		ctx:       serverCtx,
		cancel:    cancel,
		conns:     make(map[net.Conn]struct{}),
	}, nil
}

// Path returns the socket location.
func (s *Server) Path() string {
	return s.path
}

// Serve starts accepting RPC connections until the context is canceled.
func (s *Server) Serve() {
	s.logger.Debug("IPC server listening", logging.String("socket", s.path))
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			conn, err := s.listener.Accept()
			if err != nil {
				select {
				case <-s.ctx.Done():
					return
				default:
				}
				if errors.Is(err, net.ErrClosed) {
					return
				}
				logging.WarnWithContext(s.logger, "accept failed", "ipc_accept_failed",
					logging.Error(err),
					logging.String(logging.FieldImpact, "property clients may fail to connect"),
					logging.String(logging.FieldErrorHint, "Check socket permissions and restart layoutctl serve"))
				continue
			}
			if !s.track(conn) {
				_ = conn.Close()
				return
			}
			s.wg.Add(1)
			go func(c net.Conn) {
				defer s.wg.Done()
				defer s.untrack(c)
				s.rpcServer.ServeCodec(jsonrpc.NewServerCodec(c))
			}(conn)
		}
	}()
}

// track registers an accepted connection. It refuses once the server is closing.
func (s *Server) track(conn net.Conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ctx.Err() != nil {
		return false
	}
	s.conns[conn] = struct{}{}
	return true
}

func (s *Server) untrack(conn net.Conn) {
	s.mu.Lock()
	delete(s.conns, conn)
	s.mu.Unlock()
}

// Close stops the server, disconnects open clients, and removes the socket file.
func (s *Server) Close() {
	s.mu.Lock()
	s.cancel()
	for conn := range s.conns {
		_ = conn.Close()
	}
	s.mu.Unlock()
	if s.listener != nil {
		_ = s.listener.Close()
	}
	s.wg.Wait()
	if err := os.RemoveAll(s.path); err != nil {
		logging.WarnWithContext(s.logger, "failed to remove socket", "ipc_socket_cleanup_failed",
			logging.String("socket", s.path),
			logging.Error(err),
			logging.String(logging.FieldImpact, "stale socket may block future starts"),
			logging.String(logging.FieldErrorHint, "Remove the socket file manually"))
	}
}

const serviceName = "Properties"

type service struct {
	backend Backend
	logger  *slog.Logger
	ctx     context.Context
}

func (s *service) Get(req GetRequest, resp *GetResponse) error {
	if err := validateRequest(req.ItemID, req.Key); err != nil {
		return err
	}
	value, err := s.backend.Item(req.ItemID).Get(s.ctx, req.Key)
	if err != nil {
		return err
	}
	resp.Value = value
	return nil
}

func (s *service) Set(req SetRequest, resp *SetResponse) error {
	if err := validateRequest(req.ItemID, req.Key); err != nil {
		return err
	}
	if err := s.backend.Item(req.ItemID).Set(s.ctx, req.Key, req.Value); err != nil {
		return err
	}
	resp.Written = true
	s.logger.Debug("property written",
		logging.String(logging.FieldItemID, req.ItemID),
		logging.String("key", req.Key),
		logging.String("value", req.Value))
	return nil
}

func (s *service) Items(_ ItemsRequest, resp *ItemsResponse) error {
	items, err := s.backend.Items(s.ctx)
	if err != nil {
		return err
	}
	resp.Items = items
	return nil
}

func validateRequest(itemID, key string) error {
	if strings.TrimSpace(itemID) == "" {
		return errors.New("item id is required")
	}
	if strings.TrimSpace(key) == "" {
		return errors.New("property key is required")
	}
	return nil
}
