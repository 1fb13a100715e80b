package rpc

import (
	"net"
	"net/rpc"

	"github.com/wfunc/starpoker/game"
	"github.com/wfunc/starpoker/logger"
)

// Server manages the RPC listener.
type Server struct {
	listener net.Listener
	address  string
}

// NewServer creates a new RPC server. Services are registered by the
// caller through the net/rpc package before Start.
func NewServer(addr string) (*Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &Server{
		listener: listener,
		address:  addr,
	}, nil
}

// Start begins listening for RPC requests.
func (s *Server) Start() {
	logger.Log.Infof("RPC server listening on %s", s.address)
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			// Check if the error is due to the listener being closed.
			if _, ok := err.(*net.OpError); ok {
				logger.Log.Info("RPC server listener closed.")
				return
			}
			logger.Log.Errorf("RPC server accept error: %v", err)
			continue
		}
		go rpc.ServeConn(conn)
	}
}

// Stop closes the RPC listener.
func (s *Server) Stop() {
	if s.listener != nil {
		logger.Log.Info("Stopping RPC server.")
		s.listener.Close()
	}
}

// Admin exposes read-only room inspection over net/rpc. Methods follow the
// net/rpc signature rules: exported args, pointer reply, error return.
type Admin struct {
	registry *game.Registry
}

func NewAdmin(registry *game.Registry) *Admin {
	return &Admin{registry: registry}
}

type RoomCountArgs struct{}

func (a *Admin) RoomCount(args *RoomCountArgs, reply *int) error {
	*reply = a.registry.Len()
	return nil
}

type RoomSnapshotArgs struct {
	Code string
}

func (a *Admin) RoomSnapshot(args *RoomSnapshotArgs, reply *game.Snapshot) error {
	room, exists := a.registry.GetRoom(args.Code)
	if !exists {
		return game.ErrRoomNotFound
	}
	*reply = *room.Snapshot()
	return nil
}
