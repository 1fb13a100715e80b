package server

import (
	"encoding/json"
	"net/http"
	"net/rpc"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/wfunc/starpoker/broadcast"
	"github.com/wfunc/starpoker/config"
	"github.com/wfunc/starpoker/game"
	"github.com/wfunc/starpoker/logger"
	"github.com/wfunc/starpoker/monitor"
	"github.com/wfunc/starpoker/network"
	"github.com/wfunc/starpoker/persistence"
	adminrpc "github.com/wfunc/starpoker/rpc"
	"github.com/wfunc/starpoker/services"
	"github.com/wfunc/starpoker/session"
	"github.com/wfunc/starpoker/timer"
)

type GameServer struct {
	cfg          *config.Config
	upgrader     websocket.Upgrader
	registry     *game.Registry
	sessions     *session.Manager
	broadcaster  broadcast.Broadcaster
	records      *services.RecordService
	monitor      *monitor.Monitor
	timers       *timer.Manager
	rpcServer    *adminrpc.Server
	shutdownChan chan struct{}
}

func NewGameServer(cfg *config.Config, db persistence.Database) *GameServer {
	s := &GameServer{
		cfg:          cfg,
		registry:     game.NewRegistry(cfg.Game.CodeLength, cfg.Game.AllowSteal),
		sessions:     session.NewManager(),
		records:      services.NewRecordService(db),
		monitor:      monitor.NewMonitor("starpoker"),
		timers:       timer.NewManager(),
		shutdownChan: make(chan struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // allow all origins
			},
		},
	}

	s.broadcaster = broadcast.NewRoomBroadcaster(s.sessions)

	return s
}

func (s *GameServer) Start() error {
	rpcServer, err := adminrpc.NewServer(s.cfg.Server.RPCAddress)
	if err != nil {
		return err
	}
	s.rpcServer = rpcServer
	rpc.Register(adminrpc.NewAdmin(s.registry))
	go s.rpcServer.Start()

	if addr := s.cfg.Server.MetricsAddress; addr != "" {
		s.monitor.StartServer(addr)
	}

	// Idle rooms are swept on the timer manager so the registry cannot
	// grow without bound.
	if ttl := s.cfg.Game.IdleTTL; ttl > 0 {
		s.timers.AddTimer(ttl, time.Minute, func() {
			if removed := s.registry.SweepIdle(ttl); removed > 0 {
				logger.Log.Infof("Swept %d idle rooms", removed)
			}
			s.monitor.SetActiveRooms(s.registry.Len())
		})
	}

	http.HandleFunc("/ws", s.handleWebSocket)
	logger.Log.Infof("Game server listening on %s", s.cfg.Server.HTTPAddress)
	return http.ListenAndServe(s.cfg.Server.HTTPAddress, nil)
}

func (s *GameServer) Shutdown() {
	close(s.shutdownChan)
	s.timers.Stop()
	if s.rpcServer != nil {
		s.rpcServer.Stop()
	}
}

func (s *GameServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Infof("Failed to upgrade connection: %v", err)
		return
	}
	s.handleConnection(conn)
}

func (s *GameServer) handleConnection(conn *websocket.Conn) {
	wsConn := network.NewWSConnection(conn)
	sess := session.NewSession(uuid.New().String(), wsConn)
	s.sessions.Add(sess)
	s.monitor.IncOnlinePlayers()

	logger.Log.Infof("New connection from %s, session ID: %s", wsConn.RemoteAddr(), sess.GetID())

	defer func() {
		logger.Log.Infof("Connection closed from %s, session ID: %s", wsConn.RemoteAddr(), sess.GetID())
		// The seat stays occupied: identity is tied to the connection, so
		// a dropped client cannot resume it, and the idle sweep is what
		// eventually reclaims the room.
		s.sessions.Remove(sess.GetID())
		s.monitor.DecOnlinePlayers()
		wsConn.Close()
	}()

	for {
		select {
		case <-s.shutdownChan:
			return
		default:
			packet, err := wsConn.ReadPacket()
			if err != nil {
				return
			}
			s.handlePacket(sess, packet)
		}
	}
}

func (s *GameServer) handlePacket(sess *session.Session, packet *network.Packet) {
	start := time.Now()
	s.monitor.IncMessagesReceived()

	switch packet.MsgID {
	case network.MsgTypeHeartbeat:
		sess.LastActive = time.Now()
	case network.MsgTypeCreateRoom:
		s.handleCreateRoom(sess, packet)
	case network.MsgTypeJoinRoom:
		s.handleJoinRoom(sess, packet)
	case network.MsgTypeStartGame:
		s.handleStartGame(sess, packet)
	case network.MsgTypeClaimToken:
		s.handleClaimToken(sess, packet)
	case network.MsgTypeConfirm:
		s.handleConfirm(sess, packet)
	default:
		logger.Log.Infof("Unknown message type: %d", packet.MsgID)
	}

	s.monitor.ObserveMessageLatency(time.Since(start))
}

func (s *GameServer) handleCreateRoom(sess *session.Session, packet *network.Packet) {
	var req network.CreateRoomRequest
	if err := json.Unmarshal(packet.Data, &req); err != nil {
		return
	}

	room := s.registry.CreateRoom(req.Name, sess.GetID())
	sess.Name = req.Name
	sess.RoomCode = room.Code()
	s.monitor.SetActiveRooms(s.registry.Len())

	logger.Log.Infof("Session %s created room %s", sess.GetID(), room.Code())
	s.publish(room)
}

func (s *GameServer) handleJoinRoom(sess *session.Session, packet *network.Packet) {
	var req network.JoinRoomRequest
	if err := json.Unmarshal(packet.Data, &req); err != nil {
		return
	}

	room, err := s.registry.JoinRoom(req.Code, req.Name, sess.GetID())
	if err != nil {
		logger.Log.Debugf("Join rejected for session %s: %v", sess.GetID(), err)
		return
	}

	sess.Name = req.Name
	sess.RoomCode = req.Code

	logger.Log.Infof("Session %s joined room %s", sess.GetID(), req.Code)
	s.publish(room)
}

func (s *GameServer) handleStartGame(sess *session.Session, packet *network.Packet) {
	var req network.StartGameRequest
	if err := json.Unmarshal(packet.Data, &req); err != nil {
		return
	}

	room, exists := s.registry.GetRoom(req.Code)
	if !exists {
		logger.Log.Debugf("Start rejected for session %s: %v", sess.GetID(), game.ErrRoomNotFound)
		return
	}

	room.StartGame()
	logger.Log.Infof("Room %s dealt a new game", req.Code)
	s.publish(room)
}

func (s *GameServer) handleClaimToken(sess *session.Session, packet *network.Packet) {
	var req network.ClaimTokenRequest
	if err := json.Unmarshal(packet.Data, &req); err != nil {
		return
	}

	room, exists := s.registry.GetRoom(req.Code)
	if !exists {
		logger.Log.Debugf("Claim rejected for session %s: %v", sess.GetID(), game.ErrRoomNotFound)
		return
	}

	// A rejected claim mutates nothing and broadcasts nothing; the action
	// is silently discarded.
	if err := room.ClaimToken(sess.GetID(), req.Index); err != nil {
		logger.Log.Debugf("Claim rejected in room %s for session %s: %v", req.Code, sess.GetID(), err)
		return
	}

	s.monitor.IncTokenClaims()
	s.publish(room)
}

func (s *GameServer) handleConfirm(sess *session.Session, packet *network.Packet) {
	var req network.ConfirmRequest
	if err := json.Unmarshal(packet.Data, &req); err != nil {
		return
	}

	room, exists := s.registry.GetRoom(req.Code)
	if !exists {
		logger.Log.Debugf("Confirm rejected for session %s: %v", sess.GetID(), game.ErrRoomNotFound)
		return
	}

	advanced, err := room.Confirm(sess.GetID())
	if err != nil {
		logger.Log.Debugf("Confirm rejected in room %s for session %s: %v", req.Code, sess.GetID(), err)
		return
	}

	// Broadcast whether or not the barrier was satisfied.
	snap := s.publish(room)

	if advanced {
		s.monitor.IncRoundsAdvanced()
		if snap.Phase == game.PhaseShowdown && snap.Round == game.FirstShowdownRound {
			s.records.SaveShowdown(snap)
		}
	}
}

// publish broadcasts the full room snapshot to every member and persists
// it, then returns the snapshot it sent.
func (s *GameServer) publish(room *game.Room) *game.Snapshot {
	snap := room.Snapshot()

	data, err := json.Marshal(snap)
	if err != nil {
		logger.Log.Errorf("Failed to marshal snapshot for room %s: %v", snap.Code, err)
		return snap
	}

	if err := s.broadcaster.BroadcastToRoom(snap.Code, network.MsgTypeRoomState, data); err != nil {
		logger.Log.Errorf("Failed to broadcast to room %s: %v", snap.Code, err)
	}

	s.records.SaveState(snap)
	return snap
}
