// Package inspector embeds a WebSocket endpoint in the plugin for live
// accessor inspection: clients watch numeric datarefs and receive one
// snapshot event per simulator frame, and can push writes and command
// triggers back in.
//
// Threading is strict. Socket goroutines never touch the simulator;
// every read, write, and trigger is queued and applied inside a flight
// loop callback on the simulator thread, and snapshots cross back to
// the fan-out goroutine over a channel the frame never blocks on.
package inspector

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/xplm-go/xplm/config"
	"github.com/xplm-go/xplm/flightloop"
	"github.com/xplm-go/xplm/logging"
)

var (
	ErrClientClosed = errors.New("client connection closed")
	ErrStopped      = errors.New("inspector stopped")
)

// Server is the embedded HTTP + WebSocket inspector server.
type Server struct {
	settings config.InspectorSettings
	log      *logging.Logger
	clients  *ClientRegistry
	handlers map[string]RequestHandler
	version  string
	plugin   string
	eventSeq atomic.Int64

	mu      sync.Mutex
	running bool
	actions []action
	watches map[string]watchEntry

	loop       *flightloop.Loop
	listener   net.Listener
	httpServer *http.Server
	snapshots  chan Snapshot
	done       chan struct{}

	startedAt   time.Time
	upgrader    websocket.Upgrader
	authLimiter *authRateLimiter
}

// authRateLimiter tracks failed auth attempts per IP to prevent brute-force
// attacks. Entries are pruned on access; the IP cap bounds the map.
type authRateLimiter struct {
	mu       sync.Mutex
	failures map[string][]time.Time
}

const (
	authRateWindow   = 5 * time.Minute
	authRateMaxFails = 10
	authRateMaxIPs   = 10000 // max tracked IPs to prevent memory exhaustion
)

func newAuthRateLimiter() *authRateLimiter {
	return &authRateLimiter{failures: make(map[string][]time.Time)}
}

func (l *authRateLimiter) allow(remoteAddr string) bool {
	host, _, _ := net.SplitHostPort(remoteAddr)
	if host == "" {
		host = remoteAddr
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := time.Now().Add(-authRateWindow)
	recent := l.failures[host]
	filtered := recent[:0]
	for _, t := range recent {
		if t.After(cutoff) {
			filtered = append(filtered, t)
		}
	}
	if len(filtered) == 0 {
		delete(l.failures, host)
		return true
	}
	l.failures[host] = filtered
	return len(filtered) < authRateMaxFails
}

func (l *authRateLimiter) recordFailure(remoteAddr string) {
	host, _, _ := net.SplitHostPort(remoteAddr)
	if host == "" {
		host = remoteAddr
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.failures[host]; !exists && len(l.failures) >= authRateMaxIPs {
		var oldestIP string
		var oldestTime time.Time
		for ip, times := range l.failures {
			if len(times) > 0 && (oldestIP == "" || times[0].Before(oldestTime)) {
				oldestIP = ip
				oldestTime = times[0]
			}
		}
		if oldestIP != "" {
			delete(l.failures, oldestIP)
		}
	}

	l.failures[host] = append(l.failures[host], time.Now())
}

// ServerOption configures the inspector server.
type ServerOption func(*Server)

// WithVersion stamps the library version into the hello payload.
func WithVersion(v string) ServerOption {
	return func(s *Server) {
		s.version = v
	}
}

// WithPluginSignature stamps the hosting plugin's signature into the
// hello payload so a client can tell inspectors apart.
func WithPluginSignature(sig string) ServerOption {
	return func(s *Server) {
		s.plugin = sig
	}
}

// New creates an inspector server. Start it from Enable and stop it from
// Disable; both must run on the simulator thread.
func New(settings config.InspectorSettings, log *logging.Logger, opts ...ServerOption) *Server {
	if log == nil {
		log = logging.Default()
	}
	s := &Server{
		settings:    settings,
		log:         log.Sub("inspector"),
		clients:     NewClientRegistry(log.Sub("clients")),
		handlers:    make(map[string]RequestHandler),
		authLimiter: newAuthRateLimiter(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     checkWebSocketOrigin,
		},
	}

	for _, opt := range opts {
		opt(s)
	}

	s.registerRPCHandlers()
	return s
}

// checkWebSocketOrigin validates WebSocket Origin headers. Non-browser
// clients send no Origin and are allowed; browsers are only accepted
// from a loopback origin, which keeps remote pages from driving a local
// inspector through the user's browser.
func checkWebSocketOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	switch u.Hostname() {
	case "localhost", "127.0.0.1", "::1":
		return true
	}
	return false
}

// Handle registers an RPC method handler.
func (s *Server) Handle(method string, handler RequestHandler) {
	s.handlers[method] = handler
}

// Methods returns the list of registered RPC method names.
func (s *Server) Methods() []string {
	methods := make([]string, 0, len(s.handlers))
	for m := range s.handlers {
		methods = append(methods, m)
	}
	return methods
}

// resolveBindAddr computes the listen address from settings.
func resolveBindAddr(bind string) string {
	if bind == "" {
		return config.Defaults().Inspector.Bind
	}
	return bind
}

// Start registers the inspector's flight loop and begins listening. It
// does not block; the server runs until Stop.
func (s *Server) Start() error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return errors.New("inspector already running")
	}
	s.mu.Unlock()

	loop, err := flightloop.New(flightloop.AfterFlightModel, s.tick)
	if err != nil {
		return fmt.Errorf("inspector flight loop: %w", err)
	}
	if err := loop.Schedule(flightloop.Now()); err != nil {
		loop.Destroy()
		return fmt.Errorf("inspector flight loop: %w", err)
	}

	addr := resolveBindAddr(s.settings.Bind)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		loop.Destroy()
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	mux := http.NewServeMux()
	s.registerHTTPRoutes(mux)
	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.mu.Lock()
	s.running = true
	s.loop = loop
	s.listener = ln
	s.httpServer = srv
	s.watches = make(map[string]watchEntry)
	s.snapshots = make(chan Snapshot, 1)
	s.done = make(chan struct{})
	s.startedAt = time.Now()
	snapshots, done := s.snapshots, s.done
	s.mu.Unlock()

	go s.broadcastLoop(snapshots, done)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error().Err(err).Msg("inspector server stopped unexpectedly")
		}
	}()

	s.log.Info().
		Str("addr", ln.Addr().String()).
		Bool("auth", s.settings.Token != "").
		Int("methods", len(s.handlers)).
		Msg("inspector listening")
	return nil
}

// Stop tears the server down: the flight loop is destroyed, clients are
// closed, and pending actions fail with ErrStopped. Safe to call from
// Disable; returns an error if the server is not running.
func (s *Server) Stop() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return errors.New("inspector not running")
	}
	s.running = false
	actions := s.actions
	s.actions = nil
	s.watches = nil
	loop := s.loop
	s.loop = nil
	srv := s.httpServer
	s.httpServer = nil
	s.listener = nil
	snapshots := s.snapshots
	done := s.done
	s.mu.Unlock()

	for _, a := range actions {
		a.result <- actionResult{err: ErrStopped}
	}

	loop.Destroy()
	s.clients.CloseAll()
	srv.Close()
	close(snapshots)
	<-done

	s.log.Info().Msg("inspector stopped")
	return nil
}

// Addr returns the bound listen address, or empty if not running.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// registerHTTPRoutes wires the HTTP mux.
func (s *Server) registerHTTPRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/", handleNotFound)
}

// handleWebSocket upgrades HTTP to WebSocket and runs the connection loop.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if !s.authLimiter.allow(r.RemoteAddr) {
		s.log.Warn().Str("remote", r.RemoteAddr).Msg("rate limited — too many failed auth attempts")
		http.Error(w, "too many requests", http.StatusTooManyRequests)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error().Err(err).Msg("websocket upgrade failed")
		return
	}

	conn.SetReadLimit(1 * 1024 * 1024) // 1MB

	s.log.Debug().Str("remote", r.RemoteAddr).Msg("new websocket connection")

	client, err := s.handshake(conn)
	if err != nil {
		s.log.Warn().Err(err).Msg("handshake failed")
		s.authLimiter.recordFailure(conn.RemoteAddr().String())
		conn.Close()
		return
	}

	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		conn.Close()
		return
	}
	s.clients.Add(client)
	s.mu.Unlock()
	defer func() {
		s.clients.Remove(client.ConnID)
		client.Close()
	}()

	s.readLoop(client)
}

// handshake performs the WebSocket authentication handshake.
// Flow: server sends challenge → client sends connect → server validates → sends hello-ok.
func (s *Server) handshake(conn *websocket.Conn) (*Client, error) {
	conn.SetReadDeadline(time.Now().Add(10 * time.Second))

	nonce := uuid.New().String()
	challenge, err := NewEvent("connect.challenge", map[string]any{
		"nonce": nonce,
		"ts":    time.Now().UnixMilli(),
	}, 0)
	if err != nil {
		return nil, fmt.Errorf("creating challenge: %w", err)
	}
	if err := conn.WriteJSON(challenge); err != nil {
		return nil, fmt.Errorf("sending challenge: %w", err)
	}

	_, msg, err := conn.ReadMessage()
	if err != nil {
		return nil, fmt.Errorf("reading connect: %w", err)
	}

	var frame Frame
	if err := json.Unmarshal(msg, &frame); err != nil {
		return nil, fmt.Errorf("parsing connect frame: %w", err)
	}

	if frame.Type != FrameTypeRequest || frame.Method != "connect" {
		sendErrorAndClose(conn, frame.ID, "protocol_error", "expected connect request")
		return nil, fmt.Errorf("expected connect request, got type=%s method=%s", frame.Type, frame.Method)
	}

	var params ConnectParams
	if err := json.Unmarshal(frame.Params, &params); err != nil {
		sendErrorAndClose(conn, frame.ID, "invalid_params", "invalid connect params")
		return nil, fmt.Errorf("parsing connect params: %w", err)
	}

	if params.MinProtocol > ProtocolVersion || (params.MaxProtocol != 0 && params.MaxProtocol < ProtocolVersion) {
		sendErrorAndClose(conn, frame.ID, "protocol_mismatch",
			fmt.Sprintf("server speaks protocol %d", ProtocolVersion))
		return nil, fmt.Errorf("protocol mismatch: client wants %d..%d", params.MinProtocol, params.MaxProtocol)
	}

	authResult := Authorize(s.settings.Token, params.Auth)
	if !authResult.OK {
		sendErrorAndClose(conn, frame.ID, "unauthorized", authResult.Reason)
		return nil, fmt.Errorf("auth failed: %s", authResult.Reason)
	}

	conn.SetReadDeadline(time.Time{})

	client := NewClient(conn, params.Client, authResult, s.log.Sub("ws"))

	hello := HelloOK{
		Protocol: ProtocolVersion,
		Server: ServerInfo{
			Version: s.version,
			Plugin:  s.plugin,
			ConnID:  client.ConnID,
		},
		Features: Features{
			Methods: s.Methods(),
			Events:  []string{"connect.challenge", "data.snapshot"},
		},
	}

	resp, err := NewResponse(frame.ID, hello)
	if err != nil {
		return nil, fmt.Errorf("creating hello response: %w", err)
	}
	if err := conn.WriteJSON(resp); err != nil {
		return nil, fmt.Errorf("sending hello: %w", err)
	}

	s.log.Info().
		Str("connId", client.ConnID).
		Str("clientId", params.Client.ID).
		Str("authMethod", authResult.Method).
		Msg("client authenticated")

	return client, nil
}

// readLoop processes incoming frames from an authenticated client.
func (s *Server) readLoop(client *Client) {
	for {
		frame, err := client.ReadFrame()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.Debug().Str("connId", client.ConnID).Msg("client closed connection")
			} else {
				s.log.Warn().Err(err).Str("connId", client.ConnID).Msg("read error")
			}
			return
		}

		if frame.Type != FrameTypeRequest {
			s.log.Debug().Str("type", frame.Type).Msg("ignoring non-request frame")
			continue
		}

		s.dispatch(client, frame)
	}
}

// dispatch routes a request frame to the appropriate handler.
func (s *Server) dispatch(client *Client, frame Frame) {
	handler, ok := s.handlers[frame.Method]
	if !ok {
		client.RespondError(frame.ID, ErrorShape{
			Code:    "method_not_found",
			Message: "unknown method: " + frame.Method,
		})
		return
	}

	rc := &RequestContext{
		Client: client,
		Frame:  frame,
		Server: s,
	}

	handler(rc)
}

// sendErrorAndClose sends an error response and closes the connection.
func sendErrorAndClose(conn *websocket.Conn, reqID, code, message string) {
	errFrame := NewErrorResponse(reqID, ErrorShape{
		Code:    code,
		Message: message,
	})
	conn.WriteJSON(errFrame)
	conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, message))
}
