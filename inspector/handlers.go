package inspector

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/xplm-go/xplm/command"
	"github.com/xplm-go/xplm/dataref"
)

// HealthResponse is returned by health endpoints. The public HTTP
// endpoint only populates Status; the authenticated RPC handler
// populates all fields.
type HealthResponse struct {
	Status   string `json:"status"`
	Version  string `json:"version,omitempty"`
	Clients  int    `json:"clients,omitempty"`
	Watches  int    `json:"watches,omitempty"`
	UptimeMs int64  `json:"uptimeMs,omitempty"`
}

// handleHealth returns the server health status. Only status is exposed
// publicly; detailed info is available via the authenticated RPC health method.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(HealthResponse{Status: "ok"})
}

// handleNotFound returns a 404 for unknown routes.
func handleNotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	json.NewEncoder(w).Encode(map[string]string{
		"error": "not found",
		"path":  r.URL.Path,
	})
}

// RequestHandler processes an incoming RPC request frame from a client.
type RequestHandler func(ctx *RequestContext)

// RequestContext carries everything a handler needs.
type RequestContext struct {
	Client *Client
	Frame  Frame
	Server *Server
}

// Respond sends a success response.
func (rc *RequestContext) Respond(payload any) {
	if err := rc.Client.Respond(rc.Frame.ID, payload); err != nil {
		rc.Server.log.Warn().Err(err).Str("method", rc.Frame.Method).Msg("failed to send response")
	}
}

// RespondError sends an error response.
func (rc *RequestContext) RespondError(code, message string) {
	rc.Client.RespondError(rc.Frame.ID, ErrorShape{
		Code:    code,
		Message: message,
	})
}

// Params unmarshals the request params into the given target.
func (rc *RequestContext) Params(target any) error {
	if rc.Frame.Params == nil {
		return nil
	}
	return json.Unmarshal(rc.Frame.Params, target)
}

// registerRPCHandlers wires the RPC method table.
func (s *Server) registerRPCHandlers() {
	s.Handle("health", s.rpcHealth)
	s.Handle("data.list", s.rpcDataList)
	s.Handle("data.watch", s.rpcDataWatch)
	s.Handle("data.unwatch", s.rpcDataUnwatch)
	s.Handle("data.write", s.rpcDataWrite)
	s.Handle("command.once", s.rpcCommandOnce)
}

// rpcHealth reports server status. Touches no simulator state, so it
// responds without waiting for a frame.
func (s *Server) rpcHealth(rc *RequestContext) {
	s.mu.Lock()
	watches := len(s.watches)
	startedAt := s.startedAt
	s.mu.Unlock()
	rc.Respond(HealthResponse{
		Status:   "ok",
		Version:  s.version,
		Clients:  s.clients.Count(),
		Watches:  watches,
		UptimeMs: time.Since(startedAt).Milliseconds(),
	})
}

type dataListParams struct {
	Query string `json:"query,omitempty"`
	Limit int    `json:"limit,omitempty"`
}

type dataRefSummary struct {
	Name     string `json:"name"`
	Types    string `json:"types"`
	Writable bool   `json:"writable"`
}

type dataListResult struct {
	Total   int              `json:"total"`
	Matched int              `json:"matched"`
	Refs    []dataRefSummary `json:"refs"`
}

// rpcDataList enumerates published accessors, filtered by a substring
// query. The scan walks the whole registry on one frame; it is meant for
// interactive browsing, not polling.
func (s *Server) rpcDataList(rc *RequestContext) {
	var p dataListParams
	if err := rc.Params(&p); err != nil {
		rc.RespondError("invalid_params", err.Error())
		return
	}
	limit := p.Limit
	if limit <= 0 {
		limit = 50
	}
	if limit > 500 {
		limit = 500
	}

	payload, err := s.enqueue(func() (any, error) {
		return s.listDataRefs(p.Query, limit), nil
	})
	if err != nil {
		rc.RespondError("sim_unavailable", err.Error())
		return
	}
	rc.Respond(payload)
}

// listDataRefs runs on the simulator thread.
func (s *Server) listDataRefs(query string, limit int) dataListResult {
	total := dataref.Count()
	res := dataListResult{Total: total, Refs: []dataRefSummary{}}
	q := strings.ToLower(query)
	for _, d := range dataref.ByIndex(0, total) {
		if d.Name() == "" {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(d.Name()), q) {
			continue
		}
		res.Matched++
		if len(res.Refs) < limit {
			res.Refs = append(res.Refs, dataRefSummary{
				Name:     d.Name(),
				Types:    d.Types().String(),
				Writable: d.Writable(),
			})
		}
	}
	return res
}

type watchParams struct {
	Names []string `json:"names"`
}

// rpcDataWatch adds accessors to the watch set. Resolution needs the
// simulator, so the request rides the next frame.
func (s *Server) rpcDataWatch(rc *RequestContext) {
	var p watchParams
	if err := rc.Params(&p); err != nil {
		rc.RespondError("invalid_params", err.Error())
		return
	}
	if len(p.Names) == 0 {
		rc.RespondError("invalid_params", "names is required")
		return
	}

	payload, err := s.enqueue(func() (any, error) {
		return s.addWatches(p.Names), nil
	})
	if err != nil {
		rc.RespondError("sim_unavailable", err.Error())
		return
	}
	rc.Respond(payload)
}

// rpcDataUnwatch removes accessors from the watch set.
func (s *Server) rpcDataUnwatch(rc *RequestContext) {
	var p watchParams
	if err := rc.Params(&p); err != nil {
		rc.RespondError("invalid_params", err.Error())
		return
	}
	if len(p.Names) == 0 {
		rc.RespondError("invalid_params", "names is required")
		return
	}
	rc.Respond(s.removeWatches(p.Names))
}

type dataWriteParams struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

type dataWriteResult struct {
	Name    string  `json:"name"`
	Value   float64 `json:"value"`
	Applied bool    `json:"applied"`
}

// rpcDataWrite sets a numeric accessor. The write lands on the next
// frame, after the flight model for that frame has already run.
func (s *Server) rpcDataWrite(rc *RequestContext) {
	var p dataWriteParams
	if err := rc.Params(&p); err != nil {
		rc.RespondError("invalid_params", err.Error())
		return
	}
	if p.Name == "" {
		rc.RespondError("invalid_params", "name is required")
		return
	}

	payload, err := s.enqueue(func() (any, error) {
		if err := writeNumeric(p.Name, p.Value); err != nil {
			return nil, err
		}
		return dataWriteResult{Name: p.Name, Value: p.Value, Applied: true}, nil
	})
	if err != nil {
		rc.RespondError(writeErrorCode(err), err.Error())
		return
	}
	rc.Respond(payload)
}

// writeNumeric runs on the simulator thread. The widest published
// numeric type wins, matching the read side.
func writeNumeric(name string, value float64) error {
	d, err := dataref.Find(name)
	if err != nil {
		return err
	}
	if r, err := d.Double(); err == nil {
		v, err := r.Writable()
		if err != nil {
			return err
		}
		v.Write(value)
		return nil
	}
	if r, err := d.Float(); err == nil {
		v, err := r.Writable()
		if err != nil {
			return err
		}
		v.Write(float32(value))
		return nil
	}
	if r, err := d.Int(); err == nil {
		v, err := r.Writable()
		if err != nil {
			return err
		}
		v.Write(int32(math.Round(value)))
		return nil
	}
	return fmt.Errorf("dataref %q: %w", name, dataref.ErrTypeMismatch)
}

// writeErrorCode maps write failures onto protocol error codes.
func writeErrorCode(err error) string {
	switch {
	case errors.Is(err, dataref.ErrNotFound):
		return "not_found"
	case errors.Is(err, dataref.ErrReadOnly):
		return "not_writable"
	case errors.Is(err, dataref.ErrTypeMismatch):
		return "unsupported_type"
	case errors.Is(err, ErrStopped):
		return "sim_unavailable"
	default:
		return "sim_unavailable"
	}
}

type commandOnceParams struct {
	Name string `json:"name"`
}

type commandOnceResult struct {
	Name      string `json:"name"`
	Triggered bool   `json:"triggered"`
}

// rpcCommandOnce triggers a command's press-and-release on the next
// frame.
func (s *Server) rpcCommandOnce(rc *RequestContext) {
	var p commandOnceParams
	if err := rc.Params(&p); err != nil {
		rc.RespondError("invalid_params", err.Error())
		return
	}
	if p.Name == "" {
		rc.RespondError("invalid_params", "name is required")
		return
	}

	payload, err := s.enqueue(func() (any, error) {
		c, ok := command.Find(p.Name)
		if !ok {
			return nil, fmt.Errorf("command %q not found", p.Name)
		}
		c.Once()
		return commandOnceResult{Name: p.Name, Triggered: true}, nil
	})
	if err != nil {
		if errors.Is(err, ErrStopped) || errors.Is(err, errFrameTimeout) {
			rc.RespondError("sim_unavailable", err.Error())
			return
		}
		rc.RespondError("not_found", err.Error())
		return
	}
	rc.Respond(payload)
}
