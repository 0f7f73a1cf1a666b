package server

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	inkerr "github.com/inkwell-dev/inkwell/internal/errors"
	"github.com/inkwell-dev/inkwell/pkg/editor"
	"github.com/inkwell-dev/inkwell/pkg/engine"
)

type errorResponse struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("server: response encode failed", "error", err)
	}
}

func (s *Server) writeCoded(w http.ResponseWriter, status int, err *inkerr.Error) {
	s.writeJSON(w, status, errorResponse{
		Code:    err.Code,
		Message: err.Message,
		Detail:  err.Detail,
	})
}

// readBody reads a size-capped request body.
func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes))
	if err != nil {
		s.writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Message: "body too large"})
		return nil, false
	}
	return body, true
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleMount creates an instance from an attribute map. Each malformed
// attribute falls back to its default; a bad attribute never fails the
// mount.
func (s *Server) handleMount(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	body, ok := s.readBody(w, r)
	if !ok {
		return
	}

	attrs := make(map[string]string)
	if len(body) > 0 {
		if err := json.Unmarshal([]byte(editor.EscapeControlChars(string(body))), &attrs); err != nil {
			s.logger.Warn("server: bad mount attributes, using defaults", "id", id, "error", err)
			attrs = map[string]string{}
		}
	}

	cfg := editor.ParseConfig(attrs, s.logger)
	if len(cfg.Documents) == 0 {
		cfg.Documents = []editor.Document{{ID: id}}
	} else {
		cfg.Documents[0].ID = id
	}
	if s.cfg.Sanitize {
		cfg.Documents[0].Body = s.policy.Sanitize(cfg.Documents[0].Body)
	}

	if old, exists := s.registry.Get(id); exists {
		old.Unmount()
		s.metrics.ActiveEditors.Dec()
	}

	s.sink.AddField(id)
	inst := editor.Mount(cfg, editor.Options{
		Converter: s.bridge,
		Sink:      s.sink,
		Overrides: s.overrides,
		Logger:    s.logger,
	})
	s.registry.Register(id, inst)
	s.metrics.ActiveEditors.Inc()
	s.metrics.Imports.Inc()

	s.writeJSON(w, http.StatusCreated, map[string]any{
		"id":       id,
		"editable": inst.Editable(),
		"tools":    inst.Commands().Enabled(),
	})
}

func (s *Server) handleUnmount(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	inst, ok := s.registry.Get(id)
	if !ok {
		s.writeCoded(w, http.StatusNotFound, inkerr.New("E002"))
		return
	}
	inst.Unmount()
	s.registry.Unregister(id)
	s.overrides.Delete(id)
	s.sink.RemoveField(id)
	s.metrics.ActiveEditors.Dec()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetField(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	value, ok := s.sink.Get(id)
	if !ok {
		s.writeCoded(w, http.StatusNotFound, inkerr.New("E002"))
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"id": id, "value": value})
}

func (s *Server) handleSetContent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	inst, ok := s.registry.Get(id)
	if !ok {
		s.writeCoded(w, http.StatusNotFound, inkerr.New("E002"))
		return
	}
	body, ok := s.readBody(w, r)
	if !ok {
		return
	}

	src := string(body)
	if s.cfg.Sanitize {
		src = s.policy.Sanitize(src)
	}

	start := time.Now()
	if err := inst.SetContent(src); err != nil {
		s.metrics.ParseFailures.Inc()
		s.writeCoded(w, http.StatusUnprocessableEntity, inkerr.New("E001").Wrap(err))
		return
	}
	s.metrics.Imports.Inc()
	s.metrics.ExportDuration.Observe(time.Since(start).Seconds())
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleFocus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := s.registry.Get(id); !ok {
		s.writeCoded(w, http.StatusNotFound, inkerr.New("E002"))
		return
	}
	s.registry.RecordFocus(id)
	w.WriteHeader(http.StatusNoContent)
}

type selectionRequest struct {
	Index int  `json:"index"`
	Live  bool `json:"live"`
}

func (s *Server) handleSelection(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	inst, ok := s.registry.Get(id)
	if !ok {
		s.writeCoded(w, http.StatusNotFound, inkerr.New("E002"))
		return
	}
	var req selectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Message: "bad selection payload"})
		return
	}
	inst.Engine().SetSelection(engine.Selection{Index: req.Index, Live: req.Live})
	w.WriteHeader(http.StatusNoContent)
}

// handleInsertAtActive inserts HTML into the last-focused instance.
// With no focused instance this is a no-op, reported as such rather
// than an error.
func (s *Server) handleInsertAtActive(w http.ResponseWriter, r *http.Request) {
	body, ok := s.readBody(w, r)
	if !ok {
		return
	}
	src := string(body)
	if s.cfg.Sanitize {
		src = s.policy.Sanitize(src)
	}

	if _, focused := s.registry.LastFocused(); !focused {
		s.writeJSON(w, http.StatusOK, map[string]any{"inserted": false})
		return
	}
	if err := s.registry.InsertAtActive(src); err != nil {
		s.metrics.ParseFailures.Inc()
		s.writeCoded(w, http.StatusUnprocessableEntity, inkerr.New("E001").Wrap(err))
		return
	}
	s.metrics.Imports.Inc()
	s.writeJSON(w, http.StatusOK, map[string]any{"inserted": true})
}

func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	inst, ok := s.registry.Get(id)
	if !ok {
		s.writeCoded(w, http.StatusNotFound, inkerr.New("E002"))
		return
	}
	// Unknown and disabled tokens are inert; the surface logs them.
	inst.Commands().Execute(chi.URLParam(r, "token"))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSourceEnter(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	inst, ok := s.registry.Get(id)
	if !ok {
		s.writeCoded(w, http.StatusNotFound, inkerr.New("E002"))
		return
	}
	text, err := inst.Source().Enter()
	if err != nil {
		s.writeCoded(w, http.StatusInternalServerError, inkerr.New("E001").Wrap(err))
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"text": text})
}

// handleSourceApply runs the source→visual transition. The raw bytes
// are deliberately NOT sanitized: the override path is byte-exact.
func (s *Server) handleSourceApply(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	inst, ok := s.registry.Get(id)
	if !ok {
		s.writeCoded(w, http.StatusNotFound, inkerr.New("E002"))
		return
	}
	body, ok := s.readBody(w, r)
	if !ok {
		return
	}
	if err := inst.Source().Apply(string(body)); err != nil {
		s.metrics.ParseFailures.Inc()
		s.writeCoded(w, http.StatusUnprocessableEntity, inkerr.New("E001").Wrap(err))
		return
	}
	s.metrics.SourceApplies.Inc()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSourceCancel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	inst, ok := s.registry.Get(id)
	if !ok {
		s.writeCoded(w, http.StatusNotFound, inkerr.New("E002"))
		return
	}
	inst.Source().Cancel()
	w.WriteHeader(http.StatusNoContent)
}
