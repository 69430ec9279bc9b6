// Package delivery exposes studies over HTTP with a chi router. Every
// response uses the {Status, Body} envelope.
package delivery

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/lgbarn/movetree-go/internal/movetree"
	"github.com/lgbarn/movetree-go/internal/notation"
	"github.com/lgbarn/movetree-go/internal/study"
)

const maxBodyBytes = 1 << 20

// StudyHandler serves the study endpoints.
type StudyHandler struct {
	registry *study.Registry
	log      *zap.SugaredLogger
	maxDepth int
}

// NewStudyHandler creates a handler. maxDepth bounds variation nesting of
// imported movetext; 0 means unbounded.
func NewStudyHandler(registry *study.Registry, log *zap.SugaredLogger, maxDepth int) *StudyHandler {
	return &StudyHandler{registry: registry, log: log, maxDepth: maxDepth}
}

// Router mounts the endpoints on r.
func (h *StudyHandler) Router(r chi.Router) {
	r.Route("/studies", func(r chi.Router) {
		r.Post("/", h.HandleCreate)
		r.Get("/", h.HandleList)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.HandleGet)
			r.Delete("/", h.HandleDelete)
			r.Post("/moves", h.HandlePlay)
			r.Post("/navigate", h.HandleNavigate)
			r.Post("/goto", h.HandleGoto)
			r.Post("/annotate", h.HandleAnnotate)
			r.Get("/drill", h.HandleDrill)
			r.Post("/import", h.HandleImport)
			r.Post("/reset", h.HandleReset)
			r.Post("/snapshot", h.HandleSnapshot)
			r.Post("/restore", h.HandleRestore)
		})
	})
}

// NewRouter builds the full router with the standard middleware stack.
func NewRouter(h *StudyHandler, log *zap.SugaredLogger, timeout time.Duration) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(log))
	r.Use(middleware.Recoverer)
	if timeout > 0 {
		r.Use(middleware.Timeout(timeout))
	}
	h.Router(r)
	return r
}

// RequestLogger logs one line per request through zap.
func RequestLogger(log *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Infow("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"requestID", middleware.GetReqID(r.Context()),
			)
		})
	}
}

type createRequest struct {
	StartFEN string `json:"startFen"`
	MoveText string `json:"moveText"`
}

type moveRequest struct {
	Move string `json:"move"`
}

type navigateRequest struct {
	Action string `json:"action"` // start, end, forward, back
}

type gotoRequest struct {
	Path string `json:"path"`
	Ply  int    `json:"ply"`
}

type annotateRequest struct {
	Glyph   string `json:"glyph"`
	Comment string `json:"comment"`
}

type importRequest struct {
	MoveText string `json:"moveText"`
}

type navigateResponse struct {
	Moved bool        `json:"moved"`
	View  *study.View `json:"view"`
}

type drillResponse struct {
	Done  bool   `json:"done"`
	Move  string `json:"move,omitempty"`
	Index int    `json:"index"`
	Side  string `json:"side"`
}

// decode reads a JSON body, rejecting unknown fields.
func (h *StudyHandler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		h.log.Debugw("bad request body", "path", r.URL.Path, "error", err)
		WriteResponseWithStatus(w, http.StatusBadRequest, ErrorResponse{ErrorDescription: "invalid JSON: " + err.Error()})
		return false
	}
	return true
}

func (h *StudyHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.log.Errorw("request failed", "path", r.URL.Path, "error", err)
	} else {
		h.log.Debugw("request rejected", "path", r.URL.Path, "status", status, "error", err)
	}
	WriteResponseWithStatus(w, status, ErrorResponse{ErrorDescription: err.Error()})
}

// respond runs fn on study id and answers with its view.
func (h *StudyHandler) respond(w http.ResponseWriter, r *http.Request, id string, status int, fn func(*study.Study) error) {
	var view *study.View
	err := h.registry.With(id, func(s *study.Study) error {
		if err := fn(s); err != nil {
			return err
		}
		var err error
		view, err = s.View()
		return err
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	WriteResponseWithStatus(w, status, view)
}

// HandleCreate opens a study, optionally seeded with movetext.
func (h *StudyHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if r.ContentLength != 0 && !h.decode(w, r, &req) {
		return
	}

	id, err := h.registry.Create(req.StartFEN)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if req.MoveText != "" {
		err = h.registry.With(id, func(s *study.Study) error {
			return s.Import(req.MoveText, notation.WithMaxDepth(h.maxDepth))
		})
		if err != nil {
			if derr := h.registry.Delete(r.Context(), id); derr != nil {
				h.log.Warnw("discarding study after failed import", "id", id, "error", derr)
			}
			h.fail(w, r, err)
			return
		}
	}
	h.respond(w, r, id, http.StatusCreated, func(*study.Study) error { return nil })
}

// HandleList returns the open study ids.
func (h *StudyHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	WriteResponseWithStatus(w, http.StatusOK, h.registry.IDs())
}

// HandleGet returns the study view.
func (h *StudyHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	view, err := h.registry.Get(chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	WriteResponseWithStatus(w, http.StatusOK, view)
}

// HandleDelete closes the study.
func (h *StudyHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.registry.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, err)
		return
	}
	WriteResponseWithStatus(w, http.StatusOK, nil)
}

// HandlePlay records a move at the cursor.
func (h *StudyHandler) HandlePlay(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.respond(w, r, chi.URLParam(r, "id"), http.StatusOK, func(s *study.Study) error {
		_, err := s.Play(req.Move)
		return err
	})
}

// HandleNavigate steps the cursor.
func (h *StudyHandler) HandleNavigate(w http.ResponseWriter, r *http.Request) {
	var req navigateRequest
	if !h.decode(w, r, &req) {
		return
	}
	switch req.Action {
	case "start", "end", "forward", "back":
	default:
		WriteResponseWithStatus(w, http.StatusBadRequest, ErrorResponse{ErrorDescription: "unknown navigation action " + req.Action})
		return
	}

	var resp navigateResponse
	err := h.registry.With(chi.URLParam(r, "id"), func(s *study.Study) error {
		switch req.Action {
		case "start":
			_, ply := s.Where()
			s.Start()
			path, _ := s.Where()
			resp.Moved = ply != -1 || path.Depth() > 0
		case "end":
			resp.Moved = s.End()
		case "forward":
			resp.Moved = s.Forward()
		case "back":
			resp.Moved = s.Back()
		}
		var err error
		resp.View, err = s.View()
		return err
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	WriteResponseWithStatus(w, http.StatusOK, resp)
}

// HandleGoto jumps the cursor to a path and ply.
func (h *StudyHandler) HandleGoto(w http.ResponseWriter, r *http.Request) {
	var req gotoRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.respond(w, r, chi.URLParam(r, "id"), http.StatusOK, func(s *study.Study) error {
		path, err := movetree.ParsePath(req.Path)
		if err != nil {
			s.Start()
			return err
		}
		return s.Goto(path, req.Ply)
	})
}

// HandleAnnotate sets the glyph and comment of the move under the cursor.
func (h *StudyHandler) HandleAnnotate(w http.ResponseWriter, r *http.Request) {
	var req annotateRequest
	if !h.decode(w, r, &req) {
		return
	}
	glyph, ok := movetree.ParseGlyph(req.Glyph)
	if !ok {
		WriteResponseWithStatus(w, http.StatusBadRequest, ErrorResponse{ErrorDescription: "unknown glyph " + req.Glyph})
		return
	}
	h.respond(w, r, chi.URLParam(r, "id"), http.StatusOK, func(s *study.Study) error {
		return s.Annotate(glyph, req.Comment)
	})
}

// HandleDrill returns the next move the given side should find.
func (h *StudyHandler) HandleDrill(w http.ResponseWriter, r *http.Request) {
	sideName := r.URL.Query().Get("side")
	side, ok := study.ParseSide(sideName)
	if !ok {
		WriteResponseWithStatus(w, http.StatusBadRequest, ErrorResponse{ErrorDescription: "side must be white or black"})
		return
	}

	resp := drillResponse{Side: sideName}
	err := h.registry.With(chi.URLParam(r, "id"), func(s *study.Study) error {
		next, done, err := s.Drill(side)
		if err != nil {
			return err
		}
		resp.Done = done
		if !done {
			resp.Move = next.Move.Notation
			resp.Index = next.Index
		}
		return nil
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	WriteResponseWithStatus(w, http.StatusOK, resp)
}

// HandleImport replaces the study's tree with parsed movetext.
func (h *StudyHandler) HandleImport(w http.ResponseWriter, r *http.Request) {
	var req importRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.respond(w, r, chi.URLParam(r, "id"), http.StatusOK, func(s *study.Study) error {
		return s.Import(req.MoveText, notation.WithMaxDepth(h.maxDepth))
	})
}

// HandleReset empties the study.
func (h *StudyHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, chi.URLParam(r, "id"), http.StatusOK, func(s *study.Study) error {
		s.Reset()
		return nil
	})
}

// HandleSnapshot persists the study.
func (h *StudyHandler) HandleSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := h.registry.Snapshot(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	WriteResponseWithStatus(w, http.StatusOK, snap)
}

// HandleRestore reloads the study from its last snapshot.
func (h *StudyHandler) HandleRestore(w http.ResponseWriter, r *http.Request) {
	if err := h.registry.Restore(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, r, chi.URLParam(r, "id"), http.StatusOK, func(*study.Study) error { return nil })
}
