package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/banshee-data/agnite/internal/agn"
	"github.com/banshee-data/agnite/internal/httputil"
	"github.com/banshee-data/agnite/internal/lines"
	"github.com/banshee-data/agnite/internal/photometry"
	"github.com/banshee-data/agnite/internal/render"
	"github.com/banshee-data/agnite/internal/session"
	"github.com/banshee-data/agnite/internal/spectrum"
)

const maxBodyBytes = 4096

type archetypeInfo struct {
	Archetype    agn.Archetype `json:"archetype"`
	Name         string        `json:"name"`
	MinAngle     int           `json:"min_angle"`
	MaxAngle     int           `json:"max_angle"`
	MaxInclusive bool          `json:"max_inclusive"`
	DatasetKey   string        `json:"dataset_key"`
	ObjectName   string        `json:"object_name"`
}

type viewResponse struct {
	SessionID string `json:"session_id"`
	session.View
	Summary spectrum.Summary `json:"summary"`
}

type spectrumResponse struct {
	Spectrum *spectrum.Spectrum `json:"spectrum"`
	Summary  spectrum.Summary   `json:"summary"`
}

type angleRequest struct {
	Angle *int `json:"angle"`
}

func parseAngle(s string) (int, error) {
	if s == "" {
		return 0, errors.New("missing 'angle' parameter")
	}
	angle, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.New("invalid 'angle' parameter: must be an integer")
	}
	return angle, nil
}

func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	angle, err := parseAngle(r.URL.Query().Get("angle"))
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	c, err := s.classifier.Classify(angle)
	if err != nil {
		writeError(w, err)
		return
	}
	httputil.WriteJSONOK(w, c)
}

func (s *Server) handleArchetypes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	entries := s.classifier.Entries()
	out := make([]archetypeInfo, 0, len(entries))
	for _, e := range entries {
		out = append(out, archetypeInfo{
			Archetype:    e.Archetype,
			Name:         e.Archetype.String(),
			MinAngle:     e.Min,
			MaxAngle:     e.Max,
			MaxInclusive: e.MaxInclusive,
			DatasetKey:   e.DatasetKey,
			ObjectName:   e.ObjectName,
		})
	}
	httputil.WriteJSONOK(w, out)
}

// handleSessions creates a session at the default angle. The session is
// registered even if its first spectrum cannot be loaded, so the client
// can retry with another angle.
func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httputil.MethodNotAllowed(w)
		return
	}
	sess, err := s.registry.Create()
	resp := map[string]interface{}{"id": sess.ID()}
	if err != nil {
		resp["error"] = err.Error()
		httputil.WriteJSON(w, http.StatusCreated, resp)
		return
	}
	if v, ok := sess.Current(); ok {
		resp["view"] = s.viewResponse(sess.ID(), v)
	}
	httputil.WriteJSON(w, http.StatusCreated, resp)
}

// handleSessionByID routes /api/sessions/{id}[/resource].
func (s *Server) handleSessionByID(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/sessions/")
	parts := strings.SplitN(rest, "/", 2)
	id := parts[0]
	if id == "" {
		httputil.NotFound(w, "missing session id")
		return
	}
	resource := ""
	if len(parts) == 2 {
		resource = parts[1]
	}

	if resource == "" && r.Method == http.MethodDelete {
		if !s.registry.Delete(id) {
			writeError(w, session.ErrNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
		return
	}

	sess, err := s.registry.Get(id)
	if err != nil {
		writeError(w, err)
		return
	}

	switch resource {
	case "angle":
		s.handleSetAngle(w, r, sess)
		return
	case "views":
		s.handleSessionViews(w, r, sess)
		return
	}

	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}

	switch resource {
	case "":
		s.withView(w, sess, func(v session.View) {
			httputil.WriteJSONOK(w, s.viewResponse(sess.ID(), v))
		})
	case "spectrum":
		s.withView(w, sess, func(v session.View) {
			httputil.WriteJSONOK(w, spectrumResponse{
				Spectrum: v.Spectrum,
				Summary:  spectrum.Summarize(v.Spectrum),
			})
		})
	case "annotations":
		s.withView(w, sess, func(v session.View) {
			out := v.Annotations
			if out == nil {
				out = []lines.Annotation{}
			}
			httputil.WriteJSONOK(w, out)
		})
	case "spectrum.png":
		s.withView(w, sess, func(v session.View) {
			s.writeRendered(w, "image/png", "spectrum.png", v, func() ([]byte, error) {
				return render.SpectrumPNG(v, s.renderOpts)
			})
		})
	case "spectrum.html":
		s.withView(w, sess, func(v session.View) {
			s.writeRendered(w, "text/html; charset=utf-8", "spectrum.html", v, func() ([]byte, error) {
				return render.SpectrumHTML(v, s.renderOpts)
			})
		})
	case "sed":
		s.withSED(w, r, sess, func(sed photometry.SED) {
			httputil.WriteJSONOK(w, sed)
		})
	case "sed.png":
		s.withSED(w, r, sess, func(sed photometry.SED) {
			s.writeBytes(w, "image/png", func() ([]byte, error) {
				return render.SEDPNG(sed, s.renderOpts)
			})
		})
	case "sed.html":
		s.withSED(w, r, sess, func(sed photometry.SED) {
			s.writeBytes(w, "text/html; charset=utf-8", func() ([]byte, error) {
				return render.SEDHTML(sed, s.renderOpts)
			})
		})
	default:
		httputil.NotFound(w, "unknown session resource: "+resource)
	}
}

func (s *Server) handleSetAngle(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	if r.Method != http.MethodPut && r.Method != http.MethodPost {
		httputil.MethodNotAllowed(w)
		return
	}
	var req angleRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil {
		httputil.BadRequest(w, "invalid JSON body: "+err.Error())
		return
	}
	if req.Angle == nil {
		httputil.BadRequest(w, "missing 'angle' field")
		return
	}
	v, err := sess.SetAngle(*req.Angle)
	if err != nil {
		writeError(w, err)
		return
	}
	httputil.WriteJSONOK(w, s.viewResponse(sess.ID(), v))
}

func (s *Server) handleSessionViews(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	if s.db == nil {
		httputil.ServiceUnavailable(w, "view history is not enabled")
		return
	}
	limit := 0
	if l := r.URL.Query().Get("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n <= 0 {
			httputil.BadRequest(w, "invalid 'limit' parameter")
			return
		}
		limit = n
	}
	views, err := s.db.SessionViews(sess.ID(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	httputil.WriteJSONOK(w, views)
}

func (s *Server) handleArchetypeStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	if s.db == nil {
		httputil.ServiceUnavailable(w, "view history is not enabled")
		return
	}
	counts, err := s.db.ArchetypeRollup()
	if err != nil {
		writeError(w, err)
		return
	}
	httputil.WriteJSONOK(w, counts)
}

func (s *Server) viewResponse(id string, v session.View) viewResponse {
	return viewResponse{
		SessionID: id,
		View:      v,
		Summary:   spectrum.Summarize(v.Spectrum),
	}
}

func (s *Server) withView(w http.ResponseWriter, sess *session.Session, fn func(session.View)) {
	v, ok := sess.Current()
	if !ok {
		writeError(w, session.ErrNoView)
		return
	}
	fn(v)
}

func (s *Server) withSED(w http.ResponseWriter, r *http.Request, sess *session.Session, fn func(photometry.SED)) {
	if s.photometry == nil {
		writeError(w, photometry.ErrNoBaseURL)
		return
	}
	sed, err := sess.SED(r.Context(), s.photometry)
	if err != nil {
		if errors.Is(err, session.ErrNoView) || errors.Is(err, photometry.ErrNoBaseURL) {
			writeError(w, err)
			return
		}
		httputil.BadGateway(w, err.Error())
		return
	}
	fn(sed)
}

// writeRendered serves a spectrum document from the cache. The document
// depends only on the archetype and its dataset.
func (s *Server) writeRendered(w http.ResponseWriter, contentType, kind string, v session.View, fn func() ([]byte, error)) {
	key := kind + "/" + v.Archetype().Slug() + "/" + v.Spectrum.Key()
	s.writeBytes(w, contentType, func() ([]byte, error) {
		return s.cache.get(key, fn)
	})
}

func (s *Server) writeBytes(w http.ResponseWriter, contentType string, fn func() ([]byte, error)) {
	b, err := fn()
	if err != nil {
		writeError(w, err)
		return
	}
	httputil.WriteBody(w, contentType, b)
}
