package dashboard

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/KaramelBytes/dasbor/internal/analysis"
	"github.com/KaramelBytes/dasbor/internal/charts"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	requestIDHeader = "X-Request-ID"
	tabData         = "data"
	tabViz          = "viz"
)

//go:embed templates/page.html
var templateFS embed.FS

var pageTemplate = template.Must(template.New("page.html").ParseFS(templateFS, "templates/page.html"))

// Config configures a Server.
type Config struct {
	DataPath  string
	Title     string
	HeadRows  int
	ChartSize charts.Size
	Logger    logrus.FieldLogger
}

// Server serves the dashboard page and standalone panel charts.
type Server struct {
	cfg   Config
	cache *analysis.Cache
	log   logrus.FieldLogger
	mux   *http.ServeMux
}

// NewServer builds a Server reading the dataset at cfg.DataPath on demand.
func NewServer(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = logrus.StandardLogger()
	}
	if cfg.HeadRows <= 0 {
		cfg.HeadRows = 10
	}
	s := &Server{
		cfg:   cfg,
		cache: analysis.NewCache(cfg.DataPath),
		log:   cfg.Logger,
		mux:   http.NewServeMux(),
	}
	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("GET /charts/{panel}", s.handleChart)
	return s
}

// ServeHTTP tags the request with an ID, logs it, and dispatches it.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id := r.Header.Get(requestIDHeader)
	if id == "" {
		id = uuid.NewString()
	}
	w.Header().Set(requestIDHeader, id)
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	s.mux.ServeHTTP(rec, r)
	s.log.WithFields(logrus.Fields{
		"request_id": id,
		"method":     r.Method,
		"path":       r.URL.Path,
		"status":     rec.status,
		"duration":   time.Since(start).String(),
	}).Info("request")
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

type pageData struct {
	Title    string
	DataFile string
	Error    string
	Tab      string
	Summary  *SummaryView
	Viz      *VisualizationView
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sel := SelectionFromQuery(q)
	data := pageData{Title: s.cfg.Title, DataFile: s.cache.Path(), Tab: tabData}
	if q.Get("tab") == tabViz {
		data.Tab = tabViz
	}

	status := http.StatusOK
	t, err := s.cache.Table()
	if err != nil {
		data.Error = LoadErrorMessage(err)
		status = http.StatusServiceUnavailable
		s.log.WithError(err).Warn("dataset unavailable")
	} else {
		cls := analysis.Classify(t)
		data.Summary, err = BuildSummary(t, cls, s.cfg.HeadRows)
		if err != nil {
			s.log.WithError(err).Error("build summary")
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		data.Viz = BuildVisualization(t, cls, sel, s.cfg.ChartSize)
		for _, p := range data.Viz.Panels {
			if p.Warning != "" {
				s.log.WithFields(logrus.Fields{"panel": p.Key, "column": p.Selected}).Debug(p.Warning)
			}
		}
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		s.log.WithError(err).Error("render page")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("panel")
	t, err := s.cache.Table()
	if err != nil {
		http.Error(w, LoadErrorMessage(err), http.StatusServiceUnavailable)
		return
	}
	cls := analysis.Classify(t)
	size := s.cfg.ChartSize
	if key == PanelCorrelation {
		size = heatmapSize(size, len(cls.Numeric))
	}
	svg, warning, err := ChartFor(key, t, cls, r.URL.Query().Get("column"), size)
	switch {
	case errors.Is(err, ErrUnknownPanel):
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	case errors.Is(err, ErrInvalidColumn):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case err != nil:
		s.log.WithError(err).WithField("panel", key).Error("render chart")
		http.Error(w, "chart could not be rendered", http.StatusInternalServerError)
		return
	case warning != "":
		http.Error(w, warning, http.StatusUnprocessableEntity)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(svg)
}

// LoadErrorMessage returns the user-facing text for a failed dataset load.
func LoadErrorMessage(err error) string {
	var nf *analysis.NotFoundError
	var pe *analysis.ParseError
	switch {
	case errors.As(err, &nf):
		return "File '" + nf.Path + "' was not found next to the dashboard."
	case errors.As(err, &pe):
		return "File could not be read as CSV: " + pe.Error()
	default:
		return "Dataset could not be loaded."
	}
}
