package cmd

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jsphweid/midicoach/analysis"
	"github.com/jsphweid/midicoach/config"
	"github.com/jsphweid/midicoach/engine"
	"github.com/jsphweid/midicoach/logger"
	"github.com/jsphweid/midicoach/midi"
	"github.com/jsphweid/midicoach/model"
	"github.com/jsphweid/midicoach/synth"
	"github.com/jsphweid/midicoach/util"
	"github.com/pkg/errors"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

var errBadRequest = errors.New("bad request")

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves analysis, recommendations and synthesis over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Info("Listening", logger.Fields{"port": cfg.Port, "environment": cfg.Environment})
		return http.ListenAndServe(":"+cfg.Port, NewRouter(cfg, NewEngine(cfg)))
	},
}

type server struct {
	cfg    *config.Config
	engine *engine.Engine
}

// NewRouter wires every route behind CORS and request ids.
func NewRouter(c *config.Config, e *engine.Engine) http.Handler {
	s := &server{cfg: c, engine: e}

	router := mux.NewRouter().StrictSlash(true)
	router.Use(requestID)
	router.HandleFunc("/health", s.handleHealth).Methods("GET")
	router.HandleFunc("/analyze", s.handleAnalyze).Methods("POST")
	router.HandleFunc("/recommend", s.handleRecommend).Methods("POST")
	router.HandleFunc("/synthesize", s.handleSynthesize).Methods("POST")
	router.HandleFunc("/process", s.handleProcess).Methods("POST")

	return cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{"X-Request-ID", "Content-Disposition"},
	}).Handler(router)
}

func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
			r.Header.Set("X-Request-ID", id)
		}
		w.Header().Set("X-Request-ID", id)
		logger.Debug("Request", logger.Fields{"request_id": id, "method": r.Method, "path": r.URL.Path})
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("Could not write response", logger.Fields{"error": err.Error()})
	}
}

func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge), strings.Contains(err.Error(), "request body too large"):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, errBadRequest), midi.IsParseError(err):
		return http.StatusBadRequest
	case errors.Is(err, analysis.ErrEmptyOrUnreadable),
		errors.Is(err, synth.ErrEmptyScore),
		errors.Is(err, synth.ErrNoMelodyFound),
		errors.Is(err, synth.ErrUnsupportedInstrument):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	fields := logger.Fields{"request_id": r.Header.Get("X-Request-ID"), "path": r.URL.Path, "status": status}
	if status == http.StatusInternalServerError {
		logger.Error("Request failed", err, fields)
		writeJSON(w, status, model.ErrorResponse{Error: "internal error"})
		return
	}
	fields["error"] = err.Error()
	logger.Info("Request rejected", fields)
	writeJSON(w, status, model.ErrorResponse{Error: err.Error()})
}

// upload is a MIDI file sent either as the multipart field "file" or as the
// raw request body, with optional JSON preferences in the "preferences" field.
type upload struct {
	data        []byte
	filename    string
	preferences model.UserPreferences
}

func (s *server) readUpload(w http.ResponseWriter, r *http.Request) (*upload, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	up := &upload{preferences: model.UserPreferences{Duration: model.Keep()}}

	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		data, err := io.ReadAll(r.Body)
		if err != nil {
			return nil, err
		}
		up.data = data
	} else {
		if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
			return nil, err
		}
		f, hdr, err := r.FormFile("file")
		if err != nil {
			return nil, errors.Wrap(errBadRequest, "missing file field")
		}
		defer f.Close()
		if !util.IsMidiPath(hdr.Filename) {
			return nil, errors.Wrapf(errBadRequest, "%q is not a .mid or .midi file", hdr.Filename)
		}
		up.filename = hdr.Filename
		if up.data, err = io.ReadAll(f); err != nil {
			return nil, err
		}
		if raw := r.FormValue("preferences"); raw != "" {
			if err := json.Unmarshal([]byte(raw), &up.preferences); err != nil {
				return nil, errors.Wrapf(errBadRequest, "preferences: %v", err)
			}
		}
	}

	if len(up.data) == 0 {
		return nil, errors.Wrap(errBadRequest, "empty upload")
	}
	if up.preferences.HarmonySeed == nil {
		up.preferences.HarmonySeed = s.cfg.HarmonySeed
	}
	return up, nil
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, model.HealthResponse{Status: "healthy", Environment: s.cfg.Environment})
}

func (s *server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	up, err := s.readUpload(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	a, err := s.engine.Analyze(r.Context(), up.data)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	var input model.RecommendRequestBody
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		if statusFor(err) != http.StatusRequestEntityTooLarge {
			err = errors.Wrapf(errBadRequest, "Could not unmarshal request body: %v", err)
		}
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.engine.Recommend(&input.Analysis, input.Preferences))
}

func (s *server) handleSynthesize(w http.ResponseWriter, r *http.Request) {
	up, err := s.readUpload(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	a, err := s.engine.Analyze(r.Context(), up.data)
	if err != nil {
		writeError(w, r, err)
		return
	}
	out, err := s.engine.Synthesize(r.Context(), up.data, a, up.preferences)
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "audio/midi")
	w.Header().Set("Content-Disposition", `attachment; filename="`+uuid.New().String()+`.mid"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(out); err != nil {
		logger.Warn("Could not write response", logger.Fields{"error": err.Error()})
	}
}

func (s *server) handleProcess(w http.ResponseWriter, r *http.Request) {
	up, err := s.readUpload(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	res, err := s.engine.Process(r.Context(), up.data, up.preferences)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, model.ProcessResponse{
		ID:              uuid.New().String(),
		Filename:        up.filename,
		Analysis:        res.Analysis,
		Recommendations: res.Recommendations,
		Preferences:     up.preferences,
		Midi:            res.Midi,
	})
}
