// Package server exposes translation over HTTP.
//
//	GET /rpm?name=httpd-2.4.6-90.el7.x86_64&name=...&strict=true
//	GET /repo?name=base&strict=yes
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/ralt/rpm2cpe/internal/models"
	"github.com/ralt/rpm2cpe/internal/output"
	"github.com/ralt/rpm2cpe/internal/repo"
	"github.com/ralt/rpm2cpe/internal/translator"
	"github.com/sirupsen/logrus"
)

// truthy lists the accepted spellings of a true strict parameter
var truthy = map[string]bool{
	"True": true, "true": true, "1": true, "t": true, "y": true,
	"yes": true, "yeah": true, "yup": true, "uh-huh": true,
}

// Server serves translation requests
type Server struct {
	config     models.TranslatorConfig
	enumerator *repo.Enumerator
}

// New creates a server. Every request is translated with config, except
// for the strict flag which comes from the request.
func New(config *models.TranslatorConfig, enumerator *repo.Enumerator) (*Server, error) {
	// fail early on a bad strategy or special mode
	if _, err := translator.New(config); err != nil {
		return nil, err
	}
	return &Server{config: *config, enumerator: enumerator}, nil
}

// Handler returns the HTTP handler of the server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /rpm", s.handleRPM)
	mux.HandleFunc("GET /repo", s.handleRepo)
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Hello World!"))
	})
	return mux
}

// ListenAndServe serves on addr until ctx is cancelled
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logrus.Warnf("Server shutdown: %v", err)
		}
	}()

	logrus.Infof("Listening on %s", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) translatorFor(r *http.Request) (*translator.Translator, error) {
	config := s.config
	config.Strict = truthy[r.URL.Query().Get("strict")]
	return translator.New(&config)
}

func (s *Server) handleRPM(w http.ResponseWriter, r *http.Request) {
	t, err := s.translatorFor(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	names := r.URL.Query()["name"]
	logrus.Debugf("Translating %d rpm names", len(names))

	data, err := output.FormatRPMs(models.FormatJSON, translator.Keys(names), t.TranslateBatch(names))
	writeJSON(w, data, err)
}

func (s *Server) handleRepo(w http.ResponseWriter, r *http.Request) {
	t, err := s.translatorFor(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	reports := repo.Translate(r.Context(), s.enumerator, t, r.URL.Query()["name"])
	data, err := output.FormatReports(models.FormatJSON, reports)
	writeJSON(w, data, err)
}

func writeJSON(w http.ResponseWriter, data []byte, err error) {
	if err != nil {
		logrus.Errorf("Failed to render response: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}
