package main

import (
	"bitbucket.org/sotavant/whateveryonethinks-skill/internal/inflect"
	"bitbucket.org/sotavant/whateveryonethinks-skill/internal/logger"
	"bitbucket.org/sotavant/whateveryonethinks-skill/internal/skill"
	"bitbucket.org/sotavant/whateveryonethinks-skill/internal/suggest"
	"context"
	"errors"
	"go.uber.org/zap"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
)

func main() {
	parseFlags()
	if err := run(); err != nil {
		panic(err)
	}
}

func gzipMiddleware(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ow := w

		acceptEncoding := r.Header.Get("Accept-Encoding")
		supportGzip := strings.Contains(acceptEncoding, "gzip")

		if supportGzip {
			cw := newCompressWriter(w)
			ow = cw
			defer func(cw *compressWriter) {
				if err := cw.Close(); err != nil {
					logger.Log.Debug("compressWriterError", zap.Error(err))
				}
			}(cw)
		}

		contentEncoding := r.Header.Get("Content-Encoding")

		sendsGzip := strings.Contains(contentEncoding, "gzip")
		if sendsGzip {
			cr, err := newCompressReader(r.Body)
			if err != nil {
				logger.Log.Debug("newCompressReaderError", zap.Error(err))
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			r.Body = cr
			defer func(cr *compressReader) {
				if err := cr.Close(); err != nil {
					logger.Log.Debug("closeCompressReaderError", zap.Error(err))
				}
			}(cr)
		}

		h.ServeHTTP(ow, r)
	}
}

func newRouter(a *app) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", logger.RequestLogger(gzipMiddleware(a.webhook)))
	mux.HandleFunc("/healthz", healthz)
	return mux
}

func run() error {
	if err := logger.Initialize(flagLogLevel); err != nil {
		return err
	}
	defer func() { _ = logger.Log.Sync() }()

	suggester := suggest.NewGoogleClient(suggest.Config{
		BaseURL:  flagSuggestURL,
		Language: flagSuggestLang,
		Timeout:  flagSuggestTimeout,
		RPS:      flagSuggestRPS,
	})
	appInstance := newApp(skill.New(suggester, inflect.NewEnglish()))

	srv := &http.Server{
		Addr:              flagRunAddr,
		Handler:           newRouter(appInstance),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Info("Running server",
			zap.String("address", flagRunAddr),
			zap.String("suggest_url", flagSuggestURL),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
