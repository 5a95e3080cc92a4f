package main

import (
	"bitbucket.org/sotavant/whateveryonethinks-skill/internal/logger"
	"bitbucket.org/sotavant/whateveryonethinks-skill/internal/models"
	"bitbucket.org/sotavant/whateveryonethinks-skill/internal/skill"
	"context"
	"encoding/json"
	"errors"
	"go.uber.org/zap"
	"net/http"
)

type handler interface {
	Handle(ctx context.Context, req models.Request) (*models.Response, error)
}

type app struct {
	skill handler
}

func newApp(h handler) *app {
	return &app{skill: h}
}

func (a *app) webhook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodPost {
		logger.Log.Debug("got request with bad method", zap.String("method", r.Method))

		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	logger.Log.Debug("decoding request")
	var req models.Request
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&req); err != nil {
		logger.Log.Debug("cannot decode request JSON body", zap.Error(err))

		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	resp, err := a.skill.Handle(ctx, req)
	if errors.Is(err, skill.ErrUnsupportedRequest) {
		// платформе ничего не отвечаем
		w.WriteHeader(http.StatusUnprocessableEntity)
		return
	}
	if err != nil {
		logger.Log.Error("cannot handle request",
			zap.String("requestId", req.Request.RequestID),
			zap.Error(err),
		)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{ErrorMessage: "Exception: " + err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, resp)
	logger.Log.Debug("sending HTTP 200 response")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	if err := enc.Encode(v); err != nil {
		logger.Log.Debug("error encoding response", zap.Error(err))
	}
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	_, _ = w.Write([]byte("ok"))
}
