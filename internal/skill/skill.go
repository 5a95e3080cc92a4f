package skill

import (
	"bitbucket.org/sotavant/whateveryonethinks-skill/internal/inflect"
	"bitbucket.org/sotavant/whateveryonethinks-skill/internal/logger"
	"bitbucket.org/sotavant/whateveryonethinks-skill/internal/models"
	"bitbucket.org/sotavant/whateveryonethinks-skill/internal/suggest"
	"context"
	"fmt"
	"go.uber.org/zap"
)

const (
	textLaunch   = "What would you like to know about?"
	textHelp     = "Ask me what everyone thinks about something and I will look for an answer using Google autocomplete."
	textNoTarget = "I'm sorry. I didn't recognize the requested search. Try asking what everyone thinks about something."
)

// Skill разбирает запрос платформы и формирует ответ. Состояния между запросами нет,
// поэтому один Skill можно использовать из нескольких горутин.
type Skill struct {
	suggester suggest.Suggester
	inflector inflect.Singularizer
}

func New(s suggest.Suggester, i inflect.Singularizer) *Skill {
	return &Skill{suggester: s, inflector: i}
}

// Handle обрабатывает один запрос. Для SessionEndedRequest возвращается ответ без payload.
// Ошибка означает, что платформе нужно сообщить о сбое, а пользователю ничего не говорить.
func (s *Skill) Handle(ctx context.Context, req models.Request) (resp *models.Response, err error) {
	defer func() {
		if p := recover(); p != nil {
			resp = nil
			err = fmt.Errorf("%w: %v", ErrHandlerPanic, p)
		}
	}()

	log := logger.Log.With(
		zap.String("requestId", req.Request.RequestID),
		zap.String("sessionId", req.Session.SessionID),
	)

	if req.Session.New {
		log.Info("session started")
	}

	switch req.Request.Type {
	case models.TypeLaunchRequest:
		log.Info("launch request")
		return models.NewSpeech(textLaunch, false), nil

	case models.TypeIntentRequest:
		log.Info("intent request")
		text, err := s.onIntent(ctx, req.Request.Intent)
		if err != nil {
			return nil, err
		}
		return models.NewSpeech(text, true), nil

	case models.TypeSessionEndedRequest:
		log.Info("session ended", zap.String("reason", req.Request.Reason))
		return &models.Response{Version: models.Version}, nil
	}

	log.Debug("unsupported request type", zap.String("type", req.Request.Type))
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedRequest, req.Request.Type)
}

func (s *Skill) onIntent(ctx context.Context, intent *models.Intent) (string, error) {
	if intent == nil {
		return "", &InvalidIntentError{}
	}

	switch intent.Name {
	case models.IntentGetAutocomplete:
		target := intent.SlotValue(models.SlotTarget)
		if target == "" {
			return textNoTarget, nil
		}
		return s.answer(ctx, target), nil

	case models.IntentHelp:
		return textHelp, nil
	}

	return "", &InvalidIntentError{Name: intent.Name}
}
