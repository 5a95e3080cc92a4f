package skill

import (
	"bitbucket.org/sotavant/whateveryonethinks-skill/internal/inflect"
	"bitbucket.org/sotavant/whateveryonethinks-skill/internal/logger"
	"context"
	"fmt"
	"go.uber.org/zap"
	"strings"
)

// Глагол окружён пробелами, чтобы автодополнение считало его отдельным словом.
const (
	pluralVerb   = " are "
	singularVerb = " is "
)

// Для местоимений запрос строится по отдельной таблице.
var objectPronounToQuery = map[string]string{
	"i":    "i am ",
	"me":   "i am ",
	"you":  "you are ",
	"him":  "he is ",
	"her":  "she is ",
	"us":   "we are ",
	"them": "they are ",
}

// answer строит запрос по target и возвращает текст ответа. Если первая попытка
// не дала подходящей подсказки, глагол меняется на противоположный и делается
// ровно одна повторная попытка; её результат возвращается как есть.
func (s *Skill) answer(ctx context.Context, target string) string {
	if query, ok := objectPronounToQuery[strings.ToLower(target)]; ok {
		// для местоимений повторной попытки нет, ok не нужен
		text, _ := s.lookup(ctx, target, query)
		return text
	}

	plural := !inflect.IsSingular(s.inflector, target)

	text, ok := s.lookup(ctx, target, target+verb(plural))
	if ok {
		return text
	}

	logger.Log.Debug("retrying with flipped verb", zap.String("target", target))
	text, _ = s.lookup(ctx, target, target+verb(!plural))
	return text
}

func verb(plural bool) string {
	if plural {
		return pluralVerb
	}
	return singularVerb
}

// lookup запрашивает подсказки для query и возвращает первую, которая начинается с query.
// ok == false означает, что text содержит сообщение об ошибке для пользователя.
func (s *Skill) lookup(ctx context.Context, target, query string) (text string, ok bool) {
	suggestions, err := s.suggester.Suggest(ctx, query)
	if err != nil {
		logger.Log.Error("cannot get suggestions", zap.String("query", query), zap.Error(err))
		return fmt.Sprintf("There was an error processing request for %s. Try asking something else.", target), false
	}

	if suggestion, found := firstMatch(suggestions, query); found {
		return suggestion, true
	}

	logger.Log.Debug("no matching suggestion", zap.String("query", query), zap.Int("count", len(suggestions)))
	return fmt.Sprintf("I couldn't find any results for %s. Try asking something else.", target), false
}

func firstMatch(suggestions []string, query string) (string, bool) {
	for _, suggestion := range suggestions {
		if strings.HasPrefix(suggestion, query) {
			return suggestion, true
		}
	}
	return "", false
}
