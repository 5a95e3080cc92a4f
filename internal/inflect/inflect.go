package inflect

import (
	"github.com/gertd/go-pluralize"
)

// Singularizer приводит фразу к единственному числу. Реализации должны быть чистыми функциями.
type Singularizer interface {
	Singular(phrase string) string
}

// English — правила английского языка из go-pluralize.
type English struct {
	client *pluralize.Client
}

func NewEnglish() *English {
	return &English{client: pluralize.NewClient()}
}

// Singular возвращает фразу в единственном числе; регистр исходного слова сохраняется.
func (e *English) Singular(phrase string) string {
	return e.client.Singular(phrase)
}

// IsSingular сообщает, совпадает ли фраза со своей формой единственного числа.
func IsSingular(s Singularizer, phrase string) bool {
	return s.Singular(phrase) == phrase
}
