package models

const (
	TypeLaunchRequest       = "LaunchRequest"
	TypeIntentRequest       = "IntentRequest"
	TypeSessionEndedRequest = "SessionEndedRequest"
)

const (
	IntentGetAutocomplete = "GetAutocompleteIntent"
	IntentHelp            = "AMAZON.HelpIntent"

	SlotTarget = "Target"
)

const (
	SpeechPlainText = "PlainText"
	Version         = "1.0"
)

// Request описывает конверт запроса голосовой платформы.
type Request struct {
	Version string         `json:"version"`
	Session Session        `json:"session"`
	Request RequestPayload `json:"request"`
}

type Session struct {
	New       bool   `json:"new"`
	SessionID string `json:"sessionId"`
}

// RequestPayload описывает сам запрос. Intent заполнен только для IntentRequest.
type RequestPayload struct {
	Type      string  `json:"type"`
	RequestID string  `json:"requestId"`
	Timestamp string  `json:"timestamp,omitempty"`
	Locale    string  `json:"locale,omitempty"`
	Reason    string  `json:"reason,omitempty"`
	Intent    *Intent `json:"intent,omitempty"`
}

type Intent struct {
	Name  string          `json:"name"`
	Slots map[string]Slot `json:"slots,omitempty"`
}

type Slot struct {
	Name  string `json:"name"`
	Value string `json:"value,omitempty"`
}

// SlotValue возвращает значение слота или пустую строку, если слота нет.
func (i *Intent) SlotValue(name string) string {
	if i == nil || i.Slots == nil {
		return ""
	}
	return i.Slots[name].Value
}

// Response описывает ответ сервера. Пустой Response (без payload) подтверждает SessionEndedRequest.
type Response struct {
	Version  string           `json:"version"`
	Response *ResponsePayload `json:"response,omitempty"`
}

type ResponsePayload struct {
	OutputSpeech     *OutputSpeech `json:"outputSpeech,omitempty"`
	ShouldEndSession bool          `json:"shouldEndSession"`
}

type OutputSpeech struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// ErrorResponse отправляется, когда обработка запроса завершилась ошибкой и озвучивать нечего.
type ErrorResponse struct {
	ErrorMessage string `json:"errorMessage"`
}

// NewSpeech формирует ответ с текстом, который платформа проговорит пользователю.
func NewSpeech(text string, endSession bool) *Response {
	return &Response{
		Version: Version,
		Response: &ResponsePayload{
			OutputSpeech:     &OutputSpeech{Type: SpeechPlainText, Text: text},
			ShouldEndSession: endSession,
		},
	}
}
