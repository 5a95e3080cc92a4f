package main

import (
	"bitbucket.org/sotavant/whateveryonethinks-skill/internal/inflect"
	"bitbucket.org/sotavant/whateveryonethinks-skill/internal/skill"
	"bitbucket.org/sotavant/whateveryonethinks-skill/internal/suggest/mock"
	"bytes"
	"compress/gzip"
	"github.com/go-resty/resty/v2"
	"github.com/golang/mock/gomock"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestWebhook(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := mock.NewMockSuggester(ctrl)

	s.EXPECT().
		Suggest(gomock.Any(), "cats are ").
		Return([]string{"cats are smart", "cats are pets"}, nil)

	appInstance := newApp(skill.New(s, inflect.NewEnglish()))

	handler := http.HandlerFunc(appInstance.webhook)
	srv := httptest.NewServer(handler)
	defer srv.Close()

	testCases := []struct {
		name         string
		method       string
		body         string
		expectedCode int
		expectedBody string
	}{
		{
			name:         "method_get",
			method:       http.MethodGet,
			expectedCode: http.StatusMethodNotAllowed,
			expectedBody: "",
		},
		{
			name:         "method_put",
			method:       http.MethodPut,
			expectedCode: http.StatusMethodNotAllowed,
			expectedBody: "",
		},
		{
			name:         "method_delete",
			method:       http.MethodDelete,
			expectedCode: http.StatusMethodNotAllowed,
			expectedBody: "",
		},
		{
			name:         "method_post_without_body",
			method:       http.MethodPost,
			expectedCode: http.StatusInternalServerError,
			expectedBody: "",
		},
		{
			name:         "method_post_unsupported_type",
			method:       http.MethodPost,
			body:         `{"request": {"type": "idunno", "requestId": "r1"}, "session": {"sessionId": "s1"}, "version": "1.0"}`,
			expectedCode: http.StatusUnprocessableEntity,
			expectedBody: "",
		},
		{
			name:         "method_post_launch",
			method:       http.MethodPost,
			body:         `{"request": {"type": "LaunchRequest", "requestId": "r1"}, "session": {"new": true, "sessionId": "s1"}, "version": "1.0"}`,
			expectedCode: http.StatusOK,
			expectedBody: `"text":"What would you like to know about\?".*"shouldEndSession":false`,
		},
		{
			name:   "method_post_intent",
			method: http.MethodPost,
			body: `{"request": {"type": "IntentRequest", "requestId": "r1", "intent": {"name": "GetAutocompleteIntent",
				"slots": {"Target": {"name": "Target", "value": "cats"}}}}, "session": {"sessionId": "s1"}, "version": "1.0"}`,
			expectedCode: http.StatusOK,
			expectedBody: `"text":"cats are smart".*"shouldEndSession":true`,
		},
		{
			name:         "method_post_invalid_intent",
			method:       http.MethodPost,
			body:         `{"request": {"type": "IntentRequest", "requestId": "r1", "intent": {"name": "NopeIntent"}}, "session": {"sessionId": "s1"}, "version": "1.0"}`,
			expectedCode: http.StatusInternalServerError,
			expectedBody: `\{"errorMessage":"Exception: invalid intent NopeIntent"\}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := resty.New().R()
			r.Method = tc.method
			r.URL = srv.URL

			if len(tc.body) > 0 {
				r.SetHeader("Content-Type", "application/json")
				r.SetBody(tc.body)
			}

			resp, err := r.Send()
			assert.NoError(t, err, "error making request")

			assert.Equal(t, tc.expectedCode, resp.StatusCode(), "response code mismatch")
			if tc.expectedBody != "" {
				assert.Regexp(t, tc.expectedBody, string(resp.Body()))
			} else {
				assert.Empty(t, resp.Body())
			}
		})
	}
}

func TestSessionEnded(t *testing.T) {
	ctrl := gomock.NewController(t)
	appInstance := newApp(skill.New(mock.NewMockSuggester(ctrl), inflect.NewEnglish()))

	srv := httptest.NewServer(newRouter(appInstance))
	defer srv.Close()

	resp, err := resty.New().R().
		SetHeader("Content-Type", "application/json").
		SetBody(`{"request": {"type": "SessionEndedRequest", "requestId": "r1", "reason": "USER_INITIATED"}, "session": {"sessionId": "s1"}}`).
		Post(srv.URL)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())
	require.JSONEq(t, `{"version": "1.0"}`, string(resp.Body()))
}

func TestHealthz(t *testing.T) {
	ctrl := gomock.NewController(t)
	srv := httptest.NewServer(newRouter(newApp(skill.New(mock.NewMockSuggester(ctrl), inflect.NewEnglish()))))
	defer srv.Close()

	resp, err := resty.New().R().Get(srv.URL + "/healthz")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Equal(t, "ok", string(resp.Body()))
}

func TestGzipCompression(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := mock.NewMockSuggester(ctrl)

	s.EXPECT().
		Suggest(gomock.Any(), "dog is ").
		Return([]string{"dog is a good boy"}, nil).
		Times(2)

	appInstance := newApp(skill.New(s, inflect.NewEnglish()))

	handler := gzipMiddleware(appInstance.webhook)
	srv := httptest.NewServer(handler)
	defer srv.Close()

	requestBody := `{
		"request": {
			"type": "IntentRequest",
			"requestId": "r1",
			"intent": {"name": "GetAutocompleteIntent", "slots": {"Target": {"name": "Target", "value": "dog"}}}
		},
		"session": {"sessionId": "s1"},
		"version": "1.0"
	}`

	successBody := `{
		"response": {
			"outputSpeech": {"type": "PlainText", "text": "dog is a good boy"},
			"shouldEndSession": true
		},
		"version": "1.0"
	}`

	t.Run("sends_gzip", func(t *testing.T) {
		buf := bytes.NewBuffer(nil)
		zb := gzip.NewWriter(buf)
		_, err := zb.Write([]byte(requestBody))
		require.NoError(t, err)
		err = zb.Close()
		require.NoError(t, err)

		r := httptest.NewRequest("POST", srv.URL, buf)
		r.RequestURI = ""
		r.Header.Set("Content-Encoding", "gzip")
		r.Header.Set("Accept-Encoding", "0")

		resp, err := http.DefaultClient.Do(r)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		defer func(Body io.ReadCloser) {
			err := Body.Close()
			require.NoError(t, err)
		}(resp.Body)

		b, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.JSONEq(t, successBody, string(b))
	})

	t.Run("accept_gzip", func(t *testing.T) {
		buf := bytes.NewBufferString(requestBody)
		r := httptest.NewRequest("POST", srv.URL, buf)
		r.RequestURI = ""
		r.Header.Set("Accept-Encoding", "gzip")

		resp, err := http.DefaultClient.Do(r)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, "gzip", resp.Header.Get("Content-Encoding"))

		defer resp.Body.Close()

		zr, err := gzip.NewReader(resp.Body)
		require.NoError(t, err)

		b, err := io.ReadAll(zr)
		require.NoError(t, err)

		require.JSONEq(t, successBody, string(b))
	})

	t.Run("error_not_compressed", func(t *testing.T) {
		r := httptest.NewRequest("GET", srv.URL, nil)
		r.RequestURI = ""
		r.Header.Set("Accept-Encoding", "gzip")

		resp, err := http.DefaultClient.Do(r)
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
		require.Empty(t, resp.Header.Get("Content-Encoding"))
		b, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.Empty(t, b)
	})
}

func TestApplyEnv(t *testing.T) {
	flagRunAddr = ":8080"
	flagLogLevel = "debug"
	flagSuggestTimeout = 5 * time.Second
	flagSuggestRPS = 10

	t.Setenv("RUN_ADDR", ":9090")
	t.Setenv("SUGGEST_TIMEOUT", "250ms")
	t.Setenv("SUGGEST_RPS", "2.5")

	applyEnv(viper.New())

	assert.Equal(t, ":9090", flagRunAddr)
	assert.Equal(t, "debug", flagLogLevel)
	assert.Equal(t, 250*time.Millisecond, flagSuggestTimeout)
	assert.Equal(t, 2.5, flagSuggestRPS)
}
