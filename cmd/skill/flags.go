package main

import (
	"bitbucket.org/sotavant/whateveryonethinks-skill/internal/suggest"
	"flag"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"time"
)

var flagRunAddr string
var flagLogLevel string
var flagSuggestURL string
var flagSuggestLang string
var flagSuggestTimeout time.Duration
var flagSuggestRPS float64

func parseFlags() {
	flag.StringVar(&flagRunAddr, "a", ":8080", "address and port")
	flag.StringVar(&flagLogLevel, "l", "debug", "log level")
	flag.StringVar(&flagSuggestURL, "s", suggest.DefaultBaseURL, "autocomplete service base URL")
	flag.StringVar(&flagSuggestLang, "hl", "en", "autocomplete language")
	flag.DurationVar(&flagSuggestTimeout, "t", 5*time.Second, "autocomplete request timeout")
	flag.Float64Var(&flagSuggestRPS, "r", 10, "autocomplete requests per second, 0 for unlimited")
	flag.Parse()

	// .env необязателен: без него берём переменные окружения как есть
	_ = godotenv.Load()

	applyEnv(viper.New())
}

// applyEnv перекрывает значения флагов переменными окружения.
func applyEnv(v *viper.Viper) {
	v.AutomaticEnv()

	if v.IsSet("RUN_ADDR") {
		flagRunAddr = v.GetString("RUN_ADDR")
	}

	if v.IsSet("LOG_LEVEL") {
		flagLogLevel = v.GetString("LOG_LEVEL")
	}

	if v.IsSet("SUGGEST_URL") {
		flagSuggestURL = v.GetString("SUGGEST_URL")
	}

	if v.IsSet("SUGGEST_LANG") {
		flagSuggestLang = v.GetString("SUGGEST_LANG")
	}

	if v.IsSet("SUGGEST_TIMEOUT") {
		flagSuggestTimeout = v.GetDuration("SUGGEST_TIMEOUT")
	}

	if v.IsSet("SUGGEST_RPS") {
		flagSuggestRPS = v.GetFloat64("SUGGEST_RPS")
	}
}
