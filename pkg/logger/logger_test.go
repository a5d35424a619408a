package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestInit_JSONWithServiceField(t *testing.T) {
	t.Cleanup(reset)

	var buf bytes.Buffer
	log := Init(Options{Level: "info", Service: "gnanalytica-website", Output: &buf})
	log.Info().Str("port", "3000").Msg("listening")
	log.Debug().Msg("hidden")

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("expected a single JSON line, got %q: %v", buf.String(), err)
	}
	if entry["service"] != "gnanalytica-website" || entry["message"] != "listening" || entry["port"] != "3000" {
		t.Fatalf("unexpected entry: %v", entry)
	}
}

func TestInit_OnlyFirstCallApplies(t *testing.T) {
	t.Cleanup(reset)

	var first, second bytes.Buffer
	Init(Options{Output: &first})
	l := Init(Options{Output: &second})
	l.Info().Msg("hello")

	if first.Len() == 0 || second.Len() != 0 {
		t.Fatalf("second Init must reuse the first logger")
	}
}

func TestGet_BeforeInitIsDisabled(t *testing.T) {
	reset()
	if Get().GetLevel() != zerolog.Disabled {
		t.Fatalf("expected disabled logger before Init")
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"DEBUG":   zerolog.DebugLevel,
		" warn ":  zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
