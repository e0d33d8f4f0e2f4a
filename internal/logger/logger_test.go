package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewBuildsForBothEnvironments(t *testing.T) {
	for _, env := range []string{"development", "production"} {
		log, err := New(env)
		if err != nil {
			t.Fatalf("failed to build %s logger: %v", env, err)
		}
		log.Sync()
	}
}

func TestNewWithDefaultsNeverNil(t *testing.T) {
	if NewWithDefaults() == nil {
		t.Fatal("expected a logger")
	}
}

func TestJSONEntriesCarryLevelAndMessage(t *testing.T) {
	var buf bytes.Buffer

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		MessageKey:     "message",
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(&buf),
		zapcore.DebugLevel,
	)

	log := zap.New(core)
	log.Info("catalog loaded", zap.Int("products", 8))
	log.Sync()

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("entry is not valid JSON: %v", err)
	}
	if entry["level"] != "info" {
		t.Errorf("unexpected level %v", entry["level"])
	}
	if entry["message"] != "catalog loaded" {
		t.Errorf("unexpected message %v", entry["message"])
	}
	if entry["products"] != float64(8) {
		t.Errorf("unexpected field %v", entry["products"])
	}
}
