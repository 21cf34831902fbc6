package common

import (
	"testing"

	"github.com/lni/dragonboat/v4/logger"
)

func TestInitLoggersRepeatedly(t *testing.T) {
	for _, level := range []string{"info", "debug", "error", "warn"} {
		if err := InitLoggers(level); err != nil {
			t.Fatalf("InitLoggers(%q) failed: %v", level, err)
		}
	}

	// the loggers stay usable after the level changes
	logger.GetLogger("rpc").Infof("still logging")
}

func TestInitLoggersRejectsUnknownLevel(t *testing.T) {
	if err := InitLoggers("loud"); err == nil {
		t.Fatal("expected an error for an unknown log level")
	}
}
