package commands

import (
	"os"
	"testing"

	"github.com/colonyops/docent/internal/core/logging"
)

func TestMain(m *testing.M) {
	restore := logging.Discard()
	code := m.Run()
	restore()
	os.Exit(code)
}
