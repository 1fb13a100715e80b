package game

import (
	"os"
	"testing"

	"github.com/wfunc/starpoker/logger"
)

func TestMain(m *testing.M) {
	logger.InitDevelopment()
	os.Exit(m.Run())
}
