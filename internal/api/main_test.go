package api

import (
	"os"
	"testing"
)

func TestMain(m *testing.M) {
	os.Setenv("ENV", "test")
	os.Exit(m.Run())
}
