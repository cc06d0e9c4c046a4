package handlers

import (
    "os"
    "testing"

    "github.com/nexusnova/atlas/pkg/logger"
)

func TestMain(m *testing.M) {
    if _, err := logger.Init("info", "json"); err != nil {
        panic("failed to init logger: " + err.Error())
    }
    os.Exit(m.Run())
}
