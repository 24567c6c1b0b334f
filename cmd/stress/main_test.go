package main

import (
	"testing"

	"github.com/pointledger/pointledger/internal/logger"
)

func TestRun(t *testing.T) {
	if err := run(logger.Discard(), 4, 2000, 100, 16); err != nil {
		t.Fatal(err)
	}
}

func TestRunRejectsBadFlags(t *testing.T) {
	if err := run(logger.Discard(), 0, 10, 1, 1); err == nil {
		t.Error("expected error for zero users")
	}
}
