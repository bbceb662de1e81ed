package main

import (
	"fmt"
	"os"
	"testing"
)

func TestMain(m *testing.M) {
	tempHome, err := os.MkdirTemp("", "skillfoundry-home-")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create temp HOME: %v\n", err)
		os.Exit(1)
	}

	_ = os.Setenv("HOME", tempHome)
	_ = os.Unsetenv("XDG_CONFIG_HOME")

	code := m.Run()

	_ = os.RemoveAll(tempHome)
	os.Exit(code)
}
