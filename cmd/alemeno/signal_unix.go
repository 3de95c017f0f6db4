//go:build !windows

package main

import (
	"os"
	"syscall"
)

// terminationSignals stop the server gracefully. SIGTERM is what systemd,
// docker and kubernetes send.
var terminationSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}
