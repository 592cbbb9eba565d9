package core

import (
	"os"
	"syscall"
)

// Process exit codes. Signal exits follow the shell convention 128+N.
const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
	ExitCodeSIGINT  = 128 + int(syscall.SIGINT)
	ExitCodeSIGTERM = 128 + int(syscall.SIGTERM)
)

// ExitCodeForSignal maps the signal that stopped the server to an exit
// code. A nil signal means a requested stop and maps to success.
func ExitCodeForSignal(sig os.Signal) int {
	switch sig {
	case nil:
		return ExitCodeSuccess
	case os.Interrupt:
		return ExitCodeSIGINT
	case syscall.SIGTERM:
		return ExitCodeSIGTERM
	}
	return ExitCodeError
}

// IsSignalExit reports whether code came from ExitCodeForSignal for a real signal.
func IsSignalExit(code int) bool {
	return code == ExitCodeSIGINT || code == ExitCodeSIGTERM
}

// ExitCodeName names an exit code for the shutdown log line.
func ExitCodeName(code int) string {
	switch code {
	case ExitCodeSuccess:
		return "success"
	case ExitCodeError:
		return "error"
	case ExitCodeSIGINT:
		return "interrupted"
	case ExitCodeSIGTERM:
		return "terminated"
	}
	return "unknown"
}
