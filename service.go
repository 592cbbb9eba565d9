package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"bookforge/core"

	"github.com/kardianos/service"
)

// serviceStopTimeout bounds how long Stop waits for the server to exit.
const serviceStopTimeout = 30 * time.Second

// program runs the server under the OS service manager.
type program struct {
	stop chan struct{}
	exit chan int
}

func newProgram() *program {
	return &program{
		stop: make(chan struct{}),
		exit: make(chan int, 1),
	}
}

// Start is called by the service manager and must not block.
func (p *program) Start(s service.Service) error {
	go func() {
		p.exit <- runServer(p.stop, os.Stdout)
	}()
	return nil
}

// Stop asks the server to shut down and waits for it to finish.
func (p *program) Stop(s service.Service) error {
	close(p.stop)
	select {
	case code := <-p.exit:
		if code != core.ExitCodeSuccess && !core.IsSignalExit(code) {
			return fmt.Errorf("server exited with %s", core.ExitCodeName(code))
		}
		return nil
	case <-time.After(serviceStopTimeout):
		return fmt.Errorf("timeout waiting for service to stop")
	}
}

func serviceConfig() *service.Config {
	return &service.Config{
		Name:        "bookforge",
		DisplayName: "Bookforge",
		Description: "Serves a reproducible fake book catalog over HTTP",
		Option: service.KeyValue{
			"StartType": "automatic",
			"Restart":   "on-failure",
		},
	}
}

// runAsService runs under the service manager when the process was
// started by one. It returns false when running interactively.
func runAsService() (bool, error) {
	if service.Interactive() {
		return false, nil
	}

	s, err := service.New(newProgram(), serviceConfig())
	if err != nil {
		return false, fmt.Errorf("failed to create service: %w", err)
	}
	if err := s.Run(); err != nil {
		return true, fmt.Errorf("service run failed: %w", err)
	}
	return true, nil
}

// handleServiceCommand implements `bookforge service <command>` and
// returns the exit code.
func handleServiceCommand(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printServiceUsage(stderr)
		return core.ExitCodeError
	}

	cmd := args[0]
	switch cmd {
	case "help", "-h", "--help":
		printServiceUsage(stdout)
		return core.ExitCodeSuccess
	case "install", "uninstall", "start", "stop", "restart", "status":
	default:
		fmt.Fprintf(stderr, "Unknown service command: %s\n\n", cmd)
		printServiceUsage(stderr)
		return core.ExitCodeError
	}

	s, err := service.New(newProgram(), serviceConfig())
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to create service: %v\n", err)
		return core.ExitCodeError
	}

	if cmd == "status" {
		status, err := s.Status()
		if err != nil {
			fmt.Fprintf(stderr, "Error: failed to get service status: %v\n", err)
			return core.ExitCodeError
		}
		fmt.Fprintln(stdout, describeStatus(status))
		return core.ExitCodeSuccess
	}

	if err := service.Control(s, cmd); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return core.ExitCodeError
	}
	fmt.Fprintf(stdout, "Service %s: ok\n", cmd)
	return core.ExitCodeSuccess
}

func describeStatus(status service.Status) string {
	switch status {
	case service.StatusRunning:
		return "Service is running"
	case service.StatusStopped:
		return "Service is stopped"
	default:
		return "Service status unknown"
	}
}

func printServiceUsage(w io.Writer) {
	fmt.Fprintln(w, "Bookforge service management")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage: bookforge service <command>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  install    Register bookforge with the OS service manager")
	fmt.Fprintln(w, "  uninstall  Remove the service registration")
	fmt.Fprintln(w, "  start      Start the installed service")
	fmt.Fprintln(w, "  stop       Stop the running service")
	fmt.Fprintln(w, "  restart    Stop and start the service")
	fmt.Fprintln(w, "  status     Show the current service status")
	fmt.Fprintln(w, "  help       Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run without arguments to serve in the foreground.")
}
