package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"bookforge/core"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// syncBuffer is a bytes.Buffer safe for the server goroutine and the test
// to share.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func freePort(t *testing.T) int {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()
	return ln.Addr().(*net.TCPAddr).Port
}

// serverEnv points configuration at a free port and a temp log file.
func serverEnv(t *testing.T) string {
	t.Helper()
	for _, k := range []string{"BOOKFORGE_CONFIG_FILE", "PORT", "DEV_MODE", "BOOKFORGE_LOG_LEVEL", "BOOKFORGE_DEFAULT_LOCALE"} {
		t.Setenv(k, "")
	}
	port := freePort(t)
	t.Setenv("BOOKFORGE_HOST", "127.0.0.1")
	t.Setenv("BOOKFORGE_PORT", strconv.Itoa(port))
	t.Setenv("BOOKFORGE_LOG_FILE", filepath.Join(t.TempDir(), "bookforge.log"))
	t.Setenv("BOOKFORGE_SHUTDOWN_TIMEOUT", "5")
	return fmt.Sprintf("http://127.0.0.1:%d", port)
}

func waitHealthy(t *testing.T, base string) {
	t.Helper()
	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		resp, err := http.Get(base + "/health")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}
	t.Fatal("server did not become healthy")
}

func TestRunServer_ServesAndStops(t *testing.T) {
	base := serverEnv(t)
	t.Setenv("BOOKFORGE_DEFAULT_LOCALE", "de-DE")

	stop := make(chan struct{})
	exit := make(chan int, 1)
	out := &syncBuffer{}
	go func() { exit <- runServer(stop, out) }()

	waitHealthy(t, base)

	resp, err := http.Get(base + "/api/books?seed=42&language=xx-XX&likes=1&reviews=1&count=2")
	if err != nil {
		t.Fatal(err)
	}
	var books []struct {
		Locale string `json:"locale"`
	}
	err = json.NewDecoder(resp.Body).Decode(&books)
	resp.Body.Close()
	if err != nil {
		t.Fatal(err)
	}
	if len(books) != 2 || books[0].Locale != "de-DE" {
		t.Errorf("unknown locale should fall back to the configured default, got %+v", books)
	}

	close(stop)
	select {
	case code := <-exit:
		if code != core.ExitCodeSuccess {
			t.Errorf("exit code = %d, want 0\n%s", code, out.String())
		}
	case <-time.After(15 * time.Second):
		t.Fatal("runServer did not return after stop")
	}

	if !strings.Contains(out.String(), "Validation Passed") {
		t.Errorf("expected validation output, got:\n%s", out.String())
	}
}

func TestRunServer_InvalidConfig(t *testing.T) {
	serverEnv(t)
	t.Setenv("BOOKFORGE_PAGE_SIZE", "0")

	out := &syncBuffer{}
	if code := runServer(nil, out); code != core.ExitCodeError {
		t.Errorf("exit code = %d, want %d", code, core.ExitCodeError)
	}
	if !strings.Contains(out.String(), "BOOKFORGE_PAGE_SIZE") {
		t.Errorf("output should name the bad setting:\n%s", out.String())
	}
}

func TestRunServer_UnsupportedLocale(t *testing.T) {
	serverEnv(t)
	t.Setenv("BOOKFORGE_DEFAULT_LOCALE", "xx-XX")

	out := &syncBuffer{}
	if code := runServer(nil, out); code != core.ExitCodeError {
		t.Errorf("exit code = %d, want %d", code, core.ExitCodeError)
	}
	if !strings.Contains(out.String(), "Validation Failed") {
		t.Errorf("expected failed validation output:\n%s", out.String())
	}
}

func TestCatalogLocales(t *testing.T) {
	obs, logs := observer.New(zapcore.WarnLevel)

	reg := catalogLocales("de-DE", zap.New(obs))
	if got := reg.Fallback(); got != "de-DE" {
		t.Errorf("Fallback() = %q, want de-DE", got)
	}
	if logs.Len() != 0 {
		t.Errorf("supported locale logged %d warnings", logs.Len())
	}

	reg = catalogLocales("xx-XX", zap.New(obs))
	if got := reg.Fallback(); got != "en-US" {
		t.Errorf("Fallback() = %q, want en-US", got)
	}
	warned := logs.FilterMessage("Default locale not supported, keeping built-in fallback").All()
	if len(warned) != 1 {
		t.Fatalf("warnings = %d, want 1", len(warned))
	}
	if got := warned[0].ContextMap()["requested"]; got != "xx-XX" {
		t.Errorf("requested field = %v, want xx-XX", got)
	}
}

func TestHandleServiceCommand_Usage(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		code     int
		toStdout bool
	}{
		{"no command", nil, core.ExitCodeError, false},
		{"help", []string{"help"}, core.ExitCodeSuccess, true},
		{"--help", []string{"--help"}, core.ExitCodeSuccess, true},
		{"unknown", []string{"explode"}, core.ExitCodeError, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := handleServiceCommand(tt.args, &stdout, &stderr)
			if code != tt.code {
				t.Errorf("exit code = %d, want %d", code, tt.code)
			}

			var w io.Reader = &stderr
			if tt.toStdout {
				w = &stdout
			}
			data, _ := io.ReadAll(w)
			if !strings.Contains(string(data), "Usage: bookforge service <command>") {
				t.Errorf("usage not printed to the expected stream:\nstdout=%s\nstderr=%s", stdout.String(), stderr.String())
			}
		})
	}
}

func TestHandleServiceCommand_UnknownNamesCommand(t *testing.T) {
	var stdout, stderr bytes.Buffer
	handleServiceCommand([]string{"explode"}, &stdout, &stderr)
	if !strings.Contains(stderr.String(), "explode") {
		t.Errorf("stderr should name the command: %s", stderr.String())
	}
}

func TestServiceConfig(t *testing.T) {
	cfg := serviceConfig()
	if cfg.Name != "bookforge" {
		t.Errorf("Name = %q", cfg.Name)
	}
	if cfg.Description == "" {
		t.Error("Description should not be empty")
	}
}

func TestProgramStopWithoutStart(t *testing.T) {
	p := newProgram()
	p.exit <- core.ExitCodeSuccess
	if err := p.Stop(nil); err != nil {
		t.Errorf("Stop() error = %v", err)
	}
	if _, ok := <-p.stop; ok {
		t.Error("stop channel should be closed")
	}
}

func TestMain(m *testing.M) {
	// runServer loads .env from the working directory.
	if _, err := os.Stat(".env"); err == nil {
		fmt.Fprintln(os.Stderr, "main tests expect no .env in the package directory")
		os.Exit(1)
	}
	os.Exit(m.Run())
}
