package daemon

import (
	"errors"
	"fmt"
	"net"
	"os"
	"sync"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"google.golang.org/grpc"

	slidectlv1 "slidectl/api/slidectl/v1"
	"slidectl/internal/config"
	"slidectl/internal/proc"
)

// ErrAlreadyRunning is returned when another daemon holds the instance lock.
var ErrAlreadyRunning = errors.New("daemon already running")

// Options configures a daemon start.
type Options struct {
	// ConfigPath points to an optional config file.
	ConfigPath string
	// Overrides are deep-merged over the file, e.g. from --set flags.
	Overrides map[string]any
}

// Server wraps the gRPC server bound to the UNIX socket
type Server struct {
	gs   *grpc.Server
	ln   net.Listener
	path string
	lock *flock.Flock
	svc  *service

	closeOnce sync.Once
	closeErr  error
}

// Close stops serving, stops every tracked presentation and unlinks the socket
func (s *Server) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.close()
	})
	return s.closeErr
}

func (s *Server) close() error {
	if s.gs != nil {
		s.gs.GracefulStop()
	}
	if s.svc != nil {
		s.svc.shutdown()
	}
	var errs []error
	if s.path != "" {
		if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	if err := RemovePID(); err != nil {
		errs = append(errs, err)
	}
	if s.lock != nil {
		if err := s.lock.Unlock(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Instance returns the id reported by Ping for this daemon run.
func (s *Server) Instance() string {
	return s.svc.instance
}

// StartDaemon takes the instance lock, binds the UNIX socket and serves the
// Slides service in the background.
func StartDaemon(opts Options) (*Server, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}
	applyLogLevel(cfg.Log.Level)
	if err := EnsureRuntimeDir(); err != nil {
		return nil, err
	}

	lock := flock.New(LockPath())
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", lock.Path(), err)
	}
	if !locked {
		return nil, fmt.Errorf("%w (lock %s held)", ErrAlreadyRunning, lock.Path())
	}

	s := &Server{lock: lock}
	fail := func(err error) (*Server, error) {
		_ = s.Close()
		return nil, err
	}

	path := SocketPath()
	// Holding the lock means any socket file left behind is stale.
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fail(err)
	}

	ln, err := net.Listen("unix", path)
	if err != nil {
		return fail(err)
	}
	s.ln, s.path = ln, path
	if err := os.Chmod(path, 0o600); err != nil {
		_ = ln.Close()
		return fail(err)
	}

	svc, err := newService(cfg)
	if err != nil {
		_ = ln.Close()
		return fail(err)
	}
	s.svc = svc

	s.gs = grpc.NewServer()
	slidectlv1.RegisterSlidesServer(s.gs, svc)

	if err := WritePID(os.Getpid()); err != nil {
		_ = ln.Close()
		return fail(err)
	}
	go func() {
		if err := s.gs.Serve(ln); err != nil {
			log.Error().Err(err).Msg("grpc server stopped")
		}
	}()
	log.Info().Str("socket", path).Str("instance", svc.instance).Msg("daemon started")
	return s, nil
}

func loadConfig(opts Options) (config.Config, error) {
	m, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Config{}, err
	}
	if err := m.Configure(opts.Overrides); err != nil {
		return config.Config{}, err
	}
	return m.Config()
}

// applyLogLevel sets the global level from log.level unless --debug already
// lowered it.
func applyLogLevel(level string) {
	if level == "" || zerolog.GlobalLevel() <= zerolog.DebugLevel {
		return
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		log.Warn().Str("level", level).Msg("ignoring invalid log.level")
		return
	}
	zerolog.SetGlobalLevel(lvl)
}

// StopRunningDaemon sends a termination signal to the currently running daemon if any.
func StopRunningDaemon(force bool) error {
	pid, err := RunningPID()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if IsRunning() {
				return fmt.Errorf("daemon is running but PID file %q is missing; stop it manually", PIDPath())
			}
			return nil
		}
		return fmt.Errorf("unable to read daemon PID: %w", err)
	}
	if pid == os.Getpid() {
		return errors.New("refusing to stop current process")
	}
	if !proc.Running(pid) {
		log.Debug().Int("pid", pid).Msg("removing stale daemon PID file")
		return RemovePID()
	}
	p, err := os.FindProcess(pid)
	if err != nil {
		return err
	}
	if err := sendSignal(p, syscall.SIGTERM); err != nil {
		return err
	}
	if waitForShutdown(5 * time.Second) {
		return nil
	}
	if !force {
		return fmt.Errorf("daemon process %d did not exit after SIGTERM", pid)
	}
	if err := sendSignal(p, syscall.SIGKILL); err != nil {
		return err
	}
	if waitForShutdown(2 * time.Second) {
		return nil
	}
	return fmt.Errorf("daemon process %d did not exit after SIGKILL", pid)
}

func sendSignal(p *os.Process, sig syscall.Signal) error {
	if err := p.Signal(sig); err != nil {
		if errors.Is(err, os.ErrProcessDone) {
			_ = RemovePID()
			return nil
		}
		return err
	}
	return nil
}

func waitForShutdown(timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for {
		if !IsRunning() {
			_ = RemovePID()
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(100 * time.Millisecond)
	}
}
