package daemon

import (
	"context"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	slidectlv1 "slidectl/api/slidectl/v1"
	"slidectl/internal/classify"
	"slidectl/internal/config"
	"slidectl/internal/errs"
	"slidectl/internal/launch"
	"slidectl/internal/lifecycle"
	"slidectl/internal/notify"
	"slidectl/internal/proc"
	"slidectl/internal/registry"
	"slidectl/internal/watch"
)

// service implements the Slides gRPC service backed by the registry.
type service struct {
	slidectlv1.UnimplementedSlidesServer

	instance   string
	cfg        config.Config
	classifier *classify.Classifier
	builder    *launch.Builder
	jobs       *proc.Jobs
	reg        *registry.Registry
	hooks      *lifecycle.Hooks
	watcher    *watch.Watcher
	logger     zerolog.Logger
}

func newService(cfg config.Config) (*service, error) {
	logger := log.With().Str("component", "daemon").Logger()
	jobs := proc.NewJobs()
	reg := registry.New(jobs, proc.NewTree())
	s := &service{
		instance:   uuid.NewString(),
		cfg:        cfg,
		classifier: classify.New(cfg.FilePatterns),
		builder:    launch.NewBuilder(launch.OSHost{}),
		jobs:       jobs,
		reg:        reg,
		hooks:      lifecycle.New(reg, notify.NewLog(logger)),
		logger:     logger,
	}
	if cfg.Watch.Enabled {
		w, err := watch.New(cfg.Watch.Grace, s.fileGone)
		if err != nil {
			return nil, err
		}
		s.watcher = w
	}
	return s, nil
}

// fileGone is the watcher callback for a tracked file removed from disk.
func (s *service) fileGone(key string) {
	if _, _, err := s.hooks.ContextClosed(key); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("cleanup after file removal failed")
	}
}

// shutdown stops every tracked process and the watcher.
func (s *service) shutdown() {
	s.hooks.Shutdown()
	if s.watcher != nil {
		if err := s.watcher.Close(); err != nil {
			s.logger.Debug().Err(err).Msg("close watcher")
		}
	}
}

func (s *service) Ping(ctx context.Context, _ *slidectlv1.PingRequest) (*slidectlv1.PingResponse, error) {
	return &slidectlv1.PingResponse{Ok: "pong", Instance: s.instance, Pid: int32(os.Getpid())}, nil
}

func (s *service) Launch(ctx context.Context, req *slidectlv1.LaunchRequest) (*slidectlv1.LaunchResponse, error) {
	key, err := registry.NormalizeKey(req.GetPath())
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	resp, err := s.launch(key)
	if err != nil {
		return nil, toStatus(err)
	}
	return resp, nil
}

func (s *service) launch(key string) (*slidectlv1.LaunchResponse, error) {
	title := registry.TitleOf(key)
	cmdline, err := s.builder.Build(key, title, s.cfg)
	if err != nil {
		return nil, err
	}
	id, err := s.jobs.Spawn(cmdline)
	if err != nil {
		return nil, errs.Wrap(errs.KindSpawn, "launch", key, err)
	}
	pid, _ := s.jobs.PID(id)
	s.reg.Register(key, title, registry.Handle{Job: id, PID: pid, Command: cmdline})
	s.track(key)

	s.logger.Info().Str("key", key).Uint64("job", uint64(id)).Int("pid", pid).Msg("launched")
	return &slidectlv1.LaunchResponse{
		Key:     key,
		Title:   title,
		Job:     uint64(id),
		Pid:     int32(pid),
		Command: cmdline,
	}, nil
}

func (s *service) Stop(ctx context.Context, req *slidectlv1.StopRequest) (*slidectlv1.StopResponse, error) {
	key, err := registry.NormalizeKey(req.GetPath())
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if req.GetIndex() < 0 {
		return nil, status.Error(codes.InvalidArgument, "index must be positive")
	}
	var stopped int
	if idx := int(req.GetIndex()); idx > 0 {
		err = s.reg.StopOne(key, idx)
		if err == nil {
			stopped = 1
		}
	} else {
		stopped, err = s.reg.StopAll(key)
	}
	s.untrackIfGone(key)
	if err != nil {
		return nil, toStatus(err)
	}
	return &slidectlv1.StopResponse{Stopped: int32(stopped)}, nil
}

func (s *service) StopEverything(ctx context.Context, _ *slidectlv1.StopEverythingRequest) (*slidectlv1.StopEverythingResponse, error) {
	keys := s.reg.Keys()
	n := s.reg.StopEverything()
	for _, key := range keys {
		s.untrackIfGone(key)
	}
	return &slidectlv1.StopEverythingResponse{Stopped: int32(n)}, nil
}

func (s *service) List(ctx context.Context, _ *slidectlv1.ListRequest) (*slidectlv1.ListResponse, error) {
	entries := s.reg.List()
	resp := &slidectlv1.ListResponse{
		Entries: make([]*slidectlv1.Entry, 0, len(entries)),
	}
	for _, e := range entries {
		out := &slidectlv1.Entry{
			Key:   e.Key,
			Title: e.Title,
			Procs: make([]*slidectlv1.Proc, 0, len(e.Procs)),
		}
		for _, p := range e.Procs {
			out.Procs = append(out.Procs, &slidectlv1.Proc{
				Index:          int32(p.Index),
				Job:            uint64(p.Handle.Job),
				Pid:            int32(p.PID),
				Alive:          p.Alive,
				Command:        p.Handle.Command,
				LaunchedAtUnix: p.Handle.LaunchedAt.Unix(),
			})
		}
		resp.Entries = append(resp.Entries, out)
	}
	return resp, nil
}

func (s *service) Close(ctx context.Context, req *slidectlv1.CloseRequest) (*slidectlv1.CloseResponse, error) {
	key, err := registry.NormalizeKey(req.GetPath())
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	tracked, n, err := s.hooks.ContextClosed(key)
	s.untrackIfGone(key)
	if err != nil {
		return nil, toStatus(err)
	}
	return &slidectlv1.CloseResponse{Tracked: tracked, Stopped: int32(n)}, nil
}

func (s *service) Open(ctx context.Context, req *slidectlv1.OpenRequest) (*slidectlv1.OpenResponse, error) {
	key, err := registry.NormalizeKey(req.GetPath())
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	resp := &slidectlv1.OpenResponse{Presentation: s.classifier.IsPresentationFile(key)}
	if !resp.Presentation || !s.cfg.AutoLaunch {
		return resp, nil
	}
	launched, err := s.launch(key)
	if err != nil {
		return nil, toStatus(err)
	}
	resp.Launched = true
	resp.Launch = launched
	return resp, nil
}

func (s *service) track(key string) {
	if s.watcher == nil {
		return
	}
	if err := s.watcher.Track(key); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("cannot watch file")
	}
}

func (s *service) untrackIfGone(key string) {
	if s.watcher == nil || s.reg.Has(key) {
		return
	}
	s.watcher.Untrack(key)
}

// toStatus maps error kinds onto gRPC codes.
func toStatus(err error) error {
	if err == nil {
		return nil
	}
	var code codes.Code
	switch errs.KindOf(err) {
	case errs.KindNotFound:
		code = codes.NotFound
	case errs.KindFileNotFound:
		code = codes.InvalidArgument
	case errs.KindNoTerminal:
		code = codes.FailedPrecondition
	case errs.KindSpawn:
		code = codes.Unavailable
	case errs.KindTermination:
		code = codes.Aborted
	default:
		code = codes.Internal
	}
	return status.Error(code, err.Error())
}
