// Package web provides the eventum application factory and its HTTP server.
package web

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/eventum/eventum/config"
	"github.com/eventum/eventum/logger"
	"github.com/eventum/eventum/util/common"
	"github.com/eventum/eventum/web/job"

	"github.com/robfig/cron/v3"
)

// Server serves an App over HTTP.
type Server struct {
	app        *App
	httpServer *http.Server
	listener   net.Listener
	cron       *cron.Cron

	ctx    context.Context
	cancel context.CancelFunc
}

func NewServer(cfg *config.AppConfig) (*Server, error) {
	app, err := NewAppFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{app: app, ctx: ctx, cancel: cancel}, nil
}

// Start listens on the configured address and serves in the background.
func (s *Server) Start() (err error) {
	defer func() {
		if err != nil {
			_ = s.Stop()
		}
	}()

	listenAddr := net.JoinHostPort(s.app.Config.Listen, strconv.Itoa(s.app.Config.Port))
	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}
	logger.Info("Web server running HTTP on", listener.Addr())

	s.listener = listener
	s.httpServer = &http.Server{
		Handler:           s.app.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.startTask()

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			logger.Error("web server stopped:", err)
		}
	}()
	return nil
}

// startTask schedules background maintenance jobs.
func (s *Server) startTask() {
	s.cron = cron.New(cron.WithSeconds())
	if _, err := s.cron.AddJob("@every 10m", job.NewCheckpointJob()); err != nil {
		logger.Warning("add checkpoint job failed:", err)
	}
	s.cron.Start()
}

// Stop shuts the HTTP server down, stops scheduled jobs and closes the database.
func (s *Server) Stop() error {
	s.cancel()
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
	var err1, err2 error
	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err1 = s.httpServer.Shutdown(ctx)
	} else if s.listener != nil {
		err1 = s.listener.Close()
	}
	err2 = s.app.Close()
	return common.Combine(err1, err2)
}

func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

func (s *Server) GetCtx() context.Context { return s.ctx }

func (s *Server) App() *App { return s.app }
