package rest

import (
	"context"
	"time"

	"github.com/evergreen-ci/gimlet"
	"github.com/pkg/errors"
)

const (
	defaultPort   = 3000
	defaultPrefix = "rest"
)

// Service serves the breakout detectors over HTTP.
type Service struct {
	Port   int
	Prefix string

	// internal settings
	app       *gimlet.APIApp
	startedAt time.Time
}

func (s *Service) Validate() error {
	if s.Port < 0 || s.Port > 65535 {
		return errors.Errorf("port %d is not valid", s.Port)
	}

	if s.app == nil {
		s.app = gimlet.NewApp()
	}

	if s.Port == 0 {
		s.Port = defaultPort
	}

	if err := s.app.SetPort(s.Port); err != nil {
		return errors.WithStack(err)
	}

	if s.Prefix == "" {
		s.Prefix = defaultPrefix
	}
	s.app.SetPrefix(s.Prefix)

	return nil
}

// Start registers the routes and blocks serving them until ctx is
// canceled.
func (s *Service) Start(ctx context.Context) error {
	if s.app == nil {
		return errors.New("application is not valid")
	}

	s.startedAt = time.Now()
	s.addRoutes()

	if err := s.app.Resolve(); err != nil {
		return errors.Wrap(err, "problem resolving routes")
	}

	return s.app.Run(ctx)
}

func (s *Service) addRoutes() {
	s.app.AddRoute("/status").Version(1).Get().RouteHandler(makeStatusHandler(s.startedAt))
	s.app.AddRoute("/breakouts/amoc").Version(1).Post().RouteHandler(makeAMOCHandler())
	s.app.AddRoute("/breakouts/multi").Version(1).Post().RouteHandler(makeMultiHandler())
}
