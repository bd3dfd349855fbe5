package operations

import (
	"context"

	"github.com/evergreen-ci/breakout/rest"
	"github.com/mongodb/grip"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

// Service returns the ./breakout service command, which serves the
// detectors over a REST API.
func Service() cli.Command {
	return cli.Command{
		Name:  "service",
		Usage: "run the breakout detection api service",
		Flags: serviceFlags(),
		Action: func(c *cli.Context) error {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			conf, err := loadConfiguration(c)
			if err != nil {
				return errors.WithStack(err)
			}

			port := conf.ServicePort
			if c.IsSet(servicePort) {
				port = c.Int(servicePort)
			}

			service := &rest.Service{
				Port: port,
			}

			if err := service.Validate(); err != nil {
				return errors.Wrap(err, "problem validating service")
			}

			grip.Noticef("starting breakout service on :%d", service.Port)
			if err := service.Start(ctx); err != nil {
				return errors.Wrap(err, "problem running service")
			}

			grip.Info("completed service, terminating.")
			return nil
		},
	}
}
