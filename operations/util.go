package operations

import (
	"github.com/evergreen-ci/breakout"
	"github.com/evergreen-ci/breakout/util"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

// loadConfiguration returns the configuration named by the global config
// flag, or the defaults when no file is given.
func loadConfiguration(c *cli.Context) (*breakout.Configuration, error) {
	path := c.GlobalString(configFlag)
	if path == "" {
		return breakout.DefaultConfiguration(), nil
	}

	conf, err := breakout.LoadConfiguration(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	grip.Debug(message.Fields{
		"message": "loaded configuration",
		"path":    path,
		"mode":    conf.Detector.Mode,
	})

	return conf, nil
}

func writeResult(c *cli.Context, data interface{}) error {
	format := util.OutputFormat(c.String(formatFlagName))
	return errors.Wrap(util.WriteOutput(c.String(outputFlagName), format, data), "problem writing results")
}
