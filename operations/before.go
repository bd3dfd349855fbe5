package operations

import (
	"os"

	"github.com/evergreen-ci/breakout/util"
	"github.com/mongodb/grip"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

// this file contains validator functions passed to commands to check the
// contents of flags before any work starts.

var requireValidFormat = func(c *cli.Context) error {
	return errors.WithStack(util.OutputFormat(c.String(formatFlagName)).Validate())
}

func requireFileExists(name string) cli.BeforeFunc {
	return func(c *cli.Context) error {
		path := c.String(name)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return errors.Errorf("file '%s' does not exist", path)
		}

		return nil
	}
}

func requireAtMostOneFlag(names ...string) cli.BeforeFunc {
	return func(c *cli.Context) error {
		var numSet int
		for _, name := range names {
			if c.IsSet(name) {
				numSet++
			}
		}
		if numSet > 1 {
			return errors.Errorf("must set at most one flag from the following: %s", names)
		}
		return nil
	}
}

func mergeBeforeFuncs(ops ...func(c *cli.Context) error) cli.BeforeFunc {
	return func(c *cli.Context) error {
		catcher := grip.NewBasicCatcher()

		for _, op := range ops {
			catcher.Add(op(c))
		}

		return catcher.Resolve()
	}
}
