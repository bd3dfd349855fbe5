package operations

import (
	"github.com/evergreen-ci/breakout/edm"
	"github.com/evergreen-ci/breakout/util"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

type amocResult struct {
	Series string `json:"series" yaml:"series"`
	Found  bool   `json:"found" yaml:"found"`
	Index  int    `json:"index,omitempty" yaml:"index,omitempty"`
}

type multiResult struct {
	Series    string `json:"series" yaml:"series"`
	Breakouts []int  `json:"breakouts" yaml:"breakouts"`
}

// AMOC returns the ./breakout amoc command, which reports at most one
// breakout in a series file.
func AMOC() cli.Command {
	return cli.Command{
		Name:  "amoc",
		Usage: "find the strongest single breakout in a series",
		Flags: mergeFlags(addPathFlag(), addOutputFlags(), amocFlags()),
		Before: mergeBeforeFuncs(
			setFlagOrFirstPositional(pathFlagName),
			requireFileExists(pathFlagName),
			requireValidFormat,
		),
		Action: func(c *cli.Context) error {
			conf, err := loadConfiguration(c)
			if err != nil {
				return errors.WithStack(err)
			}

			opts := conf.Detector.AMOC
			if c.IsSet(minSizeFlag) {
				opts.MinSize = c.Int(minSizeFlag)
			}
			if c.IsSet(alphaFlag) {
				opts.Alpha = c.Float64(alphaFlag)
			}
			if c.Bool(approximateFlag) {
				opts.Exact = false
			}

			fn := c.String(pathFlagName)
			series, err := util.ReadSeries(fn)
			if err != nil {
				return errors.Wrap(err, "problem reading series")
			}

			index, found, err := edm.AMOC(series, opts)
			if err != nil {
				return errors.Wrapf(err, "problem detecting breakout in '%s'", fn)
			}

			grip.Info(message.Fields{
				"message":  "single breakout detection complete",
				"series":   fn,
				"length":   len(series),
				"min_size": opts.MinSize,
				"exact":    opts.Exact,
				"found":    found,
			})

			return writeResult(c, amocResult{Series: fn, Found: found, Index: index})
		},
	}
}

// Multi returns the ./breakout multi command, which reports every breakout
// in a series file.
func Multi() cli.Command {
	return cli.Command{
		Name:  "multi",
		Usage: "find all breakouts in a series",
		Flags: mergeFlags(addPathFlag(), addOutputFlags(), multiFlags()),
		Before: mergeBeforeFuncs(
			setFlagOrFirstPositional(pathFlagName),
			requireFileExists(pathFlagName),
			requireValidFormat,
			requireAtMostOneFlag(betaFlag, percentFlag),
		),
		Action: func(c *cli.Context) error {
			conf, err := loadConfiguration(c)
			if err != nil {
				return errors.WithStack(err)
			}

			opts := conf.Detector.Multi
			if c.IsSet(minSizeFlag) {
				opts.MinSize = c.Int(minSizeFlag)
			}
			if c.IsSet(degreeFlag) {
				opts.Degree = c.Int(degreeFlag)
			}
			if c.IsSet(betaFlag) {
				beta := c.Float64(betaFlag)
				opts.Beta = &beta
				opts.Percent = nil
			}
			if c.IsSet(percentFlag) {
				percent := c.Float64(percentFlag)
				opts.Percent = &percent
				opts.Beta = nil
			}

			fn := c.String(pathFlagName)
			series, err := util.ReadSeries(fn)
			if err != nil {
				return errors.Wrap(err, "problem reading series")
			}

			breakouts, err := edm.Multi(series, opts)
			if err != nil {
				return errors.Wrapf(err, "problem detecting breakouts in '%s'", fn)
			}

			grip.Info(message.Fields{
				"message":   "breakout detection complete",
				"series":    fn,
				"length":    len(series),
				"min_size":  opts.MinSize,
				"breakouts": len(breakouts),
			})

			return writeResult(c, multiResult{Series: fn, Breakouts: breakouts})
		},
	}
}
