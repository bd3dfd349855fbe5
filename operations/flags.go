package operations

import (
	"strings"

	"github.com/evergreen-ci/breakout/storage"
	"github.com/evergreen-ci/breakout/util"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

////////////////////////////////////////////////////////////////////////
//
// Flag Name Constants

const (
	configFlag     = "config"
	pathFlagName   = "path"
	outputFlagName = "output"
	formatFlagName = "format"

	numWorkersFlag = "workers"
	modeFlagName   = "mode"
	servicePort    = "port"

	bucketNameFlag   = "bucket"
	bucketTypeFlag   = "bucketType"
	bucketPrefixFlag = "bucketPrefix"

	minSizeFlag     = "minSize"
	alphaFlag       = "alpha"
	approximateFlag = "approximate"
	degreeFlag      = "degree"
	betaFlag        = "beta"
	percentFlag     = "percent"
)

////////////////////////////////////////////////////////////////////////
//
// Utility Functions

func joinFlagNames(ids ...string) string { return strings.Join(ids, ", ") }

func mergeFlags(in ...[]cli.Flag) []cli.Flag {
	out := []cli.Flag{}

	for idx := range in {
		out = append(out, in[idx]...)
	}

	return out
}

////////////////////////////////////////////////////////////////////////
//
// Flag Groups

func addPathFlag(flags ...cli.Flag) []cli.Flag {
	return append(flags, cli.StringFlag{
		Name:  joinFlagNames(pathFlagName, "filename", "file", "f"),
		Usage: "path to the input series file",
	})
}

func addOutputFlags(flags ...cli.Flag) []cli.Flag {
	return append(flags,
		cli.StringFlag{
			Name:  joinFlagNames(outputFlagName, "o"),
			Usage: "path to the output file, standard output if unset",
		},
		cli.StringFlag{
			Name:  formatFlagName,
			Usage: "output format, 'json' or 'yaml'",
			Value: string(util.OutputJSON),
		})
}

func addMinSizeFlag(flags ...cli.Flag) []cli.Flag {
	return append(flags, cli.IntFlag{
		Name:  joinFlagNames(minSizeFlag, "m"),
		Usage: "minimum number of observations between breakouts",
	})
}

func amocFlags(flags ...cli.Flag) []cli.Flag {
	return append(addMinSizeFlag(flags...),
		cli.Float64Flag{
			Name:  alphaFlag,
			Usage: "distance exponent for the approximate search, between 0 and 2",
		},
		cli.BoolFlag{
			Name:  approximateFlag,
			Usage: "use the interval tree approximation instead of the exact search",
		})
}

func multiFlags(flags ...cli.Flag) []cli.Flag {
	return append(addMinSizeFlag(flags...),
		cli.IntFlag{
			Name:  degreeFlag,
			Usage: "penalty degree, 0 (constant), 1 (linear) or 2 (quadratic)",
		},
		cli.Float64Flag{
			Name:  betaFlag,
			Usage: "penalty weight for each additional breakout",
		},
		cli.Float64Flag{
			Name:  percentFlag,
			Usage: "minimum relative improvement required to keep a breakout, instead of beta",
		})
}

func batchFlags(flags ...cli.Flag) []cli.Flag {
	return append(addMinSizeFlag(flags...),
		cli.IntFlag{
			Name:  numWorkersFlag,
			Usage: "specify the number of worker jobs this process will have",
		},
		cli.StringFlag{
			Name:  modeFlagName,
			Usage: "detector to run on every series, 'amoc' or 'multi'",
		},
		cli.StringFlag{
			Name:  bucketNameFlag,
			Usage: "upload per-series results to this bucket (a directory for local buckets)",
		},
		cli.StringFlag{
			Name:  bucketTypeFlag,
			Usage: "type of the results bucket, 's3' or 'local'",
			Value: string(storage.BucketLocal),
		},
		cli.StringFlag{
			Name:  bucketPrefixFlag,
			Usage: "key prefix for uploaded results",
		})
}

func serviceFlags(flags ...cli.Flag) []cli.Flag {
	return append(flags,
		cli.IntFlag{
			Name:   joinFlagNames(servicePort, "p"),
			Usage:  "specify a port to run the service on",
			EnvVar: "BREAKOUT_SERVICE_PORT",
		})
}

func setFlagOrFirstPositional(name string) cli.BeforeFunc {
	return func(c *cli.Context) error {
		val := c.String(name)
		if val == "" {
			if c.NArg() != 1 {
				return errors.Errorf("must specify exactly one positional argument for '%s'", name)
			}

			val = c.Args().Get(0)
		}

		return c.Set(name, val)
	}
}
