package breakout

import (
	"github.com/evergreen-ci/breakout/edm"
	"github.com/evergreen-ci/breakout/storage"
	"github.com/evergreen-ci/utility"
	"github.com/mongodb/grip"
	"github.com/pkg/errors"
)

const (
	defaultNumWorkers  = 2
	defaultServicePort = 3000
)

// Configuration holds the defaults used by the command line tools and the
// service. Command line flags take precedence over these values.
type Configuration struct {
	Detector    edm.DetectorOptions   `yaml:"detector" json:"detector"`
	NumWorkers  int                   `yaml:"num_workers" json:"num_workers"`
	ServicePort int                   `yaml:"service_port" json:"service_port"`
	Bucket      storage.BucketOptions `yaml:"bucket" json:"bucket"`
}

func DefaultConfiguration() *Configuration {
	return &Configuration{
		Detector:    edm.DefaultDetectorOptions(),
		NumWorkers:  defaultNumWorkers,
		ServicePort: defaultServicePort,
	}
}

// LoadConfiguration reads a YAML configuration file over the defaults.
func LoadConfiguration(path string) (*Configuration, error) {
	conf := DefaultConfiguration()
	if err := utility.ReadYAMLFile(path, conf); err != nil {
		return nil, errors.Wrapf(err, "problem reading configuration from '%s'", path)
	}

	if err := conf.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid configuration in '%s'", path)
	}

	return conf, nil
}

func (c *Configuration) Validate() error {
	catcher := grip.NewBasicCatcher()

	catcher.NewWhen(c.NumWorkers < 1, "must specify a valid number of amboy workers")
	catcher.NewWhen(c.ServicePort < 0 || c.ServicePort > 65535, "must specify a valid service port")
	catcher.Wrap(c.Detector.Validate(), "invalid detector options")
	if !c.Bucket.IsZero() {
		catcher.Wrap(c.Bucket.Validate(), "invalid results bucket")
	}

	return catcher.Resolve()
}
