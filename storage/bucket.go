package storage

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/evergreen-ci/pail"
	"github.com/evergreen-ci/utility"
	"github.com/mongodb/grip"
	"github.com/pkg/errors"
)

// BucketType describes the name of the blob storage backing a pail Bucket
// implementation.
type BucketType string

const (
	BucketS3    BucketType = "s3"
	BucketLocal BucketType = "local"

	defaultS3Region = "us-east-1"
)

// BucketOptions describe where detection results are uploaded. For local
// buckets Name is a directory path.
type BucketOptions struct {
	Type        BucketType `json:"type" yaml:"type"`
	Name        string     `json:"name" yaml:"name"`
	Prefix      string     `json:"prefix" yaml:"prefix"`
	Region      string     `json:"region" yaml:"region"`
	Permissions string     `json:"permissions" yaml:"permissions"`
	AWSKey      string     `json:"aws_key" yaml:"aws_key"`
	AWSSecret   string     `json:"aws_secret" yaml:"aws_secret"`
}

// IsZero reports whether no bucket was configured.
func (o BucketOptions) IsZero() bool { return o.Name == "" }

func (o BucketOptions) Validate() error {
	catcher := grip.NewBasicCatcher()

	catcher.NewWhen(o.Name == "", "must specify a bucket name")
	if o.Type != BucketS3 && o.Type != BucketLocal {
		catcher.Errorf("bucket type '%s' is not supported", o.Type)
	}

	return catcher.Resolve()
}

// Create returns a pail Bucket backed by the configured type.
func (o BucketOptions) Create(ctx context.Context) (pail.Bucket, error) {
	if err := o.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid bucket options")
	}

	var b pail.Bucket
	var err error

	switch o.Type {
	case BucketS3:
		region := o.Region
		if region == "" {
			region = defaultS3Region
		}
		opts := pail.S3Options{
			Name:        o.Name,
			Prefix:      o.Prefix,
			Region:      region,
			Permissions: pail.S3Permissions(o.Permissions),
			MaxRetries:  utility.ToIntPtr(10),
		}
		if o.AWSKey != "" {
			opts.Credentials = pail.CreateAWSCredentials(o.AWSKey, o.AWSSecret, "")
		}
		b, err = pail.NewS3Bucket(ctx, opts)
		if err != nil {
			return nil, errors.WithStack(err)
		}
	case BucketLocal:
		b, err = pail.NewLocalBucket(pail.LocalOptions{
			Path:   o.Name,
			Prefix: o.Prefix,
		})
		if err != nil {
			return nil, errors.WithStack(err)
		}
	}

	if err = b.Check(ctx); err != nil {
		return nil, errors.WithStack(err)
	}
	return b, nil
}

// PutJSON uploads data as a JSON document at key.
func PutJSON(ctx context.Context, bucket pail.Bucket, key string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return errors.Wrapf(err, "problem marshalling '%s'", key)
	}

	return errors.Wrapf(bucket.Put(ctx, key, bytes.NewReader(payload)), "problem uploading '%s'", key)
}

// GetJSON downloads the JSON document at key into out.
func GetJSON(ctx context.Context, bucket pail.Bucket, key string, out interface{}) error {
	r, err := bucket.Get(ctx, key)
	if err != nil {
		return errors.Wrapf(err, "problem downloading '%s'", key)
	}

	return errors.Wrapf(utility.ReadJSON(r, out), "problem reading '%s'", key)
}
