package operations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/urfave/cli"
)

func flagNames(flags []cli.Flag) map[string]cli.Flag {
	out := map[string]cli.Flag{}
	for _, f := range flags {
		out[f.GetName()] = f
	}
	return out
}

func TestFlagGroups(t *testing.T) {
	for name, test := range map[string]struct {
		flags    []cli.Flag
		expected []string
	}{
		"AMOC": {
			flags:    mergeFlags(addPathFlag(), addOutputFlags(), amocFlags()),
			expected: []string{"path, filename, file, f", "output, o", "format", "minSize, m", "alpha", "approximate"},
		},
		"Multi": {
			flags:    mergeFlags(addPathFlag(), addOutputFlags(), multiFlags()),
			expected: []string{"path, filename, file, f", "output, o", "format", "minSize, m", "degree", "beta", "percent"},
		},
		"Batch": {
			flags:    batchFlags(),
			expected: []string{"minSize, m", "workers", "mode", "bucket", "bucketType", "bucketPrefix"},
		},
		"Service": {
			flags:    serviceFlags(),
			expected: []string{"port, p"},
		},
	} {
		t.Run(name, func(t *testing.T) {
			flagMap := flagNames(test.flags)
			assert.Len(t, flagMap, len(test.expected))
			for _, n := range test.expected {
				_, ok := flagMap[n]
				assert.True(t, ok, n)
			}
		})
	}
}

func TestJoinFlagNames(t *testing.T) {
	assert.Equal(t, "a, b", joinFlagNames("a", "b"))
	assert.Equal(t, "a", joinFlagNames("a"))
	assert.Len(t, mergeFlags(addPathFlag(), nil, addOutputFlags()), 3)
}
