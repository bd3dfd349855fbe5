package edm

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
)

const defaultSeed = 12345678

type breakoutFixture struct {
	Series   []float64 `json:"series"`
	MinSize  int       `json:"min_size"`
	Expected struct {
		Exact   *int  `json:"exact"`
		Tail    *int  `json:"tail"`
		Multi   []int `json:"multi"`
		Percent []int `json:"percent"`
	} `json:"expected"`
	PercentThreshold float64 `json:"percent_threshold"`
}

func LoadFixture(testName string, fixture interface{}) error {
	parts := strings.Split(testName, "/")
	testName = parts[len(parts)-1]

	data, err := os.ReadFile(fmt.Sprintf("testdata/%s.json", testName))
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.Wrapf(json.Unmarshal(data, fixture), "problem parsing fixture %s", testName)
}

func threeLevelSeries() []float64 {
	return []float64{
		3.0, 1.0, 2.0, 3.0, 2.0, 1.0, 1.0, 2.0, 2.0, 3.0,
		6.0, 4.0, 4.0, 5.0, 6.0, 4.0, 4.0, 4.0, 6.0, 5.0,
		9.0, 8.0, 7.0, 9.0, 8.0, 9.0, 9.0, 9.0, 7.0, 9.0,
	}
}

func stepSeries() []float64 {
	out := make([]float64, 20)
	for i := 10; i < 20; i++ {
		out[i] = 1.0
	}
	return out
}

func constantSeries(n int, value float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = value
	}
	return out
}
