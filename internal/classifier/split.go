package classifier

import (
	"math"
	"math/rand"
)

const (
	DefaultTestSize = 0.2
	DefaultSeed     = 42
)

// Split shuffles the dataset with a generator seeded by seed and holds out ceil(testSize*n) rows.
// The same dataset, testSize and seed always produce the same split.
func Split(d Dataset, testSize float64, seed int64) (train, test Dataset) {
	if testSize <= 0 || testSize >= 1 {
		testSize = DefaultTestSize
	}
	if len(d) == 0 {
		return nil, nil
	}

	nTest := int(math.Ceil(testSize * float64(len(d))))
	if nTest >= len(d) {
		nTest = len(d) - 1
	}

	rnd := rand.New(rand.NewSource(seed))
	indices := rnd.Perm(len(d))

	test = make(Dataset, 0, nTest)
	train = make(Dataset, 0, len(d)-nTest)
	for i, idx := range indices {
		if i < nTest {
			test = append(test, d[idx])
		} else {
			train = append(train, d[idx])
		}
	}
	return train, test
}
