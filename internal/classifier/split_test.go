package classifier

import (
	"reflect"
	"testing"
)

func TestSplitSizes(t *testing.T) {
	t.Parallel()

	dataset := syntheticDataset(100, 1)
	train, test := Split(dataset, 0.2, DefaultSeed)
	if len(train) != 80 || len(test) != 20 {
		t.Fatalf("expected 80/20, got %d/%d", len(train), len(test))
	}

	small := syntheticDataset(3, 1)
	train, test = Split(small, 0.2, DefaultSeed)
	if len(train) != 2 || len(test) != 1 {
		t.Fatalf("expected 2/1 for tiny dataset, got %d/%d", len(train), len(test))
	}
}

func TestSplitDeterministic(t *testing.T) {
	t.Parallel()

	dataset := syntheticDataset(50, 7)
	trainA, testA := Split(dataset, 0.2, 42)
	trainB, testB := Split(dataset, 0.2, 42)
	if !reflect.DeepEqual(trainA, trainB) || !reflect.DeepEqual(testA, testB) {
		t.Fatalf("expected identical splits for the same seed")
	}

	_, testC := Split(dataset, 0.2, 43)
	if reflect.DeepEqual(testA, testC) {
		t.Fatalf("expected a different split for a different seed")
	}
}
