package classifier

import "errors"

var (
	// ErrDataFormat is returned when the dataset lacks the text/label columns or has unlabeled rows.
	ErrDataFormat = errors.New("invalid dataset format")
	// ErrInsufficientData is returned when fewer than two distinct labels are available for training.
	ErrInsufficientData = errors.New("insufficient training data")
	// ErrNotFitted is returned when a component is used before Fit.
	ErrNotFitted = errors.New("model not fitted")
)
