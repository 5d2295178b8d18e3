package monitoring

import "errors"

var ErrEmptyCurve = errors.New("training curve has no episodes")
