package eventbus

import "errors"

// Programmer errors. Subscribe and Publish never return errors; they panic with
// one of these values when handed something they cannot work with.
var ErrNilCallback = errors.New("eventbus: callback must not be nil")
var ErrNilOwner = errors.New("eventbus: owner must not be nil")
var ErrNilEvent = errors.New("eventbus: event must not be nil")
