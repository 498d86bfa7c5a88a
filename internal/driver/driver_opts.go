package driver

import "time"

type SimDriverOpt func(*SimDriver)

func WithTickLength(tickLength time.Duration) SimDriverOpt {
	return func(d *SimDriver) {
		d.tickLength = tickLength
	}
}

// WithTickObserver registers a callback receiving each tick's duration.
func WithTickObserver(fn func(time.Duration)) SimDriverOpt {
	return func(d *SimDriver) {
		d.observe = fn
	}
}
