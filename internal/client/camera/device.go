// Package camera owns the device video stream lifecycle:
// acquire, detect-ready, capture-frame, release.
package camera

import (
	"context"
	"image"
)

// Device acquires a video stream. Open may block on permission/device setup;
// a granted stream is not necessarily frame-ready yet; readiness is signaled
// separately by the Stream.
type Device interface {
	Open(ctx context.Context) (Stream, error)
}

// Stream is a live video stream.
//
// Ready is closed once, either when the first frame has been decoded or when
// the stream dies before producing one; Err distinguishes the two. Frame
// returns the most recently decoded frame. Stop releases the underlying
// device and is safe to call more than once.
type Stream interface {
	Ready() <-chan struct{}
	Frame() (image.Image, error)
	Err() error
	Stop()
}
