package camera

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/jpeg"
	"sync"

	"github.com/campuskit/presence/internal/client/models"
	"github.com/campuskit/presence/internal/common"
	"github.com/campuskit/presence/internal/logging"
)

// State is the capture session state visible to the UI layer.
type State int

const (
	Idle State = iota
	Acquiring
	Ready
	Failed
	Uploading
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Acquiring:
		return "acquiring"
	case Ready:
		return "ready"
	case Failed:
		return "error"
	case Uploading:
		return "uploading"
	default:
		return "unknown"
	}
}

const (
	captureFileName = "student-picture.jpg"
	captureQuality  = 95
)

var ErrBusy = errors.New("capture session is uploading")

// Controller is the capture-session state machine:
//
//	Idle --Open--> Acquiring --granted & first frame--> Ready
//	Acquiring --device error--> Failed --Retry--> Acquiring
//	Ready --Capture--> Ready (emits a CapturedImage)
//	Ready <--SetUploading--> Uploading
//	any --Close--> Idle (stream stopped)
//
// It is re-enterable: Close then Open starts a fresh session. Only one
// session can be live at a time; Open while a stream is held stops the old
// stream first. A Close racing an in-flight Open wins: the late stream is
// stopped, never surfaced.
type Controller struct {
	mu     sync.Mutex
	device Device
	log    logging.Logger

	state  State
	reason string
	stream Stream
	gen    uint64
}

func NewController(device Device, log logging.Logger) *Controller {
	return &Controller{device: device, log: log, state: Idle}
}

// State returns the current state and, in Failed, the human-readable reason.
func (c *Controller) State() (State, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state, c.reason
}

// Open acquires the stream and blocks until it is genuinely frame-ready.
// Permission grant and frame readiness are different time points; the
// controller stays in Acquiring until the first frame has been decoded.
// On failure it moves to Failed and waits for an explicit Retry; it never
// auto-retries. Cancelling ctx tears the session down to Idle.
func (c *Controller) Open(ctx context.Context) error {
	c.mu.Lock()
	if c.state == Uploading {
		c.mu.Unlock()
		return ErrBusy
	}
	if c.stream != nil {
		c.stream.Stop()
		c.stream = nil
	}
	c.gen++
	gen := c.gen
	c.state = Acquiring
	c.reason = ""
	c.mu.Unlock()

	c.log.Debug(ctx, "acquiring capture device")

	stream, err := c.device.Open(ctx)
	if err != nil {
		return c.fail(ctx, gen, fmt.Errorf("failed to access camera: %w", err))
	}

	c.mu.Lock()
	if c.gen != gen {
		// Closed while acquiring; the late stream must not survive.
		c.mu.Unlock()
		stream.Stop()
		return nil
	}
	c.stream = stream
	c.mu.Unlock()

	select {
	case <-stream.Ready():
	case <-ctx.Done():
		c.Close()
		return ctx.Err()
	}

	if err := stream.Err(); err != nil {
		stream.Stop()
		return c.fail(ctx, gen, fmt.Errorf("camera stream failed: %w", err))
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen != gen {
		stream.Stop()
		return nil
	}
	c.state = Ready
	c.log.Debug(ctx, "capture device ready")
	return nil
}

// Retry re-acquires after a failure. It is the only path out of Failed
// besides Close.
func (c *Controller) Retry(ctx context.Context) error {
	c.mu.Lock()
	if c.state != Failed {
		c.mu.Unlock()
		return fmt.Errorf("retry only valid after a device error, state is %s", c.state)
	}
	c.mu.Unlock()
	return c.Open(ctx)
}

// Capture grabs the current frame and encodes it. Valid only in Ready; any
// other state is rejected without producing an image. Capture does not change
// state and may be invoked repeatedly.
func (c *Controller) Capture() (*models.CapturedImage, error) {
	c.mu.Lock()
	if c.state != Ready || c.stream == nil {
		c.mu.Unlock()
		return nil, common.ErrDeviceNotReady
	}
	stream := c.stream
	c.mu.Unlock()

	frame, err := stream.Frame()
	if err != nil {
		return nil, fmt.Errorf("failed to read frame: %w", err)
	}

	// Raster matches whatever resolution the device stream negotiated.
	bounds := frame.Bounds()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, frame, &jpeg.Options{Quality: captureQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode frame: %w", err)
	}

	return &models.CapturedImage{
		Name:   captureFileName,
		Data:   buf.Bytes(),
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}, nil
}

// SetUploading toggles the submit phase. While uploading, Capture and Open
// are rejected; leaving the phase returns to Ready so the user can retry a
// failed submit without re-acquiring the camera.
func (c *Controller) SetUploading(uploading bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if uploading && c.state == Ready {
		c.state = Uploading
	}
	if !uploading && c.state == Uploading {
		c.state = Ready
	}
}

// Close stops every track of the underlying stream and returns to Idle, from
// any state. Callers invoke it on explicit cancel, successful submit, and
// teardown; it is idempotent and wins against a racing Open.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	if c.stream != nil {
		c.stream.Stop()
		c.stream = nil
	}
	c.state = Idle
	c.reason = ""
}

func (c *Controller) fail(ctx context.Context, gen uint64, err error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen != gen {
		return nil
	}
	c.stream = nil
	c.state = Failed
	c.reason = err.Error()
	c.log.Warn(ctx, "capture session failed", "reason", err.Error())
	return err
}
