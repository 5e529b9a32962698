package camera

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"os/exec"
	"sync"

	"github.com/campuskit/presence/internal/common"
	"github.com/campuskit/presence/internal/logging"
)

// ExecDevice acquires the camera by spawning an external command that writes
// an MJPEG stream to stdout, e.g.:
//
//	ffmpeg -f v4l2 -i /dev/video0 -f mjpeg -q:v 2 -
//
// The command owns the actual device negotiation (including its own timeout
// on a busy or absent camera); this adapter turns its output into frames.
type ExecDevice struct {
	command []string
	log     logging.Logger
}

// NewExecDevice builds a device from an argv-style command. An empty command
// means no camera is configured; Open reports that as a device error.
func NewExecDevice(command []string, log logging.Logger) *ExecDevice {
	return &ExecDevice{command: command, log: log}
}

func (d *ExecDevice) Open(ctx context.Context) (Stream, error) {
	if len(d.command) == 0 {
		return nil, common.ErrNoDevice
	}

	runCtx, cancel := context.WithCancel(context.Background())
	cmd := exec.CommandContext(runCtx, d.command[0], d.command[1:]...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		cancel()
		return nil, fmt.Errorf("capture command failed to start: %w", err)
	}

	s := &execStream{
		cancel: cancel,
		ready:  make(chan struct{}),
		log:    d.log,
	}

	go s.run(bufio.NewReader(stdout), cmd)

	return s, nil
}

// execStream reads frames off the capture process and keeps only the latest.
type execStream struct {
	cancel context.CancelFunc
	ready  chan struct{}
	log    logging.Logger

	mu        sync.Mutex
	latest    []byte
	err       error
	readyOnce sync.Once
	stopOnce  sync.Once
	stopped   bool
}

func (s *execStream) run(r *bufio.Reader, cmd *exec.Cmd) {
	defer func() {
		_ = cmd.Wait()
	}()

	for {
		frame, err := nextJPEGFrame(r)
		if err != nil {
			s.mu.Lock()
			stopped := s.stopped
			if s.err == nil && !stopped {
				s.err = fmt.Errorf("capture stream ended: %w", err)
			}
			s.mu.Unlock()
			// Unblock a waiter that never saw a frame.
			s.readyOnce.Do(func() { close(s.ready) })
			return
		}

		s.mu.Lock()
		s.latest = frame
		s.mu.Unlock()
		s.readyOnce.Do(func() { close(s.ready) })
	}
}

func (s *execStream) Ready() <-chan struct{} {
	return s.ready
}

func (s *execStream) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	if s.latest == nil {
		return common.ErrDeviceNotReady
	}
	return nil
}

func (s *execStream) Frame() (image.Image, error) {
	s.mu.Lock()
	frame := s.latest
	s.mu.Unlock()

	if frame == nil {
		return nil, common.ErrDeviceNotReady
	}
	img, err := jpeg.Decode(bytes.NewReader(frame))
	if err != nil {
		return nil, fmt.Errorf("failed to decode frame: %w", err)
	}
	return img, nil
}

// Stop kills the capture process. Safe to call more than once and
// concurrently with the reader goroutine.
func (s *execStream) Stop() {
	s.stopOnce.Do(func() {
		s.mu.Lock()
		s.stopped = true
		s.mu.Unlock()
		s.cancel()
	})
}
