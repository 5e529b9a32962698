package config

import (
	"flag"
	"os"
	"strings"
	"time"

	"github.com/campuskit/presence/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string        base URL of the backend server
//	-t int           request timeout in seconds
//	-d string        path to the local session database
//	-capture string  capture command producing MJPEG on stdout
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-d", "-capture"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "base URL of the backend server")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the local session database")
	capture := fs.String("capture", strings.Join(cfg.CaptureCommand, " "), "capture command producing MJPEG on stdout")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
	if *capture != "" {
		cfg.CaptureCommand = strings.Fields(*capture)
	}
}
