package capture

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"
)

// Grabber captures one screenshot of the live feed to destPath.
type Grabber interface {
	Grab(ctx context.Context, destPath string) error
}

// FFmpegGrabber shells out to ffmpeg to capture the screen. The input device
// depends on the platform: x11grab on Linux, avfoundation on macOS.
type FFmpegGrabber struct {
	Display string // e.g. ":0.0" on Linux, "1" on macOS
}

func (g *FFmpegGrabber) Grab(ctx context.Context, destPath string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.CommandContext(ctx,
			"ffmpeg",
			"-f", "avfoundation",
			"-i", g.Display,
			"-frames:v", "1",
			"-y", destPath,
		)
	default:
		cmd = exec.CommandContext(ctx,
			"ffmpeg",
			"-f", "x11grab",
			"-i", g.Display,
			"-frames:v", "1",
			"-y", destPath,
		)
	}

	// Capture output for better error reporting
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg failed: %v\nOutput: %s", err, string(output))
	}
	return nil
}

// Session samples the feed at a fixed interval for a bounded duration.
type Session struct {
	grabber  Grabber
	logger   *slog.Logger
	interval time.Duration
	duration time.Duration
	frameDir string
}

func NewSession(grabber Grabber, logger *slog.Logger, interval, duration time.Duration, frameDir string) *Session {
	return &Session{
		grabber:  grabber,
		logger:   logger,
		interval: interval,
		duration: duration,
		frameDir: frameDir,
	}
}

// Run captures frames until the configured duration elapses or ctx is
// cancelled. Cancellation is not an error: whatever prefix of frames was
// captured is returned, in capture order.
func (s *Session) Run(ctx context.Context) ([]string, error) {
	if err := os.MkdirAll(s.frameDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create frame directory '%s': %v", s.frameDir, err)
	}

	deadline := time.Now().Add(s.duration)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	var frames []string
	frameNum := 1

	// First sample immediately, then one per tick.
	for {
		framePath := filepath.Join(s.frameDir, fmt.Sprintf("frame_%04d.png", frameNum))
		if err := s.grabber.Grab(ctx, framePath); err != nil {
			if ctx.Err() != nil {
				s.logger.Info("capture interrupted", "frames_captured", len(frames))
				return frames, nil
			}
			s.logger.Warn("failed to capture frame, skipping sample", "frame", frameNum, "error", err)
		} else {
			frames = append(frames, framePath)
			s.logger.Debug("captured frame", "frame", framePath)
		}
		frameNum++

		if !time.Now().Add(s.interval).Before(deadline) {
			return frames, nil
		}

		select {
		case <-ctx.Done():
			s.logger.Info("capture interrupted", "frames_captured", len(frames))
			return frames, nil
		case <-ticker.C:
		}
	}
}
