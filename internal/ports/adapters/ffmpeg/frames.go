package ffmpeg

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// StreamGrayFrames decodes the input as raw single-channel intensity frames
// and invokes fn for each one in decode order. The pipeline stays on the
// calling goroutine; ffmpeg writes to a pipe and we read width*height bytes
// per frame until EOF.
func (a *Adapter) StreamGrayFrames(ctx context.Context, input string, width, height int, fn func(frame []byte) error) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid frame dimensions %dx%d", width, height)
	}

	cmd := exec.CommandContext(ctx, a.ffmpeg,
		"-i", input,
		"-f", "rawvideo",
		"-pix_fmt", "gray",
		"pipe:1",
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start ffmpeg: %w", err)
	}

	frameSize := width * height
	frame := make([]byte, frameSize)
	frames := 0
	var readErr error
	for {
		if _, err := io.ReadFull(stdout, frame); err != nil {
			if err != io.EOF {
				// A short trailing read means the decode died mid-frame.
				if err == io.ErrUnexpectedEOF {
					readErr = fmt.Errorf("decode truncated after %d frames", frames)
				} else {
					readErr = fmt.Errorf("read frame: %w", err)
				}
			}
			break
		}
		frames++
		if err := fn(frame); err != nil {
			readErr = err
			break
		}
	}

	// Drain so ffmpeg can exit even when fn aborted early.
	_, _ = io.Copy(io.Discard, stdout)

	if err := cmd.Wait(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("ffmpeg frame decode: %w\n%s", err, stderr.String())
	}
	if readErr != nil {
		return readErr
	}
	if frames == 0 {
		return fmt.Errorf("no frames decoded from %s", input)
	}
	a.log.Debug().Int("frames", frames).Str("input", input).Msg("gray frame stream complete")
	return nil
}

// FrameImage extracts the frame nearest to the given offset as an image,
// using a temporary JPEG as the interchange format.
func (a *Adapter) FrameImage(ctx context.Context, input string, at time.Duration) (image.Image, error) {
	tmp, err := os.CreateTemp("", "vidai-frame-*.jpg")
	if err != nil {
		return nil, err
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	cmd := exec.CommandContext(ctx, a.ffmpeg,
		"-y",
		"-ss", fmtSeconds(at),
		"-i", input,
		"-vframes", "1",
		"-q:v", "2",
		tmpPath,
	)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("ffmpeg frame extract: %w\n%s", err, string(b))
	}

	f, err := os.Open(filepath.Clean(tmpPath))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, err := jpeg.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode frame image: %w", err)
	}
	return img, nil
}
