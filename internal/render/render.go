package render

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	ffmpegbin "github.com/hamedtrades1-cmyk/subnow/internal/ffmpeg"
)

// video stream information
type VideoInfo struct {
	Width    int
	Height   int
	Duration time.Duration
}

// encoding options for subtitle burn-in
type Options struct {
	Codec      string
	Preset     string
	CRF        int
	AudioCodec string
	// called with a 0..1 completion fraction as encoding advances
	Progress func(float64)
}

// DefaultOptions returns the encoding profile used for burned-in
// captions: x264 medium at CRF 18 with the audio stream copied.
func DefaultOptions() Options {
	return Options{
		Codec:      "libx264",
		Preset:     "medium",
		CRF:        18,
		AudioCodec: "copy",
	}
}

// ffprobe JSON for streams and format
type probeOutput struct {
	Streams []struct {
		CodecType string `json:"codec_type"`
		Width     int    `json:"width"`
		Height    int    `json:"height"`
	} `json:"streams"`
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// Probe reads the dimensions and duration of a video file via ffprobe.
func Probe(videoPath string) (*VideoInfo, error) {
	if _, err := os.Stat(videoPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("video file not found: %s", videoPath)
	}

	ffprobePath, err := ffmpegbin.FFprobePath()
	if err != nil {
		return nil, err
	}

	cmd := exec.Command(ffprobePath,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		videoPath,
	)

	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffprobe failed: %w", err)
	}

	var probe probeOutput
	if err := json.Unmarshal(out.Bytes(), &probe); err != nil {
		return nil, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	info := &VideoInfo{}
	for _, stream := range probe.Streams {
		if stream.CodecType == "video" && stream.Width > 0 {
			info.Width = stream.Width
			info.Height = stream.Height
			break
		}
	}
	if info.Width == 0 {
		return nil, fmt.Errorf("no video stream in %s", videoPath)
	}

	if seconds, err := strconv.ParseFloat(probe.Format.Duration, 64); err == nil {
		info.Duration = time.Duration(seconds * float64(time.Second))
	}

	return info, nil
}

// Burn renders the subtitle file onto the video with libass and writes
// the result to outputPath.
func Burn(ctx context.Context, videoPath, subtitlePath, outputPath string, opts Options) error {
	if _, err := os.Stat(videoPath); os.IsNotExist(err) {
		return fmt.Errorf("video file not found: %s", videoPath)
	}
	if _, err := os.Stat(subtitlePath); os.IsNotExist(err) {
		return fmt.Errorf("subtitle file not found: %s", subtitlePath)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	ffmpegPath, err := ffmpegbin.FFmpegPath()
	if err != nil {
		return err
	}

	if opts.Codec == "" {
		opts.Codec = "libx264"
	}
	if opts.Preset == "" {
		opts.Preset = "medium"
	}
	if opts.CRF <= 0 {
		opts.CRF = 18
	}
	if opts.AudioCodec == "" {
		opts.AudioCodec = "copy"
	}

	cmd := ffmpeg.Input(videoPath).
		Output(outputPath, ffmpeg.KwArgs{
			"vf":     fmt.Sprintf("ass=%s", filterEscape(subtitlePath)),
			"c:v":    opts.Codec,
			"preset": opts.Preset,
			"crf":    opts.CRF,
			"c:a":    opts.AudioCodec,
			"y":      "",
		}).
		OverWriteOutput().
		SetFfmpegPath(ffmpegPath).
		Silent(true).
		Compile()

	var duration time.Duration
	if info, err := Probe(videoPath); err == nil {
		duration = info.Duration
	}

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("failed to attach stderr: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start ffmpeg: %w", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		scanner := bufio.NewScanner(stderr)
		scanner.Split(scanProgressLines)
		for scanner.Scan() {
			if opts.Progress == nil || duration <= 0 {
				continue
			}
			if elapsed, ok := parseProgressTime(scanner.Text()); ok {
				fraction := min(elapsed.Seconds()/duration.Seconds(), 1.0)
				opts.Progress(fraction)
			}
		}
	}()

	go func() {
		select {
		case <-ctx.Done():
			_ = cmd.Process.Kill()
		case <-done:
		}
	}()

	<-done
	if err := cmd.Wait(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("ffmpeg render failed: %w", err)
	}

	if opts.Progress != nil {
		opts.Progress(1.0)
	}

	return nil
}

// ffmpeg filter arguments treat \ : ' specially
func filterEscape(path string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		`:`, `\:`,
		`'`, `\'`,
	)
	return r.Replace(path)
}

// ffmpeg rewrites its status line with \r, so split on both
func scanProgressLines(data []byte, atEOF bool) (int, []byte, error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

var progressTimeRegex = regexp.MustCompile(`time=(\d+):(\d+):(\d+(?:\.\d+)?)`)

// pulls the elapsed timestamp out of an ffmpeg status line
func parseProgressTime(line string) (time.Duration, bool) {
	m := progressTimeRegex.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}

	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	seconds, _ := strconv.ParseFloat(m[3], 64)

	total := float64(hours*3600+minutes*60) + seconds
	return time.Duration(total * float64(time.Second)), true
}
