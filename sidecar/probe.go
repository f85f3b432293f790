package sidecar

import (
	"encoding/json"
	"fmt"
	"os/exec"
)

// MediaProbe summarizes the ffprobe container metadata for a reconstructed
// or recovered media file.
type MediaProbe struct {
	FormatName      string
	DurationSeconds float64
	BitRate         int64
	Streams         []StreamInfo
}

// StreamInfo is one ffprobe stream entry, trimmed to the fields a reviewer
// cares about when judging whether a recovered file is playable.
type StreamInfo struct {
	CodecType string
	CodecName string
	Width     int
	Height    int
}

// ProbeMedia shells out to the ffprobe sidecar binary to report container
// metadata for path. It does not attempt to decode frames, only read the
// container's own index. If ffprobe exits with an error, ProbeMedia
// returns that error and no report.
func ProbeMedia(ffprobePath, path string) (MediaProbe, error) {
	cmd := exec.Command(ffprobePath,
		"-v", "error",
		"-show_entries", "format=format_name,duration,bit_rate:stream=codec_type,codec_name,width,height",
		"-of", "json",
		path)

	out, err := cmd.Output()
	if err != nil {
		return MediaProbe{}, fmt.Errorf("ffprobe %s: %w", path, err)
	}

	var raw ffprobeOutput
	if err := json.Unmarshal(out, &raw); err != nil {
		return MediaProbe{}, fmt.Errorf("parse ffprobe output for %s: %w", path, err)
	}

	return raw.toMediaProbe(), nil
}

type ffprobeOutput struct {
	Format struct {
		FormatName string `json:"format_name"`
		Duration   string `json:"duration"`
		BitRate    string `json:"bit_rate"`
	} `json:"format"`
	Streams []struct {
		CodecType string `json:"codec_type"`
		CodecName string `json:"codec_name"`
		Width     int    `json:"width"`
		Height    int    `json:"height"`
	} `json:"streams"`
}

func (r ffprobeOutput) toMediaProbe() MediaProbe {
	probe := MediaProbe{FormatName: r.Format.FormatName}
	fmt.Sscanf(r.Format.Duration, "%f", &probe.DurationSeconds)
	fmt.Sscanf(r.Format.BitRate, "%d", &probe.BitRate)

	for _, s := range r.Streams {
		probe.Streams = append(probe.Streams, StreamInfo{
			CodecType: s.CodecType,
			CodecName: s.CodecName,
			Width:     s.Width,
			Height:    s.Height,
		})
	}
	return probe
}
