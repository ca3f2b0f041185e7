package utils

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
)

// FFmpegTranscoder shells out to ffmpeg to convert Telegram-style OGG
// voice notes into 16kHz mono WAV for speech recognition.
type FFmpegTranscoder struct {
	Binary string
}

func NewFFmpegTranscoder() *FFmpegTranscoder {
	return &FFmpegTranscoder{Binary: "ffmpeg"}
}

func (t *FFmpegTranscoder) OggToWav(ctx context.Context, ogg []byte) ([]byte, error) {
	cmd := exec.CommandContext(ctx, t.Binary,
		"-i", "pipe:0",
		"-ar", "16000",
		"-ac", "1",
		"-f", "wav",
		"pipe:1",
	)
	cmd.Stdin = bytes.NewReader(ogg)

	var out, errOut bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errOut

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffmpeg transcode: %w: %s", err, errOut.String())
	}
	return out.Bytes(), nil
}
