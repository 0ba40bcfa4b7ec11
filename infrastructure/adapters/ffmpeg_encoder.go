package adapters

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/sagarghai/growth-tools-api/application/ports/outbound"
	"github.com/sagarghai/growth-tools-api/config"
	"github.com/sagarghai/growth-tools-api/domain"
)

const defaultOutputName = "output.mp4"

type commandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

type ffmpegEncoder struct {
	logger        outbound.LoggerPort
	encoderConfig *config.EncoderConfig
	run           commandRunner
}

func NewFFmpegEncoder(encoderConfig *config.EncoderConfig, logger outbound.LoggerPort) outbound.VideoEncoderPort {
	return &ffmpegEncoder{
		logger:        logger,
		encoderConfig: encoderConfig,
		run: func(ctx context.Context, name string, args ...string) ([]byte, error) {
			return exec.CommandContext(ctx, name, args...).CombinedOutput()
		},
	}
}

func (e *ffmpegEncoder) Encode(ctx context.Context, req outbound.EncodeRequest) (domain.VideoArtifact, error) {
	if len(req.Frames) == 0 {
		return domain.VideoArtifact{}, domain.NewEncodingError("no frames to encode", "", nil)
	}

	newCtx, cancel := context.WithTimeout(ctx, e.encoderConfig.Timeout)
	defer cancel()

	listFileName, err := e.writeConcatList(req.Workspace, req.Frames)
	if err != nil {
		return domain.VideoArtifact{}, domain.NewEncodingError("failed to write concat list", "", err)
	}

	outputName := req.OutputName
	if outputName == "" {
		outputName = defaultOutputName
	}
	outputFileName := req.Workspace.Path(outputName)

	videoFileName := outputFileName
	if req.Audio != nil {
		videoFileName = req.Workspace.Path("video_only.mp4")
	}

	args := e.buildVideoArgs(listFileName, req.Width, req.Height, videoFileName)
	e.logger.Debug(e.encoderConfig.FFmpegPath + " " + strings.Join(args, " "))

	if out, err := e.run(newCtx, e.encoderConfig.FFmpegPath, args...); err != nil {
		return domain.VideoArtifact{}, e.encodingError(newCtx, "video encoding failed", out, err)
	}

	if req.Audio != nil {
		audioFileName, err := e.buildAudioTrack(newCtx, req.Workspace, req.Audio)
		if err != nil {
			return domain.VideoArtifact{}, err
		}

		muxArgs := []string{
			"-y",
			"-i", videoFileName,
			"-i", audioFileName,
			"-c:v", "copy", "-c:a", "aac",
			"-shortest",
			outputFileName,
		}
		if out, err := e.run(newCtx, e.encoderConfig.FFmpegPath, muxArgs...); err != nil {
			return domain.VideoArtifact{}, e.encodingError(newCtx, "audio mux failed", out, err)
		}
	}

	info, err := os.Stat(outputFileName)
	if err != nil {
		return domain.VideoArtifact{}, domain.NewEncodingError("encoder produced no output file", "", err)
	}
	if info.Size() == 0 {
		return domain.VideoArtifact{}, domain.NewEncodingError("encoder produced an empty output file", "", nil)
	}

	return domain.VideoArtifact{
		FileName: outputFileName,
		Size:     info.Size(),
	}, nil
}

// writeConcatList builds the concat demuxer input: one file/duration pair per
// frame, in order, with the last frame repeated so its duration is honored.
func (e *ffmpegEncoder) writeConcatList(workspace domain.Workspace, frames []domain.Frame) (string, error) {
	listFileName := workspace.Path("input.txt")
	fileList, err := os.Create(listFileName)
	if err != nil {
		return "", err
	}
	defer func() {
		if closeErr := fileList.Close(); closeErr != nil {
			e.logger.Error(closeErr, "Failed to close concat list file")
		}
	}()

	writer := bufio.NewWriter(fileList)
	for _, frame := range frames {
		if _, err := writer.WriteString(fmt.Sprintf("file '%s'\nduration %.2f\n", frame.FileName, frame.Duration)); err != nil {
			return "", err
		}
	}
	if _, err := writer.WriteString(fmt.Sprintf("file '%s'\n", frames[len(frames)-1].FileName)); err != nil {
		return "", err
	}
	if err := writer.Flush(); err != nil {
		return "", err
	}

	return listFileName, nil
}

func (e *ffmpegEncoder) buildVideoArgs(listFileName string, width, height int, videoFileName string) []string {
	args := []string{
		"-y",
		"-f", "concat", "-safe", "0",
		"-i", listFileName,
	}
	if width > 0 && height > 0 {
		filter := fmt.Sprintf("scale=%d:%d:force_original_aspect_ratio=decrease,pad=%d:%d:(ow-iw)/2:(oh-ih)/2",
			width, height, width, height)
		args = append(args, "-vf", filter)
	}
	return append(args,
		"-c:v", "libx264", "-pix_fmt", "yuv420p",
		videoFileName,
	)
}

// buildAudioTrack lays the notification sounds over a silent bed. If the mix
// fails the silent bed is used so the video still ships with an audio stream.
func (e *ffmpegEncoder) buildAudioTrack(ctx context.Context, workspace domain.Workspace, audio *outbound.AudioTrack) (string, error) {
	silentFileName := workspace.Path("silent.wav")
	silentArgs := []string{
		"-y",
		"-f", "lavfi",
		"-i", fmt.Sprintf("anullsrc=duration=%.2f:sample_rate=44100", audio.Duration+1),
		silentFileName,
	}
	if out, err := e.run(ctx, e.encoderConfig.FFmpegPath, silentArgs...); err != nil {
		return "", e.encodingError(ctx, "failed to create silent audio track", out, err)
	}

	if len(audio.Cues) == 0 {
		return silentFileName, nil
	}

	mixedFileName := workspace.Path("final_audio.wav")
	mixArgs := e.buildMixArgs(silentFileName, mixedFileName, audio)
	if out, err := e.run(ctx, e.encoderConfig.FFmpegPath, mixArgs...); err != nil {
		if timeoutErr := ctxTimeout(ctx, err); timeoutErr != nil {
			return "", e.encodingError(ctx, "audio mix timed out", out, err)
		}
		e.logger.ErrorWithFields(err, "Sound mix failed, falling back to silent track", map[string]interface{}{
			"output": string(out),
		})
		return silentFileName, nil
	}

	return mixedFileName, nil
}

func (e *ffmpegEncoder) buildMixArgs(silentFileName string, mixedFileName string, audio *outbound.AudioTrack) []string {
	args := []string{"-y", "-i", silentFileName}
	for _, cue := range audio.Cues {
		soundFileName := audio.Effects.ReceiveFile
		if cue.Outgoing {
			soundFileName = audio.Effects.SendFile
		}
		args = append(args, "-i", soundFileName)
	}

	filters := make([]string, 0, len(audio.Cues)+1)
	labels := make([]string, 0, len(audio.Cues))
	for i, cue := range audio.Cues {
		delayMs := int(cue.Offset * 1000)
		filters = append(filters, fmt.Sprintf("[%d:a]adelay=%d|%d[d%d]", i+1, delayMs, delayMs, i))
		labels = append(labels, fmt.Sprintf("[d%d]", i))
	}
	filters = append(filters, fmt.Sprintf("[0:a]%samix=inputs=%d[out]", strings.Join(labels, ""), len(audio.Cues)+1))

	return append(args,
		"-filter_complex", strings.Join(filters, ";"),
		"-map", "[out]",
		mixedFileName,
	)
}

func (e *ffmpegEncoder) encodingError(ctx context.Context, message string, out []byte, err error) error {
	pErr := domain.NewEncodingError(message, strings.TrimSpace(string(out)), err)
	if ctxTimeout(ctx, err) != nil {
		pErr.Timeout = true
	}
	return pErr
}

func ctxTimeout(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return context.DeadlineExceeded
	}
	return nil
}
