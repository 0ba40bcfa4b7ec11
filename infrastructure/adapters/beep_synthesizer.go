package adapters

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"

	"github.com/sagarghai/growth-tools-api/application/ports/outbound"
	"github.com/sagarghai/growth-tools-api/domain"
)

const (
	beepSampleRate  = 44100
	sendFrequency   = 800.0
	sendDuration    = 0.10
	receiveFreq     = 600.0
	receiveDuration = 0.15
)

type beepSynthesizer struct {
	logger outbound.LoggerPort
}

// NewBeepSynthesizer produces the WhatsApp-style send and receive
// notification sounds as 16-bit mono PCM WAV files.
func NewBeepSynthesizer(logger outbound.LoggerPort) outbound.SoundSynthesizerPort {
	return &beepSynthesizer{logger: logger}
}

func (b *beepSynthesizer) Synthesize(workspace domain.Workspace) (outbound.SoundEffects, error) {
	sendFile := workspace.Path("send.wav")
	if err := writeBeep(sendFile, sendFrequency, sendDuration); err != nil {
		return outbound.SoundEffects{}, domain.NewGenerationError("failed to write send sound", "", err)
	}

	receiveFile := workspace.Path("receive.wav")
	if err := writeBeep(receiveFile, receiveFreq, receiveDuration); err != nil {
		return outbound.SoundEffects{}, domain.NewGenerationError("failed to write receive sound", "", err)
	}

	return outbound.SoundEffects{
		SendFile:    sendFile,
		ReceiveFile: receiveFile,
	}, nil
}

// writeBeep renders a sine wave with an exponential decay envelope so the
// beep ends without a click.
func writeBeep(fileName string, frequency float64, duration float64) error {
	sampleCount := int(beepSampleRate * duration)
	samples := make([]int16, sampleCount)
	for i := range samples {
		t := float64(i) / beepSampleRate
		wave := math.Sin(frequency * 2 * math.Pi * t)
		envelope := math.Exp(-t * 10)
		samples[i] = int16(wave * envelope * 32767)
	}

	var buf bytes.Buffer
	dataSize := uint32(len(samples) * 2)

	buf.WriteString("RIFF")
	binaryWrite(&buf, uint32(36+dataSize))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	binaryWrite(&buf, uint32(16))
	binaryWrite(&buf, uint16(1)) // PCM
	binaryWrite(&buf, uint16(1)) // mono
	binaryWrite(&buf, uint32(beepSampleRate))
	binaryWrite(&buf, uint32(beepSampleRate*2))
	binaryWrite(&buf, uint16(2))
	binaryWrite(&buf, uint16(16))
	buf.WriteString("data")
	binaryWrite(&buf, dataSize)
	binaryWrite(&buf, samples)

	return os.WriteFile(fileName, buf.Bytes(), 0o644)
}

func binaryWrite(buf *bytes.Buffer, data interface{}) {
	// bytes.Buffer writes never fail.
	_ = binary.Write(buf, binary.LittleEndian, data)
}
