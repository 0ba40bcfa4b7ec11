package adapters

import (
	"context"
	"image/png"
	"os"
	"testing"
	"time"

	"golang.org/x/image/font/basicfont"

	"github.com/sagarghai/growth-tools-api/config"
	"github.com/sagarghai/growth-tools-api/domain"
)

func newTestRenderer() *chatFrameRenderer {
	return &chatFrameRenderer{
		logger: NewZerologWrapper(),
		chatConfig: &config.ChatConfig{
			Width:           376,
			Height:          812,
			TypingDuration:  2.0,
			MessageDuration: 3.0,
			MessagePause:    0.5,
		},
		face:  basicfont.Face7x13,
		clock: func() time.Time { return time.Date(2024, 6, 1, 14, 30, 0, 0, time.UTC) },
	}
}

func TestRenderSequenceFramesAndCues(t *testing.T) {
	renderer := newTestRenderer()
	workspace := domain.Workspace{ID: "test1234", Dir: t.TempDir()}

	messages := []domain.ChatMessage{
		{Role: domain.UserRole, Text: "Hey, is my order ready?"},
		{Role: domain.BotRole, Text: "Yes! It ships tomorrow morning."},
		{Role: domain.UserRole, Text: "Great, thanks!"},
	}

	frames, cues, err := renderer.RenderSequence(context.Background(), workspace, messages, "Support")
	if err != nil {
		t.Fatal("RenderSequence failed:", err)
	}

	// One still per user message, typing still plus reveal for the bot one.
	wantDurations := []float64{3.5, 2.0, 3.5, 3.0}
	if len(frames) != len(wantDurations) {
		t.Fatalf("len(frames) = %d, want %d", len(frames), len(wantDurations))
	}
	for i, frame := range frames {
		if frame.Ordinal != i {
			t.Errorf("frames[%d].Ordinal = %d, want %d", i, frame.Ordinal, i)
		}
		if frame.Duration != wantDurations[i] {
			t.Errorf("frames[%d].Duration = %v, want %v", i, frame.Duration, wantDurations[i])
		}
	}

	wantCues := []domain.SoundCue{
		{Offset: 0, Outgoing: true},
		{Offset: 5.5, Outgoing: false},
		{Offset: 9.0, Outgoing: true},
	}
	if len(cues) != len(wantCues) {
		t.Fatalf("len(cues) = %d, want %d", len(cues), len(wantCues))
	}
	for i, cue := range cues {
		if cue != wantCues[i] {
			t.Errorf("cues[%d] = %+v, want %+v", i, cue, wantCues[i])
		}
	}
}

func TestRenderSequenceWritesDecodablePNGs(t *testing.T) {
	renderer := newTestRenderer()
	workspace := domain.Workspace{ID: "test1234", Dir: t.TempDir()}

	frames, _, err := renderer.RenderSequence(context.Background(), workspace,
		[]domain.ChatMessage{{Role: domain.BotRole, Text: "Hello!"}}, "Bot")
	if err != nil {
		t.Fatal("RenderSequence failed:", err)
	}

	for _, frame := range frames {
		file, err := os.Open(frame.FileName)
		if err != nil {
			t.Fatalf("frame %q not on disk: %v", frame.FileName, err)
		}
		img, err := png.Decode(file)
		file.Close()
		if err != nil {
			t.Fatalf("frame %q is not a valid PNG: %v", frame.FileName, err)
		}
		bounds := img.Bounds()
		if bounds.Dx() != 376 || bounds.Dy() != 812 {
			t.Errorf("frame %q is %dx%d, want 376x812", frame.FileName, bounds.Dx(), bounds.Dy())
		}
	}
}

func TestRenderSequenceCancelledContext(t *testing.T) {
	renderer := newTestRenderer()
	workspace := domain.Workspace{ID: "test1234", Dir: t.TempDir()}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := renderer.RenderSequence(ctx, workspace,
		[]domain.ChatMessage{{Role: domain.UserRole, Text: "Hello!"}}, "Bot")
	if err == nil {
		t.Fatal("expected an error for a cancelled context")
	}
}

func TestWrapText(t *testing.T) {
	face := basicfont.Face7x13

	lines := wrapText("the quick brown fox jumps over the lazy dog", 100, face)
	if len(lines) < 2 {
		t.Fatalf("expected wrapping, got %d line(s): %q", len(lines), lines)
	}

	if lines := wrapText("", 100, face); len(lines) != 1 || lines[0] != "" {
		t.Errorf("empty text should yield one empty line, got %q", lines)
	}

	// A single oversized word keeps its own line instead of being dropped.
	lines = wrapText("antidisestablishmentarianism", 50, face)
	if len(lines) != 1 || lines[0] != "antidisestablishmentarianism" {
		t.Errorf("oversized word mangled: %q", lines)
	}
}
