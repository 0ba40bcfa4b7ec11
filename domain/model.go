package domain

import "path/filepath"

type Role string

const (
	UserRole Role = "user"
	BotRole  Role = "bot"
)

// ChatMessage is a single message in a chat mockup request.
type ChatMessage struct {
	Role Role
	Text string
}

// SlidePrompt is one slideshow prompt with its position in the request.
type SlidePrompt struct {
	Text    string
	Ordinal int
}

// Frame is one rendered still plus the time it stays on screen.
// Ordinal carries the input position so concurrently produced frames
// can be put back in request order before encoding.
type Frame struct {
	FileName string
	Duration float64
	Ordinal  int
}

type FramesAscByOrdinal []Frame

func (f FramesAscByOrdinal) Len() int           { return len(f) }
func (f FramesAscByOrdinal) Less(i, j int) bool { return f[i].Ordinal < f[j].Ordinal }
func (f FramesAscByOrdinal) Swap(i, j int)      { f[i], f[j] = f[j], f[i] }

// SoundCue marks the moment a notification sound plays in the chat mockup
// audio track. Offset is seconds from the start of the video.
type SoundCue struct {
	Offset   float64
	Outgoing bool
}

// Workspace is the scratch directory owned by exactly one request.
type Workspace struct {
	ID  string
	Dir string
}

func (w Workspace) Path(name string) string {
	return filepath.Join(w.Dir, name)
}

// VideoArtifact is the finished MP4, still living inside its Workspace.
type VideoArtifact struct {
	FileName string
	Size     int64
}
