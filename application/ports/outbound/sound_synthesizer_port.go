package outbound

import "github.com/sagarghai/growth-tools-api/domain"

type SoundEffects struct {
	SendFile    string
	ReceiveFile string
}

// SoundSynthesizerPort writes the notification sound files into the workspace.
type SoundSynthesizerPort interface {
	Synthesize(workspace domain.Workspace) (SoundEffects, error)
}
