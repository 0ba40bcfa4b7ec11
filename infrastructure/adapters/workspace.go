package adapters

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/sagarghai/growth-tools-api/application/ports/outbound"
	"github.com/sagarghai/growth-tools-api/domain"
)

type workspaceManager struct {
	logger  outbound.LoggerPort
	baseDir string
}

// NewWorkspaceManager creates the scratch base directory and hands out one
// uniquely named subdirectory per request.
func NewWorkspaceManager(baseDir string, logger outbound.LoggerPort) (outbound.WorkspacePort, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create workspace base directory: %w", err)
	}
	return &workspaceManager{
		logger:  logger,
		baseDir: baseDir,
	}, nil
}

func (w *workspaceManager) Acquire() (domain.Workspace, error) {
	id := uuid.NewString()[:8]
	dir := filepath.Join(w.baseDir, "req-"+id)
	if err := os.Mkdir(dir, 0o755); err != nil {
		return domain.Workspace{}, fmt.Errorf("failed to create workspace: %w", err)
	}

	return domain.Workspace{ID: id, Dir: dir}, nil
}

func (w *workspaceManager) Release(workspace domain.Workspace) {
	if workspace.Dir == "" {
		return
	}
	if err := os.RemoveAll(workspace.Dir); err != nil {
		w.logger.ErrorWithFields(err, "Failed to remove workspace", map[string]interface{}{
			"workspace": workspace.Dir,
		})
	}
}
