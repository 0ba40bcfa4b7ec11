package outbound

import "github.com/sagarghai/growth-tools-api/domain"

// WorkspacePort hands out per-request scratch directories. Release must be
// safe to call on every exit path and never fails the request.
type WorkspacePort interface {
	Acquire() (domain.Workspace, error)
	Release(workspace domain.Workspace)
}
