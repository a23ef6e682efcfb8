package mirror

import (
	"github.com/kobepower/CyberNinjaADB/internal/model"
)

// Mirrorer defines the interface for the mirror session service.
type Mirrorer interface {
	SetBinary(binary string)
	SetUpdateCallback(func(*Session))
	Start(options Options) (*Session, error)
	StartAll(devices []model.SerialEntry, options Options) []*Session
	Stop(sessionID string) error
	GetSession(sessionID string) (*Session, bool)
	ActiveSessions() []*Session
}
