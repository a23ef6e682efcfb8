package mirror

import (
	"fmt"
	"log"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kobepower/CyberNinjaADB/internal/model"
)

// Session ID prefix
const SessionIDPrefix = "mirror-"

// Session represents one running instance of the mirroring tool
type Session struct {
	ID         string
	Serial     string
	Options    Options
	Status     model.SessionStatus
	LastError  string
	RecordPath string // set when the session records
	StartedAt  time.Time
	FinishedAt time.Time
}

// Service launches and tracks detached mirror processes
type Service struct {
	binary        string
	sessions      map[string]*Session
	processes     map[string]*exec.Cmd
	sessionsMutex sync.RWMutex
	onUpdate      func(*Session) // callback for UI updates
}

// NewService creates a mirror service around the given binary path
func NewService(binary string) *Service {
	return &Service{
		binary:    binary,
		sessions:  make(map[string]*Session),
		processes: make(map[string]*exec.Cmd),
	}
}

// SetBinary updates the mirroring tool path, e.g. after the user locates
// the executable
func (s *Service) SetBinary(binary string) {
	s.sessionsMutex.Lock()
	s.binary = binary
	s.sessionsMutex.Unlock()
}

// SetUpdateCallback sets the callback function for session updates
func (s *Service) SetUpdateCallback(callback func(*Session)) {
	s.onUpdate = callback
}

// Start launches a detached mirror session with the given options. The
// process is fire-and-forget: only its exit is observed, in the
// background, to keep session status current.
func (s *Service) Start(options Options) (*Session, error) {
	s.sessionsMutex.Lock()
	defer s.sessionsMutex.Unlock()

	if s.binary == "" {
		return nil, fmt.Errorf("mirroring tool path is not configured")
	}

	// One active session per device
	for _, session := range s.sessions {
		if session.Serial == options.Serial && session.Status.IsActive() {
			return nil, fmt.Errorf("mirror session already running for device: %s", options.Serial)
		}
	}

	session := &Session{
		ID:        generateSessionID(),
		Serial:    options.Serial,
		Options:   options,
		Status:    model.SessionStatusStarting,
		StartedAt: time.Now(),
	}
	if options.Record {
		session.RecordPath = options.RecordPath
	}

	cmd := exec.Command(s.binary, options.BuildArgs()...)
	if err := cmd.Start(); err != nil {
		session.Status = model.SessionStatusError
		session.LastError = err.Error()
		session.FinishedAt = time.Now()
		s.sessions[session.ID] = session
		s.notifyUpdate(session)
		return session, fmt.Errorf("failed to launch mirroring tool: %w", err)
	}

	session.Status = model.SessionStatusRunning
	s.sessions[session.ID] = session
	s.processes[session.ID] = cmd

	go s.waitForExit(session, cmd)

	s.notifyUpdate(session)
	return session, nil
}

// StartAll launches one session per device, deriving per-device record
// paths so parallel recordings do not clobber each other
func (s *Service) StartAll(devices []model.SerialEntry, options Options) []*Session {
	sessions := make([]*Session, 0, len(devices))

	for _, device := range devices {
		perDevice := options
		perDevice.Serial = device.Serial
		if perDevice.Record && perDevice.RecordPath != "" {
			perDevice.RecordPath = recordPathFor(device.Serial, perDevice.RecordPath)
		}

		session, err := s.Start(perDevice)
		if err != nil {
			log.Printf("Failed to start mirror for %s: %v", device.Serial, err)
			continue
		}
		sessions = append(sessions, session)
	}

	return sessions
}

// Stop terminates a running session
func (s *Service) Stop(sessionID string) error {
	s.sessionsMutex.Lock()

	session, exists := s.sessions[sessionID]
	if !exists {
		s.sessionsMutex.Unlock()
		return fmt.Errorf("mirror session not found: %s", sessionID)
	}
	if !session.Status.IsActive() {
		s.sessionsMutex.Unlock()
		return fmt.Errorf("mirror session is not active: %s", session.Status)
	}

	session.Status = model.SessionStatusStopping
	cmd := s.processes[sessionID]
	s.sessionsMutex.Unlock()

	s.notifyUpdate(session)

	if cmd != nil && cmd.Process != nil {
		if err := cmd.Process.Kill(); err != nil {
			return fmt.Errorf("failed to stop mirror process: %w", err)
		}
	}
	return nil
}

// GetSession returns a session by ID
func (s *Service) GetSession(sessionID string) (*Session, bool) {
	s.sessionsMutex.RLock()
	defer s.sessionsMutex.RUnlock()
	session, exists := s.sessions[sessionID]
	return session, exists
}

// ActiveSessions returns all sessions that are currently active
func (s *Service) ActiveSessions() []*Session {
	s.sessionsMutex.RLock()
	defer s.sessionsMutex.RUnlock()

	var active []*Session
	for _, session := range s.sessions {
		if session.Status.IsActive() {
			active = append(active, session)
		}
	}
	return active
}

// waitForExit observes the detached process and records how it ended
func (s *Service) waitForExit(session *Session, cmd *exec.Cmd) {
	err := cmd.Wait()

	s.sessionsMutex.Lock()
	switch {
	case session.Status == model.SessionStatusStopping:
		session.Status = model.SessionStatusStopped
	case err != nil:
		session.Status = model.SessionStatusError
		session.LastError = err.Error()
	default:
		session.Status = model.SessionStatusExited
	}
	session.FinishedAt = time.Now()
	delete(s.processes, session.ID)
	s.sessionsMutex.Unlock()

	s.notifyUpdate(session)
}

// notifyUpdate calls the update callback if set
func (s *Service) notifyUpdate(session *Session) {
	if s.onUpdate != nil {
		s.onUpdate(session)
	}
}

// recordPathFor derives a per-device recording path from the configured one
func recordPathFor(serial, recordPath string) string {
	safe := strings.ReplaceAll(serial, ":", "_")
	return safe + "_" + recordPath
}

// generateSessionID generates a unique session ID using UUID v7 for better
// uniqueness and time ordering
func generateSessionID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to timestamp if UUID generation fails
		return fmt.Sprintf(SessionIDPrefix+"%d", time.Now().UnixNano())
	}
	return SessionIDPrefix + id.String()
}
