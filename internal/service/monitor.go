package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"invoicing-roi-api/internal/model"
	"invoicing-roi-api/internal/repository"
)

// timestampLayout matches the millisecond ISO-8601 form clients already parse.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Pinger is implemented by stores that can report connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ConnectionMonitor tracks whether the database is reachable. Check runs on
// a schedule and Observe is fed by every store call, so the status endpoints
// reflect the most recent database round trip.
type ConnectionMonitor struct {
	pinger  Pinger          // Database ping
	info    repository.Info // Reported driver, host and name
	timeout time.Duration   // Ping timeout
	logger  *logrus.Logger  // Logger

	mu        sync.RWMutex
	state     int       // One of the model.ReadyState values
	lastErr   error     // Error of the last failed round trip
	lastCheck time.Time // Time of the last round trip
}

func NewConnectionMonitor(pinger Pinger, info repository.Info, timeout time.Duration, logger *logrus.Logger) *ConnectionMonitor {
	return &ConnectionMonitor{
		pinger:  pinger,
		info:    info,
		timeout: timeout,
		logger:  logger,
		state:   model.ReadyStateConnecting,
	}
}

// Check pings the database and records the outcome. State changes are logged.
func (m *ConnectionMonitor) Check(ctx context.Context) error {
	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	err := m.pinger.Ping(ctx)
	m.record(err)
	return err
}

// Observe updates the state from the outcome of a store call. Missing
// records count as a successful round trip; errors that do not point at
// the connection leave the state unchanged.
func (m *ConnectionMonitor) Observe(err error) {
	switch {
	case err == nil, errors.Is(err, repository.ErrNotFound):
		m.record(nil)
	case errors.Is(err, repository.ErrUnavailable):
		m.record(err)
	}
}

// record stores the outcome of a round trip and logs state changes.
func (m *ConnectionMonitor) record(err error) {
	m.mu.Lock()
	previous := m.state
	m.lastCheck = time.Now()
	m.lastErr = err
	if err != nil {
		m.state = model.ReadyStateDisconnected
	} else {
		m.state = model.ReadyStateConnected
	}
	current := m.state
	m.mu.Unlock()

	fields := logrus.Fields{
		"driver": m.info.Driver,
		"host":   m.info.Host,
		"name":   m.info.Name,
	}
	switch {
	case err != nil && previous != model.ReadyStateDisconnected:
		m.logger.WithFields(fields).WithError(err).Error("Database disconnected")
	case err == nil && previous != current:
		m.logger.WithFields(fields).Info("Connected to database")
	case err != nil:
		m.logger.WithFields(fields).WithError(err).Debug("Database still unreachable")
	}
}

// Status returns the last known connection state.
func (m *ConnectionMonitor) Status() model.DBStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()

	status := model.DBStatus{
		Connected:  m.state == model.ReadyStateConnected,
		ReadyState: m.state,
		Host:       m.info.Host,
		Name:       m.info.Name,
		Driver:     m.info.Driver,
	}
	if m.lastErr != nil {
		status.LastError = m.lastErr.Error()
	}
	return status
}

// Health returns the body of the health endpoint at time now.
func (m *ConnectionMonitor) Health(now time.Time) model.HealthStatus {
	database := "Disconnected"
	if m.Status().Connected {
		database = "Connected"
	}
	return model.HealthStatus{
		Message:   "Server is running!",
		Database:  database,
		Timestamp: now.UTC().Format(timestampLayout),
	}
}
