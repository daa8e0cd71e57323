// Package service provides the core session manager that implements the
// dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/ninebox/internal/adapters/repository"
	"github.com/okian/ninebox/internal/domain/insight"
	"github.com/okian/ninebox/internal/domain/model"
	"github.com/okian/ninebox/internal/domain/stats"
	"github.com/okian/ninebox/internal/domain/tracking"
	"github.com/okian/ninebox/internal/domain/types"
	"github.com/okian/ninebox/pkg/logger"
	"github.com/okian/ninebox/pkg/metrics"
)

// Default service configuration constants.
const (
	defaultMaxRosterSize = 5000
)

// Service is the orchestration entry point for calibration sessions. It owns
// the session registry; each session owns its own lock, so sessions never
// contend with each other.
type Service struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	statistics   *stats.Engine
	intelligence *insight.Engine

	// Configuration
	maxRosterSize int
	maxNoteLength int
	insightOpts   []insight.Option

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMaxRosterSize caps the number of people a session may hold.
func WithMaxRosterSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxRosterSize = n
		}
	}
}

// WithMaxNoteLength caps free-text note length on the roster store.
func WithMaxNoteLength(n int) Option {
	return func(s *Service) {
		s.maxNoteLength = n
	}
}

// WithMinSampleSize tunes the smallest subgroup the intelligence engine will
// test.
func WithMinSampleSize(n int) Option {
	return func(s *Service) {
		s.insightOpts = append(s.insightOpts, insight.WithMinSampleSize(n))
	}
}

// WithSignificanceLevels tunes the moderate/severe p-value cutoffs.
func WithSignificanceLevels(moderate, severe float64) Option {
	return func(s *Service) {
		s.insightOpts = append(s.insightOpts, insight.WithSignificanceLevels(moderate, severe))
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		sessions:      make(map[string]*Session),
		maxRosterSize: defaultMaxRosterSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("session")
	}

	s.statistics = stats.NewEngine()
	s.intelligence = insight.NewEngine(s.statistics, s.insightOpts...)
	return s
}

// Begin creates a session from an imported roster and returns its id. The
// roster store stamps every person's original position at this moment.
func (s *Service) Begin(ctx context.Context, people []*model.Person, source string) (string, error) {
	if len(people) == 0 {
		return "", ErrEmptyRoster
	}
	if len(people) > s.maxRosterSize {
		return "", fmt.Errorf("%w: %d people, maximum %d", ErrRosterTooLarge, len(people), s.maxRosterSize)
	}

	var storeOpts []repository.Option
	if s.maxNoteLength != 0 {
		storeOpts = append(storeOpts, repository.WithMaxNoteLength(s.maxNoteLength))
	}
	store := repository.NewRosterStore(storeOpts...)
	if err := store.Load(ctx, people); err != nil {
		return "", err
	}

	sess := &Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
		Source:    source,
		roster:    store,
		changes:   tracking.NewLedger(),
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	active := len(s.sessions)
	s.mu.Unlock()

	metrics.RecordSessionStarted()
	metrics.UpdateActiveSessions(active)
	s.logger.Info(ctx, "session started",
		logger.String("session", sess.ID),
		logger.String("source", source),
		logger.Int("roster", len(people)),
	)
	return sess.ID, nil
}

// Close removes a session from the registry.
func (s *Service) Close(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	if ok {
		delete(s.sessions, sessionID)
	}
	active := len(s.sessions)
	s.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %q", ErrSessionNotFound, sessionID)
	}

	metrics.RecordSessionClosed()
	metrics.UpdateActiveSessions(active)
	s.logger.Info(ctx, "session closed",
		logger.String("session", sess.ID),
		logger.String("source", sess.Source),
	)
	return nil
}

func (s *Service) session(sessionID string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSessionNotFound, sessionID)
	}
	return sess, nil
}

// Move places a person in a target cell under the session write lock: the
// roster mutation and the ledger reconciliation happen as one unit, so the
// one-record-per-person invariant holds at every observable point. The
// returned change view is nil when the move lands back on the original cell.
func (s *Service) Move(ctx context.Context, sessionID, personID string, pos int) (types.PersonView, *types.ChangeView, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return types.PersonView{}, nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	p, err := sess.roster.SetPosition(ctx, personID, pos)
	if err != nil {
		return types.PersonView{}, nil, err
	}
	rec := sess.changes.RecordMove(ctx, personID, p.OriginalPosition, pos)

	metrics.RecordMove()
	if rec == nil {
		metrics.RecordRevert()
		s.logger.Debug(ctx, "move reverted to original",
			logger.String("session", sessionID),
			logger.String("person", personID),
			logger.Int("position", pos),
		)
		return personView(p, false), nil, nil
	}

	cv := changeView(rec, p)
	return personView(p, true), &cv, nil
}

// SetNotes stores free text on a person. It never touches the change ledger:
// notes alone do not make a person "modified".
func (s *Service) SetNotes(ctx context.Context, sessionID, personID, text string) error {
	sess, err := s.session(sessionID)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := sess.roster.SetNotes(ctx, personID, text); err != nil {
		return err
	}
	metrics.RecordNoteUpdate()
	return nil
}

// Person returns the current view of one roster member.
func (s *Service) Person(ctx context.Context, sessionID, personID string) (types.PersonView, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return types.PersonView{}, err
	}

	sess.mu.RLock()
	defer sess.mu.RUnlock()

	p, err := sess.roster.Get(ctx, personID)
	if err != nil {
		return types.PersonView{}, err
	}
	return personView(p, sess.changes.Has(ctx, personID)), nil
}

// People returns the whole roster in import order.
func (s *Service) People(ctx context.Context, sessionID string) ([]types.PersonView, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	snap := sess.snapshot(ctx)
	out := make([]types.PersonView, len(snap.people))
	for i, p := range snap.people {
		out[i] = personView(p, snap.modified[p.ID])
	}
	return out, nil
}

// Statistics computes the nine-cell distribution plus per-dimension
// breakdowns over a consistent snapshot. An optional dimension=value filter
// narrows the population first; an unknown dimension is a validation error.
func (s *Service) Statistics(ctx context.Context, sessionID, dimension, value string) (types.StatisticsView, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return types.StatisticsView{}, err
	}

	snap := sess.snapshot(ctx)
	people := snap.people
	if dimension != "" {
		people, err = s.filter(ctx, people, dimension, value)
		if err != nil {
			return types.StatisticsView{}, err
		}
	}

	view := types.StatisticsView{
		Distribution: s.statistics.Distribution(ctx, people),
		Dimensions:   make(map[string][]types.GroupCells),
	}
	for _, dim := range s.statistics.Dimensions(ctx, people) {
		groups, err := s.statistics.GroupBy(ctx, people, dim)
		if err != nil {
			return types.StatisticsView{}, err
		}
		view.Dimensions[dim] = groups
	}
	return view, nil
}

func (s *Service) filter(ctx context.Context, people []*model.Person, dimension, value string) ([]*model.Person, error) {
	known := false
	for _, d := range s.statistics.Dimensions(ctx, people) {
		if d == dimension {
			known = true
			break
		}
	}
	if !known {
		return nil, fmt.Errorf("%w: unknown dimension %q", repository.ErrValidation, dimension)
	}

	out := make([]*model.Person, 0, len(people))
	for _, p := range people {
		if stats.DimensionValue(p, dimension) == value {
			out = append(out, p)
		}
	}
	return out, nil
}

// Changes returns the change list in first-became-modified order, each entry
// joined with the person's current notes.
func (s *Service) Changes(ctx context.Context, sessionID string) ([]types.ChangeView, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	snap := sess.snapshot(ctx)
	byID := make(map[string]*model.Person, len(snap.people))
	for _, p := range snap.people {
		byID[p.ID] = p
	}

	out := make([]types.ChangeView, 0, len(snap.records))
	for _, rec := range snap.records {
		out = append(out, changeView(rec, byID[rec.PersonID]))
	}
	return out, nil
}

// Analyze runs the full anomaly detection over a consistent snapshot.
func (s *Service) Analyze(ctx context.Context, sessionID string) ([]types.Insight, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	snap := sess.snapshot(ctx)
	start := time.Now()
	insights, err := s.intelligence.Analyze(ctx, snap.people)
	if err != nil {
		return nil, err
	}

	metrics.RecordAnalysis(float64(time.Since(start).Milliseconds()))
	for _, ins := range insights {
		metrics.RecordInsight(ins.Severity)
	}
	s.logger.Info(ctx, "analysis complete",
		logger.String("session", sessionID),
		logger.Int("insights", len(insights)),
	)
	return insights, nil
}

// Export assembles the tabular roster for the export adapter: all original
// columns plus current position, the modified flag, and change notes only
// for people currently carrying a change record. The snapshot is taken under
// the same lock as moves, so an in-flight move is never half-reflected.
func (s *Service) Export(ctx context.Context, sessionID string) ([]types.ExportRecord, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	snap := sess.snapshot(ctx)
	out := make([]types.ExportRecord, len(snap.people))
	for i, p := range snap.people {
		rec := types.ExportRecord{
			ID:               p.ID,
			Name:             p.Name,
			Department:       p.Department,
			Location:         p.Location,
			JobLevel:         p.JobLevel,
			Manager:          p.Manager,
			Attrs:            p.Attrs,
			Performance:      string(p.Performance),
			Potential:        string(p.Potential),
			Position:         p.Position,
			OriginalPosition: p.OriginalPosition,
			Modified:         snap.modified[p.ID],
		}
		if rec.Modified {
			rec.ChangeNotes = p.Notes
		}
		out[i] = rec
	}

	metrics.RecordExport()
	return out, nil
}

// Session returns metadata about one session.
func (s *Service) SessionInfo(ctx context.Context, sessionID string) (id, source string, created time.Time, size int, err error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return "", "", time.Time{}, 0, err
	}
	sess.mu.RLock()
	defer sess.mu.RUnlock()
	return sess.ID, sess.Source, sess.CreatedAt, sess.roster.Count(ctx), nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	people := 0
	changes := 0
	for _, sess := range s.sessions {
		sess.mu.RLock()
		people += sess.roster.Count(ctx)
		changes += sess.changes.Len(ctx)
		sess.mu.RUnlock()
	}

	out := map[string]interface{}{
		"sessions":      len(s.sessions),
		"people":        people,
		"changes":       changes,
		"maxRosterSize": s.maxRosterSize,
	}
	metrics.UpdateActiveSessions(len(s.sessions))
	return out
}
