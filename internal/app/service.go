// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"runtime"
	"sync"

	"github.com/google/uuid"

	eventqueue "github.com/okian/libero/internal/adapters/mq/queue"
	workerpool "github.com/okian/libero/internal/adapters/mq/worker"
	repository "github.com/okian/libero/internal/adapters/repository"
	"github.com/okian/libero/internal/domain/atmosphere"
	"github.com/okian/libero/internal/domain/dedupe"
	"github.com/okian/libero/internal/domain/insight"
	"github.com/okian/libero/internal/domain/match"
	"github.com/okian/libero/internal/domain/model"
	"github.com/okian/libero/internal/domain/rng"
	"github.com/okian/libero/internal/domain/session"
	"github.com/okian/libero/internal/domain/types"
	"github.com/okian/libero/pkg/logger"
	"github.com/okian/libero/pkg/metrics"
)

// ErrScoutExists reports a duplicate scout registration.
var ErrScoutExists = errors.New("scout already exists")

// ErrScoutNotFound reports a lookup for an unregistered scout.
var ErrScoutNotFound = errors.New("scout not found")

// accrualAdapter exposes the insight economy to the worker pool.
type accrualAdapter struct {
	svc *Service
}

func (a *accrualAdapter) Accrue(ctx context.Context, scoutID, source, tier string) (int, error) {
	scout, err := a.svc.Scout(ctx, scoutID)
	if err != nil {
		return 0, err
	}
	return a.svc.economy.CalculateAccumulation(insight.Source(source), insight.QualityTier(tier), scout), nil
}

// creditAdapter exposes the ledger store to the worker pool.
type creditAdapter struct {
	store repository.Store
}

func (c *creditAdapter) Credit(ctx context.Context, scoutID string, points int) (bool, error) {
	if _, err := c.store.Credit(ctx, scoutID, points); err != nil {
		return false, err
	}
	return true, nil
}

// Service implements the API dependencies for the scouting system.
type Service struct {
	mu sync.RWMutex

	// Core components
	ledger     repository.Store
	deduper    dedupe.Deduper
	eventQueue eventqueue.Queue
	economy    *insight.Economy
	workerPool *workerpool.Pool

	// Scout registry. Profiles arrive via RegisterScout and are read by
	// accrual, spends and catalog filtering.
	scouts map[string]model.ScoutProfile

	// Configuration
	workerCount     int
	queueSize       int
	dedupeSize      int
	shardCount      int
	defaultVenue    string
	capacityBase    int
	capacityPerInt  int
	fizzleThreshold int
	fizzleChance    float64

	// State
	started bool
	stopCh  chan struct{}

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of worker goroutines.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the observation queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets the size of the deduplication cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithShardCount sets the ledger store shard count.
func WithShardCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.shardCount = count
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithCapacityFormula sets the insight capacity formula parameters.
func WithCapacityFormula(base, perIntuition int) Option {
	return func(s *Service) {
		if base > 0 && perIntuition >= 0 {
			s.capacityBase = base
			s.capacityPerInt = perIntuition
		}
	}
}

// WithFizzleRule sets the fatigue threshold and fizzle chance.
func WithFizzleRule(threshold int, chance float64) Option {
	return func(s *Service) {
		if threshold > 0 && chance >= 0 && chance <= 1 {
			s.fizzleThreshold = threshold
			s.fizzleChance = chance
		}
	}
}

// WithDefaultVenue sets the venue used when generation requests omit one.
func WithDefaultVenue(venue string) Option {
	return func(s *Service) {
		if venue != "" {
			s.defaultVenue = venue
		}
	}
}

// Default service configuration.
const (
	defaultQueueSize       = 100000
	defaultDedupeSize      = 50000
	defaultShardCount      = 16
	defaultCapacityBase    = 40
	defaultCapacityPerInt  = 2
	defaultFizzleThreshold = 70
	defaultFizzleChance    = 0.20
)

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:     runtime.NumCPU() * 2,
		queueSize:       defaultQueueSize,
		dedupeSize:      defaultDedupeSize,
		shardCount:      defaultShardCount,
		defaultVenue:    atmosphere.VenueStadium,
		capacityBase:    defaultCapacityBase,
		capacityPerInt:  defaultCapacityPerInt,
		fizzleThreshold: defaultFizzleThreshold,
		fizzleChance:    defaultFizzleChance,
		scouts:          make(map[string]model.ScoutProfile),
		stopCh:          make(chan struct{}),
		logger:          nil, // Will be replaced when service starts
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	// Initialize logger if not already set
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting scouting service...")

	// Initialize components
	s.ledger = repository.NewLedgerStore(
		repository.WithShardCount(s.shardCount),
	)
	s.deduper = dedupe.NewInMemoryDeduper(
		dedupe.WithMaxSize(s.dedupeSize),
	)
	s.eventQueue = eventqueue.NewInMemoryQueue(
		eventqueue.WithCapacity(s.queueSize),
		eventqueue.WithBufferSize(s.queueSize),
	)
	s.economy = insight.NewEconomy(
		insight.WithCapacity(s.capacityBase, s.capacityPerInt),
		insight.WithFizzle(s.fizzleThreshold, s.fizzleChance),
	)

	// Create and start the accrual worker pool
	s.workerPool = workerpool.NewPool(
		s.workerCount,
		s.eventQueue,
		&accrualAdapter{svc: s},
		&creditAdapter{store: s.ledger},
	)
	s.workerPool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "scouting service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
		logger.Int("shards", s.shardCount),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping scouting service...")

	// Stop worker pool
	if s.workerPool != nil {
		s.workerPool.Stop()
	}

	// Close queue
	if q, ok := s.eventQueue.(*eventqueue.InMemoryQueue); ok {
		_ = q.Close()
	}

	// Signal cleanup loop to stop
	select {
	case <-s.stopCh:
		// Channel already closed
	default:
		close(s.stopCh)
	}

	s.started = false
	s.logger.Info(context.Background(), "scouting service stopped")
}

// SeenAndRecord atomically checks if an event id was seen and records it if not.
// Returns true if the event was already seen, false if it was newly recorded.
// This is the ONLY method for deduplication - thread-safe and atomic.
func (s *Service) SeenAndRecord(ctx context.Context, id string) bool {
	seen := s.deduper.SeenAndRecord(ctx, id)
	if seen {
		metrics.RecordObservationDuplicate()
	}
	return seen
}

// Unrecord removes an event ID from the seen list, allowing it to be retried.
func (s *Service) Unrecord(ctx context.Context, id string) {
	s.deduper.Unrecord(ctx, id)
}

// Size returns the current number of entries in the deduper.
func (s *Service) Size() int64 {
	if s.deduper == nil {
		return 0
	}
	return s.deduper.Size()
}

// Enqueue submits an observation event for asynchronous accrual.
func (s *Service) Enqueue(ctx context.Context, e model.ObservationEvent) bool {
	s.logger.Debug(ctx, "enqueueing observation",
		logger.EventID(e.EventID),
		logger.ScoutID(e.ScoutID),
		logger.String("source", e.Source),
		logger.String("tier", e.Tier),
	)

	success := s.eventQueue.Enqueue(ctx, e)
	if success {
		metrics.UpdateQueueSize(s.eventQueue.Len(ctx))
	}
	return success
}

// RegisterScout adds a scout profile and opens its insight ledger.
func (s *Service) RegisterScout(ctx context.Context, profile model.ScoutProfile) error {
	s.mu.Lock()
	if _, exists := s.scouts[profile.ID]; exists {
		s.mu.Unlock()
		return ErrScoutExists
	}
	s.scouts[profile.ID] = profile
	s.mu.Unlock()

	if err := s.ledger.Create(ctx, profile.ID, s.economy.NewState(profile)); err != nil {
		// Roll the registry back so a retry can succeed.
		s.mu.Lock()
		delete(s.scouts, profile.ID)
		s.mu.Unlock()
		if errors.Is(err, repository.ErrAlreadyExists) {
			return ErrScoutExists
		}
		return err
	}

	s.logger.Info(ctx, "scout registered",
		logger.ScoutID(profile.ID),
		logger.String("specialization", string(profile.Specialization)),
		logger.Int("intuition", profile.Intuition),
	)
	return nil
}

// Scout returns a registered scout profile.
func (s *Service) Scout(_ context.Context, id string) (model.ScoutProfile, error) {
	s.mu.RLock()
	profile, ok := s.scouts[id]
	s.mu.RUnlock()
	if !ok {
		return model.ScoutProfile{}, ErrScoutNotFound
	}
	return profile, nil
}

// Ledger returns the insight ledger view for a scout.
func (s *Service) Ledger(ctx context.Context, scoutID string) (types.LedgerEntry, error) {
	st, err := s.ledger.Get(ctx, scoutID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return types.LedgerEntry{}, ErrScoutNotFound
		}
		return types.LedgerEntry{}, err
	}
	return types.LedgerEntry{
		ScoutID:  scoutID,
		State:    st,
		Ready:    st.Ready(),
		Capacity: st.Capacity,
	}, nil
}

// SpendInsight validates and executes an insight action spend. The
// validate-deduct-execute sequence runs under the ledger's shard lock so
// concurrent credits can never race a spend.
func (s *Service) SpendInsight(ctx context.Context, scoutID string, req types.SpendRequest) (types.SpendOutcome, error) {
	scout, err := s.Scout(ctx, scoutID)
	if err != nil {
		return types.SpendOutcome{}, err
	}

	src := rng.NewSeeded(req.Seed)
	actx := insight.ActionContext{
		Scout:          scout,
		Mode:           req.Mode,
		Session:        req.Session,
		TargetPlayerID: req.TargetPlayerID,
		Players:        playerIndex(req.Players),
		Contacts:       req.Contacts,
		Pool:           req.Pool,
	}

	var out types.SpendOutcome
	state, err := s.ledger.Apply(ctx, scoutID, func(st insight.State) (insight.State, error) {
		_, deny := s.economy.CanUse(st, scout, req.ActionID, req.Mode)
		if deny == insight.DenyUnknownAction {
			return st, insight.ErrUnknownAction
		}
		if deny != insight.DenyNone {
			out.Deny = deny
			return st, insight.ErrNotValidated
		}

		next, a, fizzled, err := s.economy.Spend(st, scout, req.ActionID, req.Mode, req.Week, src)
		if err != nil {
			return st, err
		}
		res, err := s.economy.Execute(a, actx, fizzled, src)
		if err != nil {
			// Execution refused (e.g. missing target): no deduction.
			return st, err
		}

		out.Result = res
		metrics.RecordInsightSpent(st.Points - next.Points)
		if fizzled {
			metrics.RecordInsightFizzle()
		}
		return next, nil
	})
	out.State = state
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return out, ErrScoutNotFound
		}
		return out, err
	}

	s.logger.Info(ctx, "insight spent",
		logger.ScoutID(scoutID),
		logger.ActionID(req.ActionID),
		logger.Int("points_left", out.State.Points),
	)
	return out, nil
}

// WeekTick advances every ledger's cooldown by one week.
func (s *Service) WeekTick(ctx context.Context) (int, error) {
	ticked := s.ledger.Tick(ctx)
	s.logger.Info(ctx, "week ticked", logger.Int("ledgers", ticked))
	return ticked, nil
}

// GenerateSession generates a populated free-form observation session.
func (s *Service) GenerateSession(ctx context.Context, req types.SessionRequest) (session.Session, error) {
	id := req.SessionID
	if id == "" {
		id = uuid.NewString()
	}
	venue := req.Venue
	if venue == "" {
		venue = s.defaultVenue
	}

	sess := session.New(id, venue, model.ModeVenue, req.Seed, req.Players)
	populated := session.Populate(sess, rng.NewSeeded(req.Seed))
	metrics.RecordSessionSimulated()

	s.logger.Info(ctx, "session generated",
		logger.SessionID(id),
		logger.String("venue", venue),
		logger.Int("phases", len(populated.Phases)),
	)
	return populated, nil
}

// SimulateMatch simulates a live match observation session.
func (s *Service) SimulateMatch(ctx context.Context, req types.MatchRequest) (types.MatchOutcome, error) {
	id := req.SessionID
	if id == "" {
		id = uuid.NewString()
	}
	venue := req.Venue
	if venue == "" {
		venue = s.defaultVenue
	}

	focused := make(map[string]bool, len(req.Focused))
	for _, pid := range req.Focused {
		focused[pid] = true
	}
	roster := make([]session.Player, 0, len(req.Home.Players)+len(req.Away.Players))
	for _, p := range req.Home.Players {
		roster = append(roster, session.Player{PlayerID: p.ID, Focused: focused[p.ID]})
	}
	for _, p := range req.Away.Players {
		roster = append(roster, session.Player{PlayerID: p.ID, Focused: focused[p.ID]})
	}

	sess := session.New(id, venue, model.ModeMatch, req.Seed, roster)
	populated, result := match.Simulate(sess, req.Home, req.Away, rng.NewSeeded(req.Seed))
	metrics.RecordMatchSimulated()

	s.logger.Info(ctx, "match simulated",
		logger.SessionID(id),
		logger.Int("home_goals", result.HomeGoals),
		logger.Int("away_goals", result.AwayGoals),
	)
	return types.MatchOutcome{Session: populated, Result: result}, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
		"dedupeSize":  s.dedupeSize,
	}

	if s.started {
		queueLen := s.eventQueue.Len(ctx)
		totalScouts := s.ledger.Count(ctx)

		stats["queueLength"] = queueLen
		stats["totalScouts"] = totalScouts

		// Update metrics
		metrics.UpdateQueueSize(queueLen)
		metrics.UpdateTotalScouts(totalScouts)
		metrics.UpdateWorkerCount(s.workerCount)
	}

	return stats
}

// playerIndex maps player records by id for action execution.
func playerIndex(players []model.PlayerRecord) map[string]model.PlayerRecord {
	if len(players) == 0 {
		return nil
	}
	idx := make(map[string]model.PlayerRecord, len(players))
	for _, p := range players {
		idx[p.ID] = p
	}
	return idx
}
