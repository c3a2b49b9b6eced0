package grid

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/in-nis/academy-grid/internal/metrics"
	"github.com/in-nis/academy-grid/internal/models"
)

// Store is the backing store of all grid tables.
type Store interface {
	// ListTimes returns the labels of registered rows and of existing cells, unsorted.
	ListTimes(ctx context.Context, scope Scope) ([]string, error)
	AddTime(ctx context.Context, scope Scope, label string) error
	RemoveTime(ctx context.Context, scope Scope, label string, cascade bool) error
	ListCells(ctx context.Context, scope Scope) ([]models.Cell, error)
	// FindCell returns nil without error when no cell exists at key.
	FindCell(ctx context.Context, scope Scope, key Key) (*models.Cell, error)
	InsertCell(ctx context.Context, scope Scope, cell *models.Cell) error
	UpdateCell(ctx context.Context, scope Scope, id, content, actorID string) error
	// DeleteCells removes every cell at key and reports how many went away.
	DeleteCells(ctx context.Context, scope Scope, key Key) (int64, error)
}

// Cache holds materialized grids between writes. Every Invalidate bumps the
// scope generation; Set stores g only while the generation still equals gen,
// so a grid read before a write never lands after that write's invalidation.
type Cache interface {
	Get(ctx context.Context, scope Scope) (Grid, bool, error)
	Generation(ctx context.Context, scope Scope) (int64, error)
	Set(ctx context.Context, scope Scope, g Grid, gen int64) (bool, error)
	Invalidate(ctx context.Context, scope Scope) error
}

// RemovalPolicy decides what happens to cells when their time row is removed.
type RemovalPolicy string

const (
	// RemoveCascade deletes the row's cells together with the row.
	RemoveCascade RemovalPolicy = "cascade"
	// RemoveRetain deletes only the registration. The label stays listed
	// for as long as cells reference it.
	RemoveRetain RemovalPolicy = "retain"
)

func ParseRemovalPolicy(s string) (RemovalPolicy, error) {
	switch p := RemovalPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "", RemoveCascade:
		return RemoveCascade, nil
	case RemoveRetain:
		return p, nil
	default:
		return "", fmt.Errorf("unknown row removal policy %q", s)
	}
}

// Outcome reports what an upsert did.
type Outcome string

const (
	OutcomeInserted  Outcome = "inserted"
	OutcomeUpdated   Outcome = "updated"
	OutcomeDeleted   Outcome = "deleted"
	OutcomeUnchanged Outcome = "unchanged"
)

// Service runs the grid operations for every scope against one Store.
type Service struct {
	store  Store
	cache  Cache
	policy RemovalPolicy
	logger *slog.Logger
}

type Option func(*Service)

func WithCache(c Cache) Option {
	return func(s *Service) { s.cache = c }
}

func WithRemovalPolicy(p RemovalPolicy) Option {
	return func(s *Service) { s.policy = p }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store:  store,
		policy: RemoveCascade,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) RemovalPolicy() RemovalPolicy {
	return s.policy
}

// ListTimes returns the distinct time labels of a scope in display order.
func (s *Service) ListTimes(ctx context.Context, scope Scope) ([]string, error) {
	if err := validateScope(scope); err != nil {
		return nil, err
	}
	labels, err := s.store.ListTimes(ctx, scope)
	if err != nil {
		return nil, s.fail(scope, ErrOperationFailed, "list times", err)
	}
	return SortLabels(labels), nil
}

// RegisterTime adds an empty row to the grid. Registering an existing label is a no-op.
func (s *Service) RegisterTime(ctx context.Context, scope Scope, label string) error {
	if err := validateScope(scope); err != nil {
		return err
	}
	label, err := NormalizeLabel(label)
	if err != nil {
		return err
	}
	if err := s.store.AddTime(ctx, scope, label); err != nil {
		return s.fail(scope, ErrOperationFailed, "register time", err)
	}
	s.invalidate(ctx, scope)
	s.logger.Info("time row registered", "scope", scope.String(), "time", label)
	return nil
}

// RemoveTime removes a row. Whether its cells go too depends on the removal policy.
func (s *Service) RemoveTime(ctx context.Context, scope Scope, label string) error {
	if err := validateScope(scope); err != nil {
		return err
	}
	label, err := NormalizeLabel(label)
	if err != nil {
		return err
	}
	cascade := s.policy == RemoveCascade
	if err := s.store.RemoveTime(ctx, scope, label, cascade); err != nil {
		return s.fail(scope, ErrOperationFailed, "remove time", err)
	}
	s.invalidate(ctx, scope)
	s.logger.Info("time row removed", "scope", scope.String(), "time", label, "cascade", cascade)
	return nil
}

// ListCells returns the raw cells of a scope, duplicates included.
func (s *Service) ListCells(ctx context.Context, scope Scope) ([]models.Cell, error) {
	if err := validateScope(scope); err != nil {
		return nil, err
	}
	cells, err := s.store.ListCells(ctx, scope)
	if err != nil {
		return nil, s.fail(scope, ErrOperationFailed, "list cells", err)
	}
	return cells, nil
}

// Upsert writes one cell. Blank content deletes whatever is stored at key.
//
// The existence check and the write are two separate store calls. Two
// concurrent first writes to the same key can both insert; Materialize merges
// such duplicates on read.
func (s *Service) Upsert(ctx context.Context, scope Scope, key Key, content, actorID string) (Outcome, error) {
	key, err := validateKey(scope, key)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(actorID) == "" {
		return "", fmt.Errorf("%w: actor id is required", ErrValidation)
	}

	if strings.TrimSpace(content) == "" {
		n, err := s.store.DeleteCells(ctx, scope, key)
		if err != nil {
			return "", s.fail(scope, ErrOperationFailed, "delete cell", err)
		}
		if n == 0 {
			return s.done(scope, OutcomeUnchanged), nil
		}
		s.invalidate(ctx, scope)
		return s.done(scope, OutcomeDeleted), nil
	}

	existing, err := s.store.FindCell(ctx, scope, key)
	if err != nil {
		return "", s.fail(scope, ErrCheckFailed, "find cell", err)
	}

	if existing == nil {
		cell := &models.Cell{
			AcademyID: scope.AcademyID,
			Time:      key.Time,
			Day:       key.Day,
			Category:  key.Category,
			Content:   content,
			CreatedBy: actorID,
		}
		if err := s.store.InsertCell(ctx, scope, cell); err != nil {
			return "", s.fail(scope, ErrOperationFailed, "insert cell", err)
		}
		s.invalidate(ctx, scope)
		return s.done(scope, OutcomeInserted), nil
	}

	if err := s.store.UpdateCell(ctx, scope, existing.ID, content, actorID); err != nil {
		return "", s.fail(scope, ErrOperationFailed, "update cell", err)
	}
	s.invalidate(ctx, scope)
	return s.done(scope, OutcomeUpdated), nil
}

// Grid materializes the current state of a scope, through the cache when one is set.
func (s *Service) Grid(ctx context.Context, scope Scope) (Grid, error) {
	if err := validateScope(scope); err != nil {
		return Grid{}, err
	}

	gen, cacheable := s.cachedGeneration(ctx, scope)
	if cacheable {
		g, ok, err := s.cache.Get(ctx, scope)
		switch {
		case err != nil:
			metrics.CacheLookups.WithLabelValues("error").Inc()
			s.logger.Warn("grid cache read failed", "scope", scope.String(), "error", err)
		case ok:
			metrics.CacheLookups.WithLabelValues("hit").Inc()
			return g, nil
		default:
			metrics.CacheLookups.WithLabelValues("miss").Inc()
		}
	}

	labels, err := s.ListTimes(ctx, scope)
	if err != nil {
		return Grid{}, err
	}
	cells, err := s.ListCells(ctx, scope)
	if err != nil {
		return Grid{}, err
	}

	g := Materialize(scope.Shape, labels, cells)
	g.AcademyID = scope.AcademyID

	if cacheable {
		stored, err := s.cache.Set(ctx, scope, g, gen)
		switch {
		case err != nil:
			s.logger.Warn("grid cache write failed", "scope", scope.String(), "error", err)
		case !stored:
			metrics.CacheLookups.WithLabelValues("stale").Inc()
			s.logger.Debug("grid changed during read, not cached", "scope", scope.String())
		}
	}
	return g, nil
}

// cachedGeneration reads the scope generation before the store is touched.
// Without a readable generation the grid is served uncached.
func (s *Service) cachedGeneration(ctx context.Context, scope Scope) (int64, bool) {
	if s.cache == nil {
		return 0, false
	}
	gen, err := s.cache.Generation(ctx, scope)
	if err != nil {
		metrics.CacheLookups.WithLabelValues("error").Inc()
		s.logger.Warn("grid cache generation read failed", "scope", scope.String(), "error", err)
		return 0, false
	}
	return gen, true
}

func (s *Service) invalidate(ctx context.Context, scope Scope) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, scope); err != nil {
		s.logger.Warn("grid cache invalidation failed", "scope", scope.String(), "error", err)
	}
}

func (s *Service) done(scope Scope, o Outcome) Outcome {
	metrics.CellUpserts.WithLabelValues(scope.Shape.Name, string(o)).Inc()
	return o
}

func (s *Service) fail(scope Scope, kind error, op string, err error) error {
	label := "operation"
	if kind == ErrCheckFailed {
		label = "check"
	}
	metrics.OperationFailures.WithLabelValues(scope.Shape.Name, label).Inc()
	s.logger.Error("grid "+op+" failed", "scope", scope.String(), "error", err)
	return fmt.Errorf("%w: %s: %w", kind, op, err)
}
