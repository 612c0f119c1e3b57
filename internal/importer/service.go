package importer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gorm.io/gorm"

	"github.com/angelmondragon/vendas-backend/internal/sales"
	"github.com/angelmondragon/vendas-backend/internal/salesfile"
	pkgerrors "github.com/angelmondragon/vendas-backend/pkg/errors"
	"github.com/angelmondragon/vendas-backend/pkg/logger"
	"github.com/angelmondragon/vendas-backend/pkg/metrics"
)

// txRunner scopes a unit of work to one transaction.
type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// stateWriter stores the summary of the last committed run.
type stateWriter interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

// Summary describes a committed import.
type Summary struct {
	File      string        `json:"file"`
	Records   int           `json:"records"`
	Products  int           `json:"products"`
	Customers int           `json:"customers"`
	Duration  time.Duration `json:"duration_ns"`
	Finished  time.Time     `json:"finished_at"`
}

// ServiceParams configure the import service.
type ServiceParams struct {
	Logger   *logger.Logger
	DB       txRunner
	Applier  sales.Applier
	Lock     Lock
	Metrics  *metrics.ImportMetrics
	State    stateWriter
	StateKey string
}

// Service loads one sales file per run, all or nothing.
type Service struct {
	logg     *logger.Logger
	db       txRunner
	applier  sales.Applier
	lock     Lock
	metrics  *metrics.ImportMetrics
	state    stateWriter
	stateKey string
}

// NewService builds an import service.
func NewService(params ServiceParams) (*Service, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.DB == nil {
		return nil, fmt.Errorf("db client required")
	}
	if params.Applier == nil {
		return nil, fmt.Errorf("applier required")
	}
	lock := params.Lock
	if lock == nil {
		lock = NoopLock{}
	}
	return &Service{
		logg:     params.Logger,
		db:       params.DB,
		applier:  params.Applier,
		lock:     lock,
		metrics:  params.Metrics,
		state:    params.State,
		stateKey: params.StateKey,
	}, nil
}

// Run imports every non-blank line of path inside a single transaction. The
// first decode or storage error rolls the whole file back.
func (s *Service) Run(ctx context.Context, path string) (Summary, error) {
	ctx = s.logg.WithImportFile(ctx, path)
	ctx = s.logg.WithField(ctx, "event", "import.run")
	start := time.Now()

	summary, err := s.run(ctx, path)
	duration := time.Since(start)
	summary.Duration = duration

	ctx = s.logg.WithField(ctx, "duration_ms", duration.Milliseconds())
	if err != nil {
		s.logg.Error(s.logg.WithFields(ctx, pkgerrors.Dump(err).Fields()), "import failed", err)
		s.metrics.ObserveFailure(string(pkgerrors.CodeOf(err)), duration)
		return summary, err
	}

	summary.Finished = time.Now().UTC()
	s.metrics.ObserveSuccess(summary.Records, duration)
	s.saveState(ctx, summary)
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"records":   summary.Records,
		"products":  summary.Products,
		"customers": summary.Customers,
	}), "import committed")
	return summary, nil
}

func (s *Service) run(ctx context.Context, path string) (Summary, error) {
	summary := Summary{File: path}

	locked, err := s.lock.Acquire(ctx)
	if err != nil {
		return summary, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "acquire import lock")
	}
	if !locked {
		return summary, pkgerrors.New(pkgerrors.CodeConflict, "another import is running")
	}
	defer func() {
		if relErr := s.lock.Release(ctx); relErr != nil {
			s.logg.Error(ctx, "failed to release import lock", relErr)
		}
	}()

	lines, err := readLines(path)
	if err != nil {
		return summary, err
	}
	s.logg.Info(s.logg.WithField(ctx, "lines", len(lines)), "import starting")

	products := map[int64]struct{}{}
	customers := map[int64]struct{}{}
	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		for _, ln := range lines {
			rec, err := salesfile.Decode(ln.content)
			if err != nil {
				return decodeFailure(ln, err)
			}
			if err := s.applier.Apply(ctx, tx, rec); err != nil {
				return applyFailure(ln, err)
			}
			products[rec.ProductID] = struct{}{}
			customers[rec.CustomerID] = struct{}{}
		}
		return nil
	})
	if err != nil {
		return summary, err
	}

	summary.Records = len(lines)
	summary.Products = len(products)
	summary.Customers = len(customers)
	return summary, nil
}

func readLines(path string) ([]line, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "sales file not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "read sales file")
	}
	return splitLines(data), nil
}

// decodeFailure quotes the raw line so the operator sees what was rejected.
func decodeFailure(ln line, err error) error {
	return pkgerrors.Wrap(pkgerrors.CodeDecode, err, fmt.Sprintf("line %d: %q", ln.number, ln.content)).
		WithDetails(map[string]any{"line": ln.number, "content": ln.content})
}

// applyFailure adds the line position to a storage error while keeping its
// classification.
func applyFailure(ln line, err error) error {
	code := pkgerrors.CodeOf(err)
	return pkgerrors.Wrap(code, err, fmt.Sprintf("line %d", ln.number)).
		WithDetails(map[string]any{"line": ln.number})
}

func (s *Service) saveState(ctx context.Context, summary Summary) {
	if s.state == nil || s.stateKey == "" {
		return
	}
	payload, err := json.Marshal(summary)
	if err != nil {
		s.logg.Warn(ctx, "encode import summary failed")
		return
	}
	if err := s.state.Set(ctx, s.stateKey, payload, 0); err != nil {
		s.logg.Error(ctx, "store import summary failed", err)
	}
}
