package usecase

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"orders_etl/internal/domain/entities"
	"orders_etl/internal/domain/flatten"
	"orders_etl/internal/usecase/interfaces"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultProcessedPrefix = "processed/store_sales"

	runIDTimeLayout = "20060102T150405"
)

var (
	ErrInvalidInputLocation = errors.New("invalid input location")
	ErrInvalidRunID         = errors.New("invalid run id")
	ErrRunNotFound          = errors.New("run not found")
	ErrRunAuditDisabled     = errors.New("run audit is not configured")
)

// IFlattenOrdersUseCase exposes the order flattening job.
//
//   - Run: read one JSON array of orders, write fact_orders and
//     fact_order_items as partitioned Parquet, report row counts.
//   - GetRun: look up the audit entry of a previous Run.
//
//go:generate mockgen -source=flatten_orders_usecase.go -destination=../adapter/http/handlers/mocks/mock_flatten_orders_usecase.go -package=mocks

type IFlattenOrdersUseCase interface {
	Run(ctx context.Context, inv entities.Invocation) (entities.FlattenResult, error)
	GetRun(ctx context.Context, runID string) (entities.Run, error)
}

type FlattenOrdersUseCase struct {
	storage      interfaces.IObjectStorage
	encoder      interfaces.IColumnarEncoder
	runs         interfaces.IRunRepository
	prefix       string
	outputBucket string
	logger       *zap.Logger
	now          func() time.Time
}

var _ IFlattenOrdersUseCase = (*FlattenOrdersUseCase)(nil)

type FlattenOrdersOption func(*FlattenOrdersUseCase)

// WithProcessedPrefix sets the key prefix of both datasets. Surrounding
// slashes are ignored.
func WithProcessedPrefix(prefix string) FlattenOrdersOption {
	return func(u *FlattenOrdersUseCase) {
		u.prefix = strings.Trim(prefix, "/")
	}
}

// WithOutputBucket writes results to bucket instead of the input bucket.
func WithOutputBucket(bucket string) FlattenOrdersOption {
	return func(u *FlattenOrdersUseCase) {
		u.outputBucket = strings.TrimSpace(bucket)
	}
}

// WithRunRepository enables the audit trail.
func WithRunRepository(repo interfaces.IRunRepository) FlattenOrdersOption {
	return func(u *FlattenOrdersUseCase) {
		u.runs = repo
	}
}

func WithLogger(logger *zap.Logger) FlattenOrdersOption {
	return func(u *FlattenOrdersUseCase) {
		u.logger = logger
	}
}

func WithClock(now func() time.Time) FlattenOrdersOption {
	return func(u *FlattenOrdersUseCase) {
		u.now = now
	}
}

func NewFlattenOrdersUseCase(storage interfaces.IObjectStorage, encoder interfaces.IColumnarEncoder, opts ...FlattenOrdersOption) *FlattenOrdersUseCase {
	u := &FlattenOrdersUseCase{
		storage: storage,
		encoder: encoder,
		prefix:  DefaultProcessedPrefix,
		logger:  zap.NewNop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func (u *FlattenOrdersUseCase) Run(ctx context.Context, inv entities.Invocation) (entities.FlattenResult, error) {
	inv.Bucket = strings.TrimSpace(inv.Bucket)
	if inv.Bucket == "" || strings.TrimSpace(inv.Key) == "" {
		return entities.FlattenResult{}, ErrInvalidInputLocation
	}
	if !entities.IsValidInvocationID(inv.RequestID) {
		if inv.RequestID != "" {
			u.logger.Warn("invocation id replaced", zap.String("request_id", inv.RequestID))
		}
		inv.RequestID = uuid.NewString()
	}

	outBucket := u.outputBucket
	if outBucket == "" {
		outBucket = inv.Bucket
	}
	runID := u.now().UTC().Format(runIDTimeLayout) + "-" + inv.RequestID
	log := u.logger.With(
		zap.String("run_id", runID),
		zap.String("input", inv.URI()),
	)
	log.Info("flatten orders started", zap.String("output_bucket", outBucket))

	raw, err := u.storage.Get(ctx, inv.Bucket, inv.Key)
	if err != nil {
		log.Error("read input failed", zap.Error(err))
		return entities.FlattenResult{}, fmt.Errorf("read %s: %w", inv.URI(), err)
	}

	orders, err := flatten.DecodeOrders(raw)
	if err != nil {
		log.Error("decode input failed", zap.Error(err))
		return entities.FlattenResult{}, fmt.Errorf("%s: %w", inv.URI(), err)
	}
	if len(orders) == 0 {
		log.Info("no orders found")
		res := entities.FlattenResult{
			Status:  entities.ResultStatusOK,
			Message: entities.MessageNoOrders,
			Input:   inv.URI(),
			RunID:   runID,
		}
		u.audit(ctx, log, entities.Run{
			ID:           runID,
			RequestID:    inv.RequestID,
			Input:        inv.URI(),
			OutputBucket: outBucket,
			Status:       entities.RunStatusNoop,
		})
		return res, nil
	}

	flat, err := flatten.Flatten(orders)
	if err != nil {
		log.Error("flatten failed", zap.Error(err))
		return entities.FlattenResult{}, fmt.Errorf("%s: %w", inv.URI(), err)
	}
	if flat.Dropped > 0 {
		log.Warn("orders dropped for unparseable order_timestamp", zap.Int("dropped", flat.Dropped))
	}

	partitions := flatten.PartitionKeys(flat.FactOrders)
	datasets := []struct {
		name  string
		table entities.Table
	}{
		{entities.DatasetFactOrders, flat.FactOrders},
		{entities.DatasetFactOrderItems, flat.FactOrderItems},
	}

	var files []string
	partitionPaths := make([]string, 0, len(partitions))
	for _, p := range partitions {
		partitionPaths = append(partitionPaths, p.Path())
		for _, ds := range datasets {
			slice := flatten.SlicePartition(ds.table, p)
			if slice.Len() == 0 {
				continue
			}
			key := u.objectKey(ds.name, p, runID)
			if err := u.write(ctx, outBucket, key, slice); err != nil {
				log.Error("write partition failed",
					zap.String("dataset", ds.name),
					zap.String("partition", p.Path()),
					zap.Error(err),
				)
				return entities.FlattenResult{}, err
			}
			files = append(files, s3URI(outBucket, key))
			log.Debug("partition written",
				zap.String("dataset", ds.name),
				zap.String("key", key),
				zap.Int("rows", slice.Len()),
			)
		}
	}

	rows := entities.RowCounts{
		FactOrders:     flat.FactOrders.Len(),
		FactOrderItems: flat.FactOrderItems.Len(),
	}
	res := entities.FlattenResult{
		Status:       entities.ResultStatusOK,
		Input:        inv.URI(),
		OutputBucket: outBucket,
		Outputs: &entities.OutputPrefixes{
			FactOrders:     s3URI(outBucket, u.datasetPrefix(entities.DatasetFactOrders)),
			FactOrderItems: s3URI(outBucket, u.datasetPrefix(entities.DatasetFactOrderItems)),
		},
		Rows:  rows,
		RunID: runID,
		Files: files,
	}
	log.Info("flatten orders finished",
		zap.Int("fact_orders", rows.FactOrders),
		zap.Int("fact_order_items", rows.FactOrderItems),
		zap.Int("files", len(files)),
	)

	u.audit(ctx, log, entities.Run{
		ID:           runID,
		RequestID:    inv.RequestID,
		Input:        inv.URI(),
		OutputBucket: outBucket,
		Partitions:   partitionPaths,
		Files:        files,
		Rows:         rows,
		Status:       entities.RunStatusSucceeded,
	})
	return res, nil
}

func (u *FlattenOrdersUseCase) GetRun(ctx context.Context, runID string) (entities.Run, error) {
	if u.runs == nil {
		return entities.Run{}, ErrRunAuditDisabled
	}
	runID = strings.TrimSpace(runID)
	if runID == "" {
		return entities.Run{}, ErrInvalidRunID
	}

	r, err := u.runs.GetByID(ctx, runID)
	if err != nil {
		return entities.Run{}, err
	}
	if r.ID == "" {
		return entities.Run{}, ErrRunNotFound
	}
	return r, nil
}

func (u *FlattenOrdersUseCase) write(ctx context.Context, bucket, key string, t entities.Table) error {
	data, err := u.encoder.Encode(t)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := u.storage.Put(ctx, bucket, key, data, u.encoder.ContentType()); err != nil {
		return fmt.Errorf("write %s: %w", s3URI(bucket, key), err)
	}
	return nil
}

// audit records the run when an audit repository is configured. Output files
// are already in place at this point, so a failure is only logged.
func (u *FlattenOrdersUseCase) audit(ctx context.Context, log *zap.Logger, r entities.Run) {
	if u.runs == nil {
		return
	}
	r.CreatedAt = u.now().UTC()
	if _, err := u.runs.Create(ctx, r); err != nil {
		log.Warn("run audit write failed", zap.Error(err))
	}
}

func (u *FlattenOrdersUseCase) datasetPrefix(dataset string) string {
	return path.Join(u.prefix, dataset) + "/"
}

// objectKey builds <prefix>/<dataset>/order_year=Y/order_month=M/part-<run id><ext>.
func (u *FlattenOrdersUseCase) objectKey(dataset string, p entities.Partition, runID string) string {
	return path.Join(u.prefix, dataset, p.Path(), "part-"+runID+u.encoder.Extension())
}

func s3URI(bucket, key string) string {
	return "s3://" + bucket + "/" + key
}
