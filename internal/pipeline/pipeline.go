package pipeline

import (
	"context"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"go-review-pipeline/internal/errors"
	"go-review-pipeline/internal/model"
)

const defaultWorkers = 4

// Settings describe where review rows live and how they decode.
type Settings struct {
	SheetName string
	RowSkip   int
	Schema    model.Schema
	Workers   int
}

// Pipeline reads review rows, filters and aggregates them per product and
// hands each product bundle to an ArtifactWriter.
type Pipeline struct {
	reader   RowReader
	writer   ArtifactWriter
	settings Settings
	logger   *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger used for run progress.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// Result is the outcome of a fetch. Outputs are sorted by SKU.
type Result struct {
	Outputs []model.OutputFile
	Metrics model.RunMetrics
}

// Files returns the written artifact paths.
func (r *Result) Files() []string {
	files := make([]string, 0, len(r.Outputs))
	for _, out := range r.Outputs {
		files = append(files, out.Path)
	}
	return files
}

// New creates a pipeline over reader and writer.
func New(reader RowReader, writer ArtifactWriter, settings Settings, opts ...Option) (*Pipeline, error) {
	if reader == nil || writer == nil {
		return nil, errors.InvalidInput("pipeline requires a row reader and an artifact writer")
	}
	if len(settings.Schema) == 0 {
		return nil, errors.SchemaMismatch("pipeline requires a non-empty schema")
	}
	if settings.Workers <= 0 {
		settings.Workers = defaultWorkers
	}
	p := &Pipeline{
		reader:   reader,
		writer:   writer,
		settings: settings,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// FetchProducts writes one bundle per requested SKU. SKUs whose filtered
// review set is empty produce no file. Every failing SKU is reported in the
// returned error; the Result still lists what was written.
func (p *Pipeline) FetchProducts(ctx context.Context, skus []string, opts model.FetchOptions) (*Result, error) {
	if err := ValidateSKUs(skus); err != nil {
		return nil, err
	}
	if err := ValidateFetchOptions(opts); err != nil {
		return nil, err
	}
	rng, err := p.dataRange()
	if err != nil {
		return nil, err
	}

	skus = uniqueSKUs(skus)
	tracker := NewTracker(string(model.JobModeProducts))
	p.logger.Info("Starting product review fetch", "skus", len(skus), "range", rng.String())

	outputs := make([]*model.OutputFile, len(skus))
	var (
		mu   sync.Mutex
		errs *multierror.Error
	)
	g := new(errgroup.Group)
	g.SetLimit(p.settings.Workers)
	for i, sku := range skus {
		g.Go(func() error {
			out, err := p.fetchProduct(ctx, tracker, rng, sku, opts)
			if err != nil {
				mu.Lock()
				errs = multierror.Append(errs, errors.Wrapf(err, "sku %s", sku))
				mu.Unlock()
				return nil
			}
			outputs[i] = out
			return nil
		})
	}
	_ = g.Wait()

	return p.finish(tracker, outputs, errs.ErrorOrNil())
}

func (p *Pipeline) fetchProduct(ctx context.Context, tracker *Tracker, rng model.RangeDescriptor, sku string, opts model.FetchOptions) (*model.OutputFile, error) {
	reviews, err := p.readReviews(ctx, tracker, ReadRequest{Range: rng, SKU: strings.ToUpper(sku)}, sku)
	if err != nil {
		return nil, err
	}

	done := tracker.StartStage(StageFilter)
	reviews = FilterRecords(reviews, ApprovalMatch(opts.Approved))
	reviews = FilterRecords(reviews, ProductMatch(sku))
	done(len(reviews))

	done = tracker.StartStage(StagePaginate)
	reviews, err = Paginate(reviews, opts.PageOptions())
	if err != nil {
		tracker.RecordError(StagePaginate, sku, err)
		return nil, errors.Wrap(err, StagePaginate)
	}
	done(len(reviews))

	if len(reviews) == 0 {
		p.logger.Debug("No reviews matched, skipping product", "sku", sku)
		return nil, nil
	}

	done = tracker.StartStage(StageAggregate)
	bundle, err := NewBundle(reviews)
	if err != nil {
		tracker.RecordError(StageAggregate, sku, err)
		return nil, errors.Wrap(err, StageAggregate)
	}
	done(1)
	tracker.AddBundles(1)

	return p.writeBundle(ctx, tracker, bundle)
}

// FetchAll reads every review once, paginates the whole filtered set and
// writes one bundle per product found on that page.
func (p *Pipeline) FetchAll(ctx context.Context, opts model.FetchOptions) (*Result, error) {
	if err := ValidateFetchOptions(opts); err != nil {
		return nil, err
	}
	rng, err := p.dataRange()
	if err != nil {
		return nil, err
	}

	tracker := NewTracker(string(model.JobModeAll))
	p.logger.Info("Starting review fetch for all products", "range", rng.String())

	reviews, err := p.readReviews(ctx, tracker, ReadRequest{Range: rng}, "")
	if err != nil {
		return p.finish(tracker, nil, err)
	}

	done := tracker.StartStage(StageFilter)
	reviews = FilterRecords(reviews, ApprovalMatch(opts.Approved))
	done(len(reviews))

	done = tracker.StartStage(StagePaginate)
	reviews, err = Paginate(reviews, opts.PageOptions())
	if err != nil {
		tracker.RecordError(StagePaginate, "", err)
		return p.finish(tracker, nil, errors.Wrap(err, StagePaginate))
	}
	done(len(reviews))

	done = tracker.StartStage(StageAggregate)
	groups, err := GroupByProduct(reviews)
	if err != nil {
		tracker.RecordError(StageAggregate, "", err)
		return p.finish(tracker, nil, errors.Wrap(err, StageAggregate))
	}
	if err := checkDistinctSKUs(groups); err != nil {
		tracker.RecordError(StageAggregate, "", err)
		return p.finish(tracker, nil, err)
	}
	done(len(groups))
	tracker.AddBundles(len(groups))

	ids := slices.Sorted(maps.Keys(groups))
	outputs := make([]*model.OutputFile, len(ids))
	var (
		mu   sync.Mutex
		errs *multierror.Error
	)
	g := new(errgroup.Group)
	g.SetLimit(p.settings.Workers)
	for i, id := range ids {
		bundle := groups[id]
		g.Go(func() error {
			out, err := p.writeBundle(ctx, tracker, bundle)
			if err != nil {
				mu.Lock()
				errs = multierror.Append(errs, errors.Wrapf(err, "product %s", id))
				mu.Unlock()
				return nil
			}
			outputs[i] = out
			return nil
		})
	}
	_ = g.Wait()

	return p.finish(tracker, outputs, errs.ErrorOrNil())
}

// ReadPage returns the parsed, unfiltered reviews of one sheet page. The
// page is pushed down into the sheet range.
func (p *Pipeline) ReadPage(ctx context.Context, opts model.PageOptions) ([]model.Review, error) {
	if err := validatePageOptions(opts); err != nil {
		return nil, err
	}
	length := 0
	if opts.Length != nil {
		if *opts.Length == 0 {
			return []model.Review{}, nil
		}
		length = *opts.Length
	}

	rng, err := ResolveRange(p.settings.SheetName, p.settings.Schema, model.RangeOptions{
		Skip:   p.settings.RowSkip,
		Length: length,
		Page:   opts.Page,
	})
	if err != nil {
		return nil, err
	}
	tracker := NewTracker("page")
	return p.readReviews(ctx, tracker, ReadRequest{Range: rng, Page: opts}, "")
}

func (p *Pipeline) readReviews(ctx context.Context, tracker *Tracker, req ReadRequest, sku string) ([]model.Review, error) {
	done := tracker.StartStage(StageRead)
	rows, err := p.reader.ReadRows(ctx, req)
	if err != nil {
		tracker.RecordError(StageRead, sku, err)
		return nil, errors.Wrap(err, StageRead)
	}
	done(len(rows))
	tracker.AddRowsRead(len(rows))

	done = tracker.StartStage(StageParse)
	reviews, err := ParseRows(rows, p.settings.Schema)
	if err != nil {
		tracker.RecordError(StageParse, sku, err)
		return nil, errors.Wrap(err, StageParse)
	}
	done(len(reviews))
	return reviews, nil
}

func (p *Pipeline) writeBundle(ctx context.Context, tracker *Tracker, bundle *model.ProductBundle) (*model.OutputFile, error) {
	done := tracker.StartStage(StageWrite)
	path, err := p.writer.Write(ctx, bundle)
	if err != nil {
		tracker.RecordError(StageWrite, bundle.SKU, err)
		return nil, errors.Wrap(err, StageWrite)
	}
	done(len(bundle.Reviews))
	tracker.RecordFile()

	p.logger.Info("Wrote product reviews",
		"sku", bundle.SKU,
		"reviews", len(bundle.Reviews),
		"average", bundle.ReviewAverage,
		"path", path)

	return &model.OutputFile{
		SKU:           bundle.SKU,
		Path:          path,
		ReviewCount:   len(bundle.Reviews),
		ReviewAverage: bundle.ReviewAverage,
	}, nil
}

func (p *Pipeline) dataRange() (model.RangeDescriptor, error) {
	return ResolveRange(p.settings.SheetName, p.settings.Schema, model.RangeOptions{Skip: p.settings.RowSkip})
}

func (p *Pipeline) finish(tracker *Tracker, outputs []*model.OutputFile, err error) (*Result, error) {
	result := &Result{Outputs: make([]model.OutputFile, 0, len(outputs))}
	for _, out := range outputs {
		if out != nil {
			result.Outputs = append(result.Outputs, *out)
		}
	}
	slices.SortFunc(result.Outputs, func(a, b model.OutputFile) int {
		return strings.Compare(a.SKU, b.SKU)
	})
	result.Metrics = tracker.Finish()

	attrs := []any{
		"mode", result.Metrics.Mode,
		"rows_read", result.Metrics.RowsRead,
		"files", result.Metrics.FilesWritten,
		"errors", result.Metrics.ErrorCount,
		"duration", result.Metrics.Duration,
	}
	if err != nil {
		p.logger.Error("Review fetch failed", append(attrs, "error", err)...)
		return result, err
	}
	p.logger.Info("Review fetch completed", attrs...)
	return result, nil
}

// checkDistinctSKUs rejects groups whose product ids collide once lower
// cased, since they would write the same file.
func checkDistinctSKUs(groups map[string]*model.ProductBundle) error {
	owners := make(map[string]string, len(groups))
	for _, id := range slices.Sorted(maps.Keys(groups)) {
		sku := groups[id].SKU
		if other, ok := owners[sku]; ok {
			return errors.Newf(errors.CodeInvalidInput,
				"products %q and %q both map to sku %q", other, id, sku)
		}
		owners[sku] = id
	}
	return nil
}
