package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/orchid-commerce/medallion/internal/config"
	"github.com/orchid-commerce/medallion/internal/conform"
	"github.com/orchid-commerce/medallion/internal/facts"
	"github.com/orchid-commerce/medallion/internal/ingest"
	"github.com/orchid-commerce/medallion/internal/models"
	"github.com/orchid-commerce/medallion/internal/refdata"
	"github.com/orchid-commerce/medallion/internal/view"
)

// Result holds every table a pipeline run produced, plus the combined
// quarantine stream and the per-stage run records.
type Result struct {
	BronzeBrands     []models.BronzeBrand
	BronzeCategories []models.BronzeCategory
	BronzeProducts   []models.BronzeProduct
	BronzeCustomers  []models.BronzeCustomer
	BronzeOrderItems []models.BronzeOrderItem

	SilverBrands     []models.SilverBrand
	SilverCategories []models.SilverCategory
	SilverProducts   []models.SilverProduct
	SilverCustomers  []models.SilverCustomer
	SilverDates      []models.SilverDate
	SilverOrderItems []models.SilverOrderItem

	GoldBrands     []models.GoldBrand
	GoldCategories []models.GoldCategory
	GoldProducts   []models.GoldProduct
	GoldCustomers  []models.GoldCustomer
	GoldDates      []models.GoldDate
	GoldOrderItems []models.GoldOrderItem

	Unified []models.UnifiedOrderItem

	Quarantine []models.QuarantineRecord
	Runs       []models.StageRun
}

// Pipeline wires the concrete medallion stages into an orchestration
// graph. Dimension stages and fact bronze/silver are independent up to
// gold; the fact gold stage declares the gold dimension tables as inputs,
// so sequencing falls out of the declarations.
type Pipeline struct {
	cfg *config.Config
	rd  *refdata.RefData
	res *Result
}

func New(cfg *config.Config, rd *refdata.RefData) *Pipeline {
	return &Pipeline{cfg: cfg, rd: rd, res: &Result{}}
}

func (p *Pipeline) landing(name string) string {
	return filepath.Join(p.cfg.Landing.Dir, name)
}

// Graph declares every stage with its inputs and outputs.
func (p *Pipeline) Graph() *Graph {
	adapter := ingest.NewAdapter()
	res := p.res

	return NewGraph(
		Stage{
			Name:    models.TableBronzeBrands,
			Outputs: []string{models.TableBronzeBrands},
			Run: func(ctx context.Context) (RunStats, error) {
				rows, rejects, err := adapter.ReadBrands(p.landing(p.cfg.Landing.Brands))
				if err != nil {
					return RunStats{}, err
				}
				res.BronzeBrands = rows
				res.Quarantine = append(res.Quarantine, rejects...)
				return RunStats{RowsIn: len(rows) + len(rejects), RowsOut: len(rows), Quarantined: len(rejects)}, nil
			},
		},
		Stage{
			Name:    models.TableBronzeCategories,
			Outputs: []string{models.TableBronzeCategories},
			Run: func(ctx context.Context) (RunStats, error) {
				rows, rejects, err := adapter.ReadCategories(p.landing(p.cfg.Landing.Categories))
				if err != nil {
					return RunStats{}, err
				}
				res.BronzeCategories = rows
				res.Quarantine = append(res.Quarantine, rejects...)
				return RunStats{RowsIn: len(rows) + len(rejects), RowsOut: len(rows), Quarantined: len(rejects)}, nil
			},
		},
		Stage{
			Name:    models.TableBronzeProducts,
			Outputs: []string{models.TableBronzeProducts},
			Run: func(ctx context.Context) (RunStats, error) {
				rows, rejects, err := adapter.ReadProducts(p.landing(p.cfg.Landing.Products))
				if err != nil {
					return RunStats{}, err
				}
				res.BronzeProducts = rows
				res.Quarantine = append(res.Quarantine, rejects...)
				return RunStats{RowsIn: len(rows) + len(rejects), RowsOut: len(rows), Quarantined: len(rejects)}, nil
			},
		},
		Stage{
			Name:    models.TableBronzeCustomers,
			Outputs: []string{models.TableBronzeCustomers},
			Run: func(ctx context.Context) (RunStats, error) {
				rows, rejects, err := adapter.ReadCustomers(p.landing(p.cfg.Landing.Customers))
				if err != nil {
					return RunStats{}, err
				}
				res.BronzeCustomers = rows
				res.Quarantine = append(res.Quarantine, rejects...)
				return RunStats{RowsIn: len(rows) + len(rejects), RowsOut: len(rows), Quarantined: len(rejects)}, nil
			},
		},
		Stage{
			Name:    models.TableBronzeOrderItems,
			Outputs: []string{models.TableBronzeOrderItems},
			Run: func(ctx context.Context) (RunStats, error) {
				rows, rejects, err := adapter.ReadOrderItems(p.landing(p.cfg.Landing.OrderItems))
				if err != nil {
					return RunStats{}, err
				}
				res.BronzeOrderItems = rows
				res.Quarantine = append(res.Quarantine, rejects...)
				return RunStats{RowsIn: len(rows) + len(rejects), RowsOut: len(rows), Quarantined: len(rejects)}, nil
			},
		},

		Stage{
			Name:    models.TableSilverBrands,
			Inputs:  []string{models.TableBronzeBrands},
			Outputs: []string{models.TableSilverBrands},
			Run: func(ctx context.Context) (RunStats, error) {
				rows, quarantined := conform.ConformBrands(res.BronzeBrands)
				res.SilverBrands = rows
				res.Quarantine = append(res.Quarantine, quarantined...)
				return RunStats{RowsIn: len(res.BronzeBrands), RowsOut: len(rows), Quarantined: len(quarantined)}, nil
			},
		},
		Stage{
			Name:    models.TableSilverCategories,
			Inputs:  []string{models.TableBronzeCategories},
			Outputs: []string{models.TableSilverCategories},
			Run: func(ctx context.Context) (RunStats, error) {
				rows, quarantined := conform.ConformCategories(res.BronzeCategories)
				res.SilverCategories = rows
				res.Quarantine = append(res.Quarantine, quarantined...)
				return RunStats{RowsIn: len(res.BronzeCategories), RowsOut: len(rows), Quarantined: len(quarantined)}, nil
			},
		},
		Stage{
			Name:    models.TableSilverProducts,
			Inputs:  []string{models.TableBronzeProducts},
			Outputs: []string{models.TableSilverProducts},
			Run: func(ctx context.Context) (RunStats, error) {
				rows, quarantined := conform.ConformProducts(res.BronzeProducts, p.rd)
				res.SilverProducts = rows
				res.Quarantine = append(res.Quarantine, quarantined...)
				return RunStats{RowsIn: len(res.BronzeProducts), RowsOut: len(rows), Quarantined: len(quarantined)}, nil
			},
		},
		Stage{
			Name:    models.TableSilverCustomers,
			Inputs:  []string{models.TableBronzeCustomers},
			Outputs: []string{models.TableSilverCustomers},
			Run: func(ctx context.Context) (RunStats, error) {
				rows, quarantined := conform.ConformCustomers(res.BronzeCustomers)
				res.SilverCustomers = rows
				res.Quarantine = append(res.Quarantine, quarantined...)
				return RunStats{RowsIn: len(res.BronzeCustomers), RowsOut: len(rows), Quarantined: len(quarantined)}, nil
			},
		},
		Stage{
			Name:    models.TableSilverDates,
			Outputs: []string{models.TableSilverDates},
			Run: func(ctx context.Context) (RunStats, error) {
				start, end, err := p.cfg.Calendar.Horizon()
				if err != nil {
					return RunStats{}, err
				}
				res.SilverDates = conform.BuildCalendar(start, end)
				return RunStats{RowsOut: len(res.SilverDates)}, nil
			},
		},
		Stage{
			Name:    models.TableSilverOrderItems,
			Inputs:  []string{models.TableBronzeOrderItems},
			Outputs: []string{models.TableSilverOrderItems},
			Run: func(ctx context.Context) (RunStats, error) {
				rows, quarantined := facts.ConformOrderItems(res.BronzeOrderItems, p.rd)
				res.SilverOrderItems = rows
				res.Quarantine = append(res.Quarantine, quarantined...)
				return RunStats{RowsIn: len(res.BronzeOrderItems), RowsOut: len(rows), Quarantined: len(quarantined)}, nil
			},
		},

		Stage{
			Name:    models.TableGoldCategories,
			Inputs:  []string{models.TableSilverCategories},
			Outputs: []string{models.TableGoldCategories},
			Run: func(ctx context.Context) (RunStats, error) {
				res.GoldCategories = conform.BuildGoldCategories(res.SilverCategories)
				return RunStats{RowsIn: len(res.SilverCategories), RowsOut: len(res.GoldCategories)}, nil
			},
		},
		Stage{
			Name:    models.TableGoldBrands,
			Inputs:  []string{models.TableSilverBrands, models.TableGoldCategories},
			Outputs: []string{models.TableGoldBrands},
			Run: func(ctx context.Context) (RunStats, error) {
				res.GoldBrands = conform.BuildGoldBrands(res.SilverBrands, res.GoldCategories)
				return RunStats{RowsIn: len(res.SilverBrands), RowsOut: len(res.GoldBrands)}, nil
			},
		},
		Stage{
			Name:    models.TableGoldProducts,
			Inputs:  []string{models.TableSilverProducts, models.TableGoldBrands},
			Outputs: []string{models.TableGoldProducts},
			Run: func(ctx context.Context) (RunStats, error) {
				res.GoldProducts = conform.BuildGoldProducts(res.SilverProducts, res.GoldBrands)
				return RunStats{RowsIn: len(res.SilverProducts), RowsOut: len(res.GoldProducts)}, nil
			},
		},
		Stage{
			Name:    models.TableGoldCustomers,
			Inputs:  []string{models.TableSilverCustomers},
			Outputs: []string{models.TableGoldCustomers},
			Run: func(ctx context.Context) (RunStats, error) {
				res.GoldCustomers = conform.BuildGoldCustomers(res.SilverCustomers, p.rd)
				return RunStats{RowsIn: len(res.SilverCustomers), RowsOut: len(res.GoldCustomers)}, nil
			},
		},
		Stage{
			Name:    models.TableGoldDates,
			Inputs:  []string{models.TableSilverDates},
			Outputs: []string{models.TableGoldDates},
			Run: func(ctx context.Context) (RunStats, error) {
				res.GoldDates = conform.BuildGoldDates(res.SilverDates)
				return RunStats{RowsIn: len(res.SilverDates), RowsOut: len(res.GoldDates)}, nil
			},
		},
		Stage{
			Name: models.TableGoldOrderItems,
			Inputs: []string{
				models.TableSilverOrderItems,
				models.TableGoldDates,
				models.TableGoldProducts,
				models.TableGoldCustomers,
			},
			Outputs: []string{models.TableGoldOrderItems},
			Run: func(ctx context.Context) (RunStats, error) {
				snap := facts.NewDimensionSnapshot(res.GoldDates, res.GoldProducts, res.GoldCustomers)
				rows, quarantined := facts.BuildGoldOrderItems(res.SilverOrderItems, snap, p.rd)
				res.GoldOrderItems = rows
				res.Quarantine = append(res.Quarantine, quarantined...)
				return RunStats{RowsIn: len(res.SilverOrderItems), RowsOut: len(rows), Quarantined: len(quarantined)}, nil
			},
		},

		Stage{
			Name: models.TableUnifiedView,
			Inputs: []string{
				models.TableGoldOrderItems,
				models.TableGoldDates,
				models.TableGoldProducts,
				models.TableGoldCustomers,
			},
			Outputs: []string{models.TableUnifiedView},
			Run: func(ctx context.Context) (RunStats, error) {
				snap := facts.NewDimensionSnapshot(res.GoldDates, res.GoldProducts, res.GoldCustomers)
				res.Unified = view.Build(res.GoldOrderItems, snap)
				return RunStats{RowsIn: len(res.GoldOrderItems), RowsOut: len(res.Unified)}, nil
			},
		},
	)
}

// Run validates the graph and executes every stage in dependency order.
// Each call starts from an empty Result, so re-running the same Pipeline
// on unchanged input yields the same output and quarantine stream.
func (p *Pipeline) Run(ctx context.Context, logger *slog.Logger) (*Result, error) {
	p.res = &Result{}
	return p.run(ctx, logger, p.Graph())
}

// RunTo executes only the stages needed to produce the given tables,
// letting a caller re-run one layer without the rest of the graph.
func (p *Pipeline) RunTo(ctx context.Context, logger *slog.Logger, tables ...string) (*Result, error) {
	p.res = &Result{}
	return p.run(ctx, logger, p.Graph().Subgraph(tables...))
}

func (p *Pipeline) run(ctx context.Context, logger *slog.Logger, graph *Graph) (*Result, error) {
	if err := graph.Validate(); err != nil {
		return nil, fmt.Errorf("invalid stage graph: %w", err)
	}

	runs, err := graph.Execute(ctx, logger, p.rd.Version)
	p.res.Runs = runs
	if err != nil {
		return p.res, err
	}
	return p.res, nil
}
