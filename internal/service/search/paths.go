package search

import (
	"context"
	"runtime/debug"

	"client-bff/internal/domain/vehicle"

	"go.uber.org/zap"
)

const (
	PathBasic = "basic"
	PathLive  = "live"
	PathIndex = "index"
)

// SearchPath answers an advanced search. Implementations differ in where
// offers come from but return the same page shape. The only error returned
// is a validation error.
type SearchPath interface {
	Name() string
	Search(ctx context.Context, criteria *vehicle.AdvancedSearchCriteria) (*vehicle.PagedResult, error)
}

// IndexQuerier runs a structured query against the search index.
type IndexQuerier interface {
	Query(ctx context.Context, criteria *vehicle.AdvancedSearchCriteria) (*vehicle.PagedResult, error)
}

// LiveSearchPath aggregates from the upstream services and refines in memory.
type LiveSearchPath struct {
	aggregator *Aggregator
	refine     func([]vehicle.Offer, *vehicle.AdvancedSearchCriteria) *vehicle.PagedResult
	logger     *zap.Logger
}

func NewLiveSearchPath(aggregator *Aggregator, logger *zap.Logger) *LiveSearchPath {
	return &LiveSearchPath{aggregator: aggregator, refine: Refine, logger: logger}
}

func (p *LiveSearchPath) Name() string { return PathLive }

func (p *LiveSearchPath) Search(ctx context.Context, criteria *vehicle.AdvancedSearchCriteria) (result *vehicle.PagedResult, err error) {
	if err := criteria.Validate(); err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("live search panicked",
				zap.Any("panic", r),
				zap.ByteString("stack", debug.Stack()),
			)
			result, err = vehicle.FailedPage(vehicle.CodeInternalError, vehicle.MsgInternalError, criteria.PageNumber, criteria.PageSize), nil
		}
	}()

	basic, err := p.aggregator.Search(ctx, &criteria.SearchCriteria)
	if err != nil {
		return nil, err
	}
	if !basic.Success {
		return vehicle.FailedPage(basic.Code, basic.Message, criteria.PageNumber, criteria.PageSize), nil
	}

	return p.refine(basic.Vehicles, criteria), nil
}

// IndexSearchPath queries the search index directly. Index documents are
// already priced; only the rental cost is computed here.
type IndexSearchPath struct {
	index  IndexQuerier
	logger *zap.Logger
}

func NewIndexSearchPath(index IndexQuerier, logger *zap.Logger) *IndexSearchPath {
	return &IndexSearchPath{index: index, logger: logger}
}

func (p *IndexSearchPath) Name() string { return PathIndex }

func (p *IndexSearchPath) Search(ctx context.Context, criteria *vehicle.AdvancedSearchCriteria) (result *vehicle.PagedResult, err error) {
	if err := criteria.Validate(); err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("index search panicked",
				zap.Any("panic", r),
				zap.ByteString("stack", debug.Stack()),
			)
			result, err = vehicle.FailedPage(vehicle.CodeInternalError, vehicle.MsgInternalError, criteria.PageNumber, criteria.PageSize), nil
		}
	}()

	result, err = p.index.Query(ctx, criteria)
	if err != nil {
		p.logger.Warn("search index query failed", zap.Error(err))
		return vehicle.FailedPage(vehicle.CodeUpstreamUnavailable, vehicle.MsgUpstreamUnavailable, criteria.PageNumber, criteria.PageSize), nil
	}

	for i := range result.Vehicles {
		PriceOffer(&result.Vehicles[i], &criteria.SearchCriteria)
	}
	return result, nil
}
