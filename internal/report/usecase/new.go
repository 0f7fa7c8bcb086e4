package usecase

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"eod-extractor/internal/model"
	"eod-extractor/internal/report/repository"
	"eod-extractor/pkg/eod"
	"eod-extractor/pkg/log"
)

// implUseCase is the private implementation of report.UseCase.
type implUseCase struct {
	mail      repository.MailRepository
	extractor *eod.Extractor
	l         log.Logger
	cache     *expirable.LRU[string, cacheEntry]
}

// cacheEntry holds the extraction outcome for one message uid. Negative
// outcomes are cached too, a message without a report section stays
// without one.
type cacheEntry struct {
	found      bool
	extraction model.Extraction
}

// New creates a new report UseCase implementation. The mail repository
// may be nil when no provider is configured; ExtractRange then fails
// with ErrNoMailSource while ExtractText keeps working.
func New(mail repository.MailRepository, extractor *eod.Extractor, l log.Logger, cacheSize int, cacheTTL time.Duration) *implUseCase {
	if extractor == nil {
		panic("report/usecase: extractor is required")
	}
	if cacheSize <= 0 {
		cacheSize = 1024
	}
	if cacheTTL <= 0 {
		cacheTTL = 15 * time.Minute
	}
	return &implUseCase{
		mail:      mail,
		extractor: extractor,
		l:         l,
		cache:     expirable.NewLRU[string, cacheEntry](cacheSize, nil, cacheTTL),
	}
}
