package controllers

import (
	"strconv"

	"github.com/PennitApp/Pennit/app/repository"
	"github.com/PennitApp/Pennit/internal/pkg/access"
	"github.com/PennitApp/Pennit/internal/pkg/cache"
	"github.com/PennitApp/Pennit/internal/pkg/earnings"
	"github.com/PennitApp/Pennit/internal/pkg/env"
	"github.com/PennitApp/Pennit/internal/pkg/featuregate"
)

// Engine singletons shared by the controllers. The feature config is
// resolved exactly once at startup and injected here; no controller reads
// the environment switch directly.
var (
	appConfig         featuregate.Config
	accessResolver    *access.Resolver
	earningsEstimator *earnings.Estimator
	flatPolicy        earnings.FlatPerReadPolicy
)

// InitializeEngine wires the access resolver and earnings estimator from
// the repository factory, the Redis cache and the loaded feature config.
// Must be called after the repository factory and cache are set up.
func InitializeEngine(cfg featuregate.Config) {
	appConfig = cfg
	repos := repository.GetGlobalRepositories()

	checker := access.NewSubscriptionChecker(repos.Subscription)
	quota := access.NewRedisQuotaStore(cache.GetClient())
	accessResolver = access.NewResolver(cfg, checker, quota, freePoemLimit(), previewCharLimit())

	earningsEstimator = earnings.NewEstimator(
		cfg,
		earnings.NewWorksSource(repos.Work),
		earnings.NewPayoutSource(repos.Payout),
		earnings.NewCategoryWeightedPolicy(),
		pesewasPerPoint(),
	)
	flatPolicy = earnings.NewFlatPerReadPolicy()
}

func freePoemLimit() int {
	if v, err := strconv.Atoi(env.GetEnv("WRITER_FREE_POEM_LIMIT", "")); err == nil && v > 0 {
		return v
	}
	return access.DefaultWriterFreePoemLimit
}

func previewCharLimit() int {
	if v, err := strconv.Atoi(env.GetEnv("PREVIEW_CHAR_LIMIT", "")); err == nil && v > 0 {
		return v
	}
	return access.PreviewCharLimit
}

func pesewasPerPoint() earnings.Pesewas {
	// GHS_PER_POINT is configured in cedis, e.g. "0.05"
	if v, err := strconv.ParseFloat(env.GetEnv("GHS_PER_POINT", ""), 64); err == nil && v > 0 {
		return earnings.Pesewas(v*100 + 0.5)
	}
	return earnings.DefaultPesewasPerPoint
}
