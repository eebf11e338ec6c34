//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/hairmatch/internal/bootstrap"
	"github.com/yanqian/hairmatch/internal/domain/auth"
	"github.com/yanqian/hairmatch/internal/domain/discovery"
	"github.com/yanqian/hairmatch/internal/domain/scoring"
	"github.com/yanqian/hairmatch/internal/infra/config"
	httpiface "github.com/yanqian/hairmatch/internal/interface/http"
	"github.com/yanqian/hairmatch/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		providePostgresPool,
		provideValkeyClient,
		provideMemoryBackend,
		provideRuleTable,
		provideRuleRepository,
		provideRuleStore,
		provideProfileRepository,
		provideProductRepository,
		provideScoreRepository,
		provideScoringConfig,
		provideDiscoveryConfig,
		provideChatClient,
		provideJobQueue,
		provideDispatcher,
		provideAuthConfig,
		provideResources,
		scoring.NewService,
		discovery.NewService,
		auth.NewService,
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
