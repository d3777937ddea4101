package app

import (
	"github.com/pkg/errors"

	"github.com/quartermaster-app/linkgraph/global"
	"github.com/quartermaster-app/linkgraph/internal/dao"
	"github.com/quartermaster-app/linkgraph/internal/domain"
	"github.com/quartermaster-app/linkgraph/internal/kv"
	"github.com/quartermaster-app/linkgraph/internal/service"
	"github.com/quartermaster-app/linkgraph/pkg/logger"
)

// App is the application container. It owns the store connection and hands
// out the wired repositories and services.
type App struct {
	Config *AppConfig
	Store  kv.Store

	Dao         *dao.Dao
	LinkRepo    domain.LinkRepository
	EntityRepo  domain.EntityRepository
	EventRepo   domain.EventLogRepository
	LinkService service.LinkService
}

// New builds the container from config: logger, store backend, dao and the
// link service.
func New(config *AppConfig) (*App, error) {
	lg, err := logger.NewLogger(config.Log)
	if err != nil {
		return nil, errors.Wrap(err, "init logger")
	}
	global.Logger = lg

	var store kv.Store
	switch config.KV.Type {
	case "memory":
		store = kv.NewMemoryStore()
	case "redis", "":
		store = kv.NewRedisStore(kv.RedisConfig{
			Addr:     config.KV.Addr,
			Password: config.KV.Password,
			DB:       config.KV.DB,
		})
	default:
		return nil, errors.Errorf("unknown kv store type %q", config.KV.Type)
	}

	d := dao.New(store, config.KV.KeyPrefix)
	linkRepo := dao.NewLinkRepository(d)
	entityRepo := dao.NewEntityRepository(d)
	eventRepo := dao.NewEventLogRepository(d)

	svc := service.NewLinkService(linkRepo, entityRepo, eventRepo, service.Config{
		ExistenceAttempts: config.Link.ExistenceRetries,
		ExistenceDelay:    config.Link.ExistenceDelay(),
	}, lg)

	return &App{
		Config:      config,
		Store:       store,
		Dao:         d,
		LinkRepo:    linkRepo,
		EntityRepo:  entityRepo,
		EventRepo:   eventRepo,
		LinkService: svc,
	}, nil
}

// Close releases the store connection.
func (a *App) Close() error {
	return a.Store.Close()
}
