package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"gorm.io/gorm"

	"github.com/Gopikasanthosh455/placement-app/internal/cache"
	"github.com/Gopikasanthosh455/placement-app/internal/events"
	"github.com/Gopikasanthosh455/placement-app/internal/repositories"
	"github.com/Gopikasanthosh455/placement-app/internal/shortlist"
	"github.com/Gopikasanthosh455/placement-app/internal/validator"
)

// ServiceManagerConfig holds the settings services read at construction
type ServiceManagerConfig struct {
	PublicBaseURL string
	ShortlistSize int
}

type serviceManager struct {
	// Dependencies
	db           *gorm.DB
	repo         repositories.Repository
	cacheManager *cache.CacheManager
	publisher    events.EventPublisher
	logger       *slog.Logger
	validator    *validator.Validator
	config       ServiceManagerConfig

	// Service instances
	authService        AuthService
	profileService     ProfileService
	jobService         JobService
	applicationService ApplicationService
	shortlistService   ShortlistService
	dashboardService   DashboardService

	// Lifecycle management
	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

func NewServiceManager(
	db *gorm.DB,
	repo repositories.Repository,
	cacheManager *cache.CacheManager,
	publisher events.EventPublisher,
	logger *slog.Logger,
	validator *validator.Validator,
	config ServiceManagerConfig,
) ServiceManager {
	return &serviceManager{
		db:           db,
		repo:         repo,
		cacheManager: cacheManager,
		publisher:    publisher,
		logger:       logger,
		validator:    validator,
		config:       config,
	}
}

// Initialize sets up all services and their dependencies
func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if sm.repo == nil {
		return fmt.Errorf("repository is required")
	}

	sm.logger.Info("Initializing service manager")

	size := sm.config.ShortlistSize
	if size <= 0 {
		size = shortlist.DefaultSize
	}

	sm.authService = NewAuthService(sm.repo, sm.logger, sm.validator)
	sm.profileService = NewProfileService(sm.repo, sm.db, sm.cacheManager, sm.logger, sm.validator)
	sm.jobService = NewJobService(sm.repo, sm.db, sm.publisher, sm.logger, sm.validator)
	sm.applicationService = NewApplicationService(sm.repo, sm.db, sm.logger)
	sm.shortlistService = NewShortlistService(sm.repo, sm.db, shortlist.NewSampler(size), sm.config.PublicBaseURL, sm.logger)
	sm.dashboardService = NewDashboardService(sm.repo, sm.db, sm.logger, sm.jobService, sm.profileService)

	sm.initialized = true
	sm.logger.Info("Service manager initialized", "shortlist_size", size)
	return nil
}

func (sm *serviceManager) mustBeReady(name string) {
	if !sm.initialized {
		panic("service manager not initialized")
	}
	if sm.shutdown {
		panic(name + " service used after shutdown")
	}
}

func (sm *serviceManager) Auth() AuthService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeReady("auth")
	return sm.authService
}

func (sm *serviceManager) Profile() ProfileService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeReady("profile")
	return sm.profileService
}

func (sm *serviceManager) Job() JobService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeReady("job")
	return sm.jobService
}

func (sm *serviceManager) Application() ApplicationService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeReady("application")
	return sm.applicationService
}

func (sm *serviceManager) Shortlist() ShortlistService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeReady("shortlist")
	return sm.shortlistService
}

func (sm *serviceManager) Dashboard() DashboardService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sm.mustBeReady("dashboard")
	return sm.dashboardService
}

// Health and lifecycle
func (sm *serviceManager) HealthCheck(ctx context.Context) error {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		return fmt.Errorf("service manager not initialized")
	}
	if sm.shutdown {
		return fmt.Errorf("service manager is shut down")
	}
	if err := sm.repo.Ping(ctx); err != nil {
		return fmt.Errorf("repository health check failed: %w", err)
	}
	return nil
}

// Shutdown closes the event publisher. The repository is closed by its manager.
func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}
	sm.logger.Info("Shutting down service manager")

	if sm.publisher != nil {
		if err := sm.publisher.Close(); err != nil {
			sm.logger.Error("Failed to close event publisher", "error", err)
		}
	}

	sm.shutdown = true
	sm.logger.Info("Service manager shut down completed")
	return nil
}
