package history

import (
	"context"

	"go.uber.org/fx"

	gormadapter "github.com/tigerroll/flclient/pkg/flclient/adapter/database/gorm"
	storage "github.com/tigerroll/flclient/pkg/flclient/adapter/storage"
	port "github.com/tigerroll/flclient/pkg/flclient/core/application/port"
	config "github.com/tigerroll/flclient/pkg/flclient/core/config"
	support "github.com/tigerroll/flclient/pkg/flclient/core/config/support"
	repository "github.com/tigerroll/flclient/pkg/flclient/core/domain/repository"
	"github.com/tigerroll/flclient/pkg/flclient/infrastructure/export"
	"github.com/tigerroll/flclient/pkg/flclient/infrastructure/repository/inmemory"
	sqlrepo "github.com/tigerroll/flclient/pkg/flclient/infrastructure/repository/sql"
	"github.com/tigerroll/flclient/pkg/flclient/support/util/logger"

	// Register the database types available to flclient.infrastructure.history_db_ref.
	_ "github.com/tigerroll/flclient/pkg/flclient/adapter/database/gorm/mysql"
	_ "github.com/tigerroll/flclient/pkg/flclient/adapter/database/gorm/postgres"
	_ "github.com/tigerroll/flclient/pkg/flclient/adapter/database/gorm/sqlite"

	// Register the storage types available to flclient.infrastructure.history_export.storage_ref.
	_ "github.com/tigerroll/flclient/pkg/flclient/adapter/storage/gcs"
	_ "github.com/tigerroll/flclient/pkg/flclient/adapter/storage/local"
)

// BuilderName is the listener ref of RecordingJobResultCallback.
const BuilderName = "historyJobResultCallback"

// NewResultRepository selects the repository named by flclient.infrastructure.history_db_ref.
// An empty reference selects the in-memory repository.
func NewResultRepository(cfg *config.Config) (repository.ResultRepository, error) {
	ref := cfg.FLClient.Infrastructure.HistoryDBRef
	if ref == "" {
		logger.Infof("History: no history_db_ref configured. Using in-memory result repository.")
		return inmemory.NewInMemoryResultRepository(), nil
	}
	db, err := gormadapter.OpenNamed(cfg, ref)
	if err != nil {
		return nil, err
	}
	return sqlrepo.NewSQLResultRepository(db)
}

// NewManagedResultRepository wraps NewResultRepository and closes the repository on shutdown.
// When flclient.infrastructure.history_export.path is set, the recorded history
// is written as Parquet before the repository is closed: to the storage
// connection named by history_export.storage_ref, or to the local path.
func NewManagedResultRepository(lc fx.Lifecycle, cfg *config.Config) (repository.ResultRepository, error) {
	repo, err := NewResultRepository(cfg)
	if err != nil {
		return nil, err
	}

	exportCfg := cfg.FLClient.Infrastructure.HistoryExport
	var exporter *export.ParquetResultExporter
	var conn storage.StorageConnection
	if exportCfg.Path != "" {
		exporter, err = export.NewParquetResultExporter(repo, exportCfg.CompressionType)
		if err != nil {
			_ = repo.Close()
			return nil, err
		}
		if exportCfg.StorageRef != "" {
			conn, err = storage.OpenNamed(context.Background(), cfg, exportCfg.StorageRef)
			if err != nil {
				_ = repo.Close()
				return nil, err
			}
		}
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			exportHistory(ctx, exporter, conn, exportCfg.Path)
			return repo.Close()
		},
	})
	return repo, nil
}

// exportHistory writes the Parquet export, logging failures. It closes conn when set.
func exportHistory(ctx context.Context, exporter *export.ParquetResultExporter, conn storage.StorageConnection, path string) {
	if exporter == nil {
		return
	}
	var err error
	if conn != nil {
		_, err = exporter.ExportTo(ctx, conn, "", path)
		if closeErr := conn.Close(); closeErr != nil {
			logger.Warnf("History: failed to close storage connection '%s': %v", conn.Name(), closeErr)
		}
	} else {
		_, err = exporter.ExportFile(ctx, path)
	}
	if err != nil {
		logger.Warnf("History: failed to export results to '%s': %v", path, err)
	}
}

// NewHistoryCallbackBuilder creates a CallbackBuilder for RecordingJobResultCallback.
// RecordedAt is stamped in flclient.system.timezone.
func NewHistoryCallbackBuilder(repo repository.ResultRepository) support.CallbackBuilder {
	return func(
		cfg *config.Config,
		_ map[string]string,
	) (port.JobResultCallback, error) {
		loc, err := cfg.FLClient.System.Location()
		if err != nil {
			return nil, err
		}
		return NewRecordingJobResultCallback(repo, WithLocation(loc)), nil
	}
}

// RegisterHistoryCallback registers the builder with the CallbackFactory.
func RegisterHistoryCallback(f *support.CallbackFactory, builder support.CallbackBuilder) {
	f.RegisterCallbackBuilder(BuilderName, builder)
	logger.Debugf("History callback registered with CallbackFactory.")
}

// Module provides the ResultRepository and registers the history callback builder.
var Module = fx.Options(
	fx.Provide(NewManagedResultRepository),
	fx.Provide(fx.Annotate(NewHistoryCallbackBuilder, fx.ResultTags(`name:"historyJobResultCallback"`))),
	fx.Invoke(fx.Annotate(RegisterHistoryCallback, fx.ParamTags(``, `name:"historyJobResultCallback"`))),
)
