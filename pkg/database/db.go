package database

import (
	"context"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/PrinceKarma/swe-642-hw3/config"
)

const pingTimeout = 5 * time.Second

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// NewSQLite 打开纯 Go 实现的 SQLite（本地开发与测试），path 可为 ":memory:" 或 file: URI
// SQLite 只允许单写连接，连接池固定为 1
func NewSQLite(path string, level gormlogger.LogLevel) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), gormConfig(level))
	if err != nil {
		return nil, fmt.Errorf("打开 SQLite 失败: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取底层 sql.DB 失败: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

func gormConfig(level gormlogger.LogLevel) *gorm.Config {
	return &gorm.Config{
		Logger: gormlogger.Default.LogMode(level),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// NewDB 按 cfg.Driver 初始化数据库连接（postgres / sqlite）
func NewDB(cfg *config.DatabaseConfig, logLevel string, logger *zap.Logger) (*gorm.DB, error) {
	if cfg.Driver == DriverSQLite {
		db, err := NewSQLite(cfg.Path, gormLogLevel(logLevel))
		if err != nil {
			return nil, err
		}
		logger.Info("数据库连接成功", zap.String("driver", DriverSQLite), zap.String("path", cfg.Path))
		return db, nil
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormConfig(gormLogLevel(logLevel)))
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取底层 sql.DB 失败: %w", err)
	}

	// 连接池（配置缺省时回落到 25/10）
	maxOpen := cfg.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = 25
	}
	maxIdle := cfg.MaxIdleConns
	if maxIdle <= 0 {
		maxIdle = 10
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxIdle)
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)
	}
	if cfg.ConnMaxIdleTime > 0 {
		sqlDB.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTime) * time.Minute)
	}

	if err := Ping(context.Background(), db); err != nil {
		return nil, err
	}

	logger.Info("数据库连接成功",
		zap.String("driver", DriverPostgres),
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("dbname", cfg.Name),
	)

	return db, nil
}

// Ping 带超时的数据库健康检查
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("获取底层 sql.DB 失败: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("数据库 ping 失败: %w", err)
	}
	return nil
}

// gormLogLevel SQL 日志仅在 debug 级别打开，避免把请求数据写进日志
func gormLogLevel(level string) gormlogger.LogLevel {
	switch level {
	case "debug":
		return gormlogger.Info
	case "error":
		return gormlogger.Error
	default:
		return gormlogger.Warn
	}
}
