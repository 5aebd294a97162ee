package database

import (
	"fmt"

	"github.com/BinLe1988/reply-assist/configs"
	"github.com/BinLe1988/reply-assist/models"
	"github.com/BinLe1988/reply-assist/pkg/logger"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Initialize 初始化数据库连接并迁移状态表
func Initialize(dbConfig configs.Database, log *logger.Logger) (*gorm.DB, error) {
	var dsn string
	var dialector gorm.Dialector

	switch dbConfig.Driver {
	case "sqlite", "":
		dsn = dbConfig.Path
		if dsn == "" {
			dsn = "reply_assist.db"
		}
		dialector = sqlite.Open(dsn)
	case "mysql":
		dsn = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			dbConfig.User, dbConfig.Password, dbConfig.Host, dbConfig.Port, dbConfig.DBName)
		dialector = mysql.Open(dsn)
	case "postgres":
		dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			dbConfig.Host, dbConfig.Port, dbConfig.User, dbConfig.Password, dbConfig.DBName)
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", dbConfig.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", dbConfig.Driver, err)
	}

	// 自动迁移状态表
	if err := db.AutoMigrate(&models.StateEntry{}); err != nil {
		return nil, fmt.Errorf("migrate state table: %w", err)
	}

	log.Info("Database connected", "driver", dbConfig.Driver)
	return db, nil
}

// Close 关闭数据库连接
func Close(db *gorm.DB, log *logger.Logger) {
	if db == nil {
		return
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Error("Failed to get database connection", "error", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Error("Failed to close database connection", "error", err)
	}
}
