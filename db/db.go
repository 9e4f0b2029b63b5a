package db

import (
	"github.com/pkg/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/xandnet/peerwatch/models"
)

var DB *gorm.DB

// ConnectDatabase opens (or creates) the sqlite database at the given
// path and migrates the history tables.
func ConnectDatabase(path string) error {
	database, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return errors.Wrap(err, "failed to open database")
	}

	if err := database.AutoMigrate(&models.PeerRecord{}); err != nil {
		return errors.Wrap(err, "failed to migrate peer history table")
	}
	if err := database.AutoMigrate(&models.SnapshotRecord{}); err != nil {
		return errors.Wrap(err, "failed to migrate snapshot history table")
	}

	DB = database
	return nil
}
