package db

import (
	// 外部依赖
	"context"
	"fmt"
	"log"
	"time"

	postgres "gorm.io/driver/postgres"
	sqlite "gorm.io/driver/sqlite"
	gorm "gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type Driver string

const (
	DriverPostgres Driver = "postgres"
	DriverSqlite   Driver = "sqlite"
)

type LogConf struct {
	Level string
}

type Config struct {
	Driver Driver
	// sqlite
	Path string
	// postgres
	Host    string
	Port    int
	User    string
	PW      string
	DBName  string
	LogConf LogConf
}

type Datastore struct {
	db *gorm.DB
}

var global *Datastore

type txKey struct{}

// InitDB opens the configured database and keeps the handle process-wide.
// The sqlite driver serializes writers at the file level, which is all the
// single-writer model needs; postgres is for shared deployments.
func InitDB(_ context.Context, conf *Config) {
	var dialector gorm.Dialector
	switch conf.Driver {
	case DriverPostgres:
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
			conf.Host, conf.Port, conf.User, conf.PW, conf.DBName)
		dialector = postgres.Open(dsn)
	default:
		dialector = sqlite.Open(conf.Path)
	}

	logLevel := gormlogger.Warn
	if conf.LogConf.Level == "debug" {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		log.Fatalf("open database err: %+v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("get database handle err: %+v", err)
	}
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)

	global = &Datastore{db: db}
}

func CloseDB(_ context.Context) {
	if global == nil {
		return
	}
	if sqlDB, err := global.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	global = nil
}

func DB() *Datastore {
	return global
}

// DBIns exposes the raw handle for migrations.
func (d *Datastore) DBIns() *gorm.DB {
	return d.db
}

// DBWithContext returns the transaction bound to ctx by ExecTx, or the root
// handle. Repos always go through here so the same code runs inside and
// outside a transaction.
func (d *Datastore) DBWithContext(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return d.db.WithContext(ctx)
}

// ExecTx runs fn inside one transaction, binding it to the derived context.
func (d *Datastore) ExecTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return d.DBWithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}
