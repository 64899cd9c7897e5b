// Package dbtest 为测试提供独立的内存 SQLite 数据库与常用数据
package dbtest

import (
	"RedBlack/internal/api/config"
	"RedBlack/internal/model"
	"RedBlack/internal/pkg/database"
	"RedBlack/internal/repository"
	"context"
	"os"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// New 每次调用返回一个全新的库，单连接保证事务串行
func New(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := database.NewGormDB(&config.DBConfig{
		Driver:      "sqlite",
		DSN:         "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		MaxIdle:     1,
		MaxOpen:     1,
		AutoMigrate: true,
	})
	require.NoError(t, err)

	t.Cleanup(func() { closeDB(db) })
	return db
}

// MySQLDSNEnv 指向一个可建库的 MySQL 实例，未设置时 NewMySQL 跳过测试
const MySQLDSNEnv = "REDBLACK_TEST_MYSQL_DSN"

// NewMySQL 在 MySQLDSNEnv 指向的实例上为当前测试建一个独立的库，测试结束后删除。
// maxOpen 大于 1 时事务真正并发，行锁与相对更新在此之上生效。
func NewMySQL(t testing.TB, maxOpen int) *gorm.DB {
	t.Helper()

	dsn := os.Getenv(MySQLDSNEnv)
	if dsn == "" {
		t.Skipf("%s not set", MySQLDSNEnv)
	}
	base, err := mysql.ParseDSN(dsn)
	require.NoError(t, err)
	base.ParseTime = true

	admin, err := database.NewGormDB(&config.DBConfig{Driver: "mysql", DSN: base.FormatDSN(), MaxIdle: 1, MaxOpen: 1})
	require.NoError(t, err)
	name := "redblack_test_" + uuid.NewString()[:8]
	require.NoError(t, admin.Exec("CREATE DATABASE `"+name+"` CHARACTER SET utf8mb4").Error)
	t.Cleanup(func() {
		_ = admin.Exec("DROP DATABASE `" + name + "`").Error
		closeDB(admin)
	})

	cfg := base.Clone()
	cfg.DBName = name
	db, err := database.NewGormDB(&config.DBConfig{
		Driver:      "mysql",
		DSN:         cfg.FormatDSN(),
		MaxIdle:     maxOpen,
		MaxOpen:     maxOpen,
		AutoMigrate: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { closeDB(db) })
	return db
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func SeedUser(t testing.TB, db *gorm.DB, name string) *model.User {
	t.Helper()
	u := &model.User{Email: name + "@example.com", Name: name}
	require.NoError(t, repository.NewUserRepo(db).CreateUser(context.Background(), u))
	return u
}

func SeedMerchant(t testing.TB, db *gorm.DB, owner *model.User, slug string) *model.Merchant {
	t.Helper()
	m := &model.Merchant{
		UserID:      owner.ID,
		Slug:        slug,
		DisplayName: owner.Name + " 的店",
		Category:    "餐饮",
		Location:    "上海",
		Highlights:  []string{},
	}
	require.NoError(t, db.Create(m).Error)
	require.NoError(t, db.Model(owner).Update("is_merchant", true).Error)
	return m
}

func SeedPost(t testing.TB, db *gorm.DB, author *model.User, title string) *model.Post {
	t.Helper()
	p := &model.Post{
		UserID:  author.ID,
		Title:   title,
		Content: "这是一段足够长的曝光帖子正文内容。",
		Tags:    []string{"曝光"},
	}
	require.NoError(t, db.Omit("User", "Images").Create(p).Error)
	return p
}
