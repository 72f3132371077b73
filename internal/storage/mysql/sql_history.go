package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"ChainPort/internal/chain"
)

// Config 描述 MySQL 连接池的参数。
type Config struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// SQLHistory 使用真实的 MySQL 数据库存储探测历史。
type SQLHistory struct {
	db *sql.DB
}

// NewSQLHistory 创建连接池并执行迁移。
func NewSQLHistory(ctx context.Context, cfg Config) (*SQLHistory, error) {
	db, err := openDatabase(ctx, cfg)
	if err != nil {
		return nil, err
	}
	repo := &SQLHistory{db: db}
	if err := repo.runMigrations(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return repo, nil
}

func openDatabase(ctx context.Context, cfg Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DSN) == "" {
		return nil, fmt.Errorf("MySQL DSN 不能为空")
	}

	db, err := sql.Open("mysql", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("连接 MySQL 失败: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	} else {
		db.SetMaxOpenConns(20)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	} else {
		db.SetMaxIdleConns(10)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	} else {
		db.SetConnMaxLifetime(30 * time.Minute)
	}
	if cfg.ConnMaxIdleTime > 0 {
		db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("无法连接到 MySQL: %w", err)
	}
	return db, nil
}

// Record 将探测记录写入 MySQL。
func (s *SQLHistory) Record(ctx context.Context, record ProbeRecord) error {
	const stmt = `INSERT INTO probe_results
        (run_id, chain_id, status, provider, latency_ms, block_number, detail, observed_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	if _, err := s.db.ExecContext(ctx, stmt,
		record.RunID,
		record.ChainID,
		string(record.Status),
		record.Provider,
		record.LatencyMS,
		record.BlockNumber,
		record.Detail,
		record.ObservedAt.Unix(),
	); err != nil {
		return fmt.Errorf("写入探测记录失败: %w", err)
	}
	return nil
}

// Recent 查询某条链最近的若干条探测记录。
func (s *SQLHistory) Recent(ctx context.Context, chainID uint64, limit int) ([]ProbeRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `SELECT run_id, chain_id, status, provider, latency_ms, block_number, detail, observed_at
        FROM probe_results WHERE chain_id = ? ORDER BY id DESC LIMIT ?`, chainID, limit)
	if err != nil {
		return nil, fmt.Errorf("查询探测记录失败: %w", err)
	}
	defer rows.Close()

	var records []ProbeRecord
	for rows.Next() {
		var record ProbeRecord
		var status string
		var observedAt int64
		if err := rows.Scan(&record.RunID, &record.ChainID, &status, &record.Provider,
			&record.LatencyMS, &record.BlockNumber, &record.Detail, &observedAt); err != nil {
			return nil, fmt.Errorf("解析探测记录失败: %w", err)
		}
		record.Status = chain.Status(status)
		record.ObservedAt = time.Unix(observedAt, 0).UTC()
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("遍历探测记录失败: %w", err)
	}
	return records, nil
}

// Close 关闭底层数据库连接。
func (s *SQLHistory) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
