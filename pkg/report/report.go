package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/moyu-x/dupsweep/internal"
	"github.com/moyu-x/dupsweep/pkg/logger"
)

const (
	KindDuplicates = "duplicates"
	KindLargeFiles = "large"
)

// ScanRecord 一次扫描的摘要
type ScanRecord struct {
	ID         string    `gorm:"primaryKey"`
	Kind       string    `gorm:"index;not null"`
	Roots      string    `gorm:"not null"`
	Items      int       `gorm:"not null"`
	TotalBytes int64     `gorm:"not null"`
	CreatedAt  time.Time `gorm:"index;not null"`
}

func (ScanRecord) TableName() string {
	return "scans"
}

type GroupRecord struct {
	ID          int64  `gorm:"primaryKey"`
	ScanID      string `gorm:"index;not null"`
	Digest      string `gorm:"not null"`
	Category    string
	Reclaimable int64 `gorm:"not null"`
}

func (GroupRecord) TableName() string {
	return "duplicate_groups"
}

type MemberRecord struct {
	ID         int64  `gorm:"primaryKey"`
	GroupID    int64  `gorm:"index;not null"`
	Path       string `gorm:"not null"`
	Size       int64  `gorm:"not null"`
	Created    time.Time
	IsOriginal bool
}

func (MemberRecord) TableName() string {
	return "duplicate_members"
}

type LargeFileRecord struct {
	ID       int64  `gorm:"primaryKey"`
	ScanID   string `gorm:"index;not null"`
	Path     string `gorm:"not null"`
	Size     int64  `gorm:"not null"`
	Category string
	Modified time.Time
}

func (LargeFileRecord) TableName() string {
	return "large_files"
}

// Store 把扫描结果导出到 SQLite，只写不读回，不参与后续扫描
type Store struct {
	db *gorm.DB
}

func Open(dbPath string) (*Store, error) {
	expandedPath, err := ExpandPath(dbPath)
	if err != nil {
		return nil, fmt.Errorf("扩展数据库路径失败: %w", err)
	}

	logger.Get().Debug().Msgf("打开报告数据库: %s", expandedPath)

	if err := os.MkdirAll(filepath.Dir(expandedPath), 0755); err != nil {
		return nil, fmt.Errorf("创建数据库目录失败: %w", err)
	}

	dsn := expandedPath + "?_journal_mode=WAL"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("打开数据库连接失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取数据库连接失败: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if err := db.AutoMigrate(&ScanRecord{}, &GroupRecord{}, &MemberRecord{}, &LargeFileRecord{}); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("创建数据库表失败: %w", err)
	}

	return &Store{db: db}, nil
}

// ExpandPath 把开头的 ~/ 展开为用户目录
func ExpandPath(path string) (string, error) {
	if len(path) >= 2 && path[0] == '~' && (path[1] == '/' || path[1] == '\\') {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}

func newScan(kind string, roots []string, items int, total int64) ScanRecord {
	return ScanRecord{
		ID:         uuid.NewString(),
		Kind:       kind,
		Roots:      joinRoots(roots),
		Items:      items,
		TotalBytes: total,
		CreatedAt:  time.Now(),
	}
}

// SaveDuplicates 保存一次重复文件扫描，返回扫描 ID
func (s *Store) SaveDuplicates(roots []string, groups []internal.DuplicateGroup) (string, error) {
	var reclaimable int64
	for _, g := range groups {
		reclaimable += g.ReclaimableSize()
	}
	scan := newScan(KindDuplicates, roots, len(groups), reclaimable)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&scan).Error; err != nil {
			return err
		}
		for _, g := range groups {
			group := GroupRecord{
				ScanID:      scan.ID,
				Digest:      g.Digest,
				Category:    g.Category,
				Reclaimable: g.ReclaimableSize(),
			}
			if err := tx.Create(&group).Error; err != nil {
				return err
			}

			members := make([]MemberRecord, len(g.Files))
			for i, f := range g.Files {
				members[i] = MemberRecord{
					GroupID:    group.ID,
					Path:       f.Path,
					Size:       f.Size,
					Created:    f.Created,
					IsOriginal: f.IsOriginal,
				}
			}
			if len(members) > 0 {
				if err := tx.Create(&members).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("保存重复文件报告失败: %w", err)
	}

	logger.Get().Info().Msgf("已保存扫描报告: %s（%d 组）", scan.ID, len(groups))
	return scan.ID, nil
}

// SaveLargeFiles 保存一次大文件扫描，返回扫描 ID
func (s *Store) SaveLargeFiles(roots []string, files []internal.LargeFile) (string, error) {
	var total int64
	for _, f := range files {
		total += f.Size
	}
	scan := newScan(KindLargeFiles, roots, len(files), total)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&scan).Error; err != nil {
			return err
		}
		if len(files) == 0 {
			return nil
		}
		records := make([]LargeFileRecord, len(files))
		for i, f := range files {
			records[i] = LargeFileRecord{
				ScanID:   scan.ID,
				Path:     f.Path,
				Size:     f.Size,
				Category: f.Category,
				Modified: f.Modified,
			}
		}
		return tx.Create(&records).Error
	})
	if err != nil {
		return "", fmt.Errorf("保存大文件报告失败: %w", err)
	}

	logger.Get().Info().Msgf("已保存扫描报告: %s（%d 个文件）", scan.ID, len(files))
	return scan.ID, nil
}

// Scans 按时间倒序返回最近的扫描记录，limit <= 0 表示不限制
func (s *Store) Scans(limit int) ([]ScanRecord, error) {
	var scans []ScanRecord
	q := s.db.Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&scans).Error; err != nil {
		return nil, fmt.Errorf("查询扫描记录失败: %w", err)
	}
	return scans, nil
}

// Members 返回某次重复文件扫描的所有成员，按组和组内顺序排列
func (s *Store) Members(scanID string) ([]MemberRecord, error) {
	var members []MemberRecord
	err := s.db.
		Joins("JOIN duplicate_groups ON duplicate_groups.id = duplicate_members.group_id").
		Where("duplicate_groups.scan_id = ?", scanID).
		Order("duplicate_members.group_id, duplicate_members.id").
		Find(&members).Error
	if err != nil {
		return nil, fmt.Errorf("查询重复文件失败: %w", err)
	}
	return members, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("获取数据库连接失败: %w", err)
	}
	return sqlDB.Close()
}
