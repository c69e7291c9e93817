package db

import (
	"fmt"
	"log"
	"time"

	"avm-navigator/catalog"
	"avm-navigator/config"
	"avm-navigator/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open 连接 PostgreSQL, 自动迁移目录表结构
// 如果是第一次运行, 会把 seedFile 的数据导入数据库
func Open(cfg *config.Config, seedFile string) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=Europe/Istanbul",
		cfg.Database.Host, cfg.Database.User, cfg.Database.Password, cfg.Database.Name, cfg.Database.Port,
	)

	// 带重试的数据库连接 (Docker 启动时数据库可能还没准备好)
	var db *gorm.DB
	var err error
	maxRetries := cfg.Database.MaxRetries
	if maxRetries < 1 {
		maxRetries = 1
	}
	for i := 0; i < maxRetries; i++ {
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err == nil {
			break
		}
		log.Printf("等待数据库就绪... (%d/%d): %v", i+1, maxRetries, err)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("无法连接数据库: %w", err)
	}

	if err := db.AutoMigrate(&model.CatalogMeta{}, &model.WaypointRow{}, &model.PointRow{}); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	// 检查是否需要导入初始数据
	var metaCount int64
	db.Model(&model.CatalogMeta{}).Count(&metaCount)
	if metaCount == 0 {
		log.Printf("检测到数据库为空，正在导入 %s...", seedFile)
		if err := importCatalog(db, seedFile); err != nil {
			log.Printf("警告: 导入目录数据失败: %v", err)
		} else {
			log.Println("目录数据导入成功!")
		}
	}

	log.Println("数据库连接并初始化成功！")
	return db, nil
}

// LoadCatalog 从数据库构建只读目录
func LoadCatalog(db *gorm.DB) (*catalog.Catalog, error) {
	var meta model.CatalogMeta
	if err := db.First(&meta).Error; err != nil {
		return nil, fmt.Errorf("读取目录信息失败: %w", err)
	}

	var waypoints []model.WaypointRow
	if err := db.Order("kind, position").Find(&waypoints).Error; err != nil {
		return nil, fmt.Errorf("读取地标失败: %w", err)
	}

	var points []model.PointRow
	if err := db.Find(&points).Error; err != nil {
		return nil, fmt.Errorf("读取兴趣点失败: %w", err)
	}

	return catalog.New(FromRows(meta, waypoints, points))
}

// importCatalog 从 JSON 文件导入目录数据到数据库
func importCatalog(db *gorm.DB, filepath string) error {
	cat, err := catalog.LoadFromJSON(filepath)
	if err != nil {
		return err
	}

	meta, waypoints, points := ToRows(cat.Data())
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&meta).Error; err != nil {
			return fmt.Errorf("插入目录信息失败: %w", err)
		}
		if len(waypoints) > 0 {
			if err := tx.CreateInBatches(waypoints, 100).Error; err != nil {
				return fmt.Errorf("插入地标失败: %w", err)
			}
			log.Printf("导入了 %d 个地标", len(waypoints))
		}
		if len(points) > 0 {
			if err := tx.CreateInBatches(points, 100).Error; err != nil {
				return fmt.Errorf("插入兴趣点失败: %w", err)
			}
			log.Printf("导入了 %d 个兴趣点", len(points))
		}
		return nil
	})
}
