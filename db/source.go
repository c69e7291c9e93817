package db

import (
	"fmt"

	"avm-navigator/catalog"
	"avm-navigator/config"
)

// LoadConfiguredCatalog 按 CATALOG_SOURCE 构建目录
func LoadConfiguredCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	switch cfg.CatalogSource {
	case config.SourceBuiltin:
		return catalog.New(catalog.DefaultData())
	case config.SourceJSON:
		return catalog.LoadFromJSON(cfg.CatalogFile)
	case config.SourcePostgres:
		gdb, err := Open(cfg, cfg.CatalogFile)
		if err != nil {
			return nil, err
		}
		// 目录在启动时读取一次, 之后不再访问数据库
		if sqlDB, err := gdb.DB(); err == nil {
			defer sqlDB.Close()
		}
		return LoadCatalog(gdb)
	default:
		return nil, fmt.Errorf("%w: 未知的目录来源 %q", catalog.ErrConfiguration, cfg.CatalogSource)
	}
}
