package main

import (
	"fmt"
	"log"

	"avm-navigator/config"
	"avm-navigator/db"
	"avm-navigator/handler"
	"avm-navigator/model"
	"avm-navigator/navigation"

	"github.com/gin-gonic/gin"
)

func main() {
	fmt.Println("=== AVM Navigator - Kiosk 导航服务 ===")

	// 1. 读取配置 (.env + 环境变量)
	cfg := config.Load()

	// 2. 加载目录数据 (内置 / JSON / PostgreSQL), 之后只读
	fmt.Printf("正在加载目录 (%s)...\n", cfg.CatalogSource)
	cat, err := db.LoadConfiguredCatalog(cfg)
	if err != nil {
		log.Fatalf("加载目录失败: %v", err)
	}
	fmt.Printf("目录加载成功! 楼层数: %d\n", len(cat.Floors()))

	// 3. 创建 kiosk 唯一的导航会话
	var opts []navigation.Option
	if cfg.InitialFloor != "" {
		opts = append(opts, navigation.WithInitialFloor(cfg.InitialFloor))
	}
	session, err := navigation.NewSession(cat, opts...)
	if err != nil {
		log.Fatalf("创建导航会话失败: %v", err)
	}

	// 4. 渲染端配对 (未配置密码哈希时不需要令牌)
	var auth *handler.Auth
	if cfg.Auth.PasswordHash != "" {
		auth = handler.NewAuth(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, model.Operator{
			Username: cfg.Auth.Operator,
			Password: cfg.Auth.PasswordHash,
		})
	} else {
		log.Println("警告: 未设置 OPERATOR_PASSWORD_HASH, 修改选择的接口不需要认证")
	}

	// 5. 初始化 Gin 引擎并配置路由
	r := gin.Default()
	setupRoutes(r, cfg, handler.NewKiosk(session, auth))

	// 6. 启动服务器
	fmt.Println("\n服务器启动中...")
	fmt.Printf("访问地址: http://localhost%s\n", cfg.Addr)
	fmt.Println("API 文档:")
	fmt.Println("  - GET    /api/floors                     - 楼层列表")
	fmt.Println("  - GET    /api/floors/:floor/destinations - 楼层店铺")
	fmt.Println("  - GET    /api/directory                  - 扶梯/入口目录")
	fmt.Println("  - GET    /api/state                      - 当前状态")
	fmt.Println("  - POST   /api/pair                       - 渲染端配对")
	fmt.Println("  - POST   /api/selection/floor            - 切换楼层")
	fmt.Println("  - POST   /api/selection/destination      - 选择目的地")
	fmt.Println("  - GET    /ws                             - 状态推送")
	fmt.Println("\n按 Ctrl+C 退出")

	if err := r.Run(cfg.Addr); err != nil {
		log.Fatalf("服务器启动失败: %v", err)
	}
}

// setupRoutes 配置路由
func setupRoutes(r *gin.Engine, cfg *config.Config, kiosk *handler.Kiosk) {
	// CORS 跨域中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	// 静态文件服务 - 提供渲染端页面和平面图
	r.Static("/static", cfg.StaticDir)

	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
			"status":  "ok",
		})
	})

	// 根路径重定向到渲染端页面
	r.GET("/", func(c *gin.Context) {
		c.Redirect(302, "/static/index.html")
	})

	kiosk.RegisterRoutes(r)
}
