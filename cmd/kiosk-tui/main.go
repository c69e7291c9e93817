package main

import (
	"flag"
	"log"
	"os"

	"avm-navigator/config"
	"avm-navigator/db"
	"avm-navigator/navigation"
	"avm-navigator/tui"

	"github.com/gdamore/tcell/v2"
)

func main() {
	logFile := flag.String("log", "kiosk-tui.log", "日志文件 (终端被界面占用)")
	flag.Parse()

	f, err := os.OpenFile(*logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.Fatalf("无法打开日志文件: %v", err)
	}
	defer f.Close()
	log.SetOutput(f)

	cfg := config.Load()
	cat, err := db.LoadConfiguredCatalog(cfg)
	if err != nil {
		log.Fatalf("加载目录失败: %v", err)
	}

	var opts []navigation.Option
	if cfg.InitialFloor != "" {
		opts = append(opts, navigation.WithInitialFloor(cfg.InitialFloor))
	}
	session, err := navigation.NewSession(cat, opts...)
	if err != nil {
		log.Fatalf("创建导航会话失败: %v", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("创建终端失败: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("初始化终端失败: %v", err)
	}
	defer screen.Fini()

	log.Printf("终端渲染端启动, 会话 %s", session.ID())
	tui.New(screen, session).Run()
}
