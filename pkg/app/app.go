// Package app 提供应用的装配与启动入口
//
// 该包把设置加载、配置仓库、粒子系统和游戏循环的组装从 main 包
// 提取出来，入口文件只负责解析命令行参数。
package app

import (
	"fmt"
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/quasilyte/gdata/v2"

	"github.com/decker502/glowtrail/pkg/clock"
	"github.com/decker502/glowtrail/pkg/config"
	"github.com/decker502/glowtrail/pkg/game"
	"github.com/decker502/glowtrail/pkg/particles"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
}

// NewGame 装配完整的引擎但不进入游戏循环
//
// 返回的清理函数停止粒子物理 goroutine 并释放音频设备。
// 供自带事件循环的宿主（如 ebitenmobile 绑定）直接驱动 ebiten.Game。
// 粒子物理 goroutine 启动失败视为致命错误；存储不可用只会让
// 设置无法持久化，应用照常运行。
func NewGame(cfg Config) (*game.Game, func(), error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	// 打开跨平台存储；失败时降级为仅内存配置
	manager, err := gdata.Open(gdata.Config{AppName: "glowtrail"})
	if err != nil {
		log.Printf("[App] Warning: gdata unavailable: %v (settings will not persist)", err)
		manager = nil
	}
	settings, err := game.NewSettingsManager(manager)
	if err != nil {
		log.Printf("[App] Warning: %v", err)
	}

	store := config.NewStore(settings.Config())
	clk := clock.New()

	system := particles.NewSystem(clk)
	store.Watch(system)

	audio := game.NewAudioManager()
	g := game.New(clk, store, system, settings, audio)
	store.Watch(g)

	if err := system.Start(); err != nil {
		return nil, nil, fmt.Errorf("start particle physics: %w", err)
	}
	cleanup := func() {
		system.Close()
		audio.Close()
	}
	return g, cleanup, nil
}

// Run 装配并运行整个应用，阻塞到窗口退出
func Run(cfg Config) error {
	g, cleanup, err := NewGame(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	// 无边框浮动窗口加透明背景，尽量接近桌面叠加层的形态
	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowTitle("GlowTrail")
	ebiten.SetWindowDecorated(false)
	ebiten.SetWindowFloating(true)
	log.Printf("[App] ready: hold Ctrl and move the pointer to draw")

	op := &ebiten.RunGameOptions{ScreenTransparent: true}
	if err := ebiten.RunGameWithOptions(g, op); err != nil {
		return fmt.Errorf("game loop: %w", err)
	}
	return nil
}
