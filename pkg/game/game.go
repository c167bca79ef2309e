// Package game 把输入、采样、粒子和渲染组装成可运行的游戏循环
package game

import (
	"fmt"
	"log"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/decker502/glowtrail/internal/gradient"
	"github.com/decker502/glowtrail/pkg/clock"
	"github.com/decker502/glowtrail/pkg/config"
	"github.com/decker502/glowtrail/pkg/particles"
	"github.com/decker502/glowtrail/pkg/systems"
	"github.com/decker502/glowtrail/pkg/trail"
	"github.com/decker502/glowtrail/pkg/utils"
)

// 数字键 1~4 对应的绘制模式
var drawModes = [...]config.DrawMode{
	config.DrawModeOff,
	config.DrawModeRect,
	config.DrawModeCircle,
	config.DrawModeArrow,
}

// Game 顶层 ebiten.Game 实现
//
// 每个 tick：取最新配置快照、采集输入、处理热键、驱动采样器，
// 再把采样器产生的事件转给音效。绘制阶段没有任何可见内容时
// 直接跳过，屏幕保持透明。
type Game struct {
	clk      *clock.PausableClock
	store    *config.Store
	sampler  *trail.Sampler
	part     *particles.System
	trailR   *systems.TrailRenderSystem
	partR    *systems.ParticleRenderSystem
	audio    *AudioManager
	settings *SettingsManager

	// ApplyConfig 可能来自其他 goroutine，经 atomic 中转后
	// 在 tick 开头一次性取用，整个 tick 使用同一份快照
	pending atomic.Pointer[config.Config]
	cfg     *config.Config
	model   gradient.Model

	pauseToggled bool
	showHUD      bool

	// 输入采集函数，测试时注入构造好的快照
	readInput func() utils.InputState
}

// New 创建游戏实例
// 配置快照经 store.Watch(g) 送达，调用方负责注册
func New(clk *clock.PausableClock, store *config.Store, part *particles.System, settings *SettingsManager, audio *AudioManager) *Game {
	return &Game{
		clk:       clk,
		store:     store,
		sampler:   trail.NewSampler(clk, part),
		part:      part,
		trailR:    systems.NewTrailRenderSystem(),
		partR:     systems.NewParticleRenderSystem(),
		audio:     audio,
		settings:  settings,
		readInput: utils.ReadInputState,
	}
}

// ApplyConfig 接收新的配置快照（config.Watcher 实现）
func (g *Game) ApplyConfig(cfg *config.Config) {
	g.pending.Store(cfg)
}

// refreshConfig 在 tick 开头取用最新快照，变更时重建渐变模型
func (g *Game) refreshConfig() {
	next := g.pending.Load()
	if next == nil {
		next = config.Default()
		g.pending.Store(next)
	}
	if next != g.cfg {
		g.cfg = next
		g.model = next.Model()
	}
}

// Update 处理一帧逻辑
func (g *Game) Update() error {
	g.refreshConfig()
	in := g.readInput()
	if in.Quit {
		return ebiten.Termination
	}
	g.handleKeys(in)

	ev := g.sampler.Update(in, g.cfg)

	g.audio.SetEnabled(g.cfg.SoundEnabled)
	if ev.BurstFired {
		g.audio.PlayBurst()
	}
	if ev.ShapeStamped {
		g.audio.PlayStamp()
	}
	return nil
}

// handleKeys 处理暂停与配置热键
func (g *Game) handleKeys(in utils.InputState) {
	if in.TogglePause {
		g.pauseToggled = !g.pauseToggled
	}
	// 按住 Shift 与 Space 切换共用同一个冻结时钟
	g.clk.SetPaused(g.pauseToggled || in.PauseHeld)

	if in.ToggleHUD {
		g.showHUD = !g.showHUD
	}
	if in.ToggleSound {
		g.publishChange(func(c *config.Config) {
			c.SoundEnabled = !c.SoundEnabled
		})
	}
	if in.ModeKey >= 0 && in.ModeKey < len(drawModes) {
		mode := drawModes[in.ModeKey]
		if mode != g.cfg.DrawMode {
			log.Printf("[Game] draw mode -> %s", mode)
			g.publishChange(func(c *config.Config) {
				c.DrawMode = mode
			})
		}
	}
}

// publishChange 基于当前快照派生新配置并发布、持久化
func (g *Game) publishChange(mutate func(*config.Config)) {
	cp := *g.cfg
	mutate(&cp)
	g.store.Publish(&cp)
	if err := g.settings.Save(&cp); err != nil {
		log.Printf("[Game] Warning: failed to save settings: %v", err)
	}
	// 发布会经 ApplyConfig 回流，本 tick 立即采用
	g.refreshConfig()
}

// SetPaused 切换逻辑时钟的暂停状态，供窗口外的控制通道使用
func (g *Game) SetPaused(paused bool) {
	g.pauseToggled = paused
	g.clk.SetPaused(paused)
}

// HasVisibleContent 报告是否存在任何需要绘制的内容
func (g *Game) HasVisibleContent() bool {
	return g.sampler.Buffer().Len() > 0 ||
		g.sampler.Preview().Len() > 0 ||
		g.part.HasParticles()
}

// Draw 绘制一帧
func (g *Game) Draw(screen *ebiten.Image) {
	if g.cfg == nil {
		return
	}
	// 空闲时整帧跳过，叠加层保持完全透明
	if !g.HasVisibleContent() && !g.showHUD {
		return
	}

	g.trailR.Draw(screen, g.sampler.Buffer(), g.cfg, g.model)
	g.trailR.Draw(screen, g.sampler.Preview(), g.cfg, g.model)
	g.partR.Draw(screen, g.part)

	if g.showHUD {
		g.drawHUD(screen)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	msg := fmt.Sprintf("TPS: %.0f\nMode: %s  Paused: %v\nPoints: %d  Sparks: %d  Crystals: %d",
		ebiten.ActualTPS(), g.cfg.DrawMode, g.clk.IsPaused(),
		g.sampler.Buffer().Len(), g.part.SparkCount(), g.part.CrystalCount())
	ebitenutil.DebugPrintAt(screen, msg, 8, 8)
}

// Layout 返回固定的逻辑分辨率
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.WindowWidth, config.WindowHeight
}
