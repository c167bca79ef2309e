// Package particles 维护火花与水晶两类粒子的状态和物理模拟
//
// 生成请求来自采样器（游戏 tick），物理推进在独立的后台 goroutine
// 中按固定节拍进行，渲染线程只在持锁期间遍历粒子。三方共享一把互斥锁。
// 所有年龄都基于可暂停的逻辑时钟，冻结期间粒子静止但仍会剔除过期个体。
package particles

import (
	"errors"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aquilax/go-perlin"

	"github.com/decker502/glowtrail/pkg/clock"
	"github.com/decker502/glowtrail/pkg/config"
)

const (
	// 后台物理节拍
	physicsTick        = 16 * time.Millisecond
	physicsStepSeconds = 0.016
	// 单步时长上限，防止停顿后粒子瞬移
	maxStepSeconds = 0.1
)

// Perlin 噪声形状参数
const (
	noiseAlpha   = 2.0
	noiseBeta    = 2.0
	noiseOctaves = 3
)

// System 持有全部存活粒子并驱动它们的物理模拟
type System struct {
	clk *clock.PausableClock
	cfg atomic.Pointer[config.Config]

	mu       sync.Mutex
	sparks   []Spark
	crystals []Crystal
	noise    *perlin.Perlin
	lastStep time.Time

	running bool
	stop    chan struct{}
	wg      sync.WaitGroup
}

// NewSystem 创建粒子系统，使用出厂配置直到收到快照
func NewSystem(clk *clock.PausableClock) *System {
	s := &System{
		clk:      clk,
		sparks:   make([]Spark, 0, 512),
		crystals: make([]Crystal, 0, 512),
		noise:    perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctaves, time.Now().UnixNano()),
	}
	s.cfg.Store(config.Default())
	return s
}

// ApplyConfig 接收新的配置快照（config.Watcher 实现）
func (s *System) ApplyConfig(cfg *config.Config) {
	s.cfg.Store(cfg)
}

// Start 启动后台物理 goroutine
// 重复启动返回错误；上层应将其视为致命的启动失败
func (s *System) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return errors.New("particles: physics loop already running")
	}
	s.running = true
	s.stop = make(chan struct{})
	s.lastStep = s.clk.Now()

	s.wg.Add(1)
	go s.loop()
	log.Printf("[Particles] physics loop started (tick %v)", physicsTick)
	return nil
}

// Close 停止后台 goroutine 并等待其退出，可安全重复调用
func (s *System) Close() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	close(s.stop)
	s.wg.Wait()
	log.Printf("[Particles] physics loop stopped")
}

func (s *System) loop() {
	defer s.wg.Done()
	ticker := time.NewTicker(physicsTick)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.advance(s.clk.Now())
		}
	}
}

// advance 执行一个物理步
//
// dt 来自逻辑时钟：暂停期间时钟冻结，dt 为 0，此时只剔除
// 已经过期的粒子而不做任何积分，位置与年龄保持原样。
func (s *System) advance(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dt := now.Sub(s.lastStep).Seconds()
	s.lastStep = now
	if dt <= 0 {
		s.expireLocked(now)
		return
	}
	if dt > maxStepSeconds {
		dt = maxStepSeconds
	}
	s.stepSparksLocked(now, dt)
	s.stepCrystalsLocked(now, dt)
}

// expireLocked 只做过期剔除，不推进物理
func (s *System) expireLocked(now time.Time) {
	n := 0
	for i := range s.sparks {
		if now.Sub(s.sparks[i].CreatedAt).Seconds() < s.sparks[i].Life {
			s.sparks[n] = s.sparks[i]
			n++
		}
	}
	s.sparks = s.sparks[:n]

	m := 0
	for i := range s.crystals {
		if now.Sub(s.crystals[i].CreatedAt).Seconds() < s.crystals[i].Life {
			s.crystals[m] = s.crystals[i]
			m++
		}
	}
	s.crystals = s.crystals[:m]
}

// EachSpark 持锁遍历所有存活火花
// 回调收到粒子指针和当前寿命比例 [0, 1)；回调内不得再调用本系统的方法
func (s *System) EachSpark(fn func(sp *Spark, lifeRatio float64)) {
	now := s.clk.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.sparks {
		sp := &s.sparks[i]
		lr := now.Sub(sp.CreatedAt).Seconds() / sp.Life
		if lr < 0 || lr >= 1 {
			continue
		}
		fn(sp, lr)
	}
}

// EachCrystal 持锁遍历所有存活水晶，约定同 EachSpark
func (s *System) EachCrystal(fn func(c *Crystal, lifeRatio float64)) {
	now := s.clk.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.crystals {
		c := &s.crystals[i]
		lr := now.Sub(c.CreatedAt).Seconds() / c.Life
		if lr < 0 || lr >= 1 {
			continue
		}
		fn(c, lr)
	}
}

// SparkCount 返回存活火花数量
func (s *System) SparkCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sparks)
}

// CrystalCount 返回存活水晶数量
func (s *System) CrystalCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.crystals)
}

// HasParticles 报告是否还有任何存活粒子，用于跳帧判定
func (s *System) HasParticles() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sparks) > 0 || len(s.crystals) > 0
}

// Reset 清空全部粒子
func (s *System) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sparks = s.sparks[:0]
	s.crystals = s.crystals[:0]
}
