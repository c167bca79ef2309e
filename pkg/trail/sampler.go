package trail

import (
	"math"
	"math/rand"
	"time"

	"github.com/decker502/glowtrail/pkg/clock"
	"github.com/decker502/glowtrail/pkg/config"
	"github.com/decker502/glowtrail/pkg/utils"
)

// 粒子触发参数
const (
	// 同一描边内两次爆发的最大间隔距离（像素），超过立即触发
	burstDistancePx = 40.0
	// 水晶发射的最小时间间隔（秒）
	crystalEmitInterval = 0.001
	// 水晶回填沿线段的步长（像素）
	crystalFillStepPx = 2.0
	// 每个回填步的水晶数量上限（含）
	crystalFillMax = 7
	// 描边起点首次绽放的水晶数量范围（含）
	crystalFirstMin = 100
	crystalFirstMax = 300
	// 形状预览出现所需的最小拖拽距离（像素）
	shapePreviewMinDistPx = 5.0
)

// ParticleSink 接收采样器触发的粒子生成请求
//
// 实现必须允许从游戏 tick 所在的 goroutine 调用。
type ParticleSink interface {
	// SpawnBurst 在指定位置触发一次火花爆发
	SpawnBurst(x, y float64)
	// SpawnConnectors 在同一描边的两次爆发之间散布拖尾火花
	SpawnConnectors(x0, y0, x1, y1 float64)
	// SpawnCrystals 在指定位置发射 n 个水晶光点
	// dirX/dirY 是当前描边的移动增量，无法确定时传零
	SpawnCrystals(x, y, dirX, dirY float64, n int)
}

// Events 汇总一次 Update 中发生的离散事件，供音效等上层逻辑使用
type Events struct {
	// 新描边开始（激活键按下边沿）
	StrokeStarted bool
	// 本 tick 触发了火花爆发
	BurstFired bool
	// 释放时盖章了一个形状
	ShapeStamped bool
}

// Sampler 把原始指针输入转化为轨迹点和粒子触发
//
// 每个 tick 调用一次 Update：刷新年龄、剔除过期点，
// 然后在激活键按住期间做 EMA 平滑、最小间距过滤和粒子触发判定。
// 时钟冻结期间不接受新的采样。
type Sampler struct {
	clock *clock.PausableClock
	buf   *Buffer
	sink  ParticleSink

	strokeID int
	prevHeld bool

	// EMA 平滑状态
	emaX, emaY float64
	emaOK      bool

	// 上一 tick 的平滑位置，用于水晶的移动方向
	prevX, prevY float64
	prevOK       bool

	// 爆发触发状态
	lastBurstTime   time.Time
	lastBurstX      float64
	lastBurstY      float64
	lastBurstStroke int
	lastBurstOK     bool

	// 水晶触发状态
	lastCrystalTime time.Time
	lastCrystalX    float64
	lastCrystalY    float64
	lastCrystalOK   bool

	// 形状模式状态
	shapeActive bool
	shapeStartX float64
	shapeStartY float64
	preview     *Buffer
}

// NewSampler 创建采样器
// sink 可为 nil，此时不触发任何粒子
func NewSampler(clk *clock.PausableClock, sink ParticleSink) *Sampler {
	return &Sampler{
		clock:   clk,
		buf:     NewBuffer(),
		sink:    sink,
		preview: NewBuffer(),
	}
}

// Buffer 返回轨迹点缓冲区
func (s *Sampler) Buffer() *Buffer {
	return s.buf
}

// Preview 返回形状拖拽期间的预览点缓冲区
// 预览点年龄恒为 0，每个 tick 重建
func (s *Sampler) Preview() *Buffer {
	return s.preview
}

// Update 处理一帧输入
func (s *Sampler) Update(in utils.InputState, cfg *config.Config) Events {
	var ev Events
	now := s.clock.Now()

	// 年龄刷新与过期剔除每个 tick 都执行，暂停期间剔除仍生效
	s.buf.Refresh(now)
	s.buf.Prune(cfg.FadeSeconds)

	if s.clock.IsPaused() {
		// 冻结期间不接受新采样，也不重建预览
		s.preview.Reset()
		return ev
	}

	held := in.ActivationHeld

	// 按下边沿：开始新描边
	if held && !s.prevHeld {
		s.strokeID++
		s.emaOK = false
		s.prevOK = false
		s.lastBurstTime = now
		s.lastBurstOK = false
		s.lastCrystalTime = now
		s.lastCrystalOK = false
		ev.StrokeStarted = true
		if cfg.DrawMode != config.DrawModeOff {
			s.shapeActive = true
			s.shapeStartX = in.X
			s.shapeStartY = in.Y
		}
	}

	// 释放边沿：形状模式下盖章
	if !held && s.prevHeld {
		if s.shapeActive {
			if s.stampShape(cfg, in.X, in.Y, now) {
				ev.ShapeStamped = true
			}
			s.shapeActive = false
		}
	}

	s.preview.Reset()

	if held {
		if cfg.DrawMode == config.DrawModeOff {
			s.sampleFreehand(in, cfg, now, &ev)
		} else if s.shapeActive {
			s.buildPreview(cfg, in.X, in.Y, now)
		}
	}

	s.prevHeld = held
	return ev
}

// sampleFreehand 处理自由绘制：平滑、过滤、追加和粒子触发
func (s *Sampler) sampleFreehand(in utils.InputState, cfg *config.Config, now time.Time, ev *Events) {
	// EMA 平滑，首个采样直接采用原始位置
	if !s.emaOK {
		s.emaX, s.emaY = in.X, in.Y
		s.emaOK = true
	} else {
		s.emaX = cfg.EmaAlpha*in.X + (1-cfg.EmaAlpha)*s.emaX
		s.emaY = cfg.EmaAlpha*in.Y + (1-cfg.EmaAlpha)*s.emaY
	}
	sx, sy := s.emaX, s.emaY

	// 最小间距过滤：与当前描边最后一个点比较
	appendOK := true
	if last, ok := s.buf.Last(); ok && last.Stroke == s.strokeID {
		dx := sx - last.X
		dy := sy - last.Y
		appendOK = dx*dx+dy*dy >= cfg.MinDistSq()
	}
	if appendOK {
		s.buf.Append(Point{X: sx, Y: sy, CreatedAt: now, Stroke: s.strokeID})
	}

	if s.sink != nil {
		if cfg.ParticlesEnabled {
			s.maybeBurst(cfg, sx, sy, now, ev)
		}
		if cfg.CometEnabled {
			s.maybeEmitCrystals(sx, sy, now)
		}
	}

	s.prevX, s.prevY = sx, sy
	s.prevOK = true
}

// maybeBurst 按时间间隔或移动距离触发火花爆发
func (s *Sampler) maybeBurst(cfg *config.Config, sx, sy float64, now time.Time, ev *Events) {
	timeTrig := now.Sub(s.lastBurstTime).Seconds() >= cfg.BurstInterval()
	distTrig := false
	if s.lastBurstOK {
		distTrig = math.Hypot(sx-s.lastBurstX, sy-s.lastBurstY) > burstDistancePx
	}
	if !timeTrig && !distTrig {
		return
	}

	s.sink.SpawnBurst(sx, sy)
	// 同一描边内的连续爆发之间散布拖尾火花
	if s.lastBurstOK && s.lastBurstStroke == s.strokeID {
		s.sink.SpawnConnectors(s.lastBurstX, s.lastBurstY, sx, sy)
	}

	s.lastBurstTime = now
	s.lastBurstX = sx
	s.lastBurstY = sy
	s.lastBurstStroke = s.strokeID
	s.lastBurstOK = true
	ev.BurstFired = true
}

// maybeEmitCrystals 持续发射水晶光点
//
// 描边的首次发射一次性绽放一大团；此后沿上次发射位置到当前位置
// 的线段按固定步长回填，指针静止时不再发射。
func (s *Sampler) maybeEmitCrystals(sx, sy float64, now time.Time) {
	if now.Sub(s.lastCrystalTime).Seconds() < crystalEmitInterval {
		return
	}

	var dirX, dirY float64
	if s.prevOK {
		dirX = sx - s.prevX
		dirY = sy - s.prevY
	}

	if !s.lastCrystalOK {
		n := crystalFirstMin + rand.Intn(crystalFirstMax-crystalFirstMin+1)
		s.sink.SpawnCrystals(sx, sy, dirX, dirY, n)
	} else {
		dx := sx - s.lastCrystalX
		dy := sy - s.lastCrystalY
		dist := math.Hypot(dx, dy)
		if dist > 0 {
			steps := int(dist / crystalFillStepPx)
			if steps < 1 {
				steps = 1
			}
			for step := 0; step <= steps; step++ {
				t := float64(step) / float64(steps)
				n := rand.Intn(crystalFillMax + 1)
				if n > 0 {
					s.sink.SpawnCrystals(s.lastCrystalX+dx*t, s.lastCrystalY+dy*t, dirX, dirY, n)
				}
			}
		}
	}

	s.lastCrystalTime = now
	s.lastCrystalX = sx
	s.lastCrystalY = sy
	s.lastCrystalOK = true
}

// stampShape 在释放位置盖章当前形状，返回是否产生了点
func (s *Sampler) stampShape(cfg *config.Config, rx, ry float64, now time.Time) bool {
	var points []Point
	consumed := 1
	switch cfg.DrawMode {
	case config.DrawModeRect:
		points = Rectangle(s.shapeStartX, s.shapeStartY, rx, ry, now, s.strokeID)
	case config.DrawModeCircle:
		points = Circle(s.shapeStartX, s.shapeStartY, rx, ry, now, s.strokeID)
	case config.DrawModeArrow:
		points, consumed = Arrow(s.shapeStartX, s.shapeStartY, rx, ry, cfg.StrokeThickness, now, s.strokeID)
	default:
		return false
	}
	if len(points) == 0 {
		return false
	}
	for _, p := range points {
		s.buf.Append(p)
	}
	// 多笔画形状占用连续的 stroke 序号
	s.strokeID += consumed - 1
	return true
}

// buildPreview 在拖拽期间重建形状预览
func (s *Sampler) buildPreview(cfg *config.Config, rx, ry float64, now time.Time) {
	if math.Hypot(rx-s.shapeStartX, ry-s.shapeStartY) <= shapePreviewMinDistPx {
		return
	}
	var points []Point
	switch cfg.DrawMode {
	case config.DrawModeRect:
		points = Rectangle(s.shapeStartX, s.shapeStartY, rx, ry, now, 0)
	case config.DrawModeCircle:
		points = Circle(s.shapeStartX, s.shapeStartY, rx, ry, now, 0)
	case config.DrawModeArrow:
		points, _ = Arrow(s.shapeStartX, s.shapeStartY, rx, ry, cfg.StrokeThickness, now, 0)
	}
	for _, p := range points {
		// 预览点年龄保持 0，始终全亮
		p.Age = 0
		s.preview.Append(p)
	}
}
