package particles

import (
	"math"
	"math/rand"
	"time"
)

// 火花物理与生成参数
const (
	// 重力加速度（像素/秒²）
	sparkGravity = 200.0
	// 每个物理步长的速度保留比例
	sparkDrag = 0.98

	// 单次爆发的基准火花数及强度指数
	burstBaseCount = 20
	burstExponent  = 1.2
	// 火花数量的随机浮动比例
	burstVariance = 0.25
	// 初速方向抖动（弧度）
	burstAngleJitter = 0.3
	// 初速范围（像素/秒）
	burstSpeedMin = 25.0
	burstSpeedMax = 200.0
	// 混沌系数，整体缩放单个火花的速度
	burstChaosMin = 0.8
	burstChaosMax = 1.2
	// 向上的初速偏置范围（屏幕坐标 y 向下为正）
	burstUpBiasMin = -80.0
	burstUpBiasMax = -20.0
	// 火花寿命范围（秒）
	sparkLifeMin = 1.5
	sparkLifeMax = 3.0

	// 拖尾火花：两次爆发间距小于该值时不生成
	connectorMinDistPx = 20.0
	// 每隔多少像素放一个散布点
	connectorSpacingPx = 30.0
	connectorMinPoints = 2
	connectorMaxPoints = 15
	// 每个散布点的位置抖动（像素）
	connectorScatterPx = 5.0
	// 拖尾火花的初速范围
	connectorVXMax    = 20.0
	connectorVYMin    = -40.0
	connectorVYMax    = -10.0
	connectorLifeMin  = 0.8
	connectorLifeMax  = 1.5
	connectorPerPoint = 3
)

// 爆发强度倍率的抽样表：多数爆发是单倍，偶尔双倍或三倍
var burstMultipliers = [...]int{1, 1, 1, 2, 3}

// Spark 一个受重力和阻力支配的火花粒子
type Spark struct {
	X, Y   float64
	VX, VY float64
	// 生成时刻（逻辑时钟）
	CreatedAt time.Time
	// 寿命（秒），年龄达到后销毁
	Life float64
	// 拖尾火花标记：渲染更小更暗，物理行为相同
	Trail bool
}

// SpawnBurst 在指定位置触发一次火花爆发
//
// 实际规模由配置的强度和一个随机倍率共同决定，
// 每个火花获得随机的方向、速度、向上偏置和寿命。
func (s *System) SpawnBurst(x, y float64) {
	cfg := s.cfg.Load()
	now := s.clk.Now()
	multiplier := burstMultipliers[rand.Intn(len(burstMultipliers))]

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := 0; i < multiplier; i++ {
		s.spawnBurstLocked(x, y, cfg.ExplosionIntensity, now)
	}
}

func (s *System) spawnBurstLocked(x, y, intensity float64, now time.Time) {
	calc := int(burstBaseCount * math.Pow(intensity, burstExponent))
	variance := int(float64(calc) * burstVariance)
	lo := calc - variance
	if lo < 1 {
		lo = 1
	}
	hi := calc + variance
	if hi < 2 {
		hi = 2
	}
	count := lo + rand.Intn(hi-lo+1)

	for i := 0; i < count; i++ {
		angle := rand.Float64()*2*math.Pi + uniform(-burstAngleJitter, burstAngleJitter)
		speed := uniform(burstSpeedMin, burstSpeedMax)
		chaos := uniform(burstChaosMin, burstChaosMax)
		upBias := uniform(burstUpBiasMin, burstUpBiasMax)
		s.sparks = append(s.sparks, Spark{
			X:         x,
			Y:         y,
			VX:        math.Cos(angle) * speed * chaos,
			VY:        (math.Sin(angle)*speed + upBias) * chaos,
			CreatedAt: now,
			Life:      uniform(sparkLifeMin, sparkLifeMax),
		})
	}
}

// SpawnConnectors 沿两次爆发之间的线段散布拖尾火花
// 间距低于阈值时不生成，散布点数量随距离增长并封顶
func (s *System) SpawnConnectors(x0, y0, x1, y1 float64) {
	dist := math.Hypot(x1-x0, y1-y0)
	if dist < connectorMinDistPx {
		return
	}
	points := int(dist / connectorSpacingPx)
	if points < connectorMinPoints {
		points = connectorMinPoints
	}
	if points > connectorMaxPoints {
		points = connectorMaxPoints
	}

	now := s.clk.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := 0; i < points; i++ {
		t := float64(i+1) / float64(points+1)
		lx := x0 + (x1-x0)*t
		ly := y0 + (y1-y0)*t
		n := 1 + rand.Intn(connectorPerPoint)
		for j := 0; j < n; j++ {
			s.sparks = append(s.sparks, Spark{
				X:         lx + uniform(-connectorScatterPx, connectorScatterPx),
				Y:         ly + uniform(-connectorScatterPx, connectorScatterPx),
				VX:        uniform(-connectorVXMax, connectorVXMax),
				VY:        uniform(connectorVYMin, connectorVYMax),
				CreatedAt: now,
				Life:      uniform(connectorLifeMin, connectorLifeMax),
				Trail:     true,
			})
		}
	}
}

// stepSparksLocked 推进所有火花并原地剔除过期个体
func (s *System) stepSparksLocked(now time.Time, dt float64) {
	drag := math.Pow(sparkDrag, dt/physicsStepSeconds)
	n := 0
	for i := range s.sparks {
		sp := &s.sparks[i]
		if now.Sub(sp.CreatedAt).Seconds() >= sp.Life {
			continue
		}
		sp.X += sp.VX * dt
		sp.Y += sp.VY * dt
		sp.VY += sparkGravity * dt
		sp.VX *= drag
		sp.VY *= drag
		s.sparks[n] = *sp
		n++
	}
	s.sparks = s.sparks[:n]
}

// uniform 返回 [lo, hi) 上的均匀随机数
func uniform(lo, hi float64) float64 {
	return lo + rand.Float64()*(hi-lo)
}
