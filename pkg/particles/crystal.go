package particles

import (
	"math"
	"math/rand"
	"time"
)

// 水晶物理与生成参数
const (
	// 每个物理步长的速度保留比例，比火花衰减更快
	crystalDrag = 0.94
	// 轻微的下沉重力（像素/秒²）
	crystalGravity = 15.0
	// 噪声漂移的加速度幅值（像素/秒²）
	crystalJitterX = 2.0
	crystalJitterY = 1.0
	// 噪声采样沿年龄轴的推进速率
	crystalNoiseRate = 1.7
	// 同一水晶两条噪声轨道之间的偏移
	crystalNoiseLane = 57.3

	// 生成位置的散布半径（像素）
	crystalOffsetPx = 3.0
	// 判定"正在移动"的位移阈值（像素）
	crystalMoveThreshold = 0.5
	// 垂直于移动方向喷射的速度范围与角度抖动
	crystalPerpSpeedMin = 75.0
	crystalPerpSpeedMax = 180.0
	crystalPerpJitter   = 0.52
	// 静止时径向喷射的速度范围
	crystalRadialSpeedMin = 45.0
	crystalRadialSpeedMax = 105.0

	crystalSizeMin = 0.8
	crystalSizeMax = 2.5
	crystalLifeMin = 0.75
	crystalLifeMax = 1.875
)

// Crystal 一个缓慢漂散的水晶光点
type Crystal struct {
	X, Y   float64
	VX, VY float64
	// 生成时刻（逻辑时钟）
	CreatedAt time.Time
	// 寿命（秒）
	Life float64
	// 基础半径（像素），随年龄缓慢收缩
	Size float64
	// 噪声轨道种子，让每个光点有独立的漂移路径
	Seed float64
}

// SpawnCrystals 在指定位置发射 n 个水晶光点
//
// 指针移动时光点垂直于移动方向向两侧喷出（随机选边并带角度抖动），
// 移动幅度过小或方向未知时退化为随机径向喷射。
func (s *System) SpawnCrystals(x, y, dirX, dirY float64, n int) {
	if n <= 0 {
		return
	}
	now := s.clk.Now()
	mag := math.Hypot(dirX, dirY)

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := 0; i < n; i++ {
		var vx, vy float64
		if mag > crystalMoveThreshold {
			// 单位化移动方向后旋转 ±90 度，再叠加角度抖动
			ux, uy := dirX/mag, dirY/mag
			px, py := -uy, ux
			if rand.Intn(2) == 0 {
				px, py = uy, -ux
			}
			jitter := uniform(-crystalPerpJitter, crystalPerpJitter)
			sin, cos := math.Sincos(jitter)
			rx := px*cos - py*sin
			ry := px*sin + py*cos
			speed := uniform(crystalPerpSpeedMin, crystalPerpSpeedMax)
			vx, vy = rx*speed, ry*speed
		} else {
			angle := rand.Float64() * 2 * math.Pi
			speed := uniform(crystalRadialSpeedMin, crystalRadialSpeedMax)
			vx = math.Cos(angle) * speed
			vy = math.Sin(angle) * speed
		}

		s.crystals = append(s.crystals, Crystal{
			X:         x + uniform(-crystalOffsetPx, crystalOffsetPx),
			Y:         y + uniform(-crystalOffsetPx, crystalOffsetPx),
			VX:        vx,
			VY:        vy,
			CreatedAt: now,
			Life:      uniform(crystalLifeMin, crystalLifeMax),
			Size:      uniform(crystalSizeMin, crystalSizeMax),
			Seed:      rand.Float64() * 1000,
		})
	}
}

// stepCrystalsLocked 推进所有水晶并原地剔除过期个体
//
// 漂移采用 Perlin 噪声而非白噪声，同一光点相邻帧的扰动连续，
// 视觉上呈现平滑的飘动而不是抖动。
func (s *System) stepCrystalsLocked(now time.Time, dt float64) {
	drag := math.Pow(crystalDrag, dt/physicsStepSeconds)
	n := 0
	for i := range s.crystals {
		c := &s.crystals[i]
		age := now.Sub(c.CreatedAt).Seconds()
		if age >= c.Life {
			continue
		}
		c.X += c.VX * dt
		c.Y += c.VY * dt
		c.VX *= drag
		c.VY *= drag
		c.VY += crystalGravity * dt
		c.VX += s.noise.Noise2D(c.Seed, age*crystalNoiseRate) * crystalJitterX * dt
		c.VY += s.noise.Noise2D(c.Seed+crystalNoiseLane, age*crystalNoiseRate) * crystalJitterY * dt
		s.crystals[n] = *c
		n++
	}
	s.crystals = s.crystals[:n]
}
