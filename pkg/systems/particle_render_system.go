package systems

import (
	"math"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/glowtrail/internal/gradient"
	"github.com/decker502/glowtrail/pkg/particles"
	"github.com/decker502/glowtrail/pkg/utils"
)

// 火花冷却的颜色关键帧：白热 → 橙 → 红 → 褐 → 灰烬
var (
	sparkWhite  = gradient.RGB{R: 255, G: 255, B: 255}
	sparkOrange = gradient.RGB{R: 255, G: 165, B: 50}
	sparkRed    = gradient.RGB{R: 255, G: 50, B: 0}
	sparkBrown  = gradient.RGB{R: 120, G: 40, B: 20}
	sparkAsh    = gradient.RGB{R: 10, G: 10, B: 10}
)

// 水晶随寿命变化的冷色相位
var (
	crystalBright = gradient.RGB{R: 240, G: 250, B: 255}
	crystalLight  = gradient.RGB{R: 200, G: 240, B: 255}
	crystalMid    = gradient.RGB{R: 180, G: 220, B: 255}
	crystalDim    = gradient.RGB{R: 160, G: 200, B: 255}
)

const (
	// 拖尾火花的尺寸与亮度缩减
	trailSparkSizeScale  = 0.6
	trailSparkAlphaScale = 0.7
	// 颜色采样时的寿命抖动与每通道闪烁幅度
	sparkLifeJitter   = 0.05
	sparkFlickerRange = 15
	// 速度拖影出现的最低速度（像素/秒 × dt 后的幅值）
	streakMinSpeed = 0.5
)

// ParticleRenderSystem 绘制火花和水晶粒子
//
// 遍历在粒子系统的锁内进行，绘制期间物理 goroutine 不会改写粒子。
type ParticleRenderSystem struct{}

// NewParticleRenderSystem 创建粒子渲染系统
func NewParticleRenderSystem() *ParticleRenderSystem {
	return &ParticleRenderSystem{}
}

// Draw 绘制全部存活粒子
func (r *ParticleRenderSystem) Draw(screen *ebiten.Image, sys *particles.System) {
	sys.EachSpark(func(sp *particles.Spark, lr float64) {
		r.drawSpark(screen, sp, lr)
	})
	sys.EachCrystal(func(c *particles.Crystal, lr float64) {
		r.drawCrystal(screen, c, lr)
	})
}

// drawSpark 绘制一个火花：速度拖影、外发光、实心核心
func (r *ParticleRenderSystem) drawSpark(screen *ebiten.Image, sp *particles.Spark, lr float64) {
	// 颜色沿寿命抖动采样，配合通道闪烁模拟火星的不稳定亮度
	varied := utils.Clamp01(lr + uniform(-sparkLifeJitter, sparkLifeJitter))
	col, alpha := sparkColor(varied)
	if varied > 0.10 {
		col = flicker(col, sparkFlickerRange)
	}

	size, glow := sparkSize(lr)
	if sp.Trail {
		size *= trailSparkSizeScale
		alpha *= trailSparkAlphaScale
	}

	// 高速火花拖出一条反向的短尾
	speed := math.Hypot(sp.VX, sp.VY)
	if speed > streakMinSpeed {
		length := math.Min(speed*0.5, size*3)
		tx := sp.X - sp.VX/speed*length
		ty := sp.Y - sp.VY/speed*length
		width := math.Max(1, size/2)
		vector.StrokeLine(screen,
			float32(sp.X), float32(sp.Y), float32(tx), float32(ty),
			float32(width), nrgba(col, alpha*0.6), true)
	}

	// 燃尽阶段不再有外发光
	if lr < 0.65 {
		fillCircle(screen, sp.X, sp.Y, size+glow, col, alpha*0.3)
	}
	fillCircle(screen, sp.X, sp.Y, size, col, alpha)
}

// drawCrystal 绘制一个水晶：闪耀光晕、主体、白色亮心
func (r *ParticleRenderSystem) drawCrystal(screen *ebiten.Image, c *particles.Crystal, lr float64) {
	col, alpha := crystalColor(lr)
	size := c.Size * (1 - lr*0.2)

	if lr < 0.6 {
		fillCircle(screen, c.X, c.Y, size*1.8, sparkWhite, alpha*0.4)
	}
	fillCircle(screen, c.X, c.Y, size, col, alpha)
	if lr < 0.5 {
		fillCircle(screen, c.X, c.Y, size*0.3, sparkWhite, alpha*0.8)
	}
}

// sparkColor 返回火花在给定寿命比例下的基色和 alpha
//
// 白热段结束后颜色跳变到橙色，随后沿关键帧连续降温；
// alpha 从褐色段开始同步衰减。
func sparkColor(v float64) (gradient.RGB, float64) {
	switch {
	case v <= 0.10:
		return sparkWhite, 255
	case v <= 0.45:
		t := (v - 0.10) / 0.35
		return gradient.Lerp(sparkOrange, sparkRed, t), 255
	case v <= 0.70:
		t := (v - 0.45) / 0.25
		return gradient.Lerp(sparkRed, sparkBrown, t), utils.Lerp(255, 220, t)
	default:
		t := (v - 0.70) / 0.30
		return gradient.Lerp(sparkBrown, sparkAsh, t), utils.Lerp(220, 120, t)
	}
}

// sparkSize 返回火花的核心半径和发光圈厚度
func sparkSize(lr float64) (size, glow float64) {
	switch {
	case lr < 0.083:
		// 白热闪光：最大最亮
		size, glow = 6.25*(1-lr*0.5), 3.75
	case lr < 0.65:
		size, glow = 3.75*(1-lr*0.8), 2.5
	default:
		// 余烬
		size, glow = 2.5*(1-lr), 1.25
	}
	if size < 1 {
		size = 1
	}
	return size, glow
}

// crystalColor 返回水晶在给定寿命比例下的颜色相位和 alpha
func crystalColor(lr float64) (gradient.RGB, float64) {
	switch {
	case lr < 0.2:
		return crystalBright, 255
	case lr < 0.4:
		return crystalLight, 220
	case lr < 0.7:
		return crystalMid, 180
	default:
		blend := utils.Clamp01((lr - 0.7) / 0.3)
		return crystalDim, 140 * (1 - blend)
	}
}

// flicker 对每个颜色通道施加均匀随机扰动
func flicker(c gradient.RGB, amount int) gradient.RGB {
	return gradient.RGB{
		R: jitterChannel(c.R, amount),
		G: jitterChannel(c.G, amount),
		B: jitterChannel(c.B, amount),
	}
}

func jitterChannel(c uint8, amount int) uint8 {
	v := int(c) + rand.Intn(2*amount+1) - amount
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// uniform 返回 [lo, hi) 上的均匀随机数
func uniform(lo, hi float64) float64 {
	return lo + rand.Float64()*(hi-lo)
}
