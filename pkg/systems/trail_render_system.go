// Package systems 包含把轨迹和粒子状态绘制到屏幕的渲染系统
package systems

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/glowtrail/internal/gradient"
	"github.com/decker502/glowtrail/pkg/config"
	"github.com/decker502/glowtrail/pkg/trail"
	"github.com/decker502/glowtrail/pkg/utils"
)

// 发光层 alpha 包络：最外层接近透明，向内逐层变亮
const (
	glowAlphaBase    = 80.0
	glowAlphaFalloff = 70.0
	// 端帽实心圆相对核心线宽的收缩比例
	capCoreShrink = 0.95
)

// whiteSubImage 是 DrawTriangles 的纯白纹理源
// 取 3x3 白图的中心 1x1 像素，避免放大时采样到图集边缘
var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// TrailRenderSystem 把轨迹缓冲区绘制为分层发光的平滑曲线
//
// 每条描边按曲线段逐段描边：先从外到内叠加发光层，再画实心核心，
// 两端各画一个同样分层的端帽圆盘。顶点和索引切片跨帧复用。
type TrailRenderSystem struct {
	runs [][]trail.Point
	segs []trail.Segment
	vs   []ebiten.Vertex
	is   []uint16
}

// NewTrailRenderSystem 创建轨迹渲染系统
func NewTrailRenderSystem() *TrailRenderSystem {
	return &TrailRenderSystem{
		runs: make([][]trail.Point, 0, 16),
		segs: make([]trail.Segment, 0, 256),
		vs:   make([]ebiten.Vertex, 0, 4096),
		is:   make([]uint16, 0, 8192),
	}
}

// Draw 绘制缓冲区里的全部描边
func (r *TrailRenderSystem) Draw(screen *ebiten.Image, buf *trail.Buffer, cfg *config.Config, model gradient.Model) {
	r.runs = buf.AppendRuns(r.runs[:0])
	for _, run := range r.runs {
		r.drawRun(screen, run, cfg, model)
	}
}

// drawRun 绘制一条描边：起点端帽、曲线段、终点端帽
func (r *TrailRenderSystem) drawRun(screen *ebiten.Image, run []trail.Point, cfg *config.Config, model gradient.Model) {
	if len(run) == 0 {
		return
	}
	first := run[0]
	r.drawCap(screen, first.X, first.Y, first.Age, cfg, model)
	if len(run) < 2 {
		// 孤立点退化为单个端帽，不画线
		return
	}

	r.segs = trail.AppendSegments(r.segs[:0], run, cfg.Tension)
	for i := range r.segs {
		r.drawSegment(screen, &r.segs[i], cfg, model)
	}

	last := run[len(run)-1]
	r.drawCap(screen, last.X, last.Y, last.Age, cfg, model)
}

// drawSegment 描边一条三次贝塞尔曲线段
// 颜色与透明度由段年龄驱动，完全透明的段直接跳过
func (r *TrailRenderSystem) drawSegment(screen *ebiten.Image, seg *trail.Segment, cfg *config.Config, model gradient.Model) {
	fade, col := model.Evaluate(seg.Age)
	if fade <= 0 {
		return
	}

	var path vector.Path
	path.MoveTo(float32(seg.X0), float32(seg.Y0))
	path.CubicTo(
		float32(seg.CX0), float32(seg.CY0),
		float32(seg.CX1), float32(seg.CY1),
		float32(seg.X1), float32(seg.Y1),
	)

	if cfg.GlowPercent > 0 {
		minGlow := cfg.StrokeThickness + 1
		glowWidth := cfg.GlowWidth()
		layers := cfg.GradientLayers
		for i := 0; i < layers; i++ {
			ratio := float64(layers-i) / float64(layers)
			width := minGlow + (glowWidth-minGlow)*ratio
			alpha := fade * (glowAlphaBase - glowAlphaFalloff*ratio)
			r.strokePath(screen, &path, float32(width), col, alpha)
		}
	}
	r.strokePath(screen, &path, float32(cfg.StrokeThickness), col, fade*255)
}

// strokePath 用指定宽度和颜色描边 path
// 平头端点配斜接拐角，相邻曲线段首尾相接时不会出现重叠亮斑
func (r *TrailRenderSystem) strokePath(screen *ebiten.Image, path *vector.Path, width float32, col gradient.RGB, alpha float64) {
	op := &vector.StrokeOptions{
		Width:      width,
		LineCap:    vector.LineCapButt,
		LineJoin:   vector.LineJoinMiter,
		MiterLimit: 10,
	}
	r.vs, r.is = path.AppendVerticesAndIndicesForStroke(r.vs[:0], r.is[:0], op)

	cr := float32(col.R) / 255
	cg := float32(col.G) / 255
	cb := float32(col.B) / 255
	ca := float32(utils.Clamp(alpha, 0, 255)) / 255
	for i := range r.vs {
		r.vs[i].SrcX = 1
		r.vs[i].SrcY = 1
		r.vs[i].ColorR = cr
		r.vs[i].ColorG = cg
		r.vs[i].ColorB = cb
		r.vs[i].ColorA = ca
	}

	screen.DrawTriangles(r.vs, r.is, whiteSubImage, &ebiten.DrawTrianglesOptions{
		AntiAlias: true,
	})
}

// drawCap 在描边端点绘制分层发光的圆盘端帽
// 层宽与 alpha 的包络和曲线段完全一致，端帽与线条视觉上无缝衔接
func (r *TrailRenderSystem) drawCap(screen *ebiten.Image, x, y, age float64, cfg *config.Config, model gradient.Model) {
	fade, col := model.Evaluate(age)
	if fade <= 0 {
		return
	}

	if cfg.GlowPercent > 0 {
		minGlow := cfg.StrokeThickness + 1
		glowWidth := cfg.GlowWidth()
		layers := cfg.GradientLayers
		for i := 0; i < layers; i++ {
			ratio := float64(layers-i) / float64(layers)
			width := minGlow + (glowWidth-minGlow)*ratio
			alpha := fade * (glowAlphaBase - glowAlphaFalloff*ratio)
			fillCircle(screen, x, y, width/2, col, alpha)
		}
	}
	fillCircle(screen, x, y, cfg.StrokeThickness/2*capCoreShrink, col, fade*255)
}

// fillCircle 画一个带透明度的实心圆
func fillCircle(screen *ebiten.Image, x, y, radius float64, col gradient.RGB, alpha float64) {
	if radius <= 0 {
		return
	}
	vector.DrawFilledCircle(screen, float32(x), float32(y), float32(radius), nrgba(col, alpha), true)
}

// nrgba 把基色与 0~255 的 alpha 组装成非预乘颜色
func nrgba(col gradient.RGB, alpha float64) color.NRGBA {
	return color.NRGBA{
		R: col.R,
		G: col.G,
		B: col.B,
		A: uint8(utils.Clamp(alpha, 0, 255)),
	}
}
