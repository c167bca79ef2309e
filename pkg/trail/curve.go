package trail

// Segment 相邻两个轨迹点之间的一条三次贝塞尔曲线
type Segment struct {
	// 起点与终点
	X0, Y0 float64
	X1, Y1 float64
	// 两个控制点
	CX0, CY0 float64
	CX1, CY1 float64
	// 驱动渐隐和配色的年龄，取终点（较新的点）的年龄
	Age float64
}

// AppendSegments 把一段连续的点序列转成 len(run)-1 条曲线段追加到 dst
//
// 控制点按 Catmull-Rom 样条推导：对窗口 (p0, p1, p2, p3)，
//
//	c1 = p1 + (p2-p0) * tension/6
//	c2 = p2 - (p3-p1) * tension/6
//
// 序列边界处窗口索引钳制到首尾点。tension=0 退化为折线，
// 点数少于 2 时不产生任何段。
func AppendSegments(dst []Segment, run []Point, tension float64) []Segment {
	if len(run) < 2 {
		return dst
	}
	k := tension / 6
	for i := 0; i < len(run)-1; i++ {
		p0 := run[clampIndex(i-1, len(run))]
		p1 := run[i]
		p2 := run[i+1]
		p3 := run[clampIndex(i+2, len(run))]

		dst = append(dst, Segment{
			X0:  p1.X,
			Y0:  p1.Y,
			X1:  p2.X,
			Y1:  p2.Y,
			CX0: p1.X + (p2.X-p0.X)*k,
			CY0: p1.Y + (p2.Y-p0.Y)*k,
			CX1: p2.X - (p3.X-p1.X)*k,
			CY1: p2.Y - (p3.Y-p1.Y)*k,
			Age: p2.Age,
		})
	}
	return dst
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
