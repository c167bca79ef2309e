package trail

import (
	"math"
	"time"
)

// 形状盖章参数
const (
	// 矩形每条边的采样点数
	rectPointsPerEdge = 10
	// 圆周最少采样点数，半径越大点越多
	circleMinPoints     = 20
	circlePointsPerUnit = 0.5
	// 箭头每条笔画的线段数
	arrowSegmentsPerStroke = 10
	// 箭头头部长度相对线宽的倍数
	arrowHeadFactor = 10
)

// Rectangle 以按下点和释放点为对角生成矩形轮廓的盖章点序列
// 四条边各 10 个点，最后一条边多一个点闭合回起点，全部共用一个 stroke
func Rectangle(x0, y0, x1, y1 float64, at time.Time, stroke int) []Point {
	corners := [4][2]float64{
		{x0, y0},
		{x1, y0},
		{x1, y1},
		{x0, y1},
	}
	points := make([]Point, 0, 4*rectPointsPerEdge+1)
	for i := 0; i < 4; i++ {
		sx, sy := corners[i][0], corners[i][1]
		ex, ey := corners[(i+1)%4][0], corners[(i+1)%4][1]
		last := rectPointsPerEdge
		if i == 3 {
			// 闭合：最后一条边包含终点
			last = rectPointsPerEdge + 1
		}
		for j := 0; j < last; j++ {
			t := float64(j) / rectPointsPerEdge
			points = append(points, Point{
				X:         sx + (ex-sx)*t,
				Y:         sy + (ey-sy)*t,
				CreatedAt: at,
				Stroke:    stroke,
			})
		}
	}
	return points
}

// Circle 以按下点为圆心、释放点确定半径生成圆周盖章点序列
// 点数随半径增长，最少 20 个
func Circle(cx, cy, ex, ey float64, at time.Time, stroke int) []Point {
	radius := math.Hypot(ex-cx, ey-cy)
	n := int(radius * circlePointsPerUnit)
	if n < circleMinPoints {
		n = circleMinPoints
	}
	points := make([]Point, 0, n)
	for i := 0; i < n; i++ {
		angle := 2 * math.Pi * float64(i) / float64(n)
		points = append(points, Point{
			X:         cx + radius*math.Cos(angle),
			Y:         cy + radius*math.Sin(angle),
			CreatedAt: at,
			Stroke:    stroke,
		})
	}
	return points
}

// Arrow 生成箭头盖章点序列：箭杆加两条 45 度的箭头边
//
// 按下点是箭头尖端，释放点是箭尾。三条笔画各占一个 stroke，
// 从 stroke 开始连续编号。返回点序列和消耗的 stroke 数量；
// 尖端与箭尾重合时返回 (nil, 0)。
func Arrow(tipX, tipY, tailX, tailY, thickness float64, at time.Time, stroke int) ([]Point, int) {
	dx := tipX - tailX
	dy := tipY - tailY
	shaft := math.Hypot(dx, dy)
	if shaft == 0 {
		return nil, 0
	}

	headLen := math.Min(shaft/2, thickness*arrowHeadFactor)
	angle := math.Atan2(dy, dx)
	leftAngle := angle + math.Pi - math.Pi/4
	rightAngle := angle + math.Pi + math.Pi/4
	leftX := tipX + headLen*math.Cos(leftAngle)
	leftY := tipY + headLen*math.Sin(leftAngle)
	rightX := tipX + headLen*math.Cos(rightAngle)
	rightY := tipY + headLen*math.Sin(rightAngle)

	strokes := [3][4]float64{
		{tailX, tailY, tipX, tipY},
		{tipX, tipY, leftX, leftY},
		{tipX, tipY, rightX, rightY},
	}
	points := make([]Point, 0, 3*(arrowSegmentsPerStroke+1))
	for si, line := range strokes {
		for j := 0; j <= arrowSegmentsPerStroke; j++ {
			t := float64(j) / arrowSegmentsPerStroke
			points = append(points, Point{
				X:         line[0] + (line[2]-line[0])*t,
				Y:         line[1] + (line[3]-line[1])*t,
				CreatedAt: at,
				Stroke:    stroke + si,
			})
		}
	}
	return points, 3
}
