package trail

import (
	"math"
	"testing"
)

func TestAppendSegmentsCount(t *testing.T) {
	tests := []struct {
		name   string
		points int
		want   int
	}{
		{name: "no points", points: 0, want: 0},
		{name: "single point", points: 1, want: 0},
		{name: "two points", points: 2, want: 1},
		{name: "five points", points: 5, want: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run := make([]Point, tt.points)
			for i := range run {
				run[i] = Point{X: float64(i * 10), Y: 0}
			}
			segs := AppendSegments(nil, run, 1.0)
			if len(segs) != tt.want {
				t.Errorf("Expected %d segments, got %d", tt.want, len(segs))
			}
		})
	}
}

func TestSegmentEndpointsMatchPoints(t *testing.T) {
	run := []Point{
		{X: 0, Y: 0, Age: 0.1},
		{X: 10, Y: 5, Age: 0.2},
		{X: 20, Y: -5, Age: 0.3},
	}
	segs := AppendSegments(nil, run, 1.0)
	if len(segs) != 2 {
		t.Fatalf("Expected 2 segments, got %d", len(segs))
	}

	for i, seg := range segs {
		if seg.X0 != run[i].X || seg.Y0 != run[i].Y {
			t.Errorf("segment %d: expected start (%v, %v), got (%v, %v)",
				i, run[i].X, run[i].Y, seg.X0, seg.Y0)
		}
		if seg.X1 != run[i+1].X || seg.Y1 != run[i+1].Y {
			t.Errorf("segment %d: expected end (%v, %v), got (%v, %v)",
				i, run[i+1].X, run[i+1].Y, seg.X1, seg.Y1)
		}
		// 段的年龄取终点（较新的点）
		if seg.Age != run[i+1].Age {
			t.Errorf("segment %d: expected age %v, got %v", i, run[i+1].Age, seg.Age)
		}
	}
}

func TestControlPointsFollowNeighborWindow(t *testing.T) {
	// 四个共线点，窗口完整的中间段控制点可以手算验证
	run := []Point{
		{X: 0, Y: 0},
		{X: 10, Y: 0},
		{X: 20, Y: 0},
		{X: 30, Y: 0},
	}
	tension := 1.2
	segs := AppendSegments(nil, run, tension)

	// 中间段 (p1=10, p2=20)：c1 = p1 + (p2-p0)*k, c2 = p2 - (p3-p1)*k
	k := tension / 6
	wantC0 := 10 + (20-0)*k
	wantC1 := 20 - (30-10)*k
	seg := segs[1]
	if math.Abs(seg.CX0-wantC0) > 1e-9 {
		t.Errorf("Expected CX0 = %v, got %v", wantC0, seg.CX0)
	}
	if math.Abs(seg.CX1-wantC1) > 1e-9 {
		t.Errorf("Expected CX1 = %v, got %v", wantC1, seg.CX1)
	}
	if seg.CY0 != 0 || seg.CY1 != 0 {
		t.Errorf("Expected collinear control points on y=0, got CY0=%v CY1=%v", seg.CY0, seg.CY1)
	}
}

func TestControlPointsClampAtRunEnds(t *testing.T) {
	run := []Point{
		{X: 0, Y: 0},
		{X: 10, Y: 0},
	}
	tension := 1.0
	segs := AppendSegments(nil, run, tension)
	if len(segs) != 1 {
		t.Fatalf("Expected 1 segment, got %d", len(segs))
	}

	// 两点序列的窗口全部钳制到首尾：c1 = p0 + (p1-p0)*k, c2 = p1 - (p1-p0)*k
	k := tension / 6
	seg := segs[0]
	if want := 0 + 10*k; math.Abs(seg.CX0-want) > 1e-9 {
		t.Errorf("Expected CX0 = %v, got %v", want, seg.CX0)
	}
	if want := 10 - 10*k; math.Abs(seg.CX1-want) > 1e-9 {
		t.Errorf("Expected CX1 = %v, got %v", want, seg.CX1)
	}
}

func TestZeroTensionGivesStraightSegments(t *testing.T) {
	run := []Point{
		{X: 0, Y: 0},
		{X: 10, Y: 20},
		{X: -5, Y: 40},
	}
	segs := AppendSegments(nil, run, 0)

	for i, seg := range segs {
		if seg.CX0 != seg.X0 || seg.CY0 != seg.Y0 {
			t.Errorf("segment %d: expected first control on start point, got (%v, %v)", i, seg.CX0, seg.CY0)
		}
		if seg.CX1 != seg.X1 || seg.CY1 != seg.Y1 {
			t.Errorf("segment %d: expected second control on end point, got (%v, %v)", i, seg.CX1, seg.CY1)
		}
	}
}
