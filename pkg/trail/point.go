// Package trail 实现光迹引擎的核心采样与几何逻辑
//
// 指针轨迹经过 EMA 平滑和最小间距过滤后存入 Buffer，
// 渲染层按 stroke 分段取出连续的点序列绘制曲线。
package trail

import "time"

// Point 轨迹上的一个采样点
type Point struct {
	// 平滑后的屏幕坐标
	X, Y float64
	// 采样时刻（逻辑时钟）
	CreatedAt time.Time
	// 所属描边的序号，断笔后递增
	Stroke int
	// 当前年龄（秒），每 tick 由逻辑时钟刷新
	Age float64
}

// Buffer 按时间顺序存放所有存活的轨迹点
//
// 点只会尾部追加，年龄沿缓冲区单调递减，
// 因此过期的点总是构成一个前缀，剔除为一次前缀收缩。
type Buffer struct {
	points []Point
}

// NewBuffer 创建空的轨迹缓冲区
func NewBuffer() *Buffer {
	return &Buffer{points: make([]Point, 0, 256)}
}

// Append 追加一个采样点
func (b *Buffer) Append(p Point) {
	b.points = append(b.points, p)
}

// Len 返回存活点数量
func (b *Buffer) Len() int {
	return len(b.points)
}

// Last 返回最后追加的点
func (b *Buffer) Last() (Point, bool) {
	if len(b.points) == 0 {
		return Point{}, false
	}
	return b.points[len(b.points)-1], true
}

// Points 返回内部点序列的只读视图
// 调用方不得修改返回的切片
func (b *Buffer) Points() []Point {
	return b.points
}

// Refresh 按逻辑时钟刷新所有点的年龄
// 时钟暂停时 now 不前进，年龄保持冻结
func (b *Buffer) Refresh(now time.Time) {
	for i := range b.points {
		b.points[i].Age = now.Sub(b.points[i].CreatedAt).Seconds()
	}
}

// Prune 剔除年龄达到 fadeSeconds 的点，返回剔除数量
//
// 依赖追加顺序的时间单调性：过期点必然是前缀，
// 只需找到第一个存活点然后整体前移，单次调用 O(n)。
func (b *Buffer) Prune(fadeSeconds float64) int {
	expired := 0
	for expired < len(b.points) && b.points[expired].Age >= fadeSeconds {
		expired++
	}
	if expired == 0 {
		return 0
	}
	n := copy(b.points, b.points[expired:])
	b.points = b.points[:n]
	return expired
}

// Reset 清空缓冲区
func (b *Buffer) Reset() {
	b.points = b.points[:0]
}

// AppendRuns 把缓冲区按 stroke 切分成连续的点序列追加到 dst
//
// 返回的子切片直接引用内部存储，不做拷贝；
// 在下一次 Append/Prune 之前有效。
func (b *Buffer) AppendRuns(dst [][]Point) [][]Point {
	start := 0
	for i := 1; i <= len(b.points); i++ {
		if i == len(b.points) || b.points[i].Stroke != b.points[start].Stroke {
			dst = append(dst, b.points[start:i])
			start = i
		}
	}
	return dst
}
