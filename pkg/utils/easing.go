package utils

// Interpolation Helpers (插值辅助函数)
//
// 渲染层和粒子系统共用的小工具：线性插值与钳制。
// 所有函数都是纯函数，可以安全地在任意 goroutine 中调用。

// Lerp 线性插值
// 在 a 和 b 之间根据 t 插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp 将 v 钳制到 [lo, hi] 区间
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 将 v 钳制到 [0, 1] 区间
// 常用于寿命比例和 alpha 值
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}
