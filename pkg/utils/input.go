// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputState 存储当前帧的输入快照
// 每个 tick 采集一次，作为值传入游戏逻辑，便于测试时直接构造
type InputState struct {
	// 指针位置（触摸或鼠标）
	X, Y float64
	// 激活键是否按住（Ctrl，或有活动触摸）
	// 按住期间指针轨迹才会被采样为描边
	ActivationHeld bool
	// 按住暂停键（Shift）：按住期间冻结时钟
	PauseHeld bool
	// 暂停切换键（Space）刚刚按下
	TogglePause bool
	// 声音开关键（M）刚刚按下
	ToggleSound bool
	// HUD 开关键（F1）刚刚按下
	ToggleHUD bool
	// 退出键（Escape）刚刚按下；无边框窗口没有关闭按钮
	Quit bool
	// 绘制模式选择：-1 表示无按键，0~3 对应数字键 1~4
	ModeKey int
}

// 数字键 1~4 依次对应 off/rectangle/circle/arrow 模式
var modeKeys = []ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4,
}

// ReadInputState 采集当前帧的输入状态
// 同时支持鼠标和触摸输入，优先检测触摸（触摸按住等价于 Ctrl 激活）
func ReadInputState() InputState {
	state := InputState{ModeKey: -1}

	// 首先检查触摸输入（移动设备）
	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		state.X, state.Y = float64(x), float64(y)
		state.ActivationHeld = true
	} else {
		// 其次检查鼠标输入（桌面设备）
		x, y := ebiten.CursorPosition()
		state.X, state.Y = float64(x), float64(y)
		state.ActivationHeld = ebiten.IsKeyPressed(ebiten.KeyControl)
	}

	state.PauseHeld = ebiten.IsKeyPressed(ebiten.KeyShift)
	state.TogglePause = inpututil.IsKeyJustPressed(ebiten.KeySpace)
	state.ToggleSound = inpututil.IsKeyJustPressed(ebiten.KeyM)
	state.ToggleHUD = inpututil.IsKeyJustPressed(ebiten.KeyF1)
	state.Quit = inpututil.IsKeyJustPressed(ebiten.KeyEscape)

	for i, key := range modeKeys {
		if inpututil.IsKeyJustPressed(key) {
			state.ModeKey = i
			break
		}
	}

	return state
}
