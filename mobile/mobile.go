//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此包用于构建 Android (.aar) 和 iOS (.xcframework) 包，
// 使用 ebitenmobile 工具构建时会自动调用 init() 函数。
// 触摸按住等价于桌面端的 Ctrl 激活，轨迹跟随手指绘制。
//
// 此文件仅在使用 -tags mobile 构建时编译：
//
//	# Android
//	ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.decker.glowtrail -o build/android/glowtrail.aar -v ./mobile
//
//	# iOS (仅 macOS)
//	ebitenmobile bind -target ios -tags mobile -o build/ios/GlowTrail.xcframework -v ./mobile
package mobile

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/mobile"

	"github.com/decker502/glowtrail/pkg/app"
)

func init() {
	g, _, err := app.NewGame(app.Config{Verbose: true})
	if err != nil {
		log.Fatalf("引擎初始化失败: %v", err)
	}

	// 移动端进程没有显式退出点，清理随进程终止完成
	mobile.SetGame(g)
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}
