package config

// 窗口布局配置
const (
	// GameWindowWidth 默认窗口宽度（像素）
	GameWindowWidth = 800

	// GameWindowHeight 默认窗口高度（像素）
	GameWindowHeight = 600

	// MinViewSize 逻辑画面的最小边长
	// 窗口最小化时 Ebitengine 可能给出 0 尺寸，此时不应重建发射器
	MinViewSize = 16
)

// LogicalSize 根据窗口外部尺寸计算逻辑画面尺寸
//
// 烟雾画面按窗口实际尺寸铺满（发射器锚点随之移动），
// 过小或无效的尺寸回落到默认窗口大小。
func LogicalSize(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth < MinViewSize || outsideHeight < MinViewSize {
		return GameWindowWidth, GameWindowHeight
	}
	return outsideWidth, outsideHeight
}
