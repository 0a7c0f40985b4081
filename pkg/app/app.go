// Package app 提供烟雾查看器应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"

	"github.com/decker502/smokefx/pkg/config"
	"github.com/decker502/smokefx/pkg/game"
	"github.com/decker502/smokefx/pkg/scenes"
	"github.com/decker502/smokefx/pkg/utils"
)

// AppName gdata 存储使用的应用名
const AppName = "smokefx"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Preset 指定启动预设（如 "glyph-mix"），为空则使用存储的风速
	Preset string
	// PresetPath 预设文件路径，为空则使用内置预设
	PresetPath string
	// Seed 随机种子，0 表示按时间播种
	Seed int64
}

// App 是查看器应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager             *game.SceneManager
	settings                 *game.SettingsManager
	verbose                  bool
	saved                    bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化查看器应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[App] Warning: %v", err)
	}

	// gdata 打开失败时进入降级模式（设置只保存在内存中）
	gdataManager, err := gdata.Open(gdata.Config{AppName: AppName})
	if err != nil {
		log.Printf("[App] Warning: gdata unavailable: %v (settings will not persist)", err)
		gdataManager = nil
	}

	settings, err := game.NewSettingsManager(gdataManager)
	if err != nil {
		return nil, fmt.Errorf("设置初始化失败: %w", err)
	}
	if cfg.Preset != "" {
		settings.SetPreset(cfg.Preset)
	}

	presetPath := cfg.PresetPath
	if presetPath == "" {
		presetPath = config.DefaultPresetPath
	}
	presets, err := config.LoadPresetConfig(presetPath)
	if err != nil {
		return nil, fmt.Errorf("预设加载失败: %w", err)
	}

	var opts []scenes.SmokeSceneOption
	if cfg.Seed != 0 {
		opts = append(opts, scenes.WithSeed(cfg.Seed))
	}

	resourceManager := game.NewResourceManager()
	fanScene, err := scenes.NewFanControlScene(resourceManager, presets, settings, opts...)
	if err != nil {
		return nil, fmt.Errorf("场景初始化失败: %w", err)
	}

	sceneManager := game.NewSceneManager()
	sceneManager.SwitchTo(fanScene)

	if settings.GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	log.Printf("[App] Started with preset %s", fanScene.CurrentPreset())
	return &App{
		sceneManager: sceneManager,
		settings:     settings,
		verbose:      cfg.Verbose,
	}, nil
}

// Update 更新逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	if ebiten.IsWindowBeingClosed() {
		a.Shutdown()
		return ebiten.Termination
	}

	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			a.settings.SetFullscreen(false)
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
			a.settings.SetFullscreen(true)
		}
	}

	deltaTime := 1.0 / 60.0
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
// 烟雾画面跟随窗口尺寸，尺寸变化时场景会重建发射器
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := config.LogicalSize(outsideWidth, outsideHeight)
	a.sceneManager.Resize(w, h)
	return w, h
}

// Shutdown 保存当前场景状态并释放资源，可重复调用
func (a *App) Shutdown() {
	if a.saved {
		return
	}
	a.saved = true

	current := a.sceneManager.GetCurrentScene()
	if s, ok := current.(game.Saveable); ok {
		if !s.SaveOnExit() {
			log.Printf("[App] Warning: scene state was not saved")
		}
	}
	if r, ok := current.(game.Releasable); ok {
		r.Release()
	}
	log.Printf("[App] Shutdown complete")
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
