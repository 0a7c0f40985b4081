package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// Fan speed range of the AC control screen.
const (
	MinFanSpeed = 1
	MaxFanSpeed = 3
)

// ViewerSettings 持久化的查看器设置（全局，不区分用户）
type ViewerSettings struct {
	// 空调面板
	FanSpeed int  `yaml:"fanSpeed"` // 1 ~ 3，对应预设 fan-1 ~ fan-3
	PowerOn  bool `yaml:"powerOn"`  // 关机时隐藏烟雾

	// Preset 启动时使用的预设名（为空时按 FanSpeed 选择）
	Preset string `yaml:"preset,omitempty"`

	// 显示设置
	Fullscreen bool `yaml:"fullscreen"` // 启动时是否全屏
}

// DefaultSettings 返回默认设置
func DefaultSettings() *ViewerSettings {
	return &ViewerSettings{
		FanSpeed:   MinFanSpeed,
		PowerOn:    true,
		Fullscreen: false,
	}
}

// FanPreset returns the preset name for the stored fan speed.
func (s *ViewerSettings) FanPreset() string {
	return fmt.Sprintf("fan-%d", clampFanSpeed(s.FanSpeed))
}

// SettingsManager 设置管理器
// 负责设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager  // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *ViewerSettings // 当前设置
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "viewer"
)

// NewSettingsManager 创建新的设置管理器实例
//
// gdataManager 可为 nil（降级模式，仅内存设置）。
// 加载失败不是致命错误，会记录日志并使用默认设置。
func NewSettingsManager(gdataManager *gdata.Manager) (*SettingsManager, error) {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return sm, nil
}

// Load 从 gdata 加载设置
//
// 如果 gdataManager 为 nil 或文件不存在，使用默认设置
func (sm *SettingsManager) Load() error {
	if sm.gdataManager == nil {
		sm.settings = DefaultSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	// 以默认值为底，缺失字段保持默认
	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	loaded.FanSpeed = clampFanSpeed(loaded.FanSpeed)

	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// Save 保存设置到 gdata
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *ViewerSettings {
	return sm.settings
}

// SetFanSpeed 设置风速，超出范围的值会被限制在 1 ~ 3
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetFanSpeed(speed int) {
	sm.settings.FanSpeed = clampFanSpeed(speed)
}

// SetPowerOn 设置电源状态
func (sm *SettingsManager) SetPowerOn(on bool) {
	sm.settings.PowerOn = on
}

// SetPreset 设置启动预设
func (sm *SettingsManager) SetPreset(name string) {
	sm.settings.Preset = name
}

// SetFullscreen 设置全屏模式
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.settings.Fullscreen = enabled
}

func clampFanSpeed(speed int) int {
	if speed < MinFanSpeed {
		return MinFanSpeed
	}
	if speed > MaxFanSpeed {
		return MaxFanSpeed
	}
	return speed
}
