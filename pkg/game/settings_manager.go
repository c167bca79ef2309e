package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/decker502/glowtrail/pkg/config"
)

// SettingsManager 设置管理器
// 负责把整份配置快照作为 YAML 存入 gdata，并在启动时读回
//
// 注意：设置是全局的，不绑定特定用户
type SettingsManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	cfg          *config.Config // 最近一次加载或保存的快照
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "config"
)

// NewSettingsManager 创建新的设置管理器实例并立即加载已保存的设置
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//
// 返回：
//   - *SettingsManager: 设置管理器实例
//   - error: 如果加载设置失败返回错误（不影响创建，此时使用默认配置）
func NewSettingsManager(gdataManager *gdata.Manager) (*SettingsManager, error) {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		cfg:          config.Default(),
	}

	// 尝试加载已保存的设置
	if err := sm.Load(); err != nil {
		// 加载失败不是致命错误，使用默认设置
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return sm, nil
}

// Load 从 gdata 加载配置
//
// 如果 gdataManager 为 nil 或文件不存在，使用默认配置。
// 加载成功后快照会立即做范围归一化，损坏的字段回到合法区间。
//
// 返回：
//   - error: 如果读取或反序列化失败返回错误
func (sm *SettingsManager) Load() error {
	// 降级模式：无法持久化，使用默认配置
	if sm.gdataManager == nil {
		sm.cfg = config.Default()
		return nil
	}

	// 检查设置文件是否存在
	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.cfg = config.Default()
		return nil
	}

	// 从 gdata 加载数据
	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.cfg = config.Default()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	// 反序列化 YAML 数据
	loaded := config.Default()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.cfg = config.Default()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	loaded.Normalize()
	sm.cfg = loaded
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// Save 保存配置快照到 gdata
//
// 快照先在内存中留底，随后序列化写盘。
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）。
//
// 参数：
//   - cfg: 待保存的配置快照
//
// 返回：
//   - error: 如果序列化或保存失败返回错误
func (sm *SettingsManager) Save(cfg *config.Config) error {
	cp := *cfg
	sm.cfg = &cp

	// 降级模式：无法持久化，但不报错
	if sm.gdataManager == nil {
		return nil
	}

	// 序列化设置为 YAML
	data, err := yaml.Marshal(&cp)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	// 保存到 gdata
	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// Config 获取最近一次加载或保存的配置快照
//
// 返回：
//   - *config.Config: 当前配置快照
func (sm *SettingsManager) Config() *config.Config {
	return sm.cfg
}
