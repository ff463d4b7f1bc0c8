package element

import (
	"fmt"
	"log"
	"slices"
	"strings"
	"sync"

	"circuitsim/types"
)

// Config 元件配置结构体，存储元件的静态配置信息。
// 这些配置在元件注册时初始化，并在整个仿真过程中保持不变。
type Config struct {
	Name      string    // 元件名称（如 "r" 表示电阻）
	Pin       []string  // 引脚名称
	ValueName []string  // 参数名称
	ValueInit []float64 // 参数默认值，与 ValueName 一一对应
}

// Factory 按引脚坐标和参数创建元件
type Factory func(posts []types.Point, values []float64) Device

type entry struct {
	config  *Config
	factory Factory
}

var (
	registryMu sync.RWMutex
	registry   = map[string]entry{}
)

// AddElement 注册元件，名称重复直接退出
func AddElement(config *Config, factory Factory) *Config {
	registryMu.Lock()
	defer registryMu.Unlock()
	name := strings.ToLower(config.Name)
	if _, ok := registry[name]; ok {
		log.Fatalf("元件重复注册: %s", name)
	}
	if len(config.ValueName) != len(config.ValueInit) {
		log.Fatalf("元件 %s 参数名称与默认值数量不一致", name)
	}
	registry[name] = entry{config: config, factory: factory}
	return config
}

// Lookup 获取元件配置
func Lookup(name string) (*Config, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	e, ok := registry[strings.ToLower(name)]
	return e.config, ok
}

// Names 已注册的元件名称，按字母排序
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Values 按配置顺序展开参数，未给出的参数取默认值
func (config *Config) Values(values map[string]float64) ([]float64, error) {
	out := slices.Clone(config.ValueInit)
	for k, v := range values {
		i := slices.Index(config.ValueName, k)
		if i < 0 {
			return nil, fmt.Errorf("元件 %s 没有参数 %q", config.Name, k)
		}
		out[i] = v
	}
	return out, nil
}

// NewElement 按名称创建元件
// 参数name: 元件名称
// 参数posts: 引脚坐标，数量必须与配置一致
// 参数values: 参数值，按名称覆盖默认值
func NewElement(name string, posts []types.Point, values map[string]float64) (Device, error) {
	registryMu.RLock()
	e, ok := registry[strings.ToLower(name)]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("未知元件类型: %s", name)
	}
	if len(posts) != len(e.config.Pin) {
		return nil, fmt.Errorf("元件 %s 需要 %d 个引脚, 实际 %d", e.config.Name, len(e.config.Pin), len(posts))
	}
	vals, err := e.config.Values(values)
	if err != nil {
		return nil, err
	}
	return e.factory(posts, vals), nil
}
