// Package load 读取求解器参数和电路描述，按元件注册表创建元件列表。
// 电路描述支持 YAML 和网表两种格式。
package load

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"circuitsim"
	"circuitsim/element"
	_ "circuitsim/element/base" // 注册元件
	"circuitsim/load/ast"
	"circuitsim/types"
)

// File 电路描述
type File struct {
	Solver   *types.Config `yaml:"solver,omitempty"` // 求解器参数，省略的字段取默认值
	Elements []ElementSpec `yaml:"elements"`
}

// ElementSpec 单个元件
type ElementSpec struct {
	Type   string             `yaml:"type"`             // 注册名称，如 "r"
	Posts  [][]int            `yaml:"posts"`            // 引脚坐标 [x, y]
	Values map[string]float64 `yaml:"values,omitempty"` // 参数，省略的取默认值
}

// ParseConfig 解析 YAML 求解器参数
func ParseConfig(data []byte) (*types.Config, error) {
	cfg := types.DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("解析求解器参数失败: %w", err)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig 读取 YAML 求解器参数文件
func LoadConfig(path string) (*types.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取求解器参数失败: %w", err)
	}
	return ParseConfig(data)
}

// ParseCircuit 解析 YAML 电路描述
func ParseCircuit(data []byte) (*File, error) {
	f := &File{Solver: types.DefaultConfig()}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(f); err != nil && err != io.EOF {
		return nil, fmt.Errorf("解析电路描述失败: %w", err)
	}
	f.Solver.ApplyDefaults()
	if err := f.Solver.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// ParseNetlist 解析网表
// 引脚写节点编号，同一编号的引脚相连，-1 为地。
// 值列表按元件参数顺序给出，未给出的取默认值。
func ParseNetlist(r io.Reader) (*File, error) {
	tree, err := ast.NewParseTree(r)
	if err != nil {
		return nil, err
	}
	f := &File{Solver: types.DefaultConfig()}
	grounded := false
	for _, n := range tree.ElementNodes {
		config, ok := element.Lookup(n.Type)
		if !ok {
			return nil, fmt.Errorf("第 %d 行: 未知的元件类型 '%s'", n.Line, n.Type)
		}
		if len(n.Values) > len(config.ValueName) {
			return nil, fmt.Errorf("第 %d 行: 元件 '%s' 最多 %d 个参数, 实际 %d", n.Line, n.Type, len(config.ValueName), len(n.Values))
		}
		spec := ElementSpec{Type: config.Name, Values: map[string]float64{}}
		for _, pin := range n.Pins {
			id, err := pin.ParseInt()
			if err != nil {
				return nil, err
			}
			if id < -1 {
				return nil, fmt.Errorf("第 %d 行: 无效的节点编号 %d", n.Line, id)
			}
			grounded = grounded || id == -1
			spec.Posts = append(spec.Posts, []int{id, 0})
		}
		for i, v := range n.Values {
			v, err := v.Resolve(tree.ValueNodes)
			if err != nil {
				return nil, err
			}
			x, err := v.ParseFloat64()
			if err != nil {
				return nil, err
			}
			spec.Values[config.ValueName[i]] = x
		}
		f.Elements = append(f.Elements, spec)
	}
	// 节点 -1 接地，接地元件放在最后以保持元件编号与网表顺序一致
	if grounded {
		f.Elements = append(f.Elements, ElementSpec{Type: "g", Posts: [][]int{{-1, 0}}})
	}
	return f, nil
}

// LoadCircuit 读取电路描述文件，.yaml/.yml 按 YAML 解析，其他按网表解析
func LoadCircuit(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取电路描述失败: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseCircuit(data)
	}
	return ParseNetlist(bytes.NewReader(data))
}

// Devices 按描述创建元件，顺序与描述一致
func (f *File) Devices() ([]element.Device, error) {
	devices := make([]element.Device, 0, len(f.Elements))
	for i, spec := range f.Elements {
		posts := make([]types.Point, len(spec.Posts))
		for j, p := range spec.Posts {
			if len(p) != 2 {
				return nil, fmt.Errorf("元件 %d: 引脚 %d 坐标应为 [x, y]", i, j)
			}
			posts[j] = types.Pt(p[0], p[1])
		}
		d, err := element.NewElement(spec.Type, posts, spec.Values)
		if err != nil {
			return nil, fmt.Errorf("元件 %d: %w", i, err)
		}
		devices = append(devices, d)
	}
	return devices, nil
}

// Circuit 创建电路并添加全部元件
func (f *File) Circuit(log *slog.Logger) (*circuitsim.Circuit, error) {
	devices, err := f.Devices()
	if err != nil {
		return nil, err
	}
	c, err := circuitsim.NewCircuit(f.Solver, log)
	if err != nil {
		return nil, err
	}
	for _, d := range devices {
		c.AddElement(d)
	}
	return c, nil
}
