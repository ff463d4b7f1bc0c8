package load

import (
	"errors"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"circuitsim/types"
)

var discard = slog.New(slog.DiscardHandler)

const dividerYAML = `
solver:
  timeStep: 1e-6
  backwardEuler: true
elements:
  - type: v
    posts: [[0, 0], [0, 1]]
    values: {maxVoltage: 10}
  - type: r
    posts: [[0, 1], [1, 1]]
  - type: r
    posts: [[1, 1], [0, 0]]
    values: {resistance: 1000}
`

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte("timeStep: 1e-5\nbackwardEuler: true\n"))
	if err != nil {
		t.Fatalf("解析失败 %s", err)
	}
	if cfg.TimeStep != 1e-5 || !cfg.BackwardEuler || cfg.SubIterMax != types.DefaultSubIterMax {
		t.Errorf("求解器参数不正确: %+v", cfg)
	}
	if _, err := ParseConfig([]byte("timeStep: -1\n")); err == nil {
		t.Errorf("负时间步长应返回错误")
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "solver.yaml")
	if err := os.WriteFile(path, []byte("subIterMax: 50\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("读取失败 %s", err)
	}
	if cfg.SubIterMax != 50 || cfg.TimeStep != types.DefaultTimeStep || cfg.BackwardEuler {
		t.Errorf("求解器参数不正确: %+v", cfg)
	}
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "none.yaml")); err == nil {
		t.Errorf("文件不存在应返回错误")
	}
}

func TestParseCircuit(t *testing.T) {
	f, err := ParseCircuit([]byte(dividerYAML))
	if err != nil {
		t.Fatalf("解析失败 %s", err)
	}
	if f.Solver.TimeStep != 1e-6 || !f.Solver.BackwardEuler || f.Solver.SubIterMax != types.DefaultSubIterMax {
		t.Errorf("求解器参数不正确: %+v", f.Solver)
	}
	c, err := f.Circuit(discard)
	if err != nil {
		t.Fatalf("创建电路失败 %s", err)
	}
	if _, err := c.Run(1); err != nil {
		t.Fatalf("仿真失败 %s", err)
	}
	mid := c.Element(1).GetNode(1)
	if v := c.Snapshot().Voltage(int(mid)); math.Abs(v-5) > 1e-9 {
		t.Errorf("节点电压不正确: 期望 %v, 实际 %v", 5.0, v)
	}

	if _, err := ParseCircuit([]byte("elements:\n  - typ: r\n")); err == nil {
		t.Errorf("未知字段应返回错误")
	}
}

func TestDevicesError(t *testing.T) {
	tests := []File{
		{Elements: []ElementSpec{{Type: "x", Posts: [][]int{{0, 0}}}}},
		{Elements: []ElementSpec{{Type: "r", Posts: [][]int{{0, 0}}}}},
		{Elements: []ElementSpec{{Type: "r", Posts: [][]int{{0, 0}, {1}}}}},
		{Elements: []ElementSpec{{Type: "r", Posts: [][]int{{0, 0}, {1, 0}}, Values: map[string]float64{"ohm": 1}}}},
	}
	for i, f := range tests {
		if _, err := f.Devices(); err == nil {
			t.Errorf("第 %d 组应返回错误", i)
		}
	}
}

func TestParseNetlist(t *testing.T) {
	netlist := `
	.value R 1k
	v1 [-1,1] [0,0,10]
	r1 [1,2] [%R]
	r2 [2,-1] [%R]
	`
	f, err := ParseNetlist(strings.NewReader(netlist))
	if err != nil {
		t.Fatalf("解析失败 %s", err)
	}
	// 地引脚自动添加接地元件
	if len(f.Elements) != 4 || f.Elements[3].Type != "g" {
		t.Fatalf("元件列表不正确: %+v", f.Elements)
	}
	if f.Elements[1].Values["resistance"] != 1000 {
		t.Errorf("电阻值不正确: %v", f.Elements[1].Values)
	}
	c, err := f.Circuit(discard)
	if err != nil {
		t.Fatalf("创建电路失败 %s", err)
	}
	if _, err := c.Run(1); err != nil {
		t.Fatalf("仿真失败 %s", err)
	}
	mid := c.Element(1).GetNode(1)
	if v := c.Snapshot().Voltage(int(mid)); math.Abs(v-5) > 1e-9 {
		t.Errorf("节点电压不正确: 期望 %v, 实际 %v", 5.0, v)
	}
	// 电压源负极接地
	if c.Element(0).GetNode(0) != 0 {
		t.Errorf("地节点编号不正确")
	}
}

func TestNetlistTopologyError(t *testing.T) {
	f, err := ParseNetlist(strings.NewReader("v1 [-1,1]\nw2 [1,-1]\n"))
	if err != nil {
		t.Fatalf("解析失败 %s", err)
	}
	c, err := f.Circuit(discard)
	if err != nil {
		t.Fatalf("创建电路失败 %s", err)
	}
	if _, err := c.Run(1); !errors.Is(err, types.ErrTopology) {
		t.Errorf("导线短接电压源应返回拓扑错误, 实际 %v", err)
	}
}

func TestParseNetlistError(t *testing.T) {
	for _, s := range []string{
		"x1 [1,2]",
		"r1 [1,2] [1,2,3]",
		"r1 [1,-2]",
		"r1 [1,2] [%R]",
		"r1 [1,2] [abc]",
	} {
		if _, err := ParseNetlist(strings.NewReader(s)); err == nil {
			t.Errorf("网表 %q 应返回错误", s)
		}
	}
}

func TestLoadCircuit(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "divider.yaml")
	netPath := filepath.Join(dir, "divider.net")
	if err := os.WriteFile(yamlPath, []byte(dividerYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(netPath, []byte("v1 [-1,1]\nr1 [1,-1] [100]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if f, err := LoadCircuit(yamlPath); err != nil || len(f.Elements) != 3 {
		t.Errorf("读取 YAML 失败: %v", err)
	}
	if f, err := LoadCircuit(netPath); err != nil || len(f.Elements) != 3 {
		t.Errorf("读取网表失败: %v", err)
	}
}
