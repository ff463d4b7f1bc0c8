package ast

import (
	"strings"
	"testing"
)

const netlist = `# 分压电路
.value R 4.7k
v1 [-1,1] [0,0,10]
r1 [1,2] [%R]  // 上臂
/* 下臂 */
r2 [2,-1] [4.7k]
w3 [2,3]
`

func TestParseTree(t *testing.T) {
	tree, err := NewParseTree(strings.NewReader(netlist))
	if err != nil {
		t.Fatalf("解析失败 %s", err)
	}
	if len(tree.ElementNodes) != 4 {
		t.Fatalf("元件数量不正确: 期望 %v, 实际 %v", 4, len(tree.ElementNodes))
	}
	if len(tree.CommentNodes) != 3 {
		t.Errorf("注释数量不正确: 期望 %v, 实际 %v", 3, len(tree.CommentNodes))
	}
	if tree.ValueNodes["R"] != "4.7k" {
		t.Errorf("变量不正确: %v", tree.ValueNodes)
	}

	r1 := tree.ElementNodes[1]
	if r1.Type != "r" || r1.ID != "1" || r1.Line != 4 {
		t.Errorf("元件解析不正确: %+v", r1)
	}
	if len(r1.Pins) != 2 || r1.Pins[0].Value != "1" || !r1.Values[0].IsVar {
		t.Errorf("引脚或值解析不正确: %v %v", r1.Pins, r1.Values)
	}
	v, err := r1.Values[0].Resolve(tree.ValueNodes)
	if err != nil {
		t.Fatalf("变量替换失败 %s", err)
	}
	if f, err := v.ParseFloat64(); err != nil || f != 4700 {
		t.Errorf("数值不正确: 期望 %v, 实际 %v %v", 4700, f, err)
	}
	if w := tree.ElementNodes[3]; w.Type != "w" || len(w.Values) != 0 || w.Line != 7 {
		t.Errorf("无参数元件解析不正确: %+v", w)
	}
	if p, err := tree.ElementNodes[0].Pins[0].ParseInt(); err != nil || p != -1 {
		t.Errorf("地引脚解析不正确: %v %v", p, err)
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"10", 10},
		{"1e-3", 1e-3},
		{"2.2k", 2200},
		{"100n", 100e-9},
		{"-5", -5},
		{"1M", 1e6},
	}
	for _, tt := range tests {
		v, err := Value{Value: tt.in}.ParseFloat64()
		if err != nil || abs(v-tt.want) > 1e-12*abs(tt.want) {
			t.Errorf("数值 %q 解析不正确: 期望 %v, 实际 %v %v", tt.in, tt.want, v, err)
		}
	}
	if _, err := (Value{Value: "abc"}).ParseFloat64(); err == nil {
		t.Errorf("无效数值应返回错误")
	}
	if _, err := (Value{Value: "x", IsVar: true}).Resolve(nil); err == nil {
		t.Errorf("未定义变量应返回错误")
	}
}

func TestParseError(t *testing.T) {
	for _, s := range []string{
		"r [1,2]",
		"r1 1,2",
		"r1 [1,2\n",
		".value R",
	} {
		if _, err := NewParseTree(strings.NewReader(s)); err == nil {
			t.Errorf("网表 %q 应返回错误", s)
		}
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
