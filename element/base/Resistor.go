package base

import (
	"circuitsim/element"
	"circuitsim/mna"
	"circuitsim/types"
)

// ResistorConfig 定义元件
var ResistorConfig = element.AddElement(&element.Config{
	Name:      "r",                    // 元件名称
	Pin:       []string{"r1", "r2"},   // 引脚名称，电阻有两个引脚
	ValueName: []string{"resistance"}, // 参数名称
	ValueInit: []float64{1000},        // 默认电阻值为1kΩ
}, func(posts []types.Point, values []float64) element.Device {
	return NewResistor(posts, values[0])
})

// Resistor 电阻元件
type Resistor struct {
	*element.Base
	Resistance float64 // 电阻值 (Ω)
}

// NewResistor 创建电阻
func NewResistor(posts []types.Point, r float64) *Resistor {
	return &Resistor{Base: element.NewBase(posts, 0, 0), Resistance: r}
}

// Stamp 电阻元件的MNA矩阵加盖操作
// 将电阻的电导贡献添加到MNA矩阵中，实现电阻的线性模型
func (r *Resistor) Stamp(m mna.Stamper, t mna.Time) {
	m.StampResistor(r.Nodes[0], r.Nodes[1], r.Resistance)
}

// CalculateCurrent 欧姆定律，电流从引脚0流向引脚1
func (r *Resistor) CalculateCurrent() {
	r.Current = r.VoltDiff() / r.Resistance
}
