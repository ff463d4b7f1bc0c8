package base

import (
	"circuitsim/element"
	"circuitsim/mna"
	"circuitsim/types"
)

// VCCSConfig 定义元件
var VCCSConfig = element.AddElement(&element.Config{
	Name:      "vccs",
	Pin:       []string{"in+", "in-", "out+", "out-"},
	ValueName: []string{"gain"},
	ValueInit: []float64{1e-3}, // 跨导 (S)
}, func(posts []types.Point, values []float64) element.Device {
	return &VCCS{Base: element.NewBase(posts, 0, 0), Gain: values[0]}
})

// CCCSConfig 定义元件
var CCCSConfig = element.AddElement(&element.Config{
	Name:      "cccs",
	Pin:       []string{"in+", "in-", "out+", "out-"},
	ValueName: []string{"gain"},
	ValueInit: []float64{1},
}, func(posts []types.Point, values []float64) element.Device {
	return &CCCS{Base: element.NewBase(posts, 0, 1), Gain: values[0]}
})

// VCCS 电压控制电流源
// 输出电流 Gain×(V(in+)-V(in-)) 经元件从 out+ 流向 out-。
type VCCS struct {
	*element.Base
	Gain float64
}

func (s *VCCS) GetConnection(n1, n2 int) bool { return false }

func (s *VCCS) Stamp(m mna.Stamper, t mna.Time) {
	m.StampVCCurrentSource(s.Nodes[2], s.Nodes[3], s.Nodes[0], s.Nodes[1], s.Gain)
}

func (s *VCCS) CalculateCurrent() {
	s.Current = s.Gain * s.VoltDiff()
}

func (s *VCCS) CurrentIntoNode(p int) float64 {
	switch p {
	case 2:
		return -s.Current
	case 3:
		return s.Current
	}
	return 0
}

// CCCS 电流控制电流源
// 输入端是一个0V电压源，输出电流 Gain×I(in) 经元件从 out+ 流向 out-。
type CCCS struct {
	*element.Base
	Gain float64
}

func (s *CCCS) GetConnection(n1, n2 int) bool {
	return n1 < 2 && n2 < 2
}

func (s *CCCS) Stamp(m mna.Stamper, t mna.Time) {
	m.StampVoltageSource(s.Nodes[0], s.Nodes[1], s.VoltSource[0], 0)
	m.StampCCCS(s.Nodes[2], s.Nodes[3], s.VoltSource[0], s.Gain)
}

// OutputCurrent 输出电流
func (s *CCCS) OutputCurrent() float64 { return s.Gain * s.Current }

func (s *CCCS) CurrentIntoNode(p int) float64 {
	switch p {
	case 0:
		return -s.Current
	case 1:
		return s.Current
	case 2:
		return -s.OutputCurrent()
	}
	return s.OutputCurrent()
}
