package base

import (
	"circuitsim/element"
	"circuitsim/mna"
	"circuitsim/types"
)

// SwitchConfig 定义元件
var SwitchConfig = element.AddElement(&element.Config{
	Name:      "sw",
	Pin:       []string{"sw1", "sw2"},
	ValueName: []string{"closed"}, // 开关状态 (0=断开, 1=闭合)
	ValueInit: []float64{1},
}, func(posts []types.Point, values []float64) element.Device {
	return NewSwitch(posts, values[0] != 0)
})

// Switch 开关
// 闭合时等效为导线，用一个0V电压源实现以便得到电流；断开时两端无连接。
type Switch struct {
	*element.Base
	Closed bool
}

// NewSwitch 创建开关
func NewSwitch(posts []types.Point, closed bool) *Switch {
	return &Switch{Base: element.NewBase(posts, 0, 1), Closed: closed}
}

// Toggle 切换开关状态，调用方需要重新分析电路
func (s *Switch) Toggle() { s.Closed = !s.Closed }

func (s *Switch) IsWire() bool { return s.Closed }

func (s *Switch) VoltageSourceCount() int {
	if s.Closed {
		return 1
	}
	return 0
}

func (s *Switch) GetConnection(n1, n2 int) bool { return s.Closed }

func (s *Switch) Stamp(m mna.Stamper, t mna.Time) {
	if s.Closed {
		m.StampVoltageSource(s.Nodes[0], s.Nodes[1], s.VoltSource[0], 0)
	}
}

func (s *Switch) CalculateCurrent() {
	if !s.Closed {
		s.Current = 0
	}
}
