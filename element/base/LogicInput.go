package base

import (
	"circuitsim/element"
	"circuitsim/mna"
	"circuitsim/types"
)

// LogicInputConfig 定义元件
var LogicInputConfig = element.AddElement(&element.Config{
	Name:      "logic",
	Pin:       []string{"out"},
	ValueName: []string{"high", "hiV", "loV"},
	ValueInit: []float64{0, 5, 0},
}, func(posts []types.Point, values []float64) element.Device {
	return &LogicInput{
		Base: element.NewBase(posts, 0, 1),
		High: values[0] != 0,
		HiV:  values[1],
		LoV:  values[2],
	}
})

// LogicInput 逻辑输入，输出高电平或低电平
type LogicInput struct {
	*element.Base
	High bool    // 当前状态
	HiV  float64 // 高电平 (V)
	LoV  float64 // 低电平 (V)
}

func (l *LogicInput) Kind() element.Kind             { return element.KindRail }
func (l *LogicInput) HasGroundConnection(n int) bool { return true }

// Toggle 切换输出状态，调用方需要重新分析电路
func (l *LogicInput) Toggle() { l.High = !l.High }

func (l *LogicInput) Stamp(m mna.Stamper, t mna.Time) {
	v := l.LoV
	if l.High {
		v = l.HiV
	}
	m.StampVoltageSource(mna.Gnd, l.Nodes[0], l.VoltSource[0], v)
}
