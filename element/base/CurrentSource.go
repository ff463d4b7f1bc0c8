package base

import (
	"circuitsim/element"
	"circuitsim/mna"
	"circuitsim/types"
)

// CurrentSourceConfig 定义元件
var CurrentSourceConfig = element.AddElement(&element.Config{
	Name:      "i",
	Pin:       []string{"i1", "i2"},
	ValueName: []string{"current"},
	ValueInit: []float64{0.01},
}, func(posts []types.Point, values []float64) element.Device {
	return NewCurrentSource(posts, values[0])
})

// brokenResistance 电流源无通路时的替代电阻
const brokenResistance = 1e8

// CurrentSource 独立电流源，电流从引脚0经电流源流向引脚1
type CurrentSource struct {
	*element.Base
	Value  float64 // 电流值 (A)
	broken bool    // 无电流通路
}

// NewCurrentSource 创建电流源
func NewCurrentSource(posts []types.Point, i float64) *CurrentSource {
	return &CurrentSource{Base: element.NewBase(posts, 0, 0), Value: i}
}

func (s *CurrentSource) Kind() element.Kind { return element.KindCurrent }

// Floating 没有电流通路时以大电阻代替，避免矩阵奇异
func (s *CurrentSource) Floating(floating bool) { s.broken = floating }

// Broken 是否因无电流通路而断开
func (s *CurrentSource) Broken() bool { return s.broken }

func (s *CurrentSource) Stamp(m mna.Stamper, t mna.Time) {
	if s.broken {
		m.StampResistor(s.Nodes[0], s.Nodes[1], brokenResistance)
		s.Current = 0
		return
	}
	m.StampCurrentSource(s.Nodes[0], s.Nodes[1], s.Value)
	s.Current = s.Value
}
