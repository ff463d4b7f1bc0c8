package base

import (
	"circuitsim/element"
	"circuitsim/mna"
	"circuitsim/types"
)

// VCVSConfig 定义元件
var VCVSConfig = element.AddElement(&element.Config{
	Name:      "vcvs",
	Pin:       []string{"in+", "in-", "out+", "out-"},
	ValueName: []string{"gain"},
	ValueInit: []float64{1},
}, func(posts []types.Point, values []float64) element.Device {
	return &VCVS{Base: element.NewBase(posts, 0, 1), Gain: values[0]}
})

// VCVS 电压控制电压源
// V(out+)-V(out-) = Gain×(V(in+)-V(in-))，输入端不取电流。
type VCVS struct {
	*element.Base
	Gain float64
}

func (s *VCVS) GetConnection(n1, n2 int) bool { return n1 >= 2 && n2 >= 2 }

func (s *VCVS) Stamp(m mna.Stamper, t mna.Time) {
	m.StampVCVS(s.Nodes[3], s.Nodes[2], s.Nodes[0], s.Nodes[1], s.VoltSource[0], s.Gain)
}

// CurrentIntoNode 电压源电流经 out+ 流出元件
func (s *VCVS) CurrentIntoNode(p int) float64 {
	switch p {
	case 2:
		return s.Current
	case 3:
		return -s.Current
	}
	return 0
}
