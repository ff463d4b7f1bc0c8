package base

import (
	"math"

	"circuitsim/element"
	"circuitsim/mna"
	"circuitsim/types"
)

// TransformerConfig 定义元件
var TransformerConfig = element.AddElement(&element.Config{
	Name:      "t",
	Pin:       []string{"p1", "p2", "s1", "s2"},
	ValueName: []string{"inductance", "ratio", "coupling"},
	ValueInit: []float64{0.01, 1, 0.999}, // 初级电感、匝数比、耦合系数
}, func(posts []types.Point, values []float64) element.Device {
	return NewTransformer(posts, values[0], values[1], values[2])
})

// Transformer 变压器，初级 p1→p2，次级 s1→s2，同名端为 p1 和 s1
//
//	v1 = L1 di1/dt + M di2/dt
//	v2 = M di1/dt + L2 di2/dt
//
// 求逆后按积分方法离散，每个绕组等效为电导、受另一绕组电压控制的电流源和独立电流源。
type Transformer struct {
	*element.Base
	Inductance float64 // 初级电感 (H)
	Ratio      float64 // 匝数比，次级电感为 L1×Ratio²
	Coupling   float64 // 耦合系数

	currents  [2]float64 // 初级、次级绕组电流
	curSource [2]float64
	a         [4]float64 // 电感矩阵的逆乘以积分步长
}

// NewTransformer 创建变压器
func NewTransformer(posts []types.Point, l, ratio, k float64) *Transformer {
	return &Transformer{Base: element.NewBase(posts, 0, 0), Inductance: l, Ratio: ratio, Coupling: k}
}

// GetConnection 两个绕组各自导通，绕组之间没有直流通路
func (x *Transformer) GetConnection(n1, n2 int) bool { return n1/2 == n2/2 }

func (x *Transformer) Reset() {
	x.Base.Reset()
	x.currents = [2]float64{}
	x.curSource = [2]float64{}
}

func (x *Transformer) Stamp(m mna.Stamper, t mna.Time) {
	l1 := x.Inductance
	l2 := x.Inductance * x.Ratio * x.Ratio
	mu := x.Coupling * math.Sqrt(l1*l2)
	deti := 1 / (l1*l2 - mu*mu)
	ts := t.TimeStep()
	if !t.Config().BackwardEuler {
		ts /= 2
	}
	x.a = [4]float64{l2 * deti * ts, -mu * deti * ts, -mu * deti * ts, l1 * deti * ts}

	p1, p2, s1, s2 := x.Nodes[0], x.Nodes[1], x.Nodes[2], x.Nodes[3]
	m.StampConductance(p1, p2, x.a[0])
	m.StampVCCurrentSource(p1, p2, s1, s2, x.a[1])
	m.StampVCCurrentSource(s1, s2, p1, p2, x.a[2])
	m.StampConductance(s1, s2, x.a[3])
	for _, n := range x.Nodes {
		m.StampRightSideChanges(n)
	}
}

func (x *Transformer) StartIteration(t mna.Time) {
	if t.Config().BackwardEuler {
		x.curSource = x.currents
		return
	}
	vp, vs := x.Volts[0]-x.Volts[1], x.Volts[2]-x.Volts[3]
	x.curSource[0] = vp*x.a[0] + vs*x.a[1] + x.currents[0]
	x.curSource[1] = vp*x.a[2] + vs*x.a[3] + x.currents[1]
}

func (x *Transformer) DoStep(m mna.Stamper, t mna.Time) {
	m.StampCurrentSource(x.Nodes[0], x.Nodes[1], x.curSource[0])
	m.StampCurrentSource(x.Nodes[2], x.Nodes[3], x.curSource[1])
}

func (x *Transformer) CalculateCurrent() {
	vp, vs := x.Volts[0]-x.Volts[1], x.Volts[2]-x.Volts[3]
	x.currents[0] = vp*x.a[0] + vs*x.a[1] + x.curSource[0]
	x.currents[1] = vp*x.a[2] + vs*x.a[3] + x.curSource[1]
	x.Current = x.currents[0]
}

// SecondaryCurrent 次级绕组电流，从 s1 流向 s2
func (x *Transformer) SecondaryCurrent() float64 { return x.currents[1] }

// CurrentIntoNode 绕组电流从 p1/s1 流向 p2/s2
func (x *Transformer) CurrentIntoNode(p int) float64 {
	i := x.currents[p/2]
	if p%2 == 0 {
		return -i
	}
	return i
}
