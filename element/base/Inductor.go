package base

import (
	"circuitsim/element"
	"circuitsim/mna"
	"circuitsim/types"
)

// InductorConfig 定义元件
var InductorConfig = element.AddElement(&element.Config{
	Name:      "l",
	Pin:       []string{"l1", "l2"},
	ValueName: []string{"inductance"},
	ValueInit: []float64{1}, // 电感值1H
}, func(posts []types.Point, values []float64) element.Device {
	return NewInductor(posts, values[0])
})

// Inductor 电感元件
type Inductor struct {
	*element.Base
	Inductance float64 // 电感值 (H)

	compResistance float64
	curSource      float64
}

// NewInductor 创建电感
func NewInductor(posts []types.Point, l float64) *Inductor {
	return &Inductor{Base: element.NewBase(posts, 0, 0), Inductance: l}
}

func (l *Inductor) Kind() element.Kind { return element.KindInductor }

// Floating 没有电流通路时电流清零
func (l *Inductor) Floating(floating bool) {
	if floating {
		l.Reset()
	}
}

func (l *Inductor) Reset() {
	l.Base.Reset()
	l.curSource = 0
}

// Stamp 梯形法等效电阻为 2L/dt，后向欧拉法为 L/dt
func (l *Inductor) Stamp(m mna.Stamper, t mna.Time) {
	if !t.Config().BackwardEuler {
		l.compResistance = 2 * l.Inductance / t.TimeStep()
	} else {
		l.compResistance = l.Inductance / t.TimeStep()
	}
	m.StampResistor(l.Nodes[0], l.Nodes[1], l.compResistance)
	m.StampRightSideChanges(l.Nodes[0])
	m.StampRightSideChanges(l.Nodes[1])
}

func (l *Inductor) StartIteration(t mna.Time) {
	if !t.Config().BackwardEuler {
		l.curSource = l.VoltDiff()/l.compResistance + l.Current
	} else {
		l.curSource = l.Current
	}
}

func (l *Inductor) DoStep(m mna.Stamper, t mna.Time) {
	m.StampCurrentSource(l.Nodes[0], l.Nodes[1], l.curSource)
}

func (l *Inductor) CalculateCurrent() {
	if l.compResistance > 0 {
		l.Current = l.VoltDiff()/l.compResistance + l.curSource
	}
}
