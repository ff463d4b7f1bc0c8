package base

import (
	"circuitsim/element"
	"circuitsim/mna"
	"circuitsim/types"
)

// InverterConfig 定义元件
var InverterConfig = element.AddElement(&element.Config{
	Name:      "not",
	Pin:       []string{"in", "out"},
	ValueName: []string{"slewRate", "high"},
	ValueInit: []float64{0.5, 5}, // 压摆率 V/ns，高电平 V
}, func(posts []types.Point, values []float64) element.Device {
	return NewInverter(posts, values[0], values[1])
})

// SchmittConfig 定义元件
var SchmittConfig = element.AddElement(&element.Config{
	Name:      "schmitt",
	Pin:       []string{"in", "out"},
	ValueName: []string{"slewRate", "lowerTrigger", "upperTrigger", "high", "low"},
	ValueInit: []float64{0.5, 1.66, 3.33, 5, 0},
}, func(posts []types.Point, values []float64) element.Device {
	g := NewInverter(posts, values[0], values[3])
	g.Schmitt = true
	g.LowerTrigger, g.UpperTrigger, g.Low = values[1], values[2], values[4]
	return g
})

// Gate 反相器，输出是接地的受控电压源，输入没有电流
// Schmitt 为真时按上下阈值带回差翻转。
type Gate struct {
	*element.Base
	SlewRate float64 // 压摆率 (V/ns)
	High     float64 // 高电平 (V)
	Low      float64 // 低电平 (V)

	Schmitt      bool
	LowerTrigger float64
	UpperTrigger float64
	state        bool // 施密特输出为高
}

// NewInverter 创建反相器
func NewInverter(posts []types.Point, slew, high float64) *Gate {
	return &Gate{Base: element.NewBase(posts, 0, 1), SlewRate: slew, High: high}
}

// GetConnection 输入与输出之间没有直接通路，输出经电压源接地
func (g *Gate) GetConnection(n1, n2 int) bool  { return false }
func (g *Gate) HasGroundConnection(n int) bool { return n == 1 }

func (g *Gate) Reset() {
	g.Base.Reset()
	g.state = false
}

func (g *Gate) Stamp(m mna.Stamper, t mna.Time) {
	m.StampVoltageSourceChanges(mna.Gnd, g.Nodes[1], g.VoltSource[0])
}

// output 目标输出电平
func (g *Gate) output() float64 {
	in := g.Volts[0]
	if !g.Schmitt {
		if in > g.High*0.5 {
			return g.Low
		}
		return g.High
	}
	if g.state {
		if in > g.UpperTrigger {
			g.state = false
			return g.Low
		}
		return g.High
	}
	if in < g.LowerTrigger {
		g.state = true
		return g.High
	}
	return g.Low
}

// DoStep 输出按压摆率逐步逼近目标电平
func (g *Gate) DoStep(m mna.Stamper, t mna.Time) {
	v0 := g.Volts[1]
	maxStep := g.SlewRate * t.TimeStep() * 1e9
	out := max(min(v0+maxStep, g.output()), v0-maxStep)
	m.UpdateVoltageSource(g.VoltSource[0], out)
}

func (g *Gate) CurrentIntoNode(p int) float64 {
	if p == 1 {
		return g.Current
	}
	return 0
}
