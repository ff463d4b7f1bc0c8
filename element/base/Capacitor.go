package base

import (
	"circuitsim/element"
	"circuitsim/mna"
	"circuitsim/types"
)

// CapacitorConfig 定义元件
var CapacitorConfig = element.AddElement(&element.Config{
	Name:      "c",
	Pin:       []string{"c1", "c2"},
	ValueName: []string{"capacitance", "voltage"},
	ValueInit: []float64{1e-5, 1e-3}, // 电容值10μF，初始电压1mV
}, func(posts []types.Point, values []float64) element.Device {
	return NewCapacitor(posts, values[0], values[1])
})

// dcResistance 直流分析时电容等效为大电阻
const dcResistance = 1e8

// Capacitor 电容元件
// 使用伴随模型：等效电阻与电流源并联，电流源在每个时间步开始时更新。
type Capacitor struct {
	*element.Base
	Capacitance    float64 // 电容值 (F)
	InitialVoltage float64 // 重置后的初始电压 (V)

	compResistance float64 // 伴随模型等效电阻
	curSource      float64 // 伴随模型电流源
	voltDiff       float64 // 两端电压差
	dc             bool
}

// NewCapacitor 创建电容
func NewCapacitor(posts []types.Point, c, v0 float64) *Capacitor {
	capacitor := &Capacitor{Base: element.NewBase(posts, 0, 0), Capacitance: c, InitialVoltage: v0}
	capacitor.Reset()
	return capacitor
}

func (c *Capacitor) Kind() element.Kind { return element.KindCapacitor }

// Reset 电容电压恢复为初始值
func (c *Capacitor) Reset() {
	c.Base.Reset()
	c.curSource = 0
	c.voltDiff = c.InitialVoltage
}

// Shorted 两端被导线短接，清除储能
func (c *Capacitor) Shorted() {
	c.voltDiff = 0
	c.Current = 0
	c.curSource = 0
}

// Stamp 梯形法等效电阻为 dt/2C，后向欧拉法为 dt/C
func (c *Capacitor) Stamp(m mna.Stamper, t mna.Time) {
	c.dc = t.Config().DCAnalysis
	if c.dc {
		m.StampResistor(c.Nodes[0], c.Nodes[1], dcResistance)
		return
	}
	if !t.Config().BackwardEuler {
		c.compResistance = t.TimeStep() / (2 * c.Capacitance)
	} else {
		c.compResistance = t.TimeStep() / c.Capacitance
	}
	m.StampResistor(c.Nodes[0], c.Nodes[1], c.compResistance)
	m.StampRightSideChanges(c.Nodes[0])
	m.StampRightSideChanges(c.Nodes[1])
}

func (c *Capacitor) StartIteration(t mna.Time) {
	if c.dc {
		return
	}
	if !t.Config().BackwardEuler {
		c.curSource = -c.voltDiff/c.compResistance - c.Current
	} else {
		c.curSource = -c.voltDiff / c.compResistance
	}
}

func (c *Capacitor) DoStep(m mna.Stamper, t mna.Time) {
	if c.dc {
		return
	}
	m.StampCurrentSource(c.Nodes[0], c.Nodes[1], c.curSource)
}

func (c *Capacitor) CalculateCurrent() {
	c.voltDiff = c.VoltDiff()
	if c.dc {
		c.Current = c.voltDiff / dcResistance
		return
	}
	if c.compResistance > 0 {
		c.Current = c.voltDiff/c.compResistance + c.curSource
	}
}

// Voltage 两端电压
func (c *Capacitor) Voltage() float64 { return c.voltDiff }
