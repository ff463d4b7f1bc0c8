package base

import (
	"math"
	"testing"

	"circuitsim/element"
	"circuitsim/mna"
)

// rcCircuit 5V 经 1kΩ 给 1μF 电容充电
func rcCircuit(t *testing.T, ft *fakeTime) (*bench, *Capacitor) {
	c := NewCapacitor(ptsOf(2), 1e-6, 0)
	ele := []element.Device{NewDCVoltage(ptsOf(2), 5), NewResistor(ptsOf(2), 1000), c}
	return newBench(t, ft, 3, ele, [][]mna.NodeID{{0, 1}, {1, 2}, {2, 0}}), c
}

func TestCapacitorCharge(t *testing.T) {
	want := 5 * (1 - math.Exp(-1))
	for _, trapezoidal := range []bool{true, false} {
		ft := newFakeTime()
		ft.config.BackwardEuler = !trapezoidal
		b, c := rcCircuit(t, ft)
		// 一个时间常数
		for range 200 {
			b.step(t)
		}
		if v := c.Voltage(); abs(v-want) > 0.01 {
			t.Errorf("电容电压不正确(梯形法 %v): 期望 %v, 实际 %v", trapezoidal, want, v)
		}
		// 电容电流等于电阻电流
		if i := (5 - b.voltage(2)) / 1000; abs(c.GetCurrent()-i) > 1e-9 {
			t.Errorf("电容电流不正确: 期望 %v, 实际 %v", i, c.GetCurrent())
		}
	}
}

func TestCapacitorState(t *testing.T) {
	c := NewCapacitor(ptsOf(2), 1e-6, 2)
	if c.Voltage() != 2 {
		t.Errorf("初始电压不正确: 期望 %v, 实际 %v", 2.0, c.Voltage())
	}
	c.Shorted()
	if c.Voltage() != 0 || c.GetCurrent() != 0 {
		t.Errorf("短接后电容应放电")
	}
	c.Reset()
	if c.Voltage() != 2 {
		t.Errorf("重置后电压不正确: 期望 %v, 实际 %v", 2.0, c.Voltage())
	}
	if !c.Kind().Has(element.KindCapacitor) {
		t.Errorf("电容类型不正确")
	}
}

func TestCapacitorDCAnalysis(t *testing.T) {
	ft := newFakeTime()
	ft.config.DCAnalysis = true
	b, c := rcCircuit(t, ft)
	b.step(t)
	want := 5 * dcResistance / (dcResistance + 1000)
	if v := c.Voltage(); abs(v-want) > 1e-9 {
		t.Errorf("直流分析电容电压不正确: 期望 %v, 实际 %v", want, v)
	}
}
