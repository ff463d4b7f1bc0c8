package base

import (
	"math"
	"testing"

	"circuitsim/element"
	"circuitsim/mna"
)

func TestInductor(t *testing.T) {
	want := 1 - math.Exp(-1)
	for _, trapezoidal := range []bool{true, false} {
		ft := newFakeTime()
		ft.config.BackwardEuler = !trapezoidal
		l := NewInductor(ptsOf(2), 1e-3)
		ele := []element.Device{NewDCVoltage(ptsOf(2), 1), NewResistor(ptsOf(2), 1), l}
		b := newBench(t, ft, 3, ele, [][]mna.NodeID{{0, 1}, {1, 2}, {2, 0}})
		// 时间常数 L/R = 1ms
		for range 200 {
			b.step(t)
		}
		if abs(l.GetCurrent()-want) > 0.01 {
			t.Errorf("电感电流不正确(梯形法 %v): 期望 %v, 实际 %v", trapezoidal, want, l.GetCurrent())
		}
	}
}

func TestInductorFloating(t *testing.T) {
	l := NewInductor(ptsOf(2), 1)
	l.Current = 1
	l.Floating(false)
	if l.GetCurrent() != 1 {
		t.Errorf("有通路时电感电流不应改变")
	}
	l.Floating(true)
	if l.GetCurrent() != 0 {
		t.Errorf("无通路时电感电流应清零, 实际 %v", l.GetCurrent())
	}
}
