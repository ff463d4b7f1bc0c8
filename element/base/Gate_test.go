package base

import (
	"testing"

	"circuitsim/element"
	"circuitsim/mna"
)

func TestInverterSlew(t *testing.T) {
	in := &LogicInput{Base: element.NewBase(ptsOf(1), 0, 1), HiV: 5}
	g := NewInverter(ptsOf(2), 1e-6, 5) // 每个时间步最多变化 5mV
	ele := []element.Device{in, g, NewResistor(ptsOf(2), 1000)}
	b := newBench(t, newFakeTime(), 3, ele, [][]mna.NodeID{{1}, {1, 2}, {2, 0}})
	for i := 1; i <= 10; i++ {
		b.step(t)
		if want := 0.005 * float64(i); abs(b.voltage(2)-want) > 1e-9 {
			t.Fatalf("第 %d 步输出电压不正确: 期望 %v, 实际 %v", i, want, b.voltage(2))
		}
	}
	// 输出电流流入输出节点
	if abs(g.CurrentIntoNode(1)-b.voltage(2)/1000) > 1e-12 || g.CurrentIntoNode(0) != 0 {
		t.Errorf("反相器电流不正确: %v", g.CurrentIntoNode(1))
	}
}

func TestSchmitt(t *testing.T) {
	g := NewInverter(ptsOf(2), 0.5, 5)
	g.Schmitt, g.LowerTrigger, g.UpperTrigger = true, 1.66, 3.33

	// 输入依次变化，输出带回差
	steps := []struct{ in, out float64 }{
		{0, 5}, {2, 5}, {4, 0}, {2, 0}, {1, 5},
	}
	for i, s := range steps {
		g.Volts[0] = s.in
		if out := g.output(); out != s.out {
			t.Errorf("第 %d 次输出不正确: 输入 %v, 期望 %v, 实际 %v", i, s.in, s.out, out)
		}
	}
}

func TestRailAndLogicInput(t *testing.T) {
	rail := NewRail(ptsOf(1), Waveform{Wave: WfDC, MaxVoltage: 5})
	in := &LogicInput{Base: element.NewBase(ptsOf(1), 0, 1), HiV: 3.3}
	ele := []element.Device{rail, NewResistor(ptsOf(2), 100), in, NewResistor(ptsOf(2), 100)}
	conn := [][]mna.NodeID{{1}, {1, 0}, {2}, {2, 0}}

	b := newBench(t, newFakeTime(), 3, ele, conn)
	b.step(t)
	if v := b.voltage(1); abs(v-5) > 1e-9 {
		t.Errorf("单端电源电压不正确: 期望 %v, 实际 %v", 5.0, v)
	}
	if v := b.voltage(2); abs(v) > 1e-12 {
		t.Errorf("逻辑输入低电平不正确: 期望 %v, 实际 %v", 0.0, v)
	}

	in.Toggle()
	b = newBench(t, newFakeTime(), 3, ele, conn)
	b.step(t)
	if v := b.voltage(2); abs(v-3.3) > 1e-9 {
		t.Errorf("逻辑输入高电平不正确: 期望 %v, 实际 %v", 3.3, v)
	}
	if !rail.Kind().Has(element.KindRail) || !rail.HasGroundConnection(0) {
		t.Errorf("单端电源类型不正确")
	}
}

func TestGround(t *testing.T) {
	g := NewGround(ptsOf(1))
	if !g.Kind().Has(element.KindGround) || g.VoltageSourceCount() != 0 || !g.HasGroundConnection(0) {
		t.Errorf("接地元件类型不正确")
	}
}
