package base

import (
	"testing"

	"circuitsim/element"
	"circuitsim/mna"
)

func TestResistor(t *testing.T) {
	// 元件列表
	src := NewDCVoltage(ptsOf(2), 5)
	r := NewResistor(ptsOf(2), 100)
	ele := []element.Device{src, r}
	// 电压源：负极接地，正极接节点1；电阻：节点1到地
	b := newBench(t, newFakeTime(), 2, ele, [][]mna.NodeID{{0, 1}, {1, 0}})
	b.step(t)

	// 节点1电压应为5V
	if v := b.voltage(1); abs(v-5) > 1e-9 {
		t.Errorf("节点1电压不正确: 期望 %v, 实际 %v", 5.0, v)
	}
	// 电阻电流从引脚0流向引脚1
	if abs(r.GetCurrent()-0.05) > 1e-9 {
		t.Errorf("电阻电流不正确: 期望 %v, 实际 %v", 0.05, r.GetCurrent())
	}
	// 电压源电流从正极流出
	if abs(src.GetCurrent()-0.05) > 1e-9 {
		t.Errorf("电压源电流不正确: 期望 %v, 实际 %v", 0.05, src.GetCurrent())
	}
	if r.CurrentIntoNode(0)+r.CurrentIntoNode(1) != 0 {
		t.Errorf("电阻两端电流不平衡")
	}
}

func TestWireAndSwitch(t *testing.T) {
	w := NewWire(ptsOf(2))
	if !w.IsWire() || !w.Kind().Has(element.KindWire) {
		t.Errorf("导线类型不正确")
	}
	sw := NewSwitch(ptsOf(2), true)
	if !sw.IsWire() || sw.VoltageSourceCount() != 1 || !sw.GetConnection(0, 1) {
		t.Errorf("闭合开关应等效为导线")
	}
	sw.Toggle()
	if sw.IsWire() || sw.VoltageSourceCount() != 0 || sw.GetConnection(0, 1) {
		t.Errorf("断开开关不应有连接")
	}
}

func TestSwitch(t *testing.T) {
	src := NewDCVoltage(ptsOf(2), 10)
	sw := NewSwitch(ptsOf(2), true)
	r := NewResistor(ptsOf(2), 1000)
	ele := []element.Device{src, sw, r}
	conn := [][]mna.NodeID{{0, 1}, {1, 2}, {2, 0}}

	b := newBench(t, newFakeTime(), 3, ele, conn)
	b.step(t)
	if v := b.voltage(2); abs(v-10) > 1e-9 {
		t.Errorf("闭合开关后节点2电压不正确: 期望 %v, 实际 %v", 10.0, v)
	}
	if abs(sw.GetCurrent()-0.01) > 1e-9 {
		t.Errorf("开关电流不正确: 期望 %v, 实际 %v", 0.01, sw.GetCurrent())
	}

	// 断开后节点2只经电阻接地
	sw.Toggle()
	b = newBench(t, newFakeTime(), 3, ele, conn)
	b.step(t)
	if v := b.voltage(2); abs(v) > 1e-9 {
		t.Errorf("断开开关后节点2电压不正确: 期望 %v, 实际 %v", 0.0, v)
	}
	if sw.GetCurrent() != 0 {
		t.Errorf("断开开关电流应为0, 实际 %v", sw.GetCurrent())
	}
}
