package base

import (
	"testing"

	"circuitsim/element"
	"circuitsim/mna"
)

func TestOpAmp(t *testing.T) {
	// 同相放大器：增益 = 1 + R2/R1 = 3
	// 节点1 输入，节点2 反相输入，节点3 输出
	op := NewOpAmp(ptsOf(3), 15, -15, 1e5)
	ele := []element.Device{
		NewDCVoltage(ptsOf(2), 1),
		NewResistor(ptsOf(2), 1000),
		NewResistor(ptsOf(2), 2000),
		op,
	}
	b := newBench(t, newFakeTime(), 4, ele, [][]mna.NodeID{{0, 1}, {2, 0}, {2, 3}, {2, 1, 3}})
	b.step(t)
	if v := b.voltage(3); abs(v-3) > 1e-3 {
		t.Errorf("运放输出电压不正确: 期望 %v, 实际 %v", 3.0, v)
	}
	// 虚短
	if d := b.voltage(1) - b.voltage(2); abs(d) > 1e-3 {
		t.Errorf("运放虚短特性不正确: 输入差 %v", d)
	}
	// 输出电流经 R2、R1 到地
	if i := op.CurrentIntoNode(2); abs(i-1e-3) > 1e-6 {
		t.Errorf("运放输出电流不正确: 期望 %v, 实际 %v", 1e-3, i)
	}
	if op.CurrentIntoNode(0) != 0 || op.CurrentIntoNode(1) != 0 {
		t.Errorf("运放输入端不应有电流")
	}
}

func TestOpAmpClamp(t *testing.T) {
	// 增益 100 的同相放大器，输出被钳位
	for _, vin := range []float64{1, -1} {
		op := NewOpAmp(ptsOf(3), 15, -15, 1e5)
		ele := []element.Device{
			NewDCVoltage(ptsOf(2), vin),
			NewResistor(ptsOf(2), 1000),
			NewResistor(ptsOf(2), 99e3),
			op,
		}
		ft := newFakeTime()
		b := newBench(t, ft, 4, ele, [][]mna.NodeID{{0, 1}, {2, 0}, {2, 3}, {2, 1, 3}})
		b.step(t)
		want := 15 * vin
		if v := b.voltage(3); abs(v-want) > 0.01 {
			t.Errorf("运放钳位电压不正确: 期望 %v, 实际 %v", want, v)
		}
		// 首次求解在线性区，钳位需要多次子迭代
		if ft.sub < 2 {
			t.Errorf("钳位应经过多次子迭代: %d", ft.sub)
		}
	}
}

func TestOpAmpReset(t *testing.T) {
	op := NewOpAmp(ptsOf(3), 15, -15, 1e5)
	op.lastVd = 1
	op.Volts[2] = 15
	op.Reset()
	if op.lastVd != 0 || op.Volts[2] != 0 {
		t.Errorf("重置后状态不正确: %v %v", op.lastVd, op.Volts)
	}
	if !op.HasGroundConnection(2) || op.HasGroundConnection(0) || op.GetConnection(0, 1) {
		t.Errorf("运放连接关系不正确")
	}
}

func TestVCVS(t *testing.T) {
	s, err := element.NewElement("vcvs", ptsOf(4), map[string]float64{"gain": 2.5})
	if err != nil {
		t.Fatalf("创建受控源失败 %s", err)
	}
	// 输入1V，输出2.5V 经1kΩ接地
	ele := []element.Device{NewDCVoltage(ptsOf(2), 1), s, NewResistor(ptsOf(2), 1000)}
	b := newBench(t, newFakeTime(), 3, ele, [][]mna.NodeID{{0, 1}, {1, 0, 2, 0}, {2, 0}})
	b.step(t)
	if v := b.voltage(2); abs(v-2.5) > 1e-9 {
		t.Errorf("输出电压不正确: 期望 %v, 实际 %v", 2.5, v)
	}
	if i := s.CurrentIntoNode(2); abs(i-2.5e-3) > 1e-12 {
		t.Errorf("输出电流不正确: 期望 %v, 实际 %v", 2.5e-3, i)
	}
	if s.CurrentIntoNode(0) != 0 {
		t.Errorf("输入端不应有电流")
	}
}
