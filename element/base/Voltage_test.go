package base

import (
	"math"
	"testing"

	"circuitsim/element"
	"circuitsim/mna"
)

func TestWaveform(t *testing.T) {
	tm := newFakeTime()
	wf := Waveform{Frequency: 1000, MaxVoltage: 5, Bias: 1, DutyCycle: 0.5}

	tests := []struct {
		wave Wave
		time float64
		want float64
	}{
		{WfDC, 0, 6},
		{WfAC, 0.25e-3, 6},
		{WfAC, 0.75e-3, -4},
		{WfSQUARE, 0.1e-3, 6},
		{WfSQUARE, 0.6e-3, -4},
		{WfTRIANGLE, 0, -4},
		{WfTRIANGLE, 0.5e-3, 6},
		{WfSAWTOOTH, 0, -4},
		{WfSAWTOOTH, 0.5e-3, 1},
		{WfPULSE, 0.1e-3, 6},
		{WfPULSE, 0.6e-3, 1},
	}
	for _, tt := range tests {
		wf.Wave = tt.wave
		tm.time = tt.time
		if v := wf.Voltage(tm); abs(v-tt.want) > 1e-9 {
			t.Errorf("波形 %d 在 %v 的电压不正确: 期望 %v, 实际 %v", tt.wave, tt.time, tt.want, v)
		}
	}

	// 直流分析时只取偏置
	tm.config.DCAnalysis = true
	wf.Wave = WfAC
	if v := wf.Voltage(tm); v != 1 {
		t.Errorf("直流分析电压不正确: 期望 %v, 实际 %v", 1.0, v)
	}
}

func TestNoiseDeterministic(t *testing.T) {
	values := []float64{float64(WfNOISE), 0, 2, 0, 0, 0}
	a, b := newWaveform(values), newWaveform(values)
	tm := newFakeTime()
	for range 10 {
		a.nextNoise()
		b.nextNoise()
		va, vb := a.Voltage(tm), b.Voltage(tm)
		if va != vb {
			t.Fatalf("相同种子的噪声不一致: %v %v", va, vb)
		}
		if math.Abs(va) > 2 {
			t.Fatalf("噪声超出幅值: %v", va)
		}
	}
}

func TestACVoltage(t *testing.T) {
	if _, err := element.NewElement("v", ptsOf(1), nil); err == nil {
		t.Fatalf("引脚数量错误时应返回错误")
	}
	src, err := element.NewElement("v", ptsOf(2), map[string]float64{"waveform": float64(WfAC), "frequency": 50, "maxVoltage": 10})
	if err != nil {
		t.Fatalf("创建电压源失败 %s", err)
	}
	r := NewResistor(ptsOf(2), 10)
	ft := newFakeTime()
	b := newBench(t, ft, 2, []element.Device{src, r}, [][]mna.NodeID{{0, 1}, {1, 0}})
	// 每个时间步的电压跟随正弦波
	for range 100 {
		b.step(t)
		want := 10 * math.Sin(2*math.Pi*50*(ft.time-ft.TimeStep()))
		if v := b.voltage(1); abs(v-want) > 1e-9 {
			t.Fatalf("交流电压不正确: 期望 %v, 实际 %v", want, v)
		}
	}
}
