package base

import (
	"math"
	"math/rand/v2"

	"circuitsim/mna"
)

// Wave 电源波形类型
type Wave int

// 电源波形
const (
	WfDC       Wave = iota // 直流波形
	WfAC                   // 交流波形
	WfSQUARE               // 方波
	WfTRIANGLE             // 三角波
	WfSAWTOOTH             // 锯齿波
	WfPULSE                // 脉冲波
	WfNOISE                // 噪声波
)

// waveValueName 波形参数名称，电压源与单端电源共用
var waveValueName = []string{"waveform", "frequency", "maxVoltage", "bias", "phaseShift", "dutyCycle"}

// Waveform 电源波形参数
type Waveform struct {
	Wave       Wave    // 波形类型
	Frequency  float64 // 频率 (Hz)
	MaxVoltage float64 // 幅值 (V)
	Bias       float64 // 偏置电压 (V)
	PhaseShift float64 // 相位偏移 (rad)
	DutyCycle  float64 // 占空比

	noise float64
	rng   *rand.Rand
}

// newWaveform 按参数顺序创建波形
func newWaveform(values []float64) Waveform {
	return Waveform{
		Wave:       Wave(values[0]),
		Frequency:  values[1],
		MaxVoltage: values[2],
		Bias:       values[3],
		PhaseShift: values[4],
		DutyCycle:  values[5],
		rng:        rand.New(rand.NewPCG(1, 2)),
	}
}

// nextNoise 每个时间步结束时更新噪声值
func (wf *Waveform) nextNoise() {
	if wf.Wave == WfNOISE {
		wf.noise = (wf.rng.Float64()*2-1)*wf.MaxVoltage + wf.Bias
	}
}

// Voltage 获取 t 时刻的电压，直流分析时非直流波形只取偏置
func (wf *Waveform) Voltage(t mna.Time) float64 {
	if wf.Wave != WfDC && t.Config().DCAnalysis {
		return wf.Bias
	}
	w := 2*math.Pi*t.Time()*wf.Frequency + wf.PhaseShift
	switch wf.Wave {
	case WfDC:
		return wf.MaxVoltage + wf.Bias
	case WfAC:
		return math.Sin(w)*wf.MaxVoltage + wf.Bias
	case WfSQUARE:
		if math.Mod(w, 2*math.Pi) > 2*math.Pi*wf.DutyCycle {
			return wf.Bias - wf.MaxVoltage
		}
		return wf.Bias + wf.MaxVoltage
	case WfTRIANGLE:
		return wf.Bias + triangleFunc(math.Mod(w, 2*math.Pi))*wf.MaxVoltage
	case WfSAWTOOTH:
		return wf.Bias + math.Mod(w, 2*math.Pi)*(wf.MaxVoltage/math.Pi) - wf.MaxVoltage
	case WfPULSE:
		if math.Mod(w, 2*math.Pi) < 2*math.Pi*wf.DutyCycle {
			return wf.MaxVoltage + wf.Bias
		}
		return wf.Bias
	case WfNOISE:
		return wf.noise
	default:
		return 0
	}
}

func triangleFunc(x float64) float64 {
	if x < math.Pi {
		return x*(2/math.Pi) - 1
	}
	return 1 - (x-math.Pi)*(2/math.Pi)
}
