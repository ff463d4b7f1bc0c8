package element

import (
	"log"

	"circuitsim/mna"
)

// Mark 用于区分事件的标记
type Mark uint8

// 接口回调类型
const (
	MarkReset            Mark = iota // 元件重置
	MarkStartIteration               // 时间步开始
	MarkStamp                        // 加盖线性贡献
	MarkDoStep                       // 加盖非线性贡献
	MarkCalculateCurrent             // 电流计算
	MarkStepFinished                 // 时间步结束
)

// CallMark 按列表顺序统一调用，空槽位跳过
func CallMark(mark Mark, m mna.Stamper, t mna.Time, list []Device) {
	switch mark {
	case MarkReset:
		for _, v := range list {
			if v != nil {
				v.Reset()
			}
		}
	case MarkStartIteration:
		for _, v := range list {
			if v != nil {
				v.StartIteration(t)
			}
		}
	case MarkStamp:
		for _, v := range list {
			if v != nil {
				v.Stamp(m, t)
			}
		}
	case MarkDoStep:
		for _, v := range list {
			if v != nil {
				v.DoStep(m, t)
			}
		}
	case MarkCalculateCurrent:
		for _, v := range list {
			if v != nil {
				v.CalculateCurrent()
			}
		}
	case MarkStepFinished:
		for _, v := range list {
			if v != nil {
				v.StepFinished(t)
			}
		}
	default:
		log.Fatalf("未知 CallMark 操作: %d", mark)
	}
}
