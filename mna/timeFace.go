package mna

import "circuitsim/types"

// Time 仿真时间接口，提供仿真过程中的时间和收敛信息
type Time interface {
	// Time 获取当前仿真时间，单位为秒
	Time() float64

	// TimeStep 获取当前时间步长，单位为秒
	TimeStep() float64

	// SubIterations 获取当前时间步内的子迭代次数
	SubIterations() int

	// NotConverged 元件输出变化超过阈值时调用，当前子迭代不算收敛
	NotConverged()

	// Config 获取求解器参数
	Config() *types.Config
}
