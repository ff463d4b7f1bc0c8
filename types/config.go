package types

import "fmt"

// Config 求解器参数
type Config struct {
	TimeStep             float64 `yaml:"timeStep"`             // 时间步长(秒)
	SubIterMax           int     `yaml:"subIterMax"`           // 非线性子迭代上限
	ConvergeDelta        float64 `yaml:"convergeDelta"`        // 非线性元件收敛电压差
	GminStartIter        int     `yaml:"gminStartIter"`        // 开始增加 gmin 的子迭代次数
	AutoGroundResistance float64 `yaml:"autoGroundResistance"` // 悬浮节点接地电阻
	WireLoopFactor       int     `yaml:"wireLoopFactor"`       // 导线电流求解重试倍数
	PivotNudge           float64 `yaml:"pivotNudge"`           // 零主元替换值
	BackwardEuler        bool    `yaml:"backwardEuler"`        // 向后欧拉法，默认梯形法
	DCAnalysis           bool    `yaml:"dcAnalysis"`           // 直流分析
}

// DefaultConfig 默认参数
func DefaultConfig() *Config {
	return &Config{
		TimeStep:             DefaultTimeStep,
		SubIterMax:           DefaultSubIterMax,
		ConvergeDelta:        DefaultConvergeDelta,
		GminStartIter:        DefaultGminStartIter,
		AutoGroundResistance: DefaultAutoGroundResistance,
		WireLoopFactor:       DefaultWireLoopFactor,
		PivotNudge:           DefaultPivotNudge,
	}
}

// ApplyDefaults 将未设置的字段补全为默认值
// 布尔字段的零值即为默认值。
func (c *Config) ApplyDefaults() {
	d := DefaultConfig()
	if c.TimeStep == 0 {
		c.TimeStep = d.TimeStep
	}
	if c.SubIterMax == 0 {
		c.SubIterMax = d.SubIterMax
	}
	if c.ConvergeDelta == 0 {
		c.ConvergeDelta = d.ConvergeDelta
	}
	if c.GminStartIter == 0 {
		c.GminStartIter = d.GminStartIter
	}
	if c.AutoGroundResistance == 0 {
		c.AutoGroundResistance = d.AutoGroundResistance
	}
	if c.WireLoopFactor == 0 {
		c.WireLoopFactor = d.WireLoopFactor
	}
	if c.PivotNudge == 0 {
		c.PivotNudge = d.PivotNudge
	}
}

// Validate 检查参数范围
func (c *Config) Validate() error {
	switch {
	case c.TimeStep <= 0:
		return fmt.Errorf("时间步长必须大于0: %v", c.TimeStep)
	case c.SubIterMax < 1:
		return fmt.Errorf("子迭代上限必须大于0: %d", c.SubIterMax)
	case c.ConvergeDelta <= 0:
		return fmt.Errorf("收敛电压差必须大于0: %v", c.ConvergeDelta)
	case c.AutoGroundResistance <= 0:
		return fmt.Errorf("接地电阻必须大于0: %v", c.AutoGroundResistance)
	case c.WireLoopFactor < 1:
		return fmt.Errorf("导线重试倍数必须大于0: %d", c.WireLoopFactor)
	case c.PivotNudge <= 0:
		return fmt.Errorf("零主元替换值必须大于0: %v", c.PivotNudge)
	}
	return nil
}
