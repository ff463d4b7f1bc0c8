package types

import (
	"errors"
	"fmt"
)

// 错误分类
var (
	ErrTopology       = errors.New("topology error")
	ErrSingularMatrix = errors.New("singular matrix")
	ErrNonConvergence = errors.New("non-convergence")
	ErrNumeric        = errors.New("numeric error")
)

// StopError 仿真停止错误，携带停止信息和出错元件
type StopError struct {
	Kind    error     // 错误分类
	Message string    // 停止信息
	Element ElementID // 出错元件，NoElement 表示无
	Time    float64   // 停止时的仿真时间
}

// NewStopError 创建停止错误
func NewStopError(kind error, msg string, elm ElementID) *StopError {
	return &StopError{Kind: kind, Message: msg, Element: elm}
}

func (e *StopError) Error() string {
	if e.Element != NoElement {
		return fmt.Sprintf("%v: %s (元件 %d)", e.Kind, e.Message, e.Element)
	}
	return fmt.Sprintf("%v: %s", e.Kind, e.Message)
}

func (e *StopError) Unwrap() error { return e.Kind }

// AsStopError 将任意错误转换为停止错误，未分类的错误归为数值错误
func AsStopError(err error) *StopError {
	var se *StopError
	if errors.As(err, &se) {
		return se
	}
	kind := ErrNumeric
	for _, k := range []error{ErrTopology, ErrSingularMatrix, ErrNonConvergence} {
		if errors.Is(err, k) {
			kind = k
			break
		}
	}
	return &StopError{Kind: kind, Message: err.Error(), Element: NoElement}
}
