package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/lmittmann/tint"

	"circuitsim"
	"circuitsim/load"
	"circuitsim/mna/debug"
)

var (
	circuitPath = flag.String("circuit", "", "电路描述文件 (.yaml 或网表)")
	configPath  = flag.String("config", "", "求解器参数文件 (.yaml)，覆盖电路描述中的参数")
	steps       = flag.Int("steps", 1000, "仿真时间步数，0 表示不限")
	budget      = flag.Duration("budget", 0, "仿真时间预算，如 100ms，0 表示不限")
	jsonPath    = flag.String("json", "", "输出仿真记录 JSON")
	htmlPath    = flag.String("html", "", "输出网页曲线")
	plotPath    = flag.String("plot", "", "输出电压曲线图片 (.png/.svg/.pdf)")
	verbose     = flag.Bool("v", false, "输出调试日志")
)

func main() {
	flag.Parse()
	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05",
	}))
	slog.SetDefault(log)

	if *circuitPath == "" {
		flag.Usage()
		os.Exit(2)
	}
	if err := run(log); err != nil {
		log.Error("仿真失败", "err", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger) error {
	f, err := load.LoadCircuit(*circuitPath)
	if err != nil {
		return err
	}
	if *configPath != "" {
		if f.Solver, err = load.LoadConfig(*configPath); err != nil {
			return err
		}
	}
	c, err := f.Circuit(log)
	if err != nil {
		return err
	}
	if err := c.Analyze(); err != nil {
		report(c.Snapshot())
		return err
	}

	names := make([]string, len(f.Elements))
	for i, spec := range f.Elements {
		names[i] = fmt.Sprintf("%s%d", spec.Type, i)
	}
	rec := &debug.Record{}
	rec.Init(c.Graph(), names)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	c.Start()
	go func() {
		<-ctx.Done()
		c.Stop()
	}()

	start := time.Now()
	var simErr error
	for i := 0; (*steps == 0 || i < *steps) && c.Running(); i++ {
		if *budget > 0 && time.Since(start) > *budget {
			break
		}
		simErr = c.DoIteration()
		rec.Update(c.Snapshot())
		if simErr != nil {
			break
		}
	}
	log.Info("仿真结束", "steps", rec.Len(), "elapsed", time.Since(start))
	report(c.Snapshot())

	if err := writeFile(*jsonPath, rec.Render); err != nil {
		return err
	}
	if err := writeFile(*htmlPath, (&debug.Charts{Record: rec}).Render); err != nil {
		return err
	}
	if *plotPath != "" {
		if err := rec.SavePlot(*plotPath); err != nil {
			return err
		}
	}
	return simErr
}

// report 打印最终结果
func report(s *circuitsim.Snapshot) {
	fmt.Printf("t = %g s, %d 步\n", s.Time, s.Iterations)
	for n, v := range s.NodeVoltages {
		fmt.Printf("  Node(%d) = %.6g V\n", n, v)
	}
	for id, i := range s.Currents {
		fmt.Printf("  I[%d] = %.6g A\n", id, i)
	}
	if s.Stopped() {
		slog.Warn("仿真停止", "msg", s.StopMessage, "element", s.StopElement, "t", s.Time)
	}
}

// writeFile 路径非空时写入文件
func writeFile(path string, render func(io.Writer) error) error {
	if path == "" {
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
