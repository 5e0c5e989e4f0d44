// drip 命令行入口：解析 JSON 文件并格式化输出。
//
// 用法:
//
//	drip [-indent n] [-quiet] [-workers n] file.json [more.json ...]
//
// 单文件时解析并输出到 stdout；多文件时在 worker 池上并发解析
// 后按参数顺序输出。解析失败打印带上下文窗口的错误，并按错误
// 类别退出：200 输入提前结束、201 非法字符、202 重复键、
// 203 嵌套过深。
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/uniyakcom/drip"
)

func main() {
	indent := flag.Int("indent", 2, "每层缩进的空格数")
	quiet := flag.Bool("quiet", false, "只解析不输出（语法检查模式）")
	workers := flag.Int("workers", 0, "多文件时的并发数（0 取 GOMAXPROCS）")
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "usage: drip [-indent n] [-quiet] [-workers n] file.json ...")
		os.Exit(64)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if len(paths) == 1 {
		os.Exit(runOne(logger, paths[0], *indent, *quiet))
	}
	os.Exit(runMany(logger, paths, *indent, *quiet, *workers))
}

// runOne 解析单个文件并输出
func runOne(logger *slog.Logger, path string, indent int, quiet bool) int {
	start := time.Now()
	v, err := drip.ParseFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitCode(err)
	}
	logger.Debug("parsed", "file", path, "duration", time.Since(start))

	if !quiet {
		printValue(v, indent)
	}
	return 0
}

// runMany 在 worker 池上并发解析，再按参数顺序输出
func runMany(logger *slog.Logger, paths []string, indent int, quiet bool, workers int) int {
	b, err := drip.NewBatch(workers)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer b.Close()

	start := time.Now()
	vals, err := b.ParseFiles(context.Background(), paths)
	logger.Info("batch parsed",
		"files", len(paths),
		"duration", time.Since(start),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitCode(err)
	}

	if !quiet {
		for _, v := range vals {
			printValue(v, indent)
		}
	}
	return 0
}

func printValue(v *drip.Value, indent int) {
	pr := drip.AcquirePrinter(indent)
	defer drip.ReleasePrinter(pr)
	out := pr.Print(v)
	os.Stdout.Write(out)
	os.Stdout.Write([]byte{'\n'})
}

// exitCode 按错误类别映射退出码
func exitCode(err error) int {
	var se *drip.SyntaxError
	if errors.As(err, &se) {
		return se.Kind.ExitCode()
	}
	return 1
}
