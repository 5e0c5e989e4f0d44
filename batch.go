package drip

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"golang.org/x/sync/errgroup"
)

// ParseFiles 并发解析多个 JSON 文件，结果与 paths 下标对齐。
//
// workers 控制并发上限（<= 0 时取 GOMAXPROCS），首个错误会
// 取消其余任务并返回。每个文件各用一个独立 Parser，
// 返回的值树之间不共享生命周期。
func ParseFiles(ctx context.Context, paths []string, workers int) ([]*Value, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	out := make([]*Value, len(paths))
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			v, err := ParseFile(path)
			if err != nil {
				return err
			}
			out[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Batch 长驻的并发解析器。
//
// goroutine 复用走 ants 池，适合反复解析成批文件的场景
// （CLI 多文件模式）。与一次性的 ParseFiles 不同，Batch
// 遇到坏文件不中断整批：记录首个错误，其余文件照常解析。
type Batch struct {
	pool *ants.Pool
}

// NewBatch 创建 Batch，workers 为池内 goroutine 数（<= 0 时取 GOMAXPROCS）
func NewBatch(workers int) (*Batch, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("drip: worker pool: %w", err)
	}
	return &Batch{pool: pool}, nil
}

// Close 释放池（等待已提交任务完成）
func (b *Batch) Close() {
	b.pool.Release()
}

// ParseFiles 在池上并发解析 paths，返回与 paths 对齐的结果。
// 解析失败的文件在结果中为 nil；返回整批的首个错误（如有）。
// ctx 取消时停止提交新任务并尽快返回。
func (b *Batch) ParseFiles(ctx context.Context, paths []string) ([]*Value, error) {
	out := make([]*Value, len(paths))
	var (
		wg       sync.WaitGroup
		errMu    sync.Mutex
		firstErr error
	)
	fail := func(err error) {
		errMu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		errMu.Unlock()
	}
	for i, path := range paths {
		i, path := i, path
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		task := func() {
			defer wg.Done()
			if ctx.Err() != nil {
				return
			}
			v, err := ParseFile(path)
			if err != nil {
				fail(err)
				return
			}
			out[i] = v
		}
		if err := b.pool.Submit(task); err != nil {
			wg.Done()
			fail(fmt.Errorf("drip: submit: %w", err))
			break
		}
	}
	wg.Wait()
	if err := ctx.Err(); err != nil {
		return out, err
	}
	errMu.Lock()
	defer errMu.Unlock()
	return out, firstErr
}
