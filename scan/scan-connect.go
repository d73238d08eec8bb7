package scan

import (
	"context"
	"fmt"
	"runtime"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// DefaultWorkers 默认并发数,等于可用的CPU数
var DefaultWorkers = runtime.NumCPU()

var _ Scanner = (*RangeScanner)(nil)
var _ Prober = (*TCPProber)(nil)

// RangeScanner 是TCP端口范围扫描器
type RangeScanner struct {
	prober   Prober
	workers  int //协程数量,也是同时打开的连接数上限
	observer Observer
}

type Option func(*RangeScanner)

// WithWorkers 设置并发数,n<=0时使用DefaultWorkers,1即顺序扫描
func WithWorkers(n int) Option {
	return func(c *RangeScanner) {
		if n > 0 {
			c.workers = n
		}
	}
}

func WithObserver(o Observer) Option {
	return func(c *RangeScanner) {
		if o != nil {
			c.observer = o
		}
	}
}

// NewRangeScanner 用给定的探测器创建扫描器
func NewRangeScanner(p Prober, opts ...Option) *RangeScanner {
	c := &RangeScanner{
		prober:   p,
		workers:  DefaultWorkers,
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewTCPScanner 创建一个TCP连接扫描器,传入连接超时,并发数量,开放端口的观察者(可为nil)
func NewTCPScanner(timeout time.Duration, workers int, o Observer) *RangeScanner {
	return NewRangeScanner(NewTCPProber(timeout), WithWorkers(workers), WithObserver(o))
}

func (c *RangeScanner) Workers() int {
	return c.workers
}

// Scan 对[startPort,endPort]中的每个端口恰好探测一次,返回升序的结果.
// 单个端口的失败不会导致扫描失败;只有参数非法或ctx被取消时返回error,
// 取消时返回已收集到的部分结果.
func (c *RangeScanner) Scan(ctx context.Context, host Host, startPort, endPort int) (Result, error) {
	result := NewResult(host)
	if host == "" {
		return result, fmt.Errorf("%w: empty", ErrInvalidHost)
	}
	ports, err := NewPortRange(startPort, endPort)
	if err != nil {
		return result, err
	}

	workers := c.workers
	if workers > ports.Len() {
		workers = ports.Len()
	}
	log.Debugf("开始扫描%s %v, 并发数:%d", host, ports, workers)

	jobChan := make(chan portJob, workers)
	resultChan := make(chan ProbeResult, workers)
	doneChan := make(chan struct{})
	startTime := time.Now()

	go func() { //收集结果,唯一写result的协程
		for p := range resultChan {
			result.add(p)
			if p.State == PortOpen {
				c.observer.PortOpen(host, p.Port)
			}
		}
		close(doneChan)
	}()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error { //生产者,每个端口只发送一次
		defer close(jobChan)
		for port := ports.Start; port <= ports.End; port++ {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case jobChan <- portJob{host: host, port: port}:
			}
		}
		return nil
	})

	for i := 0; i < workers; i++ { //限制的是消费者的数量,永远只会有固定数量的连接
		g.Go(func() error {
			for job := range jobChan {
				if err := gctx.Err(); err != nil { //已取消,不再发起新的探测
					return err
				}
				res := c.prober.Probe(gctx, job.host, job.port)
				//取消后得到的非OPEN结果不可信,直接丢弃
				if err := gctx.Err(); err != nil && res.State != PortOpen {
					return err
				}
				resultChan <- res
			}
			return nil
		})
	}

	err = g.Wait()
	close(resultChan)
	<-doneChan

	result.sort()
	result.Elapsed = time.Since(startTime)
	if err != nil {
		log.Debugf("扫描%s被取消: %v, 已完成%d/%d", host, err, result.Probed(), ports.Len())
		return result, err
	}
	log.Debugf("扫描%s完毕, 开放端口%d个, 耗时%v", host, len(result.Open), result.Elapsed)
	return result, nil
}
