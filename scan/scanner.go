package scan

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Scanner 扫描一个主机的一段连续端口
type Scanner interface {
	Scan(ctx context.Context, host Host, startPort, endPort int) (Result, error)
}

// ProbeResult 单次探测的结果,交给收集者之后即丢弃
type ProbeResult struct {
	Port    int
	State   PortState
	Err     error //CLOSED/TIMEOUT/ERROR时的底层原因
	Latency time.Duration
}

type Result struct {
	Host Host
	//Open是唯一对外的结果,其余三类仅用于诊断,均升序且不重复
	Open     []int
	Closed   []int
	TimedOut []int
	Failed   []int

	Elapsed time.Duration
}

func NewResult(host Host) Result { //初始化
	return Result{
		Host:     host,
		Open:     []int{},
		Closed:   []int{},
		TimedOut: []int{},
		Failed:   []int{},
	}
}

// add 只能由收集协程调用
func (r *Result) add(p ProbeResult) {
	switch p.State {
	case PortOpen:
		r.Open = append(r.Open, p.Port)
	case PortClosed:
		r.Closed = append(r.Closed, p.Port)
	case PortTimeout:
		r.TimedOut = append(r.TimedOut, p.Port)
	default:
		r.Failed = append(r.Failed, p.Port)
	}
}

func (r *Result) sort() {
	sort.Ints(r.Open)
	sort.Ints(r.Closed)
	sort.Ints(r.TimedOut)
	sort.Ints(r.Failed)
}

// Probed 已得到终态的端口数
func (r Result) Probed() int {
	return len(r.Open) + len(r.Closed) + len(r.TimedOut) + len(r.Failed)
}

//实现Stringer接口,输出格式: "Open Ports:" 加上逗号分隔的端口或"No open ports found."
func (r Result) String() string {
	text := "Open Ports:\n"
	if len(r.Open) == 0 {
		return text + "No open ports found."
	}
	ports := make([]string, 0, len(r.Open))
	for _, port := range r.Open {
		ports = append(ports, fmt.Sprint(port))
	}
	return text + strings.Join(ports, ", ")
}

// Summary 详细模式下的输出,带上服务名和各状态的数量
func (r Result) Summary() string {
	text := fmt.Sprintf("Scan result for %s (%v):\n", r.Host, r.Elapsed.Round(time.Millisecond))
	if len(r.Open) > 0 {
		text = fmt.Sprintf("%s\t%s\t%s\t%s\n", text, pad("PORT", 10), pad("STATE", 10), "SERVICE")
	}
	for _, port := range r.Open {
		text = fmt.Sprintf(
			"%s\t%s\t%s\t%s\n",
			text,
			pad(fmt.Sprintf("%d/tcp", port), 10), // 8080/tcp
			pad(PortOpen.String(), 10),
			DescribePort(port),
		)
	}
	return fmt.Sprintf("%s\t%d open, %d closed, %d timeout, %d error\n",
		text, len(r.Open), len(r.Closed), len(r.TimedOut), len(r.Failed))
}

//填充空格直到达到指定的长度
func pad(input string, length int) string {
	for len(input) < length {
		input += " "
	}
	return input
}
