package scan

import (
	"context"
	"errors"
	"net"
	"strings"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
)

const DefaultTimeout = time.Second

// Prober 对单个端口做一次探测,必须在有限时间内返回
type Prober interface {
	Probe(ctx context.Context, host Host, port int) ProbeResult
}

// Dialer *net.Dialer 满足此接口,测试中可以替换成假的传输层
type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

// TCPProber 发起完整的TCP三次握手,成功后立即关闭连接,不收发任何数据
type TCPProber struct {
	timeout time.Duration
	dialer  Dialer
}

// NewTCPProber 创建一个TCP探测器,timeout<=0时使用DefaultTimeout
func NewTCPProber(timeout time.Duration) *TCPProber {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &TCPProber{
		timeout: timeout,
		dialer:  &net.Dialer{KeepAlive: -1},
	}
}

// WithDialer 替换底层拨号器
func (t *TCPProber) WithDialer(d Dialer) *TCPProber {
	t.dialer = d
	return t
}

func (t *TCPProber) Timeout() time.Duration {
	return t.timeout
}

func (t *TCPProber) Probe(ctx context.Context, host Host, port int) ProbeResult {
	addr := host.Addr(port)
	log.Debugf("开始扫描%s", addr)

	//超时由ctx控制,超时后拨号被中止,不会留下半开连接
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	start := time.Now()
	conn, err := t.dialer.DialContext(ctx, "tcp", addr)
	res := ProbeResult{Port: port, Latency: time.Since(start)}
	if err != nil {
		res.State = classify(err)
		res.Err = err
		log.Debugf("%s :%v :%v", addr, res.State, err)
		return res
	}
	if cerr := conn.Close(); cerr != nil {
		log.Debugf("%s :关闭连接失败:%v", addr, cerr)
	}
	res.State = PortOpen
	log.Debugf("%s is OPEN!", addr)
	return res
}

// classify 将拨号错误归类为 CLOSED / TIMEOUT / ERROR
func classify(err error) PortState {
	if errors.Is(err, context.Canceled) {
		return PortError
	}
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return PortTimeout
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return PortError
	}
	if errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.EHOSTUNREACH) ||
		errors.Is(err, syscall.ENETUNREACH) {
		return PortClosed
	}
	//有些平台的错误没有包装errno
	if strings.Contains(err.Error(), "refused") {
		return PortClosed
	}
	return PortError
}
