package cmd

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/mattn/go-isatty"

	"portlisten/scan"
)

var spinnerChars = []byte{'|', '/', '-', '\\'}

const clearLine = "\r\033[K"

// spinner 扫描时的进度动画,同时作为scan.Observer实时打印开放端口
type spinner struct {
	mu       sync.Mutex
	out      io.Writer
	animate  bool
	describe bool //开放端口后附带服务名
	interval time.Duration
	stop     chan struct{}
	done     chan struct{}
}

func newSpinner(out io.Writer, animate, describe bool) *spinner {
	return &spinner{
		out:      out,
		animate:  animate,
		describe: describe,
		interval: 100 * time.Millisecond,
	}
}

// isTerminal stdout不是终端时(重定向到文件/管道)不显示动画
func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (s *spinner) Start() {
	if !s.animate {
		return
	}
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for i := 0; ; i = (i + 1) % len(spinnerChars) {
			s.mu.Lock()
			fmt.Fprintf(s.out, "Scanning ports... %c \r", spinnerChars[i])
			s.mu.Unlock()
			select {
			case <-s.stop:
				return
			case <-ticker.C:
			}
		}
	}()
}

// Stop 停止动画并清除当前行
func (s *spinner) Stop() {
	if !s.animate || s.stop == nil {
		return
	}
	close(s.stop)
	<-s.done
	s.stop = nil
	fmt.Fprint(s.out, clearLine)
}

func (s *spinner) PortOpen(host scan.Host, port int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.animate {
		fmt.Fprint(s.out, clearLine)
	}
	if name := scan.DescribePort(port); name != "" && s.describe {
		fmt.Fprintf(s.out, "Port %d: OPEN (%s)\n", port, name)
		return
	}
	fmt.Fprintf(s.out, "Port %d: OPEN\n", port)
}
