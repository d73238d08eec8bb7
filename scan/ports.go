package scan

import (
	"errors"
	"fmt"
)

//go:generate go run ../tools/update.go

// PortState 单个端口的探测状态,PortUnknown 即尚未探测(PENDING)
type PortState uint8

const (
	PortUnknown PortState = iota
	PortOpen
	PortClosed
	PortTimeout
	PortError
)

func (s PortState) String() string {
	switch s {
	case PortOpen:
		return "OPEN"
	case PortClosed:
		return "CLOSED"
	case PortTimeout:
		return "TIMEOUT"
	case PortError:
		return "ERROR"
	}
	return "PENDING"
}

const (
	MinPort = 1
	MaxPort = 65535
)

var ErrInvalidRange = errors.New("invalid port range")

// PortRange 闭区间[Start,End]
type PortRange struct {
	Start int
	End   int
}

// NewPortRange 校验端口范围,start>end或越界都直接拒绝,不会产生任何探测
func NewPortRange(start, end int) (PortRange, error) {
	if start < MinPort || start > MaxPort {
		return PortRange{}, fmt.Errorf("%w: start port %d out of [%d,%d]", ErrInvalidRange, start, MinPort, MaxPort)
	}
	if end < MinPort || end > MaxPort {
		return PortRange{}, fmt.Errorf("%w: end port %d out of [%d,%d]", ErrInvalidRange, end, MinPort, MaxPort)
	}
	if start > end {
		return PortRange{}, fmt.Errorf("%w: %d-%d", ErrInvalidRange, start, end)
	}
	return PortRange{Start: start, End: end}, nil
}

func (r PortRange) Len() int {
	return r.End - r.Start + 1
}

func (r PortRange) Contains(port int) bool {
	return port >= r.Start && port <= r.End
}

func (r PortRange) String() string {
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}

func DescribePort(port int) string { //返回端口的描述
	if s, ok := knownPorts[port]; ok {
		return s
	}

	return ""
}
