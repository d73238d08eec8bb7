package scan

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
)

var ErrInvalidHost = errors.New("invalid host")

// Host 主机名或IP,只读;不在这里做DNS解析,每次探测由拨号自行解析
type Host string

// ParseHost 127.0.0.1 / localhost 合法; 127.0.0.1/24、带端口的地址、空串不合法
func ParseHost(target string) (Host, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidHost)
	}
	if strings.ContainsAny(target, " \t\r\n/") {
		return "", fmt.Errorf("%w: %q", ErrInvalidHost, target)
	}
	if ip := net.ParseIP(target); ip != nil {
		return Host(target), nil
	}
	//不是IP字面量的话就是域名,不允许带冒号(端口或不合法的IPv6)
	if strings.Contains(target, ":") {
		return "", fmt.Errorf("%w: %q", ErrInvalidHost, target)
	}
	return Host(target), nil
}

// Addr 拼接成 host:port, IPv6字面量会加上方括号
func (h Host) Addr(port int) string {
	return net.JoinHostPort(string(h), strconv.Itoa(port))
}

func (h Host) String() string {
	return string(h)
}
