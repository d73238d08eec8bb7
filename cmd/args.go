package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"portlisten/scan"
)

var ErrInvalidInput = errors.New("invalid input")

const usage = `Usage: portlisten <host> <startPort> <endPort>
Example: portlisten localhost 1 100`

// parseArgs 校验命令行参数,失败时不会启动扫描
func parseArgs(args []string) (scan.Host, scan.PortRange, error) {
	if len(args) != 3 {
		return "", scan.PortRange{}, fmt.Errorf("%w: expected 3 arguments, got %d", ErrInvalidInput, len(args))
	}

	host, err := scan.ParseHost(args[0])
	if err != nil {
		return "", scan.PortRange{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	start, err := parsePort(args[1])
	if err != nil {
		return "", scan.PortRange{}, err
	}
	end, err := parsePort(args[2])
	if err != nil {
		return "", scan.PortRange{}, err
	}

	ports, err := scan.NewPortRange(start, end)
	if err != nil {
		return "", scan.PortRange{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return host, ports, nil
}

func parsePort(s string) (int, error) {
	port, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: invalid port number: '%s'", ErrInvalidInput, s)
	}
	if port > scan.MaxPort || port < scan.MinPort {
		return 0, fmt.Errorf("%w: invalid port number: %s, port number must be between %d and %d",
			ErrInvalidInput, s, scan.MinPort, scan.MaxPort)
	}
	return port, nil
}
