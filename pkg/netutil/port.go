package netutil

import (
	"fmt"
	"net"
	"strconv"
)

const maxPort = 65535

// IsPortAvailable reports whether a TCP port can be bound on the host
func IsPortAvailable(host string, port int) bool {
	ln, err := net.Listen("tcp", net.JoinHostPort(host, strconv.Itoa(port)))
	if err != nil {
		return false
	}
	_ = ln.Close()
	return true
}

// FindAvailablePort returns the first bindable TCP port at or above start
func FindAvailablePort(host string, start int) (int, error) {
	for port := start; port <= maxPort; port++ {
		if IsPortAvailable(host, port) {
			return port, nil
		}
	}
	return 0, fmt.Errorf("no available ports found from %d", start)
}
