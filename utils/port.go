package utils

import (
	"fmt"
	"net"
	"strconv"
)

func IsPortAvailable(host string, port int) bool {
	Verbose("Checking if port %d is available on %s", port, host)
	listener, err := net.ListenTCP("tcp4", &net.TCPAddr{IP: net.ParseIP(host), Port: port})
	if err != nil {
		Verbose("error: %v", err)
		return false
	}

	defer listener.Close()
	return true
}

// CheckListenAddr validates a host:port listen address and fails when the
// port is already taken. Port 0 always passes.
func CheckListenAddr(addr string) error {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("invalid listen address %s: %w", addr, err)
	}

	port, err := strconv.Atoi(portStr)
	if err != nil || port < 0 || port > 65535 {
		return fmt.Errorf("invalid port '%s'", portStr)
	}

	if host == "localhost" {
		host = "127.0.0.1"
	}

	if port != 0 && !IsPortAvailable(host, port) {
		return fmt.Errorf("port %d is already in use on %s", port, addr)
	}

	return nil
}
