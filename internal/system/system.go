package system

import (
	"context"
	"errors"
	"net"
)

type NetInfo interface {
	IP(ctx context.Context) (string, error)
}

type NoopNetInfo struct{}

func (NoopNetInfo) IP(ctx context.Context) (string, error) { return "", nil }

// InterfaceNetInfo reports the first non-loopback IPv4 address of the host.
type InterfaceNetInfo struct{}

var errNoAddress = errors.New("no non-loopback IPv4 address")

func (InterfaceNetInfo) IP(ctx context.Context) (string, error) {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return "", err
	}
	for _, a := range addrs {
		ipNet, ok := a.(*net.IPNet)
		if !ok || ipNet.IP.IsLoopback() {
			continue
		}
		if v4 := ipNet.IP.To4(); v4 != nil {
			return v4.String(), nil
		}
	}
	return "", errNoAddress
}

// RemoteURL builds the URL of the remote-control API for a listen address
// such as ":80" or "0.0.0.0:8080". It returns "" when no address is known.
func RemoteURL(ctx context.Context, info NetInfo, listenAddr string) string {
	host, port, err := net.SplitHostPort(listenAddr)
	if err != nil {
		return ""
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		if info == nil {
			return ""
		}
		ip, err := info.IP(ctx)
		if err != nil || ip == "" {
			return ""
		}
		host = ip
	}
	return "http://" + net.JoinHostPort(host, port) + "/api/v1/"
}
