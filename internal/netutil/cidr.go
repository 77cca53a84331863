// Package netutil expands network ranges into scan targets.
package netutil

import (
	"fmt"
	"net"
	"strconv"
	"strings"
)

// MaxHosts caps how many addresses a single range may expand to.
const MaxHosts = 1 << 16

// ExpandTargets turns a CIDR range (or a single IP) and a comma-separated
// port list into base URLs of the form scheme://host[:port]/. The default
// port for the scheme is omitted. Network and broadcast addresses are
// skipped for IPv4 ranges larger than /31.
func ExpandTargets(cidr, portsStr, scheme string) ([]string, error) {
	ipnet, err := parseRange(cidr)
	if err != nil {
		return nil, err
	}

	ports, err := ParsePorts(portsStr)
	if err != nil {
		return nil, err
	}
	if len(ports) == 0 {
		ports = []int{defaultPort(scheme)}
	}

	ones, bits := ipnet.Mask.Size()
	if bits-ones > 16 {
		return nil, fmt.Errorf("range %s exceeds %d hosts", cidr, MaxHosts)
	}
	skipEdges := bits == 32 && bits-ones > 1
	bcast := broadcastAddr(ipnet)

	var urls []string
	for ip := cloneIP(ipnet.IP); ipnet.Contains(ip); inc(ip) {
		if skipEdges && (ip.Equal(ipnet.IP) || ip.Equal(bcast)) {
			continue
		}
		for _, port := range ports {
			host := ip.String()
			if port == defaultPort(scheme) {
				if ip.To4() == nil {
					host = "[" + host + "]"
				}
			} else {
				host = net.JoinHostPort(host, strconv.Itoa(port))
			}
			urls = append(urls, scheme+"://"+host+"/")
		}
	}
	return urls, nil
}

// ParsePorts parses "80,8080". Blank entries are ignored.
func ParsePorts(s string) ([]int, error) {
	var ports []int
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil || n < 1 || n > 65535 {
			return nil, fmt.Errorf("invalid port %q", p)
		}
		ports = append(ports, n)
	}
	return ports, nil
}

func parseRange(cidr string) (*net.IPNet, error) {
	if _, ipnet, err := net.ParseCIDR(cidr); err == nil {
		return ipnet, nil
	}
	ip := net.ParseIP(cidr)
	if ip == nil {
		return nil, fmt.Errorf("invalid CIDR or IP: %q", cidr)
	}
	if v4 := ip.To4(); v4 != nil {
		return &net.IPNet{IP: v4, Mask: net.CIDRMask(32, 32)}, nil
	}
	return &net.IPNet{IP: ip, Mask: net.CIDRMask(128, 128)}, nil
}

func defaultPort(scheme string) int {
	if scheme == "https" {
		return 443
	}
	return 80
}

func cloneIP(ip net.IP) net.IP {
	return append(net.IP(nil), ip...)
}

func inc(ip net.IP) {
	for j := len(ip) - 1; j >= 0; j-- {
		ip[j]++
		if ip[j] > 0 {
			break
		}
	}
}

func broadcastAddr(n *net.IPNet) net.IP {
	ip := make(net.IP, len(n.IP))
	for i := range ip {
		ip[i] = n.IP[i] | ^n.Mask[i]
	}
	return ip
}
