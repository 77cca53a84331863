package netutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandTargets(t *testing.T) {
	tests := []struct {
		name   string
		cidr   string
		ports  string
		scheme string
		want   []string
	}{
		{
			name:   "single ip default port",
			cidr:   "10.0.0.5",
			scheme: "http",
			want:   []string{"http://10.0.0.5/"},
		},
		{
			name:   "slash 30 skips network and broadcast",
			cidr:   "10.0.0.0/30",
			ports:  "80,8080",
			scheme: "http",
			want: []string{
				"http://10.0.0.1/", "http://10.0.0.1:8080/",
				"http://10.0.0.2/", "http://10.0.0.2:8080/",
			},
		},
		{
			name:   "slash 31 keeps both",
			cidr:   "192.168.1.0/31",
			scheme: "https",
			want:   []string{"https://192.168.1.0/", "https://192.168.1.1/"},
		},
		{
			name:   "ipv6 brackets",
			cidr:   "::1",
			ports:  "8443",
			scheme: "https",
			want:   []string{"https://[::1]:8443/"},
		},
		{
			name:   "ipv6 default port",
			cidr:   "fe80::1",
			scheme: "http",
			want:   []string{"http://[fe80::1]/"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandTargets(tt.cidr, tt.ports, tt.scheme)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExpandTargetsErrors(t *testing.T) {
	_, err := ExpandTargets("not-an-ip", "", "http")
	assert.Error(t, err)

	_, err = ExpandTargets("10.0.0.1", "80,abc", "http")
	assert.Error(t, err)

	_, err = ExpandTargets("10.0.0.1", "70000", "http")
	assert.Error(t, err)

	_, err = ExpandTargets("10.0.0.0/8", "", "http")
	assert.Error(t, err)
}

func TestParsePorts(t *testing.T) {
	ports, err := ParsePorts(" 80, ,8080 ")
	require.NoError(t, err)
	assert.Equal(t, []int{80, 8080}, ports)

	ports, err = ParsePorts("")
	require.NoError(t, err)
	assert.Empty(t, ports)
}
