package options

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// ServeOptions configures the MCP listener.
type ServeOptions struct {
	Transport string
	Host      string
	Port      int
	Path      string
	TLSCert   string
	TLSKey    string
	Origins   []string
}

func AddServeArgs(cmd *cobra.Command, o *ServeOptions) {
	cmd.Flags().StringVar(&o.Transport, "transport", "http", "Transport to use: http or stdio.")
	cmd.Flags().StringVar(&o.Host, "http-host", "127.0.0.1", "Interface the HTTP transport binds to.")
	cmd.Flags().IntVar(&o.Port, "http-port", 8080, "Port for the HTTP transport, 0 picks a free one.")
	cmd.Flags().StringVar(&o.Path, "http-path", "/mcp", "HTTP endpoint path.")
	cmd.Flags().StringVar(&o.TLSCert, "http-tls-cert", "", "TLS certificate file, enables HTTPS with --http-tls-key.")
	cmd.Flags().StringVar(&o.TLSKey, "http-tls-key", "", "TLS private key file.")
	cmd.Flags().StringSliceVar(&o.Origins, "allow-origin", nil, "Browser origin allowed to call the HTTP endpoint, repeatable.")
}

// Endpoint returns the endpoint path with a leading slash.
func (o *ServeOptions) Endpoint() string {
	p := strings.TrimSpace(o.Path)
	if p == "" {
		return "/mcp"
	}
	return "/" + strings.TrimLeft(p, "/")
}

// ListenAddr validates host and port and joins them.
func (o *ServeOptions) ListenAddr() (string, error) {
	if o.Port < 0 || o.Port > 65535 {
		return "", fmt.Errorf("http-port %d out of range", o.Port)
	}
	host := strings.TrimSpace(o.Host)
	if host == "" {
		host = "127.0.0.1"
	}
	return net.JoinHostPort(host, strconv.Itoa(o.Port)), nil
}

// TLS reports whether both certificate and key were given.
func (o *ServeOptions) TLS() bool {
	return strings.TrimSpace(o.TLSCert) != "" && strings.TrimSpace(o.TLSKey) != ""
}

// URL describes where a bound listener can be reached. Wildcard hosts are
// replaced by the bound IP or loopback.
func (o *ServeOptions) URL(bound net.Addr) string {
	tcp, ok := bound.(*net.TCPAddr)
	if !ok {
		return bound.String() + o.Endpoint()
	}
	host := strings.TrimSpace(o.Host)
	switch host {
	case "", "0.0.0.0", "::":
		host = "127.0.0.1"
		if tcp.IP != nil && !tcp.IP.IsUnspecified() {
			host = tcp.IP.String()
		}
	}
	scheme := "http"
	if o.TLS() {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s%s", scheme, net.JoinHostPort(host, strconv.Itoa(tcp.Port)), o.Endpoint())
}
