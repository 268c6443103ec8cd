package commands

import (
	"fmt"
	"net"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/mindgrid/pkg/commands/options"
	"tableflip.dev/mindgrid/pkg/runner/mcp"
)

func addMCP(topLevel *cobra.Command) {
	so := &options.ServeOptions{}

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the store over the Model Context Protocol.",
		Long: `Run an MCP server so assistants can read and change tasks, habits, goals,
notes, events, highlights, finances and analytics. HTTP is the default
transport, use --transport=stdio when launched by an MCP client.`,
		Example: `
mindgrid mcp
mindgrid mcp --http-port 0 --allow-origin http://localhost:5173
mindgrid mcp --transport stdio
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := newService(cmd.Context())
			if err != nil {
				return err
			}
			// Other processes may write the store while we serve.
			go watchAndReload(cmd.Context(), svc)

			r := mcp.Runner{
				Service:          svc,
				Name:             "mindgrid",
				Version:          buildVersion(),
				Log:              svc.Log,
				AllowedOrigins:   so.Origins,
				HTTPEndpointPath: so.Endpoint(),
			}

			switch t := mcp.Transport(strings.ToLower(strings.TrimSpace(so.Transport))); t {
			case mcp.TransportStdio:
				r.Transport = t
			case "", mcp.TransportHTTP:
				addr, err := so.ListenAddr()
				if err != nil {
					return err
				}
				r.Transport = mcp.TransportHTTP
				r.HTTPListenAddr = addr
				r.HTTPServerCert = strings.TrimSpace(so.TLSCert)
				r.HTTPServerKey = strings.TrimSpace(so.TLSKey)
				r.OnHTTPListening = func(bound net.Addr) {
					fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on %s\n", so.URL(bound))
				}
			default:
				return fmt.Errorf("unknown transport %q, want http or stdio", so.Transport)
			}
			return r.Do(cmd.Context())
		},
	}
	options.AddServeArgs(cmd, so)

	topLevel.AddCommand(cmd)
}
