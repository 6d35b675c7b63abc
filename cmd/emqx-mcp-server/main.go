// emqx-mcp-server exposes an EMQX broker's management API as MCP tools.
package main

import "github.com/emqx-contrib/emqx-mcp-server/pkg/cli"

func main() {
	cli.Execute()
}
