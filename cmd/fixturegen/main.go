// fixturegen CLI - generates synthetic records from declarative entity schemas
package main

import "github.com/getmockd/fixturegen/pkg/cli"

func main() {
	cli.Execute()
}
