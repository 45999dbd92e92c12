// mdicon scans Markdown documents for emoji, suggests replacement icons
// from local and remote icon libraries, and rewrites the document with
// Markdown image references.
package main

import (
	"os"

	"github.com/corey/mdicon/cmd/mdicon/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
