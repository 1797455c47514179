package main

import (
	"fmt"
	"io"
)

// printUsage prints the top-level command summary.
func printUsage(w io.Writer) {
	fmt.Fprint(w, `bibinject - render BibTeX bibliographies into HTML documents

Usage:
  bibinject <command> [flags]

Commands:
  inject    Render a bibliography and inject it into a host document
  serve     Start the web interface
  styles    List available refspec styles
  version   Print the version
  help      Show help for a command

Run 'bibinject help <command>' for details on a command.
`)
}

// printHelp prints the general help, or command-specific help when a
// command name is given.
func printHelp(w io.Writer, args []string) {
	if len(args) == 0 {
		printUsage(w)
		return
	}
	switch args[0] {
	case "inject":
		printInjectUsage(w)
	case "serve":
		printServeUsage(w)
	case "styles":
		printStylesUsage(w)
	default:
		fmt.Fprintf(w, "unknown command %q\n\n", args[0])
		printUsage(w)
	}
}

func printInjectUsage(w io.Writer) {
	fmt.Fprint(w, `Render a bibliography as styled HTML fragments and inject them into
the target element of a host HTML document.

Usage:
  bibinject inject --input refs.bib --template index.html [output.html] [flags]

The result goes to stdout unless an output path or --in-place is given.

Flags:
  -i, --input string        BibTeX input file (.bib)
      --template string     host HTML document to inject into
  -o, --output string       output HTML file (default: stdout)
      --in-place            overwrite the host document in place
  -s, --style string        refspec style name (default "default")
      --order string        entry order: asc or desc (default "desc")
  -g, --group string        group entries: year, year/month, ym, month, author
  -t, --target-id string    id of the container element (default "bibliography")
      --doi-icon string     icon locator for DOI links
      --expand-strings      expand @string macros into bare field tokens
      --no-expand-strings   disable @string macro expansion
      --asset-path string   custom asset directory ({path}/styles/*.html)
  -c, --config string       config file name or path
  -v, --verbose             show diagnostics (duplicate keys, missing placeholders)

Examples:
  bibinject inject -i refs.bib --template index.html -o out.html
  bibinject inject -i refs.bib --template index.html --in-place -g year
  bibinject inject -i refs.bib --template index.html -s compact --order asc
`)
}

func printServeUsage(w io.Writer) {
	fmt.Fprint(w, `Start the web interface: an upload form for the bibliography and host
document, returning the injected result as a download.

Usage:
  bibinject serve [flags]

The listen address comes from --addr, the BIBINJECT_ADDR environment
variable, or the config file, in that order of precedence.

Flags:
  -a, --addr string         listen address (default "127.0.0.1:6969")
      --asset-path string   custom asset directory ({path}/styles/*.html)
  -c, --config string       config file name or path
  -v, --verbose             show diagnostics (duplicate keys, missing placeholders)
`)
}

func printStylesUsage(w io.Writer) {
	fmt.Fprint(w, `List the available refspec styles, one per line. Custom styles from
--asset-path are listed alongside the embedded ones.

Usage:
  bibinject styles [flags]

Flags:
      --asset-path string   custom asset directory ({path}/styles/*.html)
`)
}
