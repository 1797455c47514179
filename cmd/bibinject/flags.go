package main

import (
	"os"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	verbose bool
}

// injectFlags holds all flags for the inject command.
type injectFlags struct {
	common    commonFlags
	input     string
	template  string
	output    string
	inPlace   bool
	style     string
	order     string
	group     string
	targetID  string
	doiIcon   string
	expand    bool
	noExpand  bool
	assetPath string
}

// serveFlags holds all flags for the serve command.
type serveFlags struct {
	common    commonFlags
	addr      string
	assetPath string
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show diagnostics (duplicate keys, missing placeholders)")
}

// parseInjectFlags parses inject command flags and returns positional args.
func parseInjectFlags(args []string) (*injectFlags, []string, error) {
	fs := flag.NewFlagSet("inject", flag.ContinueOnError)
	f := &injectFlags{}

	fs.StringVarP(&f.input, "input", "i", "", "BibTeX input file (.bib)")
	fs.StringVar(&f.template, "template", "", "host HTML document to inject into")
	fs.StringVarP(&f.output, "output", "o", "", "output HTML file (default: stdout)")
	fs.BoolVar(&f.inPlace, "in-place", false, "overwrite the host document in place")
	fs.StringVarP(&f.style, "style", "s", "", "refspec style name")
	fs.StringVar(&f.order, "order", "", "entry order: asc or desc")
	fs.StringVarP(&f.group, "group", "g", "", "group entries: year, year/month, ym, month, author")
	fs.StringVarP(&f.targetID, "target-id", "t", "", "id of the container element")
	fs.StringVar(&f.doiIcon, "doi-icon", "", "icon locator for DOI links")
	fs.BoolVar(&f.expand, "expand-strings", false, "expand @string macros into bare field tokens")
	fs.BoolVar(&f.noExpand, "no-expand-strings", false, "disable @string macro expansion")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory ({path}/styles/*.html)")
	addCommonFlags(fs, &f.common)

	fs.Usage = func() { printInjectUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// stylesFlags holds all flags for the styles command.
type stylesFlags struct {
	assetPath string
}

// parseStylesFlags parses styles command flags.
func parseStylesFlags(args []string) (*stylesFlags, error) {
	fs := flag.NewFlagSet("styles", flag.ContinueOnError)
	f := &stylesFlags{}

	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory ({path}/styles/*.html)")
	fs.Usage = func() { printStylesUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return f, nil
}

// parseServeFlags parses serve command flags.
func parseServeFlags(args []string) (*serveFlags, error) {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	f := &serveFlags{}

	fs.StringVarP(&f.addr, "addr", "a", "", "listen address (default 127.0.0.1:6969)")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory ({path}/styles/*.html)")
	addCommonFlags(fs, &f.common)

	fs.Usage = func() { printServeUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return f, nil
}
