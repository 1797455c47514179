// Package bibinject converts bibliographic records into styled HTML
// fragments and splices them into a host HTML document.
//
// # Quick Start
//
// Create an Injector and run the pipeline:
//
//	inj, err := bibinject.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	html, err := inj.Run(ctx, bibinject.Input{
//	    HostHTML: hostDocument,
//	    BibText:  "@article{C13, author={J. C.}, year={2013}, title={T}}",
//	    Style:    "default",
//	    Order:    "desc",
//	    Group:    "year",
//	    TargetID: "publications",
//	})
//
// The result is a new HTML document with the target element's interior
// replaced by the rendered, indentation-aware bibliography. The input
// document is never modified.
//
// # Pipeline
//
// A run passes through four stages:
//
//  1. Parsing: a hand-rolled balanced-brace scanner turns the BibTeX
//     dialect (@type{key, field = value, ...} plus @comment, @preamble
//     and @string blocks) into entries. @string macros expand into
//     bare-token field values declared after them when enabled via
//     WithMacroExpansion.
//  2. Ordering and grouping: entries sort by (year, month) or by primary
//     author last name, and optionally bucket by year, year/month, or
//     author.
//  3. Rendering: each entry fills the {{ field }} placeholders of its
//     type's bi-{type} block in the selected refspec style, followed by
//     a punctuation cleanup pass and optional DOI link insertion.
//  4. Injection: the combined HTML replaces the interior of the first
//     element whose id attribute matches TargetID.
//
// # Styles
//
// A refspec style is an HTML file with one block per entry type, of the
// shape <tag id="bi-{type}"> … </tag>. Built-in styles are embedded;
// custom styles load from a directory via WithAssetPath:
//
//	inj, err := bibinject.New(
//	    bibinject.WithAssetPath("/path/to/assets"), // assets/styles/*.html
//	    bibinject.WithMacroExpansion(true),
//	)
//
// # Diagnostics
//
// Non-fatal conditions (duplicate citation keys, missing placeholder
// values) are reported through an injected zap logger rather than a
// process-wide one:
//
//	inj, err := bibinject.New(bibinject.WithLogger(logger.Sugar()))
package bibinject
