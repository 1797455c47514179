// Package assets provides refspec HTML styles for bibliography rendering.
//
// A refspec style is one HTML file holding a marker block per entry type,
// of the shape <tag id="bi-{type}"> … </tag>. The renderer extracts the
// block matching an entry's type and fills its placeholders.
//
// The package implements a layered loading system:
//
//	Loader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in styles)
//	    ├── FilesystemLoader  - loads from a custom directory on disk
//	    └── Resolver          - combines both with custom-first fallback
//
// Style names are validated to prevent path traversal; FilesystemLoader
// additionally verifies resolved paths stay within its base directory.
package assets
