package bibinject

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/alnah/go-bibinject/internal/assets"
)

// Compile-time interface implementation checks.
var (
	_ assets.Loader = (*assets.EmbeddedLoader)(nil)
	_ assets.Loader = (*assets.Resolver)(nil)
)

// Injector orchestrates the bibliography-to-HTML pipeline:
// parse → order/group → render → inject. Each Run is a pure function of
// its Input; no state is retained between invocations, so one Injector
// may serve concurrent requests.
type Injector struct {
	cfg         injectorConfig
	styleLoader assets.Loader
	parser      *Parser
	renderer    *Renderer
	element     *ElementInjector
	log         *zap.SugaredLogger
}

// injectorConfig holds internal configuration for Injector.
type injectorConfig struct {
	assetPath    string
	expandMacros bool
}

// Option configures an Injector.
type Option func(*Injector)

// WithLogger installs a diagnostics sink for non-fatal conditions
// (missing placeholders, duplicate citation keys).
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(inj *Injector) {
		if logger != nil {
			inj.log = logger
		}
	}
}

// WithAssetPath loads refspec styles from a custom directory, falling
// back to the embedded styles for names not found there.
func WithAssetPath(path string) Option {
	return func(inj *Injector) {
		inj.cfg.assetPath = path
	}
}

// WithStyleLoader replaces the style lookup collaborator entirely.
func WithStyleLoader(loader assets.Loader) Option {
	return func(inj *Injector) {
		if loader != nil {
			inj.styleLoader = loader
		}
	}
}

// WithMacroExpansion enables @string macro expansion for bare-token
// field values. A macro is visible only to entries parsed after its
// declaration.
func WithMacroExpansion(enabled bool) Option {
	return func(inj *Injector) {
		inj.cfg.expandMacros = enabled
	}
}

// New creates an Injector with the embedded refspec styles and a no-op
// diagnostics logger. Use options to customize behavior.
func New(opts ...Option) (*Injector, error) {
	inj := &Injector{
		parser:   NewParser(),
		renderer: NewRenderer(),
		element:  NewElementInjector(),
		log:      zap.NewNop().Sugar(),
	}

	for _, opt := range opts {
		opt(inj)
	}

	if inj.styleLoader == nil {
		resolver, err := assets.NewResolver(inj.cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("configuring style loader: %w", err)
		}
		inj.styleLoader = resolver
	}

	inj.parser.ExpandMacros = inj.cfg.expandMacros
	inj.parser.SetLogger(inj.log)
	inj.renderer.SetLogger(inj.log)

	return inj, nil
}

// Styles returns the style names available to this Injector.
func (inj *Injector) Styles() ([]string, error) {
	return inj.styleLoader.ListStyles()
}

// Run executes the full pipeline and returns the final HTML document.
// On failure no partial HTML is returned; the error names the failing
// stage. The context is checked between stages.
func (inj *Injector) Run(ctx context.Context, input Input) (string, error) {
	if err := input.Validate(); err != nil {
		return "", err
	}

	doc, err := inj.parser.Parse(input.BibText)
	if err != nil {
		return "", fmt.Errorf("parsing bibliography: %w", err)
	}
	if len(doc.Entries) == 0 {
		return "", ErrNoEntries
	}
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	styleMarkup, err := inj.styleLoader.LoadStyle(input.Style)
	if err != nil {
		return "", fmt.Errorf("loading style: %w", err)
	}

	ordered := Order(doc.Entries, input.reverse(), input.Group)
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	renderer := inj.renderer
	if input.DOIIcon != "" {
		r := *inj.renderer
		r.DOIIcon = input.DOIIcon
		renderer = &r
	}
	groupRenderer := NewGroupRenderer(renderer, styleMarkup)

	var content string
	if input.Group != "" {
		grouped := Group(ordered, input.Group)
		content, err = groupRenderer.RenderGroups(grouped, input.reverse())
	} else {
		content, err = groupRenderer.RenderFlat(ordered)
	}
	if err != nil {
		return "", fmt.Errorf("rendering entries: %w", err)
	}
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	result, err := inj.element.Inject(input.HostHTML, content, input.TargetID)
	if err != nil {
		return "", fmt.Errorf("injecting into host document: %w", err)
	}

	return result, nil
}
