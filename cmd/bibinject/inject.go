package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	bibinject "github.com/alnah/go-bibinject"
	"github.com/alnah/go-bibinject/internal/assets"
	"github.com/alnah/go-bibinject/internal/config"
	"github.com/alnah/go-bibinject/internal/fileutil"
	"github.com/alnah/go-bibinject/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput          = errors.New("no bibliography input specified (use --input)")
	ErrNoTemplate       = errors.New("no host document specified (use --template)")
	ErrNoOutput         = errors.New("cannot combine --output and --in-place")
	ErrReadBibliography = errors.New("failed to read bibliography file")
	ErrReadTemplate     = errors.New("failed to read host document")
	ErrWriteOutput      = errors.New("failed to write output")
)

// File permission for written HTML output.
const filePermissions = 0o644

// runInject executes the inject command: read the bibliography and host
// document, run the pipeline, write the result.
func runInject(args []string) error {
	flags, positional, err := parseInjectFlags(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(flags.common.config)
	if err != nil {
		return err
	}
	mergeInjectFlags(flags, positional, cfg)

	if flags.input == "" {
		return ErrNoInput
	}
	if flags.template == "" {
		return ErrNoTemplate
	}
	if flags.output != "" && flags.inPlace {
		return ErrNoOutput
	}

	logger, err := newLogger(flags.common.verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if icon := cfg.Inject.DOIIcon; icon != "" && !fileutil.IsURL(icon) &&
		fileutil.IsFilePath(icon) && !fileutil.FileExists(icon) {
		logger.Warnf("DOI icon %q does not exist on disk", icon)
	}

	bibText, err := fileutil.ReadTextFile(flags.input)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadBibliography, err)
	}
	hostHTML, err := fileutil.ReadTextFile(flags.template)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadTemplate, err)
	}

	inj, err := bibinject.New(
		bibinject.WithLogger(logger),
		bibinject.WithAssetPath(flags.assetPath),
		bibinject.WithMacroExpansion(cfg.Inject.ExpandStrings),
	)
	if err != nil {
		return err
	}

	result, err := inj.Run(context.Background(), bibinject.Input{
		HostHTML: hostHTML,
		BibText:  bibText,
		Style:    cfg.Inject.Style,
		Order:    cfg.Inject.Order,
		Group:    cfg.Inject.Group,
		TargetID: cfg.Inject.TargetID,
		DOIIcon:  cfg.Inject.DOIIcon,
	})
	if err != nil {
		return withHint(err, inj, hostHTML)
	}

	return writeResult(result, flags)
}

// runStyles executes the styles command: list the available styles.
func runStyles(args []string) error {
	flags, err := parseStylesFlags(args)
	if err != nil {
		return err
	}

	resolver, err := assets.NewResolver(flags.assetPath)
	if err != nil {
		return err
	}
	names, err := resolver.ListStyles()
	if err != nil {
		return err
	}

	fmt.Println(strings.Join(names, "\n"))
	return nil
}

// loadConfig loads the named config, or the defaults when none given.
func loadConfig(nameOrPath string) (*config.Config, error) {
	if nameOrPath == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.LoadConfig(nameOrPath)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("%w%s", err, hints.ForConfigNotFound(config.SearchPaths(nameOrPath)))
		}
		return nil, err
	}
	return cfg, nil
}

// mergeInjectFlags merges CLI flags into the config (CLI wins). The
// first positional argument, if any, is the output path.
func mergeInjectFlags(flags *injectFlags, positional []string, cfg *config.Config) {
	if len(positional) > 0 && flags.output == "" {
		flags.output = positional[0]
	}
	if flags.assetPath == "" {
		flags.assetPath = cfg.Assets.BasePath
	}
	if flags.style != "" {
		cfg.Inject.Style = flags.style
	}
	if flags.order != "" {
		cfg.Inject.Order = flags.order
	}
	if flags.group != "" {
		cfg.Inject.Group = flags.group
	}
	if flags.targetID != "" {
		cfg.Inject.TargetID = flags.targetID
	}
	if flags.doiIcon != "" {
		cfg.Inject.DOIIcon = flags.doiIcon
	}
	if flags.expand {
		cfg.Inject.ExpandStrings = true
	}
	if flags.noExpand {
		cfg.Inject.ExpandStrings = false
	}
}

// withHint augments pipeline errors with actionable context.
func withHint(err error, inj *bibinject.Injector, hostHTML string) error {
	switch {
	case errors.Is(err, assets.ErrStyleNotFound):
		if names, listErr := inj.Styles(); listErr == nil {
			return fmt.Errorf("%w%s", err, hints.ForStyleNotFound(names))
		}
	case errors.Is(err, bibinject.ErrTargetNotFound):
		return fmt.Errorf("%w%s", err, hints.ForTargetNotFound(hostHTML))
	case errors.Is(err, bibinject.ErrNoEntries):
		return fmt.Errorf("%w%s", err, hints.ForNoEntries())
	}
	return err
}

// writeResult writes the final document to the selected destination.
func writeResult(result string, flags *injectFlags) error {
	switch {
	case flags.inPlace:
		if err := os.WriteFile(flags.template, []byte(result), filePermissions); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
		fmt.Fprintf(os.Stderr, "Replaced %s\n", flags.template)
	case flags.output != "":
		if err := os.WriteFile(flags.output, []byte(result), filePermissions); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
		fmt.Fprintf(os.Stderr, "Created %s\n", flags.output)
	default:
		fmt.Print(result)
	}
	return nil
}
