package bibinject

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-bibinject/internal/assets"
)

// stubLoader serves a fixed markup string for every style name.
type stubLoader struct {
	markup string
	err    error
}

func (s stubLoader) LoadStyle(string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.markup, nil
}

func (s stubLoader) ListStyles() ([]string, error) { return []string{"stub"}, nil }

const testBib = `@article{a2019, author = {Zed, A.}, title = {Old}, year = {2019}}
@article{a2021, author = {Moe, B.}, title = {New}, year = {2021}}
@article{a2020, author = {Kay, C.}, title = {Mid}, year = {2020}}`

const testHost = `<html>
<body>
  <div id="bibliography"></div>
</body>
</html>`

func newTestInjector(t *testing.T, opts ...Option) *Injector {
	t.Helper()
	opts = append([]Option{WithStyleLoader(stubLoader{markup: singleLineStyle})}, opts...)
	inj, err := New(opts...)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return inj
}

func TestRunOrdersEntriesAscending(t *testing.T) {
	inj := newTestInjector(t)

	got, err := inj.Run(context.Background(), Input{
		HostHTML: testHost,
		BibText:  testBib,
		Style:    "stub",
		Order:    OrderAsc,
		TargetID: "bibliography",
	})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	oldest := strings.Index(got, "Old")
	middle := strings.Index(got, "Mid")
	newest := strings.Index(got, "New")
	if oldest < 0 || middle < 0 || newest < 0 {
		t.Fatalf("Run output missing entries:\n%s", got)
	}
	if !(oldest < middle && middle < newest) {
		t.Errorf("ascending order violated: Old@%d Mid@%d New@%d", oldest, middle, newest)
	}

	if !strings.Contains(got, `<div id="bibliography">`) {
		t.Errorf("target element lost:\n%s", got)
	}
	if !strings.HasSuffix(got, "</html>") {
		t.Errorf("host document truncated:\n%s", got)
	}
}

func TestRunOrdersEntriesDescending(t *testing.T) {
	inj := newTestInjector(t)

	got, err := inj.Run(context.Background(), Input{
		HostHTML: testHost,
		BibText:  testBib,
		Style:    "stub",
		Order:    OrderDesc,
		TargetID: "bibliography",
	})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if !(strings.Index(got, "New") < strings.Index(got, "Mid")) {
		t.Errorf("descending order violated:\n%s", got)
	}
}

func TestRunGroupedByYear(t *testing.T) {
	inj := newTestInjector(t)

	got, err := inj.Run(context.Background(), Input{
		HostHTML: testHost,
		BibText:  testBib,
		Style:    "stub",
		Order:    OrderAsc,
		Group:    GroupYear,
		TargetID: "bibliography",
	})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	for _, heading := range []string{"<h2>2019</h2>", "<h2>2020</h2>", "<h2>2021</h2>"} {
		if !strings.Contains(got, heading) {
			t.Errorf("Run output missing %s:\n%s", heading, got)
		}
	}
	if !(strings.Index(got, "<h2>2019</h2>") < strings.Index(got, "<h2>2021</h2>")) {
		t.Errorf("group headings out of order:\n%s", got)
	}
}

func TestRunValidation(t *testing.T) {
	inj := newTestInjector(t)
	valid := Input{
		HostHTML: testHost,
		BibText:  testBib,
		Style:    "stub",
		TargetID: "bibliography",
	}

	tests := []struct {
		name    string
		mutate  func(*Input)
		wantErr error
	}{
		{name: "empty host", mutate: func(in *Input) { in.HostHTML = "" }, wantErr: ErrEmptyHost},
		{name: "empty bibliography", mutate: func(in *Input) { in.BibText = "" }, wantErr: ErrEmptyBib},
		{name: "empty style", mutate: func(in *Input) { in.Style = "" }, wantErr: ErrEmptyStyle},
		{name: "empty target id", mutate: func(in *Input) { in.TargetID = "" }, wantErr: ErrEmptyTargetID},
		{name: "bad order", mutate: func(in *Input) { in.Order = "sideways" }, wantErr: ErrInvalidOrder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := valid
			tt.mutate(&input)
			_, err := inj.Run(context.Background(), input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Run error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRunNoEntries(t *testing.T) {
	inj := newTestInjector(t)

	_, err := inj.Run(context.Background(), Input{
		HostHTML: testHost,
		BibText:  "@comment{nothing to cite}",
		Style:    "stub",
		TargetID: "bibliography",
	})
	if !errors.Is(err, ErrNoEntries) {
		t.Fatalf("Run error = %v, want ErrNoEntries", err)
	}
}

func TestRunWrapsStageErrors(t *testing.T) {
	t.Run("parse stage", func(t *testing.T) {
		inj := newTestInjector(t)
		_, err := inj.Run(context.Background(), Input{
			HostHTML: testHost,
			BibText:  "@article{k, title = {open",
			Style:    "stub",
			TargetID: "bibliography",
		})
		if !errors.Is(err, ErrUnbalancedBraces) {
			t.Fatalf("Run error = %v, want ErrUnbalancedBraces", err)
		}
		if !strings.Contains(err.Error(), "parsing bibliography") {
			t.Errorf("error %q does not name the parse stage", err)
		}
	})

	t.Run("style stage", func(t *testing.T) {
		inj, err := New(WithStyleLoader(stubLoader{err: assets.ErrStyleNotFound}))
		if err != nil {
			t.Fatalf("New returned error: %v", err)
		}
		_, err = inj.Run(context.Background(), Input{
			HostHTML: testHost,
			BibText:  testBib,
			Style:    "missing",
			TargetID: "bibliography",
		})
		if !errors.Is(err, assets.ErrStyleNotFound) {
			t.Fatalf("Run error = %v, want ErrStyleNotFound", err)
		}
		if !strings.Contains(err.Error(), "loading style") {
			t.Errorf("error %q does not name the style stage", err)
		}
	})

	t.Run("inject stage", func(t *testing.T) {
		inj := newTestInjector(t)
		_, err := inj.Run(context.Background(), Input{
			HostHTML: testHost,
			BibText:  testBib,
			Style:    "stub",
			TargetID: "nonexistent",
		})
		if !errors.Is(err, ErrTargetNotFound) {
			t.Fatalf("Run error = %v, want ErrTargetNotFound", err)
		}
		if !strings.Contains(err.Error(), "injecting into host document") {
			t.Errorf("error %q does not name the inject stage", err)
		}
	})
}

func TestRunHonorsContextCancellation(t *testing.T) {
	inj := newTestInjector(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := inj.Run(ctx, Input{
		HostHTML: testHost,
		BibText:  testBib,
		Style:    "stub",
		TargetID: "bibliography",
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run error = %v, want context.Canceled", err)
	}
}

func TestRunDOIIconDoesNotLeakBetweenRuns(t *testing.T) {
	inj := newTestInjector(t)
	bib := `@article{k, author = {Doe, J.}, title = {T}, year = {2020}, doi = {10.1/x}}`

	withIcon, err := inj.Run(context.Background(), Input{
		HostHTML: testHost,
		BibText:  bib,
		Style:    "stub",
		TargetID: "bibliography",
		DOIIcon:  "/icon.svg",
	})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if !strings.Contains(withIcon, "/icon.svg") {
		t.Errorf("Run with DOIIcon missing icon markup:\n%s", withIcon)
	}

	withoutIcon, err := inj.Run(context.Background(), Input{
		HostHTML: testHost,
		BibText:  bib,
		Style:    "stub",
		TargetID: "bibliography",
	})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if strings.Contains(withoutIcon, "/icon.svg") {
		t.Errorf("DOIIcon from a previous run leaked:\n%s", withoutIcon)
	}
	if inj.renderer.DOIIcon != "" {
		t.Error("shared renderer mutated by per-run DOIIcon")
	}
}

func TestRunWithEmbeddedStyles(t *testing.T) {
	inj, err := New()
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	got, err := inj.Run(context.Background(), Input{
		HostHTML: testHost,
		BibText:  testBib,
		Style:    "default",
		TargetID: "bibliography",
	})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if !strings.Contains(got, "Old") {
		t.Errorf("embedded default style did not render entries:\n%s", got)
	}
}

func TestStyles(t *testing.T) {
	inj, err := New()
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	names, err := inj.Styles()
	if err != nil {
		t.Fatalf("Styles returned error: %v", err)
	}

	found := make(map[string]bool, len(names))
	for _, n := range names {
		found[n] = true
	}
	if !found["default"] || !found["compact"] {
		t.Errorf("Styles = %v, want default and compact included", names)
	}
}
