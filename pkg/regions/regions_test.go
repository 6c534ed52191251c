package regions

import (
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/regions/internal/errors"
	"github.com/vango-dev/regions/pkg/reactive"
	"github.com/vango-dev/regions/pkg/vdom"
)

func TestOutletShowsFallbackWhenUnset(t *testing.T) {
	layout, _ := mountLayout(t, Options{})

	header := Region(layout, RegionProps{
		Name:     "header",
		Fallback: defaultFallback,
		Children: titleChildren,
	})

	if got := renderHTML(t, header); got != "<h1>Default</h1>" {
		t.Errorf("render = %q, want fallback", got)
	}
	if header.Err() != nil {
		t.Errorf("Err() = %v, want nil", header.Err())
	}
}

func TestOutletWithoutFallbackRendersNothing(t *testing.T) {
	layout, _ := mountLayout(t, Options{})
	o := Region(layout, RegionProps{Name: "header", Children: titleChildren})
	if o.Render() != nil {
		t.Errorf("Render() = %+v, want nil", o.Render())
	}
}

func TestNullSuppressesFallback(t *testing.T) {
	layout, _ := mountLayout(t, Options{})
	footer := Region(layout, RegionProps{Name: "footer", Fallback: defaultFallback})

	page := reactive.NewOwner(layout)
	Use(page, Regions{"footer": Null})
	layout.Flush()

	if footer.Render() != nil {
		t.Errorf("Render() = %+v, want nil for null content", footer.Render())
	}
}

func TestDataRendersChildren(t *testing.T) {
	layout, _ := mountLayout(t, Options{})
	header := Region(layout, RegionProps{Name: "header", Fallback: defaultFallback, Children: titleChildren})

	page := reactive.NewOwner(layout)
	Use(page, Regions{"header": DataOf(map[string]any{"title": "Settings"})})
	layout.Flush()

	if got := renderHTML(t, header); got != "<h1>Settings</h1>" {
		t.Errorf("render = %q", got)
	}
}

func TestUnmountRestoresFallback(t *testing.T) {
	layout, reg := mountLayout(t, Options{})
	header := Region(layout, RegionProps{Name: "header", Fallback: defaultFallback, Children: titleChildren})

	page := reactive.NewOwner(layout)
	Use(page, Regions{
		"header": DataOf(map[string]any{"title": "Settings"}),
		"footer": Null,
	})
	layout.Flush()
	if got := renderHTML(t, header); got != "<h1>Settings</h1>" {
		t.Fatalf("render = %q before unmount", got)
	}

	page.Dispose()
	layout.Flush()

	if got := renderHTML(t, header); got != "<h1>Default</h1>" {
		t.Errorf("render = %q after unmount, want fallback", got)
	}
	for _, name := range []string{"header", "footer"} {
		if reg.Has(name) {
			t.Errorf("Has(%q) = true after unmount", name)
		}
	}
}

func TestReactiveReplacement(t *testing.T) {
	layout, reg := mountLayout(t, Options{})
	header := Region(layout, RegionProps{Name: "header", Fallback: defaultFallback, Children: titleChildren})
	sidebar := Region(layout, RegionProps{Name: "sidebar", Fallback: defaultFallback})

	title := reactive.NewSignal("A")
	withSidebar := reactive.NewSignal(true)

	page := reactive.NewOwner(layout)
	UseFunc(page, func() Regions {
		r := Regions{"header": DataOf(map[string]any{"title": title.Get()})}
		if withSidebar.Get() {
			r["sidebar"] = FragmentOf(func() *vdom.VNode { return vdom.Aside(vdom.Text("nav")) })
		}
		return r
	})
	layout.Flush()

	if got := renderHTML(t, header); got != "<h1>A</h1>" {
		t.Fatalf("render = %q, want A", got)
	}

	title.Set("B")
	layout.Flush()
	if got := renderHTML(t, header); got != "<h1>B</h1>" {
		t.Errorf("render = %q, want B", got)
	}

	// Keys the new evaluation no longer sets are withdrawn.
	withSidebar.Set(false)
	layout.Flush()
	if got := renderHTML(t, sidebar); got != "<h1>Default</h1>" {
		t.Errorf("sidebar = %q, want fallback once the page stops setting it", got)
	}
	if reg.Has("sidebar") {
		t.Error("Has(sidebar) = true after the mapping dropped it")
	}
}

func TestUnsetEntriesAreSkipped(t *testing.T) {
	layout, reg := mountLayout(t, Options{})
	page := reactive.NewOwner(layout)
	Use(page, Regions{"header": {}, "footer": Null})

	if reg.Has("header") {
		t.Error("an unset entry must not be stored")
	}
	if !reg.Has("footer") {
		t.Error("null entry should be stored")
	}
}

func TestFragmentBypassesSchema(t *testing.T) {
	failing := SchemaFunc(func(any) (any, error) {
		return nil, fmt.Errorf("should not be called")
	})
	layout, _ := mountLayout(t, Options{Schemas: map[string]Schema{"header": failing}})
	header := Region(layout, RegionProps{Name: "header", Schema: failing, Children: titleChildren})

	page := reactive.NewOwner(layout)
	Use(page, Regions{"header": FragmentOf(func() *vdom.VNode {
		return vdom.H1(vdom.Text("Custom"))
	})})
	layout.Flush()

	if got := renderHTML(t, header); got != "<h1>Custom</h1>" {
		t.Errorf("render = %q", got)
	}
	if header.Err() != nil {
		t.Errorf("Err() = %v", header.Err())
	}
}

func TestSchemaPrecedence(t *testing.T) {
	tag := func(label string) Schema {
		return SchemaFunc(func(data any) (any, error) {
			m := data.(map[string]any)
			return map[string]any{"title": label + ":" + m["title"].(string)}, nil
		})
	}

	tests := []struct {
		name    string
		region  Schema
		context Schema
		want    string
	}{
		{"region beats context", tag("region"), tag("context"), "<h1>region:x</h1>"},
		{"context used when region has none", nil, tag("context"), "<h1>context:x</h1>"},
		{"region without context", tag("region"), nil, "<h1>region:x</h1>"},
		{"no schema passes raw data", nil, nil, "<h1>x</h1>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schemas := map[string]Schema{}
			if tt.context != nil {
				schemas["header"] = tt.context
			}
			layout, _ := mountLayout(t, Options{Schemas: schemas})
			header := Region(layout, RegionProps{Name: "header", Schema: tt.region, Children: titleChildren})

			Use(reactive.NewOwner(layout), Regions{"header": DataOf(map[string]any{"title": "x"})})
			layout.Flush()

			if got := renderHTML(t, header); got != tt.want {
				t.Errorf("render = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidationFailureIsLoggedAndRendersNothing(t *testing.T) {
	logger, logs := newCapture()
	strict := SchemaFunc(func(data any) (any, error) {
		m, _ := data.(map[string]any)
		if _, ok := m["title"].(string); !ok {
			return nil, fmt.Errorf("title: expected string")
		}
		return data, nil
	})
	layout, _ := mountLayout(t, Options{Logger: logger, Schemas: map[string]Schema{"header": strict}})
	header := Region(layout, RegionProps{Name: "header", Fallback: defaultFallback, Children: titleChildren})

	title := reactive.NewSignal[any](42)
	UseFunc(reactive.NewOwner(layout), func() Regions {
		return Regions{"header": DataOf(map[string]any{"title": title.Get()})}
	})
	layout.Flush()

	if header.Render() != nil {
		t.Errorf("Render() = %+v, want nil on validation failure", header.Render())
	}
	if !errors.HasCode(header.Err(), "R201") {
		t.Errorf("Err() = %v, want R201", header.Err())
	}
	if !strings.Contains(header.Err().Error(), "title: expected string") {
		t.Errorf("Err() = %q, want wrapped parse error", header.Err())
	}
	if got := logs.messages(slog.LevelError); len(got) != 1 {
		t.Errorf("error logs = %v, want exactly one", got)
	}

	title.Set("Fixed")
	layout.Flush()
	if header.Err() != nil {
		t.Errorf("Err() = %v after valid data", header.Err())
	}
	if got := renderHTML(t, header); got != "<h1>Fixed</h1>" {
		t.Errorf("render = %q", got)
	}
}

func TestPanicsAreRecovered(t *testing.T) {
	logger, logs := newCapture()
	panicking := SchemaFunc(func(any) (any, error) { panic("boom") })

	layout, _ := mountLayout(t, Options{Logger: logger})
	data := Region(layout, RegionProps{Name: "data", Schema: panicking, Children: titleChildren})
	frag := Region(layout, RegionProps{Name: "frag"})

	Use(reactive.NewOwner(layout), Regions{
		"data": DataOf(map[string]any{"title": "x"}),
		"frag": FragmentOf(func() *vdom.VNode { panic("fragment exploded") }),
	})
	layout.Flush()

	if !errors.HasCode(data.Err(), "R201") {
		t.Errorf("schema panic: Err() = %v, want R201", data.Err())
	}
	if !errors.HasCode(frag.Err(), "R102") {
		t.Errorf("fragment panic: Err() = %v, want R102", frag.Err())
	}
	if data.Render() != nil || frag.Render() != nil {
		t.Error("panicking outlets should render nothing")
	}
	if got := len(logs.messages(slog.LevelError)); got != 2 {
		t.Errorf("error logs = %d, want 2", got)
	}
}

func TestUnexpectedRegionWarning(t *testing.T) {
	tests := []struct {
		name     string
		dev      bool
		warnings *Warnings
		want     bool
	}{
		{"dev mode", true, nil, true},
		{"production", false, nil, false},
		{"toggled off", true, &Warnings{Unused: true, Missing: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, logs := newCapture()
			layout, _ := mountLayout(t, Options{Logger: logger, DevMode: tt.dev, Warnings: tt.warnings})
			Region(layout, RegionProps{Name: "header"})

			Use(reactive.NewOwner(layout), Regions{
				"header":  DataOf(map[string]any{"title": "x"}),
				"sidebar": DataOf(map[string]any{"title": "y"}),
			})

			want := `unexpected region "sidebar": the page is setting a region that no layout is using`
			got := logs.contains(slog.LevelWarn, want)
			if got != tt.want {
				t.Errorf("warned = %v, want %v (logs: %v)", got, tt.want, logs.all())
			}
			if logs.contains(slog.LevelWarn, `"header"`) {
				t.Error("declared region must not trigger the unexpected warning")
			}
		})
	}
}

func TestUseOutsideLayout(t *testing.T) {
	logger, logs := newCapture()
	prev := slog.Default()
	slog.SetDefault(logger)
	t.Cleanup(func() { slog.SetDefault(prev) })

	orphan := reactive.NewOwner(nil)
	defer orphan.Dispose()

	if reg := Use(orphan, Regions{"header": Null}); reg != nil {
		t.Errorf("Use() = %v, want nil without a registry", reg)
	}
	got := logs.messages(slog.LevelWarn)
	if diff := cmp.Diff([]string{useOutsideLayout}, got); diff != "" {
		t.Errorf("warnings mismatch (-want +got):\n%s", diff)
	}
}

func TestImperativeUpdates(t *testing.T) {
	layout, _ := mountLayout(t, Options{})
	header := Region(layout, RegionProps{Name: "header", Fallback: defaultFallback, Children: titleChildren})

	reg := Use(reactive.NewOwner(layout), nil)
	if reg == nil {
		t.Fatal("Use() returned nil inside a layout")
	}

	reg.SetRegion("header", DataOf(map[string]any{"title": "Clicked"}))
	layout.Flush()
	if got := renderHTML(t, header); got != "<h1>Clicked</h1>" {
		t.Errorf("render = %q", got)
	}

	reg.SetRegion("header", Content{})
	layout.Flush()
	if got := renderHTML(t, header); got != "<h1>Default</h1>" {
		t.Errorf("setting unset content should clear; render = %q", got)
	}
}

func TestImperativeUpdateWithMutatedData(t *testing.T) {
	layout, reg := mountLayout(t, Options{})
	header := Region(layout, RegionProps{Name: "header", Children: titleChildren})

	data := map[string]any{"title": "A"}
	reg.SetRegion("header", DataOf(data))
	layout.Flush()
	if got := renderHTML(t, header); got != "<h1>A</h1>" {
		t.Fatalf("render = %q", got)
	}

	data["title"] = "B"
	reg.SetRegion("header", DataOf(data))
	layout.Flush()
	if got := renderHTML(t, header); got != "<h1>B</h1>" {
		t.Errorf("render after rewriting the same map = %q, want <h1>B</h1>", got)
	}
}

func TestPageDataWithMutatedData(t *testing.T) {
	data := map[string]any{"title": "A"}
	layout, reg := mountLayout(t, Options{PageData: Regions{"header": DataOf(data)}})
	header := Region(layout, RegionProps{Name: "header", Children: titleChildren})
	layout.Flush()

	data["title"] = "B"
	reg.SetPageData(Regions{"header": DataOf(data)})
	layout.Flush()
	if got := renderHTML(t, header); got != "<h1>B</h1>" {
		t.Errorf("render = %q, want <h1>B</h1>", got)
	}
}

func TestLastWriteWins(t *testing.T) {
	layout, reg := mountLayout(t, Options{})
	header := Region(layout, RegionProps{Name: "header", Children: titleChildren})

	Use(reactive.NewOwner(layout), Regions{"header": DataOf(map[string]any{"title": "first"})})
	Use(reactive.NewOwner(layout), Regions{"header": DataOf(map[string]any{"title": "second"})})
	layout.Flush()

	if got := renderHTML(t, header); got != "<h1>second</h1>" {
		t.Errorf("render = %q, want the later producer", got)
	}
	if got := reg.Peek("header").Kind; got != KindData {
		t.Errorf("Peek kind = %v", got)
	}
}

func TestRegisterAndUnregister(t *testing.T) {
	layout, reg := mountLayout(t, Options{})
	header := Region(layout, RegionProps{Name: "header", Required: true})
	Region(layout, RegionProps{Name: "footer"})
	Region(layout, RegionProps{Name: "footer"})

	if diff := cmp.Diff([]string{"footer", "header"}, reg.Declared()); diff != "" {
		t.Errorf("Declared mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"header"}, reg.Required()); diff != "" {
		t.Errorf("Required mismatch (-want +got):\n%s", diff)
	}

	reg.SetRegion("header", Null)
	header.Dispose()

	if diff := cmp.Diff([]string{"footer"}, reg.Declared()); diff != "" {
		t.Errorf("Declared after dispose mismatch (-want +got):\n%s", diff)
	}
	if len(reg.Required()) != 0 {
		t.Errorf("Required() = %v after dispose", reg.Required())
	}
	if !reg.Has("header") {
		t.Error("unregistering must leave content in place")
	}
}

func TestPageData(t *testing.T) {
	layout, reg := mountLayout(t, Options{
		PageData: Regions{"header": DataOf(map[string]any{"title": "From server"})},
	})
	header := Region(layout, RegionProps{Name: "header", Fallback: defaultFallback, Children: titleChildren})

	if got := renderHTML(t, header); got != "<h1>From server</h1>" {
		t.Fatalf("render = %q, want page data", got)
	}

	page := reactive.NewOwner(layout)
	Use(page, Regions{"header": DataOf(map[string]any{"title": "From page"})})
	layout.Flush()
	if got := renderHTML(t, header); got != "<h1>From page</h1>" {
		t.Errorf("render = %q, producer should win", got)
	}

	page.Dispose()
	layout.Flush()
	if got := renderHTML(t, header); got != "<h1>From server</h1>" {
		t.Errorf("render = %q, want page data after unmount", got)
	}

	reg.SetPageData(nil)
	layout.Flush()
	if got := renderHTML(t, header); got != "<h1>Default</h1>" {
		t.Errorf("render = %q, want fallback once page data is gone", got)
	}
}

func TestHTMLIsSanitized(t *testing.T) {
	layout, _ := mountLayout(t, Options{})
	body := Region(layout, RegionProps{Name: "body"})

	Use(reactive.NewOwner(layout), Regions{
		"body": HTML(`<p>hello</p><script>alert(1)</script>`),
	})
	layout.Flush()

	got := renderHTML(t, body)
	if !strings.Contains(got, "<p>hello</p>") {
		t.Errorf("render = %q, want paragraph kept", got)
	}
	if strings.Contains(got, "script") {
		t.Errorf("render = %q, script should be stripped", got)
	}
}

func TestOutletWithoutRegistry(t *testing.T) {
	root := reactive.NewOwner(nil)
	defer root.Dispose()

	o := Region(root, RegionProps{Name: "header", Fallback: defaultFallback})
	if got := renderHTML(t, o); got != "<h1>Default</h1>" {
		t.Errorf("render = %q", got)
	}
}

func TestSettleTimerStopsOnDispose(t *testing.T) {
	logger, logs := newCapture()
	layout := reactive.NewOwner(nil)
	Mount(layout, Options{Logger: logger, DevMode: true, SettleDelay: 20 * time.Millisecond})
	Region(layout, RegionProps{Name: "header", Required: true})

	layout.Dispose()
	time.Sleep(80 * time.Millisecond)

	if got := logs.all(); len(got) != 0 {
		t.Errorf("logs after dispose = %v, want none", got)
	}
}

func TestNestedLayoutsUseNearestRegistry(t *testing.T) {
	root, outer := mountLayout(t, Options{})
	inner := reactive.NewOwner(root)
	innerReg := Mount(inner, Options{})

	page := reactive.NewOwner(inner)
	if got := Use(page, Regions{"header": Null}); got != innerReg {
		t.Error("Use should bind to the nearest registry")
	}
	if outer.Has("header") {
		t.Error("outer registry must not see the inner page's regions")
	}
}
