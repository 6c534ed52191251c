package regions

import (
	"log/slog"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/regions/pkg/reactive"
)

func TestInspect(t *testing.T) {
	layout, reg := mountLayout(t, Options{
		PageData: Regions{"sidebar": DataOf(map[string]any{"title": "s"})},
	})
	Region(layout, RegionProps{Name: "header", Required: true})
	Region(layout, RegionProps{Name: "footer"})
	Region(layout, RegionProps{Name: "sidebar", Required: true})
	Region(layout, RegionProps{Name: "title", Required: true})

	Use(reactive.NewOwner(layout), Regions{"title": DataOf(map[string]any{"title": "t"})})

	want := Problems{
		Missing: []string{"header"},
		Unused:  []string{"footer", "header"},
	}
	if diff := cmp.Diff(want, reg.Inspect()); diff != "" {
		t.Errorf("Inspect mismatch (-want +got):\n%s", diff)
	}
}

func TestUnusedCountsEverSet(t *testing.T) {
	layout, reg := mountLayout(t, Options{})
	Region(layout, RegionProps{Name: "header"})

	page := reactive.NewOwner(layout)
	Use(page, Regions{"header": Null})
	page.Dispose()

	if got := reg.Inspect().Unused; len(got) != 0 {
		t.Errorf("Unused = %v, a region that was set once is not unused", got)
	}
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name      string
		dev       bool
		warnings  *Warnings
		wantWarn  []string
		wantInfos []string
	}{
		{
			name: "all diagnostics",
			dev:  true,
			wantWarn: []string{
				`missing required region "header": the layout requires it but no page has set it`,
			},
			wantInfos: []string{
				`unused region "footer": the layout renders it but no page ever sets it`,
				`unused region "header": the layout renders it but no page ever sets it`,
			},
		},
		{
			name:     "missing only",
			dev:      true,
			warnings: &Warnings{Missing: true},
			wantWarn: []string{
				`missing required region "header": the layout requires it but no page has set it`,
			},
		},
		{
			name: "production is silent",
			dev:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, logs := newCapture()
			layout, reg := mountLayout(t, Options{Logger: logger, DevMode: tt.dev, Warnings: tt.warnings})
			Region(layout, RegionProps{Name: "header", Required: true})
			Region(layout, RegionProps{Name: "footer"})

			reg.Check()

			if diff := cmp.Diff(tt.wantWarn, logs.messages(slog.LevelWarn)); diff != "" {
				t.Errorf("warnings mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantInfos, logs.messages(slog.LevelInfo)); diff != "" {
				t.Errorf("infos mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSettleTimerRunsCheck(t *testing.T) {
	logger, logs := newCapture()
	layout := reactive.NewOwner(nil)
	defer layout.Dispose()

	Mount(layout, Options{Logger: logger, DevMode: true, SettleDelay: 10 * time.Millisecond})
	Region(layout, RegionProps{Name: "header", Required: true})

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if logs.contains(slog.LevelWarn, `missing required region "header"`) {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("no missing-region warning after settle; logs: %v", logs.all())
}
