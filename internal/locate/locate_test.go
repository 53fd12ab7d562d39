package locate

import (
	"testing"

	"github.com/ocrbind/tessgen/internal/directive"
)

func TestFromGOOS(t *testing.T) {
	tests := []struct {
		goos string
		want Platform
	}{
		{"linux", Linux},
		{"darwin", Darwin},
		{"freebsd", FreeBSD},
		{"windows", Windows},
		{"js", Other},
		{"plan9", Other},
	}
	for _, tt := range tests {
		if got := FromGOOS(tt.goos); got != tt.want {
			t.Errorf("FromGOOS(%q) = %v, want %v", tt.goos, got, tt.want)
		}
	}
}

func TestStrategyFor(t *testing.T) {
	tests := []struct {
		platform Platform
		want     string
	}{
		{Windows, "vcpkg"},
		{Linux, "pkg-config"},
		{Darwin, "pkg-config"},
		{FreeBSD, "pkg-config"},
		{Other, "system-default"},
	}
	for _, tt := range tests {
		if got := StrategyFor(tt.platform).Name(); got != tt.want {
			t.Errorf("StrategyFor(%v) = %q, want %q", tt.platform, got, tt.want)
		}
	}
}

func TestBareLink(t *testing.T) {
	rec := directive.NewRecorder()
	d, err := Locate(BareLink{}, rec)
	if err != nil {
		t.Fatalf("Locate(BareLink) returned error: %v", err)
	}
	if len(d.IncludePaths) != 0 {
		t.Errorf("BareLink include paths = %v, want none", d.IncludePaths)
	}
	got := rec.Directives()
	if len(got) != 1 || got[0].Kind != directive.LinkLib || got[0].Value != LibName {
		t.Errorf("BareLink directives = %v, want a single link-lib=%s", got, LibName)
	}
}
