package testing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-strata/strata/pkg/scene"
)

// TestingT is the subset of *testing.T used by MatchesFile, allowing
// test doubles to intercept failures.
type TestingT interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
	Name() string
}

// Snapshot captures a mirrored scene: every live object in stacking
// order, bottom to top.
type Snapshot struct {
	Objects []ObjectSnapshot `json:"objects"`
}

// ObjectSnapshot records one scene object's observable state.
type ObjectSnapshot struct {
	Label   string  `json:"label"`
	Bounds  [4]int  `json:"bounds"`
	Opacity float64 `json:"opacity"`
	Visible bool    `json:"visible"`
	Content string  `json:"content,omitempty"`
}

// CaptureSnapshot captures the current mirrored scene.
func (t *MirrorTester) CaptureSnapshot() *Snapshot {
	return CaptureCollection(t.backend.Collection())
}

// CaptureCollection captures the live objects of a scene collection in
// stacking order.
func CaptureCollection(c *scene.Collection) *Snapshot {
	snap := &Snapshot{}
	for _, obj := range c.Objects() {
		b := obj.Bounds()
		snap.Objects = append(snap.Objects, ObjectSnapshot{
			Label:   obj.Label(),
			Bounds:  [4]int{b.Min.X, b.Min.Y, b.Max.X, b.Max.Y},
			Opacity: round2(obj.Opacity()),
			Visible: obj.Visible(),
			Content: contentDescription(obj.Content()),
		})
	}
	return snap
}

// MatchesFile compares this snapshot against a golden file. On mismatch
// it reports a diff and instructions for updating. When
// STRATA_UPDATE_SNAPSHOTS=1 is set, the file is silently updated
// instead.
func (s *Snapshot) MatchesFile(t TestingT, path string) {
	t.Helper()

	if os.Getenv("STRATA_UPDATE_SNAPSHOTS") == "1" {
		if err := s.UpdateFile(path); err != nil {
			t.Fatalf("failed to update snapshot: %v", err)
		}
		return
	}

	expected, err := loadSnapshot(path)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("snapshot file missing: %s\n\nTo create: STRATA_UPDATE_SNAPSHOTS=1 go test -run %s", path, t.Name())
			return
		}
		t.Fatalf("failed to load snapshot: %v", err)
		return
	}

	if diff := s.Diff(expected); diff != "" {
		t.Errorf("snapshot mismatch: %s\n%s\n\nTo update: STRATA_UPDATE_SNAPSHOTS=1 go test -run %s", path, diff, t.Name())
	}
}

// UpdateFile writes this snapshot to the given path, creating
// directories as needed.
func (s *Snapshot) UpdateFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := marshalSnapshot(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Diff returns a line diff between this snapshot and other. Returns an
// empty string if equal.
func (s *Snapshot) Diff(other *Snapshot) string {
	a, _ := marshalSnapshot(s)
	b, _ := marshalSnapshot(other)
	if bytes.Equal(a, b) {
		return ""
	}
	return lineDiff(string(b), string(a))
}

// contentDescription summarizes an object's content for snapshots:
// "WxH" for finite images, "uniform" for unbounded fills, and an empty
// string for objects without content.
func contentDescription(img image.Image) string {
	if img == nil {
		return ""
	}
	b := img.Bounds()
	if b.Dx() >= 1<<30 || b.Dy() >= 1<<30 {
		return "uniform"
	}
	return fmt.Sprintf("%dx%d", b.Dx(), b.Dy())
}

// round2 rounds a float64 to 2 decimal places so opacity values stay
// stable across float arithmetic.
func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

func loadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("invalid snapshot JSON: %w", err)
	}
	return &snap, nil
}

func marshalSnapshot(s *Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// lineDiff produces a simple line-oriented diff.
func lineDiff(expected, actual string) string {
	expectedLines := strings.Split(expected, "\n")
	actualLines := strings.Split(actual, "\n")

	var buf strings.Builder
	buf.WriteString("--- expected\n+++ actual\n")

	maxLen := len(expectedLines)
	if len(actualLines) > maxLen {
		maxLen = len(actualLines)
	}

	for i := 0; i < maxLen; i++ {
		var e, a string
		if i < len(expectedLines) {
			e = expectedLines[i]
		}
		if i < len(actualLines) {
			a = actualLines[i]
		}
		if e != a {
			if i < len(expectedLines) {
				fmt.Fprintf(&buf, "-%s\n", e)
			}
			if i < len(actualLines) {
				fmt.Fprintf(&buf, "+%s\n", a)
			}
		}
	}

	return buf.String()
}
