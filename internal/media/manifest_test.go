package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sigandsys.dev/internal/models"
)

func mustSpec(t *testing.T, slot models.Slot) SlotSpec {
	t.Helper()
	spec, err := SpecFor(slot)
	require.NoError(t, err)
	return spec
}

func TestSlotSpecValid(t *testing.T) {
	banner := mustSpec(t, models.SlotBanner)

	valid := []string{"banner1.png", "banner12.jpeg", "banner3.jpg", "banner4.gif", "banner5.webp"}
	for _, name := range valid {
		assert.True(t, banner.Valid(name), name)
	}

	invalid := []string{"banner.png", "banner123.png", "side1.png", "banner1.svg", "../banner1.png", "Banner1.png", "banner1.png.exe", " banner1.png"}
	for _, name := range invalid {
		assert.False(t, banner.Valid(name), name)
	}

	_, err := SpecFor("footer")
	assert.Error(t, err)
}

func TestSlotSpecPaths(t *testing.T) {
	overlay := mustSpec(t, models.SlotOverlay)
	assert.Equal(t, "Popup/manifest.json", overlay.ManifestPath())
	assert.Equal(t, "Popup/popup2.png", overlay.RelPath("popup2.png"))
	assert.Equal(t, []string{"popup2.png", "popup2.jpg", "popup2.jpeg", "popup2.gif", "popup2.webp"}, overlay.Candidates(2))
}

func TestParseManifest(t *testing.T) {
	side := mustSpec(t, models.SlotSide)

	tests := []struct {
		name string
		data string
		want []ManifestEntry
	}{
		{
			name: "array of names",
			data: `["side1.png", "side2.jpg", "evil.sh", "side1.png"]`,
			want: []ManifestEntry{{File: "side1.png"}, {File: "side2.jpg"}},
		},
		{
			name: "array of objects",
			data: `[{"file":"side1.png","link":"https://a.example"},{"name":"side2.gif","url":"/promo"},{"src":"banner1.png"}]`,
			want: []ManifestEntry{{File: "side1.png", Link: "https://a.example"}, {File: "side2.gif", Link: "/promo"}},
		},
		{
			name: "map of name to url",
			data: `{"side3.png":"https://c.example","side1.webp":"","nope.png":"https://x"}`,
			want: []ManifestEntry{{File: "side1.webp"}, {File: "side3.png", Link: "https://c.example"}},
		},
		{
			name: "unsafe links dropped",
			data: `{"side1.png":"javascript:alert(1)","side2.png":"//evil.example"}`,
			want: []ManifestEntry{{File: "side1.png"}, {File: "side2.png"}},
		},
		{
			name: "mixed array",
			data: `["side1.png", 42, {"file":"side2.png"}]`,
			want: []ManifestEntry{{File: "side1.png"}, {File: "side2.png"}},
		},
		{
			name: "nothing valid",
			data: `["a.png"]`,
			want: []ManifestEntry{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseManifest(side, []byte(tt.data))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"", "42", `{"side1.png": 3}`, `[`} {
		_, err := ParseManifest(side, []byte(bad))
		assert.Error(t, err, bad)
	}
}
