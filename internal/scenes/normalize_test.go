package scenes

import (
	"strings"
	"testing"
)

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

func TestNormalize_SmartSplit(t *testing.T) {
	actions, objects := Split("duduk lalu minum kopi", "kopi")
	scs := Normalize("char-1", actions, objects, "Halo", 5)

	if len(scs) != 2 {
		t.Fatalf("expected 2 scenes, got %d", len(scs))
	}

	first := scs[0]
	if first.SceneID != "scene_1" || first.Action != "duduk" {
		t.Errorf("unexpected first scene: %+v", first)
	}
	if first.Object != nil {
		t.Errorf("expected nil object on first scene, got %v", *first.Object)
	}
	if first.Dialogue != nil {
		t.Errorf("expected nil dialogue on first scene, got %v", *first.Dialogue)
	}
	if first.Duration != 5 {
		t.Errorf("expected duration 5, got %v", first.Duration)
	}

	last := scs[1]
	if last.SceneID != "scene_2" || last.Action != "minum kopi" {
		t.Errorf("unexpected last scene: %+v", last)
	}
	if last.Object == nil || *last.Object != "kopi" {
		t.Errorf("expected object kopi on last scene, got %v", last.Object)
	}
	if last.Dialogue == nil || *last.Dialogue != "Halo" {
		t.Errorf("expected dialogue Halo on last scene, got %v", last.Dialogue)
	}
}

func TestNormalize_ObjectCarryForward(t *testing.T) {
	actions := []string{"mengambil buku", "duduk", "berdiri"}
	scs := Normalize("char-1", actions, []string{"buku"}, "", 4)

	for i, s := range scs {
		if s.Object == nil || *s.Object != "buku" {
			t.Errorf("scene %d: expected carried object buku, got %v", i, s.Object)
		}
	}
}

func TestNormalize_ObjectRedetected(t *testing.T) {
	actions := []string{"mengambil buku", "minum kopi", "duduk"}
	scs := Normalize("char-1", actions, []string{"buku", "kopi"}, "", 4)

	if *scs[0].Object != "buku" {
		t.Errorf("scene 1: expected buku, got %v", *scs[0].Object)
	}
	if *scs[1].Object != "kopi" {
		t.Errorf("scene 2: expected kopi, got %v", *scs[1].Object)
	}
	if *scs[2].Object != "kopi" {
		t.Errorf("scene 3: expected carried kopi, got %v", *scs[2].Object)
	}
}

func TestNormalize_NoObjectStaysNil(t *testing.T) {
	scs := Normalize("char-1", []string{"duduk", "berdiri"}, nil, "", 4)

	for i, s := range scs {
		if s.Object != nil {
			t.Errorf("scene %d: expected nil object, got %v", i, *s.Object)
		}
	}
}

func TestNormalize_DialogueOnlyOnLastScene(t *testing.T) {
	actions := []string{"a", "b", "c"}
	scs := Normalize("char-1", actions, nil, "hello there", 5)

	withDialogue := 0
	for _, s := range scs {
		if s.Dialogue != nil {
			withDialogue++
		}
	}
	if withDialogue != 1 {
		t.Errorf("expected exactly 1 scene with dialogue, got %d", withDialogue)
	}
	if scs[2].Dialogue == nil {
		t.Errorf("expected dialogue on terminal scene")
	}
}

func TestNormalize_DefaultDuration(t *testing.T) {
	scs := Normalize("char-1", []string{"duduk"}, nil, "", 0)

	if scs[0].Duration != DefaultDuration {
		t.Errorf("expected default duration %v, got %v", DefaultDuration, scs[0].Duration)
	}
}

func TestNormalizeStrict_ClampsDuration(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{1, 3},
		{3, 3},
		{4.5, 4.5},
		{5, 5},
		{10, 5},
	}

	for _, c := range cases {
		scs, _, err := NormalizeStrict("char-1", []SceneInput{
			{Action: "duduk", Object: strPtr("kursi"), Duration: floatPtr(c.in)},
		})
		if err != nil {
			t.Fatalf("duration %v: unexpected error: %v", c.in, err)
		}
		if scs[0].Duration != c.want {
			t.Errorf("duration %v: expected clamp to %v, got %v", c.in, c.want, scs[0].Duration)
		}
	}
}

func TestNormalizeStrict_MissingObject(t *testing.T) {
	_, _, err := NormalizeStrict("char-1", []SceneInput{
		{Action: "duduk"},
	})
	if err == nil {
		t.Fatal("expected error for missing object")
	}
	if !strings.Contains(err.Error(), "object") {
		t.Errorf("expected object error, got %v", err)
	}
}

func TestNormalizeStrict_MissingAction(t *testing.T) {
	_, _, err := NormalizeStrict("char-1", []SceneInput{
		{Action: "  ", Object: strPtr("kursi")},
	})
	if err == nil {
		t.Fatal("expected error for missing action")
	}
}

func TestNormalizeStrict_OverlongDialogueWarns(t *testing.T) {
	long := strings.Repeat("kata ", 13)
	scs, warnings, err := NormalizeStrict("char-1", []SceneInput{
		{Action: "berbicara", Object: strPtr("telepon"), Dialogue: strPtr(long)},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(scs) != 1 {
		t.Fatalf("expected 1 scene, got %d", len(scs))
	}
	if len(warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d", len(warnings))
	}
	if !strings.Contains(warnings[0], "dialogue too long") {
		t.Errorf("unexpected warning text: %s", warnings[0])
	}
}

func TestNormalizeStrict_ShortDialogueNoWarning(t *testing.T) {
	_, warnings, err := NormalizeStrict("char-1", []SceneInput{
		{Action: "berbicara", Object: strPtr("telepon"), Dialogue: strPtr("halo apa kabar")},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("expected no warnings, got %v", warnings)
	}
}

func TestNormalizeStrict_DefaultDuration(t *testing.T) {
	scs, _, err := NormalizeStrict("char-1", []SceneInput{
		{Action: "duduk", Object: strPtr("kursi")},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if scs[0].Duration != DefaultDuration {
		t.Errorf("expected default duration, got %v", scs[0].Duration)
	}
}
