package poi

import "testing"

func TestCandidateFromTags(t *testing.T) {
	c, ok := candidateFromTags("node/1", -31.5, 146.2, map[string]string{
		"amenity":        "fuel",
		"name":           "Cobar Roadhouse",
		"brand":          "Shell",
		"opening_hours":  "24/7",
		"fuel:diesel":    "yes",
		"fuel:octane_95": "no",
	})
	if !ok {
		t.Fatal("fuel amenity rejected")
	}
	if c.Category != CategoryFuel || c.Name != "Cobar Roadhouse" || c.Brand != "Shell" || c.Hours != "24/7" {
		t.Errorf("unexpected candidate: %+v", c)
	}
	if c.HasDiesel == nil || !*c.HasDiesel {
		t.Error("fuel:diesel=yes should resolve to true")
	}
	if c.HasUnleaded == nil || *c.HasUnleaded {
		t.Error("fuel:octane_95=no should resolve to false")
	}

	c, ok = candidateFromTags("node/2", -31.5, 146.2, map[string]string{"amenity": "fuel", "brand": "BP"})
	if !ok {
		t.Fatal("fuel amenity rejected")
	}
	if c.Name != "BP" {
		t.Errorf("unnamed station should fall back to brand, got %q", c.Name)
	}
	if c.HasDiesel != nil {
		t.Error("missing fuel:diesel tag should stay unknown")
	}

	if _, ok := candidateFromTags("node/3", -31.5, 146.2, map[string]string{"amenity": "parking"}); ok {
		t.Error("non fuel amenity accepted")
	}
}

func TestInBounds(t *testing.T) {
	settings := ExtractSettings{MinLat: -35, MaxLat: -28, MinLon: 140, MaxLon: 150}
	inside := Candidate{Lat: -31, Lng: 145}
	outside := Candidate{Lat: -31, Lng: 152}
	if !inBounds(inside, settings) {
		t.Error("candidate inside the box rejected")
	}
	if inBounds(outside, settings) {
		t.Error("candidate outside the box accepted")
	}
}
