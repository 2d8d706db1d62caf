package params

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func tempParams(t *testing.T) string {
	t.Helper()
	orig := ParamsPath
	ParamsPath = filepath.Join(t.TempDir(), "d")
	t.Cleanup(func() { ParamsPath = orig })
	EnsureParamDirectories()
	return ParamsPath
}

func TestPutGetRoundtrip(t *testing.T) {
	tempParams(t)
	path := ParamPath("ActiveRoute")

	want := []byte(`{"encoded_path":"_p~iF~ps|U","route_key":"abc"}`)
	if err := PutParam(path, want); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err := GetParam(path)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("roundtrip: got %q, want %q", got, want)
	}
}

func TestPutOverwrites(t *testing.T) {
	tempParams(t)
	path := ParamPath("FuelTracking")

	if err := PutParam(path, []byte("old")); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := PutParam(path, []byte("new")); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, err := GetParam(path)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != "new" {
		t.Errorf("got %q after overwrite", got)
	}
}

func TestPutLeavesNoTempFiles(t *testing.T) {
	dir := tempParams(t)
	for i := 0; i < 5; i++ {
		if err := PutParam(ParamPath("FatigueState"), []byte("{}")); err != nil {
			t.Fatalf("put: %v", err)
		}
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if e.Name() != "FatigueState" {
			t.Errorf("unexpected leftover file %s", e.Name())
		}
	}
}

func TestPutClosesTempFile(t *testing.T) {
	dir := tempParams(t)
	for i := 0; i < 20; i++ {
		if err := PutParam(ParamPath("LastGPSPosition"), []byte("{}")); err != nil {
			t.Fatalf("put: %v", err)
		}
	}

	// a descriptor left open on the written temp file shows up in /proc
	fds, err := os.ReadDir("/proc/self/fd")
	if err != nil {
		t.Skipf("no /proc/self/fd: %v", err)
	}
	for _, fd := range fds {
		target, err := os.Readlink(filepath.Join("/proc/self/fd", fd.Name()))
		if err != nil {
			continue
		}
		if strings.HasPrefix(target, dir) {
			t.Errorf("descriptor still open on %s", target)
		}
	}
}

func TestGetParamsSkipsHidden(t *testing.T) {
	dir := tempParams(t)
	if err := PutParam(ParamPath("VehicleProfile"), []byte("{}")); err != nil {
		t.Fatal(err)
	}
	if err := PutParam(ParamPath("LastGPSPosition"), []byte("{}")); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".hidden"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	names, err := GetParams()
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"LastGPSPosition", "VehicleProfile"}
	if len(names) != len(want) {
		t.Fatalf("params: got %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("params[%d]: got %s, want %s", i, names[i], want[i])
		}
	}
}

func TestRemoveParam(t *testing.T) {
	tempParams(t)
	path := ParamPath("FuelCandidates")

	if err := PutParam(path, []byte("[]")); err != nil {
		t.Fatal(err)
	}
	if err := RemoveParam(path); err != nil {
		t.Fatalf("remove: %v", err)
	}
	exists, err := Exists(path)
	if err != nil {
		t.Fatal(err)
	}
	if exists {
		t.Error("param still present after remove")
	}
}
