package e2e_tests

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"animac/pkg/compiler"
	"animac/pkg/dvm"
	"animac/pkg/module"
)

func compileFile(t *testing.T, name string, opts compiler.Options) *compiler.Result {
	t.Helper()
	src, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("Failed to read script: %v", err)
	}
	res, err := compiler.Compile(string(src), opts)
	if err != nil {
		t.Fatalf("Compile failed:\n%s", compiler.Snippet(err, string(src)))
	}
	return res
}

func ops(t *testing.T, f *module.File) []string {
	t.Helper()
	code, err := module.Disassemble(f)
	if err != nil {
		t.Fatalf("Disassemble failed: %v", err)
	}
	out := make([]string, len(code))
	for i, in := range code {
		out[i] = in.Op
	}
	return out
}

func TestIntroScene(t *testing.T) {
	res := compileFile(t, "intro.anima", compiler.DefaultOptions())

	f, err := module.Decode(res.Binary, module.DecodeOptions{Order: binary.LittleEndian})
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	want := []string{
		"ACTOR", "EMOTION", "LINE", "WAIT",
		"ACTOR", "ACTION", "LINE", "USER_INPUT",
		"ACTOR", "ACTOR", "ACTION", "NAMED_CALL", "NAMED_CALL", "SYNC",
	}
	if got := ops(t, f); !reflect.DeepEqual(got, want) {
		t.Errorf("ops =\n%v\nwant\n%v", got, want)
	}

	wantData := []string{
		"false", "true",
		"Good morning!",
		"Is it morning already?",
		"loud", "for a while",
		"laughter", "2",
	}
	if !reflect.DeepEqual(f.Data, wantData) {
		t.Errorf("data = %q; want %q", f.Data, wantData)
	}
}

func TestChoicesScene(t *testing.T) {
	res := compileFile(t, "choices.anima", compiler.DefaultOptions())
	f, err := module.Decode(res.Binary, module.DecodeOptions{Order: binary.LittleEndian})
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	want := []string{"ACTOR", "COLOR", "LINE", "NAMED_CALL", "USER_INPUT", "NAMED_CALL", "NAMED_CALL", "NOOP"}
	if got := ops(t, f); !reflect.DeepEqual(got, want) {
		t.Errorf("ops = %v; want %v", got, want)
	}
	if f.Data[2] != "Pick a door.\nLeft or right?" {
		t.Errorf("line text = %q", f.Data[2])
	}
}

// The same script compiled in every configuration decodes to the same
// program.
func TestConfigurationsAgree(t *testing.T) {
	for _, name := range []string{"intro.anima", "choices.anima"} {
		ref := compileFile(t, name, compiler.DefaultOptions())
		refFile, err := module.Decode(ref.Binary, module.DecodeOptions{Order: binary.LittleEndian})
		if err != nil {
			t.Fatalf("%s: Decode failed: %v", name, err)
		}
		refOps := ops(t, refFile)

		for _, tc := range []struct {
			order  dvm.ByteOrder
			legacy bool
		}{
			{binary.LittleEndian, true},
			{binary.BigEndian, false},
			{binary.BigEndian, true},
		} {
			opts := compiler.DefaultOptions()
			opts.ByteOrder = tc.order
			opts.Module.LegacyDataSize = tc.legacy
			res := compileFile(t, name, opts)

			if len(res.Binary) != len(ref.Binary) {
				t.Errorf("%s %v/%v: %d bytes; want %d", name, tc.order, tc.legacy, len(res.Binary), len(ref.Binary))
			}
			f, err := module.Decode(res.Binary, module.DecodeOptions{Order: tc.order, LegacyDataSize: tc.legacy})
			if err != nil {
				t.Fatalf("%s %v/%v: Decode failed: %v", name, tc.order, tc.legacy, err)
			}
			if !reflect.DeepEqual(f.Data, refFile.Data) {
				t.Errorf("%s %v/%v: data differs", name, tc.order, tc.legacy)
			}
			if got := ops(t, f); !reflect.DeepEqual(got, refOps) {
				t.Errorf("%s %v/%v: ops = %v; want %v", name, tc.order, tc.legacy, got, refOps)
			}
			if tc.order == binary.LittleEndian && !bytes.Equal(f.Code, refFile.Code) {
				t.Errorf("%s: legacy sizing changed the code stream", name)
			}
		}
	}
}
