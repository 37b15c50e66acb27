package generator

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "main.tsp")

	wrote, err := WriteFile(path, []byte("a"), WriteOptions{})
	if err != nil || !wrote {
		t.Fatalf("first write: wrote=%v err=%v", wrote, err)
	}

	wrote, err = WriteFile(path, []byte("a"), WriteOptions{})
	if err != nil || wrote {
		t.Errorf("identical write: wrote=%v err=%v", wrote, err)
	}

	wrote, err = WriteFile(path, []byte("a"), WriteOptions{Check: true})
	if err != nil || wrote {
		t.Errorf("check unchanged: wrote=%v err=%v", wrote, err)
	}

	if _, err := WriteFile(path, []byte("b"), WriteOptions{Check: true}); err == nil {
		t.Error("check mode should fail on a difference")
	}
	if got, _ := os.ReadFile(path); string(got) != "a" {
		t.Errorf("check mode modified the file: %q", got)
	}

	missing := filepath.Join(t.TempDir(), "missing.tsp")
	if _, err := WriteFile(missing, []byte("x"), WriteOptions{Check: true}); err == nil {
		t.Error("check mode should fail when the file does not exist")
	}
	if _, err := os.Stat(missing); !os.IsNotExist(err) {
		t.Error("check mode created a file")
	}
}
