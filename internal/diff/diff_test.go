package diff

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/commitgate/commitgate/internal/model"
)

const sampleDiff = `diff --git a/hello.go b/hello.go
new file mode 100644
index 0000000..e69de29
--- /dev/null
+++ b/hello.go
@@ -0,0 +1,11 @@
+package main
+
+import "fmt"
+
+func main() {
+	fmt.Println("hello")
+}
+
+func add(a, b int) int {
+	return a + b
+}
diff --git a/readme.md b/readme.md
index abc1234..def5678 100644
--- a/readme.md
+++ b/readme.md
@@ -1,3 +1,4 @@
 # Project

-Old description
+New description
+Added line
`

const renameDiff = `diff --git a/old/name.go b/new/name.go
similarity index 95%
rename from old/name.go
rename to new/name.go
index abc1234..def5678 100644
--- a/old/name.go
+++ b/new/name.go
@@ -1,3 +1,3 @@
 package name

-var x = 1
+var x = 2
`

const binaryDiff = `diff --git a/logo.png b/logo.png
new file mode 100644
index 0000000..1234567
Binary files /dev/null and b/logo.png differ
`

func TestParse(t *testing.T) {
	ds, err := Parse(sampleDiff)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(ds.Files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(ds.Files))
	}

	// First file: new file
	f0 := ds.Files[0]
	if f0.Status != model.StatusAdded {
		t.Errorf("expected hello.go to be added, got %v", f0.Status)
	}
	if f0.Path != "hello.go" {
		t.Errorf("expected path 'hello.go', got %q", f0.Path)
	}
	if f0.Additions != 11 {
		t.Errorf("expected 11 additions, got %d", f0.Additions)
	}
	if len(f0.AddedLines) != f0.Additions {
		t.Errorf("added lines (%d) must match additions (%d)", len(f0.AddedLines), f0.Additions)
	}
	if f0.AddedLines[0] != "package main" {
		t.Errorf("expected first added line 'package main', got %q", f0.AddedLines[0])
	}

	// Second file: modified
	f1 := ds.Files[1]
	if f1.Status != model.StatusModified {
		t.Errorf("expected readme.md to be modified, got %v", f1.Status)
	}
	if f1.Additions != 2 || f1.Deletions != 1 {
		t.Errorf("expected +2 -1, got +%d -%d", f1.Additions, f1.Deletions)
	}
	if f1.AddedLines[0] != "New description" || f1.AddedLines[1] != "Added line" {
		t.Errorf("unexpected added lines: %q", f1.AddedLines)
	}

	// Stats
	files, added, deleted := ds.Stats()
	if files != 2 || added != 13 || deleted != 1 {
		t.Errorf("stats: expected 2/+13/-1, got %d/+%d/-%d", files, added, deleted)
	}
}

func TestParseEmpty(t *testing.T) {
	ds, err := Parse("")
	if err != nil {
		t.Fatalf("Parse empty failed: %v", err)
	}
	if !ds.Empty() {
		t.Errorf("expected empty diff set, got %d files", len(ds.Files))
	}
}

func TestParseRename(t *testing.T) {
	ds, err := Parse(renameDiff)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(ds.Files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(ds.Files))
	}

	f := ds.Files[0]
	if f.Status != model.StatusRenamed {
		t.Errorf("expected renamed, got %v", f.Status)
	}
	if f.Path != "new/name.go" || f.OldPath != "old/name.go" {
		t.Errorf("unexpected paths: %q -> %q", f.OldPath, f.Path)
	}
	if f.DisplayName() != "old/name.go → new/name.go" {
		t.Errorf("unexpected display name %q", f.DisplayName())
	}
}

func TestParseBinary(t *testing.T) {
	ds, err := Parse(binaryDiff)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(ds.Files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(ds.Files))
	}

	f := ds.Files[0]
	if !f.IsBinary {
		t.Error("expected binary flag")
	}
	if len(f.AddedLines) != 0 {
		t.Errorf("binary file must carry no added lines, got %d", len(f.AddedLines))
	}
}

func TestAttachSizes(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "hello.go"), []byte("package main\n"), 0644); err != nil {
		t.Fatal(err)
	}

	ds, err := Parse(sampleDiff)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	AttachSizes(ds, dir)
	if ds.Files[0].SizeBytes != int64(len("package main\n")) {
		t.Errorf("expected size %d, got %d", len("package main\n"), ds.Files[0].SizeBytes)
	}
	// readme.md does not exist in the work tree; size stays 0.
	if ds.Files[1].SizeBytes != 0 {
		t.Errorf("expected size 0 for missing file, got %d", ds.Files[1].SizeBytes)
	}
}
