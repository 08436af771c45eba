package deduplicator

import (
	"testing"
	"time"

	"github.com/moyu-x/dupsweep/internal"
)

func rec(path string, size int64, created time.Time) internal.FileRecord {
	return internal.FileRecord{Path: path, Size: size, Created: created, Modified: created}
}

func TestAssemble_OriginalSelection(t *testing.T) {
	now := time.Now()
	groups := Assemble([]Match{{
		Digest: "d1",
		Files: []internal.FileRecord{
			rec("/a/very/long/path.bin", 10, now),
			rec("/b/newer.bin", 10, now.Add(time.Second)),
			rec("/a/short.bin", 10, now),
		},
	}})

	if len(groups) != 1 {
		t.Fatalf("Expected 1 group, got %d", len(groups))
	}
	files := groups[0].Files
	if files[0].Path != "/a/short.bin" || !files[0].IsOriginal {
		t.Errorf("Expected shortest of the oldest to be original, got %+v", files[0])
	}
	if files[1].Path != "/a/very/long/path.bin" || files[2].Path != "/b/newer.bin" {
		t.Errorf("Unexpected member order: %s, %s", files[1].Path, files[2].Path)
	}
	if files[1].IsOriginal || files[2].IsOriginal {
		t.Error("Only the first member may be original")
	}
}

func TestAssemble_GroupOrder(t *testing.T) {
	now := time.Now()
	groups := Assemble([]Match{
		{Digest: "small", Files: []internal.FileRecord{rec("/1", 10, now), rec("/2", 10, now)}},
		{Digest: "big", Files: []internal.FileRecord{rec("/3", 500, now), rec("/4", 500, now)}},
		{Digest: "many", Files: []internal.FileRecord{rec("/5", 200, now), rec("/6", 200, now), rec("/7", 200, now)}},
		{Digest: "single", Files: []internal.FileRecord{rec("/8", 999, now)}},
	})

	want := []string{"big", "many", "small"}
	if len(groups) != len(want) {
		t.Fatalf("Expected %d groups, got %d", len(want), len(groups))
	}
	for i, d := range want {
		if groups[i].Digest != d {
			t.Errorf("Position %d: expected %s, got %s", i, d, groups[i].Digest)
		}
	}
}

func TestAssemble_TieByDigest(t *testing.T) {
	now := time.Now()
	groups := Assemble([]Match{
		{Digest: "bb", Files: []internal.FileRecord{rec("/1", 10, now), rec("/2", 10, now)}},
		{Digest: "aa", Files: []internal.FileRecord{rec("/3", 10, now), rec("/4", 10, now)}},
	})
	if groups[0].Digest != "aa" {
		t.Errorf("Expected digest tie-break, got %s first", groups[0].Digest)
	}
}

func TestSizeBuckets_Candidates(t *testing.T) {
	b := sizeBuckets{}
	b.add(rec("/a", 5, time.Time{}))
	b.add(rec("/b", 5, time.Time{}))
	b.add(rec("/c", 9, time.Time{}))
	b.add(rec("/d", 7, time.Time{}))
	b.add(rec("/e", 7, time.Time{}))
	b.add(rec("/f", 7, time.Time{}))

	got := b.candidates()
	if len(got) != 2 {
		t.Fatalf("Expected 2 candidate buckets, got %d", len(got))
	}
	if got[0].size != 7 || got[1].size != 5 {
		t.Errorf("Expected buckets largest first, got %d then %d", got[0].size, got[1].size)
	}
	if countFiles(got) != 5 {
		t.Errorf("Expected 5 candidate files, got %d", countFiles(got))
	}
}
