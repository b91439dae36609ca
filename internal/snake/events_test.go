package snake

import (
	"strings"
	"testing"
)

func TestEventLog_Queries(t *testing.T) {
	l := NewEventLog(false)
	l.Add(1, CategoryFood, "spawn", "(40,60)", 0)
	l.Add(3, CategoryFood, "eat", "(40,60)", 1)
	l.Add(3, CategoryFood, "spawn", "(100,20)", 0)
	l.AddVerbose(4, CategoryMove, "head", "(60,60)", 2)

	if n := l.Count(CategoryFood, "spawn"); n != 2 {
		t.Fatalf("spawn count = %d", n)
	}
	if n := l.Count(CategoryMove, ""); n != 0 {
		t.Fatal("verbose entry recorded with verbose off")
	}
	last, ok := l.LastOf(CategoryFood, "spawn")
	if !ok || last.Value != "(100,20)" {
		t.Fatalf("LastOf = %+v, %v", last, ok)
	}
	if l.FirstTick(CategoryFood, "eat") != 3 || l.FirstTick(CategoryState, "init") != -1 {
		t.Fatal("FirstTick mismatch")
	}
	if !l.HasEntry("", "eat", "40,60") || l.HasEntry(CategoryFood, "eat", "99") {
		t.Fatal("HasEntry mismatch")
	}
	out := l.Format()
	if !strings.Contains(out, "[T=003] food     eat") || strings.Count(out, "\n") != 3 {
		t.Fatalf("Format output:\n%s", out)
	}
	l.Reset()
	if len(l.Entries()) != 0 {
		t.Fatal("Reset kept entries")
	}
}

func TestEventLog_VerboseRecordsMoves(t *testing.T) {
	s := NewSim(WithVerbose(true), WithFood(Cell{0, 0}))
	s.RunTicks(2)
	if n := s.Log.Count(CategoryMove, "head"); n != 2 {
		t.Fatalf("head entries = %d, want 2\n%s", n, s.Log.Format())
	}
	if e, _ := s.Log.LastOf(CategoryMove, "head"); e.Value != "(240,200)" {
		t.Fatalf("last head = %q", e.Value)
	}
}
