package services

import "testing"

func TestMessagesKeepsOrder(t *testing.T) {
	var m Messages
	if _, ok := m.Last(); ok {
		t.Fatal("expected no message on zero value")
	}
	m.ReportInfo("syncing...")
	m.ReportError("sync failed: boom")

	all := m.All()
	if len(all) != 2 || all[0].Level != LevelInfo || all[1].Level != LevelError {
		t.Fatalf("unexpected messages: %+v", all)
	}
	last, _ := m.Last()
	if last.Text != "sync failed: boom" {
		t.Errorf("last = %q", last.Text)
	}
}
