package api

import "testing"

func TestNewServerWrapsTree(t *testing.T) {
	s := newTestServer(t)
	if s.tree == nil {
		t.Fatal("expected server to hold a non-nil tree")
	}
	if s.metrics == nil {
		t.Fatal("expected server to hold non-nil metrics")
	}
}
