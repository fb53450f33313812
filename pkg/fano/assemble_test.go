package fano

import (
	"testing"
)

func TestEncode(t *testing.T) {
	codes := []Coded{{"B", 1.0 / 3, "0"}, {"A", 2.0 / 3, "1"}}

	tests := []struct {
		text string
		want string
	}{
		{"AAB", "110"},
		{"aab", "110"},
		{"A, B!", "10"},
		{"xyz", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Encode(tt.text, codes); got != tt.want {
			t.Errorf("Encode(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestEncodeGap(t *testing.T) {
	codes := []Coded{{" ", 0.25, "00"}, {"A", 0.5, "1"}, {"B", 0.25, "01"}}
	if got := Encode("A B", codes); got != "10001" {
		t.Errorf("Encode(%q) = %q, want %q", "A B", got, "10001")
	}

	withoutGap := []Coded{{"A", 0.5, "1"}, {"B", 0.5, "0"}}
	if got := Encode("A B", withoutGap); got != "10" {
		t.Errorf("Encode without gap code = %q, want %q", got, "10")
	}
}

func TestIsPrefixFree(t *testing.T) {
	tests := []struct {
		name  string
		codes []string
		want  bool
	}{
		{"fano", []string{"1", "00", "01"}, true},
		{"uniform", []string{"10", "11", "00", "01"}, true},
		{"prefix", []string{"1", "10", "0"}, false},
		{"duplicate", []string{"0", "0"}, false},
		{"empty code", []string{"", "1"}, false},
		{"single", []string{""}, true},
		{"none", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			codes := make([]Coded, len(tt.codes))
			for i, c := range tt.codes {
				codes[i] = Coded{Name: string(rune('A' + i)), Code: c}
			}
			if got := IsPrefixFree(codes); got != tt.want {
				t.Errorf("IsPrefixFree(%v) = %v, want %v", tt.codes, got, tt.want)
			}
		})
	}
}

func TestTree(t *testing.T) {
	codes := []Coded{{"A", 0.5, "1"}, {"B", 0.25, "00"}, {"C", 0.25, "01"}}
	root := Tree(codes)

	if root.Probability != 1 {
		t.Errorf("root probability = %v, want 1", root.Probability)
	}
	if root.One == nil || !root.One.IsLeaf() || root.One.Symbol.Name != "A" {
		t.Errorf("root.One should be leaf A")
	}
	if root.Zero == nil || root.Zero.Probability != 0.5 || root.Zero.Code != "0" {
		t.Errorf("root.Zero = %+v, want inner node 0 with p=0.5", root.Zero)
	}
	if root.Zero.Zero.Symbol.Name != "B" || root.Zero.One.Symbol.Name != "C" {
		t.Error("B and C should hang below 0")
	}
	if d := root.Depth(); d != 2 {
		t.Errorf("Depth() = %d, want 2", d)
	}

	var visited []string
	root.Walk(func(n *Node) { visited = append(visited, n.Code) })
	want := []string{"", "1", "0", "01", "00"}
	if len(visited) != len(want) {
		t.Fatalf("Walk() visited %v, want %v", visited, want)
	}
	for i := range want {
		if visited[i] != want[i] {
			t.Errorf("Walk() visited %v, want %v", visited, want)
			break
		}
	}
}

func TestCodedWeighted(t *testing.T) {
	c := Coded{Name: "A", Probability: 0.5, Code: "10"}
	if c.SymbolName() != "A" || c.Weight() != 0.5 || c.Len() != 2 {
		t.Errorf("Coded accessors = %q %v %d", c.SymbolName(), c.Weight(), c.Len())
	}
}
