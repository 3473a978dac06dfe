package checklist

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBuild(t *testing.T) {
	tests := []struct {
		name       string
		states     []State
		checked    int
		progress   int
		allChecked bool
	}{
		{"nothing stored", nil, 0, 75, false},
		{"one checked", []State{{ItemID: "gmail", Checked: true}}, 1, 81, false},
		{"unchecked again", []State{{ItemID: "gmail", Checked: false}, {ItemID: "voice", Checked: true}}, 1, 81, false},
		{"two checked", []State{{ItemID: "gmail", Checked: true}, {ItemID: "calendar", Checked: true}}, 2, 87, false},
		{"all checked", []State{
			{ItemID: "gmail", Checked: true},
			{ItemID: "voice", Checked: true},
			{ItemID: "calendar", Checked: true},
			{ItemID: "orientation", Checked: true},
		}, 4, 100, true},
		{"unknown items ignored", []State{{ItemID: "retired", Checked: true}}, 0, 75, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cl := Build(tt.states)
			got := []interface{}{cl.Checked, cl.Progress, cl.AllChecked, cl.Total}
			exp := []interface{}{tt.checked, tt.progress, tt.allChecked, 4}
			if diff := cmp.Diff(exp, got); diff != "" {
				t.Fatalf("wrong checklist, diff: %s", diff)
			}
		})
	}
}

func TestItemsAreCopies(t *testing.T) {
	items := Items()
	items[0].Checked = true
	items[0].Title = "changed"

	if diff := cmp.Diff(catalog[0], Items()[0]); diff != "" {
		t.Fatalf("catalog was mutated, diff: %s", diff)
	}
	if !Known("orientation") || Known("retired") {
		t.Fatal("wrong known items")
	}
}
