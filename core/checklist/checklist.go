// Package checklist tracks the tasks an intern completes before the in-person
// orientation.
package checklist

import "time"

// Onboarding progress covered by the steps before the checklist; the checklist
// fills the rest.
const (
	baseProgress      = 75
	checklistProgress = 25
)

type Item struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Checked     bool   `json:"checked"`
}

var catalog = []Item{
	{ID: "gmail", Title: "Create Norooz Gmail account", Description: "You should have logged into the app with your Gmail account."},
	{ID: "voice", Title: "Create Norooz Google Voice number", Description: "This will help you connect with your clients and admin."},
	{ID: "calendar", Title: "Access your Google Calendar", Description: "This will help you schedule your clients."},
	{ID: "orientation", Title: "Attend in-person orientation", Description: "Meet the team and learn our procedures."},
}

// Items returns a fresh copy of the checklist, every item unchecked.
func Items() []Item {
	return append([]Item(nil), catalog...)
}

func Known(id string) bool {
	for _, it := range catalog {
		if it.ID == id {
			return true
		}
	}
	return false
}

type Checklist struct {
	Items      []Item `json:"items"`
	Checked    int    `json:"checked"`
	Total      int    `json:"total"`
	AllChecked bool   `json:"allChecked"`
	Progress   int    `json:"progress"`
}

// Build applies the stored states to the catalog.
func Build(states []State) Checklist {
	checked := make(map[string]bool, len(states))
	for _, s := range states {
		checked[s.ItemID] = s.Checked
	}

	cl := Checklist{Items: Items()}
	for i := range cl.Items {
		cl.Items[i].Checked = checked[cl.Items[i].ID]
		if cl.Items[i].Checked {
			cl.Checked++
		}
	}
	cl.Total = len(cl.Items)
	cl.AllChecked = cl.Checked == cl.Total
	cl.Progress = baseProgress + checklistProgress*cl.Checked/cl.Total
	return cl
}

// State is the stored checked flag of one item for one user.
type State struct {
	UserID    string    `db:"user_id"`
	ItemID    string    `db:"item_id"`
	Checked   bool      `db:"checked"`
	UpdatedAt time.Time `db:"updated_at"`
}

type StateUp struct {
	Checked *bool `json:"checked" validate:"required"`
}
