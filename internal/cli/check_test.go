package cli

import (
	"fmt"
	"testing"
)

func TestStripComments(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{
			"plain message",
			"feat: add login\n\nBody text\n",
			"feat: add login\n\nBody text",
		},
		{
			"git template comments",
			"feat: add login\n# Please enter the commit message\n# Lines starting with '#' will be ignored\n",
			"feat: add login",
		},
		{
			"comment between body lines",
			"fix: cache\n\nfirst\n# noise\nsecond\n",
			"fix: cache\n\nfirst\nsecond",
		},
		{
			"hash mid-line kept",
			"fix: handle #42\n",
			"fix: handle #42",
		},
		{
			"all comments",
			"# one\n# two\n",
			"",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := stripComments(tc.in); got != tc.want {
				t.Errorf("stripComments(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestStatusStyleCoversAllStatuses(t *testing.T) {
	st := newStyles()
	seen := make(map[string]bool)
	for _, status := range []string{"excellent", "good", "warning", "poor", "critical"} {
		key := fmt.Sprintf("%v", st.statusStyle(status).GetForeground())
		if seen[key] {
			t.Errorf("status %q reuses color %s", status, key)
		}
		seen[key] = true
	}
}
