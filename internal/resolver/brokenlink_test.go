package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/sflink/pkg/sflink"
)

func TestBrokenLinkHook_Href(t *testing.T) {
	viewed := sflink.Page(sflink.NSMain, "Paris")
	target := sflink.Page(sflink.NSMain, "France")
	original := "/index.php?title=France&action=edit&redlink=1"

	tests := []struct {
		name   string
		broken bool
		setup  func(f *fixture)
		want   string
		jobs   int
	}{
		{
			name:   "working link untouched",
			broken: false,
			setup: func(f *fixture) {
				f.store.forms(sflink.Page(sflink.NSProject, "Main"), "_SF_DF", "Article")
			},
			want: original,
		},
		{
			name:   "auto-created page keeps href",
			broken: true,
			setup: func(f *fixture) {
				f.store.incoming[target] = []sflink.IncomingProperty{{PropertyID: "p", SubjectName: "Country"}}
				f.store.forms(sflink.Page(sflink.NSProperty, "Country"), "_SF_CP", "Country")
				f.store.forms(sflink.Page(sflink.NSProperty, "Country"), "_SF_DF", "Country")
			},
			want: original,
			jobs: 1,
		},
		{
			name:   "form edit link replaces href",
			broken: true,
			setup: func(f *fixture) {
				f.store.incoming[target] = []sflink.IncomingProperty{{PropertyID: "p", SubjectName: "Country"}}
				f.store.forms(sflink.Page(sflink.NSProperty, "Country"), "_SF_DF", "Country")
			},
			want: "/wiki/Special:FormEdit/Country/France",
		},
		{
			name:   "no form keeps href",
			broken: true,
			setup:  func(f *fixture) {},
			want:   original,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, "en")
			tt.setup(f)
			hook := NewBrokenLinkHook(f.creator, f.editLinks)

			href, err := hook.Href(t.Context(), Link{
				Viewed: viewed,
				Target: target,
				UserID: 7,
				Href:   original,
				Broken: tt.broken,
			})

			require.NoError(t, err)
			assert.Equal(t, tt.want, href)
			assert.Len(t, f.queue.jobs, tt.jobs)
		})
	}
}

func TestBrokenLinkHook_WorkingLinkSkipsStore(t *testing.T) {
	f := newFixture(t, "en")
	hook := NewBrokenLinkHook(f.creator, f.editLinks)

	_, err := hook.Href(t.Context(), Link{Viewed: sflink.Page(sflink.NSMain, "A"), Target: sflink.Page(sflink.NSMain, "B"), Href: "/wiki/B"})

	require.NoError(t, err)
	assert.Zero(t, f.store.incomingCalls)
	assert.Empty(t, f.store.valuesCalls)
}
