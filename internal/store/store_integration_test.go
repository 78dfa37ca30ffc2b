package store

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	testhelpers "github.com/vvka-141/sflink/internal/testing"
	"github.com/vvka-141/sflink/pkg/sflink"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	conn := testhelpers.NewTestDatabase(t)
	require.NoError(t, Migrate(context.Background(), conn))
	return New(conn)
}

func TestMigrate_Idempotent(t *testing.T) {
	conn := testhelpers.NewTestDatabase(t)
	ctx := context.Background()

	require.NoError(t, Migrate(ctx, conn))
	require.NoError(t, Migrate(ctx, conn))
}

func TestReset_EmptiesTables(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	paris := sflink.Page(sflink.NSMain, "Paris")

	require.NoError(t, s.SavePage(ctx, paris, "Capital"))
	require.NoError(t, Reset(ctx, s.conn))

	_, found, err := s.PageText(ctx, paris)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestStore_ValuesOf(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	cities := sflink.Page(sflink.NSCategory, "Cities")

	require.NoError(t, s.Assert(ctx, cities, "_SF_DF", sflink.PageValue(sflink.NSForm, "City")))
	require.NoError(t, s.Assert(ctx, cities, "_SF_DF", sflink.TextValue("free text")))
	require.NoError(t, s.Assert(ctx, cities, "_SF_DF", sflink.PageValue(sflink.NSForm, "Town")))
	require.NoError(t, s.Assert(ctx, cities, "_SF_AF", sflink.PageValue(sflink.NSForm, "Village")))

	values, err := s.ValuesOf(ctx, cities, "_SF_DF")
	require.NoError(t, err)
	assert.Equal(t, []sflink.PropertyValue{
		sflink.PageValue(sflink.NSForm, "City"),
		sflink.TextValue("free text"),
		sflink.PageValue(sflink.NSForm, "Town"),
	}, values)

	values, err = s.ValuesOf(ctx, sflink.Page(sflink.NSCategory, "Unknown"), "_SF_DF")
	require.NoError(t, err)
	assert.Empty(t, values)
}

func TestStore_IncomingProperties(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	france := sflink.Page(sflink.NSMain, "France")

	require.NoError(t, s.LabelProperty(ctx, "_SF_DF", "Has default form"))
	require.NoError(t, s.Assert(ctx, sflink.Page(sflink.NSMain, "Paris"), "Country", sflink.PageValue(sflink.NSMain, "France")))
	require.NoError(t, s.Assert(ctx, sflink.Page(sflink.NSMain, "Lyon"), "Country", sflink.PageValue(sflink.NSMain, "France")))
	require.NoError(t, s.Assert(ctx, sflink.Page(sflink.NSMain, "Europe"), "Member", sflink.PageValue(sflink.NSMain, "France")))
	require.NoError(t, s.Assert(ctx, sflink.Page(sflink.NSCategory, "Countries"), "_SF_DF", sflink.PageValue(sflink.NSMain, "France")))

	props, err := s.IncomingProperties(ctx, france)
	require.NoError(t, err)
	assert.Equal(t, []sflink.IncomingProperty{
		{PropertyID: "Country", SubjectName: "Country"},
		{PropertyID: "Member", SubjectName: "Member"},
		{PropertyID: "_SF_DF", SubjectName: "Has default form"},
	}, props)
}

func TestStore_Categories(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	berlin := sflink.Page(sflink.NSMain, "Berlin")

	require.NoError(t, s.SavePage(ctx, berlin, "Capital of Germany"))
	require.NoError(t, s.AddCategory(ctx, berlin, "Cities"))
	require.NoError(t, s.AddCategory(ctx, berlin, "Capitals"))
	require.NoError(t, s.AddCategory(ctx, berlin, "Cities"))
	require.NoError(t, s.SavePage(ctx, sflink.Page(sflink.NSMain, "Germany"), ""))
	require.NoError(t, s.AddCategory(ctx, sflink.Page(sflink.NSMain, "Germany"), "Countries"))

	categories, err := s.CategoriesOf(ctx, berlin)
	require.NoError(t, err)
	assert.Equal(t, []string{"Cities", "Capitals"}, categories)

	categories, err = s.CategoriesOf(ctx, sflink.Page(sflink.NSMain, "Nowhere"))
	require.NoError(t, err)
	assert.Empty(t, categories)

	all, err := s.AllCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Capitals", "Cities", "Countries"}, all)
}

func TestStore_AddCategoryRequiresPage(t *testing.T) {
	s := newTestStore(t)

	err := s.AddCategory(context.Background(), sflink.Page(sflink.NSMain, "Ghost"), "Cities")
	assert.Error(t, err)
}

func TestStore_PageText(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	form := sflink.Page(sflink.NSForm, "City")

	_, found, err := s.PageText(ctx, form)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.SavePage(ctx, form, "{{{for template|City}}}{{{end template}}}"))
	require.NoError(t, s.SavePage(ctx, form, "{{{for template|City2}}}{{{end template}}}"))

	text, found, err := s.PageText(ctx, form)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "{{{for template|City2}}}{{{end template}}}", text)
}

func TestStore_Enqueue(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := sflink.NewPageCreationJob(sflink.Page(sflink.NSMain, "France"), 7, "{{Country\n}}")
	second := sflink.NewPageCreationJob(sflink.Page(sflink.NSUser, "Bob"), 8, "")
	require.NoError(t, s.Enqueue(ctx, first, second))

	jobs, err := s.PendingJobs(ctx)
	require.NoError(t, err)
	require.Len(t, jobs, 2)

	ids := []uuid.UUID{jobs[0].ID, jobs[1].ID}
	assert.ElementsMatch(t, []uuid.UUID{first.ID, second.ID}, ids)
	for _, job := range jobs {
		if job.ID == first.ID {
			assert.Equal(t, first.Target, job.Target)
			assert.Equal(t, int64(7), job.UserID)
			assert.Equal(t, "{{Country\n}}", job.PageText)
		}
	}

	assert.Error(t, s.Enqueue(ctx, first), "duplicate job id")
}

func TestNew_PanicsOnNilConn(t *testing.T) {
	assert.Panics(t, func() { New(nil) })
}
