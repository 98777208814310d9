package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbarros/escolactl/internal/models"
)

func intp(v int) *int { return &v }

func names(students []models.Student) []string {
	out := make([]string, len(students))
	for i, s := range students {
		out[i] = s.Name
	}
	return out
}

func sample() []models.Student {
	return []models.Student{
		{ID: 1, Name: "Ana", Status: models.StatusActive, ClassID: intp(1)},
		{ID: 2, Name: "Bruno", Status: models.StatusInactive, ClassID: intp(2)},
		{ID: 3, Name: "carla", Status: models.StatusActive, ClassID: intp(1), Email: "carla@escola.com"},
		{ID: 4, Name: "Érico", Status: models.StatusSuspended},
	}
}

func TestNoCriteriaIsIdentityInNameOrder(t *testing.T) {
	got := Apply(sample(), nil, Criteria{})
	assert.Equal(t, []string{"Ana", "Bruno", "carla", "Érico"}, names(got))
}

func TestStatusPredicate(t *testing.T) {
	got := Apply([]models.Student{
		{Name: "Ana", Status: models.StatusActive, ClassID: intp(1)},
		{Name: "Bruno", Status: models.StatusInactive, ClassID: intp(2)},
	}, nil, Criteria{Status: models.StatusActive})

	assert.Equal(t, []string{"Ana"}, names(got))
}

func TestClassPredicate(t *testing.T) {
	got := Apply(sample(), nil, Criteria{ClassID: intp(1)})
	assert.Equal(t, []string{"Ana", "carla"}, names(got))
}

func TestClassPredicateExcludesUnassigned(t *testing.T) {
	got := Apply(sample(), nil, Criteria{ClassID: intp(3)})
	assert.Empty(t, got)
}

func TestPredicatesCompose(t *testing.T) {
	got := Apply(sample(), nil, Criteria{ClassID: intp(1), Status: models.StatusActive, FreeText: "car"})
	assert.Equal(t, []string{"carla"}, names(got))
}

func TestFreeTextMatchesNameEmailAndClassName(t *testing.T) {
	classNames := map[int]string{1: "Turma 3A", 2: "Turma 3B"}

	byName := Apply(sample(), classNames, Criteria{FreeText: "ANA"})
	assert.Equal(t, []string{"Ana"}, names(byName))

	byEmail := Apply(sample(), classNames, Criteria{FreeText: "@escola"})
	assert.Equal(t, []string{"carla"}, names(byEmail))

	byClass := Apply(sample(), classNames, Criteria{FreeText: "3b"})
	assert.Equal(t, []string{"Bruno"}, names(byClass))
}

func TestFreeTextPreservesDiacritics(t *testing.T) {
	// plain "e" must not match the accented name
	got := Apply(sample(), nil, Criteria{FreeText: "erico"})
	assert.Empty(t, got)

	got = Apply(sample(), nil, Criteria{FreeText: "érico"})
	assert.Equal(t, []string{"Érico"}, names(got))
}

func TestSortIsLocaleAwareAndCaseInsensitive(t *testing.T) {
	students := []models.Student{
		{ID: 1, Name: "Úrsula"},
		{ID: 2, Name: "alberto"},
		{ID: 3, Name: "Ágata"},
		{ID: 4, Name: "Zeca"},
	}

	got := Apply(students, nil, Criteria{})
	// byte-wise ordering would put the accented names after Zeca
	assert.Equal(t, []string{"Ágata", "alberto", "Úrsula", "Zeca"}, names(got))
}

func TestSortIsStableOnEqualNames(t *testing.T) {
	students := []models.Student{
		{ID: 10, Name: "Ana"},
		{ID: 11, Name: "ana"},
		{ID: 12, Name: "Ana"},
	}

	got := Apply(students, nil, Criteria{})
	ids := []int{got[0].ID, got[1].ID, got[2].ID}
	assert.Equal(t, []int{10, 11, 12}, ids)
}

func TestApplyIsIdempotentAndPure(t *testing.T) {
	students := sample()
	criteria := Criteria{Status: models.StatusActive}

	first := Apply(students, nil, criteria)
	second := Apply(students, nil, criteria)
	assert.Equal(t, first, second)

	// input order untouched
	require.Equal(t, "Ana", students[0].Name)
	require.Equal(t, "Bruno", students[1].Name)
}

func TestCriteriaEmpty(t *testing.T) {
	assert.True(t, Criteria{}.Empty())
	assert.True(t, Criteria{FreeText: "   "}.Empty())
	assert.False(t, Criteria{Status: models.StatusActive}.Empty())
	assert.False(t, Criteria{ClassID: intp(1)}.Empty())
}
