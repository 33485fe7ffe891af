package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSkillValueStore_Upsert(t *testing.T) {
	store, cleanup := SetupTestDB(t)
	defer cleanup()
	values := store.SkillValues()

	require.NoError(t, values.Upsert("s1", "handstand", 20))
	require.NoError(t, values.Upsert("s1", "handstand", 75))
	require.NoError(t, values.Upsert("s1", "pushup", 5))
	require.NoError(t, values.Upsert("s2", "handstand", 40))

	v, err := values.Get("s1", "handstand")
	require.NoError(t, err)
	assert.Equal(t, 75, v.Value)

	count, err := values.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	list, err := values.ListBySession("s1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "handstand", list[0].Skill)
	assert.Equal(t, "pushup", list[1].Skill)

	m, err := values.ValuesBySession("s1")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"handstand": 75, "pushup": 5}, m)

	m, err = values.ValuesBySession("nobody")
	require.NoError(t, err)
	assert.Empty(t, m)
}

func TestSkillValueStore_DeleteBySessions(t *testing.T) {
	store, cleanup := SetupTestDB(t)
	defer cleanup()
	values := store.SkillValues()

	require.NoError(t, values.Upsert("s1", "handstand", 1))
	require.NoError(t, values.Upsert("s1", "pushup", 2))
	require.NoError(t, values.Upsert("s2", "pushup", 3))

	n, err := values.DeleteBySessions([]string{"s1"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	count, err := values.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestStore_TransactionRollsBack(t *testing.T) {
	store, cleanup := SetupTestDB(t)
	defer cleanup()

	err := store.Transaction(func(tx Store) error {
		if err := tx.SkillValues().Upsert("s1", "handstand", 1); err != nil {
			return err
		}
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)

	count, err := store.SkillValues().Count()
	require.NoError(t, err)
	assert.Zero(t, count)
}
